package service

import "errors"

var (
	ErrUnknownSeason      = errors.New("unknown season")
	ErrRegistrationClosed = errors.New("season is closed for registration")
	ErrInvalidMatch       = errors.New("invalid match")
	ErrMatchNotFound      = errors.New("match not found")
	ErrArchiveDisabled    = errors.New("archive storage is not configured")
	ErrInvalidPartition   = errors.New("unknown stats partition")
)
