package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"protocol-tracker/internal/constants"
	"protocol-tracker/internal/storage"

	"github.com/rs/zerolog"
)

type ArchiveResult struct {
	Key     string
	ETag    string
	Matches int
}

type ArchiveService struct {
	uploader storage.FileUploader
	matchSvc *MatchService
	logger   zerolog.Logger
	now      func() time.Time
}

// NewArchiveService accepts a nil uploader; Archive then reports
// ErrArchiveDisabled.
func NewArchiveService(uploader storage.FileUploader, matchSvc *MatchService, logger zerolog.Logger) *ArchiveService {
	return &ArchiveService{uploader: uploader, matchSvc: matchSvc, logger: logger, now: time.Now}
}

// Archive uploads the season's CSV export under seasons/<season>/<timestamp>.csv.
func (s *ArchiveService) Archive(ctx context.Context, seasonName string) (*ArchiveResult, error) {
	if s.uploader == nil {
		return nil, ErrArchiveDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ArchiveTimeout)
	defer cancel()

	var buf bytes.Buffer
	n, err := s.matchSvc.Export(ctx, seasonName, &buf)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("seasons/%s/%s.csv", seasonName, s.now().UTC().Format("20060102T150405Z"))
	res, err := s.uploader.Upload(ctx, key, "text/csv; charset=utf-8", bytes.NewReader(buf.Bytes()))
	if err != nil {
		s.logger.Error().Err(err).Str("season", seasonName).Str("key", key).Msg("archive upload failed")
		return nil, fmt.Errorf("failed to archive season: %w", err)
	}

	s.logger.Info().Str("season", seasonName).Str("key", res.Key).Int("matches", n).Msg("season archived")
	return &ArchiveResult{Key: res.Key, ETag: res.ETag, Matches: n}, nil
}
