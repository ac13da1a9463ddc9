package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"protocol-tracker/internal/csvio"
	"protocol-tracker/internal/domain"
	"protocol-tracker/internal/service"
	"protocol-tracker/internal/stats"
	"protocol-tracker/internal/trackerv1"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

type TrackerServer struct {
	seasonSvc  *service.SeasonService
	matchSvc   *service.MatchService
	statsSvc   *service.StatsService
	archiveSvc *service.ArchiveService
	logger     zerolog.Logger
}

func NewTrackerServer(seasonSvc *service.SeasonService, matchSvc *service.MatchService, statsSvc *service.StatsService, archiveSvc *service.ArchiveService, logger zerolog.Logger) *TrackerServer {
	return &TrackerServer{seasonSvc: seasonSvc, matchSvc: matchSvc, statsSvc: statsSvc, archiveSvc: archiveSvc, logger: logger}
}

// Handler mounts every procedure of the service under trackerv1.ServicePath.
func (s *TrackerServer) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(trackerv1.Codec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(trackerv1.ListSeasonsProcedure, connect.NewUnaryHandler(trackerv1.ListSeasonsProcedure, s.ListSeasons, opts...))
	mux.Handle(trackerv1.AddMatchProcedure, connect.NewUnaryHandler(trackerv1.AddMatchProcedure, s.AddMatch, opts...))
	mux.Handle(trackerv1.ImportMatchesProcedure, connect.NewUnaryHandler(trackerv1.ImportMatchesProcedure, s.ImportMatches, opts...))
	mux.Handle(trackerv1.ExportMatchesProcedure, connect.NewUnaryHandler(trackerv1.ExportMatchesProcedure, s.ExportMatches, opts...))
	mux.Handle(trackerv1.DeleteMatchProcedure, connect.NewUnaryHandler(trackerv1.DeleteMatchProcedure, s.DeleteMatch, opts...))
	mux.Handle(trackerv1.ListMatchesProcedure, connect.NewUnaryHandler(trackerv1.ListMatchesProcedure, s.ListMatches, opts...))
	mux.Handle(trackerv1.GetStatsProcedure, connect.NewUnaryHandler(trackerv1.GetStatsProcedure, s.GetStats, opts...))
	mux.Handle(trackerv1.ArchiveSeasonProcedure, connect.NewUnaryHandler(trackerv1.ArchiveSeasonProcedure, s.ArchiveSeason, opts...))
	return trackerv1.ServicePath, mux
}

func (s *TrackerServer) ListSeasons(ctx context.Context, req *connect.Request[trackerv1.ListSeasonsRequest]) (*connect.Response[trackerv1.ListSeasonsResponse], error) {
	infos := s.seasonSvc.List()

	seasons := make([]trackerv1.Season, len(infos))
	for i, info := range infos {
		abbr := make(map[string]string, len(info.Abbreviations))
		for p, a := range info.Abbreviations {
			abbr[string(p)] = a
		}
		weights := make(map[string]int, len(info.Weights))
		for p, w := range info.Weights {
			weights[string(p)] = w
		}
		groups := make([]trackerv1.RatioGroup, len(info.RatioGroups))
		for j, g := range info.RatioGroups {
			groups[j] = trackerv1.RatioGroup{Weight: g.Weight, Protocols: protocolStrings(g.Protocols)}
		}

		seasons[i] = trackerv1.Season{
			Name:          info.Name,
			ProtocolSet:   info.ProtocolSet,
			Protocols:     protocolStrings(info.Protocols),
			Abbreviations: abbr,
			Weights:       weights,
			RatioGroups:   groups,
			MaxRatio:      info.MaxRatio,
			Closed:        info.Closed,
			Default:       info.Default,
		}
	}

	return connect.NewResponse(&trackerv1.ListSeasonsResponse{Seasons: seasons}), nil
}

func (s *TrackerServer) AddMatch(ctx context.Context, req *connect.Request[trackerv1.AddMatchRequest]) (*connect.Response[trackerv1.AddMatchResponse], error) {
	m, err := s.matchSvc.Add(ctx, req.Msg.Season, service.AddMatchInput{
		First:     req.Msg.First,
		Second:    req.Msg.Second,
		Winner:    req.Msg.Winner,
		MatchDate: req.Msg.MatchDate,
	})
	if err != nil {
		return nil, s.toConnectError(ctx, "AddMatch", err)
	}
	return connect.NewResponse(&trackerv1.AddMatchResponse{Match: toMatch(m)}), nil
}

func (s *TrackerServer) ImportMatches(ctx context.Context, req *connect.Request[trackerv1.ImportMatchesRequest]) (*connect.Response[trackerv1.ImportMatchesResponse], error) {
	rep, err := s.matchSvc.Import(ctx, req.Msg.Season, strings.NewReader(req.Msg.Csv))
	if err != nil {
		return nil, s.toConnectError(ctx, "ImportMatches", err)
	}

	rejected := make([]trackerv1.RejectedRow, len(rep.Rejected))
	for i, r := range rep.Rejected {
		rejected[i] = trackerv1.RejectedRow{Line: r.Line, Raw: r.Raw}
	}
	return connect.NewResponse(&trackerv1.ImportMatchesResponse{Imported: rep.Imported, Rejected: rejected}), nil
}

func (s *TrackerServer) ExportMatches(ctx context.Context, req *connect.Request[trackerv1.ExportMatchesRequest]) (*connect.Response[trackerv1.ExportMatchesResponse], error) {
	var buf bytes.Buffer
	n, err := s.matchSvc.Export(ctx, req.Msg.Season, &buf)
	if err != nil {
		return nil, s.toConnectError(ctx, "ExportMatches", err)
	}
	return connect.NewResponse(&trackerv1.ExportMatchesResponse{
		Filename: csvio.Filename(req.Msg.Season, time.Now()),
		Csv:      buf.String(),
		Count:    n,
	}), nil
}

func (s *TrackerServer) DeleteMatch(ctx context.Context, req *connect.Request[trackerv1.DeleteMatchRequest]) (*connect.Response[trackerv1.DeleteMatchResponse], error) {
	if err := s.matchSvc.Remove(ctx, req.Msg.Season, req.Msg.ID); err != nil {
		return nil, s.toConnectError(ctx, "DeleteMatch", err)
	}
	return connect.NewResponse(&trackerv1.DeleteMatchResponse{}), nil
}

func (s *TrackerServer) ListMatches(ctx context.Context, req *connect.Request[trackerv1.ListMatchesRequest]) (*connect.Response[trackerv1.ListMatchesResponse], error) {
	matches, err := s.matchSvc.List(ctx, req.Msg.Season)
	if err != nil {
		return nil, s.toConnectError(ctx, "ListMatches", err)
	}

	out := make([]trackerv1.Match, len(matches))
	for i, m := range matches {
		out[i] = toMatch(m)
	}
	return connect.NewResponse(&trackerv1.ListMatchesResponse{Matches: out}), nil
}

func (s *TrackerServer) GetStats(ctx context.Context, req *connect.Request[trackerv1.GetStatsRequest]) (*connect.Response[trackerv1.GetStatsResponse], error) {
	partitions := make([]stats.Partition, len(req.Msg.Partitions))
	for i, name := range req.Msg.Partitions {
		partitions[i] = stats.Partition(strings.ToLower(name))
	}

	d, err := s.statsSvc.Dashboard(ctx, req.Msg.Season, partitions...)
	if err != nil {
		return nil, s.toConnectError(ctx, "GetStats", err)
	}

	sections := make(map[string]stats.Section, len(d.Sections))
	for p, sec := range d.Sections {
		sections[string(p)] = sec
	}
	return connect.NewResponse(&trackerv1.GetStatsResponse{
		Season:   d.Season,
		Total:    d.Total,
		Skipped:  d.Skipped,
		Sections: sections,
	}), nil
}

func (s *TrackerServer) ArchiveSeason(ctx context.Context, req *connect.Request[trackerv1.ArchiveSeasonRequest]) (*connect.Response[trackerv1.ArchiveSeasonResponse], error) {
	res, err := s.archiveSvc.Archive(ctx, req.Msg.Season)
	if err != nil {
		return nil, s.toConnectError(ctx, "ArchiveSeason", err)
	}
	return connect.NewResponse(&trackerv1.ArchiveSeasonResponse{Key: res.Key, ETag: res.ETag, Matches: res.Matches}), nil
}

func (s *TrackerServer) toConnectError(ctx context.Context, procedure string, err error) error {
	code := connect.CodeInternal
	switch {
	case errors.Is(err, service.ErrUnknownSeason), errors.Is(err, service.ErrMatchNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, service.ErrRegistrationClosed):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, service.ErrInvalidMatch), errors.Is(err, service.ErrInvalidPartition):
		code = connect.CodeInvalidArgument
	case errors.Is(err, service.ErrArchiveDisabled):
		code = connect.CodeUnimplemented
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	}

	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = &s.logger
	}
	ev := logger.Warn()
	if code == connect.CodeInternal {
		ev = logger.Error()
	}
	ev.Err(err).Str("procedure", procedure).Str("code", code.String()).Msg("request failed")

	return connect.NewError(code, err)
}

func toMatch(m domain.Match) trackerv1.Match {
	out := trackerv1.Match{
		ID:        m.ID,
		Season:    m.Season,
		First:     m.First.Strings(),
		Second:    m.Second.Strings(),
		Winner:    string(m.Winner),
		Ratio:     m.Ratio,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	if m.MatchDate != nil {
		out.MatchDate = m.MatchDate.Format(time.RFC3339)
	}
	return out
}

func protocolStrings(ps []domain.Protocol) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}
