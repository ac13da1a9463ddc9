// Package trackerv1 holds the request and response messages of the
// tracker.v1.ProtocolTracker service.
package trackerv1

import "protocol-tracker/internal/stats"

const ServiceName = "tracker.v1.ProtocolTracker"

const ServicePath = "/" + ServiceName + "/"

const (
	ListSeasonsProcedure   = ServicePath + "ListSeasons"
	AddMatchProcedure      = ServicePath + "AddMatch"
	ImportMatchesProcedure = ServicePath + "ImportMatches"
	ExportMatchesProcedure = ServicePath + "ExportMatches"
	DeleteMatchProcedure   = ServicePath + "DeleteMatch"
	ListMatchesProcedure   = ServicePath + "ListMatches"
	GetStatsProcedure      = ServicePath + "GetStats"
	ArchiveSeasonProcedure = ServicePath + "ArchiveSeason"
)

type RatioGroup struct {
	Weight    int      `json:"weight"`
	Protocols []string `json:"protocols"`
}

type Season struct {
	Name          string            `json:"name"`
	ProtocolSet   string            `json:"protocolSet"`
	Protocols     []string          `json:"protocols"`
	Abbreviations map[string]string `json:"abbreviations"`
	Weights       map[string]int    `json:"weights"`
	RatioGroups   []RatioGroup      `json:"ratioGroups"`
	MaxRatio      int               `json:"maxRatio"`
	Closed        bool              `json:"closed"`
	Default       bool              `json:"default"`
}

// Match timestamps are RFC 3339; MatchDate is empty when unknown.
type Match struct {
	ID        string   `json:"id"`
	Season    string   `json:"season"`
	First     []string `json:"first"`
	Second    []string `json:"second"`
	Winner    string   `json:"winner"`
	Ratio     bool     `json:"ratio"`
	MatchDate string   `json:"matchDate,omitempty"`
	CreatedAt string   `json:"createdAt"`
}

type ListSeasonsRequest struct{}

type ListSeasonsResponse struct {
	Seasons []Season `json:"seasons"`
}

type AddMatchRequest struct {
	Season    string   `json:"season"`
	First     []string `json:"first"`
	Second    []string `json:"second"`
	Winner    string   `json:"winner"`
	MatchDate string   `json:"matchDate,omitempty"`
}

type AddMatchResponse struct {
	Match Match `json:"match"`
}

type ImportMatchesRequest struct {
	Season string `json:"season"`
	Csv    string `json:"csv"`
}

type RejectedRow struct {
	Line int    `json:"line"`
	Raw  string `json:"raw"`
}

type ImportMatchesResponse struct {
	Imported int           `json:"imported"`
	Rejected []RejectedRow `json:"rejected"`
}

type ExportMatchesRequest struct {
	Season string `json:"season"`
}

type ExportMatchesResponse struct {
	Filename string `json:"filename"`
	Csv      string `json:"csv"`
	Count    int    `json:"count"`
}

type DeleteMatchRequest struct {
	Season string `json:"season"`
	ID     string `json:"id"`
}

type DeleteMatchResponse struct{}

type ListMatchesRequest struct {
	Season string `json:"season"`
}

type ListMatchesResponse struct {
	Matches []Match `json:"matches"`
}

// GetStatsRequest selects partitions by name ("all", "normal", "ratio");
// none means all three.
type GetStatsRequest struct {
	Season     string   `json:"season"`
	Partitions []string `json:"partitions,omitempty"`
}

type GetStatsResponse struct {
	Season   string                   `json:"season"`
	Total    int                      `json:"total"`
	Skipped  int                      `json:"skipped"`
	Sections map[string]stats.Section `json:"sections"`
}

type ArchiveSeasonRequest struct {
	Season string `json:"season"`
}

type ArchiveSeasonResponse struct {
	Key     string `json:"key"`
	ETag    string `json:"etag"`
	Matches int    `json:"matches"`
}
