package stats

import (
	"sort"

	"protocol-tracker/internal/domain"
)

type Partition string

const (
	PartitionAll    Partition = "all"
	PartitionNormal Partition = "normal"
	PartitionRatio  Partition = "ratio"
)

var Partitions = []Partition{PartitionAll, PartitionNormal, PartitionRatio}

func ParsePartition(s string) (Partition, bool) {
	for _, p := range Partitions {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// Split separates matches by their stored ratio flag.
func Split(matches []domain.Match) map[Partition][]domain.Match {
	normal := make([]domain.Match, 0, len(matches))
	ratio := make([]domain.Match, 0)
	for _, m := range matches {
		if m.Ratio {
			ratio = append(ratio, m)
		} else {
			normal = append(normal, m)
		}
	}
	return map[Partition][]domain.Match{
		PartitionAll:    matches,
		PartitionNormal: normal,
		PartitionRatio:  ratio,
	}
}

// SortMatches returns a copy ordered newest first: by match date (a missing
// date sorts as the epoch), then by registration time.
func SortMatches(matches []domain.Match) []domain.Match {
	out := make([]domain.Match, len(matches))
	copy(out, matches)

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := matchDateMillis(out[i]), matchDateMillis(out[j])
		if di != dj {
			return di > dj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func matchDateMillis(m domain.Match) int64 {
	if m.MatchDate == nil {
		return 0
	}
	return m.MatchDate.UnixMilli()
}
