package roster

import (
	"sort"

	"protocol-tracker/internal/domain"
)

// WeightSum adds up the weight of every protocol in the trio. Unknown
// protocols count as 0.
func WeightSum(t domain.Trio, weights domain.WeightTable) int {
	sum := 0
	for _, p := range t {
		sum += weights[p]
	}
	return sum
}

// IsRatioBattle reports whether both sides stay within maxRatio.
func IsRatioBattle(a, b domain.Trio, weights domain.WeightTable, maxRatio int) bool {
	return WeightSum(a, weights) <= maxRatio && WeightSum(b, weights) <= maxRatio
}

type RatioGroup struct {
	Weight    int
	Protocols []domain.Protocol
}

// Groups buckets protocols by weight, heaviest first. Protocols keep their
// roster order inside a bucket.
func Groups(protocols []domain.Protocol, weights domain.WeightTable) []RatioGroup {
	idx := make(map[int]int)
	var groups []RatioGroup
	for _, p := range protocols {
		w := weights[p]
		i, ok := idx[w]
		if !ok {
			i = len(groups)
			idx[w] = i
			groups = append(groups, RatioGroup{Weight: w})
		}
		groups[i].Protocols = append(groups[i].Protocols, p)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Weight > groups[j].Weight
	})
	return groups
}
