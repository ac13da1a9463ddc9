package stats

import (
	"sort"
	"strings"

	"protocol-tracker/internal/domain"
)

// KeySeparator joins protocols in pair and trio keys. Protocol identifiers are
// upper-case words and never contain it.
const KeySeparator = " · "

// ComboKey sorts the protocols lexicographically and joins them, so every
// ordering of the same combination maps to one key.
func ComboKey(ps ...domain.Protocol) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p)
	}
	sort.Strings(names)
	return strings.Join(names, KeySeparator)
}
