package csvio

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"protocol-tracker/internal/domain"
)

var Header = []string{
	"FIRST1", "FIRST2", "FIRST3",
	"SECOND1", "SECOND2", "SECOND3",
	"WINNER", "MATCH_DATE", "RATIO", "CREATED_AT", "ID",
}

const (
	DateLayout     = "2006/1/2"
	DateTimeLayout = "2006/1/2 15:04:05"
)

// Export writes matches as a BOM-prefixed CSV with every data field quoted.
// The first eight columns are the import columns, so an export can be
// imported again.
func Export(w io.Writer, matches []domain.Match) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(bom + strings.Join(Header, ",") + "\n"); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, m := range matches {
		fields := make([]string, 0, len(Header))
		fields = append(fields, m.First.Strings()...)
		fields = append(fields, m.Second.Strings()...)
		fields = append(fields,
			string(m.Winner),
			formatDate(m.MatchDate),
			formatBool(m.Ratio),
			m.CreatedAt.In(time.Local).Format(DateTimeLayout),
			m.ID,
		)
		for i, f := range fields {
			fields[i] = quote(f)
		}
		if _, err := bw.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", m.ID, err)
		}
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(time.Local).Format(DateLayout)
}

func formatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// Filename is the download name for a season export taken at t.
func Filename(season string, t time.Time) string {
	return fmt.Sprintf("compile_battle_stats_%s_%s.csv", season, t.UTC().Format("2006-01-02"))
}
