package csvio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"protocol-tracker/internal/domain"
	"protocol-tracker/internal/roster"

	"github.com/google/go-cmp/cmp"
)

var validProtocols = []domain.Protocol{"WATER", "SPEED", "PSYCHIC", "DARKNESS", "LIFE", "METAL"}

func TestParseRowValid(t *testing.T) {
	row := []string{"WATER", "SPEED", "PSYCHIC", "DARKNESS", "LIFE", "METAL", "FIRST", "2025/01/01"}
	got, ok := ParseRow(row, validProtocols, roster.WeightSets[roster.RatioV1], 10)
	if !ok {
		t.Fatal("expected row to parse")
	}

	if diff := cmp.Diff(domain.Trio{"WATER", "SPEED", "PSYCHIC"}, got.First); diff != "" {
		t.Errorf("first (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(domain.Trio{"DARKNESS", "LIFE", "METAL"}, got.Second); diff != "" {
		t.Errorf("second (-want +got):\n%s", diff)
	}
	if got.Winner != domain.WinnerFirst {
		t.Errorf("winner = %q", got.Winner)
	}
	// 3+1+5 = 9 and 5+2+0 = 7, both within 10
	if !got.Ratio {
		t.Error("expected ratio battle")
	}
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	if got.MatchDate == nil || got.MatchDate.UnixMilli() != want.UnixMilli() {
		t.Errorf("matchDate = %v, want %v", got.MatchDate, want)
	}
}

func TestParseRowNormalisesCase(t *testing.T) {
	row := []string{" water", "Speed ", "psychic", "darkness", "life", "metal", "second"}
	got, ok := ParseRow(row, validProtocols, nil, 0)
	if !ok {
		t.Fatal("expected row to parse")
	}
	if got.First[0] != "WATER" || got.Winner != domain.WinnerSecond {
		t.Errorf("got %+v", got)
	}
	if got.MatchDate != nil {
		t.Errorf("missing date should be nil, got %v", got.MatchDate)
	}
	if !got.Ratio {
		t.Error("zero weights with threshold 0 is a ratio battle")
	}
}

func TestParseRowRejects(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{"invalid protocol", []string{"WATER", "SPEED", "INVALID", "DARKNESS", "LIFE", "METAL", "FIRST", ""}},
		{"too few fields", []string{"WATER", "SPEED", "PSYCHIC", "DARKNESS", "LIFE", "METAL"}},
		{"empty", nil},
		{"bad winner", []string{"WATER", "SPEED", "PSYCHIC", "DARKNESS", "LIFE", "METAL", "DRAW"}},
		{"legacy winner token", []string{"WATER", "SPEED", "PSYCHIC", "DARKNESS", "LIFE", "METAL", "L"}},
		{"protocol outside season", []string{"WATER", "SPEED", "HATE", "DARKNESS", "LIFE", "METAL", "FIRST"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ParseRow(tt.row, validProtocols, nil, 8); ok {
				t.Error("expected rejection")
			}
		})
	}
}

func TestParseRowDates(t *testing.T) {
	base := []string{"WATER", "SPEED", "PSYCHIC", "DARKNESS", "LIFE", "METAL", "FIRST"}
	local := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		return &v
	}
	withZone := time.Date(2025, 12, 3, 8, 30, 0, 0, time.UTC)
	utc := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	tests := []struct {
		in   string
		want *time.Time
	}{
		{"", nil},
		{"   ", nil},
		{"not a date", nil},
		{"2025/13/45", nil},
		{"2025/12/03", local(2025, 12, 3)},
		{"2025-12-03", utc(2025, 12, 3)},
		{"2025-1-5", local(2025, 1, 5)},
		{"2025-12-03T08:30:00Z", &withZone},
		{"2025/1/5", local(2025, 1, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRow(append(append([]string{}, base...), tt.in), validProtocols, nil, 8)
			if !ok {
				t.Fatal("date problems must not reject the row")
			}
			if tt.want == nil {
				if got.MatchDate != nil {
					t.Errorf("matchDate = %v, want nil", got.MatchDate)
				}
				return
			}
			if got.MatchDate == nil || !got.MatchDate.Equal(*tt.want) {
				t.Errorf("matchDate = %v, want %v", got.MatchDate, tt.want)
			}
		})
	}
}

func TestParseRowDuplicatesPass(t *testing.T) {
	row := []string{"WATER", "WATER", "WATER", "WATER", "LIFE", "METAL", "FIRST"}
	if _, ok := ParseRow(row, validProtocols, nil, 8); !ok {
		t.Error("duplicate protocols are accepted by the parser")
	}
}

func testSeason() domain.Season {
	return domain.Season{
		Name:      "test",
		Protocols: roster.Sets[roster.SetV1Aux],
		Weights:   roster.WeightSets[roster.RatioV1],
		MaxRatio:  8,
	}
}

func TestImport(t *testing.T) {
	doc := "\ufeffF1,F2,F3,S1,S2,S3,Winner,Date\n" +
		"fire,water,metal,life,spirit,speed,first,2025/01/02\n" +
		"FIRE,INVALID,METAL,LIFE,SPIRIT,SPEED,FIRST,\n" +
		"\"DARKNESS\",\"FIRE\",\"HATE\",\"LIFE\",\"LIGHT\",\"METAL\",\"SECOND\",\"\"\n" +
		"FIRE,WATER\n"

	res, err := Import(strings.NewReader(doc), testSeason())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(res.Payloads) != 2 {
		t.Fatalf("payloads = %d, want 2", len(res.Payloads))
	}
	if !res.Payloads[0].Ratio {
		t.Error("FIRE/WATER/METAL (8) vs LIFE/SPIRIT/SPEED (4) is a ratio battle at 8")
	}
	if res.Payloads[1].Ratio {
		t.Error("DARKNESS/FIRE/HATE (15) is not a ratio battle")
	}
	if res.Payloads[1].Winner != domain.WinnerSecond {
		t.Errorf("winner = %q", res.Payloads[1].Winner)
	}

	want := []RowError{
		{Line: 3, Raw: "FIRE,INVALID,METAL,LIFE,SPIRIT,SPEED,FIRST,"},
		{Line: 5, Raw: "FIRE,WATER"},
	}
	if diff := cmp.Diff(want, res.Rejected); diff != "" {
		t.Errorf("rejected (-want +got):\n%s", diff)
	}
}

func TestImportWithoutHeader(t *testing.T) {
	doc := "FIRE,WATER,METAL,LIFE,SPIRIT,SPEED,FIRST\nFIRE,WATER,METAL,LIFE,SPIRIT,SPEED,SECOND\n"
	res, err := Import(strings.NewReader(doc), testSeason())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Payloads) != 2 || len(res.Rejected) != 0 {
		t.Errorf("payloads=%d rejected=%d", len(res.Payloads), len(res.Rejected))
	}
}

func TestImportTruncatesPreview(t *testing.T) {
	long := strings.Repeat("X", 80)
	res, err := Import(strings.NewReader(long+",A,B,C,D,E,FIRST\n"), testSeason())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rejected) != 1 {
		t.Fatalf("rejected = %d", len(res.Rejected))
	}
	if got := res.Rejected[0].Raw; got != strings.Repeat("X", 50)+"..." {
		t.Errorf("preview = %q", got)
	}
}

func TestExportRoundTrip(t *testing.T) {
	date := time.Date(2025, 3, 9, 0, 0, 0, 0, time.Local)
	matches := []domain.Match{
		{
			ID:        "a1",
			First:     domain.Trio{"FIRE", "WATER", "METAL"},
			Second:    domain.Trio{"LIFE", "SPIRIT", "SPEED"},
			Winner:    domain.WinnerFirst,
			Ratio:     true,
			CreatedAt: time.Date(2025, 3, 10, 12, 30, 5, 0, time.Local),
			MatchDate: &date,
		},
		{
			ID:        "b2",
			First:     domain.Trio{"DARKNESS", "HATE", "LOVE"},
			Second:    domain.Trio{"APATHY", "METAL", "METAL"},
			Winner:    domain.WinnerSecond,
			CreatedAt: time.Date(2025, 3, 11, 8, 0, 0, 0, time.Local),
		},
	}

	var buf bytes.Buffer
	if err := Export(&buf, matches); err != nil {
		t.Fatalf("Export: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\ufeff") {
		t.Error("missing byte-order mark")
	}
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\ufeff")), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	wantRow := `"FIRE","WATER","METAL","LIFE","SPIRIT","SPEED","FIRST","2025/3/9","TRUE","2025/3/10 12:30:05","a1"`
	if lines[1] != wantRow {
		t.Errorf("row = %s\nwant  %s", lines[1], wantRow)
	}

	res, err := Import(&buf, testSeason())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(res.Rejected) != 0 {
		t.Fatalf("rejected = %v", res.Rejected)
	}
	for i, m := range matches {
		p := res.Payloads[i]
		if diff := cmp.Diff(m.First, p.First); diff != "" {
			t.Errorf("match %d first (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(m.Second, p.Second); diff != "" {
			t.Errorf("match %d second (-want +got):\n%s", i, diff)
		}
		if m.Winner != p.Winner {
			t.Errorf("match %d winner = %q, want %q", i, p.Winner, m.Winner)
		}
	}
	if res.Payloads[0].MatchDate == nil || !res.Payloads[0].MatchDate.Equal(date) {
		t.Errorf("matchDate = %v, want %v", res.Payloads[0].MatchDate, date)
	}
	if res.Payloads[1].MatchDate != nil {
		t.Errorf("matchDate = %v, want nil", res.Payloads[1].MatchDate)
	}
}

func TestExportQuotesEmbeddedQuotes(t *testing.T) {
	if got := quote(`a"b`); got != `"a""b"` {
		t.Errorf("quote = %s", got)
	}
}
