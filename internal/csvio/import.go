package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"protocol-tracker/internal/domain"
)

const (
	bom          = "\ufeff"
	headerToken  = "WINNER"
	rawPreviewLn = 50
)

type RowError struct {
	Line int    `json:"line"`
	Raw  string `json:"raw"`
}

type ImportResult struct {
	Payloads []domain.MatchPayload
	Rejected []RowError
}

// Import reads a whole CSV document. A leading byte-order mark is dropped and
// the first row is skipped when it mentions WINNER. Rows that do not parse are
// reported in Rejected; only read failures return an error.
func Import(r io.Reader, season domain.Season) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte(bom))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var res ImportResult
	first := true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.Rejected = append(res.Rejected, RowError{Line: perr.StartLine, Raw: preview(strings.Join(record, ","))})
				first = false
				continue
			}
			return res, fmt.Errorf("failed to parse csv: %w", err)
		}

		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}

		payload, ok := ParseRow(record, season.Protocols, season.Weights, season.MaxRatio)
		if !ok {
			res.Rejected = append(res.Rejected, RowError{Line: line, Raw: preview(strings.Join(record, ","))})
			continue
		}
		res.Payloads = append(res.Payloads, payload)
	}
	return res, nil
}

func isHeader(record []string) bool {
	return strings.Contains(strings.ToUpper(strings.Join(record, ",")), headerToken)
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= rawPreviewLn {
		return s
	}
	return string(r[:rawPreviewLn]) + "..."
}
