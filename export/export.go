// Package export formats optimization history as JSON, CSV or Markdown.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/invopop/jsonschema"

	"github.com/teilomillet/promptlift/types"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatCSV, FormatMarkdown}

// ParseFormat resolves a format name. "md" is accepted for markdown and the
// empty string means json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", types.NewPromptError(types.ErrorTypeValidation, fmt.Sprintf("unknown export format %q", s), nil)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

var csvHeader = []string{
	"id", "timestamp", "level", "platform", "style",
	"original_score", "optimized_score", "original_grade", "optimized_grade",
	"score_change", "processing_time_ms", "original_text", "optimized_text",
}

// Write encodes records to w in format f.
func Write(w io.Writer, f Format, records []types.HistoryRecord) error {
	if records == nil {
		records = []types.HistoryRecord{}
	}
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatCSV:
		return writeCSV(w, records)
	case FormatMarkdown:
		return writeMarkdown(w, records)
	default:
		return types.NewPromptError(types.ErrorTypeValidation, fmt.Sprintf("unknown export format %q", f), nil)
	}
}

func writeCSV(w io.Writer, records []types.HistoryRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Timestamp.UTC().Format(time.RFC3339),
			string(r.Level),
			r.Platform,
			string(r.Style),
			strconv.Itoa(r.OriginalScore),
			strconv.Itoa(r.OptimizedScore),
			r.OriginalGrade,
			r.OptimizedGrade,
			strconv.Itoa(r.ScoreChange),
			strconv.FormatInt(r.ProcessingTimeMs, 10),
			r.OriginalText,
			r.OptimizedText,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeMarkdown(w io.Writer, records []types.HistoryRecord) error {
	var b strings.Builder
	b.WriteString("# Optimization History\n\n")
	if len(records) == 0 {
		b.WriteString("_No optimizations recorded._\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString("| Date | Level | Platform | Score | Grade | Change |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, r := range records {
		fmt.Fprintf(&b, "| %s | %s | %s | %d → %d | %s → %s | %+d |\n",
			r.Timestamp.UTC().Format("2006-01-02 15:04"), r.Level, r.Platform,
			r.OriginalScore, r.OptimizedScore, r.OriginalGrade, r.OptimizedGrade, r.ScoreChange)
	}

	for i, r := range records {
		fmt.Fprintf(&b, "\n## %d. %s\n\n", i+1, r.ID)
		b.WriteString("**Original**\n\n")
		b.WriteString(quote(r.OriginalText))
		b.WriteString("\n**Optimized**\n\n")
		b.WriteString(quote(r.OptimizedText))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// quote renders text as a Markdown block quote.
func quote(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("> "+l, " ")
	}
	return strings.Join(lines, "\n") + "\n"
}

// Schema returns the JSON schema of an exported history record.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}
	s := r.Reflect(&types.HistoryRecord{})
	s.Title = "Optimization history record"
	return s
}
