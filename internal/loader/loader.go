package loader

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"

	v "github.com/go-ozzo/ozzo-validation/v4"
)

// Default CSV column names, overridable via CLI flags.
const (
	DefaultTitleColumn   = "title"
	DefaultContentColumn = "content"
	DefaultLabelsColumn  = "labels"
)

// Mapping names the CSV columns that feed each PostRecord field. Zero-valued
// columns fall back to the defaults.
type Mapping struct {
	TitleColumn   string
	ContentColumn string
	LabelsColumn  string
}

func (m Mapping) withDefaults() Mapping {
	if m.TitleColumn == "" {
		m.TitleColumn = DefaultTitleColumn
	}
	if m.ContentColumn == "" {
		m.ContentColumn = DefaultContentColumn
	}
	if m.LabelsColumn == "" {
		m.LabelsColumn = DefaultLabelsColumn
	}
	return m
}

// PostRecord is one blog post parsed from a CSV row. Content is carried
// verbatim, markup included.
type PostRecord struct {
	Title   string
	Content string
	Labels  []string
	Row     int // 1-based data row in the source file, header excluded
}

func (r PostRecord) Validate() error {
	return v.ValidateStruct(&r,
		v.Field(&r.Title, v.Required),
		v.Field(&r.Content, v.Required),
	)
}

// LoadResult carries the usable records plus the count of rows that were
// skipped for failing validation.
type LoadResult struct {
	Records []PostRecord
	Skipped int
}

// SchemaError reports required columns missing from the CSV header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("csv header is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// LoadRecords parses the CSV file at csvPath into post records using the
// given column mapping. Rows with an empty title or content are logged and
// counted as skipped rather than failing the load; a header missing the
// title or content column fails with a *SchemaError.
func LoadRecords(csvPath string, m Mapping) (*LoadResult, error) {
	m = m.withDefaults()

	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("opening csv file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv file: %w", err)
	}
	if len(rows) == 0 {
		return nil, &SchemaError{Missing: []string{m.TitleColumn, m.ContentColumn}}
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	if _, ok := index[m.TitleColumn]; !ok {
		missing = append(missing, m.TitleColumn)
	}
	if _, ok := index[m.ContentColumn]; !ok {
		missing = append(missing, m.ContentColumn)
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	// The labels column is optional; rows simply carry no labels without it.
	labelsIdx, hasLabels := index[m.LabelsColumn]

	result := &LoadResult{}
	for i, row := range rows[1:] {
		rec := PostRecord{
			Title:   row[index[m.TitleColumn]],
			Content: row[index[m.ContentColumn]],
			Row:     i + 1,
		}
		if hasLabels {
			rec.Labels = SplitLabels(row[labelsIdx])
		}

		if err := rec.Validate(); err != nil {
			log.Printf("Skipping row %d: %v", rec.Row, err)
			result.Skipped++
			continue
		}

		result.Records = append(result.Records, rec)
	}

	return result, nil
}

// SplitLabels turns a comma-separated cell into trimmed labels, preserving
// order and dropping empty segments. An empty cell yields no labels.
func SplitLabels(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}

	parts := strings.Split(cell, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			labels = append(labels, p)
		}
	}
	return labels
}
