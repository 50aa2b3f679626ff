// Package importer parses recorded ad performance from CSV into the
// identity-keyed metrics map.
package importer

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"adforge/internal/schema"
	"adforge/internal/types"
)

// idColumn is the one required header. Metric columns are optional; any
// other column is ignored.
const idColumn = "variantid"

var metricColumns = []string{"ctr", "cvr", "cpa", "roas"}

// ParsePerformanceCSV reads a CSV export with a variantId column and any of
// the ctr, cvr, cpa, roas columns. Rows without an identity are skipped;
// cells that are empty or not numeric leave that metric unset. A file with a
// usable header but no usable rows is an import error.
func ParsePerformanceCSV(r io.Reader) (map[string]types.PerformanceMetrics, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &schema.ImportFormatError{Detail: "empty file"}
	}
	if err != nil {
		return nil, &schema.ImportFormatError{Detail: "unreadable header: " + err.Error()}
	}

	idIdx := -1
	metricIdx := map[string]int{}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == idColumn {
			idIdx = i
			continue
		}
		for _, m := range metricColumns {
			if name == m {
				metricIdx[m] = i
			}
		}
	}
	if idIdx == -1 {
		return nil, &schema.ImportFormatError{Detail: `missing required "variantId" column`}
	}

	result := map[string]types.PerformanceMetrics{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Structurally broken rows are skipped like identity-less ones.
			continue
		}
		if idIdx >= len(record) {
			continue
		}
		id := strings.TrimSpace(record[idIdx])
		if id == "" {
			continue
		}
		result[id] = types.PerformanceMetrics{
			CTR:  cell(record, metricIdx, "ctr"),
			CVR:  cell(record, metricIdx, "cvr"),
			CPA:  cell(record, metricIdx, "cpa"),
			ROAS: cell(record, metricIdx, "roas"),
		}
	}

	if len(result) == 0 {
		return nil, &schema.ImportFormatError{Detail: "no usable rows"}
	}
	return result, nil
}

// cell parses one optional numeric cell. Absent columns, short rows, empty
// cells, and non-numeric values all leave the metric unset.
func cell(record []string, metricIdx map[string]int, name string) *float64 {
	idx, ok := metricIdx[name]
	if !ok || idx >= len(record) {
		return nil
	}
	raw := strings.TrimSpace(record[idx])
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
