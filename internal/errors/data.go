// Package errors provides error types for districtboard.
// This file contains dataset-related errors.
package errors

import (
	"fmt"
	"strings"
)

// MissingColumns creates an error for a dataset whose header lacks required columns.
func MissingColumns(source string, missing []string) *BoardError {
	return &BoardError{
		Kind:    ErrData,
		Message: fmt.Sprintf("dataset is missing %d required column(s): %s", len(missing), strings.Join(missing, ", ")),
		Details: map[string]string{
			"source":  source,
			"missing": strings.Join(missing, ","),
		},
		Suggestion: `The header row must contain every district metric column:
  district_name, region, winner_2024,
  pct_young39, pct_40_50, pct_old65, pct_fem_2030,
  competitiveness, volatility, prog_left_avg, voters_total,
  prog_/cons_/oth_ columns for 2018, 2020, 2022 and 2024.

  Write the bundled sample next to your data to compare:
    districtboard init --sample`,
	}
}

// DataParseError creates an error for a file the CSV/XLSX reader rejected.
func DataParseError(source string, cause error) *BoardError {
	return &BoardError{
		Kind:    ErrData,
		Message: fmt.Sprintf("failed to parse dataset: %s", source),
		Cause:   cause,
		Details: map[string]string{
			"source": source,
		},
		Suggestion: `Check the file format:
  1. The first row must be the header
  2. Every row needs the same number of fields
  3. Korean exports are often CP949; try --encoding cp949`,
	}
}

// DataFileNotFound creates an error for a dataset path that does not exist.
func DataFileNotFound(path string) *BoardError {
	return &BoardError{
		Kind:    ErrNotFound,
		Message: fmt.Sprintf("dataset not found: %s", path),
		Details: map[string]string{
			"path": path,
		},
		Suggestion: "Pass an existing CSV or XLSX file with --data, or omit it to use the bundled sample.",
	}
}

// UnsupportedEncoding creates an error for an unknown character set name.
func UnsupportedEncoding(name string, valid []string) *BoardError {
	return &BoardError{
		Kind:       ErrData,
		Message:    fmt.Sprintf("unsupported encoding: %s", name),
		Details:    map[string]string{"encoding": name},
		Suggestion: "Valid encodings: " + strings.Join(valid, ", "),
	}
}

// UnknownSortMetric creates an error for a sort column outside the allowed set.
func UnknownSortMetric(metric string, valid []string) *BoardError {
	return &BoardError{
		Kind:       ErrFilter,
		Message:    fmt.Sprintf("unknown sort metric: %s", metric),
		Details:    map[string]string{"metric": metric},
		Suggestion: "Valid metrics: " + strings.Join(valid, ", "),
	}
}

// RenderFailed creates an error for a chart the renderer rejected.
func RenderFailed(chartName string, cause error) *BoardError {
	return &BoardError{
		Kind:    ErrRender,
		Message: fmt.Sprintf("failed to render %s chart", chartName),
		Cause:   cause,
		Details: map[string]string{"chart": chartName},
	}
}
