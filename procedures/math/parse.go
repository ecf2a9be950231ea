package math

import (
	"fmt"
	"strconv"
	"strings"
)

// parseRow splits a comma-separated list of floats.
func parseRow(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("math: invalid value %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseMatrix splits a ';'-separated list of ','-separated floats into a
// rectangular 2D array, mirroring the 2D-array argument shape.
func parseMatrix(s string) ([][]float64, error) {
	rows := strings.Split(s, ";")
	out := make([][]float64, 0, len(rows))
	for _, r := range rows {
		row, err := parseRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatRow(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, ",")
}

func formatMatrix(rows [][]float64) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = formatRow(r)
	}
	return strings.Join(parts, ";")
}

func flatten(rows [][]float64) []float64 {
	var out []float64
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}
