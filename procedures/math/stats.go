package math

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func max(xs []float64) float64      { return floats.Max(xs) }
func min(xs []float64) float64      { return floats.Min(xs) }
func mean(xs []float64) float64     { return stat.Mean(xs, nil) }
func stddev(xs []float64) float64   { return stat.StdDev(xs, nil) }
func variance(xs []float64) float64 { return stat.Variance(xs, nil) }
