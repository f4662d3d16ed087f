// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a set of vertex heights.
type Stats struct {
	Vertices int
	Sea      int
	Min      float64
	Max      float64
	Mean     float64
	StdDev   float64
}

// ComputeStats summarizes heights. Heights at or below zero count as sea.
func ComputeStats(heights []float32) Stats {
	s := Stats{Vertices: len(heights)}
	if len(heights) == 0 {
		return s
	}

	values := make([]float64, len(heights))
	for i, h := range heights {
		values[i] = float64(h)
		if h <= 0 {
			s.Sea++
		}
	}

	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	s.Mean, s.StdDev = stat.PopMeanStdDev(values, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("vertices", s.Vertices),
		slog.Int("sea", s.Sea),
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
		slog.Float64("mean", s.Mean),
		slog.Float64("stddev", s.StdDev),
	)
}
