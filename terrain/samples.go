// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"
	"io"

	"github.com/SoftbearStudios/fracplanet/noise"
	"github.com/SoftbearStudios/fracplanet/world"
	"github.com/dgravesa/go-parallel/parallel"
	"github.com/gocarina/gocsv"
)

// Sample is one evaluated point of a noise field.
type Sample struct {
	X     float32 `csv:"x" json:"x"`
	Y     float32 `csv:"y" json:"y"`
	Z     float32 `csv:"z" json:"z"`
	Value float32 `csv:"value" json:"value"`
}

// SampleGrid evaluates field on a width x height grid in the z = 0 plane,
// starting at origin with spacing step. Rows are y, columns are x.
func SampleGrid(field noise.Field, origin world.Vec3f, step float32, width, height int) []Sample {
	samples := make([]Sample, width*height)
	parallel.For(len(samples), func(i, _ int) {
		p := origin.Add(world.Vec3f{X: float32(i%width) * step, Y: float32(i/width) * step})
		samples[i] = Sample{X: p.X, Y: p.Y, Z: p.Z, Value: field.Eval(p)}
	})
	return samples
}

// ColoredSample is a sphere vertex with its cloud alpha and the colour seen
// from above, clouds included.
type ColoredSample struct {
	Sample
	Cloud float32 `csv:"cloud" json:"cloud"`
	R     uint8   `csv:"r" json:"r"`
	G     uint8   `csv:"g" json:"g"`
	B     uint8   `csv:"b" json:"b"`
}

// Color fills in the colour of s from its elevation byte.
func (s *ColoredSample) Color(elevation byte) {
	c := ColorAt(elevation).Cloudy(s.Cloud).RGBA(1)
	s.R, s.G, s.B = c.R, c.G, c.B
}

// WriteSamplesCSV writes samples with a header row.
func WriteSamplesCSV[S Sample | ColoredSample](w io.Writer, samples []S) error {
	if err := gocsv.Marshal(samples, w); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	return nil
}
