// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command sample_main evaluates the configured noise over a grid, or perturbs
// a sampled sphere, and writes the samples as CSV.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/SoftbearStudios/fracplanet/cloud"
	"github.com/SoftbearStudios/fracplanet/cloud/db"
	"github.com/SoftbearStudios/fracplanet/config"
	"github.com/SoftbearStudios/fracplanet/noise"
	"github.com/SoftbearStudios/fracplanet/terrain"
	"github.com/SoftbearStudios/fracplanet/world"
)

func main() {
	var (
		configPath string
		out        string
		origin     world.Vec3f
		step       float64
		width      int
		height     int
		sphere     int
		power      float64
		publish    string
		preset     string
	)

	flag.StringVar(&configPath, "config", "", "yaml config file layered over the defaults")
	flag.StringVar(&out, "out", "-", "csv output file, - for stdout")
	flag.Func("x", "grid origin x", float32Flag(&origin.X))
	flag.Func("y", "grid origin y", float32Flag(&origin.Y))
	flag.Func("z", "grid origin z", float32Flag(&origin.Z))
	flag.Float64Var(&step, "step", 1.0/16, "grid spacing")
	flag.IntVar(&width, "width", 64, "grid width")
	flag.IntVar(&height, "height", 64, "grid height")
	flag.IntVar(&sphere, "sphere", 0, "if positive, perturb this many points on the unit sphere instead of sampling a grid")
	flag.Float64Var(&power, "power", 1, "power law applied to land heights in sphere mode")
	flag.StringVar(&publish, "publish", "", "upload the csv as tiles/<name>.csv")
	flag.StringVar(&preset, "preset", "", "store the noise config as a named preset")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

	if err := run(cfg, logger, options{
		out:     out,
		origin:  origin,
		step:    float32(step),
		width:   width,
		height:  height,
		sphere:  sphere,
		power:   float32(power),
		publish: publish,
		preset:  preset,
	}); err != nil {
		logger.Error("sample failed", "err", err)
		os.Exit(1)
	}
}

type options struct {
	out           string
	origin        world.Vec3f
	step          float32
	width, height int
	sphere        int
	power         float32
	publish       string
	preset        string
}

func run(cfg *config.Config, logger *slog.Logger, o options) error {
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("invalid grid %dx%d", o.width, o.height)
	}

	var buf bytes.Buffer
	if o.sphere > 0 {
		samples, err := sampleSphere(cfg.Noise.Params, o.sphere, o.power, logger)
		if err != nil {
			return err
		}
		if err := terrain.WriteSamplesCSV(&buf, samples); err != nil {
			return err
		}
	} else {
		field, err := cfg.Noise.Field()
		if err != nil {
			return err
		}
		samples := terrain.SampleGrid(field, o.origin, o.step, o.width, o.height)

		values := make([]float32, len(samples))
		for i := range samples {
			values[i] = samples[i].Value
		}
		logger.Info("sampled grid", "kind", cfg.Noise.Kind, "stats", terrain.ComputeStats(values))

		if err := terrain.WriteSamplesCSV(&buf, samples); err != nil {
			return err
		}
	}

	if err := writeOutput(o.out, buf.Bytes()); err != nil {
		return err
	}

	if o.publish == "" && o.preset == "" {
		return nil
	}

	c, err := cloud.New(cfg.Cloud.Region, cfg.Cloud.Stage, logger)
	if err != nil {
		return err
	}
	if o.publish != "" {
		if err := c.UploadTile(o.publish+".csv", buf.Bytes()); err != nil {
			return err
		}
	}
	if o.preset != "" {
		if err := c.PutPreset(db.Preset{Name: o.preset, Kind: cfg.Noise.Kind, Params: cfg.Noise.Params}); err != nil {
			return err
		}
	}
	return nil
}

// sampleSphere perturbs n unit sphere vertices of zero height, floods
// everything below zero and colours each vertex by elevation and cloud cover.
func sampleSphere(params terrain.Params, n int, power float32, logger *slog.Logger) ([]terrain.ColoredSample, error) {
	sampler := noise.NewUnitSphere(noise.NewRand(params.Seed))
	positions := make([]world.Vec3f, n)
	for i := range positions {
		positions[i] = sampler.Sample()
	}

	heights := make([]float32, n)
	if err := terrain.Perturb(positions, heights, params); err != nil {
		return nil, err
	}
	logger.Info("perturbed sphere", "stats", terrain.ComputeStats(heights))

	sea, maxHeight := terrain.SeaLevel(heights)
	terrain.PowerLaw(heights, maxHeight, power)

	alpha, err := terrain.CloudAlpha(positions, params.Seed)
	if err != nil {
		return nil, err
	}
	var cover float32
	for _, a := range alpha {
		cover += a
	}
	logger.Info("clouds", "cover", cover/float32(n))

	samples := make([]terrain.ColoredSample, n)
	for i, p := range positions {
		samples[i] = terrain.ColoredSample{
			Sample: terrain.Sample{X: p.X, Y: p.Y, Z: p.Z, Value: heights[i]},
			Cloud:  alpha[i],
		}
		samples[i].Color(terrain.ElevationByte(heights[i], maxHeight, sea[i]))
	}
	return samples, nil
}

func writeOutput(path string, data []byte) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	_, err := w.Write(data)
	return err
}

func float32Flag(dst *float32) func(string) error {
	return func(s string) error {
		var f float64
		if _, err := fmt.Sscan(s, &f); err != nil {
			return err
		}
		*dst = float32(f)
		return nil
	}
}
