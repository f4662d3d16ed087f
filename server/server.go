// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server exposes a noise field and its heightmap over HTTP and websockets.
package server

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/SoftbearStudios/fracplanet/noise"
	"github.com/SoftbearStudios/fracplanet/terrain/compressed"
)

const (
	statusPeriod = 10 * time.Second

	defaultMaxTileCells    = 256 * 256
	defaultMaxSocketPoints = 4096
)

type Options struct {
	Field           noise.Field
	Kind            string
	Terrain         *compressed.Terrain
	Cloud           Cloud // Offline if nil
	Logger          *slog.Logger
	MaxTileCells    int
	MaxSocketPoints int
}

// Server serves one noise field. All handlers can be called concurrently.
type Server struct {
	field           noise.Field
	kind            string
	terrain         *compressed.Terrain
	cloud           Cloud
	logger          *slog.Logger
	maxTileCells    int
	maxSocketPoints int

	// statusJSON is the cached response of ServeIndex.
	statusJSON atomic.Value
	// sockets is the number of open websocket clients.
	sockets atomic.Int32
}

func New(o Options) *Server {
	if o.Cloud == nil {
		o.Cloud = Offline{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.MaxTileCells <= 0 {
		o.MaxTileCells = defaultMaxTileCells
	}
	if o.MaxSocketPoints <= 0 {
		o.MaxSocketPoints = defaultMaxSocketPoints
	}

	s := &Server{
		field:           o.Field,
		kind:            o.Kind,
		terrain:         o.Terrain,
		cloud:           o.Cloud,
		logger:          o.Logger,
		maxTileCells:    o.MaxTileCells,
		maxSocketPoints: o.MaxSocketPoints,
	}
	s.UpdateStatus()
	return s
}

// Status is the body of GET /.
type Status struct {
	Kind       string    `json:"kind"`
	Terms      int       `json:"terms,omitempty"`
	Amplitudes []float32 `json:"amplitudes,omitempty"`
	Chunks     int       `json:"chunks"`
	Sockets    int       `json:"sockets"`
	Cloud      string    `json:"cloud"`
}

func (s *Server) status() Status {
	status := Status{
		Kind:    s.kind,
		Sockets: int(s.sockets.Load()),
		Cloud:   s.cloud.String(),
	}
	if f, ok := s.field.(*noise.Fractal); ok {
		status.Terms = f.Terms()
		status.Amplitudes = f.Amplitudes()
	}
	if s.terrain != nil {
		status.Chunks = s.terrain.Chunks()
	}
	return status
}

// UpdateStatus refreshes the cached status.
func (s *Server) UpdateStatus() {
	statusJSON, err := json.Marshal(s.status())
	if err != nil {
		s.logger.Error("error marshaling status", "err", err)
		return
	}
	s.statusJSON.Store(statusJSON)
}

// Run refreshes the status until ctx is done.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(statusPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.UpdateStatus()
			if s.terrain != nil {
				s.terrain.Debug()
			}
		}
	}
}
