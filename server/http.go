// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/SoftbearStudios/fracplanet/cloud/db"
	"github.com/SoftbearStudios/fracplanet/world"
)

// maxPresetSize limits the body of POST /presets.
const maxPresetSize = 4096

// Handler routes all endpoints of s.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.ServeIndex)
	mux.HandleFunc("/terrain", s.ServeTerrain)
	mux.HandleFunc("/height", s.ServeHeight)
	mux.HandleFunc("/presets", s.ServePresets)
	mux.HandleFunc("/ws", s.ServeSocket)
	return mux
}

func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	buf, ok := s.statusJSON.Load().([]byte)
	if ok {
		_, _ = w.Write(buf)
	}
}

// ServeTerrain writes the compressed heightmap of
// GET /terrain?x=&y=&width=&height= in cells.
func (s *Server) ServeTerrain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.terrain == nil {
		http.Error(w, "no terrain", http.StatusNotFound)
		return
	}

	query := r.URL.Query()
	var ints [4]int
	for i, key := range [...]string{"x", "y", "width", "height"} {
		v, err := strconv.Atoi(query.Get(key))
		if err != nil {
			http.Error(w, "invalid "+key, http.StatusBadRequest)
			return
		}
		ints[i] = v
	}
	x, y, width, height := ints[0], ints[1], ints[2], ints[3]

	if width <= 0 || height <= 0 || width > s.maxTileCells || height > s.maxTileCells || width*height > s.maxTileCells {
		http.Error(w, "invalid size", http.StatusBadRequest)
		return
	}

	data := s.terrain.At(world.AABBFrom(float32(x), float32(y), float32(width), float32(height)))
	defer data.Pool()

	buf, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("error marshaling terrain", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf)
}

// ServePresets lists presets on GET and stores one on POST.
func (s *Server) ServePresets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	switch r.Method {
	case http.MethodGet:
		if name := r.URL.Query().Get("name"); name != "" {
			s.servePreset(w, name)
			return
		}
		presets, err := s.cloud.ReadPresets()
		if err != nil {
			s.logger.Error("error reading presets", "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if presets == nil {
			presets = []db.Preset{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(presets)
	case http.MethodPost:
		var preset db.Preset
		if err := json.NewDecoder(io.LimitReader(r.Body, maxPresetSize)).Decode(&preset); err != nil {
			http.Error(w, "invalid preset", http.StatusBadRequest)
			return
		}
		if err := preset.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		err := s.cloud.PutPreset(preset)
		switch {
		case errors.Is(err, db.ErrExists):
			http.Error(w, err.Error(), http.StatusConflict)
		case err != nil:
			s.logger.Error("error storing preset", "name", preset.Name, "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusCreated)
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) servePreset(w http.ResponseWriter, name string) {
	preset, err := s.cloud.ReadPreset(name)
	if errors.Is(err, db.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("error reading preset", "name", name, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(preset)
}

// Height is the body of GET /height.
type Height struct {
	Height uint8 `json:"height"`
	Land   bool  `json:"land"`
}

// ServeHeight writes the interpolated height at GET /height?x=&y= in cells.
func (s *Server) ServeHeight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.terrain == nil {
		http.Error(w, "no terrain", http.StatusNotFound)
		return
	}

	query := r.URL.Query()
	x, errX := strconv.ParseFloat(query.Get("x"), 32)
	y, errY := strconv.ParseFloat(query.Get("y"), 32)
	if errX != nil || errY != nil || math.IsNaN(x+y) || math.IsInf(x+y, 0) {
		http.Error(w, "invalid position", http.StatusBadRequest)
		return
	}

	pos := world.Vec2f{X: float32(x), Y: float32(y)}
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Height{Height: s.terrain.AtPos(pos), Land: s.terrain.LandAt(pos)})
}

func (s *Server) ServeSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade error", "err", err)
		return
	}

	NewSocketClient(s, conn).Init()
}
