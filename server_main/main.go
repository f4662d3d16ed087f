// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/SoftbearStudios/fracplanet/cloud"
	"github.com/SoftbearStudios/fracplanet/config"
	"github.com/SoftbearStudios/fracplanet/server"
	"github.com/SoftbearStudios/fracplanet/terrain/compressed"
	"github.com/SoftbearStudios/fracplanet/terrain/heightmap"
	"golang.org/x/net/netutil"
)

func main() {
	var (
		configPath     string
		port           int
		maxConnections int
	)

	flag.StringVar(&configPath, "config", "", "yaml config file layered over the defaults")
	flag.IntVar(&port, "port", 0, "http service port (overrides config)")
	flag.IntVar(&maxConnections, "max-connections", 0, "maximum number of inbound TCP connections (overrides config)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if maxConnections > 0 {
		cfg.Server.MaxConnections = maxConnections
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "flags:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	field, err := cfg.Noise.Field()
	if err != nil {
		logger.Error("noise field", "err", err)
		os.Exit(1)
	}

	var c server.Cloud = server.Offline{}
	if cfg.Cloud.Enabled {
		cl, err := cloud.New(cfg.Cloud.Region, cfg.Cloud.Stage, logger)
		if err != nil {
			// Cloud is not required for server to function, just log an error
			logger.Error("cloud error", "err", err)
		} else {
			c = cl
		}
	}

	srv := server.New(server.Options{
		Field:           field,
		Kind:            cfg.Noise.Kind,
		Terrain:         compressed.New(heightmap.New(field, cfg.Heightmap.Options()), logger),
		Cloud:           c,
		Logger:          logger,
		MaxTileCells:    cfg.Server.MaxTileCells,
		MaxSocketPoints: cfg.Server.MaxSocketPoints,
	})
	go srv.Run(context.Background())

	http.Handle("/", srv.Handler())

	l, err := net.Listen("tcp", fmt.Sprint(":", cfg.Server.Port))
	if err != nil {
		logger.Error("listen", "err", err)
		os.Exit(1)
	}
	defer l.Close()

	l = netutil.LimitListener(l, cfg.Server.MaxConnections)

	logger.Info("server started", "port", cfg.Server.Port, "kind", cfg.Noise.Kind, "cloud", c.String())
	logger.Error("serve", "err", http.Serve(l, nil))
}
