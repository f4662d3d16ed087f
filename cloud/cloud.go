// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud persists presets in DynamoDB and publishes tiles to S3.
package cloud

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SoftbearStudios/fracplanet/cloud/db"
	"github.com/SoftbearStudios/fracplanet/cloud/fs"
)

// TileCache is how long published tiles may be cached, in seconds.
const TileCache = 60 * 60

type Cloud struct {
	region   string
	stage    string
	database db.Database
	fs       fs.Filesystem
	logger   *slog.Logger
}

func (cloud *Cloud) String() string {
	if cloud == nil {
		return "[offline]"
	}
	return fmt.Sprintf("[%s %s]", cloud.region, cloud.stage)
}

func New(region, stage string, logger *slog.Logger) (*Cloud, error) {
	if region == "" {
		return nil, errors.New("missing region")
	}
	if stage == "" {
		return nil, errors.New("missing stage")
	}
	if logger == nil {
		logger = slog.Default()
	}

	session, err := getAWSSession(region)
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}

	cloud := &Cloud{region: region, stage: stage, logger: logger}
	if cloud.database, err = db.NewDynamoDBDatabase(session, stage); err != nil {
		return nil, err
	}
	if cloud.fs, err = fs.NewS3Filesystem(session, stage); err != nil {
		return nil, err
	}
	return cloud, nil
}

// PutPreset validates and stores a preset. Its Created time is set to now.
func (cloud *Cloud) PutPreset(preset db.Preset) error {
	if err := preset.Validate(); err != nil {
		return err
	}
	preset.Created = time.Now().Unix()

	if err := cloud.database.PutPreset(preset); err != nil {
		return fmt.Errorf("put preset %q: %w", preset.Name, err)
	}
	cloud.logger.Info("stored preset", "name", preset.Name, "kind", preset.Kind)
	return nil
}

func (cloud *Cloud) ReadPreset(name string) (*db.Preset, error) {
	return cloud.database.ReadPreset(name)
}

func (cloud *Cloud) ReadPresets() ([]db.Preset, error) {
	return cloud.database.ReadPresets()
}

// UploadTile publishes data under tiles/name in the static bucket.
func (cloud *Cloud) UploadTile(name string, data []byte) error {
	filename := "tiles/" + name
	if err := cloud.fs.UploadStaticFile(filename, TileCache, data); err != nil {
		return fmt.Errorf("upload %s: %w", filename, err)
	}
	cloud.logger.Info("uploaded tile", "file", filename, "bytes", len(data))
	return nil
}
