// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"

	"github.com/SoftbearStudios/fracplanet/cloud/db"
)

// Cloud stores presets and published tiles.
// Offline is used when no cloud is configured.
type Cloud interface {
	fmt.Stringer
	PutPreset(preset db.Preset) error
	ReadPreset(name string) (*db.Preset, error)
	ReadPresets() ([]db.Preset, error)
	UploadTile(name string, data []byte) error
}

type Offline struct{}

func (offline Offline) String() string {
	return "offline"
}

func (offline Offline) PutPreset(preset db.Preset) error {
	return nil
}

func (offline Offline) ReadPreset(name string) (*db.Preset, error) {
	return nil, db.ErrNotFound
}

func (offline Offline) ReadPresets() ([]db.Preset, error) {
	return nil, nil
}

func (offline Offline) UploadTile(name string, data []byte) error {
	return nil
}
