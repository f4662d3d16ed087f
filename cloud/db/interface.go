// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import "errors"

var (
	ErrNotFound = errors.New("db: preset not found")
	ErrExists   = errors.New("db: preset already exists")
)

type Database interface {
	PutPreset(preset Preset) error
	ReadPreset(name string) (*Preset, error)
	ReadPresets() (presets []Preset, err error)
}
