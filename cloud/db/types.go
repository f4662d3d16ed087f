// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SoftbearStudios/fracplanet/noise"
	"github.com/SoftbearStudios/fracplanet/terrain"
	"github.com/finnbear/moderation"
)

const maxNameLength = 32

var (
	ErrInvalidName       = errors.New("db: preset name must be 1 to 32 characters")
	ErrInappropriateName = errors.New("db: preset name is inappropriate")
)

// Preset is a named noise configuration that can be shared between runs.
type Preset struct {
	Name           string `json:"name" dynamo:"name,hash"`
	Kind           string `json:"kind" dynamo:"kind"`
	terrain.Params        // Flattened in both json and dynamo
	Created        int64  `json:"created,omitempty" dynamo:"created,omitempty"`
}

// CheckName rejects empty, long or inappropriate preset names.
func CheckName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || len(trimmed) != len(name) || len(name) > maxNameLength {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if moderation.Scan(name).Is(moderation.Inappropriate) {
		return ErrInappropriateName
	}
	return nil
}

// Validate checks the name and that the preset builds a field.
func (preset *Preset) Validate() error {
	if err := CheckName(preset.Name); err != nil {
		return err
	}
	_, err := noise.NewField(preset.Kind, preset.Seed, preset.NoiseTerms, preset.NoiseAmplitudeDecay)
	return err
}

// Field builds the preset's noise field.
func (preset *Preset) Field() (noise.Field, error) {
	return noise.NewField(preset.Kind, preset.Seed, preset.NoiseTerms, preset.NoiseAmplitudeDecay)
}
