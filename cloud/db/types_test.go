// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"errors"
	"strings"
	"testing"

	"github.com/SoftbearStudios/fracplanet/noise"
	"github.com/SoftbearStudios/fracplanet/terrain"
)

func TestCheckName(t *testing.T) {
	for _, name := range []string{"earthlike", "Rocky Moon", "seed 56"} {
		if err := CheckName(name); err != nil {
			t.Error(name, "expected valid got", err)
		}
	}

	for _, name := range []string{"", "   ", " padded", strings.Repeat("a", maxNameLength+1)} {
		if err := CheckName(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("%q expected ErrInvalidName got %v", name, err)
		}
	}

	if err := CheckName("shit planet"); !errors.Is(err, ErrInappropriateName) {
		t.Error("expected ErrInappropriateName got", err)
	}
}

func TestPreset_Validate(t *testing.T) {
	params := terrain.DefaultParams()
	params.NoiseTerms = 4

	preset := Preset{Name: "earthlike", Kind: noise.KindFractal, Params: params}
	if err := preset.Validate(); err != nil {
		t.Fatal("expected valid preset got", err)
	}

	field, err := preset.Field()
	if err != nil {
		t.Fatal(err)
	}
	if f, ok := field.(*noise.Fractal); !ok || f.Terms() != 4 {
		t.Error("expected 4 term fractal got", field)
	}

	preset.NoiseTerms = 0
	if err := preset.Validate(); !errors.Is(err, noise.ErrInvalidTerms) {
		t.Error("expected ErrInvalidTerms got", err)
	}

	preset.NoiseTerms = 4
	preset.Kind = "worley"
	if err := preset.Validate(); !errors.Is(err, noise.ErrUnknownKind) {
		t.Error("expected ErrUnknownKind got", err)
	}
}
