// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/SoftbearStudios/fracplanet/world"
	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestFractal_Amplitudes(t *testing.T) {
	f, err := NewFractal(NewRand(1), 4, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	want := []float32{8.0 / 15, 4.0 / 15, 2.0 / 15, 1.0 / 15}
	if diff := cmp.Diff(want, f.Amplitudes(), cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Error("Amplitudes() mismatch (-want +got):\n", diff)
	}
	if f.Terms() != 4 {
		t.Error("Terms() expected 4 got", f.Terms())
	}
}

func TestFractal_AmplitudesNormalized(t *testing.T) {
	tests := []struct {
		terms int
		decay float32
	}{
		{1, 0.5},
		{2, 0.1},
		{6, 0.5},
		{8, 0.9},
		{12, 0.35},
		{16, 0.999},
	}

	for _, test := range tests {
		f, err := NewFractal(NewRand(int64(test.terms)), test.terms, test.decay)
		if err != nil {
			t.Fatal(err)
		}

		amplitudes := f.Amplitudes()
		var sum float64
		for i, a := range amplitudes {
			sum += float64(a)
			if i > 0 && !(a < amplitudes[i-1]) {
				t.Errorf("terms=%d decay=%v: amplitude %d (%v) not below %v", test.terms, test.decay, i, a, amplitudes[i-1])
			}
		}
		if d := sum - 1; d > 1e-6 || d < -1e-6 {
			t.Errorf("terms=%d decay=%v: amplitudes sum to %v", test.terms, test.decay, sum)
		}
	}
}

func TestFractal_InvalidConfig(t *testing.T) {
	tests := []struct {
		terms int
		decay float32
		err   error
	}{
		{0, 0.5, ErrInvalidTerms},
		{-3, 0.5, ErrInvalidTerms},
		{4, 0, ErrInvalidDecay},
		{4, 1, ErrInvalidDecay},
		{4, -0.5, ErrInvalidDecay},
		{4, 1.5, ErrInvalidDecay},
		{4, math32.NaN(), ErrInvalidDecay},
	}

	for _, test := range tests {
		f, err := NewFractal(NewRand(1), test.terms, test.decay)
		if !errors.Is(err, test.err) {
			t.Errorf("NewFractal(%d, %v) expected %v got %v", test.terms, test.decay, test.err, err)
		}
		if f != nil {
			t.Errorf("NewFractal(%d, %v) expected nil on error", test.terms, test.decay)
		}
	}
}

func TestFractal_Pure(t *testing.T) {
	f, err := NewFractal(NewRand(77), 6, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	p := world.Vec3f{X: 0.37, Y: -1.2, Z: 4.4}
	if a, b := f.Eval(p), f.Eval(p); a != b {
		t.Error("Eval not repeatable:", a, b)
	}

	g, err := NewFractal(NewRand(77), 6, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if a, b := f.Eval(p), g.Eval(p); a != b {
		t.Error("equal seeds expected equal Eval got", a, b)
	}
}

func TestFractal_OctaveComposition(t *testing.T) {
	const (
		terms = 3
		decay = 0.5
	)
	f, err := NewFractal(NewRand(9), terms, decay)
	if err != nil {
		t.Fatal(err)
	}

	// The same seed yields the same octaves when built one at a time.
	src := NewRand(9)
	layers := make([]*Gradient, terms)
	for i := range layers {
		if layers[i], err = NewGradient(src); err != nil {
			t.Fatal(err)
		}
	}

	amplitudes := f.Amplitudes()
	r := rand.New(rand.NewSource(9))
	for i := 0; i < 200; i++ {
		p := randomPoint(r, 10)

		var want float32
		scale := float32(1)
		for j, layer := range layers {
			want += amplitudes[j] * layer.Eval(p.Mul(scale))
			scale *= 2
		}

		if got := f.Eval(p); math32.Abs(got-want) > 1e-6 {
			t.Fatalf("Eval(%v) expected %v got %v", p, want, got)
		}
	}
}

func TestFractal_SingleTermMatchesGradient(t *testing.T) {
	f, err := NewFractal(NewRand(4), 1, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	g := mustGradient(t, 4)

	p := world.Vec3f{X: 1.1, Y: 2.2, Z: -3.3}
	if a, b := f.Eval(p), g.Eval(p); a != b {
		t.Error("single term Fractal expected", b, "got", a)
	}
}

func TestFractal_BoundedAndStable(t *testing.T) {
	f, err := NewFractal(NewRand(31), 8, 0.6)
	if err != nil {
		t.Fatal(err)
	}

	r := rand.New(rand.NewSource(31))
	for i := 0; i < 10000; i++ {
		p := randomPoint(r, 100)
		if v := f.Eval(p); !(v >= -2 && v <= 2) {
			t.Fatalf("Eval(%v) = %v, out of [-2, 2]", p, v)
		}
	}

	for _, p := range []world.Vec3f{{X: 1e6}, {X: -1e6}} {
		if v := f.Eval(p); math32.IsNaN(v) || v < -2 || v > 2 {
			t.Errorf("Eval(%v) expected bounded value got %v", p, v)
		}
	}
}

func TestFractal_ManyTerms(t *testing.T) {
	p := world.Vec3f{X: 0.3, Y: 0.7, Z: -0.2}

	f63, err := NewFractal(NewRand(1), 63, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	base := f63.Eval(p)

	// Octaves from 63 on scale p beyond int64 and, from 128 on, beyond float32.
	for _, terms := range []int{64, 126, 128, 200} {
		f, err := NewFractal(NewRand(1), terms, 0.5)
		if err != nil {
			t.Fatal(err)
		}
		v := f.Eval(p)
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			t.Fatal("terms", terms, "expected finite value got", v)
		}
		// The first 63 layers are shared and the rest weigh less than 2^-62.
		if math32.Abs(v-base) > 1e-5 {
			t.Error("terms", terms, "expected", base, "got", v)
		}
	}
}

func TestFractal_Golden(t *testing.T) {
	f, err := NewFractal(NewRand(56), 6, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	const want = -0.0532947
	if v := f.Eval(world.Vec3f{X: 0.3, Y: 0.7, Z: -0.2}); math32.Abs(v-want) > 1e-5 {
		t.Error("Eval expected", want, "got", v)
	}
}

func TestFractal_SourceError(t *testing.T) {
	// Runs dry partway through the octaves.
	src := NewReaderSource(bytes.NewReader(make([]byte, 8*4096)))
	if _, err := NewFractal(src, 4, 0.5); !errors.Is(err, io.EOF) {
		t.Error("NewFractal expected io.EOF got", err)
	}
}

func TestNewField(t *testing.T) {
	p := world.Vec3f{X: 0.3, Y: 0.6, Z: 0.9}

	for _, kind := range []string{"", KindFractal, KindPerlin, KindSimplex} {
		field, err := NewField(kind, 5, 4, 0.5)
		if err != nil {
			t.Errorf("NewField(%q) error: %v", kind, err)
			continue
		}
		if v := field.Eval(p); math32.IsNaN(v) || v < -2 || v > 2 {
			t.Errorf("NewField(%q).Eval expected bounded value got %v", kind, v)
		}
	}

	if _, err := NewField("worley", 5, 4, 0.5); !errors.Is(err, ErrUnknownKind) {
		t.Error("NewField(worley) expected ErrUnknownKind got", err)
	}
	if field, err := NewField(KindFractal, 5, 0, 0.5); !errors.Is(err, ErrInvalidTerms) || field != nil {
		t.Error("NewField with 0 terms expected ErrInvalidTerms and nil field, got", field, err)
	}
	if _, err := NewField(KindPerlin, 5, 4, 2); !errors.Is(err, ErrInvalidDecay) {
		t.Error("NewField(perlin) expected ErrInvalidDecay got", err)
	}
}

func BenchmarkFractal_Eval(b *testing.B) {
	f, err := NewFractal(NewRand(1), 8, 0.5)
	if err != nil {
		b.Fatal(err)
	}
	p := world.Vec3f{X: 0.1, Y: 0.2, Z: 0.3}
	b.ResetTimer()

	var acc float32
	for i := 0; i < b.N; i++ {
		acc += f.Eval(p)
		p.X += 0.001
	}
	_ = acc
}
