// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"bytes"
	crand "crypto/rand"
	"errors"
	"io"
	"math/rand"
	"sync"
	"testing"

	"github.com/SoftbearStudios/fracplanet/world"
	"github.com/chewxy/math32"
)

// scriptedSource replays fixed values. Float64Range ignores its bounds.
type scriptedSource struct {
	values []float64
	i      int
	f      float32
}

func (s *scriptedSource) Float32() float32 {
	return s.f
}

func (s *scriptedSource) Float64Range(lo, hi float64) float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

func mustGradient(t testing.TB, seed int64) *Gradient {
	t.Helper()
	n, err := NewGradient(NewRand(seed))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func randomPoint(r *rand.Rand, extent float32) world.Vec3f {
	return world.Vec3f{
		X: (r.Float32()*2 - 1) * extent,
		Y: (r.Float32()*2 - 1) * extent,
		Z: (r.Float32()*2 - 1) * extent,
	}
}

func TestGradient_Golden(t *testing.T) {
	// Every gradient is +X, so only the x offset contributes:
	// 1.5 * (rx - surve(rx)) with rx = frac(2*0.125 + 10000) = 0.25.
	src := &scriptedSource{values: []float64{1, 0, 0}, f: 0.5}
	n, err := NewGradient(src)
	if err != nil {
		t.Fatal(err)
	}

	if v := n.Eval(world.Vec3f{}); v != 0 {
		t.Error("Eval(0, 0, 0) expected 0 got", v)
	}

	const want = 0.140625
	for _, p := range []world.Vec3f{{X: 0.125}, {X: 0.125, Y: 0.1, Z: 0.3}, {X: 0.125, Y: -7.3, Z: 42}} {
		if v := n.Eval(p); math32.Abs(v-want) > 1e-6 {
			t.Errorf("Eval(%v) expected %v got %v", p, want, v)
		}
	}
}

func TestGradient_SeededGolden(t *testing.T) {
	n := mustGradient(t, 56)

	perm := n.Permutation()
	for i, want := range map[int]int{0: 203, 1: 164, 2: 136, 3: 90, 4: 1, 5: 95, 6: 218, 7: 14, 255: 220} {
		if perm[i] != want {
			t.Errorf("Permutation()[%d] expected %d got %d", i, want, perm[i])
		}
	}

	tests := []struct {
		p    world.Vec3f
		want float32
	}{
		{world.Vec3f{X: 0.3, Y: 0.7, Z: -0.2}, 0.0448169},
		{world.Vec3f{X: 1.234, Y: -5.678, Z: 9.1011}, -0.3518652},
		{world.Vec3f{X: -0.45, Y: 0.05, Z: 0.6}, -0.2732695},
		{world.Vec3f{X: 100.1, Y: -200.2, Z: 300.3}, 0.0964784},
		{world.Vec3f{X: 1e19, Y: 0.3, Z: 0.3}, -0.4292059},
	}
	for _, test := range tests {
		if v := n.Eval(test.p); math32.Abs(v-test.want) > 1e-5 {
			t.Errorf("Eval(%v) expected %v got %v", test.p, test.want, v)
		}
	}
}

func TestGradient_ZeroAtLattice(t *testing.T) {
	n := mustGradient(t, 56)

	// Points whose doubled coordinates are integers land on lattice corners.
	for _, p := range []world.Vec3f{{}, {X: 0.5, Y: -1.5, Z: 3}, {X: -20, Y: 7.5, Z: 0.5}} {
		if v := n.Eval(p); v != 0 {
			t.Errorf("Eval(%v) expected 0 got %v", p, v)
		}
	}
}

func TestGradient_Deterministic(t *testing.T) {
	a := mustGradient(t, 42)
	b := mustGradient(t, 42)

	if a.Permutation() != b.Permutation() {
		t.Error("permutations differ for equal seeds")
	}
	if a.Gradients() != b.Gradients() {
		t.Error("gradients differ for equal seeds")
	}

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		p := randomPoint(r, 50)
		if va, vb := a.Eval(p), b.Eval(p); va != vb {
			t.Fatalf("Eval(%v) not deterministic: %v != %v", p, va, vb)
		}
	}

	if c := mustGradient(t, 43); c.Permutation() == a.Permutation() {
		t.Error("different seeds produced the same permutation")
	}
}

func TestGradient_PermutationIsBijection(t *testing.T) {
	for seed := int64(0); seed < 16; seed++ {
		perm := mustGradient(t, seed).Permutation()

		var seen [tableSize]bool
		for i, p := range perm {
			if p < 0 || p >= tableSize {
				t.Fatalf("seed %d: perm[%d] = %d out of range", seed, i, p)
			}
			if seen[p] {
				t.Fatalf("seed %d: value %d appears twice", seed, p)
			}
			seen[p] = true
		}
	}
}

func TestGradient_Padding(t *testing.T) {
	n := mustGradient(t, 3)
	for i := 0; i < tableSize+2; i++ {
		if n.perm[tableSize+i] != n.perm[i] {
			t.Errorf("perm[%d] expected %d got %d", tableSize+i, n.perm[i], n.perm[tableSize+i])
		}
		if n.grad[tableSize+i] != n.grad[i] {
			t.Errorf("grad[%d] expected %v got %v", tableSize+i, n.grad[i], n.grad[tableSize+i])
		}
	}
}

func TestGradient_UnitGradients(t *testing.T) {
	for i, g := range mustGradient(t, 11).Gradients() {
		if l := g.Length(); math32.Abs(l-1) > 1e-4 {
			t.Errorf("gradient %d expected length 1 got %v", i, l)
		}
	}
}

func TestGradient_Bounded(t *testing.T) {
	n := mustGradient(t, 5)
	r := rand.New(rand.NewSource(5))

	for i := 0; i < 10000; i++ {
		p := randomPoint(r, 100)
		if v := n.Eval(p); !(v >= -2 && v <= 2) {
			t.Fatalf("Eval(%v) = %v, out of [-2, 2]", p, v)
		}
	}
}

func TestGradient_Continuous(t *testing.T) {
	const (
		eps = 1e-4
		// Loose, the slope of a single octave stays well under 50.
		bound = 0.005
	)

	n := mustGradient(t, 9)
	r := rand.New(rand.NewSource(9))
	axes := []world.Vec3f{{X: eps}, {Y: eps}, {Z: eps}}

	check := func(p world.Vec3f) {
		for _, d := range axes {
			a, b := n.Eval(p), n.Eval(p.Add(d))
			if diff := math32.Abs(a - b); diff > bound {
				t.Fatalf("Eval(%v) = %v and Eval(%v) = %v differ by %v", p, a, p.Add(d), b, diff)
			}
		}
	}

	for i := 0; i < 2000; i++ {
		check(randomPoint(r, 20))
	}

	// Straddle cell boundaries, where a missing ease curve would show.
	for k := -8; k <= 8; k++ {
		edge := float32(k) * 0.5
		check(world.Vec3f{X: edge - eps/2, Y: 0.3, Z: 0.7})
		check(world.Vec3f{X: 0.3, Y: edge - eps/2, Z: 0.7})
		check(world.Vec3f{X: 0.3, Y: 0.7, Z: edge - eps/2})
	}
}

func TestGradient_LargeCoordinates(t *testing.T) {
	n := mustGradient(t, 13)

	points := []world.Vec3f{
		{X: 1e6}, {X: -1e6}, {X: 1e6, Y: 0.3}, {Y: -1e6, Z: 1e6},
		// Past the range of int64 once doubled.
		{X: 5e18, Y: 0.3, Z: 0.3}, {X: 1e19, Y: 0.3, Z: 0.3}, {X: -1e30, Y: 0.7}, {Z: 3e38},
		{X: math32.MaxFloat32, Y: -math32.MaxFloat32, Z: math32.MaxFloat32},
	}
	for _, p := range points {
		v := n.Eval(p)
		if math32.IsNaN(v) || math32.IsInf(v, 0) || v < -2 || v > 2 {
			t.Errorf("Eval(%v) expected bounded value got %v", p, v)
		}
	}
}

func TestGradient_Concurrent(t *testing.T) {
	n := mustGradient(t, 21)
	r := rand.New(rand.NewSource(21))

	points := make([]world.Vec3f, 512)
	want := make([]float32, len(points))
	for i := range points {
		points[i] = randomPoint(r, 10)
		want[i] = n.Eval(points[i])
	}

	var wg sync.WaitGroup
	errs := make(chan int, 8)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := len(points) - 1; i >= 0; i-- {
				if n.Eval(points[i]) != want[i] {
					errs <- i
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for i := range errs {
		t.Errorf("concurrent Eval(%v) differs from serial result", points[i])
	}
}

func TestGradient_SourceError(t *testing.T) {
	// Two draws worth of bytes, then EOF.
	src := NewReaderSource(bytes.NewReader(make([]byte, 16)))

	n, err := NewGradient(src)
	if !errors.Is(err, io.EOF) {
		t.Error("NewGradient expected io.EOF got", err)
	}
	if n != nil {
		t.Error("NewGradient expected nil noise on error")
	}
}

func TestGradient_CryptoSource(t *testing.T) {
	n, err := NewGradient(NewReaderSource(crand.Reader))
	if err != nil {
		t.Fatal(err)
	}
	for i, g := range n.Gradients() {
		if l := g.Length(); math32.Abs(l-1) > 1e-4 {
			t.Errorf("gradient %d expected length 1 got %v", i, l)
		}
	}
}

func TestGradient_DegenerateSource(t *testing.T) {
	// Always outside the unit ball.
	src := &scriptedSource{values: []float64{1, 1, 1}}
	if _, err := NewGradient(src); !errors.Is(err, ErrDegenerateDraw) {
		t.Error("NewGradient expected ErrDegenerateDraw got", err)
	}
}

func BenchmarkGradient_Eval(b *testing.B) {
	n := mustGradient(b, 1)
	const count = 1024
	points := make([]world.Vec3f, count)
	r := rand.New(rand.NewSource(1))
	for i := range points {
		points[i] = randomPoint(r, 100)
	}
	b.ResetTimer()

	var acc float32
	for i := 0; i < b.N; i++ {
		acc += n.Eval(points[i&(count-1)])
	}
	_ = acc
}
