// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"encoding/binary"
	"io"
	"math/rand"
)

// RandomSource supplies the uniform draws used to build noise tables.
// Sources are stateful and not safe for concurrent use; a constructor needs
// exclusive access to its source until it returns.
type RandomSource interface {
	// Float32 returns a value in [0, 1).
	Float32() float32
	// Float64Range returns a value in [lo, hi).
	Float64Range(lo, hi float64) float64
}

// A RandomSource may also implement errSource. Its first failure is sticky
// and is reported by constructors once they are done drawing.
type errSource interface {
	Err() error
}

func sourceErr(src RandomSource) error {
	if e, ok := src.(errSource); ok {
		return e.Err()
	}
	return nil
}

// Rand is a seeded RandomSource backed by math/rand.
type Rand struct {
	r *rand.Rand
}

func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

func (r *Rand) Float32() float32 {
	return r.r.Float32()
}

func (r *Rand) Float64Range(lo, hi float64) float64 {
	return lo + r.r.Float64()*(hi-lo)
}

// ReaderSource draws from a byte stream such as crypto/rand.Reader.
// Once the reader fails every draw returns 0 and Err reports the failure.
type ReaderSource struct {
	r   io.Reader
	buf [8]byte
	err error
}

func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

func (s *ReaderSource) next() uint64 {
	if s.err != nil {
		return 0
	}
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		s.err = err
		return 0
	}
	return binary.LittleEndian.Uint64(s.buf[:])
}

func (s *ReaderSource) Float32() float32 {
	// 24 bits fill the float32 mantissa exactly.
	return float32(s.next()>>40) / (1 << 24)
}

func (s *ReaderSource) Float64Range(lo, hi float64) float64 {
	f := float64(s.next()>>11) / (1 << 53)
	return lo + f*(hi-lo)
}

func (s *ReaderSource) Err() error {
	return s.err
}
