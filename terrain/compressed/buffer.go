// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import "io"

const (
	// Heights keep their upper nibble, the lower one counts the run.
	levelMask = 0b11110000
	runMask   = 0b00001111
)

// Buffer run length encodes heightmap levels. Each encoded byte is a level in
// the high nibble and the run length minus one in the low nibble, so a run of
// up to 16 equal levels takes a single byte.
type Buffer struct {
	buf []byte
	off int // Read position
}

// NewBuffer reads from encoded. Reading consumes encoded in place.
func NewBuffer(encoded []byte) *Buffer {
	return &Buffer{buf: encoded}
}

func (buffer *Buffer) writeLevel(h byte) {
	level := h & levelMask

	if n := len(buffer.buf); n > 0 {
		last := buffer.buf[n-1]
		if last&levelMask == level && last&runMask < runMask {
			buffer.buf[n-1] = last + 1
			return
		}
	}
	buffer.buf = append(buffer.buf, level)
}

// Write quantizes every height in levels and appends it.
func (buffer *Buffer) Write(levels []byte) (int, error) {
	for _, h := range levels {
		buffer.writeLevel(h)
	}
	return len(levels), nil
}

func (buffer *Buffer) readLevel() (level byte, more bool) {
	run := buffer.buf[buffer.off]
	level = run & levelMask

	if run&runMask > 0 {
		buffer.buf[buffer.off] = run - 1
		return level, true
	}
	buffer.off++
	return level, buffer.off < len(buffer.buf)
}

// Read expands runs into levels, returning io.EOF once every run is consumed.
func (buffer *Buffer) Read(levels []byte) (int, error) {
	more := buffer.off < len(buffer.buf)
	i := 0

	for ; i < len(levels) && more; i++ {
		levels[i], more = buffer.readLevel()
	}

	if i == 0 && len(levels) > 0 {
		return 0, io.EOF
	}

	return i, nil
}

// Grow makes space for about n heights, assuming runs of two on average.
func (buffer *Buffer) Grow(n int) {
	runs := n / 2
	if old := buffer.Buffer(); cap(old)-len(old) < runs {
		buf := make([]byte, len(old), len(old)+runs)
		copy(buf, old)
		buffer.buf = buf
		buffer.off = 0
	}
}

// Buffer returns the unread runs.
func (buffer *Buffer) Buffer() []byte {
	return buffer.buf[buffer.off:]
}
