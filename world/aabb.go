// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// AABB is a rectangular heightmap region in cell coordinates. The embedded
// Vec2f is its minimum corner.
type AABB struct {
	Vec2f
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

func AABBFrom(x, y, width, height float32) AABB {
	return AABB{
		Vec2f:  Vec2f{X: x, Y: y},
		Width:  width,
		Height: height,
	}
}

// End is the maximum corner.
func (a AABB) End() Vec2f {
	return Vec2f{X: a.X + a.Width, Y: a.Y + a.Height}
}

// Cells returns the whole cells touched by a, as the floored start corner
// and the ceiled end corner.
func (a AABB) Cells() (start, end Vec2f) {
	return a.Vec2f.Floor(), a.End().Ceil()
}
