package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set lights the sub-pixel (x, y). The canvas is Width*2 by Height*4
// sub-pixels with y growing downwards.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawProfile draws values as a connected line spanning the full canvas
// width. Values are scaled so that -amp sits on the bottom row and +amp on
// the top row; anything beyond is clipped.
func (c *Canvas) DrawProfile(values []float64, amp float64) {
	if len(values) == 0 || amp <= 0 {
		return
	}
	w, h := c.Width*2, c.Height*4
	row := func(v float64) int {
		r := int(math.Round((1 - (v/amp+1)/2) * float64(h-1)))
		return min(max(r, 0), h-1)
	}
	col := func(i int) int {
		if len(values) == 1 {
			return 0
		}
		return i * (w - 1) / (len(values) - 1)
	}

	px, py := col(0), row(values[0])
	c.Set(px, py)
	for i := 1; i < len(values); i++ {
		x, y := col(i), row(values[i])
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

// DrawLevel draws a dotted horizontal line at v on the same scale as
// DrawProfile.
func (c *Canvas) DrawLevel(v, amp float64) {
	if amp <= 0 {
		return
	}
	h := c.Height * 4
	y := int(math.Round((1 - (v/amp+1)/2) * float64(h-1)))
	for x := 0; x < c.Width*2; x += 4 {
		c.Set(x, y)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
