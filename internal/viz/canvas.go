package viz

import "strings"

const blankCell = '\u2800'

// dotBits[y][x] is the braille bit for sub-pixel (x, y) of a cell.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells, each holding 2x4 sub-pixels, so the
// drawable area is Width*2 by Height*4.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for row := range c.Grid {
		c.Grid[row] = make([]rune, w)
	}
	c.Clear()
	return c
}

// cell returns the braille cell holding sub-pixel (x, y) and its bit, or
// nil when the point is off the canvas.
func (c *Canvas) cell(x, y int) (*rune, rune) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return nil, 0
	}
	return &c.Grid[y/4][x/2], dotBits[y%4][x%2]
}

// Set lights sub-pixel (x, y). Points off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if r, bit := c.cell(x, y); r != nil {
		*r |= bit
	}
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	r, bit := c.cell(x, y)
	return r != nil && *r&bit != 0
}

func (c *Canvas) Clear() {
	for _, row := range c.Grid {
		for i := range row {
			row[i] = blankCell
		}
	}
}

// DrawCircle draws the outline of a circle using the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	x, y := r, 0
	err := 1 - r
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			c.Set(cx+p[0], cy+p[1])
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Height * (c.Width*3 + 1))
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
