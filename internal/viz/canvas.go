package viz

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cell layout, 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
// Unicode offset 0x2800.
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille pixel grid with one ANSI-256 color per cell.
// A cell keeps the color of the last pixel drawn into it; field lines
// are dense enough that per-dot color would buy nothing.
type Canvas struct {
	Width, Height int
	grid          [][]rune
	colors        [][]uint8
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.grid = make([][]rune, h)
	c.colors = make([][]uint8, h)
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
		c.colors[i] = make([]uint8, w)
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights one sub-pixel. Coordinates are in dot space:
// (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int, color uint8) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= pixelMap[y%4][x%2]
	c.colors[row][col] = color
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
			c.colors[i][j] = 0
		}
	}
}

// Line draws with Bresenham in dot space.
func (c *Canvas) Line(x0, y0, x1, y1 int, color uint8) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			return
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

// String renders the grid, styling runs of equal color so the output
// stays cheap for mostly-empty rows.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.grid {
		runStart := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.colors[row][col] == c.colors[row][runStart] {
				continue
			}
			chunk := string(c.grid[row][runStart:col])
			if color := c.colors[row][runStart]; color != 0 {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(int(color)))).Render(chunk))
			} else {
				b.WriteString(chunk)
			}
			runStart = col
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
