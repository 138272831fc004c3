package algorithm

import "image/color"

// classPalette colors cluster indices and class labels consistently
// across the algorithm modules.
var classPalette = []color.RGBA{
	{R: 0xe5, G: 0x39, B: 0x35, A: 0xff}, // red
	{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}, // blue
	{R: 0x43, G: 0xa0, B: 0x47, A: 0xff}, // green
	{R: 0xfb, G: 0x8c, B: 0x00, A: 0xff}, // orange
	{R: 0x8e, G: 0x24, B: 0xaa, A: 0xff}, // purple
	{R: 0x00, G: 0x89, B: 0x7b, A: 0xff}, // teal
	{R: 0x6d, G: 0x4c, B: 0x41, A: 0xff}, // brown
	{R: 0xc0, G: 0xca, B: 0x33, A: 0xff}, // lime
}

// ClassColor returns the display color for a cluster index or class
// label. Indices wrap around the palette; negative indices (unassigned
// or unlabeled) map to gray.
func ClassColor(i int) color.Color {
	if i < 0 {
		return color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	}
	return classPalette[i%len(classPalette)]
}

// ClassFill returns a translucent version of ClassColor, used to tint
// filled regions without hiding the points drawn over them.
func ClassFill(i int) color.Color {
	c := ClassColor(i).(color.RGBA)
	c.A = 0x30
	return c
}
