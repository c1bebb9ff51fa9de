package fractal

// Palette is the depth-indexed table of material variants shared by a tree.
// Row d holds the two variants available to nodes at depth d.
type Palette struct {
	cells [][2]Material
}

// BuildPalette clones template once per cell. Rows below maxDepth fade from
// white toward yellow (variant 0) and cyan (variant 1) on squared normalized
// depth; the last row is magenta and red. Exactly 2*(maxDepth+1) materials
// are allocated.
//
// With maxDepth <= 1 the normalization has no range, so every interpolated row
// uses the far endpoint.
func BuildPalette(template Material, maxDepth int) *Palette {
	if maxDepth < 0 {
		maxDepth = 0
	}
	p := &Palette{cells: make([][2]Material, maxDepth+1)}
	for i := 0; i < maxDepth; i++ {
		t := float32(1)
		if maxDepth > 1 {
			t = float32(i) / float32(maxDepth-1)
			t *= t
		}
		p.cells[i][0] = template.WithColor(White.Lerp(Yellow, t))
		p.cells[i][1] = template.WithColor(White.Lerp(Cyan, t))
	}
	p.cells[maxDepth][0] = template.WithColor(Magenta)
	p.cells[maxDepth][1] = template.WithColor(Red)
	return p
}

// At returns the material for a depth and variant (0 or 1).
func (p *Palette) At(depth, variant int) Material {
	return p.cells[depth][variant]
}

// Rows returns the number of depth rows.
func (p *Palette) Rows() int {
	return len(p.cells)
}
