package vm

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the monochrome framebuffer. Each cell holds 0 or 1, stored row
// major. The drawing surface wraps around at both edges.
type Display struct {
	cells [DisplayWidth * DisplayHeight]byte
}

// DrawSprite XORs the sprite rows into the framebuffer at position x, y.
// Each row byte is 8 pixels wide with the most significant bit leftmost.
// It returns whether any set pixel was cleared.
func (d *Display) DrawSprite(rows []byte, x, y byte) bool {
	collided := false

	for row, bits := range rows {
		cy := (int(y) + row) % DisplayHeight

		for bit := range 8 {
			if bits&(0x80>>bit) == 0 {
				continue
			}

			cx := (int(x) + bit) % DisplayWidth
			cell := &d.cells[cy*DisplayWidth+cx]
			if *cell == 1 {
				collided = true
			}
			*cell ^= 1
		}
	}

	return collided
}

// Clear resets all pixels.
func (d *Display) Clear() {
	clear(d.cells[:])
}

// Framebuffer returns the cells of the display, row major. The returned
// slice aliases the display and must not be modified.
func (d *Display) Framebuffer() []byte {
	return d.cells[:]
}

// Pixel returns the cell value at the given coordinates, which wrap.
func (d *Display) Pixel(x, y int) byte {
	x = ((x % DisplayWidth) + DisplayWidth) % DisplayWidth
	y = ((y % DisplayHeight) + DisplayHeight) % DisplayHeight
	return d.cells[y*DisplayWidth+x]
}
