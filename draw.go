package grasp

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Draw paints the tree onto screen in painter order: parents before
// children, siblings in child order. Only rect and image nodes produce
// output. Invisible subtrees and fully transparent nodes are skipped, so a
// Button's hidden state visuals cost nothing.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.drawNode(screen, s.root)
	s.flushScreenshots(screen)
}

func (s *Scene) drawNode(screen *ebiten.Image, n *Node) {
	if !n.Visible || n.worldAlpha <= 0 {
		return
	}
	switch n.Type {
	case NodeTypeRect:
		drawQuad(screen, WhitePixel, n, n.Width, n.Height)
	case NodeTypeImage:
		if n.image != nil {
			b := n.image.Bounds()
			if b.Dx() > 0 && b.Dy() > 0 {
				drawQuad(screen, n.image, n, n.Width/float64(b.Dx()), n.Height/float64(b.Dy()))
			}
		}
	}
	for _, child := range n.children {
		s.drawNode(screen, child)
	}
}

// drawQuad draws img scaled by (sx, sy) in n's local space, tinted by n's
// color and faded by its world alpha.
func drawQuad(screen, img *ebiten.Image, n *Node, sx, sy float64) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(sx, sy)
	op.GeoM.Concat(geoM(n.worldTransform))
	a := n.Color.A * n.worldAlpha
	op.ColorScale.Scale(float32(n.Color.R*a), float32(n.Color.G*a), float32(n.Color.B*a), float32(a))
	screen.DrawImage(img, &op)
}

// geoM converts an affine matrix [a, b, c, d, tx, ty] to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// toRGBA converts a Color to a premultiplied colorRGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
