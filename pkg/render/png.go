package render

import (
	"fmt"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

func renderPNG(opts SnapshotOptions, s scene) error {
	dc := gg.NewContext(s.Width, s.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 16, float64(s.Width)-32, snapshotHeader-24, 10)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(colorText)
	dc.DrawStringAnchored(s.Title, 32, 44, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(s.Summary, 32, 68, 0, 0.5)

	for _, e := range s.Frame.Edges {
		if e.Display.Hidden {
			continue
		}
		dc.SetColor(parseHex(e.Display.Color))
		dc.SetLineWidth(e.Display.Size)
		dc.DrawLine(e.X1, e.Y1, e.X2, e.Y2)
		dc.Stroke()
	}

	for _, n := range s.Frame.Nodes {
		if n.Display.Hidden {
			continue
		}
		r := n.Display.Size
		if r < 2 {
			r = 2
		}
		dc.SetColor(parseHex(n.Display.Color))
		dc.DrawCircle(n.X, n.Y, r)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1)
		dc.DrawCircle(n.X, n.Y, r)
		dc.Stroke()

		if n.Display.Highlighted {
			dc.SetColor(colorRing)
			dc.SetLineWidth(2)
			dc.DrawCircle(n.X, n.Y, r+4)
			dc.Stroke()
		}

		if n.Display.Label != "" {
			dc.SetColor(colorText)
			dc.DrawStringAnchored(truncateLabel(n.Display.Label, 40), n.X+r+6, n.Y, 0, 0.5)
		}
	}

	if err := dc.SavePNG(opts.Path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}
