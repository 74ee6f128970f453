package render

import (
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo"
)

func renderSVG(opts SnapshotOptions, s scene) error {
	file, err := os.Create(opts.Path)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	defer file.Close()
	return renderSVGToWriter(file, s)
}

func renderSVGToWriter(w io.Writer, s scene) error {
	canvas := svg.New(w)
	canvas.Start(s.Width, s.Height)
	canvas.Rect(0, 0, s.Width, s.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, s.Width-32, int(snapshotHeader)-24, 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))

	canvas.Text(32, 44, s.Title,
		fmt.Sprintf("fill:%s;font-size:15px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(32, 68, s.Summary,
		fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))

	// Edges first so nodes overdraw them.
	for _, e := range s.Frame.Edges {
		if e.Display.Hidden {
			continue
		}
		canvas.Line(int(e.X1), int(e.Y1), int(e.X2), int(e.Y2),
			fmt.Sprintf("stroke:%s;stroke-width:%.1f", e.Display.Color, e.Display.Size))
	}

	for _, n := range s.Frame.Nodes {
		if n.Display.Hidden {
			continue
		}
		x, y := int(n.X), int(n.Y)
		r := int(n.Display.Size)
		if r < 2 {
			r = 2
		}
		canvas.Circle(x, y, r,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", n.Display.Color, css(colorStroke)))
		if n.Display.Highlighted {
			canvas.Circle(x, y, r+4,
				fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", css(colorRing)))
		}
		if n.Display.Label != "" {
			canvas.Text(x+r+6, y+4, truncateLabel(n.Display.Label, 40),
				fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorText)))
		}
	}

	canvas.End()
	return nil
}
