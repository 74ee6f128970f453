package render

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/nodelens/nodelens/pkg/metrics"
)

// SnapshotOptions controls static snapshot export.
type SnapshotOptions struct {
	Path   string // Output path; format inferred from extension when Format empty
	Format string // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title  string // Optional title rendered in the summary block
	Width  int    // Canvas width in pixels; 0 means the default
	Height int    // Canvas height in pixels; 0 means the default
}

const (
	defaultSnapshotWidth  = 1280
	defaultSnapshotHeight = 900
	snapshotHeader        = 96.0
	snapshotMargin        = 48.0
)

var (
	colorBackdrop = color.RGBA{R: 0xfa, G: 0xfa, B: 0xfb, A: 0xff}
	colorHeaderBG = color.RGBA{R: 0xee, G: 0xf0, B: 0xf4, A: 0xff}
	colorText     = color.RGBA{R: 0x20, G: 0x24, B: 0x2c, A: 0xff}
	colorSubtle   = color.RGBA{R: 0x6a, G: 0x70, B: 0x7c, A: 0xff}
	colorStroke   = color.RGBA{R: 0x9a, G: 0xa0, B: 0xac, A: 0xff}
	colorRing     = color.RGBA{R: 0xd8, G: 0x32, B: 0x2a, A: 0xff}
)

// SaveSnapshot renders the engine's current frame to a static file. The
// snapshot captures exactly what the overlay shows: dimmed nodes are drawn
// muted without labels, hidden edges are not drawn at all, and highlighted
// nodes get a ring.
func (e *Engine) SaveSnapshot(opts SnapshotOptions) error {
	defer metrics.Timer(metrics.SnapshotExport)()

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg" // safe default
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path = opts.Path + ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.Width <= 0 {
		opts.Width = defaultSnapshotWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultSnapshotHeight
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create parent dir: %w", err)
		}
	}

	frame := e.Frame()
	scene := projectFrame(frame, opts)

	switch format {
	case "svg":
		return renderSVG(opts, scene)
	case "png":
		return renderPNG(opts, scene)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

// --- projection ------------------------------------------------------------

// scene is a frame projected from abstract graph coordinates onto the canvas.
type scene struct {
	Frame   Frame
	Width   int
	Height  int
	Title   string
	Summary string
}

// projectFrame maps the frame's abstract coordinates into the drawable area
// below the header, preserving aspect ratio.
func projectFrame(f Frame, opts SnapshotOptions) scene {
	s := scene{
		Frame:   f,
		Width:   opts.Width,
		Height:  opts.Height,
		Title:   opts.Title,
		Summary: f.Summary(),
	}
	if s.Title == "" {
		s.Title = "graph snapshot"
	}
	if len(f.Nodes) == 0 {
		return s
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range f.Nodes {
		minX = math.Min(minX, n.X)
		maxX = math.Max(maxX, n.X)
		minY = math.Min(minY, n.Y)
		maxY = math.Max(maxY, n.Y)
	}
	if maxX == minX {
		minX, maxX = minX-1, maxX+1
	}
	if maxY == minY {
		minY, maxY = minY-1, maxY+1
	}

	drawW := float64(opts.Width) - 2*snapshotMargin
	drawH := float64(opts.Height) - snapshotHeader - 2*snapshotMargin
	scale := math.Min(drawW/(maxX-minX), drawH/(maxY-minY))

	// Center the drawing in the available area.
	offX := snapshotMargin + (drawW-(maxX-minX)*scale)/2
	offY := snapshotHeader + snapshotMargin + (drawH-(maxY-minY)*scale)/2

	px := func(x float64) float64 { return offX + (x-minX)*scale }
	py := func(y float64) float64 { return offY + (y-minY)*scale }

	nodes := make([]NodeView, len(f.Nodes))
	for i, n := range f.Nodes {
		n.X, n.Y = px(n.X), py(n.Y)
		nodes[i] = n
	}
	edges := make([]EdgeView, len(f.Edges))
	for i, e := range f.Edges {
		e.X1, e.Y1 = px(e.X1), py(e.Y1)
		e.X2, e.Y2 = px(e.X2), py(e.Y2)
		edges[i] = e
	}
	s.Frame = Frame{Nodes: nodes, Edges: edges}
	return s
}

// --- color helpers ---------------------------------------------------------

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// parseHex parses #rgb and #rrggbb strings, falling back to the stroke gray
// for anything it cannot read. Reducer output is untrusted display data; a
// bad color must not abort a snapshot.
func parseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	var r, g, b uint8
	switch len(s) {
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return colorStroke
		}
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 0xff}
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return colorStroke
		}
		return color.RGBA{R: r, G: g, B: b, A: 0xff}
	default:
		return colorStroke
	}
}

// truncateLabel shortens a label to max runes. Labels are untrusted input;
// cutting on bytes could split a rune and feed invalid UTF-8 to the canvas.
func truncateLabel(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
