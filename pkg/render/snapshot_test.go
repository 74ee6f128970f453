package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/nodelens/nodelens/pkg/explore"
)

func TestSaveSnapshot_SVGAndPNG(t *testing.T) {
	e := NewEngine(testGraph(t), testPositions())
	tmp := t.TempDir()

	cases := []struct {
		name string
		file string
	}{
		{"svg", "graph.svg"},
		{"png", "graph.png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(tmp, tc.file)
			if err := e.SaveSnapshot(SnapshotOptions{Path: out, Title: "test graph"}); err != nil {
				t.Fatalf("SaveSnapshot error: %v", err)
			}
			info, err := os.Stat(out)
			if err != nil {
				t.Fatalf("output not created: %v", err)
			}
			if info.Size() == 0 {
				t.Fatal("output file is empty")
			}
		})
	}
}

func TestSaveSnapshotInfersFormatAndAppendsExtension(t *testing.T) {
	e := NewEngine(testGraph(t), testPositions())
	tmp := t.TempDir()

	out := filepath.Join(tmp, "noext")
	if err := e.SaveSnapshot(SnapshotOptions{Path: out}); err != nil {
		t.Fatalf("SaveSnapshot error: %v", err)
	}
	if _, err := os.Stat(out + ".svg"); err != nil {
		t.Fatalf("expected %s.svg to exist: %v", out, err)
	}
}

func TestSaveSnapshotRejectsUnknownFormat(t *testing.T) {
	e := NewEngine(testGraph(t), testPositions())
	err := e.SaveSnapshot(SnapshotOptions{Path: "out.gif", Format: "gif"})
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestRenderSVGReflectsOverlayState(t *testing.T) {
	e := NewEngine(testGraph(t), testPositions())
	e.SetNodeReducer(func(id string, base explore.Display) explore.Display {
		switch id {
		case "B":
			base.Highlighted = true
		case "C":
			base.Label = ""
			base.Color = explore.DefaultMutedColor
		}
		return base
	})
	e.SetEdgeReducer(func(id string, base explore.Display) explore.Display {
		if id == "bc" {
			base.Hidden = true
		}
		return base
	})

	var b strings.Builder
	s := projectFrame(e.Frame(), SnapshotOptions{Width: 800, Height: 600, Title: "overlay"})
	if err := renderSVGToWriter(&b, s); err != nil {
		t.Fatalf("renderSVGToWriter: %v", err)
	}
	out := b.String()

	if !strings.Contains(out, "overlay") {
		t.Error("title missing from SVG")
	}
	if !strings.Contains(out, "Alice") || !strings.Contains(out, "Bob") {
		t.Error("visible node labels missing from SVG")
	}
	if strings.Contains(out, "Carol") {
		t.Error("dimmed node must not render its label")
	}
	if !strings.Contains(out, explore.DefaultMutedColor) {
		t.Error("muted color missing from SVG")
	}
	// Highlight ring around the selected node.
	if !strings.Contains(out, css(colorRing)) {
		t.Error("highlight ring missing from SVG")
	}
	// One visible edge of two.
	if !strings.Contains(out, "edges: 1/2 visible") {
		t.Errorf("summary line wrong:\n%s", out)
	}
}

func TestProjectFramePreservesRelativeLayout(t *testing.T) {
	e := NewEngine(testGraph(t), testPositions())
	s := projectFrame(e.Frame(), SnapshotOptions{Width: 1000, Height: 800})

	byID := map[string]NodeView{}
	for _, n := range s.Frame.Nodes {
		byID[n.ID] = n
	}
	if byID["A"].X >= byID["B"].X {
		t.Error("projection flipped the x axis")
	}
	if byID["A"].Y >= byID["C"].Y {
		t.Error("projection flipped the y axis")
	}
	for id, n := range byID {
		if n.X < 0 || n.X > 1000 || n.Y < 0 || n.Y > 800 {
			t.Errorf("node %s projected off canvas: (%v, %v)", id, n.X, n.Y)
		}
	}
}

func TestTruncateLabelKeepsRunesIntact(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"overlong label", 5, "over…"},
		{"héllo wörld", 6, "héllo…"},
		{"日本語ラベル", 4, "日本語…"},
		{"日本語", 1, "日"},
	}
	for _, tt := range tests {
		got := truncateLabel(tt.in, tt.max)
		if got != tt.want {
			t.Errorf("truncateLabel(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncateLabel(%q, %d) produced invalid UTF-8", tt.in, tt.max)
		}
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#ff0000", "#ff0000"},
		{"#e22", "#ee2222"},
		{"bogus", css(colorStroke)},
		{"", css(colorStroke)},
	}
	for _, tt := range tests {
		if got := css(parseHex(tt.in)); got != tt.want {
			t.Errorf("parseHex(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
