// Command nlens is an interactive explorer for node-link graphs.
//
// Usage:
//
//	nlens graph.json              # open an interactive session
//	nlens -snapshot out.svg g.db  # export a static snapshot and exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/nodelens/nodelens/internal/datasource"
	"github.com/nodelens/nodelens/pkg/config"
	"github.com/nodelens/nodelens/pkg/debug"
	"github.com/nodelens/nodelens/pkg/layout"
	"github.com/nodelens/nodelens/pkg/metrics"
	"github.com/nodelens/nodelens/pkg/render"
	"github.com/nodelens/nodelens/pkg/ui"
	"github.com/nodelens/nodelens/pkg/version"
	"github.com/nodelens/nodelens/pkg/watcher"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	snapshotPath := flag.String("snapshot", "", "Export a static snapshot to this path and exit")
	snapshotFormat := flag.String("format", "", "Snapshot format (svg or png); inferred from path when empty")
	configPath := flag.String("config", "", "Config file path (default: XDG config dir)")
	noWatch := flag.Bool("no-watch", false, "Disable live reload of the graph file")
	flag.Parse()

	if *help {
		fmt.Println("Usage: nlens [options] <graph file>")
		fmt.Println("\nAn interactive explorer for node-link graphs (JSON or SQLite).")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("nlens %s\n", version.Version)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one graph file argument")
		fmt.Fprintln(os.Stderr, "Run 'nlens -help' for usage.")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		// Non-fatal: continue with defaults.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		cfg = config.DefaultConfig()
	}
	debug.Dump("config", cfg)

	start := time.Now()
	g, err := datasource.Load(context.Background(), path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading graph: %v\n", err)
		os.Exit(1)
	}
	debug.LogTiming("load graph", time.Since(start))
	debug.Log("loaded %d nodes, %d edges from %s", g.NodeCount(), g.EdgeCount(), path)

	// Snapshot mode: render and exit without a TUI.
	if *snapshotPath != "" {
		scores := metrics.Compute(g)
		positions := layout.Positions(g, scores)
		engine := render.NewEngine(g, positions, render.WithNodeSizer(func(id string) float64 {
			return scores.NodeSize(id, 4, 14)
		}))
		err := engine.SaveSnapshot(render.SnapshotOptions{
			Path:   *snapshotPath,
			Format: *snapshotFormat,
			Title:  path,
			Width:  cfg.Snapshot.Width,
			Height: cfg.Snapshot.Height,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *snapshotPath)
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal; use -snapshot for non-interactive export")
		os.Exit(1)
	}

	opts := []ui.ModelOption{ui.WithSourcePath(path)}
	if cfg.WatchEnabled() && !*noWatch {
		w, err := watcher.NewWatcher(path,
			watcher.WithDebounceDuration(time.Duration(cfg.Watch.DebounceMS)*time.Millisecond),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", path, err)
		} else if err := w.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", path, err)
		} else {
			defer w.Stop()
			opts = append(opts, ui.WithWatcher(w))
		}
	}

	m := ui.NewModel(g, cfg, opts...)
	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error running nlens: %v\n", err)
		os.Exit(1)
	}

	if debug.Enabled() {
		for _, s := range metrics.AllTimingStats() {
			debug.Log("timing %s: count=%d avg=%.2fms max=%.2fms", s.Name, s.Count, s.AvgMs, s.MaxMs)
		}
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set NLENS_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("NLENS_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
