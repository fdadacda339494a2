// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/relaycord/catalog"
	"github.com/bureau-foundation/relaycord/cmd/relaycord/cli"
	"github.com/bureau-foundation/relaycord/interaction"
	"github.com/bureau-foundation/relaycord/lib/config"
)

// stdout receives command output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// configFlags selects the configuration file and the command index.
type configFlags struct {
	Config  string `flag:"config" desc:"configuration file (default: $RELAYCORD_CONFIG, else built-in defaults)"`
	Catalog string `flag:"catalog" desc:"command index file (overrides catalog.path)"`
}

// loadConfig reads --config, else $RELAYCORD_CONFIG, else the
// defaults, and validates the result.
func (f configFlags) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case f.Config != "":
		cfg, err = config.LoadFile(f.Config)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openCatalog loads the command index. Commands are built without an
// engine, so they can build payloads but not invoke.
func (f configFlags) openCatalog(channel interaction.Channel) (*catalog.Catalog, error) {
	path := f.Catalog
	if path == "" {
		cfg, err := f.loadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Catalog.Path
	}
	if path == "" {
		return nil, cli.Usage("no command index: pass --catalog or set catalog.path in the configuration")
	}
	index, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	return catalog.New(nil, index, channel), nil
}

// displayFlags controls colored, width-limited terminal output.
type displayFlags struct {
	Color string `flag:"color" default:"auto" desc:"colorize output: auto, always or never"`
	Width int    `flag:"width" desc:"truncate lines to this width (default: terminal width, else unlimited)"`
}

// palette holds the styles used by the catalog views.
type palette struct {
	name     lipgloss.Style
	group    lipgloss.Style
	badge    lipgloss.Style
	faint    lipgloss.Style
	score    lipgloss.Style
	colorful bool
	width    int
}

func (f displayFlags) palette(w io.Writer) (palette, error) {
	renderer := lipgloss.NewRenderer(w)
	colorful := false
	switch f.Color {
	case "always":
		colorful = true
	case "never":
	case "auto":
		colorful = cli.IsTerminal(w)
	default:
		return palette{}, cli.Usage("--color must be auto, always or never, got %q", f.Color)
	}
	if colorful {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	width := f.Width
	if width == 0 {
		width = cli.TerminalWidth(w, 0)
	}
	return palette{
		name:     renderer.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
		group:    renderer.NewStyle().Foreground(lipgloss.Color("141")),
		badge:    renderer.NewStyle().Foreground(lipgloss.Color("245")),
		faint:    renderer.NewStyle().Foreground(lipgloss.Color("241")),
		score:    renderer.NewStyle().Foreground(lipgloss.Color("114")),
		colorful: colorful,
		width:    width,
	}, nil
}

// line writes text truncated to the palette width.
func (p palette) line(w io.Writer, text string) {
	if p.width > 0 {
		text = ansi.Truncate(text, p.width, "…")
	}
	fmt.Fprintln(w, text)
}
