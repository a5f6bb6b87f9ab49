// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package output formats inkctl results for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// ColorMode selects when the printer uses colors.
type ColorMode int

const (
	// ColorAuto colors output when stdout is a terminal and NO_COLOR is unset.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses the --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors decides whether to color output. terminal reports whether
// the output is an interactive terminal.
func ResolveColors(mode ColorMode, terminal bool) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		return terminal
	}
}

// Printer writes messages to an output and an error stream.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter creates a printer on out and errOut.
func NewPrinter(out, errOut io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: errOut, useColors: useColors}
}

// Out returns the output stream, for tables.
func (p *Printer) Out() io.Writer { return p.out }

func (p *Printer) paint(w io.Writer, attr color.Attribute, prefix, plain, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !p.useColors {
		fmt.Fprintf(w, "%s %s\n", plain, msg)
		return
	}
	c := color.New(attr)
	c.EnableColor()
	c.Fprintf(w, "%s %s\n", prefix, msg)
}

// Info prints an informational message.
func (p *Printer) Info(format string, args ...any) {
	if !p.useColors {
		fmt.Fprintf(p.out, format+"\n", args...)
		return
	}
	c := color.New(color.FgCyan)
	c.EnableColor()
	c.Fprintf(p.out, format+"\n", args...)
}

// Success prints a success message.
func (p *Printer) Success(format string, args ...any) {
	p.paint(p.out, color.FgGreen, "✓", "[OK]", format, args...)
}

// Warning prints a warning to the error stream.
func (p *Printer) Warning(format string, args ...any) {
	p.paint(p.err, color.FgYellow, "⚠", "[WARN]", format, args...)
}

// Error prints an error to the error stream.
func (p *Printer) Error(format string, args ...any) {
	p.paint(p.err, color.FgRed, "✗", "[ERROR]", format, args...)
}

// Print prints a plain line.
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Header prints a section title with an underline.
func (p *Printer) Header(title string) {
	if !p.useColors {
		fmt.Fprintf(p.out, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
		return
	}
	c := color.New(color.FgWhite, color.Bold)
	c.EnableColor()
	c.Fprintf(p.out, "\n%s\n", title)
	fmt.Fprintf(p.out, "%s\n", strings.Repeat("─", len(title)))
}

// Field prints a "label: value" line with the label padded to width.
func (p *Printer) Field(label string, width int, value string) {
	fmt.Fprintf(p.out, "  %-*s %s\n", width+1, label+":", value)
}

// Badge returns a short status marker.
func (p *Printer) Badge(ok bool) string {
	if !p.useColors {
		if ok {
			return "[ok]"
		}
		return "[fail]"
	}
	c := color.New(color.FgRed)
	mark := "●"
	if ok {
		c = color.New(color.FgGreen)
	}
	c.EnableColor()
	return c.Sprint(mark)
}

// Bold returns text in bold when colors are on.
func (p *Printer) Bold(text string) string {
	if !p.useColors {
		return text
	}
	c := color.New(color.Bold)
	c.EnableColor()
	return c.Sprint(text)
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
