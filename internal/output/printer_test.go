// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package output

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input string
		want  ColorMode
	}{
		{"auto", ColorAuto},
		{"", ColorAuto},
		{"always", ColorAlways},
		{"never", ColorNever},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColorMode(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseColorMode(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}

	if _, err := ParseColorMode("rainbow"); err == nil {
		t.Error("expected error for invalid color mode")
	}
}

func TestResolveColors(t *testing.T) {
	t.Run("always wins over NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		if !ResolveColors(ColorAlways, false) {
			t.Error("ColorAlways should enable colors")
		}
	})

	t.Run("never", func(t *testing.T) {
		if ResolveColors(ColorNever, true) {
			t.Error("ColorNever should disable colors")
		}
	})

	t.Run("auto honours NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		if ResolveColors(ColorAuto, true) {
			t.Error("NO_COLOR should disable colors")
		}
	})

	t.Run("auto follows the terminal", func(t *testing.T) {
		t.Setenv("TERM", "xterm")
		t.Setenv("NO_COLOR", "")
		os.Unsetenv("NO_COLOR")
		if !ResolveColors(ColorAuto, true) {
			t.Error("expected colors on a terminal")
		}
		if ResolveColors(ColorAuto, false) {
			t.Error("expected no colors off a terminal")
		}
	})
}

func TestPrinterPlain(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false)

	p.Success("saved %s", "credentials")
	p.Warning("store unreachable")
	p.Error("boom")
	p.Header("Sales")

	if got := out.String(); !strings.Contains(got, "[OK] saved credentials") {
		t.Errorf("stdout = %q, want success line", got)
	}
	if got := out.String(); !strings.Contains(got, "Sales\n-----") {
		t.Errorf("stdout = %q, want underlined header", got)
	}
	if got := errOut.String(); !strings.Contains(got, "[WARN] store unreachable") || !strings.Contains(got, "[ERROR] boom") {
		t.Errorf("stderr = %q, want warning and error", got)
	}
	if p.Badge(true) != "[ok]" || p.Badge(false) != "[fail]" {
		t.Errorf("unexpected plain badges %q %q", p.Badge(true), p.Badge(false))
	}
}

func TestPrinterColors(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, true)

	p.Success("done")
	if !strings.Contains(out.String(), "\x1b[") {
		t.Errorf("expected ANSI escape in %q", out.String())
	}
	if !strings.Contains(p.Bold("x"), "\x1b[") {
		t.Error("Bold should add ANSI escapes")
	}
}

func TestPrinterJSON(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, false)

	if err := p.JSON(map[string]int{"count": 2}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if got, want := out.String(), "{\n  \"count\": 2\n}\n"; got != want {
		t.Errorf("JSON output = %q, want %q", got, want)
	}
}

func TestTableRender(t *testing.T) {
	var out bytes.Buffer
	tbl := NewTable(&out, "ID", "TITLE")
	tbl.AddRow("1", "Serverless 101")
	tbl.AddRow("art-9", "Cold Starts")

	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
	if err := tbl.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{"ID", "TITLE", "Serverless 101", "art-9", "Cold Starts"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("table output missing %q:\n%s", want, out.String())
		}
	}
}
