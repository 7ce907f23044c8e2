// Package render serializes decision sequences into the guarded define
// headers and Vivado TCL consumed by the downstream build. Rendering is
// pure: documents are built in memory and returned as strings, so a
// validation failure never leaves a partial file behind.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatori-v/go-defines/internal/run"
	"github.com/fatori-v/go-defines/internal/selector"
)

// #region errors
// ErrNameCollision is returned when two distinct target names normalize to
// the same define identifier. Detected before any output is produced; the
// downstream compiler must never be the one to find it.
var ErrNameCollision = errors.New("render: define name collision")

// #endregion errors

// #region config
// HeaderConfig fixes the document identity of a rendered header. The guard
// symbol derives from FileName, not from the run name: repeated generations
// into the same output slot intentionally share a guard so tooling that
// includes the file more than once stays safe.
type HeaderConfig struct {
	FileName string // output basename, also the guard source
	Prefix   string // define namespace, e.g. FATORI
	Title    string // banner headline
}

// DefaultHeaderConfig matches the header the RTL has always included.
func DefaultHeaderConfig() HeaderConfig {
	return HeaderConfig{
		FileName: "fatori_pblocks.svh",
		Prefix:   "FATORI",
		Title:    "FATORI-V • Generated Defines (Pblocks)",
	}
}

// #endregion config

// #region normalize

// NormalizeName maps a target name onto a define identifier fragment:
// upper-cased, with every byte outside [A-Z0-9_] replaced by '_'.
func NormalizeName(name string) string {
	up := strings.ToUpper(name)
	var b strings.Builder
	b.Grow(len(up))
	for _, r := range up {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// GuardSymbol derives the include-guard symbol from an output basename:
// "fatori_pblocks.svh" yields "FATORI_PBLOCKS_SVH".
func GuardSymbol(fileName string) string {
	return NormalizeName(fileName)
}

// #endregion normalize

// #region header
// RenderHeader serializes one run's decision sequence into the guarded
// define header, in decision order. Two defines are emitted per target:
// <PREFIX>_TARGET_<NAME> carries the boolean as 1/0, <PREFIX>_ATTR_<NAME>
// carries the attribute string (an empty expansion when disabled). Targets
// are never reordered, coalesced, or dropped.
func RenderHeader(id run.Identity, decisions []selector.Decision, cfg HeaderConfig) (string, error) {
	keys := make([]string, len(decisions))
	owner := make(map[string]string, len(decisions))
	for i, d := range decisions {
		key := NormalizeName(d.Target.Name)
		if prev, clash := owner[key]; clash {
			return "", fmt.Errorf("%w: %q and %q both normalize to %s",
				ErrNameCollision, prev, d.Target.Name, key)
		}
		owner[key] = d.Target.Name
		keys[i] = key
	}

	guard := GuardSymbol(cfg.FileName)

	var lines []string
	lines = append(lines, bannerBar)
	lines = append(lines, "// "+cfg.Title)
	lines = append(lines, "// File: "+cfg.FileName)
	lines = append(lines, bannerRule)
	lines = append(lines, fmt.Sprintf("// Run: %s", id.Name))
	lines = append(lines, fmt.Sprintf("// Seed: %d", id.Seed))
	lines = append(lines, fmt.Sprintf("// '%s_TARGET_<NAME>' expands to 1 or 0.", cfg.Prefix))
	lines = append(lines, fmt.Sprintf("// '%s_ATTR_<NAME>' expands to synthesis attributes when enabled.", cfg.Prefix))
	lines = append(lines, bannerBar)
	lines = append(lines, "")
	lines = append(lines, "`ifndef "+guard)
	lines = append(lines, "`define "+guard)
	lines = append(lines, "")

	for i, d := range decisions {
		on := 0
		if d.Enabled {
			on = 1
		}
		lines = append(lines, fmt.Sprintf("`define %s_TARGET_%s %d", cfg.Prefix, keys[i], on))
		lines = append(lines, fmt.Sprintf("`define %s_ATTR_%s %s", cfg.Prefix, keys[i], d.Attribute))
		lines = append(lines, "")
	}

	lines = append(lines, "`endif  // "+guard)

	return strings.Join(lines, "\n") + "\n", nil
}

const (
	bannerBar  = "// ============================================================================="
	bannerRule = "// -----------------------------------------------------------------------------"
)

// #endregion header
