// Package fixture pins generations as golden JSON files: the full pipeline
// input plus the expected decision sequence and header hash. Replaying a
// fixture is the repo's end-to-end determinism check: any drift in the
// mixing, rendering, or vocabulary shows up as a hash mismatch.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatori-v/go-defines/internal/catalog"
	"github.com/fatori-v/go-defines/internal/pipeline"
	"github.com/fatori-v/go-defines/internal/run"
	"github.com/fatori-v/go-defines/internal/selector"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a pinned generation.
type Fixture struct {
	Description string            `json:"description,omitempty"`
	Run         FixtureRun        `json:"run"`
	Board       string            `json:"board,omitempty"`
	Targets     []FixtureTarget   `json:"targets"`
	Selection   FixtureSelection  `json:"selection"`
	Expected    FixtureExpected   `json:"expected"`
}

// FixtureRun mirrors run.Identity with JSON tags.
type FixtureRun struct {
	Name string `json:"name"`
	Seed uint64 `json:"seed"`
}

// FixtureTarget mirrors catalog.Target with JSON tags.
type FixtureTarget struct {
	Name   string         `json:"name"`
	Kind   string         `json:"kind,omitempty"`
	Path   string         `json:"path,omitempty"`
	Weight float64        `json:"weight,omitempty"`
	Rects  []FixtureRect  `json:"rects,omitempty"`
}

// FixtureRect mirrors catalog.Rect with JSON tags.
type FixtureRect struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// FixtureSelection mirrors selector.Config with JSON tags.
type FixtureSelection struct {
	Policy       string   `json:"policy"`
	Bias         float64  `json:"bias,omitempty"`
	Percentage   int      `json:"percentage,omitempty"`
	ForceEnable  []string `json:"force_enable,omitempty"`
	ForceDisable []string `json:"force_disable,omitempty"`
}

// FixtureDecision captures the expected outcome per target.
type FixtureDecision struct {
	Target  string `json:"target"`
	Enabled bool   `json:"enabled"`
}

// FixtureExpected pins the generation outcome.
type FixtureExpected struct {
	HeaderHash string            `json:"header_hash"`
	Decisions  []FixtureDecision `json:"decisions"`
}

// #endregion fixture-types

// #region io

// Load reads a fixture JSON from disk.
func Load(path string) (Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return f, nil
}

// Save writes a fixture JSON to disk, indented for review in diffs.
func Save(path string, f Fixture) error {
	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	return nil
}

// #endregion io

// #region export

// Export runs the pipeline over live inputs and pins the outcome.
func Export(id run.Identity, cat catalog.Catalog, cfg pipeline.Config, description string) (Fixture, error) {
	res, err := pipeline.Generate(id, cat, cfg)
	if err != nil {
		return Fixture{}, fmt.Errorf("generate for export: %w", err)
	}

	f := Fixture{
		Description: description,
		Run:         FixtureRun{Name: id.Name, Seed: id.Seed},
		Board:       cat.Board,
		Targets:     targetsOut(cat.Targets),
		Selection:   selectionOut(cfg.Selector),
		Expected: FixtureExpected{
			HeaderHash: res.HeaderHash,
			Decisions:  decisionsOut(res.Decisions),
		},
	}
	return f, nil
}

// #endregion export

// #region conversions

// Catalog rebuilds the ordered catalog a fixture describes.
func (f Fixture) Catalog() catalog.Catalog {
	targets := make([]catalog.Target, len(f.Targets))
	for i, t := range f.Targets {
		rects := make([]catalog.Rect, len(t.Rects))
		for j, r := range t.Rects {
			rects[j] = catalog.Rect{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y1}
		}
		targets[i] = catalog.Target{
			Name:   t.Name,
			Kind:   catalog.Kind(t.Kind),
			Path:   t.Path,
			Weight: t.Weight,
			Rects:  rects,
		}
	}
	return catalog.Catalog{Board: f.Board, Targets: targets}
}

// SelectorConfig rebuilds the selection config a fixture describes.
func (f Fixture) SelectorConfig() selector.Config {
	return selector.Config{
		Policy:       selector.Policy(f.Selection.Policy),
		Bias:         f.Selection.Bias,
		Percentage:   f.Selection.Percentage,
		ForceEnable:  f.Selection.ForceEnable,
		ForceDisable: f.Selection.ForceDisable,
	}
}

func targetsOut(targets []catalog.Target) []FixtureTarget {
	out := make([]FixtureTarget, len(targets))
	for i, t := range targets {
		rects := make([]FixtureRect, len(t.Rects))
		for j, r := range t.Rects {
			rects[j] = FixtureRect{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y1}
		}
		out[i] = FixtureTarget{
			Name:   t.Name,
			Kind:   string(t.Kind),
			Path:   t.Path,
			Weight: t.Weight,
			Rects:  rects,
		}
	}
	return out
}

func selectionOut(cfg selector.Config) FixtureSelection {
	return FixtureSelection{
		Policy:       string(cfg.Policy),
		Bias:         cfg.Bias,
		Percentage:   cfg.Percentage,
		ForceEnable:  cfg.ForceEnable,
		ForceDisable: cfg.ForceDisable,
	}
}

func decisionsOut(decisions []selector.Decision) []FixtureDecision {
	out := make([]FixtureDecision, len(decisions))
	for i, d := range decisions {
		out[i] = FixtureDecision{Target: d.Target.Name, Enabled: d.Enabled}
	}
	return out
}

// #endregion conversions
