// Package pipeline composes the catalog, selector, resolver, and renderers
// into one pure transformation. Given identical inputs it produces byte-identical
// documents; nothing here touches the clock, the process environment, or
// any other ambient state.
package pipeline

import (
	"github.com/fatori-v/go-defines/internal/attr"
	"github.com/fatori-v/go-defines/internal/catalog"
	"github.com/fatori-v/go-defines/internal/render"
	"github.com/fatori-v/go-defines/internal/run"
	"github.com/fatori-v/go-defines/internal/selector"
)

// #region config
// Config bundles the per-stage configs for one generation.
type Config struct {
	Selector selector.Config
	Template attr.Template
	Header   render.HeaderConfig
	EmitTCL  bool // also render the pblock TCL for enabled targets
}

// DefaultConfig returns the stock generation parameters.
func DefaultConfig() Config {
	return Config{
		Selector: selector.DefaultConfig(),
		Template: attr.Default(),
		Header:   render.DefaultHeaderConfig(),
		EmitTCL:  true,
	}
}

// #endregion config

// #region result
// Result bundles everything one generation produced. Decisions are in
// catalog order; HeaderHash is the determinism receipt recorded in the
// generation index and compared on replay.
type Result struct {
	Decisions  []selector.Decision
	Header     string
	HeaderHash string
	Pblocks    string // "" when TCL emission is off
	Master     string
}

// #endregion result

// #region generate
// Generate runs the full pipeline for one run over one catalog.
func Generate(id run.Identity, cat catalog.Catalog, cfg Config) (Result, error) {
	decisions, err := selector.Select(id, cat.Targets, cfg.Selector)
	if err != nil {
		return Result{}, err
	}
	for i := range decisions {
		decisions[i].Attribute = cfg.Template.Resolve(decisions[i].Enabled)
	}

	header, err := render.RenderHeader(id, decisions, cfg.Header)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Decisions:  decisions,
		Header:     header,
		HeaderHash: HashDocument(header),
		Master:     render.RenderMaster(id.Name, []string{cfg.Header.FileName}),
	}
	if cfg.EmitTCL {
		res.Pblocks = render.RenderPblocks(decisions, cat.Board)
	}
	return res, nil
}

// #endregion generate
