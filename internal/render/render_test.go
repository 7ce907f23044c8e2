package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/fatori-v/go-defines/internal/catalog"
	"github.com/fatori-v/go-defines/internal/run"
	"github.com/fatori-v/go-defines/internal/selector"
)

const keepAttr = `(* keep_hierarchy = "yes", dont_touch = "true" *)`

func makeDecision(name string, enabled bool) selector.Decision {
	d := selector.Decision{Target: catalog.Target{Name: name}, Enabled: enabled}
	if enabled {
		d.Attribute = keepAttr
	}
	return d
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"ALU":           "ALU",
		"alu":           "ALU",
		"branch-pred.0": "BRANCH_PRED_0",
		"core/if_stage": "CORE_IF_STAGE",
		"x y":           "X_Y",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGuardSymbol(t *testing.T) {
	if got := GuardSymbol("fatori_pblocks.svh"); got != "FATORI_PBLOCKS_SVH" {
		t.Fatalf("guard symbol %q", got)
	}
}

func TestRenderHeaderBaseline(t *testing.T) {
	id := run.Identity{Name: "baseline_example", Seed: 123456}
	decisions := []selector.Decision{
		makeDecision("ALU", true),
		makeDecision("BRANCH_PREDICTOR", true),
		makeDecision("MULTIPLIER", false),
	}

	doc, err := RenderHeader(id, decisions, DefaultHeaderConfig())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := strings.Join([]string{
		"// =============================================================================",
		"// FATORI-V • Generated Defines (Pblocks)",
		"// File: fatori_pblocks.svh",
		"// -----------------------------------------------------------------------------",
		"// Run: baseline_example",
		"// Seed: 123456",
		"// 'FATORI_TARGET_<NAME>' expands to 1 or 0.",
		"// 'FATORI_ATTR_<NAME>' expands to synthesis attributes when enabled.",
		"// =============================================================================",
		"",
		"`ifndef FATORI_PBLOCKS_SVH",
		"`define FATORI_PBLOCKS_SVH",
		"",
		"`define FATORI_TARGET_ALU 1",
		"`define FATORI_ATTR_ALU " + keepAttr,
		"",
		"`define FATORI_TARGET_BRANCH_PREDICTOR 1",
		"`define FATORI_ATTR_BRANCH_PREDICTOR " + keepAttr,
		"",
		"`define FATORI_TARGET_MULTIPLIER 0",
		"`define FATORI_ATTR_MULTIPLIER ",
		"",
		"`endif  // FATORI_PBLOCKS_SVH",
	}, "\n") + "\n"

	if doc != want {
		t.Fatalf("rendered document mismatch:\n--- got ---\n%s\n--- want ---\n%s", doc, want)
	}
}

func TestRenderHeaderIdempotent(t *testing.T) {
	id := run.Identity{Name: "r", Seed: 7}
	decisions := []selector.Decision{
		makeDecision("A", true),
		makeDecision("B", false),
	}

	first, err := RenderHeader(id, decisions, DefaultHeaderConfig())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := RenderHeader(id, decisions, DefaultHeaderConfig())
	if err != nil {
		t.Fatalf("render again: %v", err)
	}
	if first != second {
		t.Fatal("repeated rendering is not byte-identical")
	}
}

func TestRenderHeaderGuardSymmetry(t *testing.T) {
	id := run.Identity{Name: "r", Seed: 7}
	doc, err := RenderHeader(id, []selector.Decision{makeDecision("A", true)}, DefaultHeaderConfig())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if n := strings.Count(doc, "`ifndef FATORI_PBLOCKS_SVH"); n != 1 {
		t.Fatalf("ifndef count %d", n)
	}
	if n := strings.Count(doc, "`define FATORI_PBLOCKS_SVH"); n != 1 {
		t.Fatalf("guard define count %d", n)
	}
	if n := strings.Count(doc, "`endif  // FATORI_PBLOCKS_SVH"); n != 1 {
		t.Fatalf("endif count %d", n)
	}
}

func TestRenderHeaderPreservesOrderAndCount(t *testing.T) {
	id := run.Identity{Name: "r", Seed: 7}
	names := []string{"Z_LAST", "A_FIRST", "M_MIDDLE"}
	decisions := make([]selector.Decision, len(names))
	for i, n := range names {
		decisions[i] = makeDecision(n, true)
	}

	doc, err := RenderHeader(id, decisions, DefaultHeaderConfig())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if n := strings.Count(doc, "`define FATORI_TARGET_"); n != len(names) {
		t.Fatalf("target define count %d, want %d", n, len(names))
	}
	prev := -1
	for _, n := range names {
		pos := strings.Index(doc, "`define FATORI_TARGET_"+n+" ")
		if pos < 0 {
			t.Fatalf("target %s missing from document", n)
		}
		if pos < prev {
			t.Fatalf("target %s rendered out of input order", n)
		}
		prev = pos
	}
}

func TestRenderHeaderNameCollision(t *testing.T) {
	id := run.Identity{Name: "r", Seed: 7}
	decisions := []selector.Decision{
		makeDecision("core.alu", true),
		makeDecision("core-alu", false),
	}

	_, err := RenderHeader(id, decisions, DefaultHeaderConfig())
	if !errors.Is(err, ErrNameCollision) {
		t.Fatalf("expected ErrNameCollision, got %v", err)
	}
}

func TestRenderPblocks(t *testing.T) {
	decisions := []selector.Decision{
		{
			Target: catalog.Target{
				Name: "ALU",
				Path: "fatori_top/core_i/ex_stage_i/alu_i",
				Rects: []catalog.Rect{
					{X0: 10, Y0: 60, X1: 18, Y1: 119},
				},
			},
			Enabled:   true,
			Attribute: keepAttr,
		},
		makeDecision("MULTIPLIER", false),
	}

	tcl := RenderPblocks(decisions, "xcku040")

	if !strings.Contains(tcl, "create_pblock pb_ALU") {
		t.Fatal("missing create_pblock for enabled target")
	}
	if !strings.Contains(tcl, "resize_pblock [get_pblocks pb_ALU] -add {SLICE_X10Y60:SLICE_X18Y119}") {
		t.Fatal("missing resize_pblock rectangle")
	}
	if !strings.Contains(tcl, "add_cells_to_pblock [get_pblocks pb_ALU] [get_cells -hier -quiet fatori_top/core_i/ex_stage_i/alu_i]") {
		t.Fatal("missing cell attachment")
	}
	if strings.Contains(tcl, "MULTIPLIER") {
		t.Fatal("disabled target leaked into TCL")
	}
	if !strings.Contains(tcl, "# Board: xcku040") {
		t.Fatal("missing board banner line")
	}
}

func TestRenderMaster(t *testing.T) {
	doc := RenderMaster("baseline_example", []string{"/abs/path/fatori_pblocks.svh"})

	if !strings.Contains(doc, "`ifndef FATORI_DEFINES_SVH") {
		t.Fatal("missing master guard")
	}
	if !strings.Contains(doc, "`include \"fatori_pblocks.svh\"") {
		t.Fatal("include must use basename only")
	}
	if strings.Contains(doc, "/abs/path/") {
		t.Fatal("absolute path leaked into master header")
	}
	if !strings.Contains(doc, "// Run: baseline_example") {
		t.Fatal("missing run banner line")
	}
}
