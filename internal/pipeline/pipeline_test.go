package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/fatori-v/go-defines/internal/catalog"
	"github.com/fatori-v/go-defines/internal/run"
	"github.com/fatori-v/go-defines/internal/selector"
)

func baselineCatalog() catalog.Catalog {
	return catalog.Catalog{
		Board: "xcku040",
		Targets: []catalog.Target{
			{Name: "ALU", Kind: catalog.KindArithmeticUnit,
				Path:  "fatori_top/core_i/ex_stage_i/alu_i",
				Rects: []catalog.Rect{{X0: 10, Y0: 60, X1: 18, Y1: 119}}},
			{Name: "BRANCH_PREDICTOR", Kind: catalog.KindPredictor,
				Path:  "fatori_top/core_i/if_stage_i/bp_i",
				Rects: []catalog.Rect{{X0: 20, Y0: 60, X1: 26, Y1: 99}}},
			{Name: "MULTIPLIER", Kind: catalog.KindComputeUnit,
				Path:  "fatori_top/core_i/ex_stage_i/mult_i",
				Rects: []catalog.Rect{{X0: 28, Y0: 60, X1: 34, Y1: 119}}},
		},
	}
}

func TestGenerateBaselineScenario(t *testing.T) {
	id := run.Identity{Name: "baseline_example", Seed: 123456}

	res, err := Generate(id, baselineCatalog(), DefaultConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(res.Decisions) != 3 {
		t.Fatalf("decision count %d", len(res.Decisions))
	}

	// Pinned outcome for this seed: ALU and BRANCH_PREDICTOR protected,
	// MULTIPLIER left free.
	wantLines := []string{
		"`define FATORI_TARGET_ALU 1",
		"`define FATORI_TARGET_BRANCH_PREDICTOR 1",
		"`define FATORI_TARGET_MULTIPLIER 0",
	}
	prev := -1
	for _, line := range wantLines {
		pos := strings.Index(res.Header, line)
		if pos < 0 {
			t.Fatalf("header missing %q", line)
		}
		if pos < prev {
			t.Fatalf("line %q out of order", line)
		}
		prev = pos
	}

	for _, d := range res.Decisions {
		if d.Enabled && d.Attribute == "" {
			t.Fatalf("%s: enabled with empty attribute", d.Target.Name)
		}
		if !d.Enabled && d.Attribute != "" {
			t.Fatalf("%s: disabled with attribute %q", d.Target.Name, d.Attribute)
		}
	}

	if !strings.Contains(res.Pblocks, "create_pblock pb_ALU") {
		t.Fatal("TCL missing enabled pblock")
	}
	if strings.Contains(res.Pblocks, "pb_MULTIPLIER") {
		t.Fatal("TCL contains disabled pblock")
	}
	if !strings.Contains(res.Master, "`include \"fatori_pblocks.svh\"") {
		t.Fatal("master header missing include")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	id := run.Identity{Name: "repeat", Seed: 42}
	cat := baselineCatalog()

	first, err := Generate(id, cat, DefaultConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := Generate(id, cat, DefaultConfig())
	if err != nil {
		t.Fatalf("generate again: %v", err)
	}

	if first.Header != second.Header {
		t.Fatal("headers differ across identical invocations")
	}
	if first.Pblocks != second.Pblocks {
		t.Fatal("TCL differs across identical invocations")
	}
	if first.HeaderHash != second.HeaderHash {
		t.Fatal("header hashes differ across identical invocations")
	}
}

func TestGenerateHashMatchesHeader(t *testing.T) {
	res, err := Generate(run.Identity{Name: "r", Seed: 7}, baselineCatalog(), DefaultConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.HeaderHash != HashDocument(res.Header) {
		t.Fatal("HeaderHash is not the hash of the rendered header")
	}
}

func TestGenerateEmptyCatalog(t *testing.T) {
	_, err := Generate(run.Identity{Name: "r", Seed: 7}, catalog.Catalog{}, DefaultConfig())
	if !errors.Is(err, selector.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestGenerateNoTCL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EmitTCL = false

	res, err := Generate(run.Identity{Name: "r", Seed: 7}, baselineCatalog(), cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Pblocks != "" {
		t.Fatal("TCL rendered with EmitTCL off")
	}
}

func TestGenerateCollisionProducesNoOutput(t *testing.T) {
	cat := catalog.Catalog{Targets: []catalog.Target{
		{Name: "core.alu"},
		{Name: "core-alu"},
	}}

	res, err := Generate(run.Identity{Name: "r", Seed: 7}, cat, DefaultConfig())
	if err == nil {
		t.Fatal("expected a name collision error")
	}
	if res.Header != "" || res.Pblocks != "" || res.Master != "" {
		t.Fatal("collision failure leaked partial output")
	}
}
