package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMap(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modules.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write map: %v", err)
	}
	return path
}

const sampleMap = `
board: xcku040
order: [ALU, BRANCH_PREDICTOR, MULTIPLIER]
targets:
  ALU:
    kind: arithmetic-unit
    path: fatori_top/core_i/ex_stage_i/alu_i
    weight: 1.0
    rects:
      - {x0: 10, y0: 60, x1: 18, y1: 119}
  BRANCH_PREDICTOR:
    kind: predictor
    path: fatori_top/core_i/if_stage_i/bp_i
  MULTIPLIER:
    kind: compute-unit
    path: fatori_top/core_i/ex_stage_i/mult_i
`

func TestLoadBoardMap(t *testing.T) {
	cat, err := LoadBoardMap(writeMap(t, sampleMap))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cat.Board != "xcku040" {
		t.Fatalf("board %q", cat.Board)
	}
	wantOrder := []string{"ALU", "BRANCH_PREDICTOR", "MULTIPLIER"}
	names := cat.Names()
	if len(names) != len(wantOrder) {
		t.Fatalf("target count %d", len(names))
	}
	for i, want := range wantOrder {
		if names[i] != want {
			t.Fatalf("position %d: %q, want %q", i, names[i], want)
		}
	}

	alu, ok := cat.Lookup("ALU")
	if !ok {
		t.Fatal("ALU missing")
	}
	if alu.Kind != KindArithmeticUnit {
		t.Fatalf("ALU kind %q", alu.Kind)
	}
	if len(alu.Rects) != 1 || alu.Rects[0].X1 != 18 {
		t.Fatalf("ALU rects %+v", alu.Rects)
	}
}

func TestLoadBoardMapSortsWithoutOrder(t *testing.T) {
	cat, err := LoadBoardMap(writeMap(t, `
board: xcku040
targets:
  ZETA: {path: a}
  ALPHA: {path: b}
  MID: {path: c}
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"ALPHA", "MID", "ZETA"}
	for i, n := range cat.Names() {
		if n != want[i] {
			t.Fatalf("position %d: %q, want %q", i, n, want[i])
		}
	}
}

func TestLoadBoardMapUnknownOrderEntry(t *testing.T) {
	_, err := LoadBoardMap(writeMap(t, `
board: xcku040
order: [ALU, GHOST]
targets:
  ALU: {path: a}
`))
	if err == nil {
		t.Fatal("expected error for order entry without definition")
	}
}

func TestLoadBoardMapDuplicateOrderEntry(t *testing.T) {
	_, err := LoadBoardMap(writeMap(t, `
board: xcku040
order: [ALU, ALU]
targets:
  ALU: {path: a}
`))
	if err == nil {
		t.Fatal("expected error for duplicate order entry")
	}
}

func TestLoadBoardMapTargetMissingFromOrder(t *testing.T) {
	_, err := LoadBoardMap(writeMap(t, `
board: xcku040
order: [ALU]
targets:
  ALU: {path: a}
  MULTIPLIER: {path: b}
`))
	if err == nil {
		t.Fatal("expected error for target missing from order list")
	}
}

func TestLoadBoardMapEmpty(t *testing.T) {
	_, err := LoadBoardMap(writeMap(t, "board: xcku040\n"))
	if err == nil {
		t.Fatal("expected error for empty board map")
	}
}
