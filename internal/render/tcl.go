package render

import (
	"fmt"
	"strings"

	"github.com/fatori-v/go-defines/internal/selector"
)

// #region tcl
// RenderPblocks emits the Vivado TCL creating one pblock per enabled
// target: create_pblock, one resize per footprint rectangle, and the cell
// attachment when the target carries a hierarchical path. Disabled targets
// are skipped entirely; the TCL, unlike the header, has no per-target
// disabled form.
func RenderPblocks(decisions []selector.Decision, board string) string {
	var lines []string
	lines = append(lines, tclBar)
	lines = append(lines, "# FATORI-V • Generated Vivado TCL (Pblocks)")
	lines = append(lines, "# File: fatori_pblocks.tcl")
	lines = append(lines, tclRule)
	lines = append(lines, fmt.Sprintf("# Board: %s", board))
	lines = append(lines, tclBar)
	lines = append(lines, "")

	for _, d := range decisions {
		if !d.Enabled {
			continue
		}
		pb := "pb_" + d.Target.Name
		lines = append(lines, "create_pblock "+pb)
		for _, r := range d.Target.Rects {
			lines = append(lines, fmt.Sprintf(
				"resize_pblock [get_pblocks %s] -add {%s}", pb, sliceRange(r.X0, r.Y0, r.X1, r.Y1)))
		}
		if path := strings.TrimSpace(d.Target.Path); path != "" {
			lines = append(lines, fmt.Sprintf(
				"add_cells_to_pblock [get_pblocks %s] [get_cells -hier -quiet %s]", pb, path))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n") + "\n"
}

func sliceRange(x0, y0, x1, y1 int) string {
	return fmt.Sprintf("SLICE_X%dY%d:SLICE_X%dY%d", x0, y0, x1, y1)
}

const (
	tclBar  = "# ============================================================================="
	tclRule = "# -----------------------------------------------------------------------------"
)

// #endregion tcl
