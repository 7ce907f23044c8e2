package render

import "strings"

// #region master
// RenderMaster emits the consolidated fatori_defines.svh that the RTL
// includes directly. Feature headers are included by basename only, so the
// RTL resolves them from the defines directory and no absolute paths leak
// into the build.
func RenderMaster(runName string, includes []string) string {
	var b strings.Builder
	b.WriteString(bannerBar + "\n")
	b.WriteString("// Auto-generated by definegen\n")
	b.WriteString("// Run: " + runName + "\n")
	b.WriteString(bannerBar + "\n\n")
	b.WriteString("`ifndef FATORI_DEFINES_SVH\n`define FATORI_DEFINES_SVH\n\n")
	for _, inc := range includes {
		b.WriteString("`include \"" + baseName(inc) + "\"\n")
	}
	b.WriteString("\n`endif\n")
	return b.String()
}

func baseName(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

// #endregion master
