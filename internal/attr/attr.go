// Package attr owns the synthesis-attribute vocabulary. Resolution is a
// pure lookup: all nondeterminism lives in the selector, which keeps the
// emitted attribute strings auditable and stable across tool versions.
package attr

// #region template
// Template is one versioned attribute vocabulary. New vocabularies are
// added as new values, never by editing an existing one in place.
type Template struct {
	Version string
	Enabled string // attribute string applied to protected targets
}

// VivadoKeepV1 preserves module hierarchy through Vivado synthesis and
// excludes the module from optimization, so pblock assignment still has a
// boundary to attach to.
var VivadoKeepV1 = Template{
	Version: "vivado-keep-v1",
	Enabled: `(* keep_hierarchy = "yes", dont_touch = "true" *)`,
}

// Default returns the vocabulary the flow has always emitted.
func Default() Template {
	return VivadoKeepV1
}

// #endregion template

// #region resolve
// Resolve maps a selection outcome to its attribute string. Disabled
// targets always resolve to the empty expansion.
func (t Template) Resolve(enabled bool) string {
	if enabled {
		return t.Enabled
	}
	return ""
}

// #endregion resolve
