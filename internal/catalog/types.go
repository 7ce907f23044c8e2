package catalog

// #region kind
// Kind labels the category of a hardware module target. Kinds bias or label
// selection downstream; they never change the emitted define shape.
type Kind string

const (
	KindComputeUnit    Kind = "compute-unit"
	KindPredictor      Kind = "predictor"
	KindArithmeticUnit Kind = "arithmetic-unit"
	KindUnspecified    Kind = ""
)

// #endregion kind

// #region rect
// Rect is one SLICE rectangle of a target's pblock footprint, in device
// coordinates (inclusive corners, matching Vivado SLICE_Xx0Yy0:SLICE_Xx1Yy1).
type Rect struct {
	X0 int `yaml:"x0"`
	Y0 int `yaml:"y0"`
	X1 int `yaml:"x1"`
	Y1 int `yaml:"y1"`
}

// #endregion rect

// #region target
// Target is one hardware module eligible for placement protection.
type Target struct {
	Name   string  // unique within a catalog; participates in seeded selection
	Kind   Kind    // optional category label
	Path   string  // hierarchical cell path used when attaching pblocks
	Weight float64 // eligibility weight, reserved for weighted policies
	Rects  []Rect  // pblock footprint; may be empty for defines-only targets
}

// #endregion target

// #region catalog
// Catalog is the ordered set of targets for one board. Order is part of the
// generation contract: it fixes both the per-target selection stream and the
// emission order of the rendered header.
type Catalog struct {
	Board   string
	Targets []Target
}

// Names returns the target names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c.Targets))
	for i, t := range c.Targets {
		names[i] = t.Name
	}
	return names
}

// Lookup returns the target with the given name, if present.
func (c Catalog) Lookup(name string) (Target, bool) {
	for _, t := range c.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// #endregion catalog
