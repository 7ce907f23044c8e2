package run

// #region identity
// Identity names one generation invocation. It is immutable once constructed
// and is consumed only as selector input; the pipeline never mutates it.
type Identity struct {
	Name string
	Seed uint64
}

// #endregion identity

// #region selection-spec
// SelectionSpec is the 'selection' section of a run YAML, kept as plain
// strings and numbers. The cmd layer maps it onto a selector config so this
// package stays free of selection semantics.
type SelectionSpec struct {
	Policy       string   `yaml:"policy"`
	Bias         float64  `yaml:"bias"`
	Percentage   int      `yaml:"percentage"`
	ForceEnable  []string `yaml:"force_enable"`
	ForceDisable []string `yaml:"force_disable"`
}

// #endregion selection-spec

// #region config
// Config is everything the generator reads from one run YAML.
type Config struct {
	Identity     Identity
	SeedProvided bool // false when the YAML omits run.identification.seed
	Board        string
	Selection    SelectionSpec
}

// #endregion config
