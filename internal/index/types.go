package index

import "time"

// #region generation-record
// GenerationRecord is one row of the generation index: enough to re-derive
// and verify a generation without the original run YAML.
type GenerationRecord struct {
	GenerationID string
	RunName      string
	Seed         uint64
	Board        string
	Policy       string
	HeaderHash   string
	CreatedAt    time.Time
}

// #endregion generation-record

// #region decision-row
// DecisionRow is one recorded per-target outcome, in emission order.
type DecisionRow struct {
	Position   int
	TargetName string
	Kind       string
	Enabled    bool
	Attribute  string
}

// #endregion decision-row
