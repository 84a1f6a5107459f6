package trace

// TraceLevel controls the verbosity of product tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelProducts captures every branch choice and every product exit.
	TraceLevelProducts TraceLevel = "products"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelProducts: true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects product records during a production run.
type SimulationTrace struct {
	Config   TraceConfig
	Branches []BranchRecord
	Exits    []ExitRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:   config,
		Branches: make([]BranchRecord, 0),
		Exits:    make([]ExitRecord, 0),
	}
}

// RecordBranch appends a branch choice record.
func (st *SimulationTrace) RecordBranch(record BranchRecord) {
	st.Branches = append(st.Branches, record)
}

// RecordExit appends a product exit record.
func (st *SimulationTrace) RecordExit(record ExitRecord) {
	st.Exits = append(st.Exits, record)
}
