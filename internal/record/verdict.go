package record

// AuthorState describes whether a claimed authorship fact agrees with the
// external source of truth.
type AuthorState string

const (
	StateMatch    AuthorState = "match"
	StateMismatch AuthorState = "mismatch"
	StateUnknown  AuthorState = "unknown"
)

// OverallStatus summarizes a verdict for display and reporting.
type OverallStatus string

const (
	StatusGood    OverallStatus = "good"
	StatusWarning OverallStatus = "warning"
	StatusBad     OverallStatus = "bad"
)

// Verdict is the outcome of verifying a record's claimed authors against
// an external author list. It is a pure function of the two author lists
// and is recomputed whenever either side changes, never mutated in place.
type Verdict struct {
	Authorship AuthorState   `json:"authorship"`
	Position   AuthorState   `json:"position"`
	Status     OverallStatus `json:"status"`
	Details    string        `json:"details"`
}
