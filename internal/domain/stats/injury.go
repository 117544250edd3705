package stats

// InjuryStatus is a player's game-day availability designation.
type InjuryStatus string

const (
	StatusOut          InjuryStatus = "Out"
	StatusDoubtful     InjuryStatus = "Doubtful"
	StatusQuestionable InjuryStatus = "Questionable"
	StatusActive       InjuryStatus = "Active"
)

// InjuryRecord is a single player's current injury report entry. The engine
// only consumes these; the feed that produces them is external.
type InjuryRecord struct {
	PlayerID string
	Team     string
	// Position is the report's free-form position code. Besides the roster
	// positions this includes offensive-line codes (C, G, T, OL) that only
	// matter for the defensive boost calculation.
	Position   string
	Status     InjuryStatus
	InjuryType string
	// Severity, when Known, overrides the status-derived impact. Range [0,1].
	Severity      float64
	SeverityKnown bool
	// Starter marks a starting player; a backup QB being out does not move
	// the opposing defense's projection.
	Starter bool
}
