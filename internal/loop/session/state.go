package session

// Outcome is the result of a frame.
type Outcome int

const (
	OutcomeNone    Outcome = iota // Session continues
	OutcomeDefeat                 // Shared hit points ran out
	OutcomeVictory                // Boss destroyed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session is over.
func (o Outcome) Terminal() bool {
	return o != OutcomeNone
}

// Stats are the session-wide counters.
type Stats struct {
	HP                 int `msgpack:"hp"`          // Shared hit point pool of both players
	Kills              int `msgpack:"kills"`       // Enemies destroyed by player weapons
	Missed             int `msgpack:"missed"`      // Enemies that left the field
	EnemyLevel         int `msgpack:"enemy_level"` // Enemy hit points and contact damage
	EnemyAttackCounter int `msgpack:"-"`           // Frames since the session started, for enemy volleys
	Frame              int `msgpack:"frame"`
}
