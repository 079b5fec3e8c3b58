package verify

import "fmt"

// Outcome classifies how two replays, or a whole run, compare. Outcomes
// combine with bitwise OR, so a run is as bad as its worst replay.
type Outcome uint8

const (
	// Converged: the replays left identical entries.
	Converged Outcome = 0
	// PresenceConverged: the same values are present but CSN bookkeeping
	// or the dn history differ.
	PresenceConverged Outcome = 1
	// Diverged: value or attribute presence differs.
	Diverged Outcome = 3
)

func (o Outcome) String() string {
	switch o {
	case Converged:
		return "converged"
	case PresenceConverged:
		return "presence-converged"
	case Diverged:
		return "diverged"
	}
	return "unknown"
}

// ParseOutcome is the inverse of String.
func ParseOutcome(s string) (Outcome, bool) {
	for _, o := range []Outcome{Converged, PresenceConverged, Diverged} {
		if o.String() == s {
			return o, true
		}
	}
	return 0, false
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, ok := ParseOutcome(string(text))
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownOutcome, text)
	}
	*o = parsed
	return nil
}
