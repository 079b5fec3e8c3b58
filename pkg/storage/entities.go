package storage

import (
	"time"

	"github.com/google/uuid"

	"dnpsim/pkg/verify"
)

// Scenario is one checked operation set kept for later replay.
type Scenario struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Seed      uint64    `json:"seed"`
	Run       int       `json:"run"`
	// Catalog and Script together reproduce the operation set.
	Catalog      []string         `json:"catalog"`
	Script       string           `json:"script"`
	Outcome      verify.Outcome   `json:"outcome"`
	Permutations int              `json:"permutations"`
	Failed       int              `json:"failed"`
	Failures     []verify.Failure `json:"failures,omitempty"`
	// Violation is set when the resolver rejected the operation set.
	Violation string `json:"violation,omitempty"`
}

// Interesting reports whether the scenario exposed a problem.
func (s *Scenario) Interesting() bool {
	return s.Outcome != verify.Converged || s.Violation != ""
}

// NewScenario stamps a new scenario with a time-ordered id.
func NewScenario(catalog []string, script string) (*Scenario, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	return &Scenario{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		Catalog:   catalog,
		Script:    script,
	}, nil
}
