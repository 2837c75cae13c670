package domain

import (
	"fmt"
	"strings"
)

// Criterion is the optimization objective of a single search.
type Criterion int

const (
	Cheapest Criterion = iota
	Fastest
	Optimal
)

var criterionNames = [...]string{"cheapest", "fastest", "optimal"}

// Criteria returns every criterion in reporting order.
func Criteria() []Criterion {
	return []Criterion{Cheapest, Fastest, Optimal}
}

func ParseCriterion(s string) (Criterion, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range criterionNames {
		if n == name {
			return Criterion(i), nil
		}
	}
	return 0, fmt.Errorf("parse criterion %q: %w", s, ErrUnknownCriterion)
}

func (c Criterion) Valid() bool { return c >= Cheapest && c <= Optimal }

func (c Criterion) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Criterion(%d)", int(c))
	}
	return criterionNames[c]
}

func (c Criterion) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("marshal criterion %d: %w", int(c), ErrUnknownCriterion)
	}
	return []byte(c.String()), nil
}

func (c *Criterion) UnmarshalText(b []byte) error {
	parsed, err := ParseCriterion(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
