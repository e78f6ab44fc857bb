package polis

import (
	"errors"
	"fmt"
)

var (
	ErrAtWar             = errors.New("cannot trade with a city-state at war")
	ErrTreatyExists      = errors.New("treaty already in force")
	ErrUnknownStructure  = errors.New("unknown structure")
	ErrUnknownUnit       = errors.New("unknown unit")
	ErrInvalidTaxRate    = errors.New("tax rate must be between 1 and 30")
	ErrUnknownCity       = errors.New("unknown city-state")
	ErrUnknownGovernment = errors.New("unknown government")
)

// InsufficientError reports which resource fell short of a cost.
type InsufficientError struct {
	Resource ResourceKind
	Have     int
	Need     int
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf("not enough %s: have %d, need %d", e.Resource, e.Have, e.Need)
}

// Missing is how much more of the resource the action requires.
func (e *InsufficientError) Missing() int { return e.Need - e.Have }
