// Package polis defines the city-state game domain: resources, policies,
// relationships, events and the game snapshot, plus the player actions that
// transform one snapshot into the next.
package polis

import "fmt"

type ResourceKind string

const (
	Gold       ResourceKind = "gold"
	Food       ResourceKind = "food"
	Population ResourceKind = "population"
	Military   ResourceKind = "military"
	Happiness  ResourceKind = "happiness"
)

// ResourceKinds lists every resource in ledger order.
var ResourceKinds = []ResourceKind{Gold, Food, Population, Military, Happiness}

func (k ResourceKind) Valid() bool { return contains(ResourceKinds, k) }

func (k *ResourceKind) UnmarshalText(b []byte) error {
	return parseEnum(b, ResourceKinds, "resource", k)
}

type Government string

const (
	Democracy              Government = "Democracy"
	Oligarchy              Government = "Oligarchy"
	Tyranny                Government = "Tyranny"
	Aristocracy            Government = "Aristocracy"
	Timocracy              Government = "Timocracy"
	ConstitutionalMonarchy Government = "ConstitutionalMonarchy"
)

var Governments = []Government{Democracy, Oligarchy, Tyranny, Aristocracy, Timocracy, ConstitutionalMonarchy}

func (g Government) Valid() bool { return contains(Governments, g) }

func (g *Government) UnmarshalText(b []byte) error {
	return parseEnum(b, Governments, "government", g)
}

type PolicyCategory string

const (
	CategoryEconomic   PolicyCategory = "Economic"
	CategoryMilitary   PolicyCategory = "Military"
	CategoryCultural   PolicyCategory = "Cultural"
	CategoryDiplomatic PolicyCategory = "Diplomatic"
)

var PolicyCategories = []PolicyCategory{CategoryEconomic, CategoryMilitary, CategoryCultural, CategoryDiplomatic}

func (c PolicyCategory) Valid() bool { return contains(PolicyCategories, c) }

func (c *PolicyCategory) UnmarshalText(b []byte) error {
	return parseEnum(b, PolicyCategories, "policy category", c)
}

type RelationshipStatus string

const (
	Neutral  RelationshipStatus = "Neutral"
	Friendly RelationshipStatus = "Friendly"
	Allied   RelationshipStatus = "Allied"
	Hostile  RelationshipStatus = "Hostile"
	War      RelationshipStatus = "War"
)

var RelationshipStatuses = []RelationshipStatus{Neutral, Friendly, Allied, Hostile, War}

func (s RelationshipStatus) Valid() bool { return contains(RelationshipStatuses, s) }

func (s *RelationshipStatus) UnmarshalText(b []byte) error {
	return parseEnum(b, RelationshipStatuses, "relationship status", s)
}

type EventType string

const (
	EventPolitical EventType = "Political"
	EventMilitary  EventType = "Military"
	EventEconomic  EventType = "Economic"
	EventDisaster  EventType = "Disaster"
	EventCultural  EventType = "Cultural"
)

var EventTypes = []EventType{EventPolitical, EventMilitary, EventEconomic, EventDisaster, EventCultural}

func (t EventType) Valid() bool { return contains(EventTypes, t) }

func (t *EventType) UnmarshalText(b []byte) error {
	return parseEnum(b, EventTypes, "event type", t)
}

type Severity string

const (
	SeverityPositive Severity = "Positive"
	SeverityNeutral  Severity = "Neutral"
	SeverityWarning  Severity = "Warning"
	SeverityDanger   Severity = "Danger"
)

var Severities = []Severity{SeverityPositive, SeverityNeutral, SeverityWarning, SeverityDanger}

func (s Severity) Valid() bool { return contains(Severities, s) }

func (s *Severity) UnmarshalText(b []byte) error {
	return parseEnum(b, Severities, "severity", s)
}

type CityName string

const (
	Athens  CityName = "Athens"
	Sparta  CityName = "Sparta"
	Thebes  CityName = "Thebes"
	Corinth CityName = "Corinth"
)

var CityNames = []CityName{Athens, Sparta, Thebes, Corinth}

func (n CityName) Valid() bool { return contains(CityNames, n) }

func (n *CityName) UnmarshalText(b []byte) error {
	return parseEnum(b, CityNames, "city-state", n)
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func parseEnum[T ~string](b []byte, set []T, what string, dst *T) error {
	v := T(b)
	if !contains(set, v) {
		return fmt.Errorf("unknown %s %q", what, string(b))
	}
	*dst = v
	return nil
}
