package entity

import (
	"fmt"
	"strings"
)

// Leg identifies one side of a round trip
type Leg string

const (
	LegOutbound Leg = "Outbound"
	LegReturn   Leg = "Return"
)

// ParseLeg accepts "Outbound"/"Return" in any case
func ParseLeg(value string) (Leg, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "outbound":
		return LegOutbound, nil
	case "return":
		return LegReturn, nil
	}
	return "", fmt.Errorf("unknown leg %q", value)
}

// TripSelection holds the two chosen legs. A nil leg means not selected.
type TripSelection struct {
	Outbound *Flight `json:"outbound"`
	Return   *Flight `json:"return"`
}

// Get returns the flight selected for leg
func (t TripSelection) Get(leg Leg) *Flight {
	if leg == LegReturn {
		return t.Return
	}
	return t.Outbound
}

// IsEmpty reports whether neither leg is selected
func (t TripSelection) IsEmpty() bool {
	return t.Outbound == nil && t.Return == nil
}
