package entity

// Allowance describes a baggage allowance for one luggage type
type Allowance struct {
	Weight string `json:"weight" bson:"weight"`
	Free   bool   `json:"free" bson:"free"`
	Note   string `json:"note,omitempty" bson:"note,omitempty"`
}

// ExtraBaggageTier is a purchasable checked-baggage weight with its price in INR
// before and after the three-hour cutoff
type ExtraBaggageTier struct {
	Weight           string `json:"weight" bson:"weight"`
	WeightValue      int    `json:"weightValue" bson:"weightValue"`
	BeforeThreeHours int    `json:"beforeThreeHours" bson:"beforeThreeHours"`
	AfterThreeHours  int    `json:"afterThreeHours" bson:"afterThreeHours"`
}

// AirlineLuggagePolicy represents an airline's carry-on and checked baggage rules
type AirlineLuggagePolicy struct {
	Airline             string             `json:"airline" bson:"airline"`
	CarryOn             Allowance          `json:"carryOn" bson:"carryOn"`
	Checked             Allowance          `json:"checked" bson:"checked"`
	ExtraCheckedOptions []ExtraBaggageTier `json:"extraCheckedOptions,omitempty" bson:"extraCheckedOptions,omitempty"`
}

// HasExtraOptions reports whether extra checked baggage can be bought
func (p AirlineLuggagePolicy) HasExtraOptions() bool {
	return len(p.ExtraCheckedOptions) > 0
}
