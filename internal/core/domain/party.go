package domain

import "fmt"

const (
	MaxChildAge = 17

	infantAgeLimit = 2
	childAgeLimit  = 12
)

type AgeBand string

const (
	AgeInfant AgeBand = "INFANT"
	AgeChild  AgeBand = "CHILD"
	AgeAdult  AgeBand = "ADULT"
)

// ClassifyAge maps a child age onto the fare band it pays. Bands are
// half-open: [0,2) infant, [2,12) child, [12,17] adult.
func ClassifyAge(age int) AgeBand {
	switch {
	case age < infantAgeLimit:
		return AgeInfant
	case age < childAgeLimit:
		return AgeChild
	default:
		return AgeAdult
	}
}

// PartyComposition is the traveller mix of one search. When ChildAges is
// non-empty it takes precedence over Children.
type PartyComposition struct {
	Adults    int   `json:"adults"`
	Children  int   `json:"children"`
	ChildAges []int `json:"childAges,omitempty"`
	Pets      int   `json:"pets"`
	Vehicles  int   `json:"vehicles"`
}

// Classification holds the fare-relevant traveller counts derived from a
// PartyComposition.
type Classification struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

func (c Classification) Travellers() int {
	return c.Adults + c.Children + c.Infants
}

func (p PartyComposition) Validate() error {
	counts := []struct {
		field string
		value int
	}{
		{"adults", p.Adults},
		{"children", p.Children},
		{"pets", p.Pets},
		{"vehicles", p.Vehicles},
	}
	for _, c := range counts {
		if c.value < 0 {
			return InvalidInputError{Field: c.field, Msg: fmt.Sprintf("must not be negative, got %d", c.value)}
		}
	}

	for i, age := range p.ChildAges {
		if age < 0 || age > MaxChildAge {
			return InvalidInputError{
				Field: fmt.Sprintf("childAges[%d]", i),
				Msg:   fmt.Sprintf("age %d outside [0,%d]", age, MaxChildAge),
			}
		}
	}

	return nil
}

// Classify derives the fare counts. It assumes Validate has passed.
func (p PartyComposition) Classify() Classification {
	if len(p.ChildAges) == 0 {
		return Classification{Adults: p.Adults, Children: p.Children}
	}

	c := Classification{Adults: p.Adults}
	for _, age := range p.ChildAges {
		switch ClassifyAge(age) {
		case AgeInfant:
			c.Infants++
		case AgeChild:
			c.Children++
		default:
			c.Adults++
		}
	}
	return c
}

func (p PartyComposition) Clone() PartyComposition {
	out := p
	if p.ChildAges != nil {
		out.ChildAges = append([]int(nil), p.ChildAges...)
	}
	return out
}
