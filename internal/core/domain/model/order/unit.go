package order

import (
	"fmt"

	"farmtrade/internal/pkg/errs"
)

// Unit is the mass unit an order quantity is expressed in.
type Unit string

const (
	UnitKg      Unit = "kg"
	UnitQuintal Unit = "quintal"
	UnitTon     Unit = "ton"
)

// ParseUnit converts a name into a Unit. An empty name defaults to UnitKg.
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(s); u {
	case "":
		return UnitKg, nil
	case UnitKg, UnitQuintal, UnitTon:
		return u, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("unit", fmt.Errorf("%q is not one of kg, quintal, ton", s))
	}
}

func (u Unit) String() string {
	return string(u)
}
