// Package fuel defines the closed set of fuel grades a station trades in.
//
// The enumeration is fixed at compile time; the engine sizes its per-grade
// structures (price table, fairness queues) from Types.
package fuel

import "fmt"

// Type identifies a fuel grade.
type Type int

const (
	Diesel Type = iota
	Regular
	Super
)

// MaxTypes is the size of the enumeration, usable as a fixed array bound for
// per-grade structures. Keep in sync with the constants above.
const MaxTypes = 3

func (t Type) String() string {
	switch t {
	case Diesel:
		return "diesel"
	case Regular:
		return "regular"
	case Super:
		return "super"
	default:
		return fmt.Sprintf("fuel.Type(%d)", int(t))
	}
}

// Valid reports whether t is one of the defined grades.
func (t Type) Valid() bool {
	return t >= 0 && int(t) < MaxTypes
}

// Types returns all defined fuel grades in declaration order.
func Types() []Type {
	return []Type{Diesel, Regular, Super}
}

// Count returns the number of defined fuel grades.
func Count() int {
	return MaxTypes
}
