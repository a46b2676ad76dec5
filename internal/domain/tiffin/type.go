package tiffin

// ===============================
// Tiffin Type
// ===============================

type Type string

const (
	TypeRegular      Type = "Regular"
	TypeSwaminarayan Type = "Swaminarayan"
	TypeJain         Type = "Jain"
)

// DefaultPrice is the flat per-day price, identical for every type.
const DefaultPrice = 90.00

func IsValidType(t string) bool {
	switch Type(t) {
	case TypeRegular, TypeSwaminarayan, TypeJain:
		return true
	}
	return false
}

func DefaultType() Type {
	return TypeRegular
}
