package ledger

import "fmt"

// Category is one of the fixed spending buckets. The identifiers are persisted
// with every transaction and appear in export files.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryBills         Category = "bills"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryOther         Category = "other"
)

// Categories lists every category in its canonical order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryBills,
	CategoryEntertainment,
	CategoryHealth,
	CategoryEducation,
	CategoryOther,
}

var displayNames = map[Category]string{
	CategoryFood:          "Food & Dining",
	CategoryTransport:     "Transportation",
	CategoryShopping:      "Shopping",
	CategoryBills:         "Bills & Utilities",
	CategoryEntertainment: "Entertainment",
	CategoryHealth:        "Health & Fitness",
	CategoryEducation:     "Education",
	CategoryOther:         "Other",
}

// ParseCategory returns the category with the given identifier.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return "", ErrMissingCategory
	}
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Valid reports whether c is part of the enumeration.
func (c Category) Valid() bool {
	_, ok := displayNames[c]
	return ok
}

// DisplayName is the human-readable label, "Other" for unknown values.
func (c Category) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return displayNames[CategoryOther]
}

func (c Category) String() string {
	return string(c)
}
