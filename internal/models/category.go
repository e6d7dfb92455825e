package models

import "fmt"

// Category is one of the fixed expense categories.
type Category string

const (
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	CategoryHousing        Category = "housing"
	CategoryUtilities      Category = "utilities"
	CategoryEntertainment  Category = "entertainment"
	CategoryHealthcare     Category = "healthcare"
	CategoryPersonal       Category = "personal"
	CategoryEducation      Category = "education"
	CategoryShopping       Category = "shopping"
	CategoryOther          Category = "other"
)

var categories = []Category{
	CategoryFood,
	CategoryTransportation,
	CategoryHousing,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryPersonal,
	CategoryEducation,
	CategoryShopping,
	CategoryOther,
}

var categoryNames = map[Category]string{
	CategoryFood:           "Food & Dining",
	CategoryTransportation: "Transportation",
	CategoryHousing:        "Housing",
	CategoryUtilities:      "Utilities",
	CategoryEntertainment:  "Entertainment",
	CategoryHealthcare:     "Healthcare",
	CategoryPersonal:       "Personal Care",
	CategoryEducation:      "Education",
	CategoryShopping:       "Shopping",
	CategoryOther:          "Other",
}

// Categories returns every category in form order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// DisplayName returns the human-readable category name.
// Unknown categories display as "Other".
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryOther]
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
