package models

import "github.com/shopspring/decimal"

// NoCategory is the label used when classification yields no category.
const NoCategory = "NO_CATEGORY"

// Category labels known to the classification service. The engine does not
// depend on this list; it is used by the keyword and Gemini classifiers.
const (
	CategoryEatingOut            = "EATING_OUT"
	CategoryGroceries            = "GROCERIES"
	CategoryVacation             = "VACATION"
	CategoryMedical              = "MEDICAL"
	CategoryPublicTransportation = "PUBLIC_TRANSPORTATION"
	CategoryCarMaintenance       = "CAR_MAINTENANCE"
	CategorySavings              = "SAVINGS"
	CategoryBills                = "BILLS"
	CategoryEntertainment        = "ENTERTAINMENT"
)

// KnownCategories lists every label the bundled classifiers may return.
var KnownCategories = []string{
	CategoryEatingOut,
	CategoryGroceries,
	CategoryVacation,
	CategoryMedical,
	CategoryPublicTransportation,
	CategoryCarMaintenance,
	CategorySavings,
	CategoryBills,
	CategoryEntertainment,
}

// LabeledAmount is the amount of one transaction paired with its resolved
// category label.
type LabeledAmount struct {
	Label  string
	Amount decimal.Decimal
}

// CategoryConfig represents a category configuration in the rules YAML file
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig represents the structure of the rules YAML file
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// LabelOrNone maps an empty classification result to NoCategory.
func LabelOrNone(label string) string {
	if label == "" {
		return NoCategory
	}
	return label
}
