package store

import "fjacquet/expense-report/internal/models"

// DefaultRules returns a starter rule set covering every known category.
func DefaultRules() []models.CategoryConfig {
	return []models.CategoryConfig{
		{Name: models.CategoryEatingOut, Keywords: []string{"restaurant", "coffee", "cafe", "pizza", "burger", "takeaway"}},
		{Name: models.CategoryGroceries, Keywords: []string{"supermarket", "grocery", "migros", "coop", "lidl", "aldi"}},
		{Name: models.CategoryVacation, Keywords: []string{"flight", "hotel", "airbnb", "airline", "booking"}},
		{Name: models.CategoryMedical, Keywords: []string{"pharmacy", "doctor", "hospital", "dentist", "clinic"}},
		{Name: models.CategoryPublicTransportation, Keywords: []string{"train", "bus", "metro", "tram", "railway"}},
		{Name: models.CategoryCarMaintenance, Keywords: []string{"garage", "car wash", "tyre", "tire", "mechanic"}},
		{Name: models.CategorySavings, Keywords: []string{"savings", "deposit", "investment"}},
		{Name: models.CategoryBills, Keywords: []string{"electricity", "water bill", "internet", "phone", "insurance", "rent"}},
		{Name: models.CategoryEntertainment, Keywords: []string{"cinema", "netflix", "spotify", "concert", "theatre"}},
	}
}
