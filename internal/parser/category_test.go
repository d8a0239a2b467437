package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Nandini Salted-100g", "Dairy"},
		{"Amul Butter 500g", "Dairy"},
		{"Fresh Tomato", "Produce"},
		{"Chicken Breast", "Meat"},
		{"Britannia Rusk", "Bakery"},
		{"Aashirvaad Atta 5kg", "Grains"},
		{"Tata Tea Premium", "Beverages"},
		{"Everest Garam Masala", "Spices"},
		{"Kurkure Party Pack", "Snacks"},
		{"Surf Excel Detergent", "Household"},
		{"Fortune Sunflower", "Oil"},
		{"Mystery Product Xyz", "Other"},
		{"", "Other"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.name), "name %q", tt.name)
	}
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	// "chicken" (Meat) is declared before "masala" (Spices).
	assert.Equal(t, "Meat", Categorize("Chicken Masala"))
	// "milk" (Dairy) is declared before any snack keyword.
	assert.Equal(t, "Dairy", Categorize("Milk Chocolate"))
}

func TestCategories(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 11)
	assert.Equal(t, CategoryOther, cats[len(cats)-1])
	assert.Contains(t, cats, "Dairy")
	assert.Contains(t, cats, "Household")
}
