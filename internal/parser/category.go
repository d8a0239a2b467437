package parser

import "strings"

// CategoryOther is the catch-all category for unrecognized products.
const CategoryOther = "Other"

type categoryRule struct {
	name     string
	keywords []string
}

// Declaration order decides ties: the first category containing a matching
// keyword wins.
var categoryRules = []categoryRule{
	{"Dairy", []string{"milk", "cheese", "yogurt", "butter", "cream", "paneer", "curd", "ghee", "amul", "nandini"}},
	{"Produce", []string{"banana", "apple", "orange", "spinach", "lettuce", "tomato", "onion", "carrot", "potato", "mango"}},
	{"Meat", []string{"chicken", "mutton", "fish", "prawns", "eggs"}},
	{"Bakery", []string{"bread", "pav", "bun", "rusk", "cake", "biscuit", "britannia"}},
	{"Grains", []string{"rice", "wheat", "atta", "flour", "dal", "basmati", "aashirvaad"}},
	{"Beverages", []string{"tea", "coffee", "juice", "water", "cola", "tata", "nescafe"}},
	{"Spices", []string{"turmeric", "chili", "coriander", "cumin", "garam", "masala", "mdh", "everest"}},
	{"Snacks", []string{"chips", "namkeen", "biscuits", "maggi", "noodles", "kurkure"}},
	{"Household", []string{"soap", "detergent", "shampoo", "surf", "vim", "lizol"}},
	{"Oil", []string{"oil", "sunflower", "coconut", "mustard", "fortune", "saffola"}},
}

// Categorize maps a product name to one of the fixed category set. Every
// input maps to exactly one category; unknown products map to Other.
func Categorize(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.name
			}
		}
	}
	return CategoryOther
}

// Categories returns the fixed category names, Other included.
func Categories() []string {
	names := make([]string, 0, len(categoryRules)+1)
	for _, rule := range categoryRules {
		names = append(names, rule.name)
	}
	return append(names, CategoryOther)
}
