package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leading code", "040510 NANDINI SALTED-100g", "Nandini Salted-100g"},
		{"leading symbols", "~ #MILK PACKET", "Milk Packet"},
		{"trailing price", "TOO YUM CHIPS 25.00", "Too Yum Chips"},
		{"trailing ratio behind quote", `GANESH CANA M-250g 118/60"`, "Ganesh Cana M-250g"},
		{"trailing noise token", "MILK PACKET ff", "Milk Packet"},
		{"trailing quantity", "NANDINI SALTED-100g 1", "Nandini Salted-100g"},
		{"stacked artifacts", "SURF EXCEL 1KG 2 45.00,", "Surf Excel 1kg"},
		{"inner whitespace collapsed", "AASHIRVAAD   ATTA    5KG", "Aashirvaad Atta 5kg"},
		{"already clean", "Fortune Oil", "Fortune Oil"},
		{"empty", "", ""},
		{"only junk", "== 123 ..", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanName(tt.in))
		})
	}
}

func TestCleanNameIdempotent(t *testing.T) {
	inputs := []string{
		"040510 NANDINI SALTED-100g 1 56.00",
		`7 190590 GANESH CANA M-250g 118/60"`,
		"TOO YUM CHIPS 25.00 ff",
		"Surf Excel 1kg",
		"~~ == MAGGI NOODLES ,,,",
		"",
	}

	for _, in := range inputs {
		once := CleanName(in)
		assert.Equal(t, once, CleanName(once), "CleanName not idempotent for %q", in)
	}
}
