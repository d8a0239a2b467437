package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDayFirstDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"15-03-2024", "2024-03-15", true},
		{"01/02/99", "1999-02-01", true},
		{"5-6-24", "2024-06-05", true},
		{"31/12/49", "2049-12-31", true},
		{"01-01-75", "1975-01-01", true},
		{"45-13-2024", "", false},
		{"00-05-2024", "", false},
		{"15-03", "", false},
		{"abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseDayFirstDate(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestCurrentDateFormat(t *testing.T) {
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, currentDate())
}
