package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryNames(t *testing.T) {
	reg := NewRegistry(DefaultTunables(), nil)
	assert.Equal(t, []string{"KPN Fresh", "DMart"}, reg.Names())
}

func TestRegistrySelect(t *testing.T) {
	reg := NewRegistry(DefaultTunables(), nil)

	assert.Equal(t, "DMart", reg.Select("D-MART\nAvenue Supermarts Ltd").Name())
	assert.Equal(t, "KPN Fresh", reg.Select("KPN Farm Fresh\nBill No 1").Name())
	assert.Equal(t, "Generic", reg.Select("SOME CORNER STORE").Name())
}

func TestRegistryParseEmptyText(t *testing.T) {
	reg := NewRegistry(DefaultTunables(), nil)

	_, err := reg.Parse("", 0.9)
	assert.ErrorIs(t, err, ErrNoText)

	_, err = reg.Parse("   \n\t  \n", 0.9)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestRegistryParseFallsBackToItemSum(t *testing.T) {
	text := "SOME CORNER STORE\n" +
		"123456 SOMETHING NICE 1 10.00 10.00\n" +
		"654321 ANOTHER THING 1 20.00 20.00\n"

	reg := NewRegistry(DefaultTunables(), nil)
	parsed, err := reg.Parse(text, 0.8)
	require.NoError(t, err)

	assert.Equal(t, "Generic", parsed.Vendor)
	require.Len(t, parsed.Items, 2)
	assert.InDelta(t, 30.00, parsed.Total, 0.001)
	assert.Equal(t, 0.8, parsed.Confidence)
	assert.Equal(t, text, parsed.RawText)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, parsed.Date)
}

func TestRegistryParseNeverReturnsNilItems(t *testing.T) {
	reg := NewRegistry(DefaultTunables(), nil)

	parsed, err := reg.Parse("NOTHING USEFUL HERE", 0.5)
	require.NoError(t, err)
	assert.NotNil(t, parsed.Items)
	assert.Empty(t, parsed.Items)
}

type fakeRuleset struct{ Generic }

func (f *fakeRuleset) Name() string            { return "Fake Mart" }
func (f *fakeRuleset) Detect(text string) bool { return false }

func TestRegistryAdd(t *testing.T) {
	reg := NewRegistry(DefaultTunables(), nil)
	reg.Add(&fakeRuleset{})

	assert.Equal(t, []string{"KPN Fresh", "DMart", "Fake Mart"}, reg.Names())
	// An added ruleset that never detects still leaves the fallback in place.
	assert.Equal(t, "Generic", reg.Select("SOME CORNER STORE").Name())
}
