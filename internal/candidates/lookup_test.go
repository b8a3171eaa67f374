package candidates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupExactMatch(t *testing.T) {
	dataset := []Candidate{{ChestNo: "101", Name: "Amina"}}

	got, ok := Lookup(dataset, "101")
	require.True(t, ok)
	assert.Equal(t, "Amina", got.Name)
}

func TestLookupDoesNotTrimWhitespace(t *testing.T) {
	dataset := []Candidate{{ChestNo: "101", Name: "Amina"}}

	_, ok := Lookup(dataset, "  101")
	assert.False(t, ok)
}

func TestLookupCaseInsensitive(t *testing.T) {
	dataset := []Candidate{{ChestNo: "A101", Name: "Amina"}}

	got, ok := Lookup(dataset, "a101")
	require.True(t, ok)
	assert.Equal(t, "A101", got.ChestNo)
}

func TestLookupFirstMatchWins(t *testing.T) {
	dataset := []Candidate{
		{ChestNo: "7", Name: "first"},
		{ChestNo: "7", Name: "second"},
	}

	got, ok := Lookup(dataset, "7")
	require.True(t, ok)
	assert.Equal(t, "first", got.Name)
}

func TestLookupMissIsNotAnError(t *testing.T) {
	_, ok := Lookup(nil, "404")
	assert.False(t, ok)

	_, ok = Lookup([]Candidate{{ChestNo: "1"}}, "")
	assert.False(t, ok)
}
