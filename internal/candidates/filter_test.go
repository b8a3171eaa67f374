package candidates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func centreFixture() []Candidate {
	return []Candidate{
		{ChestNo: "1", StudyCentre: "Centre X"},
		{ChestNo: "2", StudyCentre: "Centre Y"},
		{ChestNo: "3", StudyCentre: "Centre X"},
		{ChestNo: "4", StudyCentre: "Centre Y"},
		{ChestNo: "5", StudyCentre: "Centre X"},
	}
}

func TestFilterByCentreKeepsDatasetOrder(t *testing.T) {
	res := FilterByCentre(centreFixture(), "Centre X")

	require.True(t, res.Selected)
	require.Len(t, res.Candidates, 3)
	assert.Equal(t, "1", res.Candidates[0].ChestNo)
	assert.Equal(t, "3", res.Candidates[1].ChestNo)
	assert.Equal(t, "5", res.Candidates[2].ChestNo)
}

func TestFilterByCentreEmptySelection(t *testing.T) {
	res := FilterByCentre(centreFixture(), "")

	assert.False(t, res.Selected)
	assert.Empty(t, res.Candidates)
}

func TestFilterByCentreSelectedButEmpty(t *testing.T) {
	res := FilterByCentre(centreFixture(), "Centre Z")

	// Distinguishable from the nothing-selected state above.
	assert.True(t, res.Selected)
	assert.Empty(t, res.Candidates)
}
