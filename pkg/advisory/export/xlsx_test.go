package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agroadvisor/entities"
	"agroadvisor/pkg/agronomy"
)

func TestWriteXLSX(t *testing.T) {
	yield := 3.5
	rep := agronomy.Advise(agronomy.Field{
		ID: "7", Name: "East", Area: 3,
		CurrentSoilHealth: &agronomy.NutrientReading{Nitrogen: 50, Phosphorus: 40, Potassium: 45, PH: 5.0, OrganicMatter: 2.6},
		RotationHistory: []agronomy.CropCycle{
			{CropName: "Rice", CropFamily: agronomy.FamilyCereal, Season: agronomy.SeasonKharif, Year: 2023, Yield: &yield, YieldUnit: "t/ha"},
		},
	}, 11)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rep, []entities.ArticleRef{{Title: "Liming", URL: "https://kb.example/lime"}}))

	x, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer x.Close()
	assert.Equal(t, []string{SheetSummary, SheetActions, SheetSuggestions, SheetNutrients, SheetYields}, x.GetSheetList())

	v, err := x.GetCellValue(SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "East", v)

	v, err = x.GetCellValue(SheetActions, "E2")
	require.NoError(t, err)
	assert.Equal(t, "225", v)

	v, err = x.GetCellValue(SheetYields, "D2")
	require.NoError(t, err)
	assert.Equal(t, "excellent", v)

	rows, err := x.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Article", "Liming", "https://kb.example/lime"}, rows[len(rows)-1])
}
