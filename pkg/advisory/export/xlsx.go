package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"agroadvisor/entities"
	"agroadvisor/pkg/agronomy"
)

// Sheet names of the exported workbook.
const (
	SheetSummary     = "Summary"
	SheetActions     = "Actions"
	SheetSuggestions = "Suggestions"
	SheetNutrients   = "Nutrients"
	SheetYields      = "Yields"
)

// WriteXLSX renders a report as a workbook with one sheet per section.
func WriteXLSX(w io.Writer, rep agronomy.AdvisoryReport, articles []entities.ArticleRef) error {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName(x.GetSheetName(0), SheetSummary); err != nil {
		return err
	}
	for _, name := range []string{SheetActions, SheetSuggestions, SheetNutrients, SheetYields} {
		if _, err := x.NewSheet(name); err != nil {
			return err
		}
	}

	summary := [][]any{
		{"Field", rep.FieldName},
		{"Month", rep.Month},
		{"Reference", rep.ReferenceVersion},
		{"Rotation pattern", rep.RotationPattern.Pattern},
		{"Severity", string(rep.RotationPattern.Severity)},
		{"Message", rep.RotationPattern.Message},
		{"Interval advice", rep.RotationPattern.IntervalAdvice},
		{"Soil trend", string(rep.Trend.Trend)},
		{"Nitrogen change %", rep.Trend.PercentChange},
		{"Crops grown", rep.Statistics.TotalCropsGrown},
		{"Last crop", rep.Statistics.LastCrop},
	}
	for _, a := range articles {
		summary = append(summary, []any{"Article", a.Title, a.URL})
	}
	if err := writeRows(x, SheetSummary, summary); err != nil {
		return err
	}

	actions := [][]any{{"Rank", "Priority", "Title", "Action", "Quantity", "Unit", "Guide"}}
	for _, it := range rep.Actions {
		var qty any
		unit := ""
		if it.Dosage != nil {
			qty, unit = it.Dosage.Quantity, it.Dosage.Unit
		}
		actions = append(actions, []any{it.PriorityRank, string(it.Priority), it.Title, it.ActionText, qty, unit, strings.Join(it.GuideSteps, "\n")})
	}
	if err := writeRows(x, SheetActions, actions); err != nil {
		return err
	}

	sugg := [][]any{{"Crop", "Score", "Yield (t/ha)", "Price", "Water", "Duration (days)"}}
	for _, c := range rep.Suggestions.Suggested {
		sugg = append(sugg, []any{c.Name, c.Score, c.YieldRange, c.PriceRange, string(c.WaterNeed), c.DurationDays})
	}
	sugg = append(sugg, []any{}, []any{"Reason", rep.Suggestions.Reason})
	if err := writeRows(x, SheetSuggestions, sugg); err != nil {
		return err
	}

	nut := [][]any{{"Nutrient", "Value", "Status", "Optimal range"}}
	for _, st := range rep.NutrientStatus {
		var v any
		if st.Value != nil {
			v = *st.Value
		}
		nut = append(nut, []any{string(st.Nutrient), v, st.Label, st.OptimalRange})
	}
	if err := writeRows(x, SheetNutrients, nut); err != nil {
		return err
	}

	yields := [][]any{{"#", "Crop", "Year", "Status", "% of average"}}
	for _, yc := range rep.YieldComparisons {
		row := []any{yc.CycleIndex + 1, yc.CropName, yc.Year, "", ""}
		if yc.Result != nil {
			row[3], row[4] = string(yc.Result.Status), yc.Result.Percentage
		}
		yields = append(yields, row)
	}
	if err := writeRows(x, SheetYields, yields); err != nil {
		return err
	}

	_, err := x.WriteTo(w)
	return err
}

func writeRows(x *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := x.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
