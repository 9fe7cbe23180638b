package agronomy

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleField() Field {
	y1, y2 := 3.6, 3.0
	rice := withSoil(cycle("Rice", FamilyCereal, 2022), 45, 35)
	rice.Yield = &y1
	wheat := withSoil(cycle("Wheat", FamilyCereal, 2023), 35, 28)
	wheat.Season = SeasonRabi
	wheat.Yield = &y2
	return Field{
		ID:                "f-1",
		Name:              "North plot",
		Area:              2,
		CurrentSoilHealth: &NutrientReading{Nitrogen: 28, Phosphorus: 18, Potassium: 40, PH: 5.6, OrganicMatter: 1.4},
		RotationHistory:   []CropCycle{rice, wheat},
	}
}

func TestAdvise_FullReport(t *testing.T) {
	rep := Advise(sampleField(), 7)

	assert.Equal(t, "f-1", rep.FieldID)
	assert.Equal(t, BuiltinVersion, rep.ReferenceVersion)
	assert.Equal(t, PatternMonoculture, rep.RotationPattern.Pattern)
	assert.Equal(t, SeverityWarning, rep.RotationPattern.Severity)
	assert.Equal(t, TrendDeclining, rep.Trend.Trend)
	assert.Equal(t, SeasonKharif, rep.Suggestions.Season)
	assert.Equal(t,
		[]string{KindDiversification, KindNitrogen, KindOrganicMatter, KindPhosphorus, KindAcidicSoil},
		kinds(rep.Actions))
	require.Len(t, rep.YieldComparisons, 2)
	assert.Equal(t, BenchmarkExcellent, rep.YieldComparisons[0].Result.Status)
	require.Len(t, rep.NutrientStatus, len(Nutrients))
	assert.Equal(t, LabelLow, rep.NutrientStatus[0].Label)

	st := rep.Statistics
	assert.Equal(t, 2, st.TotalCropsGrown)
	assert.Equal(t, []CropFamily{FamilyCereal}, st.CropFamilies)
	assert.Equal(t, 2, st.YearsTracked)
	require.NotNil(t, st.AverageYield)
	assert.InDelta(t, 3.3, *st.AverageYield, 1e-9)
	assert.Equal(t, "Wheat", st.LastCrop)
}

func TestAdvise_Idempotent(t *testing.T) {
	f := sampleField()
	if diff := cmp.Diff(Advise(f, 11), Advise(f, 11)); diff != "" {
		t.Fatalf("reports differ (-first +second):\n%s", diff)
	}
}

func TestAdvise_ConcurrentCallers(t *testing.T) {
	e := NewEngine(nil)
	f := sampleField()
	want := e.Advise(f, 7)

	var wg sync.WaitGroup
	diffs := make([]string, 8)
	for i := range diffs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			diffs[i] = cmp.Diff(want, e.Advise(f, 7))
		}()
	}
	wg.Wait()
	for i, d := range diffs {
		assert.Empty(t, d, "caller %d", i)
	}
}

func TestAdvise_DoesNotMutateField(t *testing.T) {
	f := sampleField()
	before, err := json.Marshal(f)
	require.NoError(t, err)
	_ = Advise(f, 3)
	after, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestAdvise_EmptyField(t *testing.T) {
	rep := Advise(Field{ID: "empty"}, 0)
	assert.Equal(t, PatternInsufficientData, rep.RotationPattern.Pattern)
	assert.Equal(t, TrendUnknown, rep.Trend.Trend)
	assert.Len(t, rep.Suggestions.Suggested, 4)
	assert.NotNil(t, rep.Actions)
	assert.Empty(t, rep.Actions)
	assert.Empty(t, rep.YieldComparisons)
	assert.Equal(t, 0, rep.Statistics.TotalCropsGrown)
	assert.Nil(t, rep.Statistics.AverageYield)
	for _, st := range rep.NutrientStatus {
		assert.Equal(t, LabelUnknown, st.Label)
	}
}

func TestNewEngine_NilReferenceUsesBuiltin(t *testing.T) {
	e := NewEngine(nil)
	assert.Equal(t, BuiltinVersion, e.ReferenceVersion())
}

func TestNewEngine_CopiesReference(t *testing.T) {
	ref := DefaultReference()
	ref.Version = "custom"
	e := NewEngine(ref)

	ref.Benchmarks["Rice"] = Benchmark{Avg: 10, Good: 12}
	ref.Version = "changed"

	assert.Equal(t, "custom", e.ReferenceVersion())
	assert.Equal(t, BenchmarkExcellent, e.CompareYield("Rice", 3.5, BenchmarkUnit).Status)
}

func TestSeasonForMonth(t *testing.T) {
	assert.Equal(t, SeasonRabi, SeasonForMonth(1))
	assert.Equal(t, SeasonRabi, SeasonForMonth(3))
	assert.Equal(t, SeasonZaid, SeasonForMonth(4))
	assert.Equal(t, SeasonKharif, SeasonForMonth(6))
	assert.Equal(t, SeasonKharif, SeasonForMonth(9))
	assert.Equal(t, SeasonRabi, SeasonForMonth(10))
	assert.Equal(t, Season(""), SeasonForMonth(0))
	assert.Equal(t, Season(""), SeasonForMonth(13))
}
