package agronomy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_NPKThresholds(t *testing.T) {
	cases := []struct {
		nutrient Nutrient
		value    float64
		want     string
	}{
		{Nitrogen, 29, LabelLow},
		{Nitrogen, 30, LabelModerate},
		{Nitrogen, 49.9, LabelModerate},
		{Nitrogen, 50, LabelOptimal},
		{Phosphorus, 19, LabelLow},
		{Phosphorus, 20, LabelModerate},
		{Phosphorus, 40, LabelOptimal},
		{Potassium, 24, LabelLow},
		{Potassium, 44, LabelModerate},
		{Potassium, 45, LabelOptimal},
		{Nitrogen, 0, LabelLow},
	}
	for _, tc := range cases {
		got := Classify(tc.nutrient, tc.value)
		assert.Equal(t, tc.want, got.Label, "%s=%v", tc.nutrient, tc.value)
	}
}

func TestClassify_Ranges(t *testing.T) {
	assert.Equal(t, "30–60", Classify(Nitrogen, 40).OptimalRange)
	assert.Equal(t, "20–50", Classify(Phosphorus, 40).OptimalRange)
	assert.Equal(t, "25–55", Classify(Potassium, 40).OptimalRange)
	assert.Equal(t, "6.0–7.5", Classify(PH, 7).OptimalRange)
}

func TestClassify_PH(t *testing.T) {
	assert.Equal(t, LabelAcidic, Classify(PH, 5.4).Label)
	assert.Equal(t, LabelModerate, Classify(PH, 5.5).Label)
	assert.Equal(t, LabelModerate, Classify(PH, 5.9).Label)
	assert.Equal(t, LabelOptimal, Classify(PH, 6.0).Label)
	assert.Equal(t, LabelOptimal, Classify(PH, 7.5).Label)
	assert.Equal(t, LabelModerate, Classify(PH, 7.8).Label)
	assert.Equal(t, LabelModerate, Classify(PH, 8.0).Label)
	assert.Equal(t, LabelAlkaline, Classify(PH, 8.1).Label)
}

func TestClassify_OrganicMatter(t *testing.T) {
	assert.Equal(t, LabelGood, Classify(OrganicMatter, 2.5).Label)
	assert.Equal(t, LabelModerate, Classify(OrganicMatter, 1.5).Label)
	assert.Equal(t, LabelLow, Classify(OrganicMatter, 1.49).Label)
}

func TestClassify_MonotonicAcrossThresholds(t *testing.T) {
	rank := map[string]int{LabelLow: 0, LabelModerate: 1, LabelOptimal: 2}
	for _, n := range []Nutrient{Nitrogen, Phosphorus, Potassium} {
		prev := -1
		for v := 0.0; v <= 100; v += 0.5 {
			r := rank[Classify(n, v).Label]
			require.GreaterOrEqual(t, r, prev, "%s not monotonic at %v", n, v)
			prev = r
		}
	}
}

func TestClassify_UnknownInputs(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		st := Classify(Nitrogen, v)
		assert.Equal(t, LabelUnknown, st.Label)
		assert.Empty(t, st.OptimalRange)
		assert.Nil(t, st.Value)
	}
	st := Classify(Nutrient("sulfur"), 12)
	assert.Equal(t, LabelUnknown, st.Label)
	assert.Nil(t, st.Value)
}

func TestClassifyReading_NilReading(t *testing.T) {
	out := defaultEngine.ClassifyReading(nil)
	require.Len(t, out, len(Nutrients))
	for _, st := range out {
		assert.Equal(t, LabelUnknown, st.Label)
	}
}

func TestParseNutrient(t *testing.T) {
	for in, want := range map[string]Nutrient{
		"N": Nitrogen, "phosphorus": Phosphorus, "k": Potassium,
		"pH": PH, "organicMatter": OrganicMatter, "OM": OrganicMatter,
	} {
		got, ok := ParseNutrient(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := ParseNutrient("zinc")
	assert.False(t, ok)
}
