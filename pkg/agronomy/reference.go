package agronomy

// BuiltinVersion identifies the compiled-in reference tables.
const BuiltinVersion = "builtin-2024.1"

// Threshold is the Low/Optimal cut pair for an NPK nutrient.
type Threshold struct {
	Low     float64 `json:"low"`
	Optimal float64 `json:"optimal"`
	Range   string  `json:"range"`
}

// CropInfo is the static agronomic metadata for one crop.
type CropInfo struct {
	Name         string    `json:"name"`
	YieldRange   string    `json:"yieldRange"`
	PriceRange   string    `json:"priceRange"`
	WaterNeed    WaterNeed `json:"waterNeed"`
	DurationDays string    `json:"durationDays"`
}

// Benchmark is the reference yield (t/ha) for a crop.
type Benchmark struct {
	Avg  float64 `json:"avg"`
	Good float64 `json:"good"`
}

// Reference bundles the lookup tables the analyzers read. A Reference is
// treated as immutable once handed to an Engine.
type Reference struct {
	Version    string
	NPK        map[Nutrient]Threshold
	Crops      map[string]CropInfo
	Benchmarks map[string]Benchmark
}

// DefaultReference returns a fresh copy of the built-in tables.
func DefaultReference() *Reference {
	r := &Reference{
		Version:    BuiltinVersion,
		NPK:        make(map[Nutrient]Threshold, len(builtinNPK)),
		Crops:      make(map[string]CropInfo, len(builtinCrops)),
		Benchmarks: make(map[string]Benchmark, len(builtinBenchmarks)),
	}
	for k, v := range builtinNPK {
		r.NPK[k] = v
	}
	for _, c := range builtinCrops {
		r.Crops[c.Name] = c
	}
	for k, v := range builtinBenchmarks {
		r.Benchmarks[k] = v
	}
	return r
}

// Clone returns a deep copy of the tables.
func (r *Reference) Clone() *Reference {
	out := &Reference{
		Version:    r.Version,
		NPK:        make(map[Nutrient]Threshold, len(r.NPK)),
		Crops:      make(map[string]CropInfo, len(r.Crops)),
		Benchmarks: make(map[string]Benchmark, len(r.Benchmarks)),
	}
	for k, v := range r.NPK {
		out.NPK[k] = v
	}
	for k, v := range r.Crops {
		out.Crops[k] = v
	}
	for k, v := range r.Benchmarks {
		out.Benchmarks[k] = v
	}
	return out
}

var builtinNPK = map[Nutrient]Threshold{
	Nitrogen:   {Low: 30, Optimal: 50, Range: "30–60"},
	Phosphorus: {Low: 20, Optimal: 40, Range: "20–50"},
	Potassium:  {Low: 25, Optimal: 45, Range: "25–55"},
}

var builtinCrops = []CropInfo{
	{Name: "Rice", YieldRange: "2.8-3.5", PriceRange: "₹2000-2500/q", WaterNeed: WaterHigh, DurationDays: "120-150"},
	{Name: "Wheat", YieldRange: "3.2-4.0", PriceRange: "₹2100-2400/q", WaterNeed: WaterMedium, DurationDays: "110-130"},
	{Name: "Cotton", YieldRange: "1.8-2.5", PriceRange: "₹5500-6500/q", WaterNeed: WaterMedium, DurationDays: "150-180"},
	{Name: "Maize", YieldRange: "2.5-3.2", PriceRange: "₹1800-2200/q", WaterNeed: WaterMedium, DurationDays: "90-110"},
	{Name: "Chickpea", YieldRange: "1.0-1.5", PriceRange: "₹5000-6000/q", WaterNeed: WaterLow, DurationDays: "100-120"},
	{Name: "Pigeon Pea", YieldRange: "0.8-1.2", PriceRange: "₹5500-7000/q", WaterNeed: WaterLow, DurationDays: "150-180"},
	{Name: "Lentil", YieldRange: "0.7-1.0", PriceRange: "₹6000-7500/q", WaterNeed: WaterLow, DurationDays: "110-130"},
	{Name: "Green Gram", YieldRange: "0.6-0.9", PriceRange: "₹6500-8000/q", WaterNeed: WaterMedium, DurationDays: "60-90"},
	{Name: "Soybean", YieldRange: "1.2-1.8", PriceRange: "₹3800-4500/q", WaterNeed: WaterMedium, DurationDays: "90-120"},
	{Name: "Groundnut", YieldRange: "1.5-2.0", PriceRange: "₹5000-6000/q", WaterNeed: WaterMedium, DurationDays: "120-140"},
	{Name: "Sugarcane", YieldRange: "70-85", PriceRange: "₹280-350/q", WaterNeed: WaterHigh, DurationDays: "300-365"},
	{Name: "Mustard", YieldRange: "1.2-1.6", PriceRange: "₹4500-5500/q", WaterNeed: WaterLow, DurationDays: "90-110"},
}

var builtinBenchmarks = map[string]Benchmark{
	"Rice":      {Avg: 2.8, Good: 3.5},
	"Wheat":     {Avg: 3.2, Good: 4.0},
	"Cotton":    {Avg: 1.8, Good: 2.5},
	"Maize":     {Avg: 2.5, Good: 3.2},
	"Sugarcane": {Avg: 70, Good: 85},
	"Chickpea":  {Avg: 1.0, Good: 1.5},
	"Soybean":   {Avg: 1.2, Good: 1.8},
	"Groundnut": {Avg: 1.5, Good: 2.0},
	"Mustard":   {Avg: 1.2, Good: 1.6},
	"Potato":    {Avg: 23, Good: 28},
}
