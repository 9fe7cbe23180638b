package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"agroadvisor/pkg/agronomy"
)

// LoadFromFiles overlays optional benchmark CSV and crop catalog XLSX rows on
// the built-in tables. Empty paths are skipped; with both empty the built-in
// reference is returned unchanged.
func LoadFromFiles(benchmarksCSV, cropsXLSX string) (*agronomy.Reference, error) {
	ref := agronomy.DefaultReference()
	var sources []string

	if benchmarksCSV != "" {
		n, err := loadBenchmarksCSV(ref, benchmarksCSV)
		if err != nil {
			return nil, fmt.Errorf("benchmarks %s: %w", benchmarksCSV, err)
		}
		if n > 0 {
			sources = append(sources, filepath.Base(benchmarksCSV))
		}
	}
	if cropsXLSX != "" {
		n, err := loadCropsXLSX(ref, cropsXLSX)
		if err != nil {
			return nil, fmt.Errorf("crops %s: %w", cropsXLSX, err)
		}
		if n > 0 {
			sources = append(sources, filepath.Base(cropsXLSX))
		}
	}
	if len(sources) > 0 {
		ref.Version = agronomy.BuiltinVersion + "+" + strings.Join(sources, "+")
	}
	return ref, nil
}

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// header indexes a header row and resolves column aliases.
type header map[string]int

func newHeader(row []string) header {
	h := header{}
	for i, c := range row {
		h[norm(c)] = i
	}
	return h
}

func (h header) findAny(keys ...string) int {
	for _, k := range keys {
		if idx, ok := h[norm(k)]; ok {
			return idx
		}
	}
	return -1
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func loadBenchmarksCSV(ref *agronomy.Reference, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return 0, err
	}
	h := newHeader(head)
	cCrop := h.findAny("Crop", "crop_name", "name")
	cAvg := h.findAny("Avg", "average", "avg_t_ha", "avgyield")
	cGood := h.findAny("Good", "good_t_ha", "goodyield", "target")
	if cCrop == -1 || cAvg == -1 || cGood == -1 {
		return 0, fmt.Errorf("missing required columns, found headers: %v, need at least: Crop, Avg, Good", head)
	}

	n := 0
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return n, err
		}
		name := cell(rec, cCrop)
		avg, err1 := strconv.ParseFloat(cell(rec, cAvg), 64)
		good, err2 := strconv.ParseFloat(cell(rec, cGood), 64)
		if name == "" || err1 != nil || err2 != nil || avg <= 0 || good < avg {
			continue // skip invalid rows
		}
		ref.Benchmarks[name] = agronomy.Benchmark{Avg: avg, Good: good}
		n++
	}
	return n, nil
}

func loadCropsXLSX(ref *agronomy.Reference, path string) (int, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return 0, err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return 0, errors.New("workbook has no sheets")
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	h := newHeader(rows[0])
	cCrop := h.findAny("Crop", "crop_name", "name")
	cYield := h.findAny("YieldRange", "yield", "expected_yield")
	cPrice := h.findAny("PriceRange", "price", "market_price")
	cWater := h.findAny("WaterNeed", "water", "water_requirement")
	cDays := h.findAny("DurationDays", "duration", "days")
	if cCrop == -1 {
		return 0, fmt.Errorf("missing Crop column, found headers: %v", rows[0])
	}

	n := 0
	for _, rec := range rows[1:] {
		name := cell(rec, cCrop)
		if name == "" {
			continue
		}
		info := ref.Crops[name]
		info.Name = name
		if v := cell(rec, cYield); v != "" {
			info.YieldRange = v
		}
		if v := cell(rec, cPrice); v != "" {
			info.PriceRange = v
		}
		if v, ok := parseWaterNeed(cell(rec, cWater)); ok {
			info.WaterNeed = v
		}
		if v := cell(rec, cDays); v != "" {
			info.DurationDays = v
		}
		ref.Crops[name] = info
		n++
	}
	return n, nil
}

func parseWaterNeed(s string) (agronomy.WaterNeed, bool) {
	switch strings.ToLower(s) {
	case "low":
		return agronomy.WaterLow, true
	case "medium", "moderate":
		return agronomy.WaterMedium, true
	case "high":
		return agronomy.WaterHigh, true
	}
	return "", false
}
