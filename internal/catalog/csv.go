package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/A3V1/B2B-RFP/internal/types"
)

// LoadCSV reads catalog components from a CSV file with a header row.
// Recognized columns: sku, name, category, voltage_kv, conductor, cores,
// cross_section_mm2, insulation, armour, standard, fire_rating, application,
// price_per_meter, in_stock, lead_time_days. Empty cells leave the
// corresponding specification field unset.
func LoadCSV(path string) ([]types.ComponentCandidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	var components []types.ComponentCandidate
	var id int64
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row: %w", err)
		}

		id++
		c := types.ComponentCandidate{
			ID:       id,
			SKU:      cell(row, index, "sku"),
			Name:     cell(row, index, "name"),
			Category: cell(row, index, "category"),
		}
		c.VoltageKV = floatCell(row, index, "voltage_kv")
		c.Conductor = strCell(row, index, "conductor")
		c.Cores = strCell(row, index, "cores")
		c.CrossSectionMM2 = floatCell(row, index, "cross_section_mm2")
		c.Insulation = strCell(row, index, "insulation")
		c.Armour = strCell(row, index, "armour")
		c.Standard = strCell(row, index, "standard")
		c.FireRating = strCell(row, index, "fire_rating")
		c.Application = strCell(row, index, "application")
		if v := floatCell(row, index, "price_per_meter"); v != nil {
			c.PricePerMeter = *v
		}
		c.InStock = parseBool(cell(row, index, "in_stock"))
		if v := floatCell(row, index, "lead_time_days"); v != nil {
			c.LeadTimeDays = int(*v)
		}

		components = append(components, c)
	}

	return components, nil
}

func cell(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func strCell(row []string, index map[string]int, name string) *string {
	v := cell(row, index, name)
	if v == "" {
		return nil
	}
	return &v
}

func floatCell(row []string, index map[string]int, name string) *float64 {
	v := cell(row, index, name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "t", "yes", "y", "1":
		return true
	}
	return false
}
