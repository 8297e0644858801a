package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/A3V1/B2B-RFP/internal/catalog"
)

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func TestBuildSpecFilterEmpty(t *testing.T) {
	where, args := buildSpecFilter(catalog.Filter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildSpecFilterAllFields(t *testing.T) {
	where, args := buildSpecFilter(catalog.Filter{
		VoltageKV:       fptr(1.1),
		Conductor:       sptr("Aluminium"),
		Cores:           sptr("3.5C"),
		CrossSectionMM2: fptr(95),
		Insulation:      sptr("XLPE"),
		Armour:          sptr("Armoured"),
	})

	assert.Equal(t,
		" AND voltage_kv = $1 AND conductor ILIKE $2 AND cores = $3"+
			" AND cross_section_mm2 = $4 AND insulation ILIKE $5 AND armour ILIKE $6",
		where)
	require.Len(t, args, 6)
	assert.Equal(t, 1.1, args[0])
	assert.Equal(t, "%Aluminium%", args[1], "text fields match as substrings")
	assert.Equal(t, "3.5C", args[2])
	assert.Equal(t, 95.0, args[3])
	assert.Equal(t, "%XLPE%", args[4])
	assert.Equal(t, "%Armoured%", args[5])
}

func TestBuildSpecFilterPlaceholderNumbering(t *testing.T) {
	// Skipping fields must not leave gaps in the placeholder sequence.
	where, args := buildSpecFilter(catalog.Filter{
		VoltageKV:  fptr(11),
		Insulation: sptr("XLPE"),
	})

	assert.Equal(t, " AND voltage_kv = $1 AND insulation ILIKE $2", where)
	require.Len(t, args, 2)
}
