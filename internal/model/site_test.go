package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowAlignsWithColumns(t *testing.T) {
	t.Parallel()

	rec := SiteRecord{
		Address:           "12 EXAMPLE STREET",
		SiteArea:          "",
		LotID:             "37/G/DP8324",
		Council:           "WOLLONGONG CITY COUNCIL",
		RegionalPlan:      "Illawarra Shoalhaven",
		LALC:              "Illawarra",
		Zoning:            "R2 – Residential",
		BPA:               "Vegetation Buffer",
		SpecialProvisions: "Height of Buildings: 9 m",
		CrownLand:         "N",
		Heritage:          "Y",
	}

	cols := Columns()
	row := rec.Row()
	require.Len(t, row, len(cols))

	byCol := make(map[string]string, len(cols))
	for i, col := range cols {
		byCol[col] = row[i]
	}
	assert.Equal(t, "37/G/DP8324", byCol["Lot Identifier"])
	assert.Equal(t, "R2 – Residential", byCol["Land Zoning"])
	assert.Equal(t, "Vegetation Buffer", byCol["BPA"])
	assert.Equal(t, "Y", byCol["Heritage"])
	assert.Equal(t, "N", byCol["Crown Land"])
	assert.Empty(t, byCol["Site Area (ha)"])
}
