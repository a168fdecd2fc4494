package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLandZoning(t *testing.T) {
	t.Parallel()

	idx := Index{
		LayerLandZoning: {{"Zone": "R2", "Land Use": "Residential"}},
	}
	assert.Equal(t, "R2 – Residential", LandZoning(idx))
}

func TestLandZoning_NoLandUse(t *testing.T) {
	t.Parallel()

	idx := Index{LayerLandZoning: {{"Zone": "R2"}}}
	assert.Equal(t, "R2", LandZoning(idx))
}

func TestLandZoning_NoZone(t *testing.T) {
	t.Parallel()

	idx := Index{LayerLandZoning: {{"Land Use": "Residential"}}}
	assert.Empty(t, LandZoning(idx))
}

func TestLandZoning_FirstRecordOnly(t *testing.T) {
	t.Parallel()

	idx := Index{
		LayerLandZoning: {
			{"Zone": "R2", "Land Use": "Residential"},
			{"Zone": "B1", "Land Use": "Business"},
		},
	}
	assert.Equal(t, "R2 – Residential", LandZoning(idx))
}

func TestPresenceAbsenceEquivalence(t *testing.T) {
	t.Parallel()

	missing := Index{}
	empty := Index{LayerLandZoning: {}}

	assert.Equal(t, LandZoning(missing), LandZoning(empty))
	assert.Empty(t, LandZoning(empty))
	assert.Equal(t, RegionalPlan(missing), RegionalPlan(empty))
	assert.Equal(t, Height(missing), Height(empty))
}

func TestRegionalPlan(t *testing.T) {
	t.Parallel()

	idx := Index{
		LayerRegionalPlan: {
			{"title": "Illawarra Shoalhaven"},
			{"title": "ignored second entry"},
		},
	}
	assert.Equal(t, "Illawarra Shoalhaven", RegionalPlan(idx))
	assert.Empty(t, RegionalPlan(Index{}))
}

func TestLALC(t *testing.T) {
	t.Parallel()

	idx := Index{
		LayerLALC: {{"Local Council Name": "Illawarra"}},
	}
	assert.Equal(t, "Illawarra", LALC(idx))
	assert.Empty(t, LALC(Index{}))
}

func TestSpecialProvisions_DedupeAndSort(t *testing.T) {
	t.Parallel()

	idx := Index{
		LayerSpecialProvisions: {
			{"Type": "Urban Release Area"},
			{"Type": "Coastal Wetlands"},
			{"Type": "Urban Release Area"},
		},
	}
	assert.Equal(t, "Coastal Wetlands; Urban Release Area", SpecialProvisions(idx))
}

func TestSpecialProvisions_RecordWithoutType(t *testing.T) {
	t.Parallel()

	// A record with no extractable field contributes nothing, not an
	// empty entry.
	idx := Index{
		LayerSpecialProvisions: {
			{"irrelevant": "x"},
			{"Type": "Coastal Wetlands"},
		},
	}
	assert.Equal(t, "Coastal Wetlands", SpecialProvisions(idx))

	onlyEmpty := Index{LayerSpecialProvisions: {{"irrelevant": "x"}}}
	assert.Empty(t, SpecialProvisions(onlyEmpty))
}

func TestHeight_DuplicateCollapsed(t *testing.T) {
	t.Parallel()

	idx := Index{
		LayerHeight: {
			{"title": "9", "Units": "m"},
			{"title": "9", "Units": "m"},
		},
	}
	assert.Equal(t, "Height of Buildings: 9 m", Height(idx))
}

func TestHeight_LexicographicOrder(t *testing.T) {
	t.Parallel()

	idx := Index{
		LayerHeight: {
			{"title": "12", "Units": "m"},
			{"title": "9", "Units": "m"},
		},
	}
	// Sort is lexicographic over the rendered label, not numeric:
	// "1" < "9".
	assert.Equal(t, "Height of Buildings: 12 m; 9 m", Height(idx))
}

func TestHeight_PrimaryFieldAndMeta(t *testing.T) {
	t.Parallel()

	idx := Index{
		LayerHeight: {{
			"Maximum Building Height": "9",
			"Units":                   "m",
			"Legislative Clause":      "4.3",
			"EPI Name":                "Wollongong LEP 2009",
		}},
	}
	assert.Equal(t, "Height of Buildings: 9 m (4.3, Wollongong LEP 2009)", Height(idx))
}

func TestHeight_DefaultUnits(t *testing.T) {
	t.Parallel()

	idx := Index{LayerHeight: {{"title": "9"}}}
	assert.Equal(t, "Height of Buildings: 9 m", Height(idx))
}

func TestHeight_NumericTitle(t *testing.T) {
	t.Parallel()

	// The portal sometimes returns heights as JSON numbers.
	idx := Index{LayerHeight: {{"title": float64(9), "Units": "m"}}}
	assert.Equal(t, "Height of Buildings: 9 m", Height(idx))
}

func TestHeight_NoPrimaryNoFallback(t *testing.T) {
	t.Parallel()

	idx := Index{
		LayerHeight: {{"Legislative Clause": "4.3", "EPI Name": "LEP"}},
	}
	assert.Empty(t, Height(idx))
}

func TestAggregation_ReorderIdempotent(t *testing.T) {
	t.Parallel()

	a := Index{
		LayerAcidSulfateSoils: {
			{"Class": "Class 2", "EPI Name": "LEP"},
			{"Class": "Class 5"},
		},
	}
	b := Index{
		LayerAcidSulfateSoils: {
			{"Class": "Class 5"},
			{"Class": "Class 2", "EPI Name": "LEP"},
		},
	}
	assert.Equal(t, AcidSulfateSoils(a), AcidSulfateSoils(b))
}

func TestAggregation_DuplicationIdempotent(t *testing.T) {
	t.Parallel()

	base := Index{
		LayerGroundwater: {{"Class": "Vulnerable", "Legislative Clause": "7.6"}},
	}
	doubled := Index{
		LayerGroundwater: {
			{"Class": "Vulnerable", "Legislative Clause": "7.6"},
			{"Class": "Vulnerable", "Legislative Clause": "7.6"},
		},
	}
	assert.Equal(t, Groundwater(base), Groundwater(doubled))
}

func TestAggregation_SortsOnFullLabel(t *testing.T) {
	t.Parallel()

	// Same class, different metadata: the parenthetical participates in
	// the sort.
	idx := Index{
		LayerAcidSulfateSoils: {
			{"Class": "Class 2", "EPI Name": "Zebra LEP"},
			{"Class": "Class 2", "EPI Name": "Alpha LEP"},
		},
	}
	assert.Equal(t,
		"Acid Sulfate Soils: Class 2 (Alpha LEP); Class 2 (Zebra LEP)",
		AcidSulfateSoils(idx))
}

func TestAcidSulfateSoils_TitleFallback(t *testing.T) {
	t.Parallel()

	idx := Index{LayerAcidSulfateSoils: {{"title": "Class 1"}}}
	assert.Equal(t, "Acid Sulfate Soils: Class 1", AcidSulfateSoils(idx))
}

func TestBiodiversity(t *testing.T) {
	t.Parallel()

	idx := Index{
		LayerBiodiversity: {
			{"Type": "Significant Vegetation", "Legislative Clause": "7.5"},
		},
	}
	assert.Equal(t,
		"Terrestrial Biodiversity: Significant Vegetation (7.5)",
		Biodiversity(idx))
}

func TestBushfire(t *testing.T) {
	t.Parallel()

	idx := Index{
		LayerBushfire: {
			{"Category": "Vegetation Category 1"},
			{"Category": "Vegetation Buffer"},
		},
	}
	assert.Equal(t, "Vegetation Buffer; Vegetation Category 1", Bushfire(idx))
	assert.Empty(t, Bushfire(Index{}))
}

func TestFlags(t *testing.T) {
	t.Parallel()

	idx := Index{
		LayerHeritage: {{"title": "Item 42"}},
	}
	assert.Equal(t, "Y", Heritage(idx))
	assert.Equal(t, "N", CrownLand(idx))

	// Flags are never empty, whatever the index state.
	assert.Equal(t, "N", Heritage(Index{}))
	assert.Equal(t, "N", Heritage(Index{LayerHeritage: {}}))
	assert.Equal(t, "Y", CrownLand(Index{LayerCrownLand: {{"title": "Reserve"}}}))
}

func TestMergeProvisions(t *testing.T) {
	t.Parallel()

	got := MergeProvisions(
		"Urban Release Area",
		"",
		"Height of Buildings: 9 m",
		"Acid Sulfate Soils: Class 2",
		"",
	)
	assert.Equal(t,
		"Acid Sulfate Soils: Class 2; Height of Buildings: 9 m; Urban Release Area",
		got)

	assert.Empty(t, MergeProvisions("", "", ""))
	assert.Empty(t, MergeProvisions())
	assert.Equal(t, "a", MergeProvisions("a", "a"))
}
