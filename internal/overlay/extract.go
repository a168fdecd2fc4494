package overlay

import (
	"sort"
	"strings"

	"github.com/sells-group/planning-cli/pkg/eplanning"
)

// Layer names as returned by the layerintersect endpoint.
const (
	LayerLandZoning        = "Land Zoning Map"
	LayerRegionalPlan      = "Regional Plan Boundary"
	LayerLALC              = "Local Aboriginal Land Council"
	LayerSpecialProvisions = "Special Provisions"
	LayerHeight            = "Height of Buildings Map"
	LayerAcidSulfateSoils  = "Acid Sulfate Soils Map"
	LayerGroundwater       = "Groundwater Vulnerability Map"
	LayerBiodiversity      = "Terrestrial Biodiversity Map"
	LayerBushfire          = "Bushfire Prone Land Map"
	LayerHeritage          = "Heritage Map"
	LayerCrownLand         = "Crown Land"
)

// delimiter joins aggregated labels and merged provision topics.
const delimiter = "; "

// Extractors are pure functions over an Index. An empty string means
// the topic has no value for this lot; flag extractors return "Y"/"N"
// and never empty.

// LandZoning reads the first zoning intersection and composes
// "Zone – Land Use", dropping the land use when absent. Later zoning
// records are ignored: multi-overlap lots collapse to the first listed
// zone.
func LandZoning(idx Index) string {
	first, ok := firstRecord(idx, LayerLandZoning)
	if !ok {
		return ""
	}
	zone, ok := first.GetString("Zone")
	if !ok {
		return ""
	}
	if landUse, ok := first.GetString("Land Use"); ok {
		return zone + " – " + landUse
	}
	return zone
}

// RegionalPlan returns the title of the first regional plan boundary.
func RegionalPlan(idx Index) string {
	first, ok := firstRecord(idx, LayerRegionalPlan)
	if !ok {
		return ""
	}
	title, _ := first.GetString("title")
	return title
}

// LALC returns the first Local Aboriginal Land Council name.
func LALC(idx Index) string {
	first, ok := firstRecord(idx, LayerLALC)
	if !ok {
		return ""
	}
	name, _ := first.GetString("Local Council Name")
	return name
}

// SpecialProvisions aggregates the Type of every special provisions
// record.
func SpecialProvisions(idx Index) string {
	return aggregate(idx, LayerSpecialProvisions, func(r eplanning.Record) string {
		t, _ := r.GetString("Type")
		return t
	})
}

// Height aggregates maximum building heights with their units and
// legislative metadata.
func Height(idx Index) string {
	labels := aggregate(idx, LayerHeight, func(r eplanning.Record) string {
		height, ok := primary(r, "Maximum Building Height")
		if !ok {
			return ""
		}
		units := r.GetStringDefault("Units", "m")
		return withMeta(strings.TrimSpace(height+" "+units), r)
	})
	return prefixed("Height of Buildings: ", labels)
}

// AcidSulfateSoils aggregates acid sulfate soil classes.
func AcidSulfateSoils(idx Index) string {
	labels := aggregate(idx, LayerAcidSulfateSoils, classLabel)
	return prefixed("Acid Sulfate Soils: ", labels)
}

// Groundwater aggregates groundwater vulnerability classes.
func Groundwater(idx Index) string {
	labels := aggregate(idx, LayerGroundwater, classLabel)
	return prefixed("Groundwater Vulnerability: ", labels)
}

// Biodiversity aggregates terrestrial biodiversity types.
func Biodiversity(idx Index) string {
	labels := aggregate(idx, LayerBiodiversity, func(r eplanning.Record) string {
		t, ok := primary(r, "Type")
		if !ok {
			return ""
		}
		return withMeta(t, r)
	})
	return prefixed("Terrestrial Biodiversity: ", labels)
}

// Bushfire aggregates bushfire prone land categories. Rendered in its
// own BPA column, so no topic prefix.
func Bushfire(idx Index) string {
	return aggregate(idx, LayerBushfire, func(r eplanning.Record) string {
		cat, ok := primary(r, "Category")
		if !ok {
			return ""
		}
		return withMeta(cat, r)
	})
}

// Heritage reports whether any heritage intersection exists.
func Heritage(idx Index) string {
	return flag(idx, LayerHeritage)
}

// CrownLand reports whether any crown land intersection exists.
func CrownLand(idx Index) string {
	return flag(idx, LayerCrownLand)
}

// MergeProvisions unions independently optional provision topics into
// the Special Provisions column: empties dropped, duplicates collapsed,
// ascending sort, same delimiter as per-layer aggregation.
func MergeProvisions(parts ...string) string {
	seen := make(map[string]struct{}, len(parts))
	merged := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		merged = append(merged, p)
	}
	sort.Strings(merged)
	return strings.Join(merged, delimiter)
}

// firstRecord returns the first record for a layer. A missing key and
// an empty result slice are equivalent: both mean no value.
func firstRecord(idx Index, layer string) (eplanning.Record, bool) {
	results := idx[layer]
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}

// aggregate renders one label per record, drops records that produce
// nothing, collapses duplicates, and joins the rest in ascending
// lexicographic order of the full rendered label. Sorting makes the
// output independent of upstream result order.
func aggregate(idx Index, layer string, label func(eplanning.Record) string) string {
	results := idx[layer]
	if len(results) == 0 {
		return ""
	}

	seen := make(map[string]struct{}, len(results))
	labels := make([]string, 0, len(results))
	for _, r := range results {
		l := label(r)
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		labels = append(labels, l)
	}
	if len(labels) == 0 {
		return ""
	}

	sort.Strings(labels)
	return strings.Join(labels, delimiter)
}

// primary reads the topic's primary field, falling back to the generic
// title field the portal puts on most overlay records.
func primary(r eplanning.Record, field string) (string, bool) {
	if v, ok := r.GetString(field); ok {
		return v, true
	}
	return r.GetString("title")
}

// classLabel is the shared label shape for class-based layers.
func classLabel(r eplanning.Record) string {
	class, ok := primary(r, "Class")
	if !ok {
		return ""
	}
	return withMeta(class, r)
}

// withMeta suffixes a value with "(clause, EPI)" built from the
// legislative metadata fields, omitting whichever are absent.
func withMeta(value string, r eplanning.Record) string {
	clause, _ := r.GetString("Legislative Clause")
	epi, _ := r.GetString("EPI Name")

	meta := make([]string, 0, 2)
	if clause != "" {
		meta = append(meta, clause)
	}
	if epi != "" {
		meta = append(meta, epi)
	}
	if len(meta) == 0 {
		return value
	}
	return value + " (" + strings.Join(meta, ", ") + ")"
}

// prefixed names the topic ahead of its aggregated labels, or renders
// nothing when no record contributed a label.
func prefixed(prefix, labels string) string {
	if labels == "" {
		return ""
	}
	return prefix + labels
}

// flag renders layer presence as "Y"/"N".
func flag(idx Index, layer string) string {
	if len(idx[layer]) > 0 {
		return "Y"
	}
	return "N"
}
