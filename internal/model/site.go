// Package model holds the shared site record types.
package model

// SiteRecord is one assembled row of planning attributes for a lot.
// Records are immutable once appended to a table; empty strings mean
// the lot has no value for that topic.
type SiteRecord struct {
	Address           string `json:"address"`
	SiteArea          string `json:"site_area"`
	LotID             string `json:"lot_id"`
	Council           string `json:"council"`
	RegionalPlan      string `json:"regional_plan"`
	LALC              string `json:"lalc"`
	Zoning            string `json:"zoning"`
	BPA               string `json:"bpa"`
	SpecialProvisions string `json:"special_provisions"`
	CrownLand         string `json:"crown_land"`
	Heritage          string `json:"heritage"`
}

// Columns returns the export column headers in display order.
func Columns() []string {
	return []string{
		"Address",
		"Site Area (ha)",
		"Lot Identifier",
		"Council",
		"Regional Plan Boundary",
		"Local Aboriginal Land Council",
		"Land Zoning",
		"BPA",
		"Special Provisions",
		"Crown Land",
		"Heritage",
	}
}

// Row renders the record as export cells aligned with Columns.
func (r SiteRecord) Row() []string {
	return []string{
		r.Address,
		r.SiteArea,
		r.LotID,
		r.Council,
		r.RegionalPlan,
		r.LALC,
		r.Zoning,
		r.BPA,
		r.SpecialProvisions,
		r.CrownLand,
		r.Heritage,
	}
}
