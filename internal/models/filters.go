package models

// FlightFilter represents the dashboard's selection criteria. Empty slices
// mean "no restriction", mirroring the dropdowns where an empty selection
// selects everything.
type FlightFilter struct {
	Pilots    []string `form:"pilot"`
	Class     string   `form:"class"` // motorized, unmotorized or all/empty
	Years     []int    `form:"year"`
	Equipment []string `form:"equipment"`
	Sites     []string `form:"site"`
}

// Matches reports whether a row passes the filter
func (f FlightFilter) Matches(row FlightRow) bool {
	if len(f.Pilots) > 0 && !containsString(f.Pilots, row.Pilot) {
		return false
	}
	if f.Class != "" && f.Class != "all" && row.Class != f.Class {
		return false
	}
	if len(f.Years) > 0 && !containsInt(f.Years, row.Year) {
		return false
	}
	if len(f.Equipment) > 0 && !containsString(f.Equipment, row.Equipment) {
		return false
	}
	if len(f.Sites) > 0 && !containsString(f.Sites, row.Site) {
		return false
	}
	return true
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(values []int, v int) bool {
	for _, n := range values {
		if n == v {
			return true
		}
	}
	return false
}
