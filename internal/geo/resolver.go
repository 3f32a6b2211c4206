package geo

import (
	"strings"

	"github.com/sen-dwh/aid-etl/internal/normalize"
	"github.com/sen-dwh/aid-etl/internal/similarity"
)

// Matching thresholds, tuned against the historical ledgers. District
// matching casts a wide net because the candidate set is small and
// department-scoped; locality matching is strict because the registry
// holds thousands of short names.
const (
	districtThreshold      = 0.60
	localityThreshold      = 0.85
	localityCrossThreshold = 0.80
	fieldSwapThreshold     = 0.80
	localityCrossMinRunes  = 4
)

// Separators operators use to cram several places into one field. The
// first part wins.
var fieldSeparators = []string{" - ", " / ", ", ", " Y "}

// Tokens that mark free text as a genuine locality worth keeping even
// when no registry entry matches.
var localityKeywords = []string{
	"BARRIO", "COLONIA", "COMUNIDAD", "ASENTAMIENTO", "CANTON", "COMPANIA",
}

// Resolver canonicalizes raw geographic text against the hierarchy,
// the correction dictionaries, and the locality registry. It holds
// only read-only reference data plus the scorer cache.
type Resolver struct {
	hierarchy *Hierarchy
	dicts     *Dictionaries
	registry  *LocalityRegistry
	scorer    *similarity.Scorer
}

// NewResolver wires a resolver from loaded reference data.
func NewResolver(h *Hierarchy, d *Dictionaries, r *LocalityRegistry) *Resolver {
	return &Resolver{
		hierarchy: h,
		dicts:     d,
		registry:  r,
		scorer:    similarity.NewScorer(),
	}
}

// ResolveDepartment maps raw department text to one of the 18
// canonical departments. It never returns the unspecified sentinel:
// anything unresolvable defaults to CENTRAL.
func (r *Resolver) ResolveDepartment(raw string) string {
	clean := normalize.CleanText(raw)
	if normalize.IsUnspecified(clean) {
		return DefaultDepartment
	}
	key := normalize.Key(clean)

	// Operators routinely put the district in the department column.
	if dist, ok := r.hierarchy.CanonicalDistrict(key); ok {
		if dept, ok := r.hierarchy.DepartmentOfDistrict(dist); ok {
			return dept
		}
	}
	if dept, ok := r.dicts.DistrictDepartment[key]; ok {
		return dept
	}

	if dept, ok := r.dicts.Departments[key]; ok {
		return dept
	}

	// Compound entries like "CAAGUAZU - CANINDEYU": the first part is
	// the department that executed the distribution.
	for _, sep := range fieldSeparators {
		if idx := strings.Index(key, sep); idx > 0 {
			head := strings.TrimSpace(key[:idx])
			if dept, ok := r.dicts.Departments[head]; ok {
				return dept
			}
		}
	}

	// Substring containment, in rank order for determinism.
	for _, dept := range r.hierarchy.DepartmentNames() {
		if strings.Contains(key, normalize.Key(dept)) {
			return dept
		}
	}

	return DefaultDepartment
}

// ResolveDistrict maps raw district text to a canonical district,
// preferring the resolved department's own districts. Unresolvable
// text is kept cleaned (not canonical) for audit rather than dropped
// to the unspecified sentinel.
func (r *Resolver) ResolveDistrict(raw, department string) string {
	clean := normalize.CleanText(raw)
	if normalize.IsUnspecified(clean) {
		return normalize.Unspecified
	}
	key := normalize.Key(clean)

	if dist, ok := r.dicts.Districts[key]; ok {
		return dist
	}
	// A locality in the district column identifies its district.
	if dist, ok := r.dicts.LocalityDistrict[key]; ok {
		return dist
	}

	if department != "" && department != normalize.Unspecified {
		if dist, ok := r.scorer.BestMatch(clean, r.hierarchy.DistrictsOf(department), districtThreshold); ok {
			return dist
		}
	}

	// The district may be misfiled under the wrong department.
	if dist, ok := r.scorer.BestMatch(clean, r.hierarchy.AllDistricts(), districtThreshold); ok {
		return dist
	}

	return clean
}

// ResolveLocality maps raw locality text against the district's
// registry. A locality repeating its district carries no information.
func (r *Resolver) ResolveLocality(raw, district string) string {
	clean := normalize.CleanText(raw)
	if normalize.IsUnspecified(clean) {
		return normalize.Unspecified
	}
	key := normalize.Key(clean)
	if key == normalize.Key(district) {
		return normalize.Unspecified
	}

	own := r.registry.LocalitiesOf(district)
	for _, loc := range own {
		if normalize.Key(loc) == key {
			return loc
		}
	}
	if loc, ok := r.scorer.BestMatch(clean, own, localityThreshold); ok {
		return loc
	}

	// Cross-district search catches localities filed under the wrong
	// district; too-short strings would false-positive everywhere. One
	// search over the pooled registries so the best candidate wins, not
	// the first district whose local best clears the threshold.
	if len([]rune(key)) >= localityCrossMinRunes {
		if loc, ok := r.scorer.BestMatch(clean, r.registry.AllLocalities(), localityCrossThreshold); ok {
			return loc
		}
	}

	for _, kw := range localityKeywords {
		if strings.Contains(key, kw) {
			return clean
		}
	}

	if len([]rune(clean)) < 3 {
		return normalize.Unspecified
	}
	return clean
}

// CorrectFieldSwap fixes records where the district landed in the
// locality column and the district column is blank. Returns the
// corrected (district, locality) pair.
func (r *Resolver) CorrectFieldSwap(district, locality string) (string, string) {
	if !normalize.IsUnspecified(normalize.CleanText(district)) {
		return district, locality
	}
	cleanLoc := normalize.CleanText(locality)
	if normalize.IsUnspecified(cleanLoc) {
		return district, locality
	}

	if dist, ok := r.hierarchy.CanonicalDistrict(cleanLoc); ok {
		return dist, ""
	}
	if dist, ok := r.scorer.BestMatch(cleanLoc, r.hierarchy.AllDistricts(), fieldSwapThreshold); ok {
		return dist, ""
	}
	return district, locality
}

// Rank exposes the department display rank for derived fields.
func (r *Resolver) Rank(department string) int {
	return r.hierarchy.Rank(department)
}
