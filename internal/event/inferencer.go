package event

import (
	"github.com/sen-dwh/aid-etl/internal/geo"
)

// Structurally dry Chaco departments: an unlabelled distribution there
// is drought relief.
var dryDepartments = map[string]bool{
	"BOQUERON":      true,
	"ALTO PARAGUAY": true,
	"PDTE. HAYES":   true,
}

// AidProfile summarizes the coerced quantities of one record for
// inference. Materials is the sum of all seven material fields,
// including the two sheet types broken out separately.
type AidProfile struct {
	TotalKits         int
	ChapaZinc         int
	ChapaFibrocemento int
	Materials         int
}

// Infer fills in a missing event category from aid composition. Rules
// are evaluated in fixed order, first match wins. A record already
// categorized (including Discard) passes through untouched.
func Infer(current, department string, p AidProfile) string {
	if current != NoEvent && current != "" {
		return current
	}

	if dryDepartments[department] {
		return Drought
	}

	// A handful of kits alongside materials is the fire-relief
	// signature.
	if p.TotalKits > 0 && p.TotalKits < 10 && p.Materials > 0 {
		return Fire
	}

	if department == geo.CapitalDepartment && p.TotalKits > 0 && p.Materials == 0 {
		return Flood
	}

	// Zinc sheets as the only material: storm roof damage.
	if p.ChapaZinc > 0 && p.TotalKits == 0 && p.ChapaFibrocemento == 0 && p.Materials == p.ChapaZinc {
		return SevereStorm
	}

	// Fibre-cement sheets as the only material: flood rebuild.
	if p.ChapaFibrocemento > 0 && p.TotalKits == 0 && p.ChapaZinc == 0 && p.Materials == p.ChapaFibrocemento {
		return Flood
	}

	if p.TotalKits > 0 {
		return Vulnerability
	}

	if p.TotalKits == 0 && p.Materials == 0 {
		return NoSupplies
	}

	return Vulnerability
}
