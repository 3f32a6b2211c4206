// Package event canonicalizes free-text event labels against the
// bounded taxonomy and infers categories from aid composition when the
// label is missing.
package event

// Canonical event categories.
const (
	Covid            = "COVID"
	Fire             = "INCENDIO"
	SevereStorm      = "TORMENTA SEVERA"
	Drought          = "SEQUIA"
	Flood            = "INUNDACION"
	CommunityKitchen = "OLLA POPULAR"
	Vulnerability    = "EXTREMA VULNERABILIDAD"
	CourtAssistance  = "C.I.D.H."
	WinterOperation  = "OPERATIVO JAHO'I"
	Other            = "OTROS"
)

// Sentinels. Discard marks stock movements that must never be loaded;
// NoEvent marks a blank label awaiting inference; NoSupplies marks a
// record with no aid at all, discarded after inference.
const (
	Discard    = "ELIMINAR_REGISTRO"
	NoEvent    = "SIN EVENTO"
	NoSupplies = "SIN_INSUMOS"
)

// Canonical lists every category a loaded record may carry.
var Canonical = []string{
	Covid, Fire, SevereStorm, Drought, Flood, CommunityKitchen,
	Vulnerability, CourtAssistance, WinterOperation, Other,
}

// IsCanonical reports whether e is a loadable category.
func IsCanonical(e string) bool {
	for _, c := range Canonical {
		if c == e {
			return true
		}
	}
	return false
}
