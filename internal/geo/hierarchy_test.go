package geo

import "testing"

func TestLoadHierarchy(t *testing.T) {
	h, err := LoadHierarchy()
	if err != nil {
		t.Fatalf("LoadHierarchy() error: %v", err)
	}

	if got := len(h.Departments()); got != 18 {
		t.Fatalf("department count = %d, want 18", got)
	}

	// Ranks are the fixed display order 1..18.
	if h.Rank("CONCEPCIÓN") != 1 {
		t.Errorf("Rank(CONCEPCIÓN) = %d, want 1", h.Rank("CONCEPCIÓN"))
	}
	if h.Rank("CENTRAL") != 11 {
		t.Errorf("Rank(CENTRAL) = %d, want 11", h.Rank("CENTRAL"))
	}
	if h.Rank("CAPITAL") != 18 {
		t.Errorf("Rank(CAPITAL) = %d, want 18", h.Rank("CAPITAL"))
	}
	if h.Rank("NO SUCH PLACE") != 0 {
		t.Errorf("Rank of unknown department should be 0")
	}
}

func TestDistrictOwnership(t *testing.T) {
	h, err := LoadHierarchy()
	if err != nil {
		t.Fatalf("LoadHierarchy() error: %v", err)
	}

	// Every district belongs to exactly one department.
	seen := make(map[string]string)
	for _, d := range h.Departments() {
		for _, dist := range d.Districts {
			if owner, dup := seen[dist]; dup {
				t.Errorf("district %q owned by both %q and %q", dist, owner, d.Name)
			}
			seen[dist] = d.Name
		}
	}

	dept, ok := h.DepartmentOfDistrict("CORONEL OVIEDO")
	if !ok || dept != "CAAGUAZÚ" {
		t.Errorf("DepartmentOfDistrict(CORONEL OVIEDO) = %q, %v; want CAAGUAZÚ", dept, ok)
	}
}

func TestCanonicalLookupsAreAccentInsensitive(t *testing.T) {
	h, err := LoadHierarchy()
	if err != nil {
		t.Fatalf("LoadHierarchy() error: %v", err)
	}

	if dept, ok := h.CanonicalDepartment("caaguazu"); !ok || dept != "CAAGUAZÚ" {
		t.Errorf("CanonicalDepartment(caaguazu) = %q, %v", dept, ok)
	}
	if dist, ok := h.CanonicalDistrict("ITAUGUA"); !ok || dist != "ITAUGUÁ" {
		t.Errorf("CanonicalDistrict(ITAUGUA) = %q, %v", dist, ok)
	}
}
