package geo

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sen-dwh/aid-etl/internal/normalize"
)

//go:embed data/hierarchy.yaml
var hierarchyYAML []byte

// DefaultDepartment is where unresolvable department text lands. The
// historical ledgers book multi-department and administrative entries
// under CENTRAL as well.
const DefaultDepartment = "CENTRAL"

// CapitalDepartment hosts the single-district capital.
const CapitalDepartment = "CAPITAL"

// Department is one of the 18 canonical departments, with its fixed
// display rank and closed district set.
type Department struct {
	Name      string   `yaml:"name"`
	Districts []string `yaml:"districts"`
	Rank      int      `yaml:"-"`
}

// Hierarchy is the static geographic reference: loaded once at
// start-up, read-only afterwards.
type Hierarchy struct {
	departments []Department
	deptByKey   map[string]string   // department key -> canonical name
	rankByName  map[string]int      // canonical name -> display rank
	distByKey   map[string]string   // district key -> canonical district
	distOwner   map[string]string   // canonical district -> owning department
	distByDept  map[string][]string // canonical department -> districts
	allDists    []string            // every canonical district, registry order
}

type hierarchyFile struct {
	Departments []Department `yaml:"departments"`
}

// LoadHierarchy parses the embedded canonical hierarchy.
func LoadHierarchy() (*Hierarchy, error) {
	var f hierarchyFile
	if err := yaml.Unmarshal(hierarchyYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse hierarchy: %w", err)
	}
	if len(f.Departments) != 18 {
		return nil, fmt.Errorf("hierarchy must define exactly 18 departments, got %d", len(f.Departments))
	}

	h := &Hierarchy{
		deptByKey:  make(map[string]string),
		rankByName: make(map[string]int),
		distByKey:  make(map[string]string),
		distOwner:  make(map[string]string),
		distByDept: make(map[string][]string),
	}

	for i, d := range f.Departments {
		d.Rank = i + 1
		h.departments = append(h.departments, d)
		h.deptByKey[normalize.Key(d.Name)] = d.Name
		h.rankByName[d.Name] = d.Rank
		h.distByDept[d.Name] = d.Districts

		for _, dist := range d.Districts {
			key := normalize.Key(dist)
			if owner, dup := h.distOwner[dist]; dup {
				return nil, fmt.Errorf("district %q listed under both %q and %q", dist, owner, d.Name)
			}
			h.distByKey[key] = dist
			h.distOwner[dist] = d.Name
			h.allDists = append(h.allDists, dist)
		}
	}

	return h, nil
}

// Departments returns the canonical departments in display-rank order.
func (h *Hierarchy) Departments() []Department {
	return h.departments
}

// DepartmentNames returns the 18 canonical names in rank order.
func (h *Hierarchy) DepartmentNames() []string {
	names := make([]string, len(h.departments))
	for i, d := range h.departments {
		names[i] = d.Name
	}
	return names
}

// CanonicalDepartment resolves text to a canonical department by exact
// key equality.
func (h *Hierarchy) CanonicalDepartment(raw string) (string, bool) {
	name, ok := h.deptByKey[normalize.Key(raw)]
	return name, ok
}

// Rank returns the display rank (1..18) for a canonical department,
// 0 for anything else.
func (h *Hierarchy) Rank(department string) int {
	return h.rankByName[department]
}

// CanonicalDistrict resolves text to a canonical district by exact key
// equality across every department.
func (h *Hierarchy) CanonicalDistrict(raw string) (string, bool) {
	dist, ok := h.distByKey[normalize.Key(raw)]
	return dist, ok
}

// DepartmentOfDistrict returns the owning department of a canonical
// district.
func (h *Hierarchy) DepartmentOfDistrict(district string) (string, bool) {
	dept, ok := h.distOwner[district]
	return dept, ok
}

// DistrictsOf returns the closed district set of a department, in
// registry order.
func (h *Hierarchy) DistrictsOf(department string) []string {
	return h.distByDept[department]
}

// AllDistricts returns every canonical district in registry order.
func (h *Hierarchy) AllDistricts() []string {
	return h.allDists
}
