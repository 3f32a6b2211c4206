package geo

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/sen-dwh/aid-etl/internal/normalize"
)

// LocalityRegistry maps canonical districts to their locality sets,
// extracted from the national cartography barrios file. The registry
// is optional: without it, locality resolution degrades to heuristics.
type LocalityRegistry struct {
	byDistrict map[string][]string // district key -> localities, file order
	districts  []string            // district keys, deterministic iteration order
	all        []string            // every locality, sorted district order
}

// LoadLocalityRegistry reads the district -> localities JSON document.
// A missing file is not an error; it yields an empty registry.
func LoadLocalityRegistry(path string) (*LocalityRegistry, error) {
	reg := &LocalityRegistry{byDistrict: make(map[string][]string)}
	if path == "" {
		return reg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("Locality registry %s not found, locality resolution degraded to heuristics\n", path)
			return reg, nil
		}
		return nil, fmt.Errorf("failed to read locality registry %s: %w", path, err)
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse locality registry %s: %w", path, err)
	}

	// Normalize district keys; keep locality spellings as stored, they
	// are the canonical diacritic-bearing forms.
	for district, localities := range raw {
		key := normalize.Key(district)
		reg.byDistrict[key] = localities
	}
	// json map iteration is random; rebuild a sorted key list so every
	// cross-district scan is deterministic.
	reg.districts = sortedKeys(reg.byDistrict)
	for _, key := range reg.districts {
		reg.all = append(reg.all, reg.byDistrict[key]...)
	}

	return reg, nil
}

// LocalitiesOf returns the registered localities of a district.
func (r *LocalityRegistry) LocalitiesOf(district string) []string {
	return r.byDistrict[normalize.Key(district)]
}

// Districts returns the registered district keys in sorted order.
func (r *LocalityRegistry) Districts() []string {
	return r.districts
}

// AllLocalities returns every registered locality across all
// districts, in sorted district order.
func (r *LocalityRegistry) AllLocalities() []string {
	return r.all
}

// Size returns the number of districts with registered localities.
func (r *LocalityRegistry) Size() int {
	return len(r.byDistrict)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
