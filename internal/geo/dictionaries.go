package geo

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sen-dwh/aid-etl/internal/normalize"
)

//go:embed data/corrections.yaml
var correctionsYAML []byte

// Dictionaries are the hand-curated variant -> canonical mappings.
// All lookup keys are normalized (upper-cased, diacritic-stripped) at
// load time so lookups are accent-insensitive.
type Dictionaries struct {
	Departments        map[string]string // dept variant -> canonical department
	Districts          map[string]string // district variant -> canonical district
	DistrictDepartment map[string]string // district seen in dept field -> department
	LocalityDistrict   map[string]string // locality seen in district field -> district
}

type correctionsFile struct {
	Departments          map[string]string `yaml:"departments"`
	Districts            map[string]string `yaml:"districts"`
	DistrictAsDepartment map[string]string `yaml:"district_as_department"`
	LocalityAsDistrict   map[string]string `yaml:"locality_as_district"`
}

// LoadDictionaries parses the embedded corrections, or the file at
// path when non-empty (operators can ship updated dictionaries without
// a rebuild).
func LoadDictionaries(path string) (*Dictionaries, error) {
	data := correctionsYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read corrections file %s: %w", path, err)
		}
		data = b
	}

	var f correctionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse corrections: %w", err)
	}

	return &Dictionaries{
		Departments:        normalizeKeys(f.Departments),
		Districts:          normalizeKeys(f.Districts),
		DistrictDepartment: normalizeKeys(f.DistrictAsDepartment),
		LocalityDistrict:   normalizeKeys(f.LocalityAsDistrict),
	}, nil
}

func normalizeKeys(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[normalize.Key(k)] = v
	}
	return out
}
