// countries/countries.go
package countries

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Country describes one publishing target as supplied by the country
// metadata file: iso codes, display name, and whether the country is part of
// a Humanitarian Response Plan.
type Country struct {
	ISO2 string `yaml:"iso2"`
	ISO3 string `yaml:"iso3"`
	Name string `yaml:"name"`
	HRP  bool   `yaml:"hrp"`
}

// Load reads the country metadata file. Entries with malformed iso codes are
// rejected up front so the pipeline never builds a dataset around a bad
// location reference.
func Load(path string) ([]Country, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read countries file: %w", err)
	}
	var all []Country
	if err := yaml.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("failed to unmarshal countries file: %w", err)
	}
	for i, c := range all {
		if len(c.ISO2) != 2 || len(c.ISO3) != 3 {
			return nil, fmt.Errorf("countries entry %d (%q) has malformed iso codes", i, c.Name)
		}
	}
	return all, nil
}

// PublishingTargets filters to the countries that get a dataset of their
// own: HRP countries, plus the Palestinian territory which is always
// published.
func PublishingTargets(all []Country) []Country {
	var targets []Country
	for _, c := range all {
		if c.HRP || c.ISO3 == "PSE" {
			targets = append(targets, c)
		}
	}
	return targets
}
