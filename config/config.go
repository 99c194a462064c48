// config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type AWSDConfig struct {
	BaseURL         string `yaml:"base_url"`
	SummaryPageURL  string `yaml:"summary_page_url"`
	SummarySelector string `yaml:"summary_selector"`
	SavedDataDir    string `yaml:"saved_data_dir"`
}

type HDXConfig struct {
	Site      string `yaml:"site"`
	UserAgent string `yaml:"user_agent"`
}

// DatasetConfig carries the static dataset metadata that every published
// dataset shares. The notes templates contain a "(country)" placeholder that
// the assembler substitutes per target.
type DatasetConfig struct {
	Title                     string   `yaml:"title"`
	Tags                      []string `yaml:"tags"`
	LicenseID                 string   `yaml:"license_id"`
	Methodology               string   `yaml:"methodology"`
	Source                    string   `yaml:"dataset_source"`
	Maintainer                string   `yaml:"maintainer"`
	OwnerOrg                  string   `yaml:"owner_org"`
	UpdateFrequency           int      `yaml:"data_update_frequency"`
	CountryNotes              string   `yaml:"country_notes"`
	GlobalNotes               string   `yaml:"global_notes"`
	GlobalResourceDescription string   `yaml:"global_resource_description"`
}

type ScheduleConfig struct {
	CronSpec string `yaml:"cron_spec"`
}

type Config struct {
	AWSD          AWSDConfig     `yaml:"awsd"`
	HDX           HDXConfig      `yaml:"hdx"`
	Dataset       DatasetConfig  `yaml:"dataset"`
	CountriesFile string         `yaml:"countries_file"`
	Schedule      ScheduleConfig `yaml:"schedule"`
}

var AppConfig Config

// LoadConfig reads configuration from the given YAML file. With an empty
// path it probes the standard locations relative to the working directory.
func LoadConfig(configPath string) error {
	if configPath == "" {
		potentialPaths := []string{
			"config.yaml",
			"config/config.yaml",
			"../config/config.yaml",
		}
		for _, p := range potentialPaths {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
		if configPath == "" {
			return fmt.Errorf("config.yaml not found in standard locations")
		}
		fmt.Printf("Loading configuration from: %s\n", configPath)
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(file, &AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if AppConfig.AWSD.BaseURL == "" {
		return fmt.Errorf("awsd.base_url must be set")
	}
	if AppConfig.HDX.Site == "" {
		return fmt.Errorf("hdx.site must be set")
	}
	if AppConfig.AWSD.SavedDataDir == "" {
		// Keep saved exports inside the repo so /tmp cleanup can't eat them.
		AppConfig.AWSD.SavedDataDir = "saved_data"
	}
	if err := os.MkdirAll(AppConfig.AWSD.SavedDataDir, 0755); err != nil {
		return fmt.Errorf("failed to create saved data directory: %w", err)
	}

	return nil
}
