// services/dataset_service.go
package services

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/OCHA-DAP/hdx-scraper-awsd/config"
	"github.com/OCHA-DAP/hdx-scraper-awsd/countries"
	"github.com/OCHA-DAP/hdx-scraper-awsd/hdx"
	"github.com/OCHA-DAP/hdx-scraper-awsd/models"
)

const (
	globalDatasetName  = "aid-worker-security-data-global"
	globalDatasetTitle = "Global - Aid Worker Security Database"
	globalResourceName = "Global security incidents"
	globalResourceFile = "AWSD_global_security_incidents.csv"
	worldLocation      = "world"
	countryPlaceholder = "(country)"
	datasetNamePrefix  = "aid-worker-security-database-"
)

// writeTableCsv stages the table as a CSV file in folder and returns its
// path. Each scope embeds its country code (or "global") in the filename, so
// targets never collide in the shared working directory.
func writeTableCsv(table *models.IncidentTable, folder, filename string) (string, error) {
	path := filepath.Join(folder, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		return "", fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return "", fmt.Errorf("failed to write rows to %s: %w", path, err)
	}
	return path, nil
}

func applyStaticMetadata(dataset *hdx.Dataset) {
	cfg := config.AppConfig.Dataset
	dataset.LicenseID = cfg.LicenseID
	dataset.Methodology = cfg.Methodology
	dataset.Source = cfg.Source
	dataset.Maintainer = cfg.Maintainer
	dataset.OwnerOrg = cfg.OwnerOrg
	dataset.UpdateFrequency = cfg.UpdateFrequency
}

// GenerateCountryDataset builds the dataset for one country from the full
// table. It returns (nil, nil) when the country has no incidents or its
// location cannot be resolved on HDX; both are skips, not failures of the
// run.
func GenerateCountryDataset(client *hdx.Client, table *models.IncidentTable, country countries.Country, workdir string) (*hdx.Dataset, error) {
	proj, ok := ProjectCountry(table, country.ISO2, country.ISO3)
	if !ok {
		log.Printf("Service: No data for %s, skipping\n", country.Name)
		return nil, nil
	}

	dateRange := GetDateRange(proj)

	cfg := config.AppConfig.Dataset
	dataset := &hdx.Dataset{
		Name:  datasetNamePrefix + strings.ToLower(country.ISO3),
		Title: fmt.Sprintf("%s - %s", country.Name, cfg.Title),
	}
	dataset.SetTimePeriod(dateRange)
	dataset.AddTags(cfg.Tags)
	dataset.SetSubnational(true)
	dataset.PreviewOff()

	found, err := client.LocationExists(country.ISO3)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve location %s: %w", country.ISO3, err)
	}
	if !found {
		log.Printf("ERROR Service: Couldn't find country %s, skipping\n", country.ISO3)
		return nil, nil
	}
	dataset.AddCountryLocation(country.ISO3)

	applyStaticMetadata(dataset)
	dataset.Notes = strings.ReplaceAll(cfg.CountryNotes, countryPlaceholder, country.Name)

	resourceName := fmt.Sprintf("AWSD_%s_security_incidents.csv", country.ISO2)
	path, err := writeTableCsv(proj, workdir, resourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to stage resource for %s: %w", country.ISO3, err)
	}
	dataset.AddResource(hdx.Resource{
		Name:        resourceName,
		Description: fmt.Sprintf("This dataset shows aid worker security incidents in %s.", country.Name),
		Format:      "csv",
		FilePath:    path,
	})
	return dataset, nil
}

// GenerateGlobalDataset builds the worldwide dataset: every row of the full
// table, with the Palestinian location values blanked. Returns (nil, nil)
// when the export was empty.
func GenerateGlobalDataset(table *models.IncidentTable, workdir string) (*hdx.Dataset, error) {
	if table.IsEmpty() {
		log.Println("Service: No data in export, skipping global dataset")
		return nil, nil
	}

	proj := ProjectGlobal(table)
	dateRange := GetDateRange(proj)

	cfg := config.AppConfig.Dataset
	dataset := &hdx.Dataset{
		Name:  globalDatasetName,
		Title: globalDatasetTitle,
	}
	dataset.SetTimePeriod(dateRange)
	dataset.AddTags(cfg.Tags)
	dataset.SetSubnational(true)
	dataset.PreviewOff()
	dataset.AddOtherLocation(worldLocation)

	applyStaticMetadata(dataset)
	dataset.Notes = cfg.GlobalNotes

	path, err := writeTableCsv(proj, workdir, globalResourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to stage global resource: %w", err)
	}
	dataset.AddResource(hdx.Resource{
		Name:        globalResourceName,
		Description: cfg.GlobalResourceDescription,
		Format:      "csv",
		FilePath:    path,
	})
	return dataset, nil
}
