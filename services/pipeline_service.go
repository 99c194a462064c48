// services/pipeline_service.go
package services

import (
	"fmt"
	"log"
	"os"

	"github.com/OCHA-DAP/hdx-scraper-awsd/config"
	"github.com/OCHA-DAP/hdx-scraper-awsd/countries"
	"github.com/OCHA-DAP/hdx-scraper-awsd/hdx"
	"github.com/OCHA-DAP/hdx-scraper-awsd/models"
	"github.com/OCHA-DAP/hdx-scraper-awsd/scraper"
)

// RunOptions mirror the command-line switches for offline replay.
type RunOptions struct {
	Save     bool
	UseSaved bool
}

// LoadIncidentTable downloads (or replays) the AWSD export and parses it
// into the incident table. Fetch and parse failures are fatal; there is
// nothing to publish without the table.
func LoadIncidentTable(workdir string, opts RunOptions) (*models.IncidentTable, error) {
	path, err := scraper.DownloadIncidentsCsv(workdir, opts.Save, opts.UseSaved)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve AWSD export: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open downloaded export: %w", err)
	}
	defer f.Close()
	return scraper.ParseIncidentsCsv(f)
}

// checkSourceFreshness logs the upstream last-updated date when the summary
// page is configured. Failures are advisory; the run proceeds either way.
func checkSourceFreshness() {
	cfg := config.AppConfig.AWSD
	if cfg.SummaryPageURL == "" {
		return
	}
	updated, err := scraper.GetSourceLastUpdated(cfg.SummaryPageURL, cfg.SummarySelector)
	if err != nil {
		log.Printf("WARN Service: Source freshness check failed: %v\n", err)
		return
	}
	log.Printf("Service: Source last updated %s\n", updated.Format("2006-01-02"))
}

// RunPipeline executes one full publishing run: download the export, build
// the table once, publish one dataset per target country sequentially, then
// the global dataset. The loaded table is passed by value to each step and
// never mutated, so there is no ordering dependency beyond the fetch itself.
func RunPipeline(client *hdx.Client, targets []countries.Country, opts RunOptions) error {
	workdir, err := os.MkdirTemp("", "hdx-scraper-awsd")
	if err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}
	defer os.RemoveAll(workdir)

	checkSourceFreshness()

	table, err := LoadIncidentTable(workdir, opts)
	if err != nil {
		return err
	}

	published := 0
	for _, country := range targets {
		dataset, err := GenerateCountryDataset(client, table, country, workdir)
		if err != nil {
			log.Printf("ERROR Service: Failed to generate dataset for %s: %v\n", country.ISO3, err)
			continue
		}
		if dataset == nil {
			continue
		}
		if err := client.CreateOrUpdateDataset(dataset); err != nil {
			log.Printf("ERROR Service: Failed to publish dataset %s: %v\n", dataset.Name, err)
			continue
		}
		published++
	}

	globalDataset, err := GenerateGlobalDataset(table, workdir)
	if err != nil {
		log.Printf("ERROR Service: Failed to generate global dataset: %v\n", err)
	} else if globalDataset != nil {
		if err := client.CreateOrUpdateDataset(globalDataset); err != nil {
			log.Printf("ERROR Service: Failed to publish global dataset: %v\n", err)
		} else {
			published++
		}
	}

	log.Printf("Service: Run complete, published %d dataset(s)\n", published)
	return nil
}
