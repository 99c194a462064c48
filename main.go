// main.go
package main

import (
	"flag"
	"log"
	"os"

	"github.com/OCHA-DAP/hdx-scraper-awsd/config"
	"github.com/OCHA-DAP/hdx-scraper-awsd/countries"
	"github.com/OCHA-DAP/hdx-scraper-awsd/hdx"
	"github.com/OCHA-DAP/hdx-scraper-awsd/services"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	log.Println("Starting AWSD HDX publishing pipeline...")

	save := flag.Bool("save", false, "save the downloaded export for offline replay")
	useSaved := flag.Bool("use-saved", false, "use the previously saved export instead of downloading")
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	log.Printf("Configuration loaded. AWSD base URL: %s, HDX site: %s",
		config.AppConfig.AWSD.BaseURL, config.AppConfig.HDX.Site)

	apiKey := os.Getenv("HDX_API_KEY")
	if apiKey == "" {
		log.Println("WARN: HDX_API_KEY not set; dataset writes will be rejected by HDX")
	}
	client := hdx.NewClient(config.AppConfig.HDX.Site, apiKey, config.AppConfig.HDX.UserAgent)

	all, err := countries.Load(config.AppConfig.CountriesFile)
	if err != nil {
		log.Fatalf("Error loading countries file: %v", err)
	}
	targets := countries.PublishingTargets(all)
	log.Printf("Loaded %d countries, %d publishing targets", len(all), len(targets))

	opts := services.RunOptions{Save: *save, UseSaved: *useSaved}

	if spec := config.AppConfig.Schedule.CronSpec; spec != "" {
		c := cron.New()
		if _, err := c.AddFunc(spec, func() {
			log.Println("CronJob: AWSD publishing run starting")
			if err := services.RunPipeline(client, targets, opts); err != nil {
				log.Printf("ERROR: Pipeline run failed: %v", err)
			}
		}); err != nil {
			log.Fatalf("Error scheduling pipeline: %v", err)
		}
		log.Printf("Scheduler started with spec %q", spec)
		c.Run()
		return
	}

	if err := services.RunPipeline(client, targets, opts); err != nil {
		log.Fatalf("Pipeline run failed: %v", err)
	}
}
