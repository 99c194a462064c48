// scraper/csv_downloader.go
package scraper

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/OCHA-DAP/hdx-scraper-awsd/config"
)

// ErrFetch marks failures to retrieve the source export over HTTP. A fetch
// failure is fatal for the run; retries belong to the operator's scheduler,
// not this layer.
var ErrFetch = errors.New("fetch error")

const incidentsFilename = "security_incidents.csv"

// DownloadFile downloads a file from a URL and saves it to a local path,
// creating directories as needed.
func DownloadFile(fileURL string, localSavePath string) error {
	log.Printf("Scraper: Downloading %s to %s\n", fileURL, localSavePath)

	client := http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(fileURL)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrFetch, fileURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s: received status code %d", ErrFetch, fileURL, resp.StatusCode)
	}

	dir := filepath.Dir(localSavePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	outFile, err := os.Create(localSavePath)
	if err != nil {
		return fmt.Errorf("failed to create local file %s: %w", localSavePath, err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("%w: failed to write downloaded content to %s: %v", ErrFetch, localSavePath, err)
	}

	log.Printf("Scraper: Successfully downloaded %s\n", fileURL)
	return nil
}

// IncidentsURL builds the search endpoint URL for the configured base URL.
// isoCodes, when non-empty, narrows the export to the given iso2 country
// codes; the default run fetches all countries in one request.
func IncidentsURL(isoCodes ...string) string {
	params := url.Values{}
	params.Set("format", "csv")
	params.Set("detail", "1")
	if len(isoCodes) > 0 {
		params.Set("country", strings.Join(isoCodes, ","))
	}
	base := strings.TrimRight(config.AppConfig.AWSD.BaseURL, "/")
	return fmt.Sprintf("%s/search?%s", base, params.Encode())
}

// DownloadIncidentsCsv retrieves the full AWSD export into workdir and
// returns the local path. With useSaved it replays the copy kept under the
// saved-data dir instead of hitting the network; with save it also writes a
// copy there for later replay.
func DownloadIncidentsCsv(workdir string, save, useSaved bool) (string, error) {
	if config.AppConfig.AWSD.BaseURL == "" {
		return "", fmt.Errorf("AWSD base URL is not configured")
	}
	savedPath := filepath.Join(config.AppConfig.AWSD.SavedDataDir, incidentsFilename)

	if useSaved {
		if _, err := os.Stat(savedPath); err != nil {
			return "", fmt.Errorf("%w: no saved export at %s: %v", ErrFetch, savedPath, err)
		}
		log.Printf("Scraper: Using saved export %s\n", savedPath)
		return savedPath, nil
	}

	localPath := filepath.Join(workdir, incidentsFilename)
	if err := DownloadFile(IncidentsURL(), localPath); err != nil {
		return "", fmt.Errorf("failed to download AWSD export: %w", err)
	}

	if save {
		if err := copyFile(localPath, savedPath); err != nil {
			return "", fmt.Errorf("failed to save export copy: %w", err)
		}
		log.Printf("Scraper: Saved export copy to %s\n", savedPath)
	}
	return localPath, nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
