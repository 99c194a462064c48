package hdx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OCHA-DAP/hdx-scraper-awsd/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stageResourceFile(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "AWSD_CO_security_incidents.csv")
	require.NoError(t, os.WriteFile(path, []byte("Country Code,Year\nCO,1997\n"), 0644))
	return path
}

func sampleDataset(filePath string) *Dataset {
	ds := &Dataset{
		Name:  "aid-worker-security-database-col",
		Title: "Colombia - Aid Worker Security Database",
	}
	ds.SetTimePeriod(models.DateRange{
		Start: time.Date(1997, 10, 18, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC),
	})
	ds.AddTags([]string{"aid worker security"})
	ds.SetSubnational(true)
	ds.PreviewOff()
	ds.AddCountryLocation("COL")
	ds.AddResource(Resource{
		Name:        "AWSD_CO_security_incidents.csv",
		Description: "Incidents in Colombia.",
		Format:      "csv",
		FilePath:    filePath,
	})
	return ds
}

func TestCreateDatasetWhenAbsent(t *testing.T) {
	var actions []string
	var createBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		action := filepath.Base(r.URL.Path)
		actions = append(actions, action)
		switch action {
		case "package_show":
			http.NotFound(w, r)
		case "package_create":
			assert.Equal(t, "test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&createBody))
			fmt.Fprint(w, `{"success": true, "result": {"id": "abc-123"}}`)
		case "resource_create":
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "abc-123", r.FormValue("package_id"))
			assert.Equal(t, "AWSD_CO_security_incidents.csv", r.FormValue("name"))
			_, header, err := r.FormFile("upload")
			require.NoError(t, err)
			assert.Equal(t, "AWSD_CO_security_incidents.csv", header.Filename)
			fmt.Fprint(w, `{"success": true, "result": {}}`)
		default:
			t.Errorf("unexpected action %s", action)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-agent")
	err := client.CreateOrUpdateDataset(sampleDataset(stageResourceFile(t)))
	require.NoError(t, err)

	assert.Equal(t, []string{"package_show", "package_create", "resource_create"}, actions)
	assert.Equal(t, "aid-worker-security-database-col", createBody["name"])
	assert.Equal(t, "[1997-10-18T00:00:00 TO 2025-05-26T23:59:59]", createBody["dataset_date"])
	assert.Equal(t, "1", createBody["subnational"])
	assert.Equal(t, "no_preview", createBody["dataset_preview"])
}

func TestUpdateDatasetWhenPresent(t *testing.T) {
	var actions []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		action := filepath.Base(r.URL.Path)
		actions = append(actions, action)
		switch action {
		case "package_show", "package_update", "resource_create":
			fmt.Fprint(w, `{"success": true, "result": {"id": "abc-123"}}`)
		default:
			t.Errorf("unexpected action %s", action)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-agent")
	err := client.CreateOrUpdateDataset(sampleDataset(stageResourceFile(t)))
	require.NoError(t, err)
	assert.Equal(t, []string{"package_show", "package_update", "resource_create"}, actions)
}

func TestCreateDatasetActionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch filepath.Base(r.URL.Path) {
		case "package_show":
			http.NotFound(w, r)
		default:
			fmt.Fprint(w, `{"success": false, "error": {"message": "validation error"}}`)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-agent")
	err := client.CreateOrUpdateDataset(sampleDataset(stageResourceFile(t)))
	assert.Error(t, err)
}

func TestLocationExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") == "col" {
			fmt.Fprint(w, `{"success": true, "result": {}}`)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "test-agent")

	// Lookup is lowercased, so iso3 codes resolve as CKAN group names.
	ok, err := client.LocationExists("COL")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.LocationExists("XYZ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTimePeriodStringUnknownRange(t *testing.T) {
	ds := &Dataset{}
	ds.SetTimePeriod(models.UnknownDateRange())
	assert.Equal(t, "[* TO *]", ds.timePeriodString())
}
