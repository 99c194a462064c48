package scraper

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSourceLastUpdated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<div class="report-summary"><p>Last updated: 26 May 2025</p></div>
		</body></html>`)
	}))
	defer srv.Close()

	updated, err := GetSourceLastUpdated(srv.URL, "div.report-summary")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC), updated)
}

func TestGetSourceLastUpdatedFallsBackToBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Data last updated 3 January 2024.</p></body></html>`)
	}))
	defer srv.Close()

	updated, err := GetSourceLastUpdated(srv.URL, "div.missing-selector")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), updated)
}

func TestGetSourceLastUpdatedNoMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Nothing useful here.</p></body></html>`)
	}))
	defer srv.Close()

	_, err := GetSourceLastUpdated(srv.URL, "body")
	assert.Error(t, err)
}

func TestGetSourceLastUpdatedBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, err := GetSourceLastUpdated(srv.URL, "body")
	assert.Error(t, err)
}
