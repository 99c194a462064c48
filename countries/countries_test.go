package countries

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCountriesFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "countries.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCountriesFile(t, `
- iso2: CO
  iso3: COL
  name: Colombia
  hrp: true
- iso2: CH
  iso3: CHE
  name: Switzerland
  hrp: false
`)
	all, err := Load(path)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "COL", all[0].ISO3)
	assert.True(t, all[0].HRP)
	assert.False(t, all[1].HRP)
}

func TestLoadRejectsMalformedCodes(t *testing.T) {
	path := writeCountriesFile(t, `
- iso2: COL
  iso3: CO
  name: Colombia
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestPublishingTargets(t *testing.T) {
	all := []Country{
		{ISO2: "CO", ISO3: "COL", Name: "Colombia", HRP: true},
		{ISO2: "CH", ISO3: "CHE", Name: "Switzerland", HRP: false},
		{ISO2: "PS", ISO3: "PSE", Name: "State of Palestine", HRP: false},
	}
	targets := PublishingTargets(all)
	require.Len(t, targets, 2)
	assert.Equal(t, "COL", targets[0].ISO3)
	// PSE is always a target even without HRP status.
	assert.Equal(t, "PSE", targets[1].ISO3)
}
