// hdx/dataset.go
package hdx

import (
	"fmt"
	"strings"

	"github.com/OCHA-DAP/hdx-scraper-awsd/models"
)

// Dataset is the descriptor handed to the HDX client. Field names follow the
// CKAN package schema the platform exposes.
type Dataset struct {
	Name            string
	Title           string
	Notes           string
	Tags            []string
	Groups          []string // CKAN group names: lowercased iso3, or "world"
	Subnational     bool
	Preview         bool
	TimePeriod      models.DateRange
	LicenseID       string
	Methodology     string
	Source          string
	Maintainer      string
	OwnerOrg        string
	UpdateFrequency int
	Resources       []Resource
}

// Resource is one downloadable file attached to a dataset.
type Resource struct {
	Name        string
	Description string
	Format      string
	FilePath    string // local staging path of the file to upload
}

// SetTimePeriod declares the dataset's time coverage. The range must be the
// one computed from exactly the records in the dataset's resource.
func (d *Dataset) SetTimePeriod(r models.DateRange) {
	d.TimePeriod = r
}

func (d *Dataset) AddTags(tags []string) {
	d.Tags = append(d.Tags, tags...)
}

func (d *Dataset) SetSubnational(v bool) {
	d.Subnational = v
}

func (d *Dataset) PreviewOff() {
	d.Preview = false
}

// AddCountryLocation attaches the CKAN country group for an iso3 code.
func (d *Dataset) AddCountryLocation(iso3 string) {
	d.Groups = append(d.Groups, strings.ToLower(iso3))
}

// AddOtherLocation attaches a non-country CKAN group such as "world".
func (d *Dataset) AddOtherLocation(name string) {
	d.Groups = append(d.Groups, name)
}

func (d *Dataset) AddResource(r Resource) {
	d.Resources = append(d.Resources, r)
}

// timePeriodString renders the CKAN dataset_date field. An unknown range is
// rendered as unbounded.
func (d *Dataset) timePeriodString() string {
	if d.TimePeriod.IsUnknown() {
		return "[* TO *]"
	}
	return fmt.Sprintf("[%sT00:00:00 TO %sT23:59:59]",
		d.TimePeriod.Start.Format("2006-01-02"),
		d.TimePeriod.End.Format("2006-01-02"))
}

// packagePayload builds the CKAN package_create/package_update body.
func (d *Dataset) packagePayload() map[string]any {
	subnational := "0"
	if d.Subnational {
		subnational = "1"
	}
	preview := "no_preview"
	if d.Preview {
		preview = "resource_id"
	}
	tags := make([]map[string]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		tags = append(tags, map[string]string{"name": t})
	}
	groups := make([]map[string]string, 0, len(d.Groups))
	for _, g := range d.Groups {
		groups = append(groups, map[string]string{"name": g})
	}
	return map[string]any{
		"name":                  d.Name,
		"title":                 d.Title,
		"notes":                 d.Notes,
		"dataset_date":          d.timePeriodString(),
		"dataset_preview":       preview,
		"subnational":           subnational,
		"tags":                  tags,
		"groups":                groups,
		"license_id":            d.LicenseID,
		"methodology":           d.Methodology,
		"dataset_source":        d.Source,
		"maintainer":            d.Maintainer,
		"owner_org":             d.OwnerOrg,
		"data_update_frequency": d.UpdateFrequency,
		"private":               false,
	}
}
