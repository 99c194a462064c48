// hdx/client.go
package hdx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound marks a CKAN object (dataset, group) that does not exist on
// the platform.
var ErrNotFound = errors.New("not found on HDX")

// Client talks to the HDX CKAN action API.
type Client struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	HTTP      *http.Client
}

func NewClient(baseURL, apiKey, userAgent string) *Client {
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		APIKey:    apiKey,
		UserAgent: userAgent,
		HTTP:      &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) actionURL(action string) string {
	return fmt.Sprintf("%s/api/3/action/%s", c.BaseURL, action)
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Error   json.RawMessage `json:"error"`
}

// do sends the request and unmarshals the CKAN action envelope into out when
// out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("HDX request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read HDX response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HDX returned status %d: %s", resp.StatusCode, truncateBody(body))
	}

	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to decode HDX response: %w", err)
	}
	if !env.Success {
		return fmt.Errorf("HDX action failed: %s", truncateBody(env.Error))
	}
	if out != nil {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("failed to decode HDX action result: %w", err)
		}
	}
	return nil
}

func (c *Client) getAction(action string, params url.Values, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.actionURL(action)+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postAction(action string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.actionURL(action), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// LocationExists resolves a CKAN location group ("col", "world", ...)
// against the platform. A missing group is not an error; transport failures
// are.
func (c *Client) LocationExists(name string) (bool, error) {
	err := c.getAction("group_show", url.Values{"id": {strings.ToLower(name)}}, nil)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) datasetExists(name string) (bool, error) {
	err := c.getAction("package_show", url.Values{"id": {name}}, nil)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateOrUpdateDataset pushes the dataset to HDX, creating it when absent
// and updating it otherwise, then uploads each staged resource file.
func (c *Client) CreateOrUpdateDataset(ds *Dataset) error {
	exists, err := c.datasetExists(ds.Name)
	if err != nil {
		return fmt.Errorf("failed to check dataset %s: %w", ds.Name, err)
	}

	action := "package_create"
	payload := ds.packagePayload()
	if exists {
		action = "package_update"
		payload["id"] = ds.Name
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := c.postAction(action, payload, &created); err != nil {
		return fmt.Errorf("%s failed for %s: %w", action, ds.Name, err)
	}
	if created.ID == "" {
		created.ID = ds.Name
	}

	for _, r := range ds.Resources {
		if err := c.uploadResource(created.ID, r); err != nil {
			return fmt.Errorf("failed to upload resource %s: %w", r.Name, err)
		}
	}

	log.Printf("HDX: %s dataset %q with %d resource(s)\n", action, ds.Name, len(ds.Resources))
	return nil
}

// uploadResource registers one file upload against the dataset via
// resource_create.
func (c *Client) uploadResource(packageID string, r Resource) error {
	file, err := os.Open(r.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open resource file %s: %w", r.FilePath, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("package_id", packageID)
	_ = mw.WriteField("name", r.Name)
	_ = mw.WriteField("description", r.Description)
	_ = mw.WriteField("format", r.Format)
	fw, err := mw.CreateFormFile("upload", filepath.Base(r.FilePath))
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, file); err != nil {
		return fmt.Errorf("failed to read resource file %s: %w", r.FilePath, err)
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.actionURL("resource_create"), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, nil)
}

func truncateBody(b []byte) string {
	const max = 300
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
