package crm

import (
	"LeadReceptionist/internal/entity"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

type httpCRM struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTP() ICRM {
	return NewHTTPWith(os.Getenv("CRM_BASE_URL"), os.Getenv("CRM_API_KEY"), http.DefaultClient)
}

func NewHTTPWith(baseURL, apiKey string, client *http.Client) ICRM {
	return &httpCRM{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

func (c *httpCRM) CreateLead(ctx context.Context, identity string, fields entity.FieldSet) error {
	if c.baseURL == "" || c.apiKey == "" {
		return ErrNotConfigured
	}

	body, err := jsoniter.Marshal(NewLead(identity, fields))
	if err != nil {
		return fmt.Errorf("failed to encode lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/leads", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build crm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("crm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("crm returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	return nil
}
