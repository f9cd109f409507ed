package quickbooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/smallbiznis/booksync/internal/config"
	"go.uber.org/zap"
)

const (
	sandboxBaseURL    = "https://sandbox-quickbooks.api.intuit.com"
	productionBaseURL = "https://quickbooks.api.intuit.com"
)

// BaseURL returns the API host for the configured environment flag.
func BaseURL(environment string) string {
	if environment == config.EnvProduction {
		return productionBaseURL
	}
	return sandboxBaseURL
}

// Credentials is the per-call auth material resolved from the persisted
// connection settings.
type Credentials struct {
	AccessToken string
	RealmID     string
	BaseURL     string
}

// APIError carries a non-2xx response. It aborts the batch for the entity
// kind being synced; the body is logged in full.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("quickbooks api error: status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	http *http.Client
	log  *zap.Logger
}

func NewClient(log *zap.Logger) *Client {
	return &Client{
		http: &http.Client{Timeout: 30 * time.Second},
		log:  log.Named("quickbooks.client"),
	}
}

// SelectAll builds the full-table query for an entity kind.
func SelectAll(entity string) string {
	return "SELECT * FROM " + entity
}

// SelectByID builds the single-record query used by webhook-triggered syncs.
func SelectByID(entity, id string) string {
	return fmt.Sprintf("SELECT * FROM %s WHERE Id = '%s'", entity, strings.ReplaceAll(id, "'", ""))
}

// Query POSTs a SQL-like filter string against the query endpoint and decodes
// the QueryResponse envelope.
func (c *Client) Query(ctx context.Context, creds Credentials, query string) (QueryResponse, error) {
	endpoint := fmt.Sprintf("%s/v3/company/%s/query", creds.BaseURL, creds.RealmID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(query))
	if err != nil {
		return QueryResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/text")

	body, err := c.do(req)
	if err != nil {
		return QueryResponse{}, err
	}

	var envelope struct {
		QueryResponse QueryResponse `json:"QueryResponse"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return QueryResponse{}, fmt.Errorf("decode query response: %w", err)
	}
	return envelope.QueryResponse, nil
}

// CompanyInfo fetches the company record for the connected realm.
func (c *Client) CompanyInfo(ctx context.Context, creds Credentials) (CompanyInfo, error) {
	endpoint := fmt.Sprintf("%s/v3/company/%s/companyinfo/%s", creds.BaseURL, creds.RealmID, creds.RealmID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return CompanyInfo{}, err
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return CompanyInfo{}, err
	}

	var envelope struct {
		CompanyInfo CompanyInfo `json:"CompanyInfo"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return CompanyInfo{}, fmt.Errorf("decode company info: %w", err)
	}
	return envelope.CompanyInfo, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Error("quickbooks api error",
			zap.Int("status", resp.StatusCode),
			zap.String("url", req.URL.Path),
			zap.String("body", string(body)),
		)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
