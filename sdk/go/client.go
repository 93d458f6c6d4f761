package sheriffsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a minimal Sheriff HTTP API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}

// Writ represents the API writ model (partial).
type Writ struct {
	ID                 string           `json:"id"`
	WritNumber         string           `json:"writ_number"`
	CaseNumber         string           `json:"case_number"`
	Type               string           `json:"type"`
	Status             string           `json:"status"`
	ServiceStatus      string           `json:"service_status"`
	TargetParty        string           `json:"target_party"`
	TargetAddress      string           `json:"target_address"`
	Priority           string           `json:"priority"`
	ServiceAttempts    []ServiceAttempt `json:"service_attempts,omitempty"`
	SeizureItems       []SeizureItem    `json:"seizure_items,omitempty"`
	Fees               []Fee            `json:"fees,omitempty"`
	TotalFeesCharged   int64            `json:"total_fees_charged"`
	TotalFeesCollected int64            `json:"total_fees_collected"`
	LastModified       int64            `json:"last_modified"`
}

// ServiceAttempt is one recorded attempt at serving a writ.
type ServiceAttempt struct {
	ID             string `json:"id"`
	WritID         string `json:"writ_id"`
	Date           string `json:"date"`
	Officer        string `json:"officer"`
	Outcome        string `json:"outcome"`
	Notes          string `json:"notes"`
	Location       string `json:"location"`
	GPSCoordinates string `json:"gps_coordinates,omitempty"`
	WitnessName    string `json:"witness_name,omitempty"`
}

// SeizureItem is one item in a writ's seizure inventory.
type SeizureItem struct {
	ID             string `json:"id"`
	WritID         string `json:"writ_id"`
	Description    string `json:"description"`
	EstimatedValue int64  `json:"estimated_value"`
	Condition      string `json:"condition"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	SeizedDate     string `json:"seized_date"`
}

// Fee is one enforcement fee ledger entry.
type Fee struct {
	ID            string `json:"id"`
	WritID        string `json:"writ_id"`
	Description   string `json:"description"`
	Amount        int64  `json:"amount"`
	Paid          bool   `json:"paid"`
	PaidDate      string `json:"paid_date,omitempty"`
	ReceiptNumber string `json:"receipt_number,omitempty"`
}

// QueueEntry is one pending offline mutation.
type QueueEntry struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
	Synced    bool            `json:"synced"`
}

// Status is the combined store and sync snapshot.
type Status struct {
	Online      bool  `json:"online"`
	PendingSync int   `json:"pending_sync"`
	LastSync    int64 `json:"last_sync"`
	Storage     struct {
		Used   int64 `json:"used"`
		Budget int64 `json:"budget"`
	} `json:"storage"`
	Stats struct {
		Total         int   `json:"total"`
		Pending       int   `json:"pending"`
		InProgress    int   `json:"in_progress"`
		Executed      int   `json:"executed"`
		TotalFees     int64 `json:"total_fees"`
		CollectedFees int64 `json:"collected_fees"`
	} `json:"stats"`
}

// Event represents an audit log entry.
type Event struct {
	ID      int64          `json:"id"`
	TS      string         `json:"ts"`
	Type    string         `json:"type"`
	WritID  string         `json:"writ_id"`
	ActorID string         `json:"actor_id"`
	Payload map[string]any `json:"payload"`
}

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

// Status fetches the store and sync status.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var resp Status
	err := c.do(ctx, http.MethodGet, "v0/status", nil, &resp)
	return resp, err
}

// ListWrits returns all writs, optionally filtered by enforcement status.
func (c *Client) ListWrits(ctx context.Context, status string) ([]Writ, error) {
	endpoint := "v0/writs"
	if status != "" {
		endpoint += "?status=" + url.QueryEscape(status)
	}
	var resp []Writ
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp, err
}

// GetWrit fetches one writ by identifier.
func (c *Client) GetWrit(ctx context.Context, id string) (Writ, error) {
	var resp Writ
	err := c.do(ctx, http.MethodGet, "v0/writs/"+url.PathEscape(id), nil, &resp)
	return resp, err
}

// LogAttempt records a service attempt against a writ.
func (c *Client) LogAttempt(ctx context.Context, writID, outcome, notes, location string) (Writ, error) {
	body := map[string]any{
		"outcome":  outcome,
		"notes":    notes,
		"location": location,
	}
	var resp struct {
		Writ Writ `json:"writ"`
	}
	endpoint := fmt.Sprintf("v0/writs/%s/attempts", url.PathEscape(writID))
	err := c.do(ctx, http.MethodPost, endpoint, body, &resp)
	return resp.Writ, err
}

// RecordSeizure adds a seizure item to a writ's inventory.
func (c *Client) RecordSeizure(ctx context.Context, writID, description string, estimatedValue int64, condition, location string) (Writ, error) {
	body := map[string]any{
		"description":     description,
		"estimated_value": estimatedValue,
		"condition":       condition,
		"location":        location,
	}
	var resp struct {
		Writ Writ `json:"writ"`
	}
	endpoint := fmt.Sprintf("v0/writs/%s/seizures", url.PathEscape(writID))
	err := c.do(ctx, http.MethodPost, endpoint, body, &resp)
	return resp.Writ, err
}

// AddFee appends a fee to a writ's ledger.
func (c *Client) AddFee(ctx context.Context, writID, description string, amount int64) (Writ, error) {
	body := map[string]any{
		"description": description,
		"amount":      amount,
	}
	var resp struct {
		Writ Writ `json:"writ"`
	}
	endpoint := fmt.Sprintf("v0/writs/%s/fees", url.PathEscape(writID))
	err := c.do(ctx, http.MethodPost, endpoint, body, &resp)
	return resp.Writ, err
}

// PayFee marks a fee paid.
func (c *Client) PayFee(ctx context.Context, writID, feeID, receiptNumber string) (Writ, error) {
	body := map[string]any{
		"receipt_number": receiptNumber,
	}
	var resp Writ
	endpoint := fmt.Sprintf("v0/writs/%s/fees/%s/pay", url.PathEscape(writID), url.PathEscape(feeID))
	err := c.do(ctx, http.MethodPost, endpoint, body, &resp)
	return resp, err
}

// Queue lists the offline outbox.
func (c *Client) Queue(ctx context.Context) ([]QueueEntry, int, error) {
	var resp struct {
		Entries []QueueEntry `json:"entries"`
		Pending int          `json:"pending"`
	}
	err := c.do(ctx, http.MethodGet, "v0/queue", nil, &resp)
	return resp.Entries, resp.Pending, err
}

// SetOnline reports a connectivity transition.
func (c *Client) SetOnline(ctx context.Context, online bool) error {
	return c.do(ctx, http.MethodPut, "v0/netstate", map[string]any{"online": online}, nil)
}

// Events returns recent audit events.
func (c *Client) Events(ctx context.Context, limit int) ([]Event, error) {
	endpoint := "v0/events"
	if limit > 0 {
		endpoint = fmt.Sprintf("%s?limit=%d", endpoint, limit)
	}
	var resp []Event
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	url := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}
