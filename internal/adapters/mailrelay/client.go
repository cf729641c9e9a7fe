// Package mailrelay implements ports.Notifier against the external
// contact-form relay. The contract is fixed by the collaborator: a single
// JSON POST with the api_key and account user carried in the body, any 2xx
// meaning accepted. No retries.
package mailrelay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/darideveloper/cotiza/pkg/domain"
	"github.com/darideveloper/cotiza/pkg/ports"
)

const defaultTimeout = 15 * time.Second

// Client posts quote submissions to the relay endpoint.
type Client struct {
	url    string
	apiKey string
	user   string
	http   *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithTimeout bounds each delivery attempt. The relay has no streaming
// semantics, so a plain client timeout is enough.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client, for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a relay client for one account.
func New(url, apiKey, user string, opts ...Option) *Client {
	c := &Client{
		url:    url,
		apiKey: apiKey,
		user:   user,
		http:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.Notifier = (*Client)(nil)

// payload is the wire shape of the relay body. The credentials ride in the
// body, not a header, per the external contract.
type payload struct {
	APIKey  string `json:"api_key"`
	User    string `json:"user"`
	Subject string `json:"subject"`
	Message string `json:"message"`

	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	ClientCompany string `json:"client_company,omitempty"`
	ClientPhone   string `json:"client_phone,omitempty"`

	Currency           domain.Currency     `json:"currency"`
	TotalPrice         float64             `json:"total_price"`
	SectionCount       int                 `json:"section_count"`
	ExtraSections      int                 `json:"extra_sections"`
	ExtraSectionsPrice float64             `json:"extra_sections_price"`
	SelectedFeatures   []domain.PricedItem `json:"selected_features"`
	SelectedSections   []domain.PricedItem `json:"selected_sections"`

	CustomFeatures string `json:"custom_features,omitempty"`
	Questions      string `json:"questions,omitempty"`
	Timestamp      string `json:"timestamp"`
}

// Send delivers one submission. 2xx means accepted; any other status is
// mapped to a ports.NotifyError carrying the server message when the error
// body contains one.
func (c *Client) Send(ctx context.Context, sub *domain.Submission) (*domain.Receipt, error) {
	body, err := json.Marshal(c.buildPayload(sub))
	if err != nil {
		return nil, fmt.Errorf("marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deliver submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		notifyErr := &ports.NotifyError{StatusCode: resp.StatusCode}
		// Error bodies are optional JSON with an optional message field.
		var errBody struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			notifyErr.Message = errBody.Message
		}
		return nil, notifyErr
	}

	receipt := &domain.Receipt{QuoteID: "QUOTE-" + uuid.NewString()}
	var okBody struct {
		Message string `json:"message"`
	}
	if json.NewDecoder(resp.Body).Decode(&okBody) == nil {
		receipt.Message = okBody.Message
	}
	return receipt, nil
}

func (c *Client) buildPayload(sub *domain.Submission) payload {
	return payload{
		APIKey:             c.apiKey,
		User:               c.user,
		Subject:            "New Quote Request",
		Message:            digest(sub),
		ClientName:         sub.ClientInfo.Name,
		ClientEmail:        sub.ClientInfo.Email,
		ClientCompany:      sub.ClientInfo.Company,
		ClientPhone:        sub.ClientInfo.Phone,
		Currency:           sub.Currency,
		TotalPrice:         sub.TotalPrice,
		SectionCount:       sub.SectionCount,
		ExtraSections:      sub.ExtraSections,
		ExtraSectionsPrice: sub.ExtraSectionsPrice,
		SelectedFeatures:   sub.SelectedFeatures,
		SelectedSections:   sub.SelectedSections,
		CustomFeatures:     sub.CustomFeatures,
		Questions:          sub.Questions,
		Timestamp:          sub.Timestamp.Format(time.RFC3339),
	}
}

// digest renders the plain-text body of the notification mail, in the
// spam-safe format the contact form uses.
func digest(sub *domain.Submission) string {
	var b strings.Builder

	fmt.Fprintf(&b, "NEW QUOTE REQUEST (%s)\n\n", sub.Brand)

	b.WriteString("CLIENT INFORMATION\n")
	fmt.Fprintf(&b, "Name: %s\n", sub.ClientInfo.Name)
	fmt.Fprintf(&b, "Email: %s\n", sub.ClientInfo.Email)
	if sub.ClientInfo.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", sub.ClientInfo.Company)
	}
	if sub.ClientInfo.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", sub.ClientInfo.Phone)
	}

	fmt.Fprintf(&b, "\nQUOTE (%s)\n", sub.Currency)
	for _, item := range sub.SelectedFeatures {
		fmt.Fprintf(&b, "- %s: %g\n", item.Name, item.Price)
	}
	for _, item := range sub.SelectedSections {
		fmt.Fprintf(&b, "- Section %s: %g\n", item.Name, item.Price)
	}
	if sub.ExtraSections > 0 {
		fmt.Fprintf(&b, "- Extra sections x%d: %g\n", sub.ExtraSections, sub.ExtraSectionsPrice)
	}
	fmt.Fprintf(&b, "Total: %g %s\n", sub.TotalPrice, sub.Currency)

	if sub.CustomFeatures != "" {
		fmt.Fprintf(&b, "\nCUSTOM FEATURES\n%s\n", sub.CustomFeatures)
	}
	if sub.Questions != "" {
		fmt.Fprintf(&b, "\nQUESTIONS\n%s\n", sub.Questions)
	}

	fmt.Fprintf(&b, "\nSubmitted: %s\n", sub.Timestamp.Format(time.RFC3339))
	return b.String()
}
