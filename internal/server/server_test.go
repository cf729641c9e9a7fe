package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darideveloper/cotiza"
	"github.com/darideveloper/cotiza/internal/adapters/mailrelay"
	"github.com/darideveloper/cotiza/internal/brand"
	"github.com/darideveloper/cotiza/internal/i18n"
	"github.com/darideveloper/cotiza/internal/metrics"
	"github.com/darideveloper/cotiza/internal/server"
	"github.com/darideveloper/cotiza/pkg/domain"
)

type testEnv struct {
	api         *httptest.Server
	relayStatus atomic.Int64
	relayCalls  atomic.Int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{}
	env.relayStatus.Store(http.StatusOK)

	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.relayCalls.Add(1)
		status := int(env.relayStatus.Load())
		w.WriteHeader(status)
		if status >= 400 {
			json.NewEncoder(w).Encode(map[string]string{"message": "relay says no"})
		}
	}))
	t.Cleanup(relay.Close)

	svc := cotiza.New(
		cotiza.WithNotifier(mailrelay.New(relay.URL, "test-key", "daridev")),
	)

	bundle, err := i18n.Load("en")
	require.NoError(t, err)

	srv := server.New(svc, brand.Defaults(), bundle,
		server.WithMetrics(metrics.New(prometheus.NewRegistry())),
	)
	env.api = httptest.NewServer(srv.Handler())
	t.Cleanup(env.api.Close)

	return env
}

type envelope struct {
	ID       string            `json:"id"`
	State    *domain.FormState `json:"state"`
	Messages map[string]string `json:"messages"`
	Error    string            `json:"error"`
	QuoteID  string            `json:"quote_id"`
	Message  string            `json:"message"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*http.Response, *envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.api.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		json.NewDecoder(resp.Body).Decode(&env)
	}
	return resp, &env
}

func (e *testEnv) createQuote(t *testing.T) string {
	t.Helper()
	resp, env := e.do(t, http.MethodPost, "/api/v1/quotes", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, env.ID)
	require.Equal(t, 1, env.State.CurrentStep)
	return env.ID
}

func (e *testEnv) command(t *testing.T, id string, cmd map[string]any) (*http.Response, *envelope) {
	t.Helper()
	return e.do(t, http.MethodPost, "/api/v1/quotes/"+id+"/commands", cmd)
}

func fillReadyQuote(t *testing.T, env *testEnv, id string) {
	t.Helper()
	for _, cmd := range []map[string]any{
		{"type": "toggle_feature", "feature_id": "domain"},
		{"type": "toggle_feature", "feature_id": "hosting"},
		{"type": "toggle_section", "section_id": "hero"},
		{"type": "go_to_step", "step": 5},
		{"type": "set_client_field", "field": "name", "value": "Ana"},
		{"type": "set_client_field", "field": "email", "value": "ana@example.com"},
		{"type": "set_privacy_accepted", "accepted": true},
	} {
		resp, _ := env.command(t, id, cmd)
		require.Equal(t, http.StatusOK, resp.StatusCode, "command %v", cmd)
	}
}

func TestWizard_FullFlow(t *testing.T) {
	env := newTestEnv(t)
	id := env.createQuote(t)

	fillReadyQuote(t, env, id)

	resp, got := env.do(t, http.MethodGet, "/api/v1/quotes/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 55.0, got.State.TotalPrice)
	assert.Equal(t, 5, got.State.CurrentStep)

	resp, got = env.do(t, http.MethodPost, "/api/v1/quotes/"+id+"/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.StatusConfirmed, got.State.Status)
	assert.True(t, strings.HasPrefix(got.QuoteID, "QUOTE-"))
	assert.NotEmpty(t, got.Message)
	assert.EqualValues(t, 1, env.relayCalls.Load())

	// Confirmed quotes are read-only...
	resp, _ = env.command(t, id, map[string]any{"type": "toggle_feature", "feature_id": "blog"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// ...until an explicit reset starts a new quote.
	resp, got = env.do(t, http.MethodPost, "/api/v1/quotes/"+id+"/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, got.State.CurrentStep)
	assert.Empty(t, got.State.SelectedFeatures)
	assert.False(t, got.State.PrivacyAccepted)
	assert.Equal(t, domain.StatusActive, got.State.Status)
}

func TestWizard_CurrencySwitch(t *testing.T) {
	env := newTestEnv(t)
	id := env.createQuote(t)
	fillReadyQuote(t, env, id)

	resp, got := env.command(t, id, map[string]any{"type": "set_currency", "currency": "MXN"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 880.0, got.State.TotalPrice)
}

func TestWizard_ValidationFailure(t *testing.T) {
	env := newTestEnv(t)
	id := env.createQuote(t)

	resp, _ := env.command(t, id, map[string]any{"type": "go_to_step", "step": 5})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, got := env.do(t, http.MethodPost, "/api/v1/quotes/"+id+"/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, 5, got.State.CurrentStep)
	assert.NotEmpty(t, got.Messages["name"])
	assert.NotEmpty(t, got.Messages["email"])
	assert.NotEmpty(t, got.Messages["privacyPolicy"])
	assert.EqualValues(t, 0, env.relayCalls.Load(), "validation failures never reach the relay")
}

func TestWizard_RelayFailureAllowsRetry(t *testing.T) {
	env := newTestEnv(t)
	id := env.createQuote(t)
	fillReadyQuote(t, env, id)

	env.relayStatus.Store(http.StatusInternalServerError)
	resp, got := env.do(t, http.MethodPost, "/api/v1/quotes/"+id+"/submit", nil)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, 5, got.State.CurrentStep)
	assert.Equal(t, domain.StatusActive, got.State.Status)
	assert.Equal(t, "relay says no", got.Error)

	env.relayStatus.Store(http.StatusOK)
	resp, got = env.do(t, http.MethodPost, "/api/v1/quotes/"+id+"/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.StatusConfirmed, got.State.Status)
	assert.EqualValues(t, 2, env.relayCalls.Load())
}

func TestWizard_BadCommands(t *testing.T) {
	env := newTestEnv(t)
	id := env.createQuote(t)

	cases := []map[string]any{
		{"type": "warp_drive"},
		{"type": "toggle_feature", "feature_id": "ghost"},
		{"type": "toggle_section", "section_id": "header"}, // required
		{"type": "go_to_step", "step": 9},
		{"type": "set_currency", "currency": "EUR"},
		{"type": "set_extra_sections", "count": -2},
		{"type": "set_client_field", "field": "nickname", "value": "x"},
	}
	for _, cmd := range cases {
		resp, _ := env.command(t, id, cmd)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "command %v", cmd)
	}

	// Rejected commands leave the session untouched.
	resp, got := env.do(t, http.MethodGet, "/api/v1/quotes/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, got.State.CurrentStep)
	assert.Empty(t, got.State.SelectedFeatures)
}

func TestWizard_UnknownSession(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/api/v1/quotes/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/api/v1/quotes/does-not-exist/submit", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWizard_Discard(t *testing.T) {
	env := newTestEnv(t)
	id := env.createQuote(t)

	resp, _ := env.do(t, http.MethodDelete, "/api/v1/quotes/"+id, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/v1/quotes/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCatalog_Endpoint(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.api.URL + "/api/v1/catalog?currency=MXN&sections=2")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Currency          string  `json:"currency"`
		SectionUnitPrice  float64 `json:"section_unit_price"`
		FeatureCategories []struct {
			ID       string `json:"id"`
			Title    string `json:"title"`
			Features []struct {
				ID    string  `json:"id"`
				Price float64 `json:"price"`
			} `json:"features"`
		} `json:"feature_categories"`
		SectionCategories []struct {
			ID       string `json:"id"`
			Sections []struct {
				ID       string `json:"id"`
				Required bool   `json:"required"`
			} `json:"sections"`
		} `json:"section_categories"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "MXN", body.Currency)
	assert.Equal(t, 320.0, body.SectionUnitPrice)
	require.Len(t, body.FeatureCategories, 4)

	var multilangPrice float64
	for _, cat := range body.FeatureCategories {
		assert.False(t, strings.HasPrefix(cat.Title, "quote."), "category titles are localized")
		for _, f := range cat.Features {
			if f.ID == "multilang" {
				multilangPrice = f.Price
			}
		}
	}
	// 5 USD per section x 2 sections x 16 = 160 MXN
	assert.Equal(t, 160.0, multilangPrice)
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.api.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.createQuote(t)

	resp, err := http.Get(env.api.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBrandHeader_SelectsLocale(t *testing.T) {
	env := newTestEnv(t)
	id := env.createQuote(t)

	_, err := http.Post(fmt.Sprintf("%s/api/v1/quotes/%s/commands", env.api.URL, id), "application/json",
		strings.NewReader(`{"type":"go_to_step","step":5}`))
	require.NoError(t, err)

	// daridev defaults to Spanish messages.
	req, err := http.NewRequest(http.MethodPost, env.api.URL+"/api/v1/quotes/"+id+"/submit", nil)
	require.NoError(t, err)
	req.Header.Set("X-Brand", "daridev")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var got envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Contains(t, got.Messages["privacyPolicy"], "privacidad")
}
