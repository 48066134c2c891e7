package mirra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the client actually sent.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
	Header http.Header
}

// newRecordingServer returns a server answering every request with the
// given envelope body, recording requests as they arrive.
func newRecordingServer(t *testing.T, status int, body string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   data,
			Header: r.Header.Clone(),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts, &requests
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL(baseURL)}, opts...)
	client, err := New("test-key", opts...)
	require.NoError(t, err)
	return client
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New("")
	if err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestDataReturnedVerbatim(t *testing.T) {
	ts, _ := newRecordingServer(t, http.StatusOK, `{"success":true,"data":{"id":"a1","subdomain":"sub","name":"Support","systemPrompt":"You help.","enabled":true,"status":"draft","createdAt":"2026-01-01T00:00:00Z"}}`)
	client := newTestClient(t, ts.URL)

	agent, err := client.Agents.Get(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", agent.ID)
	assert.Equal(t, "Support", agent.Name)
	assert.Equal(t, AgentStatusDraft, agent.Status)
	assert.True(t, agent.Enabled)
}

func TestEnvelopeFailureSurfacesMessageAndCode(t *testing.T) {
	ts, _ := newRecordingServer(t, http.StatusOK, `{"success":false,"error":{"message":"m","code":"c"}}`)
	client := newTestClient(t, ts.URL)

	_, err := client.Agents.List(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindAPI, apiErr.Kind)
	assert.Equal(t, "m", apiErr.Message)
	assert.Equal(t, "c", apiErr.Code)
}

func TestEnvelopeFailureWithoutErrorObject(t *testing.T) {
	ts, _ := newRecordingServer(t, http.StatusInternalServerError, `{"success":false}`)
	client := newTestClient(t, ts.URL)

	_, err := client.Templates.List(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Unknown error", apiErr.Message)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestMalformedBodyIsInvalidResponse(t *testing.T) {
	ts, _ := newRecordingServer(t, http.StatusNotFound, `<html>not found</html>`)
	client := newTestClient(t, ts.URL)

	_, err := client.Agents.Get(context.Background(), "missing")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindInvalidResponse, apiErr.Kind)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestHTTPErrorStatusWithSuccessfulEnvelope(t *testing.T) {
	// Status >= 400 is a failure even if the body claims success.
	ts, _ := newRecordingServer(t, http.StatusBadGateway, `{"success":true,"data":{}}`)
	client := newTestClient(t, ts.URL)

	_, err := client.Agents.List(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindAPI, apiErr.Kind)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	client := newTestClient(t, url)
	_, err := client.Agents.List(context.Background())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindTransport, apiErr.Kind)
	assert.Error(t, apiErr.Unwrap())
}

func TestDeleteAgentRequestShape(t *testing.T) {
	ts, requests := newRecordingServer(t, http.StatusOK, `{"success":true,"data":{"deleted":true}}`)
	client := newTestClient(t, ts.URL)

	result, err := client.Agents.Delete(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"deleted": true}, result)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/agents/a1", req.Path)
	assert.Empty(t, req.Body)
}

func TestInvokeScriptRequestShape(t *testing.T) {
	ts, requests := newRecordingServer(t, http.StatusOK, `{"success":true,"data":{"success":true}}`)
	client := newTestClient(t, ts.URL)

	_, err := client.Scripts.Invoke(context.Background(), InvokeScriptParams{
		ScriptID: "s1",
		Payload:  map[string]any{"x": 1},
	})
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/scripts/s1/invoke", req.Path)
	assert.JSONEq(t, `{"payload":{"x":1}}`, string(req.Body))
}

func TestMarketplaceBrowseQuery(t *testing.T) {
	ts, requests := newRecordingServer(t, http.StatusOK, `{"success":true,"data":[]}`)
	client := newTestClient(t, ts.URL)

	_, err := client.Marketplace.Browse(context.Background(), &MarketplaceFilters{
		Type:  MarketplaceTypeAgent,
		Limit: 10,
	})
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/marketplace", req.Path)
	assert.Equal(t, "limit=10&type=agent", req.Query)
}

func TestTrailingSlashStripped(t *testing.T) {
	ts, requests := newRecordingServer(t, http.StatusOK, `{"success":true,"data":[]}`)
	client := newTestClient(t, ts.URL+"/api/")

	_, err := client.Agents.List(context.Background())
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	assert.Equal(t, "/api/agents", (*requests)[0].Path)
}

func TestRequestHeaders(t *testing.T) {
	ts, requests := newRecordingServer(t, http.StatusOK, `{"success":true,"data":[]}`)
	client := newTestClient(t, ts.URL)

	_, err := client.Agents.List(context.Background())
	require.NoError(t, err)

	header := (*requests)[0].Header
	assert.Equal(t, "application/json", header.Get("Content-Type"))
	assert.Equal(t, "test-key", header.Get("X-API-Key"))
	assert.Equal(t, "mirra-go/"+Version, header.Get("User-Agent"))
	assert.NotEmpty(t, header.Get("X-Request-ID"))
}

func TestNullDataIsNotAnError(t *testing.T) {
	ts, _ := newRecordingServer(t, http.StatusOK, `{"success":true,"data":null}`)
	client := newTestClient(t, ts.URL)

	entity, err := client.Memory.FindOne(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, entity)
}

func TestResourceCallReturnsRawJSON(t *testing.T) {
	ts, _ := newRecordingServer(t, http.StatusOK, `{"success":true,"data":{"rows":[1,2,3]}}`)
	client := newTestClient(t, ts.URL)

	raw, err := client.Resources.Call(context.Background(), CallResourceParams{
		ResourceID: "r1",
		Method:     "query",
	})
	require.NoError(t, err)

	var decoded struct {
		Rows []int `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, []int{1, 2, 3}, decoded.Rows)
}

func TestRateLimitHonorsContextCancellation(t *testing.T) {
	ts, _ := newRecordingServer(t, http.StatusOK, `{"success":true,"data":[]}`)
	// Burst 1 at a tiny rate: the first call consumes the burst, the
	// second has to wait far longer than the context allows.
	client := newTestClient(t, ts.URL, WithRateLimit(0.001, 1))

	_, err := client.Agents.List(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Agents.List(ctx)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindTransport, apiErr.Kind)
}

func TestDefaultBaseURL(t *testing.T) {
	client, err := New("k")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.BaseURL())

	client, err = New("k", WithBaseURL("https://x/api/"))
	require.NoError(t, err)
	assert.Equal(t, "https://x/api", client.BaseURL())
}

func TestErrorAsWorksThroughWrapping(t *testing.T) {
	base := &Error{Kind: KindAPI, Message: "boom", Code: "c"}
	wrapped := fmt.Errorf("facade call: %w", base)

	var apiErr *Error
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("errors.As failed to find *Error")
	}
	if apiErr.Code != "c" {
		t.Fatalf("got code %q, want %q", apiErr.Code, "c")
	}
}
