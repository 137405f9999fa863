package metaclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-analytics-api/internal/config"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

func newTestClient(serverURL string, policy RetryPolicy) *MetaClient {
	cfg := &config.Config{
		Meta: config.Meta{
			URL:         serverURL,
			AccessToken: "test-token",
			// Expiração distante para não disparar renovação durante os testes
			TokenExpiresAt: time.Now().Add(72 * time.Hour),
		},
	}

	return &MetaClient{
		Cfg:          cfg,
		TokenManager: NewTokenManager(cfg),
		httpClient:   &http.Client{},
		policy:       policy,
	}
}

func testRange(t *testing.T) domain.DateRange {
	t.Helper()

	r, err := domain.NewDateRange(
		time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	return r
}

func TestExecute_RetriesServerErrorsUntilExhaustion(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"message":"Service temporarily unavailable"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, RetryPolicy{
		Timeout:    time.Second,
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
	})

	_, err := client.GetAccountInsights(context.Background(), "123", testRange(t), InsightOptions{Level: "account"})
	require.Error(t, err)

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)

	assert.Equal(t, ErrKindServer, callErr.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, callErr.StatusCode)
	assert.Equal(t, "Service temporarily unavailable", callErr.Message)

	// MaxRetries = 2 significa exatamente 3 tentativas
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestExecute_ClientErrorIsTerminal(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"Unsupported get request","error_subcode":33}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, RetryPolicy{
		Timeout:    time.Second,
		MaxRetries: 5,
		BaseDelay:  time.Millisecond,
	})

	_, err := client.GetAccountInsights(context.Background(), "123", testRange(t), InsightOptions{Level: "account"})
	require.Error(t, err)

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)

	assert.Equal(t, ErrKindClient, callErr.Kind)
	assert.Equal(t, http.StatusNotFound, callErr.StatusCode)
	assert.Equal(t, "Unsupported get request (subcode 33)", callErr.Message)

	// Erros 4xx nunca são repetidos
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestExecute_TimeoutIsolation(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		// Nunca responde dentro do deadline da tentativa
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, RetryPolicy{
		Timeout:    20 * time.Millisecond,
		MaxRetries: 1,
		BaseDelay:  time.Millisecond,
	})

	start := time.Now()
	_, err := client.GetAccountInsights(context.Background(), "123", testRange(t), InsightOptions{Level: "account"})
	elapsed := time.Since(start)

	require.Error(t, err)

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)

	assert.Equal(t, ErrKindTimeout, callErr.Kind)
	assert.Equal(t, timeoutStatusCode, callErr.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))

	// Cada tentativa foi abortada pelo próprio deadline, não pelo servidor
	assert.Less(t, elapsed, 2*time.Second)
}

func TestExecute_NetworkErrorKind(t *testing.T) {
	// Servidor fechado imediatamente: toda tentativa falha na conexão
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL, RetryPolicy{
		Timeout:    time.Second,
		MaxRetries: 1,
		BaseDelay:  time.Millisecond,
	})

	_, err := client.GetAccountInsights(context.Background(), "123", testRange(t), InsightOptions{Level: "account"})
	require.Error(t, err)

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)

	assert.Equal(t, ErrKindNetwork, callErr.Kind)
	assert.Equal(t, 0, callErr.StatusCode)
}

func TestExecute_RichDiagnosticFromEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid parameter","error_user_msg":"O período solicitado é muito longo","error_subcode":1487390}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, RetryPolicy{Timeout: time.Second, MaxRetries: 0, BaseDelay: time.Millisecond})

	_, err := client.GetAccountInsights(context.Background(), "123", testRange(t), InsightOptions{Level: "account"})
	require.Error(t, err)

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)

	assert.Equal(t, "Invalid parameter: O período solicitado é muito longo (subcode 1487390)", callErr.Message)
}

func TestExecute_FallbackDiagnosticForRawBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, RetryPolicy{Timeout: time.Second, MaxRetries: 0, BaseDelay: time.Millisecond})

	_, err := client.GetAccountInsights(context.Background(), "123", testRange(t), InsightOptions{Level: "account"})
	require.Error(t, err)

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)

	assert.Equal(t, "HTTP 502: bad gateway", callErr.Message)
	assert.Equal(t, ErrKindServer, callErr.Kind)
}

func TestExecute_ExpiredTokenIsRefreshedAndCallReissued(t *testing.T) {
	var insightHits, refreshHits int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/oauth/access_token") {
			atomic.AddInt32(&refreshHits, 1)
			w.Write([]byte(`{"access_token":"renewed-token","token_type":"bearer","expires_in":5184000}`))

			return
		}

		atomic.AddInt32(&insightHits, 1)

		if r.URL.Query().Get("access_token") != "renewed-token" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"Error validating access token: Session has expired","type":"OAuthException","code":190}}`))

			return
		}

		w.Write([]byte(`{"data":[{"account_id":"123","spend":"42.00"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, RetryPolicy{Timeout: time.Second, MaxRetries: 2, BaseDelay: time.Millisecond})

	rows, err := client.GetAccountInsights(context.Background(), "123", testRange(t), InsightOptions{Level: "account"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "42.00", rows[0].Spend)

	// O 190 é terminal na política de retry: uma tentativa original, uma
	// renovação de token e uma reemissão com o token novo
	assert.Equal(t, int32(2), atomic.LoadInt32(&insightHits))
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshHits))
}

func TestExecute_ExpiredTokenRefreshHappensAtMostOnce(t *testing.T) {
	var insightHits, refreshHits int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/oauth/access_token") {
			atomic.AddInt32(&refreshHits, 1)
			w.Write([]byte(`{"access_token":"still-rejected-token","token_type":"bearer","expires_in":5184000}`))

			return
		}

		atomic.AddInt32(&insightHits, 1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Error validating access token: Session has expired","type":"OAuthException","code":190}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, RetryPolicy{Timeout: time.Second, MaxRetries: 2, BaseDelay: time.Millisecond})

	_, err := client.GetAccountInsights(context.Background(), "123", testRange(t), InsightOptions{Level: "account"})
	require.Error(t, err)

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)

	assert.Equal(t, ErrKindClient, callErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, callErr.StatusCode)

	// A segunda falha de token expirado é definitiva: sem loop de renovação
	assert.Equal(t, int32(2), atomic.LoadInt32(&insightHits))
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshHits))
}

func TestGetAccountInsights_StripsRedundantActions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.URL.Query().Get("access_token"))
		assert.NotEmpty(t, r.URL.Query().Get("time_range"))

		w.Write([]byte(`{"data":[{
			"account_id":"123",
			"spend":"100.00",
			"actions":[
				{"action_type":"purchase","value":"4"},
				{"action_type":"omni_purchase","value":"4"}
			]
		}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, DefaultRetryPolicy())

	rows, err := client.GetAccountInsights(context.Background(), "123", testRange(t), InsightOptions{Level: "account"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.Len(t, rows[0].Actions, 1)
	assert.Equal(t, "purchase", rows[0].Actions[0].ActionType)
	assert.Equal(t, "100.00", rows[0].Spend)
}

func TestResolveDefaultAccountID_CachesResult(t *testing.T) {
	var hits int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"data":[{"id":"act_999","account_id":"999","name":"Conta Principal"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, DefaultRetryPolicy())

	first, err := client.ResolveDefaultAccountID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "999", first)

	second, err := client.ResolveDefaultAccountID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A resolução acontece no máximo uma vez por processo
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestUpdateCampaign_RequiresMarkedFields(t *testing.T) {
	client := newTestClient("http://invalid", DefaultRetryPolicy())

	err := client.UpdateCampaign(context.Background(), "123", NewUpdateParams())
	assert.Error(t, err)

	err = client.UpdateCampaign(context.Background(), "123", nil)
	assert.Error(t, err)
}

func TestUpdateCampaign_SendsOnlyMarkedFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())

		assert.Equal(t, "PAUSED", r.PostForm.Get("status"))
		assert.Equal(t, "test-token", r.PostForm.Get("access_token"))

		// Campos não marcados não aparecem no payload
		_, hasName := r.PostForm["name"]
		assert.False(t, hasName)
		_, hasBudget := r.PostForm["daily_budget"]
		assert.False(t, hasBudget)

		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, DefaultRetryPolicy())

	err := client.UpdateCampaign(context.Background(), "123", NewUpdateParams().SetStatus("PAUSED"))
	require.NoError(t, err)
}
