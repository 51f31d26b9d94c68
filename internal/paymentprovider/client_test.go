package paymentprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return &Client{
		secretKey:  "sk_test_123",
		apiURL:     serverURL,
		httpClient: &http.Client{Timeout: time.Second},
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	t.Run("successful intent creation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/payment_intents", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
			assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "2000", r.PostForm.Get("amount"))
			assert.Equal(t, "usd", r.PostForm.Get("currency"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": "pi_123",
				"client_secret": "pi_123_secret_456",
				"amount": 2000,
				"currency": "usd",
				"status": "requires_payment_method"
			}`))
		}))
		defer srv.Close()

		client := newTestClient(srv.URL)
		intent, err := client.CreatePaymentIntent(context.Background(), CreateIntentRequest{
			Amount:   2000,
			Currency: "usd",
		})

		require.NoError(t, err)
		assert.Equal(t, "pi_123", intent.ID)
		assert.Equal(t, "pi_123_secret_456", intent.ClientSecret)
		assert.Equal(t, int64(2000), intent.Amount)
	})

	t.Run("provider error is surfaced with message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"error": {"message": "Your card was declined."}}`))
		}))
		defer srv.Close()

		client := newTestClient(srv.URL)
		_, err := client.CreatePaymentIntent(context.Background(), CreateIntentRequest{
			Amount:   2000,
			Currency: "usd",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Your card was declined.")
	})

	t.Run("unreachable provider returns error", func(t *testing.T) {
		client := newTestClient("http://127.0.0.1:1")
		_, err := client.CreatePaymentIntent(context.Background(), CreateIntentRequest{
			Amount:   100,
			Currency: "usd",
		})

		require.Error(t, err)
	})
}
