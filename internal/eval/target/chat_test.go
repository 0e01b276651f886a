package target

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/rag-bench/internal/eval/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatTarget_Ask(t *testing.T) {
	t.Run("successful answer", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/chat", r.URL.Path)

			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Who created Python?", req["question"])
			assert.Contains(t, req["context"], "Guido van Rossum")

			_ = json.NewEncoder(w).Encode(map[string]string{"answer": "Guido van Rossum created Python."})
		}))
		defer srv.Close()

		tgt := NewChatTarget("local", srv.URL)
		answer, err := tgt.Ask(context.Background(), "Who created Python?", []string{
			"Python was created by Guido van Rossum.",
		})
		require.NoError(t, err)
		assert.Equal(t, "Guido van Rossum created Python.", answer.Text)
		assert.Greater(t, answer.Latency, time.Duration(0))
	})

	t.Run("multiple contexts joined", func(t *testing.T) {
		var gotContext string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req map[string]string
			_ = json.NewDecoder(r.Body).Decode(&req)
			gotContext = req["context"]
			_ = json.NewEncoder(w).Encode(map[string]string{"answer": "ok"})
		}))
		defer srv.Close()

		tgt := NewChatTarget("local", srv.URL)
		_, err := tgt.Ask(context.Background(), "q?", []string{"first passage", "second passage"})
		require.NoError(t, err)
		assert.Equal(t, "first passage\n\nsecond passage", gotContext)
	})

	t.Run("non-200 surfaces body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"model unavailable"}`, http.StatusBadGateway)
		}))
		defer srv.Close()

		tgt := NewChatTarget("local", srv.URL)
		_, err := tgt.Ask(context.Background(), "q?", []string{"c"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 502")
		assert.Contains(t, err.Error(), "model unavailable")
	})

	t.Run("malformed response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		tgt := NewChatTarget("local", srv.URL)
		_, err := tgt.Ask(context.Background(), "q?", []string{"c"})
		assert.ErrorContains(t, err, "parse response")
	})

	t.Run("context cancellation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// drain the body so the server notices the client going away
			_, _ = io.Copy(io.Discard, r.Body)
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		tgt := NewChatTarget("local", srv.URL)
		_, err := tgt.Ask(ctx, "q?", []string{"c"})
		assert.Error(t, err)
	})
}

func TestCreateFromSpec(t *testing.T) {
	t.Run("chat targets", func(t *testing.T) {
		targets, cleanup, err := CreateFromSpec(map[string]spec.Target{
			"local":   {Type: "chat", BaseURL: "http://localhost:8000", TimeoutSeconds: 10},
			"staging": {Type: "chat", BaseURL: "https://staging.example.com/"},
		})
		require.NoError(t, err)
		defer cleanup()

		assert.Len(t, targets, 2)
		assert.Equal(t, "local", targets["local"].Name())
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, _, err := CreateFromSpec(map[string]spec.Target{
			"bad": {Type: "grpc", BaseURL: "localhost:9000"},
		})
		assert.ErrorContains(t, err, "unsupported target type")
	})
}
