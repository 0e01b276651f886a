package chatapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/rag-bench/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	NewHandler().Bind(e)
	return e
}

func TestHandleChat(t *testing.T) {
	e := newTestServer()

	t.Run("answers with the most relevant sentence", func(t *testing.T) {
		body := `{"question":"What is Hugging Face known for?","context":"Hugging Face is a company known for its Transformers library. The library provides pretrained models."}`
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp ChatResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Answer, "Transformers library")
	})

	t.Run("missing question returns 400", func(t *testing.T) {
		body := `{"context":"some context"}`
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "question is required")
	})

	t.Run("missing context returns 400", func(t *testing.T) {
		body := `{"question":"What is Go?"}`
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{not json"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid chat request body")
	})
}

func TestAnswer(t *testing.T) {
	t.Run("picks sentence with highest question overlap", func(t *testing.T) {
		ctx := "Python was created by Guido van Rossum. It emphasizes code readability. Rust is a different language."
		got := Answer("Who created Python?", ctx)
		assert.Equal(t, "Python was created by Guido van Rossum.", got)
	})

	t.Run("falls back to first sentence when nothing overlaps", func(t *testing.T) {
		got := Answer("completely unrelated query", "First fact here. Second fact here.")
		assert.Equal(t, "First fact here.", got)
	})

	t.Run("context without punctuation is returned whole", func(t *testing.T) {
		got := Answer("anything", "a single unpunctuated passage")
		assert.Equal(t, "a single unpunctuated passage", got)
	})
}
