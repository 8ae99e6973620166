package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aoideee/shelf/internal/data"
)

// newTestApplication returns an application over in-memory stores seeded
// with the default books and no todos. The rate limiter is off.
func newTestApplication(t *testing.T) *applicationDependencies {
	t.Helper()

	models, err := data.NewMemoryModels(context.Background(), data.DefaultBooks(), nil)
	require.NoError(t, err)

	var settings serverConfig
	settings.port = 4000
	settings.environment = "development"

	return &applicationDependencies{
		config:  settings,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		models:  models,
		metrics: newAppMetrics(models),
	}
}

// do sends a request with an optional JSON body through h.
func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// decode unmarshals the recorded response body into dst.
func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst), rr.Body.String())
}

type booksResponse struct {
	Books []data.Book `json:"books"`
}

type bookResponse struct {
	Book data.Book `json:"book"`
}

type validationResponse struct {
	Error map[string]string `json:"error"`
}

type messageResponse struct {
	Error string `json:"error"`
}

func bookIDs(books []data.Book) []int64 {
	out := []int64{}
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}
