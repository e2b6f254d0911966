package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
)

func Test_NewHTTPServer(t *testing.T) {
	srv := NewHTTPServer(HTTPConfig{Port: 8080, ReadTimeout: time.Second, MaxHeaderBytes: 1 << 20}, http.NotFoundHandler())

	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadTimeout)
	assert.Equal(t, 1<<20, srv.MaxHeaderBytes)
}

func Test_NewChiRouter_SetsRequestID(t *testing.T) {
	// given
	mux := NewChiRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	var reqID string
	mux.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		reqID = middleware.GetReqID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	rr := httptest.NewRecorder()

	// when
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	// then
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.NotEmpty(t, reqID)
}
