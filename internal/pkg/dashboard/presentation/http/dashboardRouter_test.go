package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sernur/SalesShortcut/internal/infrastructure/realtime"
	"github.com/sernur/SalesShortcut/internal/pkg/dashboard/application/state"
)

func newTestRouter(t *testing.T, sdrBaseURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	RegisterRoutes(r, Deps{
		Registry:   state.NewRegistry(),
		Hub:        realtime.NewHub(),
		Logger:     zap.NewNop(),
		SDRBaseURL: sdrBaseURL,
	})
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	return rec
}

func TestHumanInputAnswerRoute(t *testing.T) {
	sdr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/api/human-input/req-1", req.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer sdr.Close()

	r := newTestRouter(t, sdr.URL)

	filed := postJSON(r, "/api/human-input",
		`{"request_id":"req-1","prompt":"Approve the demo site","type":"url"}`)
	require.Equal(t, http.StatusOK, filed.Code)

	answered := postJSON(r, "/api/human-input/req-1",
		`{"response":"https://demo.example.com"}`)
	assert.Equal(t, http.StatusOK, answered.Code)
	assert.Contains(t, answered.Body.String(), "req-1")
}

func TestHumanInputAnswerRoute_UnknownRequest(t *testing.T) {
	r := newTestRouter(t, "http://127.0.0.1:0")

	answered := postJSON(r, "/api/human-input/nope", `{"response":"https://demo.example.com"}`)
	assert.Equal(t, http.StatusNotFound, answered.Code)
}
