package secretshare_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oarkflow/secretshare"
)

type apiResult struct {
	Success    bool     `json:"success"`
	Shares     []string `json:"shares"`
	Secret     string   `json:"secret"`
	PartsCount int      `json:"partsCount"`
	Error      string   `json:"error"`
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) apiResult {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var res apiResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestHTTPCreateAndRecover(t *testing.T) {
	handler := secretshare.NewHandler(secretshare.New())

	created := postJSON(t, handler, "/api/create", map[string]any{
		"secret": "web secret",
		"n":      3,
		"k":      2,
	})
	require.True(t, created.Success, created.Error)
	require.Len(t, created.Shares, 3)

	recovered := postJSON(t, handler, "/api/recover", map[string]any{
		"parts": created.Shares[0] + "\n" + created.Shares[2],
	})
	require.True(t, recovered.Success, recovered.Error)
	require.Equal(t, "web secret", recovered.Secret)
	require.Equal(t, 2, recovered.PartsCount)
}

func TestHTTPCreateInvalidParams(t *testing.T) {
	handler := secretshare.NewHandler(secretshare.New())

	res := postJSON(t, handler, "/api/create", map[string]any{
		"secret": "",
		"n":      3,
		"k":      2,
	})
	require.False(t, res.Success)
	require.NotEmpty(t, res.Error)
}

func TestHTTPRecoverMalformedShares(t *testing.T) {
	handler := secretshare.NewHandler(secretshare.New())

	res := postJSON(t, handler, "/api/recover", map[string]any{
		"parts": "1:1,2\nabc:4,5",
	})
	require.False(t, res.Success)
	require.Contains(t, res.Error, "malformed")
}

func TestHTTPServesUI(t *testing.T) {
	handler := secretshare.NewHandler(secretshare.New())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.2:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "Secret Share"))
}

func TestHTTPMethodNotAllowed(t *testing.T) {
	handler := secretshare.NewHandler(secretshare.New())

	req := httptest.NewRequest(http.MethodGet, "/api/create", nil)
	req.RemoteAddr = "192.0.2.3:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHTTPBearerAuth(t *testing.T) {
	t.Setenv("SECRETSHARE_TOKEN", "sekrit")
	handler := secretshare.NewHandler(secretshare.New())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.4:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.4:1234"
	req.Header.Set("Authorization", "Bearer sekrit")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
