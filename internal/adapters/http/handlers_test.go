package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"svw.info/magicsquares/internal/infrastructure/storage"
	"svw.info/magicsquares/internal/usecase"
	"svw.info/magicsquares/internal/validator"
)

func newServer(t *testing.T, withLedger bool) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	var svc *usecase.Service
	if withLedger {
		l, err := storage.OpenLedger(context.Background(), filepath.Join(dir, "ledger.db"))
		require.NoError(t, err)
		t.Cleanup(func() { l.Close() })
		svc = usecase.NewService(storage.NewFS(dir), validator.New(), l, zap.NewNop())
	} else {
		svc = usecase.NewService(storage.NewFS(dir), validator.New(), nil, zap.NewNop())
	}
	svc.Threshold = 5
	mux := http.NewServeMux()
	New(svc).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postSearch(t *testing.T, srv *httptest.Server, body string) (*http.Response, searchResp) {
	t.Helper()
	res, err := http.Post(srv.URL+"/api/search", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	var out searchResp
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res, out
}

func TestSearch(t *testing.T) {
	srv := newServer(t, false)
	res, out := postSearch(t, srv, `{"value":"184","sign":"+"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "184P", out.Label)
	assert.Equal(t, "1105", out.Number)
	assert.Equal(t, 4, out.FactorPairs)
	assert.Equal(t, 13, out.Progressions)
	assert.Equal(t, 17, out.Pairs)
	assert.Equal(t, 61, out.Skipped)
	require.Len(t, out.Finds, 1)
	f := out.Finds[0]
	assert.Equal(t, "ps", f.Class)
	assert.Equal(t, 6, f.Count)
	assert.Equal(t, 1, f.Seq)
	assert.Equal(t, [4]bool{false, false, true, false}, f.Squares)
	assert.Equal(t, []string{"654481", "2018569", "990025", "1556569", "1221025", "885481", "1452025", "423481", "1787569"}, f.Grid)
	assert.Equal(t, "ps,6,184P,1.result", filepath.Base(f.Artifact))
}

func TestSearchMinusNoFinds(t *testing.T) {
	srv := newServer(t, false)
	res, out := postSearch(t, srv, `{"value":"11","sign":"-"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "65", out.Number)
	assert.Empty(t, out.Finds)
}

func TestSearchBadRequest(t *testing.T) {
	srv := newServer(t, false)
	for _, body := range []string{`{"value":"abc"}`, `{"value":"5","sign":"?"}`, `{`, ``} {
		res, out := postSearch(t, srv, body)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
		assert.NotEmpty(t, out.Error)
	}
}

func TestSearchMethodNotAllowed(t *testing.T) {
	srv := newServer(t, false)
	res, err := http.Get(srv.URL + "/api/search")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func getFinds(t *testing.T, srv *httptest.Server, query string) (int, findsResp) {
	t.Helper()
	res, err := http.Get(srv.URL + "/api/finds" + query)
	require.NoError(t, err)
	defer res.Body.Close()
	var out findsResp
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res.StatusCode, out
}

func TestFindsWithoutLedger(t *testing.T) {
	srv := newServer(t, false)
	status, out := getFinds(t, srv, "")
	assert.Equal(t, http.StatusNotImplemented, status)
	assert.Equal(t, "ledger not enabled", out.Error)
}

func TestFindsWithLedger(t *testing.T) {
	srv := newServer(t, true)

	status, out := getFinds(t, srv, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, out.Finds)

	postSearch(t, srv, `{"value":"184"}`)

	status, out = getFinds(t, srv, "?class=ps&limit=10")
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, out.Finds, 1)
	assert.Equal(t, "184P", out.Finds[0].Label)
	assert.Equal(t, "ps", out.Finds[0].Class)

	status, out = getFinds(t, srv, "?class=fh")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, out.Finds)

	status, _ = getFinds(t, srv, "?class=zz")
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = getFinds(t, srv, "?limit=-1")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHealthzAndRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	mux := http.NewServeMux()
	New(usecase.NewService(nil, nil, nil, nil)).Register(mux)
	srv := httptest.NewServer(RequestLogger(zap.New(core), mux))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/healthz")
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	res.Body.Close()
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["backend"])

	entries := logs.FilterMessage("http").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/healthz", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}
