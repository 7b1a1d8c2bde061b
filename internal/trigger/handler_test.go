package trigger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mvoronin/authgate/internal/logging"
	"github.com/mvoronin/authgate/internal/shadow"
)

type fakeSyncer struct {
	runs   int
	report *shadow.SyncReport
	err    error
}

func (f *fakeSyncer) Run(ctx context.Context) (*shadow.SyncReport, error) {
	f.runs++
	return f.report, f.err
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var testAccess = AccessConfig{
	TrustedIP:     "10.0.0.5",
	TrustedOrigin: "billing-gateway",
	SharedSecret:  "s3cret",
}

func triggerRequest(ip, origin, password string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/sysapi/update-signal",
		strings.NewReader(`{"password":"`+password+`"}`))
	req.RemoteAddr = ip + ":54321"
	req.Header.Set(OriginHeader, origin)
	return req
}

func TestUpdateSignal_AllChecksPass(t *testing.T) {
	syncer := &fakeSyncer{report: &shadow.SyncReport{RunID: "run-1", Created: 3, Deleted: 1}}
	router := NewRouter(NewHandler(testAccess, syncer, testLogger()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, triggerRequest("10.0.0.5", "billing-gateway", "s3cret"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, syncer.runs)
	require.JSONEq(t, `{"status":"DONE","run_id":"run-1","created":3,"deleted":1}`, rec.Body.String())
}

func TestUpdateSignal_UntrustedIP(t *testing.T) {
	syncer := &fakeSyncer{}
	router := NewRouter(NewHandler(testAccess, syncer, testLogger()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, triggerRequest("192.168.1.9", "billing-gateway", "s3cret"))

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"detail":"forbidden"}`, rec.Body.String())
	require.Zero(t, syncer.runs)
}

func TestUpdateSignal_InvalidOrigin(t *testing.T) {
	syncer := &fakeSyncer{}
	router := NewRouter(NewHandler(testAccess, syncer, testLogger()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, triggerRequest("10.0.0.5", "unknown-service", "s3cret"))

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Zero(t, syncer.runs)
}

func TestUpdateSignal_WrongSecretNeverRunsJob(t *testing.T) {
	syncer := &fakeSyncer{}
	router := NewRouter(NewHandler(testAccess, syncer, testLogger()))

	// ip and origin are both correct; the secret alone must still gate
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, triggerRequest("10.0.0.5", "billing-gateway", "wrong"))

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Zero(t, syncer.runs)
}

func TestUpdateSignal_MalformedBody(t *testing.T) {
	syncer := &fakeSyncer{}
	router := NewRouter(NewHandler(testAccess, syncer, testLogger()))

	req := httptest.NewRequest(http.MethodPost, "/sysapi/update-signal", strings.NewReader("not json"))
	req.RemoteAddr = "10.0.0.5:54321"
	req.Header.Set(OriginHeader, "billing-gateway")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Zero(t, syncer.runs)
}

func TestUpdateSignal_ForwardedForFirstHop(t *testing.T) {
	syncer := &fakeSyncer{report: &shadow.SyncReport{RunID: "run-2"}}
	router := NewRouter(NewHandler(testAccess, syncer, testLogger()))

	req := triggerRequest("127.0.0.1", "billing-gateway", "s3cret")
	req.Header.Set("X-Forwarded-For", "10.0.0.5, 172.16.0.1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, syncer.runs)
}

func TestUpdateSignal_SyncFailure(t *testing.T) {
	syncer := &fakeSyncer{err: errors.New("schema check: table gone")}
	router := NewRouter(NewHandler(testAccess, syncer, testLogger()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, triggerRequest("10.0.0.5", "billing-gateway", "s3cret"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, syncer.runs)
}

func TestUpdateSignal_GetNotRouted(t *testing.T) {
	router := NewRouter(NewHandler(testAccess, &fakeSyncer{}, testLogger()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sysapi/update-signal", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
