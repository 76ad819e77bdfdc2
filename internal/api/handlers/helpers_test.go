package handlers

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"fleet-route-solver/internal/platform/obs"
)

func TestWriteJSONLogsRequestIDOnEncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req = req.WithContext(obs.WithRequestID(req.Context(), "42"))
	rec := httptest.NewRecorder()

	// Channels have no JSON encoding, so this forces the failure path.
	writeJSON(rec, req, http.StatusOK, make(chan int))

	if !strings.Contains(buf.String(), "req_id=42") {
		t.Fatalf("log = %q, want the request ID carried through", buf.String())
	}
}
