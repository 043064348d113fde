// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, w.Body.String())
	}
	return env
}

func TestOKEnvelope(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	OK(w, map[string]string{"hello": "world"})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	env := decodeEnvelope(t, w)
	if !env.Success {
		t.Error("success = false, want true")
	}
	if env.Error != nil {
		t.Errorf("unexpected error body: %+v", env.Error)
	}
}

func TestJSONErrorWithAppError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	JSONError(w, NotFoundError("order"))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	env := decodeEnvelope(t, w)
	if env.Success {
		t.Error("success = true on error response")
	}
	if env.Error == nil || env.Error.Code != "ORDER_NOT_FOUND" {
		t.Errorf("error = %+v, want ORDER_NOT_FOUND", env.Error)
	}
}

// Unknown errors must normalize to SERVER_ERROR and never leak internals.
func TestJSONErrorNormalizesUnknown(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, errors.New("pq: relation orders does not exist"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	env := decodeEnvelope(t, w)
	if env.Error == nil || env.Error.Code != "SERVER_ERROR" {
		t.Fatalf("error = %+v, want SERVER_ERROR", env.Error)
	}
}

func TestPaginatedMeta(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	Paginated(w, []int{1, 2, 3}, 2, 20, 43)

	env := decodeEnvelope(t, w)
	if env.Meta == nil {
		t.Fatal("missing pagination meta")
	}
	if env.Meta.Page != 2 || env.Meta.PageSize != 20 || env.Meta.Total != 43 {
		t.Errorf("meta = %+v, want page 2 size 20 total 43", env.Meta)
	}
	if env.Meta.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", env.Meta.TotalPages)
	}
}
