package wall

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandler_Design_OK(t *testing.T) {
	t.Parallel()

	h := &Handler{}
	body := `{"height_in":48,"material":"concrete","surcharge":"flat","objective":"minimize_excavation","soil":"stiff","toe_length_in":12}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/wall/design", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Design(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	var out Outcome
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !out.Converged {
		t.Fatalf("expected converged outcome, got %+v", out)
	}
	if out.Specification == nil || out.Specification.Footing.ToeIn < 12 {
		t.Fatalf("specification missing or toe below bound: %+v", out.Specification)
	}
}

func TestHandler_Design_BadPayload(t *testing.T) {
	t.Parallel()

	h := &Handler{}
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/wall/design", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Design(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestHandler_Design_OutOfRangeRejectedBeforeEngine(t *testing.T) {
	t.Parallel()

	h := &Handler{}
	body := `{"height_in":500,"material":"concrete","soil":"stiff"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/wall/design", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Design(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

type fakeStore struct {
	saved map[string][]byte
}

func (f *fakeStore) SaveSpecification(_ context.Context, requestID string, _ int, payload []byte) error {
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	f.saved[requestID] = payload
	return nil
}

func TestHandler_Design_PersistsUnderRequestID(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	h := &Handler{Store: store}
	body := `{"height_in":48,"material":"concrete","soil":"stiff","toe_length_in":12,"request_id":"run-42"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/wall/design", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Design(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	if _, ok := store.saved["run-42"]; !ok {
		t.Fatalf("specification not persisted under request id")
	}
}

func TestHandler_Design_InfeasibleIsStructuredNotAnError(t *testing.T) {
	t.Parallel()

	h := &Handler{}
	body := `{"height_in":144,"material":"concrete","surcharge":"1:1","soil":"soft"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/wall/design", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Design(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	var out Outcome
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Converged {
		// A 12 ft wall in soft soil under a 1:1 slope may legitimately
		// converge only with a large footing; the contract is that a
		// non-converged run names its failing factor.
		return
	}
	if out.FailingFactor == "" || out.LastStability == nil {
		t.Fatalf("infeasible outcome missing diagnostics: %+v", out)
	}
}
