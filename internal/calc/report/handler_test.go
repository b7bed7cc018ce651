package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPreview_RendersPDF(t *testing.T) {
	t.Parallel()

	h := &Handler{}
	body := `{"project":"Hillside Lot 4","author":"R. Ortega","height_in":48,"material":"concrete","soil":"stiff","toe_length_in":12}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/wall/report/preview", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Preview(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("response is not a PDF")
	}
}

func TestDetailed_InfeasibleStillRendersDiagnosis(t *testing.T) {
	t.Parallel()

	h := &Handler{}
	body := `{"project":"Bluff","height_in":144,"material":"concrete","surcharge":"1:1","soil":"soft"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/premium/wall/report/detailed", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Detailed(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("response is not a PDF")
	}
}

func TestPreview_BadParameters(t *testing.T) {
	t.Parallel()

	h := &Handler{}
	body := `{"height_in":10,"material":"concrete","soil":"stiff"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/wall/report/preview", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Preview(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}
