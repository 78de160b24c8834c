package response_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/atriumlabs/atrium/backend/internal/apperror"
	"github.com/atriumlabs/atrium/backend/internal/response"
)

func TestSuccessEnvelope(t *testing.T) {
	envelope := response.Success(map[string]interface{}{"id": 7}, "")

	if envelope.Code != http.StatusOK {
		t.Errorf("Code = %d, want 200", envelope.Code)
	}
	if envelope.Message != "success" {
		t.Errorf("Message = %q, want %q", envelope.Message, "success")
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(body), `"data"`) {
		t.Errorf("success envelope must carry data: %s", body)
	}
	if strings.Contains(string(body), `"detail"`) {
		t.Errorf("success envelope must omit detail: %s", body)
	}
}

func TestErrorEnvelope(t *testing.T) {
	envelope := response.Error(404, "Resource not found", "user 7 not found")

	body, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"code":404,"message":"Resource not found","detail":"user 7 not found"}`
	if string(body) != want {
		t.Errorf("body = %s, want %s", body, want)
	}
}

func TestErrorEnvelopeOmitsEmptyDetail(t *testing.T) {
	envelope := response.Error(400, "Bad request", "")

	body, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(body), "detail") {
		t.Errorf("empty detail must be omitted, not emitted as null: %s", body)
	}
	if strings.Contains(string(body), "data") {
		t.Errorf("error envelope must omit data: %s", body)
	}
}

func TestNewPageMeta(t *testing.T) {
	tests := []struct {
		name        string
		total       int64
		page, size  int
		wantPages   int
		wantHasNext bool
		wantHasPrev bool
	}{
		{"empty listing", 0, 1, 20, 0, false, false},
		{"empty listing beyond first page", 0, 5, 20, 0, false, false},
		{"single partial page", 7, 1, 20, 1, false, false},
		{"exact page boundary", 40, 2, 20, 2, false, true},
		{"last partial page", 95, 5, 20, 5, false, true},
		{"middle page", 95, 3, 20, 5, true, true},
		{"first of many", 95, 1, 20, 5, true, false},
		{"size one", 3, 2, 1, 3, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := response.NewPageMeta(tt.total, tt.page, tt.size)
			if err != nil {
				t.Fatalf("NewPageMeta() error: %v", err)
			}
			if meta.Pages != tt.wantPages {
				t.Errorf("Pages = %d, want %d", meta.Pages, tt.wantPages)
			}
			if meta.HasNext != tt.wantHasNext {
				t.Errorf("HasNext = %v, want %v", meta.HasNext, tt.wantHasNext)
			}
			if meta.HasPrev != tt.wantHasPrev {
				t.Errorf("HasPrev = %v, want %v", meta.HasPrev, tt.wantHasPrev)
			}
			if meta.Total != tt.total || meta.Page != tt.page || meta.Size != tt.size {
				t.Errorf("meta echoes = %+v", meta)
			}
		})
	}
}

func TestNewPageMetaRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page, size int
	}{
		{"zero size", 10, 1, 0},
		{"negative size", 10, 1, -5},
		{"zero page", 10, 0, 20},
		{"negative page", 10, -1, 20},
		{"negative total", -1, 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := response.NewPageMeta(tt.total, tt.page, tt.size)
			if err == nil {
				t.Fatal("expected validation error")
			}
			appErr, ok := apperror.As(err)
			if !ok {
				t.Fatalf("expected domain error, got %T", err)
			}
			if appErr.Kind != apperror.KindValidation {
				t.Errorf("Kind = %s, want %s", appErr.Kind, apperror.KindValidation)
			}
		})
	}
}

func TestPageEnvelopeWireFormat(t *testing.T) {
	envelope, err := response.Page([]string{}, 0, 1, 20)
	if err != nil {
		t.Fatalf("Page() error: %v", err)
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"code":200,"message":"success","data":{"items":[],"meta":{"total":0,"page":1,"size":20,"pages":0,"has_next":false,"has_prev":false}}}`
	if string(body) != want {
		t.Errorf("body = %s\nwant %s", body, want)
	}
}
