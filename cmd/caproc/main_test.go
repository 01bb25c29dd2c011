package main

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/alexshd/caproc"
)

func TestEvaluateEndpoint(t *testing.T) {
	router := newRouter()

	body := `{"R":20,"p":0.01,"tpr":0.85,"fpr":0.07,"C":4,"delta":0.01}`
	req := httptest.NewRequest(http.MethodPost, "/evaluate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var ev caproc.Evaluation
	if err := sonic.Unmarshal(rec.Body.Bytes(), &ev); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if got, want := ev.Rate.A, 1.556; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("A = %.9g, want %.9g", got, want)
	}
	if !ev.Rate.PassedMean {
		t.Error("mean gate should pass at this operating point")
	}
	if ev.Gate == nil {
		t.Fatal("delta gate missing from response")
	}
	if ev.Gate.CInt != 4 {
		t.Errorf("C_int = %d, want 4", ev.Gate.CInt)
	}
}

func TestEvaluateEndpoint_MeanOnly(t *testing.T) {
	router := newRouter()

	body := `{"R":20,"p":0.01,"tpr":0.85,"fpr":0.30,"C":4}`
	req := httptest.NewRequest(http.MethodPost, "/evaluate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var ev caproc.Evaluation
	if err := sonic.Unmarshal(rec.Body.Bytes(), &ev); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if ev.Gate != nil {
		t.Errorf("delta gate should be absent without a delta, got %+v", ev.Gate)
	}
	if ev.Rate.PassedMean {
		t.Error("mean gate should fail: A = 6.11 > C = 4")
	}
}

func TestEvaluateEndpoint_RejectsInvalidInput(t *testing.T) {
	router := newRouter()

	body := `{"R":-1,"p":0.01,"tpr":0.85,"fpr":0.07,"C":4}`
	req := httptest.NewRequest(http.MethodPost, "/evaluate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"field":"R"`) {
		t.Errorf("response should name the offending field: %s", rec.Body.String())
	}
}

func TestMissingFlags(t *testing.T) {
	nan := math.NaN()

	all := missingFlags([]flagValue{
		{"R", nan}, {"p", nan}, {"tpr", nan}, {"fpr", nan}, {"C", nan},
	})
	if got, want := strings.Join(all, ","), "R,p,tpr,fpr,C"; got != want {
		t.Errorf("missingFlags = %q, want %q (declaration order)", got, want)
	}

	// Zero is a legitimate value, not an unset marker.
	some := missingFlags([]flagValue{
		{"R", 20}, {"p", 0}, {"tpr", nan}, {"fpr", 0.07}, {"C", 4},
	})
	if got, want := strings.Join(some, ","), "tpr"; got != want {
		t.Errorf("missingFlags = %q, want %q", got, want)
	}

	if missing := missingFlags([]flagValue{{"R", 20}, {"C", 0}}); len(missing) != 0 {
		t.Errorf("missingFlags reported set flags as missing: %v", missing)
	}
}

func TestHealthz(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
