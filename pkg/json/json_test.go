package json

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type sample struct {
	Name    string    `json:"name"`
	Score   int       `json:"score"`
	Ratio   float64   `json:"ratio"`
	Tags    []string  `json:"tags"`
	Created time.Time `json:"created"`
}

func TestStructRoundTrip(t *testing.T) {
	in := sample{
		Name:    "speech",
		Score:   84,
		Ratio:   25.7,
		Tags:    []string{"a", "b"},
		Created: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	}

	msg, err := ToStruct(in)
	if err != nil {
		t.Fatalf("ToStruct() returned error: %v", err)
	}
	if got := msg.Fields["name"].GetStringValue(); got != "speech" {
		t.Fatalf("unexpected name field: %q", got)
	}

	var out sample
	if err := FromStruct(msg, &out); err != nil {
		t.Fatalf("FromStruct() returned error: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestToStructRejectsNonObjects(t *testing.T) {
	if _, err := ToStruct([]int{1, 2}); err == nil {
		t.Fatalf("expected an error for a JSON array")
	}
	if err := FromStruct(nil, &sample{}); err == nil {
		t.Fatalf("expected an error for a nil message")
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, 404, errors.New("report not found"))

	if rec.Code != 404 {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"report not found"}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestParseJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","score":3}`))
	var out sample
	if err := ParseJSON(req, &out); err != nil {
		t.Fatalf("ParseJSON() returned error: %v", err)
	}
	if out.Name != "x" || out.Score != 3 {
		t.Fatalf("unexpected decode result %+v", out)
	}
}
