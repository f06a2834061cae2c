package llmjson

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type feedback struct {
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

type point struct {
	Claim string `json:"claim"`
}

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain", `{"strengths":["clear"],"improvements":["pace"]}`},
		{"fenced", "```json\n{\"strengths\":[\"clear\"],\"improvements\":[\"pace\"]}\n```"},
		{"with prose", "Here is my feedback:\n{\"strengths\":[\"clear\"],\"improvements\":[\"pace\"]}\nGood luck!"},
	}

	want := feedback{Strengths: []string{"clear"}, Improvements: []string{"pace"}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got feedback
			if err := ExtractObject(tc.text, &got); err != nil {
				t.Fatalf("ExtractObject() returned error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractObjectWithoutJSON(t *testing.T) {
	var got feedback
	if err := ExtractObject("I cannot help with that.", &got); !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
}

func TestExtractArray(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain", `[{"claim":"a"},{"claim":"b"}]`},
		{"fenced", "```\n[{\"claim\":\"a\"},{\"claim\":\"b\"}]\n```"},
		{"broken array falls back to objects", `Claims: [{"claim":"a"}, {"claim":"b"},]`},
		{"objects without brackets", `1. {"claim":"a"} 2. {"claim":"b"}`},
	}

	want := []point{{Claim: "a"}, {Claim: "b"}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got []point
			if err := ExtractArray(tc.text, &got); err != nil {
				t.Fatalf("ExtractArray() returned error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractArrayWithoutJSON(t *testing.T) {
	var got []point
	if err := ExtractArray("nothing to see", &got); !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
}
