package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/eduvox/backend/pkg/jwt"
	"github.com/eduvox/backend/services/fluency/entity"
)

func writeTranscript(t *testing.T, dir, name string, tr any) string {
	t.Helper()
	data, err := json.Marshal(tr)
	if err != nil {
		t.Fatalf("failed to marshal transcript: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write transcript: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAnalyzeJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, "talk.json", map[string]any{"text": "I think this works well"})
	target := filepath.Join(dir, "report.json")

	out, err := execute(t, "analyze", path, "--duration", "60", "--format", "json", "--output", target)
	if err != nil {
		t.Fatalf("analyze returned error: %v\n%s", err, out)
	}

	var report entity.FluencyReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("stdout is not a JSON report: %v\n%s", err, out)
	}
	if report.WordCount != 5 || report.RateCategory != entity.RateSlow || report.FluencyScore != 90 {
		t.Fatalf("unexpected report %+v", report)
	}

	saved, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("report was not saved: %v", err)
	}
	if string(saved) != out {
		t.Fatalf("saved report differs from printed report")
	}
}

func TestAnalyzeTextAndYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, "talk.json", map[string]any{"text": "I think this works well", "duration": 60})

	out, err := execute(t, "analyze", path, "--no-save")
	if err != nil {
		t.Fatalf("analyze returned error: %v", err)
	}
	if !strings.Contains(out, "Speech Analysis Report:") || !strings.Contains(out, "Your Score: 90/100") {
		t.Fatalf("unexpected text report:\n%s", out)
	}

	out, err = execute(t, "analyze", path, "--no-save", "-f", "yaml")
	if err != nil {
		t.Fatalf("analyze returned error: %v", err)
	}
	var decoded map[string]any
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("stdout is not YAML: %v", err)
	}
	if decoded["fluency_score"] != 90 || decoded["rate_category"] != "Slow" {
		t.Fatalf("unexpected yaml report %v", decoded)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	dir := t.TempDir()
	empty := writeTranscript(t, dir, "empty.json", map[string]any{"text": "   "})
	valid := writeTranscript(t, dir, "valid.json", map[string]any{"text": "hello"})

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing file", args: []string{"analyze", filepath.Join(dir, "nope.json"), "--no-save"}},
		{name: "empty transcript", args: []string{"analyze", empty, "--no-save"}},
		{name: "bad format", args: []string{"analyze", valid, "--no-save", "--format", "xml"}},
		{name: "bad threshold", args: []string{"analyze", valid, "--no-save", "--threshold", "0"}},
		{name: "no args", args: []string{"analyze"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestBatchKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.json", "b.json", "c.json", "d.json"} {
		paths = append(paths, writeTranscript(t, dir, name, map[string]any{"text": "I think this works well", "duration": 60}))
	}

	out, err := execute(t, append([]string{"batch", "-j", "2"}, paths...)...)
	if err != nil {
		t.Fatalf("batch returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(paths) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(paths), len(lines), out)
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, paths[i]+": score=90 ") {
			t.Fatalf("line %d out of order or wrong: %q", i, line)
		}
	}
}

func TestBatchReportsFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeTranscript(t, dir, "good.json", map[string]any{"text": "hello there"})
	bad := writeTranscript(t, dir, "bad.json", map[string]any{"text": ""})

	out, err := execute(t, "batch", good, bad)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 transcripts failed") {
		t.Fatalf("expected a batch failure, got %v", err)
	}
	if !strings.Contains(out, good+": score=") || !strings.Contains(out, bad+": error:") {
		t.Fatalf("unexpected batch output:\n%s", out)
	}
}

func TestToken(t *testing.T) {
	out, err := execute(t, "token", "--subject", "alice", "--secret", "s3cret", "--ttl", "1h")
	if err != nil {
		t.Fatalf("token returned error: %v", err)
	}

	subject, err := jwt.ParseUserID(context.Background(), strings.TrimSpace(out), "s3cret")
	if err != nil {
		t.Fatalf("minted token does not verify: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("expected alice, got %q", subject)
	}

	t.Setenv("JWT_SECRET", "")
	if _, err := execute(t, "token", "--subject", "alice"); err == nil {
		t.Fatalf("expected an error without a secret")
	}
}
