// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const websiteYAML = `project_name: Moonlit Tarot
business_description: Online tarot readings and astrology courses.
design_style: mystical
layout: single_page
color_scheme: purple_mystic
primary_font: cinzel
secondary_font: inter
animations: [fade_in, particles]
seo: [meta_tags, schema_org]
pages:
  - Home
  - Readings
  - Contact
`

const esotericYAML = `subject: a moon priestess
elements: [tarot, crystals, moon_phases]
mood: ethereal
color_scheme: black_gold
`

// run executes promptctl with args in an isolated HOME and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestBuild(t *testing.T) {
	form := writeFile(t, "site.yaml", websiteYAML)

	out, err := run(t, "", "build", "--form", form)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(out, "Moonlit Tarot") {
		t.Errorf("prompt missing project name:\n%s", out)
	}
	if strings.Contains(out, "----- part") {
		t.Error("a short prompt should print as a single part")
	}
}

func TestBuildSplitsJSON(t *testing.T) {
	out, err := run(t, websiteYAML, "build", "--form", "-", "--max", "200", "--format", "json")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var resp struct {
		Prompt string   `json:"prompt"`
		Parts  []string `json:"parts"`
		Count  int      `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if resp.Count < 2 || resp.Count != len(resp.Parts) {
		t.Errorf("expected several parts, got %d", resp.Count)
	}
	if strings.Join(resp.Parts, "") != resp.Prompt {
		t.Error("parts must concatenate to the prompt")
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{"missing form flag", "", []string{"build"}, "--form is required"},
		{"missing file", "", []string{"build", "--form", "/nonexistent/form.yaml"}, "open form"},
		{"empty form", "", []string{"build", "--form", "-"}, "is empty"},
		{"unknown key", "project_nam: x\n", []string{"build", "--form", "-"}, "decode form"},
		{"invalid form", "project_name: x\n", []string{"build", "--form", "-"}, "business_description"},
		{"bad max", websiteYAML, []string{"build", "--form", "-", "--max", "0"}, "--max must be positive"},
		{"bad format", websiteYAML, []string{"build", "--form", "-", "--format", "xml"}, "--format must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.stdin, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error: got %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestImagePrompt(t *testing.T) {
	out, err := run(t, esotericYAML, "image-prompt", "--form", "-")
	if err != nil {
		t.Fatalf("image-prompt: %v", err)
	}
	if !strings.Contains(out, "a moon priestess") {
		t.Errorf("prompt missing subject:\n%s", out)
	}

	_, err = run(t, "subject: x\n", "image-prompt", "--form", "-")
	if err == nil || !strings.Contains(err.Error(), "elements") {
		t.Errorf("expected elements error, got %v", err)
	}
}

func TestSplit(t *testing.T) {
	text := "First paragraph.\n\nSecond paragraph."
	path := writeFile(t, "prompt.txt", text)

	out, err := run(t, "", "split", "--max", "20", path)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if !strings.Contains(out, "----- part 1/2 -----\nFirst paragraph.") || !strings.Contains(out, "----- part 2/2 -----\nSecond paragraph.") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = run(t, text, "split", "--max", "20", "--format", "json")
	if err != nil {
		t.Fatalf("split stdin: %v", err)
	}
	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil || resp.Count != 2 {
		t.Errorf("stdin split: count=%d err=%v", resp.Count, err)
	}
}

func TestSplitMaxFromEnv(t *testing.T) {
	t.Setenv("PROMPTCTL_MAX", "20")

	out, err := run(t, "First paragraph.\n\nSecond paragraph.", "split", "--format", "json")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	var resp struct {
		Count int `json:"count"`
	}
	json.Unmarshal([]byte(out), &resp)
	if resp.Count != 2 {
		t.Errorf("PROMPTCTL_MAX should apply, got %d parts", resp.Count)
	}
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "promptctl.yaml", "max: 20\nformat: json\n")

	out, err := run(t, "First paragraph.\n\nSecond paragraph.", "split", "--config", cfg)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if !strings.Contains(out, `"count": 2`) {
		t.Errorf("config file values should apply:\n%s", out)
	}

	// Flags win over the config file.
	out, err = run(t, "First paragraph.\n\nSecond paragraph.", "split", "--config", cfg, "--max", "100")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if !strings.Contains(out, `"count": 1`) {
		t.Errorf("--max should override the config file:\n%s", out)
	}

	_, err = run(t, "", "split", "--config", "/nonexistent/promptctl.yaml")
	if err == nil {
		t.Error("a missing explicit config file should fail")
	}
}

func TestCatalog(t *testing.T) {
	out, err := run(t, "", "catalog")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	for _, name := range []string{"design_styles", "fonts", "image_sizes"} {
		if !strings.Contains(out, name) {
			t.Errorf("catalog list missing %s:\n%s", name, out)
		}
	}

	out, err = run(t, "", "catalog", "image_qualities", "--format", "json")
	if err != nil {
		t.Fatalf("catalog image_qualities: %v", err)
	}
	var c struct {
		Name    string `json:"name"`
		Options []struct {
			Value string `json:"value"`
		} `json:"options"`
	}
	if err := json.Unmarshal([]byte(out), &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Name != "image_qualities" || len(c.Options) != 2 {
		t.Errorf("unexpected catalog: %+v", c)
	}

	if _, err := run(t, "", "catalog", "nope"); err == nil {
		t.Error("unknown catalog should fail")
	}
}
