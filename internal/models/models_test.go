// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"testing"
	"time"
)

func TestMaskKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"short", "••••••••"},
		{"sk-proj-abcdefgh1234", "••••••••1234"},
	}
	for _, tt := range tests {
		if got := MaskKey(tt.in); got != tt.want {
			t.Errorf("MaskKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if tt.in != "" && !IsMasked(MaskKey(tt.in)) {
			t.Errorf("IsMasked(MaskKey(%q)) = false", tt.in)
		}
	}
	if IsMasked("sk-real-key") {
		t.Error("real key reported as masked")
	}
}

func TestAIConfigRoundTrip(t *testing.T) {
	cfg := AIConfig{Provider: "deepseek", Model: "deepseek-chat", OpenAIAPIKey: "sk-1234567890", DeepSeekAPIKey: "ds-abcdefghij"}

	got := AIConfigFrom(cfg.Settings())
	if got != cfg {
		t.Errorf("round trip: got %+v, want %+v", got, cfg)
	}
	if got.APIKey("deepseek") != "ds-abcdefghij" || got.APIKey("gemini") != "" {
		t.Error("APIKey lookup mismatch")
	}

	m := cfg.Masked()
	if strings.Contains(m.OpenAIAPIKey, "sk-") || !strings.HasSuffix(m.DeepSeekAPIKey, "ghij") {
		t.Errorf("unexpected masked config: %+v", m)
	}
	if cfg.OpenAIAPIKey != "sk-1234567890" {
		t.Error("Masked must not modify the receiver")
	}
}

func TestWorkspaceSettingsGet(t *testing.T) {
	s := WorkspaceSettings{"a": "1", "b": ""}
	if s.Get("a", "x") != "1" || s.Get("b", "x") != "x" || s.Get("c", "x") != "x" {
		t.Errorf("unexpected Get results")
	}
}

func TestHistoryEntry(t *testing.T) {
	for _, typ := range []string{HistoryWebsite, HistoryEsoteric, HistoryAds} {
		if !ValidHistoryType(typ) {
			t.Errorf("%q should be valid", typ)
		}
	}
	if ValidHistoryType("video") {
		t.Error("unknown type accepted")
	}

	e := PromptHistoryEntry{Type: HistoryWebsite, Date: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)}
	if got := e.Filename(); got != "website-prompt-20260304-050607.txt" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestGeneratedImageIsArchived(t *testing.T) {
	key := "images/a.png"
	empty := ""
	if (&GeneratedImage{}).IsArchived() || (&GeneratedImage{ArchiveKey: &empty}).IsArchived() {
		t.Error("image without key reported archived")
	}
	if !(&GeneratedImage{ArchiveKey: &key}).IsArchived() {
		t.Error("archived image not reported")
	}
}
