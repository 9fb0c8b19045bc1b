// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestLoggerRecordsRequests(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantLevel string
		wantCode  float64
		wantBytes float64
	}{
		{
			name: "implicit 200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"parts":[]}`))
			},
			wantLevel: "INFO", wantCode: 200, wantBytes: 12,
		},
		{
			name: "client error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeError(w, "validation failed", http.StatusUnprocessableEntity)
			},
			wantLevel: "INFO", wantCode: 422, wantBytes: 30,
		},
		{
			name: "upstream failure logs at warn",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantLevel: "WARN", wantCode: 502, wantBytes: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/prompts/split", nil)
			req.RemoteAddr = "192.0.2.1:4000"
			Logger(tt.handler).ServeHTTP(rr, req)

			var entry map[string]any
			if err := json.Unmarshal(logs.Bytes(), &entry); err != nil {
				t.Fatalf("decode log %q: %v", logs.String(), err)
			}
			if entry["msg"] != "http request" || entry["level"] != tt.wantLevel {
				t.Errorf("msg/level: got %v/%v", entry["msg"], entry["level"])
			}
			if entry["status"] != tt.wantCode || entry["bytes"] != tt.wantBytes {
				t.Errorf("status/bytes: got %v/%v, want %v/%v", entry["status"], entry["bytes"], tt.wantCode, tt.wantBytes)
			}
			if entry["method"] != http.MethodPost || entry["path"] != "/api/prompts/split" || entry["remote"] != "192.0.2.1:4000" {
				t.Errorf("request attrs: %v", entry)
			}
			if _, ok := entry["workspace"]; ok {
				t.Error("workspace must be omitted when no loader ran")
			}
			if rr.Code != int(tt.wantCode) {
				t.Errorf("response status: got %d", rr.Code)
			}
		})
	}
}

func TestLoggerIncludesWorkspace(t *testing.T) {
	logs := captureLogs(t)
	ws := uuid.New()

	chain := Logger(LoadWorkspace(&fakeSessions{id: ws}, &fakeToucher{}, &fakeCleaner{})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
	))
	chain.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/history", nil))

	var entry map[string]any
	if err := json.Unmarshal(logs.Bytes(), &entry); err != nil {
		t.Fatalf("decode log %q: %v", logs.String(), err)
	}
	if entry["workspace"] != ws.String() {
		t.Errorf("workspace: got %v, want %s", entry["workspace"], ws)
	}
}

func TestResponseWriterKeepsFirstStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError)
	rw.Write([]byte("ab"))
	rw.Write([]byte("cde"))

	if rw.statusCode != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rw.statusCode)
	}
	if rw.bytes != 5 {
		t.Errorf("bytes: got %d, want 5", rw.bytes)
	}
}
