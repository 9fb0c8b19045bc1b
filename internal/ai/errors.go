// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// fallbackMessage is shown when the provider gives no usable error text.
const fallbackMessage = "the AI provider returned an error"

// APIError is a non-2xx response from a provider. Message carries the
// provider's own explanation when it sent one.
type APIError struct {
	Provider string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fallbackMessage
	}
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Status, msg)
}

// UserMessage is the text to show an end user.
func (e *APIError) UserMessage() string {
	if e.Message == "" {
		return fallbackMessage
	}
	return e.Message
}

// errorFromBody builds an APIError, extracting the message from the common
// {"error":{"message":...}}, {"error":"..."} and {"message":...} shapes.
func errorFromBody(provider string, status int, body []byte) *APIError {
	e := &APIError{Provider: provider, Status: status}

	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &nested) == nil && nested.Error.Message != "" {
		e.Message = nested.Error.Message
		return e
	}

	var flat struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &flat) == nil {
		if flat.Message != "" {
			e.Message = flat.Message
		} else {
			e.Message = flat.Error
		}
	}
	e.Message = strings.TrimSpace(e.Message)
	return e
}
