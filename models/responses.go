// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// APIResponse is the envelope returned by every JSON API endpoint.
// Message is always user-facing; internal error detail never leaves the
// handler layer.
type APIResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

// NewAPIResponse builds a stamped response envelope.
func NewAPIResponse(success bool, message string, data any) APIResponse {
	return APIResponse{
		Success:   success,
		Message:   message,
		Timestamp: time.Now(),
		Data:      data,
	}
}
