package org

import (
	"errors"
	"testing"

	"github.com/hitoshi/orgman/internal/model"
)

// assertAPIError はerrが指定コードのAPIErrorであることを検証する。
func assertAPIError(t *testing.T, err error, code, message string) {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError %s", err, code)
	}
	if apiErr.Code != code {
		t.Errorf("code = %q, want %q", apiErr.Code, code)
	}
	if message != "" && apiErr.Message != message {
		t.Errorf("message = %q, want %q", apiErr.Message, message)
	}
}

func strPtr(s string) *string { return &s }
