package main

import (
	"strings"
	"testing"

	"github.com/clubdeportivo/clubctl/internal/apiclient"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		arg     string
		want    int64
		wantErr bool
	}{
		{"7", 7, false},
		{"123456", 123456, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parseID(tt.arg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseID(%q): expected error, got %d", tt.arg, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseID(%q): unexpected error: %v", tt.arg, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseID(%q) = %d, want %d", tt.arg, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 40); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	long := strings.Repeat("a", 50)
	got := truncate(long, 40)
	if len([]rune(got)) > 40 {
		t.Errorf("truncate result too long: %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncate result missing ellipsis: %q", got)
	}
	// Accented names survive intact under the limit.
	if got := truncate("Categoría Juvenil", 40); got != "Categoría Juvenil" {
		t.Errorf("truncate accented = %q", got)
	}
}

func TestActionErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{
			name:     "unauthorized tells the user to log in again",
			err:      &apiclient.APIError{StatusCode: 401, Message: "Unauthenticated"},
			contains: "clubctl login",
		},
		{
			name:     "forbidden names the action",
			err:      &apiclient.APIError{StatusCode: 403, Message: "Forbidden"},
			contains: "insufficient permissions to delete category",
		},
		{
			name:     "not found",
			err:      &apiclient.APIError{StatusCode: 404, Message: "No query results"},
			contains: "resource not found",
		},
		{
			name:     "conflict message passes through verbatim",
			err:      &apiclient.APIError{StatusCode: 400, Message: "No se puede eliminar la categoría porque tiene atletas"},
			contains: "No se puede eliminar la categoría porque tiene atletas",
		},
		{
			name:     "other failures name the action",
			err:      &apiclient.APIError{StatusCode: 500, Message: "Server Error"},
			contains: "failed to delete category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := actionError(tt.err, "delete category")
			if got == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(got.Error(), tt.contains) {
				t.Errorf("actionError = %q, want substring %q", got.Error(), tt.contains)
			}
		})
	}
}

func TestLoadErrorRetryAffordance(t *testing.T) {
	serverErr := &apiclient.APIError{StatusCode: 500, Message: "Server Error"}
	got := loadError(serverErr, "list categories")
	if !strings.Contains(got.Error(), "re-run the command to retry") {
		t.Errorf("loadError missing retry hint: %q", got.Error())
	}

	authErr := &apiclient.APIError{StatusCode: 401, Message: "Unauthenticated"}
	got = loadError(authErr, "list categories")
	if strings.Contains(got.Error(), "re-run the command to retry") {
		t.Errorf("loadError should not suggest retrying an auth failure: %q", got.Error())
	}
}
