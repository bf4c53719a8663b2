package knowledge

import (
	"testing"
)

func TestKeywords(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "stop words removed",
			query: "How do I reset my password?",
			want:  []string{"reset", "password?"},
		},
		{
			name:  "all stop words falls back to unfiltered set",
			query: "What is this",
			want:  []string{"what", "is", "this"},
		},
		{
			name:  "empty query yields empty set",
			query: "",
			want:  nil,
		},
		{
			name:  "duplicates collapse",
			query: "vpn vpn VPN",
			want:  []string{"vpn"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Keywords(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Keywords(%q) = %v, want %v", tt.query, got, tt.want)
			}
			for _, kw := range tt.want {
				if _, ok := got[kw]; !ok {
					t.Errorf("Keywords(%q) missing %q (got %v)", tt.query, kw, got)
				}
			}
		})
	}
}

func TestScore(t *testing.T) {
	itText := "Reset your password via the portal."
	policyText := "Vacation requests require 2 weeks notice"

	tests := []struct {
		name  string
		query string
		text  string
		want  int
	}{
		{
			name:  "matching document",
			query: "How do I reset my password",
			text:  itText,
			want:  2, // reset, password
		},
		{
			name:  "non-matching document",
			query: "How do I reset my password",
			text:  policyText,
			want:  0,
		},
		{
			name:  "empty query scores zero",
			query: "",
			text:  itText,
			want:  0,
		},
		{
			name:  "empty document scores zero",
			query: "reset password",
			text:  "",
			want:  0,
		},
		{
			name:  "presence not frequency",
			query: "notice",
			text:  "notice notice notice notice",
			want:  1,
		},
		{
			name:  "substring matching is deliberate",
			query: "pass",
			text:  itText,
			want:  1, // "pass" matches inside "password"
		},
		{
			name:  "case insensitive",
			query: "RESET Password",
			text:  itText,
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.query, tt.text)
			if got != tt.want {
				t.Errorf("Score(%q, %q) = %d, want %d", tt.query, tt.text, got, tt.want)
			}
		})
	}
}
