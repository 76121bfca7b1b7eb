package identity

import (
	"errors"
	"testing"

	"github.com/reelog/reelog-backend/pkg/apperror"
)

func TestActorID(t *testing.T) {
	cases := []struct {
		provider Provider
		uid      string
		want     string
		wantErr  bool
	}{
		{ProviderGitHub, "1", "github_1", false},
		{ProviderKakao, "98765", "kakao_98765", false},
		{ProviderGoogle, "abc123", "google_abc123", false},
		{Provider("naver"), "1", "", true},
		{Provider(""), "1", "", true},
		{ProviderGitHub, "", "", true},
	}

	for _, tc := range cases {
		got, err := ActorID(tc.provider, tc.uid)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ActorID(%q, %q): expected error", tc.provider, tc.uid)
			}
			if !errors.Is(err, apperror.ErrUnauthorized) {
				t.Fatalf("ActorID(%q, %q): error %v is not ErrUnauthorized", tc.provider, tc.uid, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ActorID(%q, %q): %v", tc.provider, tc.uid, err)
		}
		if got != tc.want {
			t.Fatalf("ActorID(%q, %q) = %q, want %q", tc.provider, tc.uid, got, tc.want)
		}
	}
}

func TestActorIDDeterministic(t *testing.T) {
	a, err := ActorID(ProviderGitHub, "42")
	if err != nil {
		t.Fatalf("ActorID: %v", err)
	}
	b, err := ActorID(ProviderGitHub, "42")
	if err != nil {
		t.Fatalf("ActorID: %v", err)
	}
	if a != b {
		t.Fatalf("expected deterministic result, got %q and %q", a, b)
	}
}
