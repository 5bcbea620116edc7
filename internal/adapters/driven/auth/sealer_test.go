package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/custodia-labs/cma-core/internal/core/domain"
)

func newTestSealer(t *testing.T) *Sealer {
	t.Helper()
	s, err := NewSealer([]byte("01234567890123456789012345678901"))
	if err != nil {
		t.Fatalf("NewSealer: %v", err)
	}
	return s
}

func TestSealer_RoundTrip(t *testing.T) {
	sealer := newTestSealer(t)
	original := &domain.TokenPair{
		AccessToken:  "at-123",
		RefreshToken: "rt-456",
		ExpiresAt:    time.Date(2026, 10, 16, 13, 0, 0, 0, time.UTC),
	}

	sealed, err := sealer.Seal(original)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	opened, err := sealer.Open(sealed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if opened.AccessToken != original.AccessToken || opened.RefreshToken != original.RefreshToken {
		t.Errorf("tokens differ: got %+v", opened)
	}
	if !opened.ExpiresAt.Equal(original.ExpiresAt) {
		t.Errorf("ExpiresAt: got %v, want %v", opened.ExpiresAt, original.ExpiresAt)
	}
}

func TestSealer_DifferentCiphertextEachTime(t *testing.T) {
	sealer := newTestSealer(t)
	token := &domain.TokenPair{AccessToken: "same"}

	a, _ := sealer.Seal(token)
	b, _ := sealer.Seal(token)
	if a == b {
		t.Error("expected a fresh nonce per seal")
	}
}

func TestSealer_OpenFailures(t *testing.T) {
	sealer := newTestSealer(t)
	sealed, err := sealer.Seal(&domain.TokenPair{AccessToken: "at"})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	other, err := NewSealer([]byte("abcdefghijabcdefghijabcdefghijab"))
	if err != nil {
		t.Fatalf("NewSealer: %v", err)
	}

	tampered := []byte(sealed)
	mid := len(tampered) / 2
	if tampered[mid] == 'A' {
		tampered[mid] = 'B'
	} else {
		tampered[mid] = 'A'
	}

	tests := []struct {
		name   string
		sealer *Sealer
		value  string
	}{
		{"not base64", sealer, "***"},
		{"too short", sealer, "AQID"},
		{"tampered", sealer, string(tampered)},
		{"other key", other, sealed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.sealer.Open(tt.value); !errors.Is(err, domain.ErrUnauthenticated) {
				t.Errorf("expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}

func TestSealer_UnsupportedVersion(t *testing.T) {
	sealer := newTestSealer(t)
	blob := make([]byte, 1+nonceSize+sealer.gcm.Overhead()+4)
	blob[0] = 0x02

	if _, err := sealer.open(blob); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestNewSealer_InvalidKeySize(t *testing.T) {
	if _, err := NewSealer([]byte("short")); !errors.Is(err, ErrInvalidKeySize) {
		t.Errorf("expected ErrInvalidKeySize, got %v", err)
	}
}
