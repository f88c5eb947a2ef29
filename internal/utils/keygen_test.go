package utils

import (
	"strings"
	"testing"
)

func TestGenerateShopKeyFormat(t *testing.T) {
	key, err := GenerateShopKey()
	if err != nil {
		t.Fatalf("GenerateShopKey() error: %v", err)
	}
	if !strings.HasPrefix(key, "rf_live_") {
		t.Fatalf("key %q does not carry the rf_live_ prefix", key)
	}
	if len(key) != len("rf_live_")+64 {
		t.Fatalf("key length = %d, want %d", len(key), len("rf_live_")+64)
	}
}

func TestGeneratedKeysAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := GenerateAPIKey("rf_test")
		if err != nil {
			t.Fatalf("GenerateAPIKey() error: %v", err)
		}
		if seen[key] {
			t.Fatalf("duplicate key generated: %q", key)
		}
		seen[key] = true
	}
}
