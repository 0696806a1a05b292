package utils

import (
	"encoding/hex"
	"testing"
)

func TestGenerateSecureToken(t *testing.T) {
	tok, err := GenerateSecureToken()
	if err != nil {
		t.Fatalf("GenerateSecureToken returned error: %v", err)
	}
	if len(tok) != tokenByteLength*2 {
		t.Errorf("token length = %d, want %d", len(tok), tokenByteLength*2)
	}
	if _, err := hex.DecodeString(tok); err != nil {
		t.Errorf("token is not valid hex: %v", err)
	}

	other, err := GenerateSecureToken()
	if err != nil {
		t.Fatalf("GenerateSecureToken returned error: %v", err)
	}
	if tok == other {
		t.Error("two generated tokens were identical")
	}
}
