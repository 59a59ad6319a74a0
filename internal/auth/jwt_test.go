package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	username, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if username != "alice" {
		t.Errorf("ParseToken() = %q, want %q", username, "alice")
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ParseToken(token + "x"); err == nil {
		t.Error("expected error for tampered token")
	}
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	InitJWT("secret-one")
	token, err := GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	InitJWT("secret-two")
	if _, err := ParseToken(token); err == nil {
		t.Error("expected error for token signed with another secret")
	}
}
