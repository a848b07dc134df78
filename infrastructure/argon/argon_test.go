package argon

import "testing"

func TestHashAndVerifyToken(t *testing.T) {
	hash, err := HashToken("s3cret-admin-token", nil)
	if err != nil {
		t.Fatalf("HashToken: %v", err)
	}

	ok, err := VerifyToken("s3cret-admin-token", hash)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if !ok {
		t.Fatalf("expected matching token to verify")
	}

	ok, err = VerifyToken("wrong-token", hash)
	if err != nil {
		t.Fatalf("VerifyToken mismatch: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatched token to fail")
	}
}

func TestHashTokenRejectsBlank(t *testing.T) {
	if _, err := HashToken("   ", nil); err == nil {
		t.Fatalf("expected error for blank token")
	}
}

func TestVerifyTokenRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{"", "plainstring", "$argon2i$v=19$m=1,t=1,p=1$aa$bb"} {
		if _, err := VerifyToken("x", encoded); err == nil {
			t.Fatalf("expected error for hash %q", encoded)
		}
	}
}
