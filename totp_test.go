package authapi

import (
	"strings"
	"testing"
	"time"
)

func defaultTOTPTestManager() *totpManager {
	return newTOTPManager(TOTPConfig{
		Issuer:    "AuthAPI",
		Digits:    6,
		Period:    30,
		Algorithm: "SHA1",
		Skew:      1,
	})
}

func TestTOTPGenerateSecretLengthAndEncoding(t *testing.T) {
	m := defaultTOTPTestManager()

	raw, encoded, err := m.GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret failed: %v", err)
	}
	if len(raw) != 20 {
		t.Fatalf("expected 20 secret bytes, got %d", len(raw))
	}
	if strings.Contains(encoded, "=") {
		t.Fatalf("expected unpadded base32, got %q", encoded)
	}

	decoded, err := m.DecodeSecret(encoded)
	if err != nil {
		t.Fatalf("DecodeSecret failed: %v", err)
	}
	if string(decoded) != string(raw) {
		t.Fatal("decoded secret does not match generated secret")
	}
}

func TestTOTPGenerateSecretIsRandom(t *testing.T) {
	m := defaultTOTPTestManager()

	_, first, err := m.GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret failed: %v", err)
	}
	_, second, err := m.GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret failed: %v", err)
	}
	if first == second {
		t.Fatal("consecutive secrets must differ")
	}
}

func TestTOTPProvisioningURIContents(t *testing.T) {
	m := defaultTOTPTestManager()

	uri := m.ProvisioningURI("JBSWY3DPEHPK3PXP", "alice@example.com")
	if !strings.HasPrefix(uri, "otpauth://totp/") {
		t.Fatalf("expected otpauth://totp/ prefix, got %q", uri)
	}
	for _, want := range []string{
		"secret=JBSWY3DPEHPK3PXP",
		"issuer=AuthAPI",
		"period=30",
		"digits=6",
		"algorithm=SHA1",
		"alice@example.com",
	} {
		if !strings.Contains(uri, want) {
			t.Fatalf("expected %q in provisioning URI, got %q", want, uri)
		}
	}
}

func TestTOTPVerifyAcceptsAdjacentStep(t *testing.T) {
	m := defaultTOTPTestManager()
	secret := []byte("12345678901234567890")
	issued := time.Unix(1234567890, 0)

	code, err := hotpCode(secret, issued.Unix()/30, 6, "SHA1")
	if err != nil {
		t.Fatalf("hotpCode failed: %v", err)
	}

	// Still inside the +-1 step tolerance 25 seconds later.
	ok, err := m.VerifyCode(secret, code, issued.Add(25*time.Second))
	if err != nil || !ok {
		t.Fatalf("expected code valid 25s after issue, ok=%v err=%v", ok, err)
	}

	// Two full steps later the code must be rejected.
	ok, err = m.VerifyCode(secret, code, issued.Add(301*time.Second))
	if err != nil {
		t.Fatalf("VerifyCode failed: %v", err)
	}
	if ok {
		t.Fatal("expected code rejected 301s after issue")
	}
}

func TestTOTPVerifyRejectsMalformedCodes(t *testing.T) {
	m := defaultTOTPTestManager()
	secret := []byte("12345678901234567890")
	now := time.Unix(1234567890, 0)

	for _, code := range []string{"", "12345", "1234567", "12a456", "abcdef"} {
		ok, err := m.VerifyCode(secret, code, now)
		if err != nil {
			t.Fatalf("malformed code %q returned error: %v", code, err)
		}
		if ok {
			t.Fatalf("malformed code %q was accepted", code)
		}
	}
}

func TestTOTPVerifyRejectsEmptySecret(t *testing.T) {
	m := defaultTOTPTestManager()

	if _, err := m.VerifyCode(nil, "123456", time.Now()); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestTOTPVerifyTrimsWhitespace(t *testing.T) {
	m := defaultTOTPTestManager()
	secret := []byte("12345678901234567890")
	now := time.Unix(1234567890, 0)

	code, err := hotpCode(secret, now.Unix()/30, 6, "SHA1")
	if err != nil {
		t.Fatalf("hotpCode failed: %v", err)
	}

	ok, err := m.VerifyCode(secret, " "+code+" ", now)
	if err != nil || !ok {
		t.Fatalf("expected whitespace-padded code accepted, ok=%v err=%v", ok, err)
	}
}
