package fieldcrypt

import (
	"errors"
	"strings"
	"testing"
)

func newTestCipher(t *testing.T, secret string) *Cipher {
	t.Helper()
	c, err := New(secret)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}

func TestCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t, "graduate-tracker-test-key")

	inputs := []string{
		"Fluffy",
		"Peking University",
		"北京大学",
		" leading and trailing ",
		strings.Repeat("x", 4096),
		"emoji 🎓",
	}
	for _, in := range inputs {
		token, err := c.Encrypt(in)
		if err != nil {
			t.Fatalf("Encrypt(%q) error: %v", in, err)
		}
		if !strings.HasPrefix(token, tokenPrefix) {
			t.Errorf("token %q has no version prefix", token)
		}
		if strings.Contains(token, in) {
			t.Errorf("token leaks plaintext %q", in)
		}
		got, err := c.Decrypt(token)
		if err != nil {
			t.Fatalf("Decrypt() error: %v", err)
		}
		if got != in {
			t.Errorf("Decrypt(Encrypt(%q)) = %q", in, got)
		}
	}
}

func TestCipher_FreshNoncePerEncryption(t *testing.T) {
	c := newTestCipher(t, "graduate-tracker-test-key")

	a, err := c.Encrypt("same value")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Encrypt("same value")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two encryptions of the same plaintext produced identical tokens")
	}
}

func TestCipher_SharedSecretInterop(t *testing.T) {
	server := newTestCipher(t, "shared")
	client := newTestCipher(t, "shared")

	token, err := server.Encrypt("pet name")
	if err != nil {
		t.Fatal(err)
	}
	got, err := client.Decrypt(token)
	if err != nil {
		t.Fatalf("Decrypt() with same secret error: %v", err)
	}
	if got != "pet name" {
		t.Errorf("got %q, want %q", got, "pet name")
	}
}

func TestCipher_DecryptFailures(t *testing.T) {
	c := newTestCipher(t, "key-one")
	other := newTestCipher(t, "key-two")

	valid, err := c.Encrypt("Fluffy")
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := other.Encrypt("Fluffy")
	if err != nil {
		t.Fatal(err)
	}

	// Flip one character inside the payload
	payload := []byte(valid)
	i := len(payload) - 3
	if payload[i] == 'A' {
		payload[i] = 'B'
	} else {
		payload[i] = 'A'
	}

	tests := map[string]string{
		"empty":             "",
		"no prefix":         "U2FsdGVkX1+abc",
		"legacy cryptojs":   "U2FsdGVkX19Hn1Q8wYxQ8n1l9gN3cY3Zk1Y=",
		"bad base64":        tokenPrefix + "!!!",
		"too short":         tokenPrefix + "AAAA",
		"tampered":          string(payload),
		"wrong key":         foreign,
		"plaintext":         "Fluffy",
		"prefix only":       tokenPrefix,
		"truncated payload": valid[:len(valid)-10],
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := c.Decrypt(token)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Decrypt() err = %v, want ErrMalformed", err)
			}
			if got != "" {
				t.Errorf("Decrypt() returned %q on failure", got)
			}
		})
	}
}

func TestNew_EmptyKey(t *testing.T) {
	for _, secret := range []string{"", "   "} {
		if _, err := New(secret); !errors.Is(err, ErrEmptyKey) {
			t.Errorf("New(%q) err = %v, want ErrEmptyKey", secret, err)
		}
	}
}
