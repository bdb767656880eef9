package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ironguard/inventory-server/internal/core/domain"
)

var issuedAt = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func newCodec(t *testing.T, secret string, clock *fakeClock) *JWTCodec {
	t.Helper()
	c, err := NewJWTCodec(secret, clock.Now)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return c
}

func sampleClaims() domain.Claims {
	return domain.NewClaims(&domain.User{ID: "5a1c0e0e-0000-4000-8000-000000000001", Role: domain.RoleUser}, issuedAt)
}

func TestNewJWTCodec_EmptySecret(t *testing.T) {
	if _, err := NewJWTCodec("", nil); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}

func TestJWTCodec_RoundTripAcrossLifetime(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	codec := newCodec(t, "secret", clock)
	claims := sampleClaims()

	tok, err := codec.Encode(claims)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.Count(tok, ".") != 2 {
		t.Fatalf("expected three segments, got %q", tok)
	}

	for _, offset := range []time.Duration{0, time.Hour, 3*time.Hour + 59*time.Minute} {
		clock.t = issuedAt.Add(offset)
		got, err := codec.Decode(tok)
		if err != nil {
			t.Fatalf("decode at +%s: %v", offset, err)
		}
		if got.Subject != claims.Subject || got.Role != claims.Role || got.ExpiresAt.Unix() != claims.ExpiresAt.Unix() {
			t.Fatalf("claims changed at +%s: got %+v want %+v", offset, got, claims)
		}
	}
}

func TestJWTCodec_PayloadCarriesOnlySubRoleExp(t *testing.T) {
	codec := newCodec(t, "secret", &fakeClock{t: issuedAt})
	tok, err := codec.Encode(sampleClaims())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.Split(tok, ".")[1])
	if err != nil {
		t.Fatalf("decode payload segment: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("payload json: %v", err)
	}
	if len(payload) != 3 {
		t.Fatalf("expected exactly sub, role, exp; got %v", payload)
	}
	for _, k := range []string{"sub", "role", "exp"} {
		if _, ok := payload[k]; !ok {
			t.Fatalf("payload missing %q: %v", k, payload)
		}
	}
}

func TestJWTCodec_Expired(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	codec := newCodec(t, "secret", clock)
	tok, _ := codec.Encode(sampleClaims())

	clock.t = issuedAt.Add(domain.SessionLifetime + time.Second)
	_, err := codec.Decode(tok)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if Reason(err) != ReasonExpired {
		t.Fatalf("expected reason %q, got %q", ReasonExpired, Reason(err))
	}
}

func TestJWTCodec_WrongSecret(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	tok, _ := newCodec(t, "other-secret", clock).Encode(sampleClaims())

	_, err := newCodec(t, "secret", clock).Decode(tok)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if Reason(err) != ReasonSignature {
		t.Fatalf("expected reason %q, got %q", ReasonSignature, Reason(err))
	}
}

func TestJWTCodec_FlippedSignatureByte(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	codec := newCodec(t, "secret", clock)
	tok, _ := codec.Encode(sampleClaims())

	b := []byte(tok)
	i := strings.LastIndex(tok, ".") + 1
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}

	if _, err := codec.Decode(string(b)); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTCodec_RejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	codec := newCodec(t, "secret", clock)
	payload := jwt.MapClaims{"sub": "u", "role": "admin", "exp": issuedAt.Add(time.Hour).Unix()}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, payload).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign hs512: %v", err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, payload).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	for name, tok := range map[string]string{"HS512": hs512, "none": none} {
		if _, err := codec.Decode(tok); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestJWTCodec_MissingExpiry(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	codec := newCodec(t, "secret", clock)
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u", "role": "user"}).SignedString([]byte("secret"))

	if _, err := codec.Decode(tok); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTCodec_Malformed(t *testing.T) {
	codec := newCodec(t, "secret", &fakeClock{t: issuedAt})

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d", "!!!.@@@.###"} {
		_, err := codec.Decode(raw)
		if !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("%q: expected ErrInvalidToken, got %v", raw, err)
		}
	}
	if _, err := codec.Decode("not-a-token"); Reason(err) != ReasonMalformed {
		t.Fatalf("expected reason %q, got %q", ReasonMalformed, Reason(err))
	}
}
