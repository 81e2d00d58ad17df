package auth

import (
	"testing"
	"time"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer([]byte("test-secret"), 15*time.Minute, 24*time.Hour)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := testIssuer()

	pair, err := issuer.IssuePair("user-123", "grace")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := issuer.Verify(pair.Access, TokenTypeAccess)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if claims.Subject != "user-123" || claims.Username != "grace" {
		t.Errorf("unexpected claims %+v", claims)
	}

	if _, err := issuer.Verify(pair.Refresh, TokenTypeRefresh); err != nil {
		t.Errorf("verify refresh: %v", err)
	}
}

func TestVerify_WrongType(t *testing.T) {
	issuer := testIssuer()
	pair, _ := issuer.IssuePair("user-123", "grace")

	if _, err := issuer.Verify(pair.Refresh, TokenTypeAccess); err == nil {
		t.Error("refresh token must not verify as access")
	}
	if _, err := issuer.Verify(pair.Access, TokenTypeRefresh); err == nil {
		t.Error("access token must not verify as refresh")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	pair, _ := testIssuer().IssuePair("user-123", "grace")

	other := NewTokenIssuer([]byte("other-secret"), 15*time.Minute, 24*time.Hour)
	if _, err := other.Verify(pair.Access, TokenTypeAccess); err == nil {
		t.Error("token signed with another secret must not verify")
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), -time.Minute, 24*time.Hour)
	access, err := issuer.IssueAccess("user-123", "grace")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Verify(access, TokenTypeAccess); err == nil {
		t.Error("expired token must not verify")
	}
}

func TestVerify_Garbage(t *testing.T) {
	if _, err := testIssuer().Verify("not.a.token", TokenTypeAccess); err == nil {
		t.Error("garbage must not verify")
	}
}
