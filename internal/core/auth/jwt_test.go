package auth_test

import (
	"testing"
	"time"

	"go-mpa-usercenter/internal/core/auth"
)

func TestIssueParseRoundTrip(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s1"), Issuer: "usercenter", TTL: time.Hour}

	tok, err := j.Issue("u-1", "ADMIN")
	if err != nil || tok == "" {
		t.Fatalf("issue: %v", err)
	}
	claims, err := j.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UID != "u-1" || claims.Role != "ADMIN" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s1"), Issuer: "usercenter", TTL: time.Hour}
	tok, _ := j.Issue("u-1", "USER")

	other := &auth.JWTer{Secret: []byte("s2"), Issuer: "usercenter", TTL: time.Hour}
	if _, err := other.Parse(tok); err == nil {
		t.Fatalf("token signed with different secret should not parse")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s1"), Issuer: "someone-else", TTL: time.Hour}
	tok, _ := j.Issue("u-1", "USER")

	mine := &auth.JWTer{Secret: []byte("s1"), Issuer: "usercenter", TTL: time.Hour}
	if _, err := mine.Parse(tok); err == nil {
		t.Fatalf("token with wrong issuer should not parse")
	}
}
