package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/portal-identity/internal/domain"
)

const testSecret = "test-secret"

func testEmployee() *domain.Employee {
	return &domain.Employee{
		ID:    "emp-1",
		Email: "hong@company.com",
		Grade: domain.GradeTopAdministrator,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, 24*time.Hour)
	employee := testEmployee()

	token, issued, err := tm.Issue(employee, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned empty token")
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != employee.ID {
		t.Errorf("subject = %q, want %q", claims.Subject, employee.ID)
	}
	if claims.Email != employee.Email {
		t.Errorf("email = %q, want %q", claims.Email, employee.Email)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want %q", claims.Role, domain.RoleAdmin)
	}
	if claims.Grade != employee.Grade {
		t.Errorf("grade = %q, want %q", claims.Grade, employee.Grade)
	}
	if claims.SessionID() != issued.SessionID() {
		t.Errorf("session id = %q, want %q", claims.SessionID(), issued.SessionID())
	}
	if !claims.ExpiresAt.Time.Equal(issued.ExpiresAt.Time) {
		t.Errorf("expiresAt = %v, want %v", claims.ExpiresAt.Time, issued.ExpiresAt.Time)
	}
}

func TestParse_Expired(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	claims := &Claims{
		Email: "hong@company.com",
		Role:  domain.RoleAdmin,
		Grade: domain.GradeTopAdministrator,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "emp-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := tm.Parse(signed); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Parse expired token: got %v, want ErrTokenExpired", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	for _, input := range []string{"", "garbage", "a.b.c"} {
		if _, err := tm.Parse(input); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Parse(%q): got %v, want ErrTokenMalformed", input, err)
		}
	}
}

func TestParse_WrongSignature(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	token, _, err := other.Issue(testEmployee(), domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := tm.Parse(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("Parse with wrong signature: got %v, want ErrTokenMalformed", err)
	}
}
