package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func sessionToken(t *testing.T, key []byte, userID int, login string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"login":   login,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// Downstream handlers read the user id under the "userID" context key; this
// pins the middleware to that single convention.
func TestAuthMiddleware_PopulatesUserContext(t *testing.T) {
	t.Parallel()

	env := &Authenv{JWTkey: []byte("test-key")}

	var gotID int
	var gotLogin string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = r.Context().Value("userID").(int)
		gotLogin, _ = r.Context().Value("userLogin").(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: sessionToken(t, env.JWTkey, 7, "mara")})
	w := httptest.NewRecorder()

	env.AuthMiddleware(next).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}
	if gotID != 7 || gotLogin != "mara" {
		t.Fatalf("context not populated: id=%d login=%q", gotID, gotLogin)
	}
}

func TestAuthMiddleware_MissingCookieRedirects(t *testing.T) {
	t.Parallel()

	env := &Authenv{JWTkey: []byte("test-key")}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run without a session")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	w := httptest.NewRecorder()

	env.AuthMiddleware(next).ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status %d, want 303", w.Code)
	}
}

func TestAuthMiddleware_RejectsForeignSignature(t *testing.T) {
	t.Parallel()

	env := &Authenv{JWTkey: []byte("test-key")}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run with a foreign token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: sessionToken(t, []byte("other-key"), 7, "mara")})
	w := httptest.NewRecorder()

	env.AuthMiddleware(next).ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status %d, want 303", w.Code)
	}
}
