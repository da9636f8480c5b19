package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestJWTSignVerify(t *testing.T) {
	j := JWT{Secret: []byte("s3cret"), Issuer: "falcon9-predictor", TokenTTL: time.Hour}
	tok, exp, err := j.Sign("ops", "predict")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry in the past: %v", exp)
	}
	claims, err := j.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "ops" || claims.Scope != "predict" {
		t.Fatalf("claims=%+v", claims)
	}

	other := JWT{Secret: []byte("other"), Issuer: "falcon9-predictor"}
	if _, err := other.Verify(tok); err == nil {
		t.Fatalf("expected signature error")
	}
	wrongIssuer := JWT{Secret: []byte("s3cret"), Issuer: "someone-else"}
	if _, err := wrongIssuer.Verify(tok); err == nil {
		t.Fatalf("expected issuer error")
	}
	if _, _, err := (JWT{}).Sign("ops", ""); err != ErrNoSecret {
		t.Fatalf("err=%v want ErrNoSecret", err)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bearer abc", "abc"},
		{"bearer  abc ", "abc"},
		{"Basic abc", ""},
		{"abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := bearerToken(tt.in); got != tt.want {
			t.Fatalf("bearerToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRequireBearer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	j := JWT{Secret: []byte("s3cret")}
	r := gin.New()
	r.Use(RequireBearer(j, nil))
	r.GET("/api/v1/options", func(c *gin.Context) {
		claims, _ := ClaimsFromContext(c)
		c.String(http.StatusOK, claims.Subject)
	})
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/options", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token status=%d want=401", w.Code)
	}

	tok, _, err := j.Sign("ops", "")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/options", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "ops" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
}
