package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"storespark/internal/core/auth"
	"storespark/internal/domain"
	resp "storespark/internal/transport/http/response"
)

func newAuthRig(t *testing.T, requireRole domain.Role) (*gin.Engine, *auth.JWTer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	j := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	r := gin.New()
	r.GET("/probe", AuthJWT(j, requireRole), func(c *gin.Context) {
		c.JSON(http.StatusOK, resp.OK(gin.H{
			"userId": c.GetString("userId"),
			"role":   c.GetString("role"),
		}))
	})
	return r, j
}

func doProbe(t *testing.T, r *gin.Engine, token string) resp.Resp {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("http status = %d", w.Code)
	}
	var out resp.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestAuthJWTMissingToken(t *testing.T) {
	r, _ := newAuthRig(t, "")
	out := doProbe(t, r, "")
	if out.Code != resp.CodeUnauthorized {
		t.Fatalf("code = %d, want %d", out.Code, resp.CodeUnauthorized)
	}
}

func TestAuthJWTBadToken(t *testing.T) {
	r, _ := newAuthRig(t, "")
	out := doProbe(t, r, "not-a-jwt")
	if out.Code != resp.CodeUnauthorized {
		t.Fatalf("code = %d, want %d", out.Code, resp.CodeUnauthorized)
	}
}

func TestAuthJWTPassesClaimsThrough(t *testing.T) {
	r, j := newAuthRig(t, "")
	tok, err := j.Issue("user1", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	out := doProbe(t, r, tok)
	if out.Code != resp.CodeOK {
		t.Fatalf("code = %d, msg = %q", out.Code, out.Msg)
	}
	data := out.Data.(map[string]any)
	if data["userId"] != "user1" || data["role"] != "user" {
		t.Fatalf("claims not propagated: %v", data)
	}
}

func TestAuthJWTWrongRoleGetsHomePath(t *testing.T) {
	r, j := newAuthRig(t, domain.RoleAdmin)
	tok, err := j.Issue("storeowner1", domain.RoleOwner)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	out := doProbe(t, r, tok)
	if out.Code != resp.CodeForbidden {
		t.Fatalf("code = %d, want %d", out.Code, resp.CodeForbidden)
	}
	data, ok := out.Data.(map[string]any)
	if !ok {
		t.Fatalf("forbidden payload missing: %v", out.Data)
	}
	if data["homePath"] != domain.RoleOwner.HomePath() {
		t.Fatalf("homePath = %v", data["homePath"])
	}
}

func TestAuthJWTRightRolePasses(t *testing.T) {
	r, j := newAuthRig(t, domain.RoleAdmin)
	tok, err := j.Issue("admin1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	out := doProbe(t, r, tok)
	if out.Code != resp.CodeOK {
		t.Fatalf("code = %d, msg = %q", out.Code, out.Msg)
	}
}
