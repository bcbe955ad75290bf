package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/secret", AdminAuthMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"username": c.Locals("username")})
	})
	return app
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAdminAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret-unit-test-secret!!!")
	app := protectedApp()

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", 401},
		{"malformed header", "Token abc", 401},
		{"garbage token", "Bearer not-a-jwt", 401},
		{
			"wrong secret",
			"Bearer " + signToken(t, "some-other-secret", jwt.MapClaims{
				"username": "admin", "is_admin": true, "exp": time.Now().Add(time.Hour).Unix(),
			}),
			401,
		},
		{
			"expired token",
			"Bearer " + signToken(t, "unit-test-secret-unit-test-secret!!!", jwt.MapClaims{
				"username": "admin", "is_admin": true, "exp": time.Now().Add(-time.Hour).Unix(),
			}),
			401,
		},
		{
			"non-admin claims",
			"Bearer " + signToken(t, "unit-test-secret-unit-test-secret!!!", jwt.MapClaims{
				"username": "viewer", "is_admin": false, "exp": time.Now().Add(time.Hour).Unix(),
			}),
			403,
		},
		{
			"valid admin token",
			"Bearer " + signToken(t, "unit-test-secret-unit-test-secret!!!", jwt.MapClaims{
				"username": "admin", "is_admin": true, "exp": time.Now().Add(time.Hour).Unix(),
			}),
			200,
		},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/secret", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if resp.StatusCode != tc.status {
			t.Errorf("%s: status = %d, want %d", tc.name, resp.StatusCode, tc.status)
		}
		resp.Body.Close()
	}
}
