package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/*", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		path   string
		header map[string]string
		want   int
	}{
		{"disabled", Config{}, "/scenes", nil, 200},
		{"missing key", Config{ApiKey: "s3cret"}, "/scenes", nil, 401},
		{"wrong key", Config{ApiKey: "s3cret"}, "/scenes", map[string]string{HeaderName: "nope"}, 401},
		{"header key", Config{ApiKey: "s3cret"}, "/scenes", map[string]string{HeaderName: "s3cret"}, 200},
		{"bearer key", Config{ApiKey: "s3cret"}, "/scenes", map[string]string{"Authorization": "Bearer s3cret"}, 200},
		{"skipped path", Config{ApiKey: "s3cret", Skip: []string{"/metrics"}}, "/metrics", nil, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			resp, err := newApp(tt.cfg).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
