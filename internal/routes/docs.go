package routes

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/JudoNutritionBack/internal/config"
)

//go:embed openapi.yaml
var openAPISpec []byte

var docsPage = template.Must(template.New("docs").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; }
pre { background: #f3f4f1; padding: 1rem; overflow: auto; }
</style>
</head>
<body>
<h1>{{ .Title }}</h1>
<p><a href="/docs/openapi.yaml">openapi.yaml</a></p>
<pre>{{ .Spec }}</pre>
</body>
</html>
`))

// Sent with every docs response; the pages are static and never framed.
var docsHeaders = map[string]string{
	fiber.HeaderCacheControl:        "no-store",
	fiber.HeaderXContentTypeOptions: "nosniff",
	fiber.HeaderXFrameOptions:       "DENY",
	"Content-Security-Policy":       "default-src 'none'; style-src 'unsafe-inline'",
	"Referrer-Policy":               "no-referrer",
	"X-Robots-Tag":                  "noindex",
}

// registerDocsRoutes serves the OpenAPI description when docs are enabled
// for a development build.
func registerDocsRoutes(r fiber.Router, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}

	var page bytes.Buffer
	err := docsPage.Execute(&page, struct{ Title, Spec string }{
		Title: "Judo Nutrition API",
		Spec:  string(openAPISpec),
	})
	if err != nil {
		return fmt.Errorf("render docs page: %w", err)
	}
	html := page.Bytes()

	serve := func(contentType string, body []byte) fiber.Handler {
		return func(c *fiber.Ctx) error {
			for k, v := range docsHeaders {
				c.Set(k, v)
			}
			c.Set(fiber.HeaderContentType, contentType)
			return c.Send(body)
		}
	}

	r.Get("/docs", serve(fiber.MIMETextHTMLCharsetUTF8, html))
	r.Get("/docs/", serve(fiber.MIMETextHTMLCharsetUTF8, html))
	r.Get("/docs/openapi.yaml", serve("application/yaml; charset=utf-8", openAPISpec))
	return nil
}
