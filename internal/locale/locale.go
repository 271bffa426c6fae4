package locale

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locales lists the supported language tags.
var Locales = []string{"zh", "en"}

// Default is used when no preference can be derived from the request.
const Default = "en"

// IsLocale reports whether value is a supported locale tag.
func IsLocale(value string) bool {
	for _, l := range Locales {
		if l == value {
			return true
		}
	}
	return false
}

// Preferred maps an Accept-Language header value to a supported locale.
// Any mention of Chinese wins; everything else resolves to English.
func Preferred(acceptLanguage string) string {
	if acceptLanguage == "" {
		return Default
	}
	if strings.Contains(strings.ToLower(acceptLanguage), "zh") {
		return "zh"
	}
	return "en"
}

// Redirect is a Fiber middleware that prefixes page paths with a locale
// segment. API routes, the health check, and asset paths (anything with a
// dot) pass through untouched.
func Redirect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if strings.HasPrefix(path, "/api") || path == "/health" || strings.Contains(path, ".") {
			return c.Next()
		}

		segments := strings.Split(strings.Trim(path, "/"), "/")
		if len(segments) > 0 && IsLocale(segments[0]) {
			return c.Next()
		}

		preferred := Preferred(c.Get(fiber.HeaderAcceptLanguage))
		target := "/" + preferred
		if path != "/" {
			target += path
		}
		return c.Redirect(target, fiber.StatusTemporaryRedirect)
	}
}
