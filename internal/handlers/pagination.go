package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// queryInt reads an optional integer query parameter. A missing value yields
// fallback; a malformed one yields ok=false.
func queryInt(c *fiber.Ctx, key string, fallback int) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
