package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tradepost/internal/search"
)

// queryParams lifts the raw query string into search.Params, preserving the
// difference between an absent key and a key supplied blank.
func queryParams(c *fiber.Ctx) search.Params {
	q := c.Queries()
	p := search.Params{}
	if v, ok := q["name"]; ok {
		p.Name = &v
	}
	if v, ok := q["min_price"]; ok {
		p.MinPrice = &v
	}
	if v, ok := q["max_price"]; ok {
		p.MaxPrice = &v
	}
	if v, ok := q["limit"]; ok {
		p.Limit = &v
	}
	return p
}
