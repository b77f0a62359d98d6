package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tradepost/internal/domain"
)

// resource is the JSON:API-style envelope every entity ships in.
type resource struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes any    `json:"attributes"`
}

type itemAttrs struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	MerchantID  string  `json:"merchant_id"`
}

type merchantAttrs struct {
	Name string `json:"name"`
}

type revenueAttrs struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

type itemCountAttrs struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func itemResource(i domain.Item) resource {
	return resource{ID: i.ID, Type: "item", Attributes: itemAttrs{
		Name: i.Name, Description: i.Description, UnitPrice: i.UnitPrice, MerchantID: i.MerchantID,
	}}
}

func itemResources(items []domain.Item) []resource {
	out := make([]resource, 0, len(items))
	for _, i := range items {
		out = append(out, itemResource(i))
	}
	return out
}

func merchantResource(m domain.Merchant) resource {
	return resource{ID: m.ID, Type: "merchant", Attributes: merchantAttrs{Name: m.Name}}
}

func merchantResources(ms []domain.Merchant) []resource {
	out := make([]resource, 0, len(ms))
	for _, m := range ms {
		out = append(out, merchantResource(m))
	}
	return out
}

func revenueResources(rows []domain.MerchantRevenue) []resource {
	out := make([]resource, 0, len(rows))
	for _, r := range rows {
		out = append(out, resource{ID: r.ID, Type: "merchant_name_revenue", Attributes: revenueAttrs{Name: r.Name, Revenue: r.Revenue}})
	}
	return out
}

func itemCountResources(rows []domain.MerchantItemCount) []resource {
	out := make([]resource, 0, len(rows))
	for _, r := range rows {
		out = append(out, resource{ID: r.ID, Type: "merchant_item_count", Attributes: itemCountAttrs{Name: r.Name, Count: r.Count}})
	}
	return out
}

// ---------- Result shapes ----------

// respondOne wraps a found entity.
func respondOne(c *fiber.Ctx, res resource) error {
	return c.JSON(fiber.Map{"data": res})
}

// respondMany wraps a collection; zero matches is a success with an empty
// array, never an error.
func respondMany(c *fiber.Ctx, res []resource) error {
	return c.JSON(fiber.Map{"data": res})
}

// respondItemNotFound is the not-found-singleton shape: a 200 carrying an
// explicit no-match marker, deliberately not a 404.
func respondItemNotFound(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"error": "Item not found"}})
}

func respondMerchantNotFound(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"errors": "No match was found."}})
}

func respondBadRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bad Request"})
}

// respondItemSearchBadRequest keeps the item search endpoints' historical
// 400 payload, which carries an empty data array alongside the error.
func respondItemSearchBadRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"data": []resource{}, "error": "Bad request"})
}

func respondServerError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
}
