package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tradepost/internal/log"
	"tradepost/internal/search"
	"tradepost/internal/services"
)

type RevenueHandler struct {
	Search *services.MerchantSearchService
}

// TopMerchants ranks merchants by revenue over shipped invoices with a
// successful transaction, descending.
func (h *RevenueHandler) TopMerchants(c *fiber.Ctx) error {
	n, err := search.Quantity(c.Query("quantity"))
	if err != nil {
		log.Security(c, "revenue.merchants.bad_request", map[string]any{"quantity": c.Query("quantity")})
		return respondBadRequest(c)
	}
	rows, err := h.Search.TopByRevenue(n)
	if err != nil {
		log.Error(c, "revenue.merchants.error", err, nil)
		return respondServerError(c)
	}
	return respondMany(c, revenueResources(rows))
}
