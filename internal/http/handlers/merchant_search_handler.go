package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tradepost/internal/log"
	"tradepost/internal/search"
	"tradepost/internal/services"
)

type MerchantSearchHandler struct {
	Search *services.MerchantSearchService
}

// Find returns the single merchant sorting first among case-insensitive
// matches. The name parameter is required and must not be blank.
func (h *MerchantSearchHandler) Find(c *fiber.Ctx) error {
	fragment, err := search.MerchantName(queryParams(c))
	if err != nil {
		log.Security(c, "merchants.find.bad_request", nil)
		return respondBadRequest(c)
	}
	m, found, err := h.Search.FindFirstByName(fragment)
	if err != nil {
		log.Error(c, "merchants.find.error", err, nil)
		return respondServerError(c)
	}
	if !found {
		return respondMerchantNotFound(c)
	}
	return respondOne(c, merchantResource(m))
}

func (h *MerchantSearchHandler) FindAll(c *fiber.Ctx) error {
	fragment, err := search.MerchantName(queryParams(c))
	if err != nil {
		log.Security(c, "merchants.find_all.bad_request", nil)
		return respondBadRequest(c)
	}
	merchants, err := h.Search.FindAllByName(fragment)
	if err != nil {
		log.Error(c, "merchants.find_all.error", err, nil)
		return respondServerError(c)
	}
	return respondMany(c, merchantResources(merchants))
}
