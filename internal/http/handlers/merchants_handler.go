package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"tradepost/internal/log"
	"tradepost/internal/repos"
	"tradepost/internal/search"
	"tradepost/internal/services"
	"tradepost/internal/validate"
)

type MerchantsHandler struct {
	Merchants *repos.MerchantRepo
	Items     *repos.ItemRepo
	Search    *services.MerchantSearchService
}

func (h *MerchantsHandler) Index(c *fiber.Ctx) error {
	merchants, err := h.Merchants.List()
	if err != nil {
		log.Error(c, "merchants.index.error", err, nil)
		return respondServerError(c)
	}
	return respondMany(c, merchantResources(merchants))
}

func (h *MerchantsHandler) Show(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	m, err := h.Merchants.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if err != nil {
		log.Error(c, "merchants.show.error", err, nil)
		return respondServerError(c)
	}
	return respondOne(c, merchantResource(m))
}

// ItemsIndex lists all items owned by one merchant.
func (h *MerchantsHandler) ItemsIndex(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if _, err := h.Merchants.Get(id); errors.Is(err, sql.ErrNoRows) {
		return c.SendStatus(fiber.StatusNotFound)
	} else if err != nil {
		log.Error(c, "merchants.items.error", err, nil)
		return respondServerError(c)
	}
	items, err := h.Items.ListByMerchant(id)
	if err != nil {
		log.Error(c, "merchants.items.error", err, nil)
		return respondServerError(c)
	}
	return respondMany(c, itemResources(items))
}

// ShowForItem resolves an item id to its owning merchant.
func (h *MerchantsHandler) ShowForItem(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	m, err := h.Merchants.ForItem(id)
	if errors.Is(err, sql.ErrNoRows) {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if err != nil {
		log.Error(c, "merchants.for_item.error", err, nil)
		return respondServerError(c)
	}
	return respondOne(c, merchantResource(m))
}

// MostItems ranks merchants by shipped-and-paid item count. quantity is
// required and must be a positive integer.
func (h *MerchantsHandler) MostItems(c *fiber.Ctx) error {
	n, err := search.Quantity(c.Query("quantity"))
	if err != nil {
		log.Security(c, "merchants.most_items.bad_request", map[string]any{"quantity": c.Query("quantity")})
		return respondBadRequest(c)
	}
	rows, err := h.Search.TopByItemCount(n)
	if err != nil {
		log.Error(c, "merchants.most_items.error", err, nil)
		return respondServerError(c)
	}
	return respondMany(c, itemCountResources(rows))
}
