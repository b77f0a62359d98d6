package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tradepost/internal/log"
	"tradepost/internal/search"
	"tradepost/internal/services"
)

type ItemSearchHandler struct {
	Search *services.ItemSearchService
}

// Find returns the first matching item, or the not-found-singleton shape
// when nothing matches. Bad criteria are rejected before any store access.
func (h *ItemSearchHandler) Find(c *fiber.Ctx) error {
	crit, err := search.Resolve(queryParams(c))
	if err != nil {
		if errors.Is(err, search.ErrBadRequest) {
			log.Security(c, "items.find.bad_request", map[string]any{"reason": err.Error()})
			return respondItemSearchBadRequest(c)
		}
		return respondServerError(c)
	}
	if crit.None() {
		return respondItemNotFound(c)
	}
	item, found, err := h.Search.SearchFirst(crit)
	if err != nil {
		log.Error(c, "items.find.error", err, nil)
		return respondServerError(c)
	}
	if !found {
		return respondItemNotFound(c)
	}
	return respondOne(c, itemResource(item))
}

// FindAll returns every match. Zero matches and zero criteria both yield an
// empty collection, never an error.
func (h *ItemSearchHandler) FindAll(c *fiber.Ctx) error {
	crit, err := search.Resolve(queryParams(c))
	if err != nil {
		if errors.Is(err, search.ErrBadRequest) {
			log.Security(c, "items.find_all.bad_request", map[string]any{"reason": err.Error()})
			return respondItemSearchBadRequest(c)
		}
		return respondServerError(c)
	}
	if crit.None() {
		return respondMany(c, []resource{})
	}
	items, err := h.Search.Search(crit)
	if err != nil {
		log.Error(c, "items.find_all.error", err, nil)
		return respondServerError(c)
	}
	return respondMany(c, itemResources(items))
}
