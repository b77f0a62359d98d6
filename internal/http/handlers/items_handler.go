package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"tradepost/internal/log"
	"tradepost/internal/repos"
	"tradepost/internal/validate"
)

type ItemsHandler struct {
	Items     *repos.ItemRepo
	Merchants *repos.MerchantRepo
}

// itemPayload is the create/update body. Pointers keep "absent" apart from
// zero values so partial updates work.
type itemPayload struct {
	Item struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		UnitPrice   *float64 `json:"unit_price"`
		MerchantID  *string  `json:"merchant_id"`
	} `json:"item"`
}

func (h *ItemsHandler) Index(c *fiber.Ctx) error {
	items, err := h.Items.List()
	if err != nil {
		log.Error(c, "items.index.error", err, nil)
		return respondServerError(c)
	}
	return respondMany(c, itemResources(items))
}

func (h *ItemsHandler) Show(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	item, err := h.Items.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if err != nil {
		log.Error(c, "items.show.error", err, nil)
		return respondServerError(c)
	}
	return respondOne(c, itemResource(item))
}

func (h *ItemsHandler) Create(c *fiber.Ctx) error {
	var body itemPayload
	if err := c.BodyParser(&body); err != nil {
		return respondBadRequest(c)
	}
	if errs := creationErrors(body); len(errs) > 0 {
		// Attribute errors ride in a 200 with the error list, matching the
		// service's established contract.
		return c.JSON(fiber.Map{"data": fiber.Map{"errors": errs}})
	}
	it := body.Item
	item, err := h.Items.Create(*it.MerchantID, *it.Name, strValue(it.Description), *it.UnitPrice)
	if err != nil {
		log.Error(c, "items.create.error", err, nil)
		return respondServerError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": itemResource(item)})
}

func (h *ItemsHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if _, err := h.Items.Get(id); errors.Is(err, sql.ErrNoRows) {
		return c.SendStatus(fiber.StatusNotFound)
	} else if err != nil {
		log.Error(c, "items.update.error", err, nil)
		return respondServerError(c)
	}

	var body itemPayload
	if err := c.BodyParser(&body); err != nil {
		return respondBadRequest(c)
	}
	it := body.Item
	item, err := h.Items.Update(id, it.Name, it.Description, it.UnitPrice, it.MerchantID)
	if err != nil {
		log.Error(c, "items.update.error", err, nil)
		return respondServerError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": itemResource(item)})
}

func (h *ItemsHandler) Destroy(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if _, err := h.Items.Get(id); errors.Is(err, sql.ErrNoRows) {
		return c.SendStatus(fiber.StatusNotFound)
	} else if err != nil {
		log.Error(c, "items.destroy.error", err, nil)
		return respondServerError(c)
	}
	if err := h.Items.Delete(id); err != nil {
		log.Error(c, "items.destroy.error", err, nil)
		return respondServerError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func creationErrors(body itemPayload) []string {
	var errs []string
	it := body.Item
	if it.Name == nil || *it.Name == "" {
		errs = append(errs, "Name can't be blank")
	}
	if it.UnitPrice == nil {
		errs = append(errs, "Unit price can't be blank")
	}
	if it.MerchantID == nil || *it.MerchantID == "" {
		errs = append(errs, "Merchant can't be blank")
	}
	return errs
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
