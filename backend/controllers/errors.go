package controllers

import (
	"errors"
	"log"

	"examportal/backend/store"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// respondError maps store errors to their status; anything else is logged and hidden.
func respondError(c *fiber.Ctx, logger *log.Logger, err error) error {
	var se *store.Error
	if errors.As(err, &se) {
		if errors.Is(se, store.ErrNotFound) {
			return utils.NotFound(c, se.Message)
		}
		return utils.BadRequest(c, se.Message)
	}

	logger.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return utils.InternalServerError(c, "Internal server error")
}

// bind parses and validates the JSON body into out. When ok is false the
// 400 response has already been written and err is what the handler returns.
func bind(c *fiber.Ctx, out interface{}) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := utils.ValidateStruct(out); err != nil {
		return false, utils.BadRequest(c, err.Error())
	}
	return true, nil
}
