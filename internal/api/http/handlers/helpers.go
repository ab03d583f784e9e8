package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/afristar/helpdesk/internal/service"
)

// success wraps data in the standard response envelope.
func success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// successPaged wraps a listing response with pagination metadata.
func successPaged(c *fiber.Ctx, data interface{}, meta service.Pagination) error {
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   data,
		"meta":   meta,
	})
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	val := c.Query(key)
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
