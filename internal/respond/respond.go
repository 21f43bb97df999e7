// Package respond writes the {success, message, data} envelope shared by
// every JSON endpoint.
package respond

import (
	"log/slog"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/dto"
)

var exposeErrors atomic.Bool

// ExposeErrors toggles echoing raw error details in 5xx bodies. Only
// development deployments turn it on.
func ExposeErrors(v bool) {
	exposeErrors.Store(v)
}

func OK(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(dto.Response{Success: true, Message: message, Data: data})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Response{Success: true, Message: message, Data: data})
}

func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Message: message})
}

// Internal logs err and answers 500 with message.
func Internal(c *fiber.Ctx, message string, err error) error {
	slog.Error(message,
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		"error", err,
	)
	resp := dto.ErrorResponse{Success: false, Message: message}
	if exposeErrors.Load() && err != nil {
		resp.Error = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}

// Upstream answers for failures of a remote dependency such as Shopify.
func Upstream(c *fiber.Ctx, status int, message string, err error) error {
	slog.Error(message, "method", c.Method(), "path", c.Path(), "error", err)
	resp := dto.ErrorResponse{Success: false, Message: message}
	if exposeErrors.Load() && err != nil {
		resp.Error = err.Error()
	}
	return c.Status(status).JSON(resp)
}
