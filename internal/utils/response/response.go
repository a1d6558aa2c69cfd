// Package response writes the API's JSON error bodies.
package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"trendscraper/internal/errs"
)

type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Error writes err with the status for its type. Details are left out in
// production.
func Error(c *fiber.Ctx, err error, production bool) error {
	body := ErrorBody{Error: err.Error()}
	var re *errs.RunError
	if errors.As(err, &re) {
		body.Error = re.Message
	}
	if !production {
		body.Details = err.Error()
	}
	return c.Status(errs.HTTPStatus(err)).JSON(body)
}
