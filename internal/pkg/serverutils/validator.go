package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct validation and converts the first failure into
// a fiber 400 error with a readable field message.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fiber.NewError(
				fiber.StatusBadRequest,
				fmt.Sprintf("field %s failed on '%s' validation", e.Field(), e.Tag()),
			)
		}
		return fiber.NewError(fiber.StatusBadRequest, "invalid request")
	}
	return nil
}
