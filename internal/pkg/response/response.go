// Package response renders the flat JSON bodies of the API contract:
// payloads are written as-is, errors are always {"error": "<message>"}.
package response

import "github.com/gofiber/fiber/v3"

type ErrorBody struct {
	Error string `json:"error"`
}

const (
	MessageBadRequest          = "Bad request."
	MessageInvalidCredentials  = "Invalid credentials."
	MessageEmailTaken          = "Email already registered."
	MessageInternalServerError = "Internal server error."
)

func JSON(c fiber.Ctx, status int, payload any) error {
	return c.Status(normalizeStatus(status)).JSON(payload)
}

func Error(c fiber.Ctx, status int, message string) error {
	st := normalizeStatus(status)
	if message == "" {
		message = defaultMessageForStatus(st)
	}
	return c.Status(st).JSON(ErrorBody{Error: message})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func defaultMessageForStatus(status int) string {
	if status >= 500 {
		return MessageInternalServerError
	}
	return MessageBadRequest
}
