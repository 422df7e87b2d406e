package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"planboard/internal/delivery/http/middleware"
	"planboard/internal/pkg/response"
	ucauth "planboard/internal/usecase/auth"
)

type AuthHandler struct {
	svc *ucauth.Service
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(svc *ucauth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req credentialsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid JSON body.", err)
	}

	res, err := h.svc.Signup(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapAuthError(err)
	}

	return response.JSON(c, fiber.StatusCreated, fiber.Map{
		"id":      res.ID,
		"email":   res.Email,
		"message": "User created successfully.",
	})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req credentialsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid JSON body.", err)
	}

	res, err := h.svc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapAuthError(err)
	}

	return response.JSON(c, fiber.StatusOK, fiber.Map{
		"email":   res.Email,
		"message": "Login successful.",
		"token":   res.Token,
	})
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, ucauth.ErrMissingFields):
		return middleware.NewAppError(fiber.StatusBadRequest, "Email and password are required.", err)
	case errors.Is(err, ucauth.ErrPasswordTooShort):
		return middleware.NewAppError(fiber.StatusBadRequest, "Password must be at least 6 characters.", err)
	case errors.Is(err, ucauth.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageEmailTaken, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidCredentials, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}
}
