package handler

import (
	"github.com/gofiber/fiber/v3"

	"planboard/internal/delivery/http/middleware"
	"planboard/internal/pkg/response"
	"planboard/internal/repository"
)

// ProjectDescriptionHandler exchanges the project questionnaire as one flat
// JSON object. External keys are camelCase, storage columns are snake_case;
// the rename happens here at the boundary in both directions.
type ProjectDescriptionHandler struct {
	repo *repository.ProjectDescriptionRepository
}

func NewProjectDescriptionHandler(repo *repository.ProjectDescriptionRepository) *ProjectDescriptionHandler {
	return &ProjectDescriptionHandler{repo: repo}
}

func (h *ProjectDescriptionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/projects/:id/description", h.Get)
	r.Put("/projects/:id/description", h.Update)
}

func (h *ProjectDescriptionHandler) Get(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	rec, found, err := h.repo.Get(c.Context(), id)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}
	if !found {
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found.", nil)
	}

	out := make(map[string]any, len(rec))
	for col, v := range rec {
		if v == nil {
			v = ""
		}
		out[camelKey(col)] = v
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *ProjectDescriptionHandler) Update(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	body, err := parseBody(c)
	if err != nil {
		return err
	}

	values := make(map[string]any, len(body))
	for key, v := range body {
		col, ok := snakeColumn(key)
		if !ok {
			// Unknown keys are ignored rather than rejected; old clients
			// send fields this server never stored.
			continue
		}
		values[col] = v
	}

	changes, err := h.repo.Update(c.Context(), id, values)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"changes": changes})
}
