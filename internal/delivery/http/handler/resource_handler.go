package handler

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"planboard/internal/delivery/http/middleware"
	"planboard/internal/domain/resource"
	"planboard/internal/infrastructure/cache"
	"planboard/internal/pkg/response"
	"planboard/internal/repository"
)

// ResourceHandler serves one CRUD family. All families share this one
// implementation; the descriptor and an optional rename view are the only
// things that vary. Two handlers over the same table (the canonical and
// legacy calendar surfaces) stay in sync because they share a repository.
type ResourceHandler struct {
	repo     *repository.ResourceRepository
	cache    cache.ListCache
	cacheTTL time.Duration

	// renames maps storage columns to external JSON keys; external maps the
	// other way. Empty maps mean columns are exposed under their own names.
	renames  map[string]string
	external map[string]string
}

func NewResourceHandler(repo *repository.ResourceRepository, listCache cache.ListCache, cacheTTL time.Duration, renames map[string]string) *ResourceHandler {
	if listCache == nil {
		listCache = cache.Disabled
	}
	external := make(map[string]string, len(renames))
	for col, key := range renames {
		external[key] = col
	}
	return &ResourceHandler{
		repo:     repo,
		cache:    listCache,
		cacheTTL: cacheTTL,
		renames:  renames,
		external: external,
	}
}

// RegisterRoutes mounts the four operations under base, plus any read-only
// alias prefixes the descriptor declares.
func (h *ResourceHandler) RegisterRoutes(r fiber.Router, base string) {
	if r == nil {
		return
	}

	r.Post(base, h.Create)
	r.Get(base+"/:email", h.List)
	r.Put(base+"/:id", h.Update)
	r.Delete(base+"/:id", h.Delete)

	for _, alias := range h.repo.Descriptor().ListAliases {
		r.Get(alias+"/:email", h.List)
	}
}

func (h *ResourceHandler) Create(c fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return err
	}

	values, err := h.resolveFields(body)
	if err != nil {
		return err
	}

	id, err := h.repo.Create(c.Context(), values)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}

	h.invalidateTable(c)

	rec := make(map[string]any, len(values)+1)
	rec["id"] = id
	for col, v := range values {
		rec[h.externalKey(col)] = v
	}
	return response.JSON(c, fiber.StatusCreated, rec)
}

func (h *ResourceHandler) List(c fiber.Ctx) error {
	owner := strings.TrimSpace(c.Params("email"))
	if owner == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Owner email is required.", nil)
	}

	d := h.repo.Descriptor()
	key := listCacheKey(d.Table, owner) + h.cacheKeySuffix()

	var cached []map[string]any
	if hit, _ := h.cache.GetJSON(c.Context(), key, &cached); hit {
		return response.JSON(c, fiber.StatusOK, cached)
	}

	records, err := h.repo.ListByOwner(c.Context(), owner)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}

	out := make([]map[string]any, len(records))
	for i, rec := range records {
		view := make(map[string]any, len(rec))
		for col, v := range rec {
			view[h.externalKey(col)] = v
		}
		out[i] = view
	}

	_ = h.cache.SetJSON(c.Context(), key, out, h.cacheTTL)
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *ResourceHandler) Update(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	body, err := parseBody(c)
	if err != nil {
		return err
	}

	values, err := h.resolveFields(body)
	if err != nil {
		return err
	}

	changes, err := h.repo.Update(c.Context(), id, values)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}

	h.invalidateTable(c)
	// Zero changes means the id was not found; the contract reports that as
	// success with changes:0 rather than as an error.
	return response.JSON(c, fiber.StatusOK, fiber.Map{"changes": changes})
}

func (h *ResourceHandler) Delete(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	changes, err := h.repo.Delete(c.Context(), id)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}

	h.invalidateTable(c)
	return response.JSON(c, fiber.StatusOK, fiber.Map{"changes": changes})
}

// resolveFields validates required fields and applies descriptor defaults,
// returning a complete column-keyed value map ready to persist.
func (h *ResourceHandler) resolveFields(body map[string]any) (map[string]any, error) {
	values := make(map[string]any)
	for _, f := range h.repo.Descriptor().Fields {
		raw, present := body[h.externalKey(f.Column)]
		if present && !isEmptyValue(raw) {
			v, err := coerceValue(f, raw)
			if err != nil {
				return nil, err
			}
			values[f.Column] = v
			continue
		}

		if f.Required {
			return nil, middleware.NewAppError(
				fiber.StatusBadRequest,
				fmt.Sprintf("%s is required.", h.externalKey(f.Column)),
				nil,
			)
		}
		if f.Default != nil {
			values[f.Column] = f.Default()
			continue
		}
		values[f.Column] = nil
	}
	return values, nil
}

func (h *ResourceHandler) externalKey(col string) string {
	if key, ok := h.renames[col]; ok {
		return key
	}
	return col
}

// cacheKeySuffix keeps the renamed and raw views of the same table from
// sharing cached entries.
func (h *ResourceHandler) cacheKeySuffix() string {
	if len(h.renames) > 0 {
		return ":view"
	}
	return ""
}

func (h *ResourceHandler) invalidateTable(c fiber.Ctx) {
	d := h.repo.Descriptor()
	_ = h.cache.Invalidate(c.Context(), "list:"+d.Table+":*")
}

func listCacheKey(table, owner string) string {
	return "list:" + table + ":" + owner
}

func parseBody(c fiber.Ctx) (map[string]any, error) {
	body := make(map[string]any)
	if len(c.Body()) == 0 {
		return body, nil
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid JSON body.", err)
	}
	return body, nil
}

func parseID(c fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id.", err)
	}
	return id, nil
}

func isEmptyValue(raw any) bool {
	if raw == nil {
		return true
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// coerceValue converts a decoded JSON value into what the column stores.
// Integer columns accept numbers, numeric strings and booleans; JSON-text
// columns accept either pre-encoded JSON strings or structured values, which
// are re-encoded.
func coerceValue(f resource.Field, raw any) (any, error) {
	if f.Int {
		switch v := raw.(type) {
		case float64:
			if v != math.Trunc(v) {
				return nil, middleware.NewAppError(
					fiber.StatusBadRequest,
					fmt.Sprintf("%s must be an integer.", f.Column),
					nil,
				)
			}
			return int64(v), nil
		case bool:
			if v {
				return int64(1), nil
			}
			return int64(0), nil
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, middleware.NewAppError(
					fiber.StatusBadRequest,
					fmt.Sprintf("%s must be an integer.", f.Column),
					err,
				)
			}
			return n, nil
		default:
			return nil, middleware.NewAppError(
				fiber.StatusBadRequest,
				fmt.Sprintf("%s must be an integer.", f.Column),
				nil,
			)
		}
	}

	if f.JSONText {
		switch v := raw.(type) {
		case string:
			if !json.Valid([]byte(v)) {
				return nil, middleware.NewAppError(
					fiber.StatusBadRequest,
					fmt.Sprintf("%s must be valid JSON.", f.Column),
					nil,
				)
			}
			return v, nil
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return nil, middleware.NewAppError(
					fiber.StatusBadRequest,
					fmt.Sprintf("%s must be valid JSON.", f.Column),
					err,
				)
			}
			return string(b), nil
		}
	}

	switch v := raw.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return fmt.Sprint(v), nil
	}
}
