package api

import (
	"errors"
	"log/slog"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"recipeapp.com/internal/domain"
)

// Pagination metadata
type Pagination struct {
	Page      int   `json:"Page"`      // current page
	PageSize  int   `json:"PageSize"`  // items per page
	Total     int64 `json:"Total"`     // total records
	TotalPage int   `json:"TotalPage"` // total pages
}

// ListResponse is the paginated envelope
type ListResponse struct {
	Data       interface{} `json:"Data"`
	Pagination Pagination  `json:"Pagination"`
}

// SendPaginatedResponse writes a ListResponse
func SendPaginatedResponse(c *fiber.Ctx, data interface{}, page, pageSize int, total int64) error {
	totalPage := 0
	if pageSize > 0 {
		totalPage = int(math.Ceil(float64(total) / float64(pageSize)))
	}

	return c.JSON(ListResponse{
		Data: data,
		Pagination: Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: totalPage,
		},
	})
}

// handleError renders err as {"error": msg} with the matching status.
// Internal causes are logged, never echoed.
func handleError(c *fiber.Ctx, err error) error {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= fiber.StatusInternalServerError {
			slog.Error("API: request failed", "method", c.Method(), "path", c.Path(), "error", err)
		}
		return c.Status(appErr.Code).JSON(fiber.Map{"error": appErr.Message})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	slog.Error("API: unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

// parseBody decodes the request body into out. An empty body leaves out
// untouched.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return domain.NewBadRequestError("Invalid request body")
	}
	return nil
}

// paramID parses the :id route parameter. Non-numeric ids cannot exist, so
// they are reported as not found.
func paramID(c *fiber.Ctx, notFoundMsg string) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, domain.NewNotFoundError(notFoundMsg)
	}
	return uint(id), nil
}

func pageParams(c *fiber.Ctx, defaultSize int) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", strconv.Itoa(defaultSize)))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultSize
	}
	return page, pageSize
}

func methodNotAllowed(allow string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAllow, allow)
		return fiber.ErrMethodNotAllowed
	}
}
