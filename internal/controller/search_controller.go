package controller

import (
	"strings"
	"unicode/utf8"

	"quiltdex-be/internal/dto"
	"quiltdex-be/internal/pkg/logger"
	"quiltdex-be/internal/pkg/serverutils"
	"quiltdex-be/internal/ratelimit"
	"quiltdex-be/internal/service"
	"quiltdex-be/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	minQueryLen = 2
	maxQueryLen = 500
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
	limiter       ratelimit.Limiter
	logger        logger.ILogger
}

func NewSearchController(searchService service.ISearchService, limiter ratelimit.Limiter, log logger.ILogger) ISearchController {
	return &searchController{
		searchService: searchService,
		limiter:       limiter,
		logger:        log,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Search)
}

// Search handles the hybrid search endpoint. Precondition order matters:
// auth (middleware), rate limit, body parse, query validation.
func (c *searchController) Search(ctx *fiber.Ctx) error {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok || userIdStr == "" {
		return serverutils.NewAppError(apperr.CodeAuthRequired, "Authentication required")
	}
	userId, _ := uuid.Parse(userIdStr)

	limit, err := c.limiter.Check(ctx.Context(), userIdStr)
	if err != nil {
		// Limiter backend trouble fails open; availability of search wins.
		c.logger.Warn("search", "rate limiter check failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if !limit.Allowed {
		return serverutils.RateLimitError(limit.RetryAfter)
	}

	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ValidationError("Invalid JSON body")
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return serverutils.ValidationError("Query is required")
	}
	switch n := utf8.RuneCountInString(query); {
	case n < minQueryLen:
		return serverutils.ValidationError("Query must be at least 2 characters")
	case n > maxQueryLen:
		return serverutils.ValidationError("Query must be at most 500 characters")
	}
	req.Query = query

	res, err := c.searchService.Search(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
