package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ouppakdigital/quiz-service/internal/services"
	"github.com/ouppakdigital/quiz-service/internal/utils"
)

// CatalogHandler serves the distinct chapter/SLO/book lookups the authoring
// forms use for suggestions.
type CatalogHandler struct {
	BaseHandler
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    NewBaseHandler(logger),
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListChapters(c *gin.Context) {
	entries, err := h.catalogService.ListDistinctChapters(
		c.Request.Context(), c.Query("grade"), c.Query("subject"), c.Query("book"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *CatalogHandler) ListSLOs(c *gin.Context) {
	entries, err := h.catalogService.ListDistinctSLOs(
		c.Request.Context(), c.Query("grade"), c.Query("subject"), c.Query("book"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *CatalogHandler) ListBooks(c *gin.Context) {
	entries, err := h.catalogService.ListDistinctBooks(
		c.Request.Context(), c.Query("grade"), c.Query("subject"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
