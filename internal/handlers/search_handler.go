package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sarcaxticlarka/urbanmeet/internal/services"
)

type SearchHandler struct {
	SearchService *services.SearchService
}

func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{SearchService: searchService}
}

func (h *SearchHandler) Search(c *gin.Context) {
	result, err := h.SearchService.Search(
		c.Query("query"),
		queryInt(c, "page"),
		queryInt(c, "limit"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
