package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleListCategories returns every category in use with its task count.
//
// @Summary  List categories
// @Tags     categories
// @Produce  json
// @Success  200  {object}  map[string][]models.CategorySummary
// @Router   /categories [get]
func (s *Server) handleListCategories(c *gin.Context) {
	categories, err := s.store.ListCategories(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"categories": categories})
}
