package http

import (
	"github.com/gin-gonic/gin"

	"bloghub/pkg/models"
)

// listCategories returns a paginated list of categories
func (s *Server) listCategories(c *gin.Context) {
	result, err := s.categorySvc.GetPaginatedList(c.Request.Context(), parsePage(c))
	if err != nil {
		respondFail(c, 500, "failed to list categories")
		return
	}

	respondOK(c, 200, "", models.PaginatedResponse[models.Category]{
		Data: result.Items,
		Meta: result.Meta(),
	})
}

// getCategory retrieves a single category by ID
func (s *Server) getCategory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondFail(c, 400, "category id is required")
		return
	}

	category, err := s.categorySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondFail(c, 404, "category not found")
		return
	}

	respondOK(c, 200, "", category)
}

// createCategory handles category creation, the slug is derived from
// the title
func (s *Server) createCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, 400, "invalid request body")
		return
	}

	category, err := s.categorySvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 201, "Category created successfully", category)
}

// updateCategory renames a category and re-derives its slug
func (s *Server) updateCategory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondFail(c, 400, "category id is required")
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, 400, "invalid request body")
		return
	}

	category, err := s.categorySvc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "Category updated successfully", category)
}

// deleteCategory deletes a category. Categories that still contain
// posts are refused with 409.
func (s *Server) deleteCategory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondFail(c, 400, "category id is required")
		return
	}

	if err := s.categorySvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "Category deleted successfully", nil)
}
