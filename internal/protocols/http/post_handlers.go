package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"bloghub/pkg/logger"
	"bloghub/pkg/models"
)

// parsePage reads the page query parameter, defaulting to 1
func parsePage(c *gin.Context) int {
	page := 1
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	return page
}

// listPosts returns a paginated list of posts, newest first. An unknown
// category_id lists everything rather than failing the request.
func (s *Server) listPosts(c *gin.Context) {
	page := parsePage(c)
	categoryID := c.Query("category_id")

	result, err := s.postSvc.GetPaginatedList(c.Request.Context(), page, categoryID)
	if err != nil {
		respondFail(c, 500, "failed to list posts")
		return
	}

	respondOK(c, 200, "", models.PaginatedResponse[models.PostResponse]{
		Data: s.withViewCounts(c, result.Items),
		Meta: result.Meta(),
	})
}

// withViewCounts merges Redis view counters into the post list. A
// counter outage degrades to zero counts, never a failed request.
func (s *Server) withViewCounts(c *gin.Context, posts []models.Post) []models.PostResponse {
	out := make([]models.PostResponse, len(posts))
	for i, p := range posts {
		out[i] = models.PostResponse{Post: p}
	}
	if s.views == nil || len(posts) == 0 {
		return out
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	counts, err := s.views.GetMany(c.Request.Context(), ids)
	if err != nil {
		logger.Warnf("failed to load view counts: %v", err)
		return out
	}
	for i := range out {
		out[i].Views = counts[out[i].ID]
	}
	return out
}

// getPost retrieves a single post and records a view
func (s *Server) getPost(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondFail(c, 400, "post id is required")
		return
	}

	post, err := s.postSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondFail(c, 404, "post not found")
		return
	}

	resp := models.PostResponse{Post: *post}
	if s.views != nil {
		views, err := s.views.Hit(c.Request.Context(), post.ID)
		if err != nil {
			logger.Warnf("failed to record view for post %s: %v", post.ID, err)
		} else {
			resp.Views = views
		}
	}

	respondOK(c, 200, "", resp)
}

// createPost handles post creation
func (s *Server) createPost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, 400, "invalid request body")
		return
	}

	post, err := s.postSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 201, "Post created successfully", post)
}

// updatePost updates post content or moves it to another category
func (s *Server) updatePost(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondFail(c, 400, "post id is required")
		return
	}

	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, 400, "invalid request body")
		return
	}

	post, err := s.postSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "Post updated successfully", post)
}

// deletePost deletes a post together with its comments
func (s *Server) deletePost(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondFail(c, 400, "post id is required")
		return
	}

	if err := s.postSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	if s.views != nil {
		if err := s.views.Forget(c.Request.Context(), id); err != nil {
			logger.Warnf("failed to drop view count for post %s: %v", id, err)
		}
	}

	respondOK(c, 200, "Post deleted successfully", nil)
}
