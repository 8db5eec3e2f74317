package http

import (
	"github.com/gin-gonic/gin"

	"bloghub/pkg/models"
)

// listUsers returns a paginated list of accounts, admin only
func (s *Server) listUsers(c *gin.Context) {
	result, err := s.userSvc.GetPaginatedList(c.Request.Context(), parsePage(c))
	if err != nil {
		respondFail(c, 500, "failed to list users")
		return
	}

	profiles := make([]models.UserProfile, len(result.Items))
	for i := range result.Items {
		profiles[i] = result.Items[i].Profile()
	}

	respondOK(c, 200, "", models.PaginatedResponse[models.UserProfile]{
		Data: profiles,
		Meta: result.Meta(),
	})
}

// updateUser edits another user's profile. The policy only lets an
// admin touch accounts that hold no roles beyond the base one.
func (s *Server) updateUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondFail(c, 400, "user id is required")
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, 400, "invalid request body")
		return
	}

	updated, err := s.userSvc.Update(c.Request.Context(), GetActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "User updated successfully", updated.Profile())
}

// promoteUser grants the admin role to a plain user
func (s *Server) promoteUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondFail(c, 400, "user id is required")
		return
	}

	promoted, err := s.userSvc.PromoteToAdmin(c.Request.Context(), GetActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "User promoted successfully", promoted.Profile())
}
