package http

import (
	"github.com/gin-gonic/gin"

	"bloghub/pkg/models"
)

// register handles account creation
func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, 400, "invalid request body")
		return
	}

	user, err := s.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 201, "Account created successfully", user.Profile())
}

// login authenticates a user and returns a JWT token
func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, 400, "invalid request body")
		return
	}

	resp, err := s.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "Login successful", resp)
}

// getProfile returns the authenticated user's own profile
func (s *Server) getProfile(c *gin.Context) {
	user, ok := GetUser(c)
	if !ok {
		respondFail(c, 401, "unauthorized")
		return
	}

	respondOK(c, 200, "", user.Profile())
}

// updateProfile edits the authenticated user's own profile
func (s *Server) updateProfile(c *gin.Context) {
	user, ok := GetUser(c)
	if !ok {
		respondFail(c, 401, "unauthorized")
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, 400, "invalid request body")
		return
	}

	updated, err := s.userSvc.Update(c.Request.Context(), GetActor(c), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "Profile updated successfully", updated.Profile())
}
