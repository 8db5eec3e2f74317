package http

import (
	"github.com/gin-gonic/gin"

	"bloghub/pkg/logger"
	"bloghub/pkg/models"
)

// listComments returns a paginated list of comments on a post, newest
// first
func (s *Server) listComments(c *gin.Context) {
	postID := c.Param("id")
	if postID == "" {
		respondFail(c, 400, "post id is required")
		return
	}

	result, err := s.commentSvc.GetPaginatedList(c.Request.Context(), postID, parsePage(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "", models.PaginatedResponse[models.Comment]{
		Data: result.Items,
		Meta: result.Meta(),
	})
}

// createComment publishes a guest comment on a post
func (s *Server) createComment(c *gin.Context) {
	postID := c.Param("id")
	if postID == "" {
		respondFail(c, 400, "post id is required")
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, 400, "invalid request body")
		return
	}

	comment, err := s.commentSvc.Create(c.Request.Context(), postID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	if s.feedHub != nil {
		s.feedHub.PublishComment(comment)
	}

	respondOK(c, 201, "Comment published successfully", comment)
}

// deleteComment removes a comment when policy allows it. Guest comments
// carry no owner, so only admins pass.
func (s *Server) deleteComment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondFail(c, 400, "comment id is required")
		return
	}

	if err := s.commentSvc.Delete(c.Request.Context(), GetActor(c), id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, 200, "Comment deleted successfully", nil)
}

// commentFeed upgrades the connection and subscribes it to the post's
// live comment stream
func (s *Server) commentFeed(c *gin.Context) {
	if s.feedHub == nil {
		respondFail(c, 503, "live comment feed is disabled")
		return
	}

	postID := c.Param("id")
	if postID == "" {
		respondFail(c, 400, "post id is required")
		return
	}

	// The post must exist before we open a feed for it
	if _, err := s.postSvc.GetByID(c.Request.Context(), postID); err != nil {
		respondFail(c, 404, "post not found")
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("websocket upgrade failed: %v", err)
		return
	}

	s.feedHub.Subscribe(conn, postID)
}
