package chi

import (
	"net/http"

	domcomment "github.com/kailas-cloud/folio/internal/domain/comment"
)

// PostComment handles POST /comments. Held comments answer 200 with the
// moderation message.
func (s *Server) PostComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	posted, err := s.comments.Post(r.Context(), domcomment.Draft{
		EssayID:  req.EssayID,
		ParentID: req.ParentID,
		Author:   req.Name,
		Email:    req.Email,
		Content:  req.Content,
		IP:       clientIP(r),
		UA:       r.UserAgent(),
	}, req.Honeypot)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, postCommentResponse{
		Success: true,
		Message: posted.Message,
		Comment: commentToDTO(&posted.Comment),
	})
}

// ListComments handles GET /comments/{id}, where id is the essay.
func (s *Server) ListComments(w http.ResponseWriter, r *http.Request) {
	var essayID string
	if err := bindPath(r, "id", &essayID); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	cs, err := s.comments.ForEssay(r.Context(), essayID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, commentsResponse{Success: true, Comments: commentsToDTO(cs)})
}

// PendingComments handles GET /comments/admin/pending.
func (s *Server) PendingComments(w http.ResponseWriter, r *http.Request) {
	cs, err := s.comments.Pending(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, adminCommentsResponse{Success: true, Comments: adminCommentsToDTO(cs)})
}

// SpamComments handles GET /comments/admin/spam.
func (s *Server) SpamComments(w http.ResponseWriter, r *http.Request) {
	cs, err := s.comments.Spam(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, adminCommentsResponse{Success: true, Comments: adminCommentsToDTO(cs)})
}

// ModerateComment handles POST /comments/admin/{id}/{approve|reject|spam}.
func (s *Server) ModerateComment(w http.ResponseWriter, r *http.Request) {
	var id, action string
	if err := bindPath(r, "id", &id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if err := bindPath(r, "action", &action); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	m, err := domcomment.ParseModeration(action)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	c, err := s.comments.Moderate(r.Context(), id, m)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, moderatedResponse{Success: true, Comment: adminCommentToDTO(&c)})
}
