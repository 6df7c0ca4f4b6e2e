package chi

import (
	"net/http"

	domcontact "github.com/kailas-cloud/folio/internal/domain/contact"
	contactuc "github.com/kailas-cloud/folio/internal/usecase/contact"
)

// SendContact handles POST /contact.
func (s *Server) SendContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := s.contact.Send(r.Context(), domcontact.Message{
		Name:     req.Name,
		Email:    req.Email,
		Subject:  req.Subject,
		Body:     req.Message,
		Honeypot: req.Honeypot,
		IP:       clientIP(r),
		UA:       r.UserAgent(),
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: contactuc.MessageSent})
}

// ContactInfo handles GET /contact/info.
func (s *Server) ContactInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, contactInfoResponse{Success: true, Contact: s.contact.Info()})
}
