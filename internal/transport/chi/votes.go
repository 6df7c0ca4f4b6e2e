package chi

import (
	"net/http"
	"strings"

	"github.com/kailas-cloud/folio/internal/domain"
	domvote "github.com/kailas-cloud/folio/internal/domain/vote"
	voteuc "github.com/kailas-cloud/folio/internal/usecase/vote"
)

// VoteEssay handles POST /votes/{id}.
func (s *Server) VoteEssay(w http.ResponseWriter, r *http.Request) {
	s.vote(w, r, domvote.TargetEssay)
}

// VoteComment handles POST /comments/{id}/vote.
func (s *Server) VoteComment(w http.ResponseWriter, r *http.Request) {
	s.vote(w, r, domvote.TargetComment)
}

func (s *Server) vote(w http.ResponseWriter, r *http.Request, kind domvote.TargetKind) {
	target, err := targetFromPath(r, kind)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	var req voteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := s.votes.Vote(r.Context(), target, s.voters.ID(r), domvote.Type(req.VoteType))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, voteResponse{
		Success: true,
		Action:  string(out.Action),
		Votes:   tallyToDTO(out.Tally),
	})
}

// GetEssayVotes handles GET /votes/{id}.
func (s *Server) GetEssayVotes(w http.ResponseWriter, r *http.Request) {
	target, err := targetFromPath(r, domvote.TargetEssay)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	tally, err := s.votes.Tally(r.Context(), target)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, voteResponse{Success: true, Votes: tallyToDTO(tally)})
}

// PopularVotes handles GET /votes/popular?type=essay|comment&limit=n.
func (s *Server) PopularVotes(w http.ResponseWriter, r *http.Request) {
	var (
		typ   string
		limit *int
	)
	if err := bindQuery(r, "type", &typ); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if err := bindQuery(r, "limit", &limit); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	kind := domvote.TargetKind(strings.TrimSuffix(strings.ToLower(typ), "s"))
	if kind != "" && kind != domvote.TargetEssay && kind != domvote.TargetComment {
		s.handleDomainError(w, r, domain.NewValidationError("type", "type must be essay or comment"))
		return
	}
	n := voteuc.DefaultPopularLimit
	if limit != nil {
		if *limit < 1 || *limit > 100 {
			s.handleDomainError(w, r, domain.NewValidationError("limit", "limit must be between 1 and 100"))
			return
		}
		n = *limit
	}

	items, err := s.votes.Popular(r.Context(), kind, n)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, popularResponse{Success: true, Items: targetTalliesToDTO(items)})
}

// VoteAnalytics handles GET /votes/admin/analytics.
func (s *Server) VoteAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := s.votes.Analytics(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analyticsToDTO(a))
}

// ResetVotes handles DELETE /votes/admin/{id}. An id of the form
// "comment:<id>" resets a comment; a bare id is an essay.
func (s *Server) ResetVotes(w http.ResponseWriter, r *http.Request) {
	var raw string
	if err := bindPath(r, "id", &raw); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	key := raw
	if !strings.Contains(key, ":") {
		key = string(domvote.TargetEssay) + ":" + key
	}
	target, err := domvote.ParseKey(key)
	if err != nil {
		s.handleDomainError(w, r, domain.NewValidationError("id", err.Error()))
		return
	}

	if err := s.votes.Reset(r.Context(), target); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Votes reset"})
}

func targetFromPath(r *http.Request, kind domvote.TargetKind) (domvote.Target, error) {
	var id string
	if err := bindPath(r, "id", &id); err != nil {
		return domvote.Target{}, err
	}
	target, err := domvote.NewTarget(kind, id)
	if err != nil {
		return domvote.Target{}, domain.NewValidationError("id", err.Error())
	}
	return target, nil
}
