package chi

import (
	"net/http"
	"strings"

	"github.com/kailas-cloud/folio/internal/domain/search/mode"
	"github.com/kailas-cloud/folio/internal/domain/search/request"
)

type searchParams struct {
	Q     string
	Type  string
	Tag   string
	Sort  string
	Limit *int
}

func bindSearchParams(r *http.Request) (searchParams, error) {
	var p searchParams
	for _, b := range []struct {
		name string
		dest any
	}{
		{"q", &p.Q},
		{"type", &p.Type},
		{"tag", &p.Tag},
		{"sort", &p.Sort},
		{"limit", &p.Limit},
	} {
		if err := bindQuery(r, b.name, b.dest); err != nil {
			return searchParams{}, err
		}
	}
	return p, nil
}

// Search handles GET /search. A query under the length floor answers an empty
// page before any other parameter is read.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var q string
	if err := bindQuery(r, "q", &q); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if !request.Matchable(q) {
		writeJSON(w, http.StatusOK, searchResponse{
			Success: true,
			Results: []searchResult{},
			Query:   q,
			Filters: searchFilters{Type: "all", Sort: string(mode.Relevance)},
		})
		return
	}

	p, err := bindSearchParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	limit := 0
	if p.Limit != nil {
		limit = *p.Limit
	}
	req, err := request.New(p.Q, p.Type, p.Tag, mode.Mode(strings.ToLower(p.Sort)), limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	page, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	results := make([]searchResult, len(page.Results))
	for i := range page.Results {
		results[i] = searchResultToDTO(&page.Results[i])
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Success: true,
		Results: results,
		Total:   page.Total,
		Query:   req.Query(),
		Filters: searchFilters{Type: req.Type(), Tag: req.Tag(), Sort: string(req.Sort())},
	})
}

// Suggestions handles GET /search/suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	var q string
	if err := bindQuery(r, "q", &q); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ss, err := s.search.Suggest(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: suggestionsToDTO(ss)})
}

// Tags handles GET /search/tags.
func (s *Server) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.search.Tags(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tagsResponse{Tags: tagsToDTO(tags)})
}
