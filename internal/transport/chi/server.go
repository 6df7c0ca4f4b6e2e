package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/folio/internal/domain"
	domcontact "github.com/kailas-cloud/folio/internal/domain/contact"
	commentuc "github.com/kailas-cloud/folio/internal/usecase/comment"
	contactuc "github.com/kailas-cloud/folio/internal/usecase/contact"
	healthuc "github.com/kailas-cloud/folio/internal/usecase/health"
	searchuc "github.com/kailas-cloud/folio/internal/usecase/search"
	voteuc "github.com/kailas-cloud/folio/internal/usecase/vote"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// Services groups the use cases served over HTTP.
type Services struct {
	Search   *searchuc.Service
	Votes    *voteuc.Service
	Comments *commentuc.Service
	Contact  *contactuc.Service
	Health   *healthuc.Service
}

// Server serves the folio HTTP API.
type Server struct {
	search        *searchuc.Service
	votes         *voteuc.Service
	comments      *commentuc.Service
	contact       *contactuc.Service
	health        *healthuc.Service
	voters        *VoterIdentity
	adminKeys     []string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, voters *VoterIdentity, adminKeys []string, logger *zap.Logger) *Server {
	s := &Server{
		search:    svc.Search,
		votes:     svc.Votes,
		comments:  svc.Comments,
		contact:   svc.Contact,
		health:    svc.Health,
		voters:    voters,
		adminKeys: adminKeys,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domcontact.ErrInvalidSubmission, http.StatusBadRequest, CodeInvalidSubmission, "Invalid submission"),
		sentinelHandler(domcontact.ErrLooksLikeSpam, http.StatusBadRequest, CodeSpam, "Message appears to be spam"),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound, "not found"),
		s.integrityHandler,
	}
	return s
}

// Routes mounts every endpoint on r. Admin routes require a bearer key.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/search", func(r chi.Router) {
		r.Get("/", s.Search)
		r.Get("/suggestions", s.Suggestions)
		r.Get("/tags", s.Tags)
	})

	r.Route("/votes", func(r chi.Router) {
		r.Get("/popular", s.PopularVotes)
		r.Post("/{id}", s.VoteEssay)
		r.Get("/{id}", s.GetEssayVotes)
		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(s.adminKeys))
			r.Get("/admin/analytics", s.VoteAnalytics)
			r.Delete("/admin/{id}", s.ResetVotes)
		})
	})

	r.Route("/comments", func(r chi.Router) {
		r.Post("/", s.PostComment)
		r.Get("/{id}", s.ListComments)
		r.Post("/{id}/vote", s.VoteComment)
		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(s.adminKeys))
			r.Get("/admin/pending", s.PendingComments)
			r.Get("/admin/spam", s.SpamComments)
			r.Post("/admin/{id}/{action}", s.ModerateComment)
		})
	})

	r.Route("/contact", func(r chi.Router) {
		r.Post("/", s.SendContact)
		r.Get("/info", s.ContactInfo)
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}
