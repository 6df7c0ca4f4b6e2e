package folio

import (
	"context"

	"github.com/kailas-cloud/folio/internal/domain/search/request"
	domvote "github.com/kailas-cloud/folio/internal/domain/vote"
	contentrepo "github.com/kailas-cloud/folio/internal/repository/content"
	healthuc "github.com/kailas-cloud/folio/internal/usecase/health"
	searchuc "github.com/kailas-cloud/folio/internal/usecase/search"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) (searchuc.Page, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) (searchuc.Page, error) {
	return m.searchFn(ctx, req)
}

// --- voteUseCase mock ---

type mockVoteUC struct {
	tallyFn   func(ctx context.Context, target domvote.Target) (domvote.Tally, error)
	resetFn   func(ctx context.Context, target domvote.Target) error
	popularFn func(ctx context.Context, kind domvote.TargetKind, limit int) ([]domvote.TargetTally, error)
}

func (m *mockVoteUC) Tally(ctx context.Context, target domvote.Target) (domvote.Tally, error) {
	return m.tallyFn(ctx, target)
}

func (m *mockVoteUC) Reset(ctx context.Context, target domvote.Target) error {
	return m.resetFn(ctx, target)
}

func (m *mockVoteUC) Popular(
	ctx context.Context, kind domvote.TargetKind, limit int,
) ([]domvote.TargetTally, error) {
	return m.popularFn(ctx, kind, limit)
}

// --- seeder mock ---

type mockSeeder struct {
	seedFn func(ctx context.Context, s *contentrepo.Seed) (int, error)
}

func (m *mockSeeder) Seed(ctx context.Context, s *contentrepo.Seed) (int, error) {
	return m.seedFn(ctx, s)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- store mock ---

type mockStore struct {
	pingErr error
	closed  int
}

func (m *mockStore) Ping(context.Context) error { return m.pingErr }
func (m *mockStore) Close()                     { m.closed++ }
