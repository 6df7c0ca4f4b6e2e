package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/kailas-cloud/folio/internal/domain/content"
	"github.com/kailas-cloud/folio/internal/domain/search/mode"
	"github.com/kailas-cloud/folio/internal/domain/search/request"
)

func newTestService(t *testing.T, snaps *mockSnapshots) *Service {
	t.Helper()
	pool, err := ants.NewPool(4)
	if err != nil {
		t.Fatalf("ants.NewPool: %v", err)
	}
	t.Cleanup(pool.Release)
	return New(snaps, pool).WithClock(func() time.Time { return testNow })
}

func mustRequest(t *testing.T, q, typ, tag string, sort mode.Mode, limit int) *request.Request {
	t.Helper()
	req, err := request.New(q, typ, tag, sort, limit)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &req
}

func TestService_Search_ExactTitleOutranksTag(t *testing.T) {
	snaps := &mockSnapshots{items: map[content.Kind][]content.Item{
		content.Essay: {
			essay("tagged", "Notes on craft", []string{"design"}, daysAgo(200)),
			essay("exact", "Design", nil, daysAgo(200)),
		},
	}}
	svc := newTestService(t, snaps)

	page, err := svc.Search(context.Background(), mustRequest(t, "design", "", "", "", 0))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	assertIDs(t, page.Results, "exact", "tagged")
	if s := page.Results[0].Score(); s != 15 {
		t.Errorf("exact score = %v, want 15", s)
	}
}

func TestService_Search_ShortQuerySkipsSnapshot(t *testing.T) {
	snaps := &mockSnapshots{}
	svc := newTestService(t, snaps)

	page, err := svc.Search(context.Background(), mustRequest(t, " a ", "", "", "", 0))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Results == nil || len(page.Results) != 0 || page.Total != 0 {
		t.Errorf("page = %+v, want empty non-nil", page)
	}
	if snaps.calls != 0 {
		t.Errorf("snapshot calls = %d, want 0", snaps.calls)
	}
}

func TestService_Search_TypeFilterFetchesOneKind(t *testing.T) {
	snaps := &mockSnapshots{items: map[content.Kind][]content.Item{
		content.Essay:   {essay("e", "Go", nil, testNow)},
		content.Project: {content.Reconstruct(content.Project, content.Fields{ID: "p", Title: "Go"})},
	}}
	svc := newTestService(t, snaps)

	page, err := svc.Search(context.Background(), mustRequest(t, "go", "projects", "", "", 0))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	assertIDs(t, page.Results, "p")
	if snaps.calls != 1 {
		t.Errorf("snapshot calls = %d, want 1", snaps.calls)
	}
}

func TestService_Search_MaxResultsCapsLimit(t *testing.T) {
	var items []content.Item
	for _, id := range []string{"a", "b", "c", "d"} {
		items = append(items, essay(id, "Go "+id, nil, testNow))
	}
	snaps := &mockSnapshots{items: map[content.Kind][]content.Item{content.Essay: items}}
	svc := newTestService(t, snaps).WithLimits(3, 0, 0)

	page, err := svc.Search(context.Background(), mustRequest(t, "go", "", "", "", 50))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page.Results) != 3 || page.Total != 4 {
		t.Errorf("len=%d total=%d, want 3/4", len(page.Results), page.Total)
	}
}

func TestService_Search_SnapshotError(t *testing.T) {
	snaps := &mockSnapshots{errs: map[content.Kind]error{content.Book: errSnapshot}}
	svc := newTestService(t, snaps)

	_, err := svc.Search(context.Background(), mustRequest(t, "go", "", "", "", 0))
	if !errors.Is(err, errSnapshot) {
		t.Fatalf("err = %v, want %v", err, errSnapshot)
	}
}

func TestService_NilPoolUsesGoroutines(t *testing.T) {
	snaps := &mockSnapshots{items: map[content.Kind][]content.Item{
		content.Book: {content.Reconstruct(content.Book, content.Fields{ID: "b", Title: "Go in Practice"})},
	}}
	svc := New(snaps, nil)

	page, err := svc.Search(context.Background(), mustRequest(t, "practice", "", "", "", 0))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	assertIDs(t, page.Results, "b")
}

func TestService_SuggestAndTags(t *testing.T) {
	snaps := &mockSnapshots{items: map[content.Kind][]content.Item{
		content.Essay: {essay("e", "Golang tips", []string{"go"}, testNow)},
		content.Project: {content.Reconstruct(content.Project, content.Fields{
			ID: "p", Title: "Gopher", Credits: []string{"Go"},
		})},
	}}
	svc := newTestService(t, snaps)

	sugg, err := svc.Suggest(context.Background(), "go")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(sugg) != 2 || sugg[0].Kind != content.Essay || sugg[1].Kind != content.Project {
		t.Errorf("Suggest = %+v", sugg)
	}

	short, err := svc.Suggest(context.Background(), "g")
	if err != nil || len(short) != 0 {
		t.Errorf("short Suggest = %+v, %v", short, err)
	}

	tags, err := svc.Tags(context.Background())
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(tags) != 1 || tags[0] != (TagCount{Tag: "go", Count: 2}) {
		t.Errorf("Tags = %+v", tags)
	}
}
