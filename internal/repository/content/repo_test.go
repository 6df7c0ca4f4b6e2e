package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
	domcontent "github.com/kailas-cloud/folio/internal/domain/content"
	domvote "github.com/kailas-cloud/folio/internal/domain/vote"
)

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

func TestPut_KeyLayout(t *testing.T) {
	repo, ms := newTestRepo(t)
	err := repo.Put(context.Background(), domcontent.Essay, Doc{ID: "e1", Title: "Hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := ms.data["folio:content:essay:e1"]; !ok {
		t.Errorf("expected key folio:content:essay:e1, have %v", ms.order)
	}
}

func TestPut_CustomPrefix(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, "blog:")
	if err := repo.Put(context.Background(), domcontent.Book, Doc{ID: "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := ms.data["blog:content:book:b"]; !ok {
		t.Errorf("unexpected keys %v", ms.order)
	}
}

func TestPut_RejectsMissingID(t *testing.T) {
	repo, _ := newTestRepo(t)
	err := repo.Put(context.Background(), domcontent.Essay, Doc{Title: "x"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestItems_NewestFirstAndKindAccessors(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	seed := &Seed{
		Projects: []Doc{
			{ID: "old", Title: "Old", Technologies: []string{"Go"}, PublishedAt: day(1)},
			{ID: "new", Title: "New", Body: "desc", PublishedAt: day(9)},
			{ID: "a-mid", Title: "Mid", PublishedAt: day(5)},
			{ID: "b-mid", Title: "Mid 2", PublishedAt: day(5)},
		},
		Books: []Doc{{ID: "bk", Title: "Book", Author: "Ann Author"}},
	}
	n, err := repo.Seed(ctx, seed)
	if err != nil || n != 5 {
		t.Fatalf("Seed = %d, %v", n, err)
	}

	items, err := repo.Items(ctx, domcontent.Project)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	var ids []string
	for i := range items {
		ids = append(ids, items[i].ID())
	}
	want := []string{"new", "a-mid", "b-mid", "old"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
	if got := items[3].TagTokens(); len(got) != 1 || got[0] != "Go" {
		t.Errorf("project technologies = %v", got)
	}
	if items[0].Summary() != "desc" {
		t.Errorf("project summary should fall back to description, got %q", items[0].Summary())
	}

	books, err := repo.Items(ctx, domcontent.Book)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if got := books[0].Values(domcontent.FieldAuthor); len(got) != 1 || got[0] != "Ann Author" {
		t.Errorf("book author = %v", got)
	}
}

func TestItems_OnlyPublished(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	n, err := repo.Seed(ctx, &Seed{Essays: []Doc{
		{ID: "live", Title: "Live", Status: StatusPublished, PublishedAt: day(3)},
		{ID: "unset", Title: "No status", PublishedAt: day(2)},
		{ID: "wip", Title: "Work in progress", Status: StatusDraft},
		{ID: "old", Title: "Retired", Status: StatusArchived},
	}})
	if err != nil || n != 4 {
		t.Fatalf("Seed = %d, %v", n, err)
	}
	if _, ok := ms.data["folio:content:essay:wip"]; !ok {
		t.Fatal("drafts must still be stored")
	}

	items, err := repo.Items(ctx, domcontent.Essay)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 2 || items[0].ID() != "live" || items[1].ID() != "unset" {
		ids := make([]string, len(items))
		for i := range items {
			ids[i] = items[i].ID()
		}
		t.Errorf("ids = %v, want [live unset]", ids)
	}
}

func TestPut_RejectsUnknownStatus(t *testing.T) {
	repo, _ := newTestRepo(t)
	err := repo.Put(context.Background(), domcontent.Essay, Doc{ID: "e1", Title: "x", Status: "scheduled"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestItems_EmptyIsNonNil(t *testing.T) {
	repo, _ := newTestRepo(t)
	items, err := repo.Items(context.Background(), domcontent.Essay)
	if err != nil || items == nil || len(items) != 0 {
		t.Errorf("Items = %v, %v", items, err)
	}
}

func TestItems_SkipsKeysDeletedAfterScan(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()
	_ = repo.Put(ctx, domcontent.Essay, Doc{ID: "a", Title: "A"})
	_ = repo.Put(ctx, domcontent.Essay, Doc{ID: "b", Title: "B"})
	delete(ms.data, "folio:content:essay:a")

	items, err := repo.Items(ctx, domcontent.Essay)
	if err != nil || len(items) != 1 || items[0].ID() != "b" {
		t.Errorf("Items = %v, %v", items, err)
	}
}

func TestItems_CorruptDocument(t *testing.T) {
	repo, ms := newTestRepo(t)
	_ = ms.Set(context.Background(), "folio:content:essay:x", []byte("{not json"))
	if _, err := repo.Items(context.Background(), domcontent.Essay); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestItems_ScanError(t *testing.T) {
	boom := errors.New("down")
	repo := New(&mockStore{scanErr: boom}, "")
	if _, err := repo.Items(context.Background(), domcontent.Book); !errors.Is(err, boom) {
		t.Errorf("expected wrapped scan error, got %v", err)
	}
}

func TestItems_MergesEssayNetVotes(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, "").WithVotes(stubTallies{
		{Target: domvote.Target{Kind: domvote.TargetEssay, ID: "e1"}, Tally: domvote.Tally{Upvotes: 4, Downvotes: 1}},
		{Target: domvote.Target{Kind: domvote.TargetComment, ID: "e1"}, Tally: domvote.Tally{Upvotes: 9}},
	})
	ctx := context.Background()
	_ = repo.Put(ctx, domcontent.Essay, Doc{ID: "e1", Title: "One"})

	items, err := repo.Items(ctx, domcontent.Essay)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if items[0].NetVotes() != 3 {
		t.Errorf("NetVotes = %d, want 3", items[0].NetVotes())
	}
}

func TestExists(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	_ = repo.Put(ctx, domcontent.Essay, Doc{ID: "e1"})

	ok, err := repo.Exists(ctx, domcontent.Essay, "e1")
	if err != nil || !ok {
		t.Errorf("Exists(e1) = %v, %v", ok, err)
	}
	ok, _ = repo.Exists(ctx, domcontent.Project, "e1")
	if ok {
		t.Error("kinds must not share keys")
	}
}
