package contact

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
	domcontact "github.com/kailas-cloud/folio/internal/domain/contact"
	domspam "github.com/kailas-cloud/folio/internal/domain/spam"
	"github.com/kailas-cloud/folio/internal/usecase/spam"
)

type mockOutbox struct {
	queued []domcontact.Email
	err    error
}

func (m *mockOutbox) Enqueue(_ context.Context, emails ...domcontact.Email) error {
	if m.err != nil {
		return m.err
	}
	m.queued = append(m.queued, emails...)
	return nil
}

var fixedNow = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func newTestService(out *mockOutbox) *Service {
	svc := New(out, spam.NewClassifier(0, domspam.ContactWeights()), Config{
		From:  "site@example.org",
		Owner: "owner@example.org",
	})
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func benign() domcontact.Message {
	return domcontact.Message{
		Name:    "Jordan Lee",
		Email:   "jordan@example.com",
		Subject: "Collaboration",
		Body:    "Hello, I enjoyed your essay on caching and would like to chat.",
		IP:      "10.0.0.1",
	}
}

func TestSend_QueuesNotificationAndConfirmation(t *testing.T) {
	out := &mockOutbox{}
	svc := newTestService(out)

	if err := svc.Send(context.Background(), benign()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.queued) != 2 {
		t.Fatalf("queued %d emails, want 2", len(out.queued))
	}

	admin, user := out.queued[0], out.queued[1]
	if admin.To != "owner@example.org" || admin.ReplyTo != "jordan@example.com" {
		t.Errorf("admin email routed wrong: %+v", admin)
	}
	if admin.Subject != "New Contact Form Submission: Collaboration" {
		t.Errorf("admin subject = %q", admin.Subject)
	}
	if !strings.Contains(admin.Text, "IP: 10.0.0.1") {
		t.Errorf("admin text missing IP: %q", admin.Text)
	}
	if user.To != "jordan@example.com" || user.From != "site@example.org" {
		t.Errorf("confirmation routed wrong: %+v", user)
	}
	if !user.QueuedAt.Equal(fixedNow) {
		t.Errorf("queued at = %v", user.QueuedAt)
	}
}

func TestSend_HoneypotIsInvalidSubmission(t *testing.T) {
	out := &mockOutbox{}
	svc := newTestService(out)

	msg := benign()
	msg.Honeypot = "filled"
	err := svc.Send(context.Background(), msg)
	if !errors.Is(err, domcontact.ErrInvalidSubmission) {
		t.Errorf("expected ErrInvalidSubmission, got %v", err)
	}
	if len(out.queued) != 0 {
		t.Error("nothing should be queued")
	}
}

func TestSend_SpamRejected(t *testing.T) {
	out := &mockOutbox{}
	svc := newTestService(out)

	msg := benign()
	msg.Name = "x"
	msg.Email = "temp@spam.io"
	msg.Subject = "Buy cheap casino money"
	err := svc.Send(context.Background(), msg)
	if !errors.Is(err, domcontact.ErrLooksLikeSpam) {
		t.Errorf("expected ErrLooksLikeSpam, got %v", err)
	}
	if len(out.queued) != 0 {
		t.Error("nothing should be queued")
	}
}

func TestSend_Validation(t *testing.T) {
	svc := newTestService(&mockOutbox{})

	msg := benign()
	msg.Body = "short"
	err := svc.Send(context.Background(), msg)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "message" {
		t.Errorf("expected message validation error, got %v", err)
	}
}

func TestSend_OutboxError(t *testing.T) {
	boom := errors.New("down")
	svc := newTestService(&mockOutbox{err: boom})
	if err := svc.Send(context.Background(), benign()); !errors.Is(err, boom) {
		t.Errorf("expected wrapped outbox error, got %v", err)
	}
}

func TestInfo_DefaultsToOwner(t *testing.T) {
	svc := newTestService(&mockOutbox{})
	if got := svc.Info().Email; got != "owner@example.org" {
		t.Errorf("info email = %q", got)
	}
}
