package spam

import (
	"slices"
	"strings"
	"testing"

	domspam "github.com/kailas-cloud/folio/internal/domain/spam"
)

func TestClassify_PromotionalCommentIsHeld(t *testing.T) {
	c := NewClassifier(domspam.DefaultThreshold, domspam.CommentWeights())
	got := c.Classify(domspam.Submission{
		Name:    "Sam",
		Email:   "test@test.com",
		Content: "buy cheap viagra now!!! http://a http://b http://c",
		EssayID: "e1",
	})

	if got.Score < 0.7 {
		t.Errorf("Score = %f, want >= 0.7", got.Score)
	}
	if got.Decision != domspam.Hold {
		t.Errorf("Decision = %q, want %q", got.Decision, domspam.Hold)
	}
	for _, s := range []domspam.Signal{domspam.SignalBlacklist, domspam.SignalLinks, domspam.SignalEmail} {
		if !slices.Contains(got.Signals, s) {
			t.Errorf("Signals = %v, missing %q", got.Signals, s)
		}
	}
}

func TestClassify_HoneypotShortCircuits(t *testing.T) {
	c := NewClassifier(domspam.DefaultThreshold, domspam.ContactWeights())
	got := c.Classify(domspam.Submission{
		Name:     "Alice Walker",
		Email:    "alice@example.com",
		Subject:  "Hello",
		Content:  "I enjoyed your essay on systems thinking.",
		Honeypot: "http://bot.example",
	})

	if got.Decision != domspam.Hold {
		t.Errorf("Decision = %q, want hold", got.Decision)
	}
	if got.Score != 0 {
		t.Errorf("Score = %f, honeypot must skip scoring", got.Score)
	}
	if len(got.Signals) != 1 || got.Signals[0] != domspam.SignalHoneypot {
		t.Errorf("Signals = %v", got.Signals)
	}
}

func TestClassify_BenignIsAccepted(t *testing.T) {
	c := NewClassifier(0, domspam.CommentWeights())
	got := c.Classify(domspam.Submission{
		Name:    "Alice",
		Email:   "alice@example.com",
		Content: "Great essay, thanks for writing it.",
	})
	if got.Decision != domspam.Accept {
		t.Errorf("Decision = %q, want accept", got.Decision)
	}
	if got.Score != 0 {
		t.Errorf("Score = %f, want 0", got.Score)
	}
	if c.Threshold() != domspam.DefaultThreshold {
		t.Errorf("Threshold() = %f, want default", c.Threshold())
	}
}

func TestClassify_ThresholdIsStrict(t *testing.T) {
	c := NewClassifier(0.7, domspam.CommentWeights())
	// 3 blacklist words (0.3) + suspicious email (0.4) = 0.7 exactly.
	got := c.Classify(domspam.Submission{
		Email:   "tempuser@example.com",
		Content: "buy cheap money",
	})
	if got.Score != 0.7 {
		t.Fatalf("Score = %v, want 0.7", got.Score)
	}
	if got.Decision != domspam.Accept {
		t.Errorf("Decision = %q, score equal to threshold must be accepted", got.Decision)
	}
}

func TestScore_Signals(t *testing.T) {
	comment := domspam.CommentWeights()
	contact := domspam.ContactWeights()
	benignEmail := "alice@example.com"

	tests := []struct {
		name    string
		sub     domspam.Submission
		weights domspam.Weights
		want    float64
		signal  domspam.Signal
	}{
		{
			name:    "each distinct blacklist word",
			sub:     domspam.Submission{Email: benignEmail, Content: "cash cash loan"},
			weights: comment,
			want:    0.2,
			signal:  domspam.SignalBlacklist,
		},
		{
			name:    "two links are fine, three are not",
			sub:     domspam.Submission{Email: benignEmail, Content: "see https://a.io https://b.io https://c.io"},
			weights: comment,
			want:    0.3,
			signal:  domspam.SignalLinks,
		},
		{
			name:    "shouting",
			sub:     domspam.Submission{Email: benignEmail, Content: "THIS IS GREAT WORK"},
			weights: comment,
			want:    0.2,
			signal:  domspam.SignalCaps,
		},
		{
			name:    "short local part",
			sub:     domspam.Submission{Email: "ab@example.com", Content: "hello there"},
			weights: comment,
			want:    0.4,
			signal:  domspam.SignalEmail,
		},
		{
			name:    "disposable marker",
			sub:     domspam.Submission{Email: "someone@spambox.io", Content: "hello there"},
			weights: comment,
			want:    0.4,
			signal:  domspam.SignalEmail,
		},
		{
			name:    "repeated word",
			sub:     domspam.Submission{Email: benignEmail, Content: strings.Repeat("great ", 6)},
			weights: comment,
			want:    0.2,
			signal:  domspam.SignalRepetition,
		},
		{
			name:    "contact name too short",
			sub:     domspam.Submission{Name: "x", Email: benignEmail, Subject: "hi", Content: "hello there"},
			weights: contact,
			want:    0.2,
			signal:  domspam.SignalNameLength,
		},
		{
			name:    "contact name with digits",
			sub:     domspam.Submission{Name: "bob12345", Email: benignEmail, Subject: "hi", Content: "hello there"},
			weights: contact,
			want:    0.3,
			signal:  domspam.SignalNameDigits,
		},
		{
			name:    "contact subject is scanned",
			sub:     domspam.Submission{Name: "Bob", Email: benignEmail, Subject: "Cheap loan", Content: "hello there"},
			weights: contact,
			want:    0.2,
			signal:  domspam.SignalBlacklist,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, signals := Score(tc.sub, tc.weights)
			if got != tc.want {
				t.Errorf("Score = %v, want %v (signals %v)", got, tc.want, signals)
			}
			if !slices.Contains(signals, tc.signal) {
				t.Errorf("signals = %v, missing %q", signals, tc.signal)
			}
		})
	}
}

func TestScore_CapsRatio(t *testing.T) {
	comment := domspam.CommentWeights()

	tests := []struct {
		name     string
		email    string
		content  string
		want     float64
		caps     bool
		decision domspam.Decision
	}{
		{
			name:     "shouted blacklist words count as caps",
			email:    "ab@example.com",
			content:  "BUY CHEAP viagra now",
			want:     0.9,
			caps:     true,
			decision: domspam.Hold,
		},
		{
			name:     "digits dilute the ratio",
			email:    "alice@example.com",
			content:  "Hi Al, 1234567890",
			want:     0,
			decision: domspam.Accept,
		},
		{
			name:     "text made only of blacklist words",
			email:    "alice@example.com",
			content:  "FREE",
			want:     0.3,
			caps:     true,
			decision: domspam.Accept,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewClassifier(domspam.DefaultThreshold, comment).Classify(
				domspam.Submission{Email: tc.email, Content: tc.content})
			if got.Score != tc.want {
				t.Errorf("Score = %v, want %v (signals %v)", got.Score, tc.want, got.Signals)
			}
			if slices.Contains(got.Signals, domspam.SignalCaps) != tc.caps {
				t.Errorf("signals = %v, caps expected %v", got.Signals, tc.caps)
			}
			if got.Decision != tc.decision {
				t.Errorf("Decision = %q, want %q", got.Decision, tc.decision)
			}
		})
	}
}

func TestScore_LowercaseBlacklistKeepsCaps(t *testing.T) {
	sub := domspam.Submission{Email: "alice@example.com", Content: "THIS Is great"}
	before, _ := Score(sub, domspam.CommentWeights())

	sub.Content += strings.Repeat(" buy", 20)
	after, signals := Score(sub, domspam.CommentWeights())
	if after < before {
		t.Errorf("score fell from %v to %v", before, after)
	}
	if !slices.Contains(signals, domspam.SignalCaps) {
		t.Errorf("signals = %v, caps must survive lowercase blacklist padding", signals)
	}
}

func TestScore_CommentIgnoresSubjectAndName(t *testing.T) {
	got, _ := Score(domspam.Submission{
		Name:    "x1234",
		Email:   "alice@example.com",
		Subject: "cheap casino",
		Content: "hello there",
	}, domspam.CommentWeights())
	if got != 0 {
		t.Errorf("Score = %v, want 0", got)
	}
}

func TestScore_CappedAtOne(t *testing.T) {
	got, _ := Score(domspam.Submission{
		Email:   "t@temp.io",
		Content: "BUY CHEAP DISCOUNT FREE MONEY EARN CASH LOAN VIAGRA CASINO http://a http://b http://c",
	}, domspam.CommentWeights())
	if got != 1.0 {
		t.Errorf("Score = %v, want 1.0", got)
	}
}

func TestScore_EmptyFieldsAreTotal(t *testing.T) {
	got, _ := Score(domspam.Submission{}, domspam.ContactWeights())
	// Empty email has an empty local part; empty name is too short.
	if got != 0.6 {
		t.Errorf("Score = %v, want 0.6", got)
	}
}

func TestScore_MonotonicInBlacklistTerms(t *testing.T) {
	bases := []string{
		"This Is My Honest Opinion About It",
		"THIS Is great",
		"plain lowercase words here",
		"ok",
	}
	for _, w := range []domspam.Weights{domspam.CommentWeights(), domspam.ContactWeights()} {
		for _, base := range bases {
			content := base
			prev, _ := Score(domspam.Submission{Name: "Alice", Email: "alice@example.com", Content: content}, w)
			for _, term := range domspam.DefaultBlacklist {
				for _, variant := range []string{term, strings.ToUpper(term)} {
					content += " " + variant
					got, _ := Score(domspam.Submission{Name: "Alice", Email: "alice@example.com", Content: content}, w)
					if got < prev {
						t.Fatalf("score decreased from %v to %v after appending %q to %q", prev, got, variant, base)
					}
					prev = got
				}
			}
		}
	}
}
