package spam

// Submission is the text of a comment or contact form as submitted.
// Empty fields are treated as empty strings, never as errors.
type Submission struct {
	Name     string
	Email    string
	Subject  string
	Content  string
	Honeypot string
	EssayID  string
}

// Decision is the outcome of classification.
type Decision string

// Decisions.
const (
	Accept Decision = "accept"
	// Hold means hold-for-review: the submission is treated as rejected.
	Hold Decision = "hold-for-review"
)

// Signal names a heuristic that contributed to a score.
type Signal string

// Heuristic signals.
const (
	SignalBlacklist  Signal = "blacklist"
	SignalLinks      Signal = "links"
	SignalCaps       Signal = "caps"
	SignalEmail      Signal = "email"
	SignalNameLength Signal = "name_length"
	SignalNameDigits Signal = "name_digits"
	SignalRepetition Signal = "repetition"
	SignalHoneypot   Signal = "honeypot"
)

// DefaultThreshold is the score above which submissions are held.
const DefaultThreshold = 0.7

// DefaultBlacklist is the promotional vocabulary scanned for.
var DefaultBlacklist = []string{
	"buy", "cheap", "discount", "free", "money", "earn", "cash", "loan", "viagra", "casino",
}

// Weights is a path-specific weight table. A zero weight disables a signal.
type Weights struct {
	Blacklist     []string
	BlacklistWord float64 // per distinct matching word
	ScanSubject   bool    // include the subject in the blacklist scan

	ExcessLinks float64
	MaxLinks    int // more than this many URLs triggers ExcessLinks

	Caps      float64
	CapsRatio float64 // uppercase ratio strictly above this triggers Caps

	SuspiciousEmail float64
	MinLocalPart    int
	EmailMarkers    []string

	NameLength float64
	NameMin    int
	NameMax    int
	NameDigits float64 // 3+ consecutive digits in the name

	Repetition    float64
	RepeatMinLen  int // words shorter than this are ignored
	RepeatMaxSeen int // a word seen more than this many times triggers Repetition
}

// CommentWeights returns the default table for comments.
func CommentWeights() Weights {
	return baseWeights()
}

// ContactWeights returns the default table for the contact form, which
// additionally scans the subject and penalizes suspicious names.
func ContactWeights() Weights {
	w := baseWeights()
	w.ScanSubject = true
	w.NameLength = 0.2
	w.NameMin = 2
	w.NameMax = 50
	w.NameDigits = 0.3
	return w
}

func baseWeights() Weights {
	return Weights{
		Blacklist:       append([]string(nil), DefaultBlacklist...),
		BlacklistWord:   0.1,
		ExcessLinks:     0.3,
		MaxLinks:        2,
		Caps:            0.2,
		CapsRatio:       0.3,
		SuspiciousEmail: 0.4,
		MinLocalPart:    3,
		EmailMarkers:    []string{"temp", "spam", "test"},
		Repetition:      0.2,
		RepeatMinLen:    4,
		RepeatMaxSeen:   5,
	}
}

// Classification is the result of classifying a submission.
// The score is ephemeral: only the decision is persisted by callers.
type Classification struct {
	Decision Decision
	Score    float64
	Signals  []Signal
}

// Held reports whether the submission was held for review.
func (c Classification) Held() bool { return c.Decision == Hold }
