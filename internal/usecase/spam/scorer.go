package spam

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	domspam "github.com/kailas-cloud/folio/internal/domain/spam"
)

var (
	linkRegex   = regexp.MustCompile(`https?://[^\s]+`)
	digitsRegex = regexp.MustCompile(`[0-9]{3,}`)
)

// Score computes the heuristic spam score of a submission in [0,1].
// Signals are additive and never cancel; the sum is capped at 1.0.
// Pure: no I/O, no shared state.
func Score(sub domspam.Submission, w domspam.Weights) (float64, []domspam.Signal) {
	var (
		score   float64
		signals []domspam.Signal
	)
	add := func(weight float64, s domspam.Signal) {
		if weight <= 0 {
			return
		}
		score += weight
		signals = append(signals, s)
	}

	text := sub.Content
	scanned := strings.ToLower(text)
	if w.ScanSubject {
		scanned = strings.ToLower(sub.Subject) + " " + scanned
	}

	if n := blacklistHits(scanned, w.Blacklist); n > 0 && w.BlacklistWord > 0 {
		score += float64(n) * w.BlacklistWord
		signals = append(signals, domspam.SignalBlacklist)
	}

	if len(linkRegex.FindAllStringIndex(text, -1)) > w.MaxLinks {
		add(w.ExcessLinks, domspam.SignalLinks)
	}

	if capsRatio(text, w.Blacklist) > w.CapsRatio {
		add(w.Caps, domspam.SignalCaps)
	}

	if suspiciousEmail(sub.Email, w) {
		add(w.SuspiciousEmail, domspam.SignalEmail)
	}

	if w.NameLength > 0 {
		n := utf8.RuneCountInString(strings.TrimSpace(sub.Name))
		if n < w.NameMin || n > w.NameMax {
			add(w.NameLength, domspam.SignalNameLength)
		}
	}
	if w.NameDigits > 0 && digitsRegex.MatchString(sub.Name) {
		add(w.NameDigits, domspam.SignalNameDigits)
	}

	if maxRepetition(text, w.RepeatMinLen) > w.RepeatMaxSeen {
		add(w.Repetition, domspam.SignalRepetition)
	}

	// Weights are decimal constants; round away float drift so that a sum
	// landing exactly on the threshold compares as equal.
	score = math.Round(score*1e6) / 1e6
	return min(score, 1.0), signals
}

// blacklistHits counts distinct blacklist words contained in lowered text.
func blacklistHits(lowered string, blacklist []string) int {
	seen := make(map[string]struct{}, len(blacklist))
	hits := 0
	for _, word := range blacklist {
		word = strings.ToLower(word)
		if word == "" {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		if strings.Contains(lowered, word) {
			hits++
		}
	}
	return hits
}

// capsRatio is the count of uppercase letters anywhere in text over the
// count of non-space characters outside blacklist occurrences. Blacklist
// words feed the numerator but never the denominator, so appending a
// blacklist term can only raise the ratio. A denominator of zero yields 1
// when text has any uppercase letter and 0 otherwise.
func capsRatio(text string, blacklist []string) float64 {
	upper := 0
	for _, r := range text {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if upper == 0 {
		return 0
	}

	masked := text
	for _, word := range blacklist {
		if word != "" {
			masked = replaceFold(masked, word)
		}
	}
	counted := 0
	for _, r := range masked {
		if !unicode.IsSpace(r) {
			counted++
		}
	}
	if counted == 0 {
		return 1
	}
	return float64(upper) / float64(counted)
}

// replaceFold blanks every case-insensitive occurrence of word in s.
func replaceFold(s, word string) string {
	lw := strings.ToLower(word)
	var b strings.Builder
	for {
		i := indexFold(s, lw)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteByte(' ')
		s = s[i+len(lw):]
	}
}

// indexFold finds lw in s ignoring ASCII case. Non-ASCII bytes must match exactly.
func indexFold(s, lw string) int {
	n := len(lw)
	for i := 0; i+n <= len(s); i++ {
		match := true
		for j := 0; j < n; j++ {
			c := s[i+j]
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c != lw[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func suspiciousEmail(email string, w domspam.Weights) bool {
	lowered := strings.ToLower(strings.TrimSpace(email))
	local, _, _ := strings.Cut(lowered, "@")
	if utf8.RuneCountInString(local) < w.MinLocalPart {
		return true
	}
	for _, marker := range w.EmailMarkers {
		if marker != "" && strings.Contains(lowered, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

// maxRepetition returns the highest occurrence count of any word of at least minLen runes.
func maxRepetition(text string, minLen int) int {
	counts := make(map[string]int)
	best := 0
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if utf8.RuneCountInString(word) < minLen {
			continue
		}
		counts[word]++
		if counts[word] > best {
			best = counts[word]
		}
	}
	return best
}
