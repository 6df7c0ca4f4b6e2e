package spam

import domspam "github.com/kailas-cloud/folio/internal/domain/spam"

// Classifier turns a heuristic score into an accept/hold decision.
type Classifier struct {
	threshold float64
	weights   domspam.Weights
}

// NewClassifier creates a classifier. threshold <= 0 falls back to the default.
func NewClassifier(threshold float64, weights domspam.Weights) *Classifier {
	if threshold <= 0 {
		threshold = domspam.DefaultThreshold
	}
	return &Classifier{threshold: threshold, weights: weights}
}

// Classify holds submissions with a filled honeypot without scoring them,
// otherwise holds when the score is strictly above the threshold.
func (c *Classifier) Classify(sub domspam.Submission) domspam.Classification {
	if sub.Honeypot != "" {
		return domspam.Classification{
			Decision: domspam.Hold,
			Signals:  []domspam.Signal{domspam.SignalHoneypot},
		}
	}

	score, signals := Score(sub, c.weights)
	decision := domspam.Accept
	if score > c.threshold {
		decision = domspam.Hold
	}
	return domspam.Classification{Decision: decision, Score: score, Signals: signals}
}

// Threshold returns the configured hold threshold.
func (c *Classifier) Threshold() float64 { return c.threshold }
