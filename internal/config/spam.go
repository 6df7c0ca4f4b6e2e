package config

import domspam "github.com/kailas-cloud/folio/internal/domain/spam"

// CommentWeights returns the comment weight table with overrides applied.
func (c SpamConfig) CommentWeights() domspam.Weights {
	return c.apply(domspam.CommentWeights(), c.Comment)
}

// ContactWeights returns the contact weight table with overrides applied.
func (c SpamConfig) ContactWeights() domspam.Weights {
	return c.apply(domspam.ContactWeights(), c.Contact)
}

func (c SpamConfig) apply(w domspam.Weights, o WeightsConfig) domspam.Weights {
	if len(c.Blacklist) > 0 {
		w.Blacklist = append([]string(nil), c.Blacklist...)
	}
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&w.BlacklistWord, o.BlacklistWord)
	set(&w.ExcessLinks, o.ExcessLinks)
	set(&w.Caps, o.Caps)
	set(&w.SuspiciousEmail, o.SuspiciousEmail)
	set(&w.NameLength, o.NameLength)
	set(&w.NameDigits, o.NameDigits)
	set(&w.Repetition, o.Repetition)
	return w
}
