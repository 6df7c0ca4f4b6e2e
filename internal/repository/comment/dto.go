package comment

import (
	"strconv"
	"time"

	domcomment "github.com/kailas-cloud/folio/internal/domain/comment"
)

// Hash field names.
const (
	fieldID          = "id"
	fieldEssayID     = "essay_id"
	fieldParentID    = "parent_id"
	fieldAuthor      = "author"
	fieldEmail       = "email"
	fieldContent     = "content"
	fieldApproved    = "approved"
	fieldSpam        = "spam"
	fieldIP          = "ip"
	fieldUA          = "user_agent"
	fieldCreatedAt   = "created_at"
	fieldModeratedAt = "moderated_at"
)

func buildHashFields(c *domcomment.Comment) map[string]string {
	m := map[string]string{
		fieldID:        c.ID,
		fieldEssayID:   c.EssayID,
		fieldAuthor:    c.Author,
		fieldEmail:     c.Email,
		fieldContent:   c.Content,
		fieldApproved:  strconv.FormatBool(c.Approved),
		fieldSpam:      strconv.FormatBool(c.Spam),
		fieldIP:        c.IP,
		fieldUA:        c.UA,
		fieldCreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if c.ParentID != "" {
		m[fieldParentID] = c.ParentID
	}
	if !c.ModeratedAt.IsZero() {
		m[fieldModeratedAt] = c.ModeratedAt.UTC().Format(time.RFC3339Nano)
	}
	return m
}

func moderationFields(c *domcomment.Comment) map[string]string {
	return map[string]string{
		fieldApproved:    strconv.FormatBool(c.Approved),
		fieldSpam:        strconv.FormatBool(c.Spam),
		fieldModeratedAt: c.ModeratedAt.UTC().Format(time.RFC3339Nano),
	}
}

// parseHashFields converts a hash back into a Comment. Unparseable flags read as false.
func parseHashFields(m map[string]string) domcomment.Comment {
	approved, _ := strconv.ParseBool(m[fieldApproved])
	spam, _ := strconv.ParseBool(m[fieldSpam])
	created, _ := time.Parse(time.RFC3339Nano, m[fieldCreatedAt])
	moderated, _ := time.Parse(time.RFC3339Nano, m[fieldModeratedAt])
	return domcomment.Comment{
		ID:          m[fieldID],
		EssayID:     m[fieldEssayID],
		ParentID:    m[fieldParentID],
		Author:      m[fieldAuthor],
		Email:       m[fieldEmail],
		Content:     m[fieldContent],
		Approved:    approved,
		Spam:        spam,
		IP:          m[fieldIP],
		UA:          m[fieldUA],
		CreatedAt:   created,
		ModeratedAt: moderated,
	}
}
