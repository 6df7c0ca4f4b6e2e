package chi

import (
	"time"

	domcomment "github.com/kailas-cloud/folio/internal/domain/comment"
	"github.com/kailas-cloud/folio/internal/domain/search/result"
	domvote "github.com/kailas-cloud/folio/internal/domain/vote"
	contactuc "github.com/kailas-cloud/folio/internal/usecase/contact"
	searchuc "github.com/kailas-cloud/folio/internal/usecase/search"
	voteuc "github.com/kailas-cloud/folio/internal/usecase/vote"
)

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// --- search ---

type searchResult struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	URL           string     `json:"url"`
	Score         float64    `json:"score"`
	MatchedFields []string   `json:"matchedFields"`
	Tags          []string   `json:"tags"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
	Views         int        `json:"views"`
	Votes         int        `json:"votes"`
}

type searchFilters struct {
	Type string `json:"type"`
	Tag  string `json:"tag,omitempty"`
	Sort string `json:"sort"`
}

type searchResponse struct {
	Success bool           `json:"success"`
	Results []searchResult `json:"results"`
	Total   int            `json:"total"`
	Query   string         `json:"query"`
	Filters searchFilters  `json:"filters"`
}

type suggestion struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

type suggestionsResponse struct {
	Suggestions []suggestion `json:"suggestions"`
}

type tagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type tagsResponse struct {
	Tags []tagCount `json:"tags"`
}

func searchResultToDTO(r *result.Result) searchResult {
	fields := make([]string, len(r.MatchedFields()))
	for i, f := range r.MatchedFields() {
		fields[i] = string(f)
	}
	tags := r.Tags()
	if tags == nil {
		tags = []string{}
	}
	out := searchResult{
		ID:            r.ID(),
		Type:          string(r.Kind()),
		Title:         r.Title(),
		URL:           r.URL(),
		Score:         r.Score(),
		MatchedFields: fields,
		Tags:          tags,
		Views:         r.Views(),
		Votes:         r.NetVotes(),
	}
	if t := r.PublishedAt(); !t.IsZero() {
		out.PublishedAt = &t
	}
	return out
}

func suggestionsToDTO(ss []searchuc.Suggestion) []suggestion {
	out := make([]suggestion, len(ss))
	for i, s := range ss {
		out[i] = suggestion{Text: s.Text, Type: string(s.Kind)}
	}
	return out
}

func tagsToDTO(ts []searchuc.TagCount) []tagCount {
	out := make([]tagCount, len(ts))
	for i, t := range ts {
		out[i] = tagCount{Tag: t.Tag, Count: t.Count}
	}
	return out
}

// --- votes ---

type voteRequest struct {
	VoteType string `json:"voteType"`
}

type tallyDTO struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	Ratio     int `json:"ratio"`
}

type voteResponse struct {
	Success bool     `json:"success"`
	Action  string   `json:"action,omitempty"`
	Votes   tallyDTO `json:"votes"`
}

type targetTallyDTO struct {
	TargetID   string   `json:"targetId"`
	TargetType string   `json:"targetType"`
	Votes      tallyDTO `json:"votes"`
}

type popularResponse struct {
	Success bool             `json:"success"`
	Items   []targetTallyDTO `json:"items"`
}

type analyticsResponse struct {
	Success        bool             `json:"success"`
	TotalUpvotes   int              `json:"totalUpvotes"`
	TotalDownvotes int              `json:"totalDownvotes"`
	MostVoted      []targetTallyDTO `json:"mostVoted"`
}

func tallyToDTO(t domvote.Tally) tallyDTO {
	return tallyDTO{Upvotes: t.Upvotes, Downvotes: t.Downvotes, Ratio: t.Ratio()}
}

func targetTalliesToDTO(tts []domvote.TargetTally) []targetTallyDTO {
	out := make([]targetTallyDTO, len(tts))
	for i, tt := range tts {
		out[i] = targetTallyDTO{
			TargetID:   tt.Target.ID,
			TargetType: string(tt.Target.Kind),
			Votes:      tallyToDTO(tt.Tally),
		}
	}
	return out
}

func analyticsToDTO(a voteuc.Analytics) analyticsResponse {
	return analyticsResponse{
		Success:        true,
		TotalUpvotes:   a.TotalUpvotes,
		TotalDownvotes: a.TotalDownvotes,
		MostVoted:      targetTalliesToDTO(a.MostVoted),
	}
}

// --- comments ---

type commentRequest struct {
	EssayID  string `json:"essayId"`
	ParentID string `json:"parentId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Content  string `json:"content"`
	Honeypot string `json:"honeypot"`
}

// commentDTO is the public view. Email and client details are admin-only.
type commentDTO struct {
	ID        string    `json:"id"`
	EssayID   string    `json:"essayId"`
	ParentID  string    `json:"parentId,omitempty"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type adminCommentDTO struct {
	commentDTO
	Email       string     `json:"email"`
	Approved    bool       `json:"approved"`
	Spam        bool       `json:"spam"`
	IP          string     `json:"ip,omitempty"`
	UserAgent   string     `json:"userAgent,omitempty"`
	ModeratedAt *time.Time `json:"moderatedAt,omitempty"`
}

type postCommentResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Comment commentDTO `json:"comment"`
}

type commentsResponse struct {
	Success  bool         `json:"success"`
	Comments []commentDTO `json:"comments"`
}

type adminCommentsResponse struct {
	Success  bool              `json:"success"`
	Comments []adminCommentDTO `json:"comments"`
}

type moderatedResponse struct {
	Success bool            `json:"success"`
	Comment adminCommentDTO `json:"comment"`
}

func commentToDTO(c *domcomment.Comment) commentDTO {
	return commentDTO{
		ID:        c.ID,
		EssayID:   c.EssayID,
		ParentID:  c.ParentID,
		Name:      c.Author,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func adminCommentToDTO(c *domcomment.Comment) adminCommentDTO {
	out := adminCommentDTO{
		commentDTO: commentToDTO(c),
		Email:      c.Email,
		Approved:   c.Approved,
		Spam:       c.Spam,
		IP:         c.IP,
		UserAgent:  c.UA,
	}
	if !c.ModeratedAt.IsZero() {
		t := c.ModeratedAt
		out.ModeratedAt = &t
	}
	return out
}

func commentsToDTO(cs []domcomment.Comment) []commentDTO {
	out := make([]commentDTO, len(cs))
	for i := range cs {
		out[i] = commentToDTO(&cs[i])
	}
	return out
}

func adminCommentsToDTO(cs []domcomment.Comment) []adminCommentDTO {
	out := make([]adminCommentDTO, len(cs))
	for i := range cs {
		out[i] = adminCommentToDTO(&cs[i])
	}
	return out
}

// --- contact ---

type contactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Honeypot string `json:"honeypot"`
}

type contactInfoResponse struct {
	Success bool           `json:"success"`
	Contact contactuc.Info `json:"contact"`
}
