package domain

import "time"

// ArticleStatus enumerates the article lifecycle states.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
)

// Author identifies who wrote an article.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article is the core authored entity. Content is rich text (HTML).
// PublishedAt is non-nil exactly when Status is published.
type Article struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	Summary     string        `json:"summary"`
	Author      Author        `json:"author"`
	Category    string        `json:"category"`
	Tags        []string      `json:"tags"`
	Image       string        `json:"image"`
	Views       int           `json:"views"`
	Status      ArticleStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	PublishedAt *time.Time    `json:"publishedAt"`
}

// Document is anything the search engine can index: an article, a hadith,
// a companion profile. Content is expected to be plain text.
type Document struct {
	ID      string
	Title   string
	Content string
	Type    string
	Tags    []string
}

// Posting records one document occurrence of a term.
type Posting struct {
	DocID     string `json:"docId"`
	Frequency int    `json:"frequency"`
}

// TermPostings is the persisted shape of one inverted-index row.
type TermPostings struct {
	Term     string
	Postings []Posting
}

// UserDataEntry is a raw row from the user-data collection. Value holds the
// serialized record; tombstoned rows are never surfaced through reads.
type UserDataEntry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// Bookmark marks a content item as a favorite of one user.
type Bookmark struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	ItemID   string    `json:"itemId"`
	Title    string    `json:"title"`
	Type     string    `json:"type"`
	Category string    `json:"category"`
	AddedAt  time.Time `json:"addedAt"`
}

// ReadLaterItem queues a content item for later reading.
type ReadLaterItem struct {
	ID       string     `json:"id"`
	UserID   string     `json:"userId"`
	ItemID   string     `json:"itemId"`
	Title    string     `json:"title"`
	Type     string     `json:"type"`
	Category string     `json:"category"`
	AddedAt  time.Time  `json:"addedAt"`
	Read     bool       `json:"read"`
	ReadAt   *time.Time `json:"readAt"`
}

// CommentReport captures a complaint about a comment.
type CommentReport struct {
	Reason     string    `json:"reason"`
	ReporterID string    `json:"reporterId"`
	ReportedAt time.Time `json:"reportedAt"`
}

// Comment is a reader comment on an article. Replies are stored inline,
// ordered by arrival.
type Comment struct {
	ID        string          `json:"id"`
	ArticleID string          `json:"articleId"`
	Author    string          `json:"author"`
	Avatar    string          `json:"avatar"`
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Likes     int             `json:"likes"`
	Dislikes  int             `json:"dislikes"`
	Replies   []Comment       `json:"replies"`
	Approved  bool            `json:"isApproved"`
	Reports   []CommentReport `json:"reports,omitempty"`
}

// Rating is one user's score for one article; at most one per (user, article).
type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ArticleID string    `json:"articleId"`
	Value     int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// RatingSummary aggregates the ratings of one article.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// InteractionType enumerates lightweight article reactions.
type InteractionType string

const (
	InteractionLike     InteractionType = "like"
	InteractionDislike  InteractionType = "dislike"
	InteractionBookmark InteractionType = "bookmark"
	InteractionShare    InteractionType = "share"
)

// Interaction records a single user reaction to an article.
type Interaction struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	ArticleID string          `json:"articleId"`
	Type      InteractionType `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
}

// InteractionStats is the per-article reaction aggregate, maintained by
// read-modify-write under a deterministic key.
type InteractionStats struct {
	Likes     int `json:"likes"`
	Dislikes  int `json:"dislikes"`
	Bookmarks int `json:"bookmarks"`
	Shares    int `json:"shares"`
}

// Notification is an in-app message for the user.
type Notification struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	Priority  string     `json:"priority"`
	CreatedAt time.Time  `json:"createdAt"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"readAt"`
}

// BiographyEvent is one entry of the prophetic biography timeline.
type BiographyEvent struct {
	ID            string
	Year          string
	Date          string
	Title         string
	TitleAr       string
	Description   string
	DescriptionAr string
	Category      string
}

// Hadith is a narrated saying with its source attribution.
type Hadith struct {
	ID       string
	Text     string
	TextAr   string
	Source   string
	SourceAr string
	Category string
	Tags     []string
}

// Companion profiles one of the companions.
type Companion struct {
	ID            string
	Name          string
	NameAr        string
	Title         string
	TitleAr       string
	Description   string
	DescriptionAr string
	Category      string
	Image         string
}

// BattleStat is a labelled figure shown alongside a battle.
type BattleStat struct {
	Label string
	Value string
}

// Battle describes one historical battle.
type Battle struct {
	ID            string
	Name          string
	NameAr        string
	Date          string
	Result        string
	Description   string
	DescriptionAr string
	Stats         []BattleStat
}
