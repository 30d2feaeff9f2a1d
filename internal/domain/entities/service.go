package entities

import "time"

// Section is one titled block of a service post. Images on the parent
// service are index-aligned with sections; an empty string is a placeholder.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ServiceStats holds the derived counters for a service post.
type ServiceStats struct {
	Views       int         `json:"views"`
	Likes       int         `json:"likes"`
	Shares      int         `json:"shares"`
	Ratings     map[int]int `json:"ratings"` // per-star histogram
	TotalRating float64     `json:"totalRating"`
}

// Service is a multi-section post published by a manager: the unit users
// rate, comment on, and react to.
type Service struct {
	ID        string       `json:"id"`
	CompanyID string       `json:"companyId"`
	UserID    string       `json:"userId"` // owning manager
	Sections  []Section    `json:"sections"`
	Images    []string     `json:"images"`
	Tags      []string     `json:"tags"`
	Stats     ServiceStats `json:"stats"`

	// AverageRating is the mean of all comments' nonzero author ratings,
	// rounded to one decimal.
	AverageRating float64 `json:"averageRating"`

	// Likes is the set of user ids that currently like this service.
	// Stats.Likes is kept in lockstep by the toggle operations.
	Likes []string `json:"likes"`

	// Views maps user id to the unix-millisecond timestamp of that user's
	// last counted view, for the view cooldown.
	Views map[string]int64 `json:"views"`

	// Ratings maps user id to a 1-5 star value. Write-once per user;
	// Stats.TotalRating is the mean of these values.
	Ratings map[string]int `json:"ratings"`

	// Comments are ordered newest first.
	Comments []*Comment `json:"comments"`

	CreatedAt time.Time `json:"createdAt"`
}

// Comment is a user comment on a service, optionally carrying the author's
// star rating (0 means unset and is excluded from the service average).
type Comment struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Text         string    `json:"text"`
	AuthorRating int       `json:"authorRating"`
	Likes        []string  `json:"likes"`
	Dislikes     []string  `json:"dislikes"`
	Replies      []*Reply  `json:"replies"` // ordered oldest first
	CreatedAt    time.Time `json:"createdAt"`
}

// Reply is an official answer below a comment or review, written by the
// owning manager.
type Reply struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Likes     []string  `json:"likes"`
	Dislikes  []string  `json:"dislikes"`
	CreatedAt time.Time `json:"createdAt"`
}
