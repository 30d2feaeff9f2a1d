package entities

import "time"

// Company is a provider of services, owned by exactly one approved manager.
// Rating is derived from company reviews and recomputed on every change.
type Company struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ManagerID   string    `json:"managerId"`
	Rating      float64   `json:"rating"`
	ApprovedAt  time.Time `json:"approvedAt"`
}

// CompanyApplication is a pending request to register a company for an
// existing manager account.
type CompanyApplication struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Description string            `json:"description"`
	ManagerID   string            `json:"managerId"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Review is a company-level review, independent of service comments.
// A user may review a company at most once.
type Review struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	CompanyID  string    `json:"companyId"`
	Rating     int       `json:"rating"` // 1-5
	Text       string    `json:"text"`
	Likes      int       `json:"likes"`
	Dislikes   int       `json:"dislikes"`
	Replies    []*Reply  `json:"replies"`
	IsFlagged  bool      `json:"isFlagged,omitempty"`
	FlagReason string    `json:"flagReason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReviewVote records a single helpfulness vote on a review. Votes are
// write-once per (review, user) pair.
type ReviewVote struct {
	ID       string `json:"id"`
	ReviewID string `json:"reviewId"`
	UserID   string `json:"userId"`
	IsLike   bool   `json:"isLike"`
}
