package entities

// Snapshot is the aggregate root holding every entity in the platform, and
// at the same time the persistence document: the whole value is serialized
// on every mutation and loaded back on startup or import.
type Snapshot struct {
	Users               []*User               `json:"users"`
	Sessions            []*Session            `json:"sessions"`
	Companies           []*Company            `json:"companies"`
	ManagerApplications []*ManagerApplication `json:"managerApplications"`
	Services            []*Service            `json:"services"`
	CompanyApplications []*CompanyApplication `json:"applications"`
	Reviews             []*Review             `json:"reviews"`
	ReviewVotes         []*ReviewVote         `json:"ratings"`
}

// Normalize makes sure every collection is present and every reactive
// sub-collection is non-nil. Imported documents may omit any of them.
func (s *Snapshot) Normalize() {
	if s.Users == nil {
		s.Users = []*User{}
	}
	if s.Sessions == nil {
		s.Sessions = []*Session{}
	}
	if s.Companies == nil {
		s.Companies = []*Company{}
	}
	if s.ManagerApplications == nil {
		s.ManagerApplications = []*ManagerApplication{}
	}
	if s.Services == nil {
		s.Services = []*Service{}
	}
	if s.CompanyApplications == nil {
		s.CompanyApplications = []*CompanyApplication{}
	}
	if s.Reviews == nil {
		s.Reviews = []*Review{}
	}
	if s.ReviewVotes == nil {
		s.ReviewVotes = []*ReviewVote{}
	}
	for _, svc := range s.Services {
		svc.Normalize()
	}
	for _, r := range s.Reviews {
		if r.Replies == nil {
			r.Replies = []*Reply{}
		}
		for _, rp := range r.Replies {
			rp.Normalize()
		}
	}
}

// Normalize initializes absent collections on a service.
func (svc *Service) Normalize() {
	if svc.Sections == nil {
		svc.Sections = []Section{}
	}
	if svc.Images == nil {
		svc.Images = []string{}
	}
	if svc.Tags == nil {
		svc.Tags = []string{}
	}
	if svc.Stats.Ratings == nil {
		svc.Stats.Ratings = map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	}
	if svc.Likes == nil {
		svc.Likes = []string{}
	}
	if svc.Views == nil {
		svc.Views = map[string]int64{}
	}
	if svc.Ratings == nil {
		svc.Ratings = map[string]int{}
	}
	if svc.Comments == nil {
		svc.Comments = []*Comment{}
	}
	for _, c := range svc.Comments {
		c.Normalize()
	}
}

// Normalize initializes absent collections on a comment.
func (c *Comment) Normalize() {
	if c.Likes == nil {
		c.Likes = []string{}
	}
	if c.Dislikes == nil {
		c.Dislikes = []string{}
	}
	if c.Replies == nil {
		c.Replies = []*Reply{}
	}
	for _, r := range c.Replies {
		r.Normalize()
	}
}

// Normalize initializes absent collections on a reply.
func (r *Reply) Normalize() {
	if r.Likes == nil {
		r.Likes = []string{}
	}
	if r.Dislikes == nil {
		r.Dislikes = []string{}
	}
}

// Clone returns a deep copy of the service. Callers outside the store only
// ever see clones, so mutating a returned value cannot corrupt held state.
func (svc *Service) Clone() *Service {
	out := *svc
	out.Sections = append([]Section(nil), svc.Sections...)
	out.Images = append([]string(nil), svc.Images...)
	out.Tags = append([]string(nil), svc.Tags...)
	out.Likes = append([]string(nil), svc.Likes...)
	out.Stats.Ratings = make(map[int]int, len(svc.Stats.Ratings))
	for k, v := range svc.Stats.Ratings {
		out.Stats.Ratings[k] = v
	}
	out.Views = make(map[string]int64, len(svc.Views))
	for k, v := range svc.Views {
		out.Views[k] = v
	}
	out.Ratings = make(map[string]int, len(svc.Ratings))
	for k, v := range svc.Ratings {
		out.Ratings[k] = v
	}
	out.Comments = make([]*Comment, len(svc.Comments))
	for i, c := range svc.Comments {
		out.Comments[i] = c.Clone()
	}
	return &out
}

// Clone returns a deep copy of the comment.
func (c *Comment) Clone() *Comment {
	out := *c
	out.Likes = append([]string(nil), c.Likes...)
	out.Dislikes = append([]string(nil), c.Dislikes...)
	out.Replies = make([]*Reply, len(c.Replies))
	for i, r := range c.Replies {
		out.Replies[i] = r.Clone()
	}
	return &out
}

// Clone returns a deep copy of the reply.
func (r *Reply) Clone() *Reply {
	out := *r
	out.Likes = append([]string(nil), r.Likes...)
	out.Dislikes = append([]string(nil), r.Dislikes...)
	return &out
}

// Clone returns a copy of the user.
func (u *User) Clone() *User {
	out := *u
	return &out
}

// Clone returns a deep copy of the review.
func (r *Review) Clone() *Review {
	out := *r
	out.Replies = make([]*Reply, len(r.Replies))
	for i, rp := range r.Replies {
		out.Replies[i] = rp.Clone()
	}
	return &out
}
