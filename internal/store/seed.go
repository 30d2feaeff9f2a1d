package store

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/reviewhub/backend/internal/domain/entities"
)

// Seed builds the default dataset: an admin, a regular user, one pending and
// one approved manager, the approved manager's company with two service
// posts, and one manager application waiting in the admin queue.
func Seed(_ time.Time) *entities.Snapshot {
	return &entities.Snapshot{
		Users: []*entities.User{
			{
				ID:         "user_admin",
				Email:      "admin@example.com",
				Password:   hashPassword("admin123"),
				Role:       entities.RoleAdmin,
				IsApproved: true,
				CreatedAt:  seedTime("2023-01-01T00:00:00Z"),
			},
			{
				ID:         "user_1",
				Email:      "user@example.com",
				Password:   hashPassword("user123"),
				Role:       entities.RoleUser,
				IsApproved: true,
				CreatedAt:  seedTime("2023-01-02T00:00:00Z"),
			},
			{
				ID:         "user_manager_pending",
				Email:      "manager1@company.com",
				Password:   hashPassword("manager123"),
				Role:       entities.RoleManager,
				IsApproved: false,
				CreatedAt:  seedTime("2023-01-03T00:00:00Z"),
			},
			{
				ID:         "user_manager_approved",
				Email:      "manager2@company.com",
				Password:   hashPassword("manager123"),
				Role:       entities.RoleManager,
				IsApproved: true,
				CompanyID:  "comp_1",
				CreatedAt:  seedTime("2023-01-04T00:00:00Z"),
			},
		},
		Sessions: []*entities.Session{},
		Companies: []*entities.Company{
			{
				ID:          "comp_1",
				Name:        "Tech Solutions Inc.",
				Category:    "IT Services",
				Description: "Leading tech service provider",
				ManagerID:   "user_manager_approved",
				Rating:      0,
				ApprovedAt:  seedTime("2023-01-05T00:00:00Z"),
			},
		},
		ManagerApplications: []*entities.ManagerApplication{
			{
				ID:          "mapp_1",
				Email:       "pending@manager.com",
				Password:    hashPassword("manager123"),
				ManagerName: "John Doe",
				CompanyName: "Tech Corp",
				Status:      entities.ApplicationPending,
				CreatedAt:   seedTime("2023-01-01T00:00:00Z"),
			},
		},
		Services: []*entities.Service{
			{
				ID:        "service_1",
				CompanyID: "comp_1",
				UserID:    "user_manager_approved",
				Sections: []entities.Section{
					{Title: "Web Development", Content: "Full-stack development services"},
					{Title: "Technologies", Content: "React, Node.js, PostgreSQL"},
				},
				Images: []string{
					"https://via.placeholder.com/600x400/FF7F50/FFFFFF?text=Web+Dev",
					"https://via.placeholder.com/600x400/6495ED/FFFFFF?text=Tech+Stack",
				},
				Tags: []string{"web", "development", "react", "node"},
				Stats: entities.ServiceStats{
					Views:  150,
					Likes:  45,
					Shares: 12,
				},
				Comments:  []*entities.Comment{},
				CreatedAt: seedTime("2023-01-10T00:00:00Z"),
			},
			{
				ID:        "service_2",
				CompanyID: "comp_1",
				UserID:    "user_manager_approved",
				Sections: []entities.Section{
					{Title: "Mobile Apps", Content: "Cross-platform mobile development"},
				},
				Images: []string{
					"https://via.placeholder.com/600x400/32CD32/FFFFFF?text=Mobile+Apps",
				},
				Tags: []string{"mobile", "flutter", "react-native"},
				Stats: entities.ServiceStats{
					Views:  80,
					Likes:  25,
					Shares: 5,
				},
				AverageRating: 4.0,
				Comments: []*entities.Comment{
					{
						ID:           "comment_1",
						UserID:       "user_1",
						Text:         "Solid delivery, the app shipped on time.",
						AuthorRating: 4,
						Replies: []*entities.Reply{
							{
								ID:        "reply_1",
								UserID:    "user_manager_approved",
								Text:      "Thanks for the feedback!",
								CreatedAt: seedTime("2023-01-13T00:00:00Z"),
							},
						},
						CreatedAt: seedTime("2023-01-12T00:00:00Z"),
					},
				},
				CreatedAt: seedTime("2023-01-11T00:00:00Z"),
			},
		},
		CompanyApplications: []*entities.CompanyApplication{},
		Reviews:             []*entities.Review{},
		ReviewVotes:         []*entities.ReviewVote{},
	}
}

func seedTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func hashPassword(plain string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
