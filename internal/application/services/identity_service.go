package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/reviewhub/backend/internal/domain/entities"
	"github.com/reviewhub/backend/internal/store"
	apperrors "github.com/reviewhub/backend/pkg/errors"
)

// IdentityService handles registration, credential checks, sessions and the
// manager approval queue.
type IdentityService struct {
	store *store.Store
}

// NewIdentityService creates a new identity service.
func NewIdentityService(st *store.Store) *IdentityService {
	return &IdentityService{store: st}
}

// RegisterInput carries a registration request. ManagerName and CompanyName
// are only read for the manager role.
type RegisterInput struct {
	Email       string
	Password    string
	Role        entities.Role
	ManagerName string
	CompanyName string
}

// RegisterResult is either a ready-to-use user or a queued manager
// application, never both.
type RegisterResult struct {
	User        *entities.User
	Application *entities.ManagerApplication
}

// Register creates a user, or queues a manager application when the manager
// role is requested. Manager registration never creates a session or a user
// row; the account only materializes on admin approval.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if in.Role == "" {
		in.Role = entities.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	var result RegisterResult
	err = s.store.Update(ctx, func(st *store.State) error {
		if st.UserByEmail(in.Email) != nil {
			return apperrors.NewDuplicateEmailError("email already registered")
		}

		if in.Role == entities.RoleManager {
			app := &entities.ManagerApplication{
				ID:          uuid.New().String(),
				Email:       in.Email,
				Password:    string(hash),
				ManagerName: in.ManagerName,
				CompanyName: in.CompanyName,
				Status:      entities.ApplicationPending,
				CreatedAt:   st.Now(),
			}
			st.ManagerApplications = append(st.ManagerApplications, app)
			copied := *app
			result.Application = &copied
			return nil
		}

		user := &entities.User{
			ID:         uuid.New().String(),
			Email:      in.Email,
			Password:   string(hash),
			Role:       in.Role,
			IsApproved: true,
			CreatedAt:  st.Now(),
		}
		st.Users = append(st.Users, user)
		result.User = user.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Login checks credentials and issues a session. A manager whose account (or
// queued application) is still unapproved gets a pending-approval failure
// instead of a session.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*entities.Session, *entities.User, error) {
	var (
		session *entities.Session
		user    *entities.User
	)
	err := s.store.Update(ctx, func(st *store.State) error {
		u := st.UserByEmail(email)
		if u == nil {
			// A manager whose application is still queued has no user row
			// yet; valid credentials against the queue report the real state.
			for _, app := range st.ManagerApplications {
				if app.Status == entities.ApplicationPending && app.Email == email &&
					bcrypt.CompareHashAndPassword([]byte(app.Password), []byte(password)) == nil {
					return apperrors.NewPendingApprovalError("manager account pending approval")
				}
			}
			return apperrors.NewInvalidCredentialsError("invalid email or password")
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			return apperrors.NewInvalidCredentialsError("invalid email or password")
		}
		if u.Role == entities.RoleManager && !u.IsApproved {
			return apperrors.NewPendingApprovalError("manager account pending approval")
		}

		sess := &entities.Session{
			Token:     uuid.New().String(),
			UserID:    u.ID,
			CreatedAt: st.Now(),
		}
		st.Sessions = append(st.Sessions, sess)
		copied := *sess
		session = &copied
		user = u.Clone()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// CurrentUser resolves a bearer token to a user. An absent token, unknown
// session, or dangling user reference all mean "no session" and return nil;
// none of them is an error.
func (s *IdentityService) CurrentUser(token string) *entities.User {
	if token == "" {
		return nil
	}
	var user *entities.User
	s.store.View(func(st *store.State) {
		for _, sess := range st.Sessions {
			if sess.Token == token {
				if u := st.UserByID(sess.UserID); u != nil {
					user = u.Clone()
				}
				return
			}
		}
	})
	return user
}

// Logout destroys the session for the token. Unknown tokens are a no-op.
func (s *IdentityService) Logout(ctx context.Context, token string) error {
	return s.store.Update(ctx, func(st *store.State) error {
		for i, sess := range st.Sessions {
			if sess.Token == token {
				st.Sessions = append(st.Sessions[:i], st.Sessions[i+1:]...)
				return nil
			}
		}
		return store.ErrNoChange
	})
}

// ManagerApplications returns the pending manager queue.
func (s *IdentityService) ManagerApplications() []*entities.ManagerApplication {
	var apps []*entities.ManagerApplication
	s.store.View(func(st *store.State) {
		for _, app := range st.ManagerApplications {
			if app.Status == entities.ApplicationPending {
				copied := *app
				apps = append(apps, &copied)
			}
		}
	})
	return apps
}

// ApproveManager promotes a queued application into an approved manager user
// plus a company owned by it.
func (s *IdentityService) ApproveManager(ctx context.Context, applicationID string) (*entities.User, *entities.Company, error) {
	var (
		user    *entities.User
		company *entities.Company
	)
	err := s.store.Update(ctx, func(st *store.State) error {
		idx := pendingApplicationIndex(st, applicationID)
		if idx < 0 {
			return apperrors.NewNotFoundError("manager application not found")
		}
		app := st.ManagerApplications[idx]

		u := &entities.User{
			ID:         uuid.New().String(),
			Email:      app.Email,
			Password:   app.Password,
			Role:       entities.RoleManager,
			IsApproved: true,
			CreatedAt:  st.Now(),
		}
		c := &entities.Company{
			ID:         uuid.New().String(),
			Name:       app.CompanyName,
			ManagerID:  u.ID,
			ApprovedAt: st.Now(),
		}
		u.CompanyID = c.ID

		st.Users = append(st.Users, u)
		st.Companies = append(st.Companies, c)
		st.ManagerApplications = append(st.ManagerApplications[:idx], st.ManagerApplications[idx+1:]...)

		user = u.Clone()
		copied := *c
		company = &copied
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return user, company, nil
}

// RejectManager removes a queued application without creating anything.
func (s *IdentityService) RejectManager(ctx context.Context, applicationID string) error {
	return s.store.Update(ctx, func(st *store.State) error {
		idx := pendingApplicationIndex(st, applicationID)
		if idx < 0 {
			return apperrors.NewNotFoundError("manager application not found")
		}
		st.ManagerApplications = append(st.ManagerApplications[:idx], st.ManagerApplications[idx+1:]...)
		return nil
	})
}

func pendingApplicationIndex(st *store.State, id string) int {
	for i, app := range st.ManagerApplications {
		if app.ID == id && app.Status == entities.ApplicationPending {
			return i
		}
	}
	return -1
}
