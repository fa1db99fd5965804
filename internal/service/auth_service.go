package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goldendrops/storefront/internal/auth"
	"github.com/goldendrops/storefront/internal/config"
	"github.com/goldendrops/storefront/internal/domain"
	"github.com/goldendrops/storefront/internal/events"
	"github.com/goldendrops/storefront/internal/repository"
)

// TokenIssuer mints identity tokens.
type TokenIssuer interface {
	Issue(subjectID string, role domain.Role) (string, time.Time, error)
}

// Session is returned by signup and login.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// UserSession pairs a user with a fresh token.
type UserSession struct {
	Session
	User *domain.User
}

// AdminSession pairs an admin with a fresh token.
type AdminSession struct {
	Session
	Admin *domain.Admin
}

// SignupInput carries validated signup fields.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	creds      auth.CredentialStore
	users      repository.UserRepository
	admins     repository.AdminRepository
	tokens     TokenIssuer
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	openAdmin  bool
	now        func() time.Time
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	Credentials auth.CredentialStore
	UserRepo    repository.UserRepository
	AdminRepo   repository.AdminRepository
	Tokens      TokenIssuer
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		creds:      deps.Credentials,
		users:      deps.UserRepo,
		admins:     deps.AdminRepo,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
		openAdmin:  cfg.AllowAdminSignup,
		now:        time.Now,
	}
}

// SignupUser creates an active user and signs them in.
func (s *AuthService) SignupUser(ctx context.Context, in SignupInput) (*UserSession, error) {
	existing, err := s.creds.FindAccountByEmail(ctx, in.Email, domain.VariantUser)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUser
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Account: domain.Account{
			Name:         in.Name,
			Email:        in.Email,
			PasswordHash: hash,
			Role:         domain.RoleUser,
			Active:       true,
		},
		Phone: in.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	session, err := s.issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventUserSignedUp, user.ID,
		events.Actor{ID: user.ID, Role: user.Role},
		events.AccountCreatedPayload{Name: user.Name, Email: user.Email}))
	return &UserSession{Session: session, User: user}, nil
}

// LoginUser authenticates a user. Deactivation is only disclosed to callers
// that presented the right password.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*UserSession, error) {
	record, err := s.authenticate(ctx, email, password, domain.VariantUser)
	if err != nil {
		return nil, err
	}
	user, ok := record.(*domain.User)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	session, err := s.issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &UserSession{Session: session, User: user}, nil
}

// SignupAdmin creates an admin with the default permission set.
func (s *AuthService) SignupAdmin(ctx context.Context, in SignupInput) (*AdminSession, error) {
	if !s.openAdmin {
		return nil, ErrAdminSignupClosed
	}
	existing, err := s.creds.FindAccountByEmail(ctx, in.Email, domain.VariantAdmin)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateAdmin
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{
		Account: domain.Account{
			Name:         in.Name,
			Email:        in.Email,
			PasswordHash: hash,
			Role:         domain.RoleAdmin,
			Active:       true,
		},
		Permissions: domain.DefaultAdminPermissions(),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateAdmin
		}
		return nil, err
	}

	session, err := s.issue(admin.ID, admin.Role)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventAdminSignedUp, admin.ID,
		events.Actor{ID: admin.ID, Role: admin.Role},
		events.AccountCreatedPayload{Name: admin.Name, Email: admin.Email}))
	return &AdminSession{Session: session, Admin: admin}, nil
}

// LoginAdmin authenticates an admin and stamps the last login time.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*AdminSession, error) {
	record, err := s.authenticate(ctx, email, password, domain.VariantAdmin)
	if err != nil {
		return nil, err
	}
	admin, ok := record.(*domain.Admin)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.admins.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		return nil, err
	}
	admin.LastLogin = &now

	session, err := s.issue(admin.ID, admin.Role)
	if err != nil {
		return nil, err
	}
	return &AdminSession{Session: session, Admin: admin}, nil
}

func (s *AuthService) authenticate(ctx context.Context, email, password string, variant domain.AccountVariant) (domain.AccountRecord, error) {
	record, err := s.creds.FindAccountByEmail(ctx, email, variant)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrInvalidCredentials
	}
	account := record.Base()
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !account.Active {
		return nil, ErrAccountDeactivated
	}
	return record, nil
}

func (s *AuthService) issue(id string, role domain.Role) (Session, error) {
	token, exp, err := s.tokens.Issue(id, role)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	publish(ctx, s.dispatcher, s.logger, event)
}
