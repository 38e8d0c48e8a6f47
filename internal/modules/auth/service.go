package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"musicstore/internal/domain"
	"musicstore/internal/modules/crud"
	"musicstore/internal/repository"
)

type Service struct {
	users UserStore
	jwt   TokenIssuer
	ttl   time.Duration
	now   func() time.Time

	// serialises the email check with the insert
	registerMu sync.Mutex
}

func NewService(users UserStore, jwt TokenIssuer, ttl time.Duration) *Service {
	return &Service{users: users, jwt: jwt, ttl: ttl, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a client account and opens a session for it.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := crud.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, domain.RoleClient)
	if err != nil {
		return nil, err
	}
	return s.session(user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	req.Email = normalizeEmail(req.Email)
	if err := crud.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.findByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.session(user)
}

// RequestRecovery accepts any well-formed email and never reveals whether
// an account exists. Delivery is outside this service; the request is logged.
func (s *Service) RequestRecovery(ctx context.Context, req RecoveryRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := crud.Validate(req); err != nil {
		return err
	}

	_, err := s.findByEmail(req.Email)
	zap.S().Infow("password recovery requested", "email", req.Email, "known", err == nil)
	return nil
}

func (s *Service) Me(ctx context.Context, userID string) (UserPublic, error) {
	u, err := s.users.GetByID(userID)
	if err != nil {
		return UserPublic{}, err
	}
	return NewUserPublic(u), nil
}

// EnsureAdmin creates the bootstrap admin account when no user holds email.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}
	_, err := s.createUser(ctx, "Admin", email, password, domain.RoleAdmin)
	if errors.Is(err, ErrEmailTaken) {
		return nil
	}
	if err == nil {
		zap.S().Infow("bootstrap admin created", "email", email)
	}
	return err
}

func (s *Service) createUser(ctx context.Context, name, email, password string, role domain.UserRole) (domain.User, error) {
	s.registerMu.Lock()
	defer s.registerMu.Unlock()

	if _, err := s.findByEmail(email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	return s.users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now().UTC(),
	})
}

func (s *Service) findByEmail(email string) (domain.User, error) {
	return s.users.Find(func(u domain.User) bool { return u.Email == email })
}

func (s *Service) session(u domain.User) (*Session, error) {
	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &Session{
		User:        NewUserPublic(u),
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.ttl.Seconds()),
	}, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
