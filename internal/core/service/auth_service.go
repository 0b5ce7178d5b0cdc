package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dawa-marketplace/ecommerce-api/internal/api/metrics"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/ports"
)

// AuthService implements registration, login and current-user lookup.
type AuthService struct {
	repo     ports.AuthRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenService
	audit    ports.AuditRecorder
	tokenTTL time.Duration
	log      zerolog.Logger

	dummyDigest string
}

// MaxPasswordBytes is bcrypt's input limit. Longer passwords are rejected
// rather than silently truncated.
const MaxPasswordBytes = 72

// fallbackDummyDigest is a well-formed cost-10 bcrypt digest used when the
// configured hasher cannot produce one.
const fallbackDummyDigest = "$2a$10$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// NewAuthService wires the auth flows. A non-positive tokenTTL falls back to
// DefaultTokenTTL; a nil audit recorder discards events.
func NewAuthService(
	repo ports.AuthRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	audit ports.AuditRecorder,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	if audit == nil {
		audit = discardAudit{}
	}
	s := &AuthService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		audit:    audit,
		tokenTTL: tokenTTL,
		log:      log,
	}
	s.dummyDigest = s.buildDummyDigest()
	return s
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrValidation)
	}
	if len(in.Password) > MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, MaxPasswordBytes)
	}

	res, err := s.register(ctx, in)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationResult(err)).Inc()
		s.record(domain.EventRegister, in.Username, 0, in.RemoteIP, err)
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.record(domain.EventRegister, res.User.Username, res.User.ID, in.RemoteIP, nil)
	s.log.Info().Uint("user_id", res.User.ID).Str("role", res.User.Role).Msg("user registered")
	return res, nil
}

func (s *AuthService) register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	roleName := in.Role
	if roleName == "" {
		roleName = domain.DefaultRole
	}
	role, err := s.repo.FindRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return nil, domain.ErrInvalidRole
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: digest,
		RoleID:       role.ID,
		Role:         role.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	created.Role = role.Name

	token, err := s.tokens.Issue(domain.ClaimFor(created), s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login authenticates by username only. Unknown users and wrong passwords
// both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	user, err := s.repo.FindByUsername(ctx, in.Username)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		// Burn the same bcrypt time as a real comparison.
		s.hasher.Verify(in.Password, s.dummyDigest)
		return nil, s.loginFailed(in, 0, "unknown user")
	case err != nil:
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, s.loginFailed(in, user.ID, "wrong password")
	}

	token, err := s.tokens.Issue(domain.ClaimFor(user), s.tokenTTL)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(domain.EventLogin, user.Username, user.ID, in.RemoteIP, nil)
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

func (s *AuthService) loginFailed(in ports.LoginInput, userID uint, reason string) error {
	metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
	s.audit.Record(domain.AuthEvent{
		ID:       uuid.NewString(),
		Type:     domain.EventLogin,
		Username: in.Username,
		UserID:   userID,
		Outcome:  domain.OutcomeFailure,
		Reason:   reason,
		RemoteIP: in.RemoteIP,
		At:       time.Now().UTC(),
	})
	return domain.ErrInvalidCredentials
}

func (s *AuthService) record(typ domain.AuthEventType, username string, userID uint, remoteIP string, err error) {
	ev := domain.AuthEvent{
		ID:       uuid.NewString(),
		Type:     typ,
		Username: username,
		UserID:   userID,
		Outcome:  domain.OutcomeSuccess,
		RemoteIP: remoteIP,
		At:       time.Now().UTC(),
	}
	if err != nil {
		ev.Outcome = domain.OutcomeFailure
		ev.Reason = err.Error()
	}
	s.audit.Record(ev)
}

// buildDummyDigest returns the digest compared against when the username
// does not exist. It is never empty.
func (s *AuthService) buildDummyDigest() string {
	digest, err := s.hasher.Hash(strings.Repeat("x", 16))
	if err != nil || digest == "" {
		s.log.Warn().Err(err).Msg("failed to build dummy password hash, using fallback")
		return fallbackDummyDigest
	}
	return digest
}

func registrationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidRole), errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

type discardAudit struct{}

func (discardAudit) Record(domain.AuthEvent) {}
