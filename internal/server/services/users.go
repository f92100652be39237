// Package services contains server-side business logic: registration and
// login (UserService) and owner-scoped books and quotes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/l1t48/Test-backend/internal/common"
	"github.com/l1t48/Test-backend/internal/dbx"
	"github.com/l1t48/Test-backend/internal/server/auth"
	"github.com/l1t48/Test-backend/internal/server/models"
	"github.com/l1t48/Test-backend/internal/server/repositories/repomanager"
)

// TokenIssuer mints session tokens for a user id.
type TokenIssuer interface {
	Issue(subjectID, email string) (string, time.Time, error)
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// Identity is what a validated token says about the caller. Email is nil
// when the token does not carry one.
type Identity struct {
	UserID int64
	Email  *string
}

// UserService provides authentication-related operations:
// - Register: create users with a bcrypt password hash
// - Login: verify credentials and mint a session token
// - ExtractIdentity: turn validated claims into an Identity
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      TokenIssuer
	// dummyHash is verified against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

// NewUserService constructs a UserService from its collaborators.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, tokens TokenIssuer) *UserService {
	dummy, _ := hasher.Hash("not-a-real-password")
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		dummyHash:   dummy,
	}
}

// Register creates a user. The email must not be taken (exact match); the
// lookup and insert run in one transaction and a unique-index violation on
// insert is reported as common.ErrEmailTaken too.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	fe := FieldErrors{}
	fe.required("username", username)
	fe.required("email", email)
	fe.required("password", password)
	if err := fe.errOrNil(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			return nil, FieldErrors{"password": "max"}
		}
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			return common.ErrEmailTaken
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		created, err = repo.Create(ctx, &models.User{UserName: username, Email: email, PasswordHash: hash})
		if err != nil {
			if dbx.IsUniqueViolation(err) {
				return common.ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: register: %v", common.ErrorInternal, err)
	}

	return created, nil
}

// Login checks email and password and issues a session token. Unknown
// email and wrong password both yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: login: %v", common.ErrorInternal, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(strconv.FormatInt(user.ID, 10), user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: issue token: %v", common.ErrorInternal, err)
	}

	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// ExtractIdentity reads the caller's identity from validated claims. Only
// fields placed in the token at login are exposed.
func (s *UserService) ExtractIdentity(claims *auth.Claims) (*Identity, error) {
	if claims == nil {
		return nil, common.ErrorUnauthorized
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: bad subject %q", common.ErrInvalidToken, claims.Subject)
	}

	identity := &Identity{UserID: id}
	if claims.Email != "" {
		email := claims.Email
		identity.Email = &email
	}
	return identity, nil
}
