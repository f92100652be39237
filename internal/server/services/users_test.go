package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/l1t48/Test-backend/internal/common"
	"github.com/l1t48/Test-backend/internal/server/auth"
	"github.com/l1t48/Test-backend/internal/server/models"
)

type failingIssuer struct{}

func (failingIssuer) Issue(string, string) (string, time.Time, error) {
	return "", time.Time{}, errBoom{}
}

func newTestUserService(t *testing.T, rm *fakeRepoManager) (*UserService, *auth.TokenIssuer, func() error) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	mock.MatchExpectationsInOrder(true)

	issuer, err := auth.NewTokenIssuer("test-secret", "test-issuer", 3*time.Hour)
	require.NoError(t, err)

	s := NewUserService(db, rm, auth.NewBcryptHasher(bcrypt.MinCost), issuer)
	return s, issuer, mock.ExpectationsWereMet
}

func TestRegister_Success(t *testing.T) {
	rm := newFakeRepoManager()
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	issuer, err := auth.NewTokenIssuer("k", "iss", time.Hour)
	require.NoError(t, err)
	s := NewUserService(db, rm, hasher, issuer)

	u, err := s.Register(context.Background(), " alice ", "a@x.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "alice", u.UserName)
	assert.Equal(t, "a@x.com", u.Email)
	assert.NotEqual(t, "Secret123", u.PasswordHash)
	assert.True(t, hasher.Verify("Secret123", u.PasswordHash))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	rm := newFakeRepoManager()
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	issuer, err := auth.NewTokenIssuer("k", "iss", time.Hour)
	require.NoError(t, err)
	s := NewUserService(db, rm, auth.NewBcryptHasher(bcrypt.MinCost), issuer)

	_, err = s.Register(context.Background(), "alice", "a@x.com", "Secret123")
	require.NoError(t, err)

	_, err = s.Register(context.Background(), "alice2", "a@x.com", "other-password")
	assert.ErrorIs(t, err, common.ErrEmailTaken)

	assert.Len(t, rm.u.byMail, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_EmailMatchIsCaseSensitive(t *testing.T) {
	rm := newFakeRepoManager()
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	issuer, err := auth.NewTokenIssuer("k", "iss", time.Hour)
	require.NoError(t, err)
	s := NewUserService(db, rm, auth.NewBcryptHasher(bcrypt.MinCost), issuer)

	_, err = s.Register(context.Background(), "alice", "a@x.com", "Secret123")
	require.NoError(t, err)
	_, err = s.Register(context.Background(), "alice", "A@x.com", "Secret123")
	require.NoError(t, err)

	assert.Len(t, rm.u.byMail, 2)
}

func TestRegister_UniqueViolationOnInsert(t *testing.T) {
	rm := newFakeRepoManager()
	rm.u.createErr = &pgconn.PgError{Code: "23505"}
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	issuer, err := auth.NewTokenIssuer("k", "iss", time.Hour)
	require.NoError(t, err)
	s := NewUserService(db, rm, auth.NewBcryptHasher(bcrypt.MinCost), issuer)

	_, err = s.Register(context.Background(), "alice", "a@x.com", "Secret123")
	assert.ErrorIs(t, err, common.ErrEmailTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_StorageFailureIsInternal(t *testing.T) {
	rm := newFakeRepoManager()
	rm.u.getErr = errBoom{}
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	issuer, err := auth.NewTokenIssuer("k", "iss", time.Hour)
	require.NoError(t, err)
	s := NewUserService(db, rm, auth.NewBcryptHasher(bcrypt.MinCost), issuer)

	_, err = s.Register(context.Background(), "alice", "a@x.com", "Secret123")
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.NotErrorIs(t, err, common.ErrEmailTaken)
}

func TestRegister_BeginFailureIsInternal(t *testing.T) {
	rm := newFakeRepoManager()
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("conn refused"))

	issuer, err := auth.NewTokenIssuer("k", "iss", time.Hour)
	require.NoError(t, err)
	s := NewUserService(db, rm, auth.NewBcryptHasher(bcrypt.MinCost), issuer)

	_, err = s.Register(context.Background(), "alice", "a@x.com", "Secret123")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestRegister_Validation(t *testing.T) {
	s, _, met := newTestUserService(t, newFakeRepoManager())

	tests := []struct {
		name                      string
		username, email, password string
		field, rule               string
	}{
		{"missing username", " ", "a@x.com", "pw", "username", "required"},
		{"missing email", "alice", "", "pw", "email", "required"},
		{"missing password", "alice", "a@x.com", "", "password", "required"},
		{"password over 72 bytes", "alice", "a@x.com", strings.Repeat("p", 73), "password", "max"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tt.username, tt.email, tt.password)
			require.ErrorIs(t, err, common.ErrorValidation)

			var fe FieldErrors
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.rule, fe[tt.field])
		})
	}
	require.NoError(t, met(), "validation must not touch the database")
}

func seedUser(t *testing.T, rm *fakeRepoManager, email, password string) int64 {
	t.Helper()
	hash, err := auth.NewBcryptHasher(bcrypt.MinCost).Hash(password)
	require.NoError(t, err)
	u, err := rm.u.Create(context.Background(), &models.User{UserName: "alice", Email: email, PasswordHash: hash})
	require.NoError(t, err)
	return u.ID
}

func TestLogin_Success(t *testing.T) {
	rm := newFakeRepoManager()
	id := seedUser(t, rm, "a@x.com", "Secret123")
	s, issuer, _ := newTestUserService(t, rm)

	before := time.Now()
	sess, err := s.Login(context.Background(), "a@x.com", "Secret123")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
	assert.Equal(t, id, sess.User.ID)
	assert.WithinDuration(t, before.Add(3*time.Hour), sess.ExpiresAt, 5*time.Second)

	claims, err := issuer.Validate(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(id, 10), claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	rm := newFakeRepoManager()
	seedUser(t, rm, "a@x.com", "Secret123")
	s, _, _ := newTestUserService(t, rm)

	_, wrongPassword := s.Login(context.Background(), "a@x.com", "nope")
	_, unknownEmail := s.Login(context.Background(), "ghost@x.com", "Secret123")

	require.ErrorIs(t, wrongPassword, common.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, common.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogin_StorageFailureIsInternal(t *testing.T) {
	rm := newFakeRepoManager()
	rm.u.getErr = errBoom{}
	s, _, _ := newTestUserService(t, rm)

	_, err := s.Login(context.Background(), "a@x.com", "Secret123")
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.NotErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_IssueFailureIsInternal(t *testing.T) {
	rm := newFakeRepoManager()
	seedUser(t, rm, "a@x.com", "Secret123")
	db, _ := newSQLMockDB(t)
	s := NewUserService(db, rm, auth.NewBcryptHasher(bcrypt.MinCost), failingIssuer{})

	_, err := s.Login(context.Background(), "a@x.com", "Secret123")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestExtractIdentity(t *testing.T) {
	s, issuer, _ := newTestUserService(t, newFakeRepoManager())

	tok, _, err := issuer.Issue("42", "a@x.com")
	require.NoError(t, err)
	claims, err := issuer.Validate(tok)
	require.NoError(t, err)

	id, err := s.ExtractIdentity(claims)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id.UserID)
	require.NotNil(t, id.Email)
	assert.Equal(t, "a@x.com", *id.Email)

	noEmail := &auth.Claims{}
	noEmail.Subject = "7"
	id, err = s.ExtractIdentity(noEmail)
	require.NoError(t, err)
	assert.Nil(t, id.Email)

	bad := &auth.Claims{}
	bad.Subject = "not-a-number"
	_, err = s.ExtractIdentity(bad)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = s.ExtractIdentity(nil)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}
