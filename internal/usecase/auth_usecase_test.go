package usecase

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"eventplanner/config"
	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/domain/entity"
	"eventplanner/internal/repository"
	"eventplanner/internal/service"
	"eventplanner/pkg/jwt"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const findByEmailSQL = "SELECT u.* FROM users u WHERE u.email = $1 LIMIT 1"

type recordingMailer struct {
	to, otp string
}

func (m *recordingMailer) SendOTP(ctx context.Context, to, otp string) error {
	m.to, m.otp = to, otp
	return nil
}

type authFixture struct {
	uc     AuthUsecase
	mock   sqlmock.Sqlmock
	redis  *miniredis.Miniredis
	mailer *recordingMailer
	otp    service.OTPStore
	hook   *test.Hook
}

func setupAuthUsecase(t *testing.T) *authFixture {
	return newAuthFixture(t, service.NewTokenStore)
}

func newAuthFixture(t *testing.T, tokenStore func(*redis.Client) service.TokenStore) *authFixture {
	t.Helper()
	db, mock := setupMockDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log, hook := test.NewNullLogger()
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "usecase-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
	mailer := &recordingMailer{}
	otp := service.NewOTPStore(client, 10*time.Minute, 3)
	uc := NewAuthUsecase(db, log, repository.NewUserRepository(), jwtService,
		tokenStore(client), otp, mailer, newAuditService(log))

	return &authFixture{uc: uc, mock: mock, redis: mr, mailer: mailer, otp: otp, hook: hook}
}

func userWithOTP(otp string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "role", "signup_type", "verify_email", "otp"}).
		AddRow(12, "ana@example.com", entity.RoleUser, entity.SignupEmail, false, otp)
}

func userWithPassword(t *testing.T, password string, verified bool) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "email", "password", "role", "signup_type", "verify_email"}).
		AddRow(12, "ana@example.com", string(hash), entity.RoleUser, entity.SignupEmail, verified)
}

func TestSignup_EmailSendsOTPWithoutTokens(t *testing.T) {
	f := setupAuthUsecase(t)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(regexp.QuoteMeta(findByEmailSQL)).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	f.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	expectAuditInsert(f.mock)
	f.mock.ExpectCommit()

	resp, err := f.uc.Signup(context.Background(), &dto.SignupRequest{
		SignupType: entity.SignupEmail,
		Email:      " Ana@Example.com ",
		Password:   "secret123",
		FullName:   "Ana",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Tokens)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.False(t, resp.User.VerifyEmail)
	assert.Equal(t, "ana@example.com", f.mailer.to)
	assert.Regexp(t, `^\d{4}$`, f.mailer.otp)
	assert.True(t, f.redis.Exists("otp_attempts:12"))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSignup_DuplicateEmail(t *testing.T) {
	f := setupAuthUsecase(t)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(regexp.QuoteMeta(findByEmailSQL)).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(12, "ana@example.com"))
	f.mock.ExpectRollback()

	_, err := f.uc.Signup(context.Background(), &dto.SignupRequest{
		SignupType: entity.SignupEmail,
		Email:      "ana@example.com",
		Password:   "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSignIn(t *testing.T) {
	tests := []struct {
		name     string
		rows     func(t *testing.T) *sqlmock.Rows
		password string
		wantErr  error
	}{
		{"unknown email", func(t *testing.T) *sqlmock.Rows { return sqlmock.NewRows([]string{"id"}) }, "secret123", ErrInvalidCredentials},
		{"wrong password", func(t *testing.T) *sqlmock.Rows { return userWithPassword(t, "secret123", true) }, "nope", ErrInvalidCredentials},
		{"unverified", func(t *testing.T) *sqlmock.Rows { return userWithPassword(t, "secret123", false) }, "secret123", ErrEmailNotVerified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupAuthUsecase(t)
			f.mock.ExpectQuery(regexp.QuoteMeta(findByEmailSQL)).
				WithArgs("ana@example.com").
				WillReturnRows(tt.rows(t))

			_, err := f.uc.SignIn(context.Background(), &dto.SignInRequest{Email: "ana@example.com", Password: tt.password})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSignIn_StoresTokens(t *testing.T) {
	f := setupAuthUsecase(t)
	f.mock.ExpectQuery(regexp.QuoteMeta(findByEmailSQL)).
		WithArgs("ana@example.com").
		WillReturnRows(userWithPassword(t, "secret123", true))

	resp, err := f.uc.SignIn(context.Background(), &dto.SignInRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotNil(t, resp.Tokens)
	assert.Equal(t, int64(60), resp.Tokens.ExpiresIn)

	assert.Len(t, f.redis.Keys(), 2)
}

func TestRefreshToken_RotatesOnce(t *testing.T) {
	f := setupAuthUsecase(t)
	ctx := context.Background()

	f.mock.ExpectQuery(regexp.QuoteMeta(findByEmailSQL)).
		WithArgs("ana@example.com").
		WillReturnRows(userWithPassword(t, "secret123", true))
	signedIn, err := f.uc.SignIn(ctx, &dto.SignInRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	f.mock.ExpectQuery(regexp.QuoteMeta("SELECT u.* FROM users u WHERE u.id = $1 AND u.deleted_at IS NULL LIMIT 1")).
		WithArgs(int64(12)).
		WillReturnRows(activeUserRows(12))

	refreshed, err := f.uc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: signedIn.Tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, signedIn.Tokens.RefreshToken, refreshed.RefreshToken)

	_, err = f.uc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: signedIn.Tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	f := setupAuthUsecase(t)
	f.mock.ExpectQuery(regexp.QuoteMeta(findByEmailSQL)).
		WithArgs("ana@example.com").
		WillReturnRows(userWithPassword(t, "secret123", true))
	signedIn, err := f.uc.SignIn(context.Background(), &dto.SignInRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: signedIn.Tokens.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_RevokesBothTokens(t *testing.T) {
	f := setupAuthUsecase(t)
	ctx := context.Background()

	f.mock.ExpectQuery(regexp.QuoteMeta(findByEmailSQL)).
		WithArgs("ana@example.com").
		WillReturnRows(userWithPassword(t, "secret123", true))
	signedIn, err := f.uc.SignIn(ctx, &dto.SignInRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	var accessID string
	for _, k := range f.redis.Keys() {
		if strings.HasPrefix(k, "access_token:12:") {
			accessID = strings.TrimPrefix(k, "access_token:12:")
		}
	}
	require.NotEmpty(t, accessID)

	require.NoError(t, f.uc.Logout(ctx, 12, accessID, signedIn.Tokens.RefreshToken))

	assert.Empty(t, f.redis.Keys())
}

func TestVerifyOTP_Success(t *testing.T) {
	f := setupAuthUsecase(t)
	ctx := context.Background()
	require.NoError(t, f.otp.Start(ctx, 12))

	f.mock.ExpectQuery(regexp.QuoteMeta(findByEmailSQL)).
		WithArgs("ana@example.com").
		WillReturnRows(userWithOTP("4821"))
	f.mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET otp = $1, verify_email = $2, updated_at = NOW() WHERE id = $3 RETURNING *")).
		WithArgs(nil, true, int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "signup_type", "verify_email"}).
			AddRow(12, "ana@example.com", entity.RoleUser, entity.SignupEmail, true))

	resp, err := f.uc.VerifyOTP(ctx, &dto.VerifyOTPRequest{Email: "ana@example.com", OTP: "4821"})
	require.NoError(t, err)
	require.NotNil(t, resp.Tokens)
	assert.True(t, resp.User.VerifyEmail)
	assert.False(t, f.redis.Exists("otp_attempts:12"))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestVerifyOTP_Expired(t *testing.T) {
	f := setupAuthUsecase(t)
	ctx := context.Background()
	require.NoError(t, f.otp.Start(ctx, 12))
	f.redis.FastForward(11 * time.Minute)

	f.mock.ExpectQuery(regexp.QuoteMeta(findByEmailSQL)).
		WithArgs("ana@example.com").
		WillReturnRows(userWithOTP("4821"))

	_, err := f.uc.VerifyOTP(ctx, &dto.VerifyOTPRequest{Email: "ana@example.com", OTP: "4821"})
	assert.ErrorIs(t, err, ErrInvalidOTP)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestVerifyOTP_LockedAfterMaxAttempts(t *testing.T) {
	f := setupAuthUsecase(t)
	ctx := context.Background()
	require.NoError(t, f.otp.Start(ctx, 12))

	for _, code := range []string{"1111", "2222", "3333", "4821"} {
		f.mock.ExpectQuery(regexp.QuoteMeta(findByEmailSQL)).
			WithArgs("ana@example.com").
			WillReturnRows(userWithOTP("4821"))

		_, err := f.uc.VerifyOTP(ctx, &dto.VerifyOTPRequest{Email: "ana@example.com", OTP: code})
		assert.ErrorIs(t, err, ErrInvalidOTP, code)
	}
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestResetPassword_RevokeFailureAfterCommit(t *testing.T) {
	f := newAuthFixture(t, func(client *redis.Client) service.TokenStore {
		return revokeFailingStore{TokenStore: service.NewTokenStore(client)}
	})
	ctx := context.Background()
	require.NoError(t, f.otp.Start(ctx, 12))

	f.mock.ExpectQuery(regexp.QuoteMeta(findByEmailSQL)).
		WithArgs("ana@example.com").
		WillReturnRows(userWithOTP("4821"))
	f.mock.ExpectBegin()
	f.mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE users SET password = $1, otp = $2, verify_email = $3, updated_at = NOW() WHERE id = $4 RETURNING *")).
		WithArgs(sqlmock.AnyArg(), nil, true, int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	expectAuditInsert(f.mock)
	f.mock.ExpectCommit()

	err := f.uc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "ana@example.com", OTP: "4821", NewPassword: "fresh-secret"})
	require.NoError(t, err)
	assert.NoError(t, f.mock.ExpectationsWereMet())

	entry := f.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Contains(t, entry.Message, "Failed to revoke tokens")
	assert.Equal(t, int64(12), entry.Data["user_id"])
}
