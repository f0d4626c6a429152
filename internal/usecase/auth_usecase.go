package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"

	"eventplanner/internal/converter"
	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/domain/entity"
	"eventplanner/internal/domain/repository"
	"eventplanner/internal/infrastructure/metrics"
	"eventplanner/internal/service"
	"eventplanner/pkg/apperror"
	"eventplanner/pkg/jwt"
	"eventplanner/pkg/query"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = apperror.Conflict("Email already exists")
	ErrInvalidCredentials = apperror.Unauthorized("Invalid email or password")
	ErrEmailNotVerified   = apperror.Forbidden("Email is not verified")
	ErrAccountDeleted     = apperror.Forbidden("Account has been deleted")
	ErrInvalidOTP         = apperror.Validation("Invalid or expired OTP")
	ErrInvalidToken       = apperror.Unauthorized("Invalid or expired token")
	ErrTokenRevoked       = apperror.Unauthorized("Token has been revoked")
	ErrUserNotFound       = apperror.NotFound("User not found")
	ErrIncorrectPassword  = apperror.Unauthorized("Incorrect password")
)

type AuthUsecase interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.AuthResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID int64, accessTokenID, refreshToken string) error
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
	GetCurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	jwtService   *jwt.JWTService
	tokenStore   service.TokenStore
	otpStore     service.OTPStore
	mailer       service.Mailer
	auditService service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	tokenStore service.TokenStore,
	otpStore service.OTPStore,
	mailer service.Mailer,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		jwtService:   jwtService,
		tokenStore:   tokenStore,
		otpStore:     otpStore,
		mailer:       mailer,
		auditService: auditService,
	}
}

func (u *authUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		FullName:   strings.TrimSpace(req.FullName),
		Role:       entity.RoleUser,
		SignupType: req.SignupType,
	}

	var otp string
	switch req.SignupType {
	case entity.SignupEmail:
		email := normalizeEmail(req.Email)
		existing, err := u.userRepo.FindByEmail(tx, email)
		if err != nil {
			u.log.Warnf("Failed to find user by email: %+v", err)
			return nil, apperror.Database(err)
		}
		if existing != nil {
			return nil, ErrEmailAlreadyExists
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}

		otp, err = generateOTP()
		if err != nil {
			u.log.Warnf("Failed to generate OTP: %+v", err)
			return nil, err
		}

		user.Email = &email
		user.Password = string(hashedPassword)
		user.OTP = &otp
	case entity.SignupGoogle:
		token := req.GoogleAccessToken
		user.GoogleAccessToken = &token
		user.VerifyEmail = true
	case entity.SignupApple:
		token := req.AppleAccessToken
		user.AppleAccessToken = &token
		user.VerifyEmail = true
	default:
		return nil, apperror.Validation("Invalid signup type")
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if apperror.IsUniqueViolation(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, apperror.Database(err)
	}

	if err := u.auditService.Log(ctx, tx, &user.ID, entity.AuditActionUserRegister, entity.JSON{"signup_type": user.SignupType}); err != nil {
		return nil, apperror.Database(err)
	}

	if user.OTP != nil {
		if err := u.otpStore.Start(ctx, user.ID); err != nil {
			u.log.Warnf("Failed to start OTP window: %+v", err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperror.Database(err)
	}

	metrics.RecordSignup(user.SignupType)

	resp := &dto.AuthResponse{User: converter.UserToResponse(user)}
	if user.SignupType == entity.SignupEmail {
		if err := u.mailer.SendOTP(ctx, *user.Email, otp); err != nil {
			u.log.Warnf("Failed to send OTP: %+v", err)
		}
		return resp, nil
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	resp.Tokens = tokens
	return resp, nil
}

func (u *authUsecase) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.AuthResponse, error) {
	user, err := u.findByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if err := u.checkOTP(ctx, user, req.OTP); err != nil {
		return nil, err
	}

	set := query.NewUpdate().
		Set("otp", nil, true).
		Set("verify_email", true, true)
	user, err = u.userRepo.Update(u.db.WithContext(ctx), user.ID, set, nil)
	if err != nil {
		u.log.Warnf("Failed to verify user: %+v", err)
		return nil, apperror.Database(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	u.clearOTP(ctx, user.ID)

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{User: converter.UserToResponse(user), Tokens: tokens}, nil
}

func (u *authUsecase) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	user, err := u.findByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user.SignupType != entity.SignupEmail {
		return apperror.Validation("Password login is not enabled for this account")
	}

	otp, err := generateOTP()
	if err != nil {
		u.log.Warnf("Failed to generate OTP: %+v", err)
		return err
	}

	if err := u.otpStore.Start(ctx, user.ID); err != nil {
		u.log.Warnf("Failed to start OTP window: %+v", err)
		return err
	}

	if _, err := u.userRepo.Update(u.db.WithContext(ctx), user.ID, query.NewUpdate().Set("otp", otp, true), nil); err != nil {
		u.log.Warnf("Failed to store OTP: %+v", err)
		return apperror.Database(err)
	}

	if err := u.mailer.SendOTP(ctx, *user.Email, otp); err != nil {
		u.log.Warnf("Failed to send OTP: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := u.findByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if err := u.checkOTP(ctx, user, req.OTP); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// A valid OTP also proves ownership of the address.
	set := query.NewUpdate().
		Set("password", string(hashedPassword), true).
		Set("otp", nil, true).
		Set("verify_email", true, true)
	if _, err := u.userRepo.Update(tx, user.ID, set, nil); err != nil {
		u.log.Warnf("Failed to reset password: %+v", err)
		return apperror.Database(err)
	}

	if err := u.auditService.Log(ctx, tx, &user.ID, entity.AuditActionPasswordChange, entity.JSON{"via": "reset"}); err != nil {
		return apperror.Database(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return apperror.Database(err)
	}

	u.clearOTP(ctx, user.ID)
	u.revokeAll(ctx, user.ID)

	return nil
}

func (u *authUsecase) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error) {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), normalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, apperror.Database(err)
	}
	if user == nil || user.Password == "" {
		metrics.RecordSignInFailed()
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		metrics.RecordSignInFailed()
		return nil, ErrInvalidCredentials
	}
	if user.DeletedAt != nil {
		return nil, ErrAccountDeleted
	}
	if !user.VerifyEmail {
		return nil, ErrEmailNotVerified
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{User: converter.UserToResponse(user), Tokens: tokens}, nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	valid, err := u.tokenStore.IsValid(ctx, claims.UserID, jwt.RefreshToken, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if !valid {
		return nil, ErrTokenRevoked
	}

	// Rotate: the presented refresh token is single use.
	if err := u.tokenStore.Revoke(ctx, claims.UserID, jwt.RefreshToken, claims.TokenID); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	user, err := u.userRepo.FindActiveByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, apperror.Database(err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) Logout(ctx context.Context, userID int64, accessTokenID, refreshToken string) error {
	if err := u.tokenStore.Revoke(ctx, userID, jwt.AccessToken, accessTokenID); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	if refreshToken == "" {
		return nil
	}
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken || claims.UserID != userID {
		return nil
	}
	if err := u.tokenStore.Revoke(ctx, userID, jwt.RefreshToken, claims.TokenID); err != nil {
		u.log.Warnf("Failed to delete refresh token: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := u.userRepo.FindActiveByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return apperror.Database(err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	// Social accounts have no password yet and may set one directly.
	if user.Password != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
			return ErrIncorrectPassword
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.userRepo.Update(tx, userID, query.NewUpdate().Set("password", string(hashedPassword), true), nil); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return apperror.Database(err)
	}

	if err := u.auditService.Log(ctx, tx, &userID, entity.AuditActionPasswordChange, entity.JSON{"via": "change"}); err != nil {
		return apperror.Database(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return apperror.Database(err)
	}

	u.revokeAll(ctx, userID)

	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindActiveByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, apperror.Database(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// checkOTP spends one attempt of the user's code window before comparing.
func (u *authUsecase) checkOTP(ctx context.Context, user *entity.User, code string) error {
	if user.OTP == nil {
		return ErrInvalidOTP
	}

	ok, err := u.otpStore.Attempt(ctx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to record OTP attempt: %+v", err)
		return err
	}
	if !ok || subtle.ConstantTimeCompare([]byte(*user.OTP), []byte(code)) != 1 {
		return ErrInvalidOTP
	}
	return nil
}

// clearOTP runs after the code is consumed; a leftover window expires on its own.
func (u *authUsecase) clearOTP(ctx context.Context, userID int64) {
	if err := u.otpStore.Clear(ctx, userID); err != nil {
		u.log.Warnf("Failed to clear OTP window: %+v", err)
	}
}

// revokeAll runs after the password change has committed. A failure is
// logged rather than returned so the caller sees the change succeed.
func (u *authUsecase) revokeAll(ctx context.Context, userID int64) {
	if err := u.tokenStore.RevokeAll(ctx, userID); err != nil {
		u.log.WithField("user_id", userID).Warnf("Failed to revoke tokens: %+v", err)
	}
}

// findByEmail returns the active account for email or ErrUserNotFound.
func (u *authUsecase) findByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), normalizeEmail(email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, apperror.Database(err)
	}
	if user == nil || user.DeletedAt != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, email, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, email, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Store(ctx, user.ID, jwt.AccessToken, accessTokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Store(ctx, user.ID, jwt.RefreshToken, refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateOTP returns a random 4-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
