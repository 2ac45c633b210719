package service

import (
	"context"
	"fmt"
	"time"

	"github.com/beezetrack/beezetrack-server/internal/config"
	"github.com/beezetrack/beezetrack-server/internal/logger"
	"github.com/beezetrack/beezetrack-server/internal/store"
	"github.com/beezetrack/beezetrack-server/internal/utils"
	"github.com/beezetrack/beezetrack-server/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, profile updates,
// and the JWT token lifecycle using a UserRepository for persistence and
// bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates that name, email, and password are all non-empty, hashes
// the password with bcrypt, and delegates persistence to the
// UserRepository.
//
// Returns the persisted user (with a store-assigned ID) or:
//   - ErrMissingRequiredField (wrapped with the field name) if name,
//     email, or password is empty.
//   - store.ErrEmailAlreadyExists if the email is already registered.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if field, ok := firstMissingField(
		requiredField{"name", req.Name},
		requiredField{"email", req.Email},
		requiredField{"password", req.Password},
	); ok {
		log.Error().Str("field", field).Msg("registration payload is missing a required field")
		return models.User{}, fmt.Errorf("%w: %s", ErrMissingRequiredField, field)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Bio:          req.Bio,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It validates that both email and password are non-empty, looks the
// account up by email, and compares the supplied password against the
// stored bcrypt hash.
//
// Returns the authenticated user record or:
//   - ErrEmailAndPasswordRequired if either field is empty.
//   - ErrInvalidCredentials if no account matches or the password is
//     wrong. The two cases are deliberately indistinguishable.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		log.Error().Msg("login payload is missing email or password")
		return models.User{}, ErrEmailAndPasswordRequired
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return models.User{}, ErrInvalidCredentials
	}

	if !utils.VerifyPassword(foundUser.PasswordHash, req.Password) {
		log.Error().Int64("id", foundUser.ID).Str("email", foundUser.Email).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// GetUserByID resolves an authenticated identity to its account record.
//
// Returns a wrapped store.ErrNoUserWasFound if the identity no longer
// resolves to a user (e.g. the token outlived the account).
func (a *authService) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return foundUser, nil
}

// UpdateProfile overwrites only the fields present in patch; absent fields
// retain their prior values. Returns the refreshed account record.
//
// Email uniqueness is not re-checked when the patch carries a new email;
// a conflict surfaces as an unclassified store error.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, patch models.ProfilePatch) (models.User, error) {
	log := logger.FromContext(ctx)

	// Existence check first so a stale token yields not-found, not a
	// silent zero-row update.
	if _, err := a.userRepository.FindUserByID(ctx, userID); err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if err := a.userRepository.UpdateProfile(ctx, userID, patch); err != nil {
		log.Err(err).Int64("id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	updatedUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("reloading updated user failed")
		return models.User{}, fmt.Errorf("reloading updated user failed: %w", err)
	}

	return updatedUser, nil
}

// UpdatePassword verifies the caller's current password and replaces the
// stored hash with a freshly computed one.
//
// Returns:
//   - ErrPasswordFieldsRequired if either password field is empty.
//   - ErrCurrentPasswordIncorrect if the current password does not match.
//   - A wrapped store error if the account lookup or update fails.
func (a *authService) UpdatePassword(ctx context.Context, userID int64, req models.UpdatePasswordRequest) error {
	log := logger.FromContext(ctx)

	if req.CurrentPassword == "" || req.NewPassword == "" {
		log.Error().Msg("password update payload is incomplete")
		return ErrPasswordFieldsRequired
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if !utils.VerifyPassword(foundUser.PasswordHash, req.CurrentPassword) {
		log.Error().Int64("id", userID).Msg("current password mismatch")
		return ErrCurrentPasswordIncorrect
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, userID, newHash); err != nil {
		log.Err(err).Int64("id", userID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	return nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after
// tokenDuration (24 hours by default).
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature
// and the issuer claim. Any validation failure (expired, wrong issuer,
// malformed) is normalised to ErrTokenIsExpiredOrInvalid so that callers
// do not need to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// requiredField pairs a payload field name with its value for ordered
// required-field validation.
type requiredField struct {
	name  string
	value string
}

// firstMissingField returns the name of the first empty field, preserving
// declaration order so validation errors are stable.
func firstMissingField(fields ...requiredField) (string, bool) {
	for _, f := range fields {
		if f.value == "" {
			return f.name, true
		}
	}
	return "", false
}
