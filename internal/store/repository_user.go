package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/beezetrack/beezetrack-server/internal/logger"
	"github.com/beezetrack/beezetrack-server/models"
	"github.com/mattn/go-sqlite3"
)

// userRepository is the SQLite-backed implementation of [UserRepository].
// It handles account creation, lookup, and profile/password updates
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the [models.User] with
// the store-assigned ID filled in.
//
// Error handling:
//   - SQLite unique-constraint violation → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, createUser,
		user.Name, user.Email, user.PasswordHash,
		user.Phone, user.Address, user.City, user.State, user.ZipCode, user.Bio)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error executing insert")

		switch sqliteError(err) {
		case sqlite3.ErrConstraintUnique:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	userID, err := result.LastInsertId()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error getting inserted id")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	user.ID = userID
	return user, nil
}

// FindUserByEmail retrieves the user record whose email matches exactly.
//
// Error handling:
//   - sql.ErrNoRows → [ErrNoUserWasFound].
//   - Scan failure → wrapped [ErrScanningRow].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, findUserByEmail, email)
}

// FindUserByID retrieves the user record by primary key.
//
// Error handling mirrors [userRepository.FindUserByEmail].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, findUserByID, userID)
}

func (r *userRepository) findUser(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, query, arg)

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Phone, &user.Address, &user.City, &user.State, &user.ZipCode, &user.Bio,
		&user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.findUser").Msg("error scanning user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// UpdateProfile overwrites only the profile fields present in patch.
// The UPDATE statement is built dynamically with squirrel so that absent
// fields never appear in the SET clause and keep their stored values.
//
// A patch with no fields is a no-op. Email uniqueness is deliberately not
// re-checked here; a conflicting email surfaces as a raw constraint error.
func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, patch models.ProfilePatch) error {
	log := logger.FromContext(ctx)

	if patch.IsEmpty() {
		return nil
	}

	qb := squirrel.Update("users")
	if patch.Name != nil {
		qb = qb.Set("name", *patch.Name)
	}
	if patch.Email != nil {
		qb = qb.Set("email", *patch.Email)
	}
	if patch.Phone != nil {
		qb = qb.Set("phone", *patch.Phone)
	}
	if patch.Address != nil {
		qb = qb.Set("address", *patch.Address)
	}
	if patch.City != nil {
		qb = qb.Set("city", *patch.City)
	}
	if patch.State != nil {
		qb = qb.Set("state", *patch.State)
	}
	if patch.ZipCode != nil {
		qb = qb.Set("zip_code", *patch.ZipCode)
	}
	if patch.Bio != nil {
		qb = qb.Set("bio", *patch.Bio)
	}
	qb = qb.Where(squirrel.Eq{"id": userID})

	query, args, err := qb.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("error building update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("error executing update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// UpdatePassword replaces the stored password hash for the user.
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, updateUserPassword, passwordHash, userID); err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error executing update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
