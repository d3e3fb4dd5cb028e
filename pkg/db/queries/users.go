package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ASHISH26940/pintunes-api/pkg/db"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

// ErrDuplicateEmail is returned by CreateUser when the email is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

const uniqueViolation = pq.ErrorCode("23505")

// UserQueries reads and writes the users table.
type UserQueries struct {
	DB *sqlx.DB
}

func NewUserQueries(conn *sqlx.DB) *UserQueries {
	return &UserQueries{DB: conn}
}

// CreateUser inserts a new user and fills in the generated id and timestamps.
func (q *UserQueries) CreateUser(ctx context.Context, user *db.User) (*db.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES (:username, :email, :password_hash)
		RETURNING id, created_at, updated_at`

	rows, err := sqlx.NamedQueryContext(ctx, q.DB, query, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		log.Errorf("Error creating user: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return nil, errors.New("no rows returned after user creation")
	}
	if err := rows.StructScan(user); err != nil {
		log.Errorf("Error scanning user data after creation: %v", err)
		return nil, fmt.Errorf("error scanning user after creation: %w", err)
	}

	log.Infof("User %s created with ID: %s", user.Email, user.ID.String())
	return user, nil
}

// FindUserByEmail returns nil, nil when no user has the email.
func (q *UserQueries) FindUserByEmail(ctx context.Context, email string) (*db.User, error) {
	user := &db.User{}
	query := `SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE email = $1`
	if err := q.DB.GetContext(ctx, user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debugf("User with email '%s' not found.", email)
			return nil, nil
		}
		log.Errorf("Error finding user by email '%s': %v", email, err)
		return nil, err
	}
	return user, nil
}

// FindUserByID returns nil, nil when the user does not exist.
func (q *UserQueries) FindUserByID(ctx context.Context, id uuid.UUID) (*db.User, error) {
	user := &db.User{}
	query := `SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE id = $1`
	if err := q.DB.GetContext(ctx, user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debugf("User with ID '%s' not found.", id.String())
			return nil, nil
		}
		log.Errorf("Error finding user by ID '%s': %v", id.String(), err)
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user; their playlists go with them (ON DELETE CASCADE).
func (q *UserQueries) DeleteUser(ctx context.Context, id uuid.UUID) error {
	result, err := q.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Errorf("Error deleting user with ID '%s': %v", id.String(), err)
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warnf("No user found with ID '%s' for deletion.", id.String())
		return sql.ErrNoRows
	}

	log.Infof("User with ID '%s' deleted.", id.String())
	return nil
}
