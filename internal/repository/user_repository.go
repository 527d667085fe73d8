package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"user-dashboard-service/internal/entity"
)

const usersTable = "users"

var userColumns = []string{"id", "name", "date_of_birth"}

// UserRepository keeps the users table dense: ids are always 1..N.
//
// Mutations are serialized per repository and DeleteUser runs inside a
// transaction, so concurrent deletes through the same instance cannot leave
// gaps. Separate processes sharing one database are not coordinated.
type UserRepository struct {
	db *sqlx.DB
	mu sync.Mutex
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ListUsers returns at most limit users ordered by id.
func (r *UserRepository) ListUsers(ctx context.Context, limit int) ([]entity.User, error) {
	query, args, err := sq.Select(userColumns...).
		From(usersTable).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	users := []entity.User{}
	if err := sqlx.SelectContext(ctx, r.db, &users, query, args...); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	return getUser(ctx, r.db, id)
}

// CreateUser inserts user with id max(id)+1 and sets user.ID.
func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	var next int
	if err := tx.GetContext(ctx, &next, `SELECT COALESCE(MAX(id), 0) + 1 FROM users`); err != nil {
		tx.Rollback()
		return nil, err
	}

	query, args, err := sq.Insert(usersTable).
		Columns(userColumns...).
		Values(next, user.Name, user.DateOfBirth).
		ToSql()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	user.ID = next
	return user, nil
}

// UpdateUser changes name and date of birth in place; the id never changes.
func (r *UserRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	if _, err := getUser(ctx, tx, user.ID); err != nil {
		tx.Rollback()
		return nil, err
	}

	query, args, err := sq.Update(usersTable).
		Set("name", user.Name).
		Set("date_of_birth", user.DateOfBirth).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user with id, renumbers the remaining users to 1..N
// in ascending id order and resets the id sequence to N+1. The removed user
// is returned as it was before deletion.
func (r *UserRepository) DeleteUser(ctx context.Context, id int) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	deleted, err := getUser(ctx, tx, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	query, args, err := sq.Delete(usersTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		tx.Rollback()
		return nil, err
	}

	count, err := renumber(ctx, tx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	// MySQL commits implicitly on ALTER TABLE, so the sequence is reset
	// only once the renumbering is durable.
	if err := resetUserSequence(ctx, r.db, count+1); err != nil {
		return nil, err
	}

	return deleted, nil
}

// renumber reassigns ids 1..N to the remaining users in ascending id order
// and returns N. Each new id is never greater than the old one, so walking
// in ascending order cannot collide with a row that is still to be moved.
func renumber(ctx context.Context, tx *sqlx.Tx) (int, error) {
	query, args, err := sq.Select("id").From(usersTable).OrderBy("id ASC").ToSql()
	if err != nil {
		return 0, err
	}

	var ids []int
	if err := tx.SelectContext(ctx, &ids, query, args...); err != nil {
		return 0, err
	}

	for i, oldID := range ids {
		newID := i + 1
		if oldID == newID {
			continue
		}
		query, args, err := sq.Update(usersTable).
			Set("id", newID).
			Where(sq.Eq{"id": oldID}).
			ToSql()
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("renumber user %d to %d: %w", oldID, newID, err)
		}
	}

	return len(ids), nil
}

func resetUserSequence(ctx context.Context, db *sqlx.DB, next int) error {
	switch db.DriverName() {
	case DriverMySQL:
		_, err := db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE users AUTO_INCREMENT = %d", next))
		return err
	default:
		// SQLite allocates max(rowid)+1 for an INTEGER PRIMARY KEY without AUTOINCREMENT.
		return nil
	}
}

func getUser(ctx context.Context, q sqlx.QueryerContext, id int) (*entity.User, error) {
	query, args, err := sq.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var user entity.User
	if err := sqlx.GetContext(ctx, q, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
