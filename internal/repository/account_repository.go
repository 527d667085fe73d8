package repository

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"user-dashboard-service/internal/entity"
)

const accountsTable = "accounts"

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate")

type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db}
}

func (r *AccountRepository) ListAccounts(ctx context.Context) ([]entity.Account, error) {
	query, args, err := sq.Select("id", "email", "password_hash").
		From(accountsTable).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	accounts := []entity.Account{}
	if err := sqlx.SelectContext(ctx, r.db, &accounts, query, args...); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *AccountRepository) GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query, args, err := sq.Select("id", "email", "password_hash").
		From(accountsTable).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var account entity.Account
	if err := sqlx.GetContext(ctx, r.db, &account, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) CreateAccount(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	query, args, err := sq.Insert(accountsTable).
		Columns("email", "password_hash").
		Values(account.Email, account.PasswordHash).
		ToSql()
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	account.ID = int(id)
	return account, nil
}

func (r *AccountRepository) DeleteAccountByEmail(ctx context.Context, email string) error {
	query, args, err := sq.Delete(accountsTable).Where(sq.Eq{"email": email}).ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
