package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/lewisTech25code/lewis/core"
	"github.com/lewisTech25code/lewis/core/user"
)

const userColumns = "id, username, password_hash, is_admin, balance, created_at"

type userRepository struct {
	db core.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db core.DB) user.Repository {
	return &userRepository{db: db}
}

// trapNoRowsErr maps sql "no rows" err to user.ErrNotFound
func (repo *userRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo *userRepository) CheckUsernameUniqueness(ctx context.Context, username string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int
	q := repo.db.Rebind(`SELECT COUNT(*) FROM users WHERE username = ?`)
	if err := repo.db.GetContext(ctx, &count, q, username); err != nil {
		return errors.Wrap(err, "counting users")
	}
	if count > 0 {
		return user.ErrUsernameExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	q := repo.db.Rebind(`
		INSERT INTO users (username, password_hash, is_admin, balance, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)
	err := repo.db.QueryRowxContext(ctx, q, usr.Username, usr.PasswordHash, usr.IsAdmin, usr.Balance, usr.CreatedAt).
		Scan(&usr.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	users := make([]user.User, 0)
	if err := repo.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "selecting users")
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id int) (user.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var usr user.User
	q := repo.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	if err := repo.db.GetContext(ctx, &usr, q, id); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "selecting user by id")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var usr user.User
	q := repo.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE username = ?`)
	if err := repo.db.GetContext(ctx, &usr, q, username); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "selecting user by username")
	}
	return usr, nil
}

func (repo *userRepository) UpdateUserBalance(ctx context.Context, id, balance int) (user.User, error) {
	if err := repo.update(ctx, "updating user balance", `UPDATE users SET balance = ? WHERE id = ?`, balance, id); err != nil {
		return user.User{}, err
	}
	return repo.GetUserByID(ctx, id)
}

func (repo *userRepository) UpdateUserPassword(ctx context.Context, id int, pwdHash []byte) error {
	return repo.update(ctx, "updating user password", `UPDATE users SET password_hash = ? WHERE id = ?`, pwdHash, id)
}

// update runs a single row UPDATE and reports user.ErrNotFound when no row matched.
func (repo *userRepository) update(ctx context.Context, msg, query string, args ...interface{}) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := repo.db.ExecContext(ctx, repo.db.Rebind(query), args...)
	if err != nil {
		return errors.Wrap(err, msg)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}
	return nil
}
