package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dealership/internal/models"
)

const accountColumns = `account_id, account_firstname, account_lastname, account_email, account_password, account_type`

func scanAccount(row interface{ Scan(...any) error }) (*models.Account, error) {
	var (
		acc      models.Account
		roleName string
	)
	if err := row.Scan(&acc.ID, &acc.FirstName, &acc.LastName, &acc.Email, &acc.PasswordHash, &roleName); err != nil {
		return nil, err
	}

	role, err := models.ParseRole(roleName)
	if err != nil {
		return nil, err
	}
	acc.Role = role

	return &acc, nil
}

// CreateAccount inserts a Client account.
func (s *Postgres) CreateAccount(ctx context.Context, req models.NewAccountRequest) (*models.Account, error) {
	const op = "store.CreateAccount"

	query := `
		INSERT INTO account (account_firstname, account_lastname, account_email, account_password, account_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + accountColumns

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query,
		req.FirstName, req.LastName, normalizeEmail(req.Email), req.PasswordHash, models.RoleClient.String()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}

	return acc, nil
}

// AccountByEmail finds an account by its (case-insensitive) email.
func (s *Postgres) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "store.AccountByEmail"

	query := `SELECT ` + accountColumns + ` FROM account WHERE account_email = $1`

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query, normalizeEmail(email)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}

	return acc, nil
}

// AccountByID finds an account by id.
func (s *Postgres) AccountByID(ctx context.Context, id int64) (*models.Account, error) {
	const op = "store.AccountByID"

	query := `SELECT ` + accountColumns + ` FROM account WHERE account_id = $1`

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}

	return acc, nil
}

// UpdatePassword replaces the stored hash.
func (s *Postgres) UpdatePassword(ctx context.Context, id int64, hash string) error {
	const op = "store.UpdatePassword"

	res, err := s.db.ExecContext(ctx, `UPDATE account SET account_password = $1 WHERE account_id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translate(err))
	}

	if err := affectedOne(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdateProfile changes name and email and returns the stored row.
func (s *Postgres) UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.Account, error) {
	const op = "store.UpdateProfile"

	query := `
		UPDATE account
		SET account_firstname = $1, account_lastname = $2, account_email = $3
		WHERE account_id = $4
		RETURNING ` + accountColumns

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query,
		strings.TrimSpace(upd.FirstName), strings.TrimSpace(upd.LastName), normalizeEmail(upd.Email), id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}

	return acc, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
