package store

import (
	"context"
	"fmt"

	"dealership/internal/models"
)

// InsertMessage stores a feedback message for an account.
func (s *Postgres) InsertMessage(ctx context.Context, accountID int64, text string) (*models.Message, error) {
	const op = "store.InsertMessage"

	m := models.Message{AccountID: accountID}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO messages (account_id, message_text) VALUES ($1, $2) RETURNING message_id, message_text, created_at`,
		accountID, text).Scan(&m.ID, &m.Text, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translate(err))
	}

	return &m, nil
}

// ListMessages returns all feedback newest first, with author details.
func (s *Postgres) ListMessages(ctx context.Context) ([]models.Message, error) {
	const op = "store.ListMessages"

	query := `
		SELECT m.message_id, m.account_id, m.message_text, m.created_at,
			a.account_firstname, a.account_lastname, a.account_email
		FROM messages m
		JOIN account a ON m.account_id = a.account_id
		ORDER BY m.created_at DESC, m.message_id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.AccountID, &m.Text, &m.CreatedAt,
			&m.AuthorFirstName, &m.AuthorLastName, &m.AuthorEmail); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
