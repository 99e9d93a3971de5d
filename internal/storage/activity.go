package storage

import (
	"database/sql"
	"fmt"

	"github.com/hogyzen12/carrot-go/internal/types"
)

type ActivityStorage struct {
	client *sql.DB
}

func NewActivityStorage(db *sql.DB) *ActivityStorage {
	return &ActivityStorage{client: db}
}

func (s *ActivityStorage) SetActivity(activity *types.Activity) error {
	query := `
			INSERT INTO activities (wallet, mint, action, amount, signature, timestamp)
			VALUES (?, ?, ?, ?, ?, ?)
		`

	_, err := s.client.Exec(
		query,
		activity.Wallet,
		activity.Mint,
		activity.Action,
		activity.Amount,
		activity.Signature,
		activity.Timestamp,
	)

	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	return nil
}

func (s *ActivityStorage) GetBySignature(signature string) (*types.Activity, error) {
	query := `
			SELECT wallet, mint, action, amount, signature, timestamp
			FROM activities WHERE signature = ?
		`

	var activity types.Activity
	err := s.client.QueryRow(query, signature).Scan(
		&activity.Wallet,
		&activity.Mint,
		&activity.Action,
		&activity.Amount,
		&activity.Signature,
		&activity.Timestamp,
	)

	if err == sql.ErrNoRows {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}

	return &activity, nil
}

func (s *ActivityStorage) List(limit int) ([]types.Activity, error) {
	query := `
			SELECT wallet, mint, action, amount, signature, timestamp
			FROM activities ORDER BY timestamp DESC LIMIT ?
		`

	rows, err := s.client.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []types.Activity
	for rows.Next() {
		var activity types.Activity
		if err := rows.Scan(
			&activity.Wallet,
			&activity.Mint,
			&activity.Action,
			&activity.Amount,
			&activity.Signature,
			&activity.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, activity)
	}

	return activities, rows.Err()
}
