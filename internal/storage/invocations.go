package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// InvocationInfo is one journaled notification invocation. It is
// operational history only, the audit record of record lives in the
// durable table.
type InvocationInfo struct {
	InvocationID  string    `json:"invocation_id"`
	UserEmail     string    `json:"user_email"`
	AssignmentID  string    `json:"assignment_id"`
	SubmissionURL string    `json:"submission_url"`
	Status        string    `json:"status"`
	Attempt       int       `json:"attempt"`
	State         string    `json:"state"` // SUCCESS, FAILED
	FailedStep    string    `json:"failed_step"`
	StoragePath   string    `json:"storage_path"`
	EmailSent     bool      `json:"email_sent"`
	HandledAt     time.Time `json:"handled_at"`
}

// InvocationStore handles invocation persistence in SQLite
type InvocationStore struct {
	db             *DB
	maxInvocations int
}

// NewInvocationStore creates a new invocation store
func NewInvocationStore(db *DB, maxInvocations int) *InvocationStore {
	if maxInvocations <= 0 {
		maxInvocations = 1000
	}
	return &InvocationStore{
		db:             db,
		maxInvocations: maxInvocations,
	}
}

// RecordInvocation stores one invocation row
func (s *InvocationStore) RecordInvocation(invocation InvocationInfo) error {
	query := `
		INSERT INTO invocations (
			invocation_id, user_email, assignment_id, submission_url, status,
			attempt, state, failed_step, storage_path, email_sent, handled_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		invocation.InvocationID, invocation.UserEmail, invocation.AssignmentID,
		invocation.SubmissionURL, invocation.Status, invocation.Attempt,
		invocation.State, invocation.FailedStep, invocation.StoragePath,
		invocation.EmailSent, invocation.HandledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record invocation: %w", err)
	}

	if err := s.cleanupOldInvocations(); err != nil {
		// Log but don't fail
		fmt.Printf("Warning: failed to cleanup old invocations: %v\n", err)
	}

	return nil
}

// GetInvocation retrieves an invocation by id
func (s *InvocationStore) GetInvocation(invocationID string) (*InvocationInfo, error) {
	query := `
		SELECT invocation_id, user_email, assignment_id, submission_url, status,
			   attempt, state, failed_step, storage_path, email_sent, handled_at
		FROM invocations
		WHERE invocation_id = ?
	`

	var invocation InvocationInfo
	err := s.db.QueryRow(query, invocationID).Scan(
		&invocation.InvocationID, &invocation.UserEmail, &invocation.AssignmentID,
		&invocation.SubmissionURL, &invocation.Status, &invocation.Attempt,
		&invocation.State, &invocation.FailedStep, &invocation.StoragePath,
		&invocation.EmailSent, &invocation.HandledAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invocation not found: %s", invocationID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invocation: %w", err)
	}

	return &invocation, nil
}

// GetRecentInvocations retrieves the N most recent invocations
func (s *InvocationStore) GetRecentInvocations(limit int) ([]*InvocationInfo, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT invocation_id, user_email, assignment_id, submission_url, status,
			   attempt, state, failed_step, storage_path, email_sent, handled_at
		FROM invocations
		ORDER BY handled_at DESC
		LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list invocations: %w", err)
	}
	defer rows.Close()

	var invocations []*InvocationInfo
	for rows.Next() {
		var invocation InvocationInfo
		err := rows.Scan(
			&invocation.InvocationID, &invocation.UserEmail, &invocation.AssignmentID,
			&invocation.SubmissionURL, &invocation.Status, &invocation.Attempt,
			&invocation.State, &invocation.FailedStep, &invocation.StoragePath,
			&invocation.EmailSent, &invocation.HandledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invocation: %w", err)
		}
		invocations = append(invocations, &invocation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invocations: %w", err)
	}

	return invocations, nil
}

// cleanupOldInvocations removes old rows exceeding the maximum count
func (s *InvocationStore) cleanupOldInvocations() error {
	query := `
		DELETE FROM invocations
		WHERE id NOT IN (
			SELECT id FROM invocations
			ORDER BY handled_at DESC
			LIMIT ?
		)
	`

	_, err := s.db.Exec(query, s.maxInvocations)
	return err
}
