package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateInterview persists a new interview for the user and returns its ID.
func (db *DB) CreateInterview(ctx context.Context, userID uuid.UUID, base BaseInterview) (uuid.UUID, error) {
	if userID == uuid.Nil {
		return uuid.Nil, ErrAuthRequired
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO interviews (user_id, job_title, company, job_description, created_date, created_time)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		userID, base.JobTitle, base.Company, base.JobDescription, base.CreatedAt.Date, base.CreatedAt.Time,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, &ErrUnavailable{Op: "create interview", Err: err}
	}
	return id, nil
}

// ListInterviews returns every interview belonging to the user, newest first.
// A user with no interviews gets an empty slice, not an error.
func (db *DB) ListInterviews(ctx context.Context, userID uuid.UUID) ([]Interview, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, job_title, company, job_description, created_date, created_time
		 FROM interviews WHERE user_id = $1 ORDER BY created_date DESC`,
		userID,
	)
	if err != nil {
		return nil, &ErrUnavailable{Op: "list interviews", Err: err}
	}
	defer rows.Close()

	interviews := make([]Interview, 0)
	for rows.Next() {
		var iv Interview
		if err := rows.Scan(&iv.ID, &iv.JobTitle, &iv.Company, &iv.JobDescription,
			&iv.CreatedAt.Date, &iv.CreatedAt.Time); err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		interviews = append(interviews, iv)
	}
	return interviews, nil
}

// GetInterviewByID retrieves one interview scoped to the user.
func (db *DB) GetInterviewByID(ctx context.Context, userID, interviewID uuid.UUID) (*Interview, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	var iv Interview
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_title, company, job_description, created_date, created_time
		 FROM interviews WHERE id = $1 AND user_id = $2`,
		interviewID, userID,
	).Scan(&iv.ID, &iv.JobTitle, &iv.Company, &iv.JobDescription,
		&iv.CreatedAt.Date, &iv.CreatedAt.Time)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrInterviewNotFound{InterviewID: interviewID}
		}
		return nil, &ErrUnavailable{Op: "get interview", Err: err}
	}
	return &iv, nil
}
