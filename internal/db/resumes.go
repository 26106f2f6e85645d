package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetResume returns the user's resume. Absence is not an error: a user who has
// never saved gets the zero-valued resume with their ID.
func (db *DB) GetResume(ctx context.Context, userID uuid.UUID) (*Resume, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	res := NewResume(userID)
	err := db.pool.QueryRow(ctx,
		`SELECT skills, projects, other, experience
		 FROM resumes WHERE user_id = $1`,
		userID,
	).Scan(&res.Skills, &res.Projects, &res.Other, &res.Experience)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return res, nil
		}
		return nil, &ErrUnavailable{Op: "get resume", Err: err}
	}
	return res, nil
}

// UpdateResumeSection upserts a single free-text section, leaving the other
// columns untouched. The row is created lazily on the first save.
func (db *DB) UpdateResumeSection(ctx context.Context, userID uuid.UUID, section, content string) error {
	if userID == uuid.Nil {
		return ErrAuthRequired
	}
	if !ValidSection(section) {
		return &ErrInvalidSection{Section: section}
	}

	// Section names are whitelisted above, so interpolating the column is safe.
	query := fmt.Sprintf(
		`INSERT INTO resumes (user_id, %s) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET %s = EXCLUDED.%s, updated_at = NOW()`,
		section, section, section,
	)
	if _, err := db.pool.Exec(ctx, query, userID, content); err != nil {
		return &ErrUnavailable{Op: "update resume " + section, Err: err}
	}
	return nil
}

// UpdateResumeExperience replaces the entire experience list atomically.
// Blank entries are dropped before the write.
func (db *DB) UpdateResumeExperience(ctx context.Context, userID uuid.UUID, experience ExperienceList) error {
	if userID == uuid.Nil {
		return ErrAuthRequired
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO resumes (user_id, experience) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET experience = EXCLUDED.experience, updated_at = NOW()`,
		userID, experience.Compact(),
	)
	if err != nil {
		return &ErrUnavailable{Op: "update resume experience", Err: err}
	}
	return nil
}

// SaveResume writes the three sections and the experience list as independent
// concurrent upserts so that one failing section never blocks the others.
// Failures are collected per section and returned to the caller instead of
// being swallowed.
func (db *DB) SaveResume(ctx context.Context, userID uuid.UUID, res *Resume) []SectionError {
	if userID == uuid.Nil {
		return []SectionError{{Section: "resume", Err: ErrAuthRequired}}
	}

	sections := map[string]string{
		SectionSkills:   res.Skills,
		SectionProjects: res.Projects,
		SectionOther:    res.Other,
	}

	var (
		mu     sync.Mutex
		failed []SectionError
		wg     sync.WaitGroup
	)
	record := func(section string, err error) {
		if err == nil {
			return
		}
		mu.Lock()
		failed = append(failed, SectionError{Section: section, Err: err})
		mu.Unlock()
	}

	for name, content := range sections {
		wg.Add(1)
		go func(name, content string) {
			defer wg.Done()
			record(name, db.UpdateResumeSection(ctx, userID, name, content))
		}(name, content)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		record("experience", db.UpdateResumeExperience(ctx, userID, res.Experience))
	}()

	wg.Wait()
	return failed
}
