package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/jobboard/internal/platform/pagination"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/application"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/job"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/user"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
	"github.com/louisbranch/jobboard/internal/services/jobboard/storage"
)

const applicationDetailQuery = `SELECT a.id, a.message, a.applicant_name, a.applicant_email, a.applicant_phone,
       a.status, a.job_id, a.user_id, a.created_at, a.updated_at,
       j.title, j.created_by, c.id, c.name,
       u.first_name, u.last_name, u.email, u.role
  FROM job_applications a
  JOIN jobs j ON j.id = a.job_id
  JOIN companies c ON c.id = j.company_id
  LEFT JOIN users u ON u.id = a.user_id`

// CreateApplication inserts an application for a published job. The job
// status is read in the same transaction as the insert. The partial unique
// indexes on (job_id, user_id) and (job_id, applicant_email) reject a
// second submission from the same identity.
func (s *Store) CreateApplication(ctx context.Context, a application.Application) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var status string
		err := tx.QueryRowContext(ctx, `SELECT status FROM jobs WHERE id = ?`, a.JobID).Scan(&status)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return &storage.ReferenceError{Entity: storage.EntityJob}
		case err != nil:
			return fmt.Errorf("check job status: %w", err)
		case job.Status(status) != job.StatusPublished:
			return storage.ErrJobNotPublished
		}
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO job_applications (
			   id, message, applicant_name, applicant_email, applicant_phone,
			   status, job_id, user_id, created_at, updated_at
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Message, a.ApplicantName, a.ApplicantEmail, a.ApplicantPhone,
			string(a.Status), a.JobID, nullable(a.UserID), toMillis(a.CreatedAt), toMillis(a.UpdatedAt),
		)
		if err != nil {
			switch {
			case isUniqueViolation(err):
				return &storage.ConflictError{Field: storage.FieldApplication}
			case isForeignKeyViolation(err):
				return &storage.ReferenceError{Entity: storage.EntityUser}
			}
			return fmt.Errorf("create application: %w", err)
		}
		return nil
	})
}

// GetApplication returns an application with its job and company context.
func (s *Store) GetApplication(ctx context.Context, id string) (application.Detail, error) {
	if err := s.ready(ctx); err != nil {
		return application.Detail{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, applicationDetailQuery+` WHERE a.id = ?`, id)
	detail, err := scanApplicationDetail(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return application.Detail{}, storage.ErrNotFound
		}
		return application.Detail{}, fmt.Errorf("get application: %w", err)
	}
	return detail, nil
}

// ListApplications returns one page of applications ordered newest first.
func (s *Store) ListApplications(ctx context.Context, filter storage.ApplicationFilter, req pagination.Request) (storage.ApplicationPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.ApplicationPage{}, err
	}
	var where whereClause
	if filter.JobID != "" {
		where.add("a.job_id = ?", filter.JobID)
	}
	if filter.UserID != "" {
		where.add("a.user_id = ?", filter.UserID)
	}
	if filter.JobCreatedBy != "" {
		where.add("j.created_by = ?", filter.JobCreatedBy)
	}
	if filter.Status != "" {
		where.add("a.status = ?", string(filter.Status))
	}

	total, err := count(
		ctx,
		s.sqlDB,
		`SELECT COUNT(*) FROM job_applications a JOIN jobs j ON j.id = a.job_id`+where.String(),
		where.args...,
	)
	if err != nil {
		return storage.ApplicationPage{}, fmt.Errorf("count applications: %w", err)
	}

	args := append(append([]any{}, where.args...), req.Limit, req.Offset())
	rows, err := s.sqlDB.QueryContext(
		ctx,
		applicationDetailQuery+where.String()+`
		 ORDER BY a.created_at DESC, a.id
		 LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return storage.ApplicationPage{}, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	page := storage.ApplicationPage{Applications: make([]application.Detail, 0, req.Limit)}
	for rows.Next() {
		detail, err := scanApplicationDetail(rows)
		if err != nil {
			return storage.ApplicationPage{}, fmt.Errorf("list applications: %w", err)
		}
		page.Applications = append(page.Applications, detail)
	}
	if err := rows.Err(); err != nil {
		return storage.ApplicationPage{}, fmt.Errorf("list applications: %w", err)
	}
	page.Page = pagination.NewPage(req, total)
	return page, nil
}

// SetApplicationStatus sets the review status of an application.
func (s *Store) SetApplicationStatus(ctx context.Context, id string, status application.Status, updatedAt time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE job_applications SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), toMillis(updatedAt), id,
	)
	if err != nil {
		return fmt.Errorf("set application status: %w", err)
	}
	return requireAffected(result)
}

// DeleteApplication deletes one application.
func (s *Store) DeleteApplication(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM job_applications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return requireAffected(result)
}

func scanApplicationDetail(row rowScanner) (application.Detail, error) {
	var d application.Detail
	var status string
	var userID, firstName, lastName, email, role sql.NullString
	var createdAt, updatedAt int64
	if err := row.Scan(
		&d.ID, &d.Message, &d.ApplicantName, &d.ApplicantEmail, &d.ApplicantPhone,
		&status, &d.JobID, &userID, &createdAt, &updatedAt,
		&d.JobTitle, &d.JobCreatedBy, &d.CompanyID, &d.CompanyName,
		&firstName, &lastName, &email, &role,
	); err != nil {
		return application.Detail{}, err
	}
	d.Status = application.Status(status)
	d.UserID = userID.String
	d.CreatedAt = fromMillis(createdAt)
	d.UpdatedAt = fromMillis(updatedAt)
	if userID.Valid && firstName.Valid {
		d.User = &user.Summary{
			ID:        userID.String,
			FirstName: firstName.String,
			LastName:  lastName.String,
			Email:     email.String,
			Role:      identity.Role(role.String),
		}
	}
	return d, nil
}
