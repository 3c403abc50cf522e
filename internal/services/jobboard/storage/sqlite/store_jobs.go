package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/jobboard/internal/platform/pagination"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/job"
	"github.com/louisbranch/jobboard/internal/services/jobboard/storage"
)

const jobColumns = `j.id, j.title, j.type, j.short_description, j.description, j.responsibilities,
       j.qualifications, j.salary, j.location, j.status, j.company_id, j.created_by,
       j.created_at, j.updated_at`

// CreateJob inserts a job. A missing company or creator yields
// *storage.ReferenceError.
func (s *Store) CreateJob(ctx context.Context, j job.Job) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireJobReferences(ctx, tx, j); err != nil {
			return err
		}
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO jobs (
			   id, title, type, short_description, description, responsibilities,
			   qualifications, salary, location, status, company_id, created_by,
			   created_at, updated_at
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			j.ID, j.Title, string(j.Type), j.ShortDescription, j.Description, j.Responsibilities,
			j.Qualifications, j.Salary, j.Location, string(j.Status), j.CompanyID, j.CreatedBy,
			toMillis(j.CreatedAt), toMillis(j.UpdatedAt),
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return &storage.ReferenceError{Entity: storage.EntityCompany}
			}
			return fmt.Errorf("create job: %w", err)
		}
		return nil
	})
}

// GetJob returns one job by ID, whatever its status.
func (s *Store) GetJob(ctx context.Context, id string) (job.Job, error) {
	if err := s.ready(ctx); err != nil {
		return job.Job{}, err
	}
	return queryJob(ctx, s.sqlDB, "get job", id)
}

func queryJob(ctx context.Context, q queryer, op, id string) (job.Job, error) {
	row := q.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = ?`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return job.Job{}, storage.ErrNotFound
		}
		return job.Job{}, fmt.Errorf("%s: %w", op, err)
	}
	return j, nil
}

// GetJobDetail returns a job with its company, creator, and application count.
func (s *Store) GetJobDetail(ctx context.Context, id string) (job.Detail, error) {
	if err := s.ready(ctx); err != nil {
		return job.Detail{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+jobColumns+`,
		        c.name, c.place, c.website,
		        u.first_name, u.last_name, u.email,
		        (SELECT COUNT(*) FROM job_applications a WHERE a.job_id = j.id)
		   FROM jobs j
		   JOIN companies c ON c.id = j.company_id
		   JOIN users u ON u.id = j.created_by
		  WHERE j.id = ?`,
		id,
	)
	var detail job.Detail
	j, err := scanJob(row,
		&detail.Company.Name, &detail.Company.Place, &detail.Company.Website,
		&detail.Creator.FirstName, &detail.Creator.LastName, &detail.Creator.Email,
		&detail.ApplicationCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return job.Detail{}, storage.ErrNotFound
		}
		return job.Detail{}, fmt.Errorf("get job detail: %w", err)
	}
	detail.Job = j
	detail.Company.ID = j.CompanyID
	detail.Creator.ID = j.CreatedBy
	return detail, nil
}

// ListJobs returns one page of jobs ordered newest first.
func (s *Store) ListJobs(ctx context.Context, filter storage.JobFilter, req pagination.Request) (storage.JobPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.JobPage{}, err
	}
	var where whereClause
	where.search(filter.Search, "j.title", "j.short_description", "j.description")
	if location := strings.TrimSpace(filter.Location); location != "" {
		where.add(`lower(j.location) LIKE ? ESCAPE '\'`, likePattern(location))
	}
	if filter.Type != "" {
		where.add("j.type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		where.add("j.status = ?", string(filter.Status))
	}
	if filter.CompanyID != "" {
		where.add("j.company_id = ?", filter.CompanyID)
	}
	if filter.CreatedBy != "" {
		where.add("j.created_by = ?", filter.CreatedBy)
	}

	total, err := count(ctx, s.sqlDB, `SELECT COUNT(*) FROM jobs j`+where.String(), where.args...)
	if err != nil {
		return storage.JobPage{}, fmt.Errorf("count jobs: %w", err)
	}

	args := append(append([]any{}, where.args...), req.Limit, req.Offset())
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+jobColumns+`, c.name,
		        (SELECT COUNT(*) FROM job_applications a WHERE a.job_id = j.id)
		   FROM jobs j
		   JOIN companies c ON c.id = j.company_id`+where.String()+`
		  ORDER BY j.created_at DESC, j.id
		  LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return storage.JobPage{}, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	page := storage.JobPage{Jobs: make([]job.Summary, 0, req.Limit)}
	for rows.Next() {
		var summary job.Summary
		j, err := scanJob(rows, &summary.CompanyName, &summary.ApplicationCount)
		if err != nil {
			return storage.JobPage{}, fmt.Errorf("list jobs: %w", err)
		}
		summary.Job = j
		page.Jobs = append(page.Jobs, summary)
	}
	if err := rows.Err(); err != nil {
		return storage.JobPage{}, fmt.Errorf("list jobs: %w", err)
	}
	page.Page = pagination.NewPage(req, total)
	return page, nil
}

// UpdateJob applies a change to the stored job inside one write
// transaction, so apply always sees the latest row, status included.
func (s *Store) UpdateJob(ctx context.Context, id string, apply func(job.Job) (job.Job, error)) (job.Job, error) {
	var updated job.Job
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := queryJob(ctx, tx, "update job", id)
		if err != nil {
			return err
		}
		next, err := apply(current)
		if err != nil {
			return err
		}
		next.ID, next.CreatedBy, next.CreatedAt = current.ID, current.CreatedBy, current.CreatedAt
		if err := requireCompany(ctx, tx, next.CompanyID); err != nil {
			return err
		}
		result, err := tx.ExecContext(
			ctx,
			`UPDATE jobs
			    SET title = ?, type = ?, short_description = ?, description = ?,
			        responsibilities = ?, qualifications = ?, salary = ?, location = ?,
			        status = ?, company_id = ?, updated_at = ?
			  WHERE id = ?`,
			next.Title, string(next.Type), next.ShortDescription, next.Description,
			next.Responsibilities, next.Qualifications, next.Salary, next.Location,
			string(next.Status), next.CompanyID, toMillis(next.UpdatedAt), next.ID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return &storage.ReferenceError{Entity: storage.EntityCompany}
			}
			return fmt.Errorf("update job: %w", err)
		}
		updated = next
		return requireAffected(result)
	})
	if err != nil {
		return job.Job{}, err
	}
	return updated, nil
}

// DeleteJob deletes a job and its applications in one transaction.
func (s *Store) DeleteJob(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM job_applications WHERE job_id = ?`, id); err != nil {
			return fmt.Errorf("delete job applications: %w", err)
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete job: %w", err)
		}
		return requireAffected(result)
	})
}

func requireJobReferences(ctx context.Context, tx *sql.Tx, j job.Job) error {
	found, err := exists(ctx, tx, "companies", j.CompanyID)
	if err != nil {
		return err
	}
	if !found {
		return &storage.ReferenceError{Entity: storage.EntityCompany}
	}
	found, err = exists(ctx, tx, "users", j.CreatedBy)
	if err != nil {
		return err
	}
	if !found {
		return &storage.ReferenceError{Entity: storage.EntityUser}
	}
	return nil
}

// scanJob scans jobColumns followed by extra destinations.
func scanJob(row rowScanner, extra ...any) (job.Job, error) {
	var j job.Job
	var jobType, status string
	var createdAt, updatedAt int64
	dest := append([]any{
		&j.ID, &j.Title, &jobType, &j.ShortDescription, &j.Description, &j.Responsibilities,
		&j.Qualifications, &j.Salary, &j.Location, &status, &j.CompanyID, &j.CreatedBy,
		&createdAt, &updatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return job.Job{}, err
	}
	j.Type = job.Type(jobType)
	j.Status = job.Status(status)
	j.CreatedAt = fromMillis(createdAt)
	j.UpdatedAt = fromMillis(updatedAt)
	return j, nil
}
