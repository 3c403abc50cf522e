package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/louisbranch/jobboard/internal/platform/pagination"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/company"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/job"
	"github.com/louisbranch/jobboard/internal/services/jobboard/storage"
)

const companyColumns = `c.id, c.name, c.place, c.info, c.website, c.created_at, c.updated_at`

// CreateCompany inserts a company.
func (s *Store) CreateCompany(ctx context.Context, c company.Company) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO companies (id, name, place, info, website, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Place, c.Info, c.Website, toMillis(c.CreatedAt), toMillis(c.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &storage.ConflictError{Field: storage.FieldCompanyName}
		}
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

// GetCompany returns one company by ID.
func (s *Store) GetCompany(ctx context.Context, id string) (company.Company, error) {
	if err := s.ready(ctx); err != nil {
		return company.Company{}, err
	}
	return queryCompany(ctx, s.sqlDB, "get company", id)
}

func queryCompany(ctx context.Context, q queryer, op, id string) (company.Company, error) {
	row := q.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies c WHERE c.id = ?`, id)
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return company.Company{}, storage.ErrNotFound
		}
		return company.Company{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// GetCompanyDetail returns a company with its jobs, newest first, and its
// recruiters.
func (s *Store) GetCompanyDetail(ctx context.Context, id string) (company.Detail, error) {
	var detail company.Detail
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies c WHERE c.id = ?`, id)
		c, err := scanCompany(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrNotFound
			}
			return fmt.Errorf("get company: %w", err)
		}
		detail.Company = c

		if detail.Jobs, err = companyJobs(ctx, tx, id); err != nil {
			return err
		}
		if detail.Recruiters, err = companyRecruiters(ctx, tx, id); err != nil {
			return err
		}
		if detail.JobCount, err = count(ctx, tx, `SELECT COUNT(*) FROM jobs WHERE company_id = ?`, id); err != nil {
			return fmt.Errorf("count company jobs: %w", err)
		}
		if detail.UserCount, err = count(ctx, tx, `SELECT COUNT(*) FROM users WHERE company_id = ?`, id); err != nil {
			return fmt.Errorf("count company users: %w", err)
		}
		return nil
	})
	if err != nil {
		return company.Detail{}, err
	}
	return detail, nil
}

func companyJobs(ctx context.Context, tx *sql.Tx, companyID string) ([]company.JobRef, error) {
	rows, err := tx.QueryContext(
		ctx,
		`SELECT j.id, j.title, j.type, j.salary, j.location, j.status, j.created_at,
		        (SELECT COUNT(*) FROM job_applications a WHERE a.job_id = j.id)
		   FROM jobs j
		  WHERE j.company_id = ?
		  ORDER BY j.created_at DESC, j.id`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list company jobs: %w", err)
	}
	defer rows.Close()

	jobs := []company.JobRef{}
	for rows.Next() {
		var ref company.JobRef
		var jobType, status string
		var createdAt int64
		if err := rows.Scan(&ref.ID, &ref.Title, &jobType, &ref.Salary, &ref.Location, &status, &createdAt, &ref.ApplicationCount); err != nil {
			return nil, fmt.Errorf("list company jobs: %w", err)
		}
		ref.Type = job.Type(jobType)
		ref.Status = job.Status(status)
		ref.CreatedAt = fromMillis(createdAt)
		jobs = append(jobs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list company jobs: %w", err)
	}
	return jobs, nil
}

func companyRecruiters(ctx context.Context, tx *sql.Tx, companyID string) ([]company.Recruiter, error) {
	rows, err := tx.QueryContext(
		ctx,
		`SELECT id, first_name, last_name, email
		   FROM users
		  WHERE company_id = ? AND role = 'RECRUITER'
		  ORDER BY last_name, first_name, id`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list company recruiters: %w", err)
	}
	defer rows.Close()

	recruiters := []company.Recruiter{}
	for rows.Next() {
		var r company.Recruiter
		if err := rows.Scan(&r.ID, &r.FirstName, &r.LastName, &r.Email); err != nil {
			return nil, fmt.Errorf("list company recruiters: %w", err)
		}
		recruiters = append(recruiters, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list company recruiters: %w", err)
	}
	return recruiters, nil
}

// ListCompanies returns one page of companies ordered by name.
func (s *Store) ListCompanies(ctx context.Context, filter storage.CompanyFilter, req pagination.Request) (storage.CompanyPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.CompanyPage{}, err
	}
	var where whereClause
	where.search(filter.Search, "c.name", "c.place", "c.info")

	total, err := count(ctx, s.sqlDB, `SELECT COUNT(*) FROM companies c`+where.String(), where.args...)
	if err != nil {
		return storage.CompanyPage{}, fmt.Errorf("count companies: %w", err)
	}

	args := append(append([]any{}, where.args...), req.Limit, req.Offset())
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+companyColumns+`,
		        (SELECT COUNT(*) FROM jobs j WHERE j.company_id = c.id),
		        (SELECT COUNT(*) FROM users u WHERE u.company_id = c.id)
		   FROM companies c`+where.String()+`
		  ORDER BY c.name ASC, c.id ASC
		  LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return storage.CompanyPage{}, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	page := storage.CompanyPage{Companies: make([]company.Summary, 0, req.Limit)}
	for rows.Next() {
		var summary company.Summary
		var createdAt, updatedAt int64
		if err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.Place,
			&summary.Info,
			&summary.Website,
			&createdAt,
			&updatedAt,
			&summary.JobCount,
			&summary.UserCount,
		); err != nil {
			return storage.CompanyPage{}, fmt.Errorf("list companies: %w", err)
		}
		summary.CreatedAt = fromMillis(createdAt)
		summary.UpdatedAt = fromMillis(updatedAt)
		page.Companies = append(page.Companies, summary)
	}
	if err := rows.Err(); err != nil {
		return storage.CompanyPage{}, fmt.Errorf("list companies: %w", err)
	}
	page.Page = pagination.NewPage(req, total)
	return page, nil
}

// UpdateCompany applies a change to the stored company inside one write
// transaction, so apply always sees the latest row.
func (s *Store) UpdateCompany(ctx context.Context, id string, apply func(company.Company) (company.Company, error)) (company.Company, error) {
	var updated company.Company
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := queryCompany(ctx, tx, "update company", id)
		if err != nil {
			return err
		}
		next, err := apply(current)
		if err != nil {
			return err
		}
		next.ID, next.CreatedAt = current.ID, current.CreatedAt
		result, err := tx.ExecContext(
			ctx,
			`UPDATE companies
			    SET name = ?, place = ?, info = ?, website = ?, updated_at = ?
			  WHERE id = ?`,
			next.Name, next.Place, next.Info, next.Website, toMillis(next.UpdatedAt), next.ID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return &storage.ConflictError{Field: storage.FieldCompanyName}
			}
			return fmt.Errorf("update company: %w", err)
		}
		updated = next
		return requireAffected(result)
	})
	if err != nil {
		return company.Company{}, err
	}
	return updated, nil
}

// DeleteCompany deletes a company that no job or user references.
func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		found, err := exists(ctx, tx, "companies", id)
		if err != nil {
			return err
		}
		if !found {
			return storage.ErrNotFound
		}
		jobs, err := count(ctx, tx, `SELECT COUNT(*) FROM jobs WHERE company_id = ?`, id)
		if err != nil {
			return fmt.Errorf("count company jobs: %w", err)
		}
		users, err := count(ctx, tx, `SELECT COUNT(*) FROM users WHERE company_id = ?`, id)
		if err != nil {
			return fmt.Errorf("count company users: %w", err)
		}
		if jobs > 0 || users > 0 {
			return &storage.DependencyError{Entity: storage.EntityCompany, Jobs: jobs, Users: users}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id); err != nil {
			if isForeignKeyViolation(err) {
				return &storage.DependencyError{Entity: storage.EntityCompany}
			}
			return fmt.Errorf("delete company: %w", err)
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (company.Company, error) {
	var c company.Company
	var createdAt, updatedAt int64
	if err := row.Scan(&c.ID, &c.Name, &c.Place, &c.Info, &c.Website, &createdAt, &updatedAt); err != nil {
		return company.Company{}, err
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return c, nil
}
