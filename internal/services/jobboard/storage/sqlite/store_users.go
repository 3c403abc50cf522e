package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/louisbranch/jobboard/internal/platform/pagination"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/user"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
	"github.com/louisbranch/jobboard/internal/services/jobboard/storage"
)

const userColumns = `u.id, u.first_name, u.last_name, u.email, u.phone, u.password_hash, u.role, u.company_id, u.created_at, u.updated_at`

// CreateUser inserts a user. A missing company yields *storage.ReferenceError.
func (s *Store) CreateUser(ctx context.Context, u user.User) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireCompany(ctx, tx, u.CompanyID); err != nil {
			return err
		}
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO users (id, first_name, last_name, email, phone, password_hash, role, company_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			u.ID, u.FirstName, u.LastName, u.Email, u.Phone, u.PasswordHash, string(u.Role),
			nullable(u.CompanyID), toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
		)
		if err != nil {
			return mapUserWriteError("create user", err)
		}
		return nil
	})
}

// GetUser returns one user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (user.User, error) {
	return s.getUser(ctx, "get user", `u.id = ?`, id)
}

// GetUserByEmail returns one user by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return s.getUser(ctx, "get user by email", `u.email = ?`, email)
}

func (s *Store) getUser(ctx context.Context, op, cond string, arg any) (user.User, error) {
	if err := s.ready(ctx); err != nil {
		return user.User{}, err
	}
	return queryUser(ctx, s.sqlDB, op, cond, arg)
}

func queryUser(ctx context.Context, q queryer, op, cond string, arg any) (user.User, error) {
	row := q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE `+cond, arg)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserWithCompany returns a user joined with their company.
func (s *Store) GetUserWithCompany(ctx context.Context, id string) (user.WithCompany, error) {
	if err := s.ready(ctx); err != nil {
		return user.WithCompany{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+userColumns+`, c.name
		   FROM users u
		   LEFT JOIN companies c ON c.id = u.company_id
		  WHERE u.id = ?`,
		id,
	)
	var companyName sql.NullString
	u, err := scanUser(row, &companyName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.WithCompany{}, storage.ErrNotFound
		}
		return user.WithCompany{}, fmt.Errorf("get user with company: %w", err)
	}
	return withCompany(u, companyName), nil
}

// ListUsers returns one page of users ordered newest first.
func (s *Store) ListUsers(ctx context.Context, filter storage.UserFilter, req pagination.Request) (storage.UserPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.UserPage{}, err
	}
	var where whereClause
	where.search(filter.Search, "u.first_name", "u.last_name", "u.email")
	if filter.Role != identity.RoleUnspecified {
		where.add("u.role = ?", string(filter.Role))
	}

	total, err := count(ctx, s.sqlDB, `SELECT COUNT(*) FROM users u`+where.String(), where.args...)
	if err != nil {
		return storage.UserPage{}, fmt.Errorf("count users: %w", err)
	}

	args := append(append([]any{}, where.args...), req.Limit, req.Offset())
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+userColumns+`, c.name,
		        (SELECT COUNT(*) FROM job_applications a WHERE a.user_id = u.id),
		        (SELECT COUNT(*) FROM jobs j WHERE j.created_by = u.id)
		   FROM users u
		   LEFT JOIN companies c ON c.id = u.company_id`+where.String()+`
		  ORDER BY u.created_at DESC, u.id
		  LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return storage.UserPage{}, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	page := storage.UserPage{Users: make([]user.Listing, 0, req.Limit)}
	for rows.Next() {
		var companyName sql.NullString
		var listing user.Listing
		u, err := scanUser(rows, &companyName, &listing.ApplicationCount, &listing.JobCount)
		if err != nil {
			return storage.UserPage{}, fmt.Errorf("list users: %w", err)
		}
		listing.WithCompany = withCompany(u, companyName)
		page.Users = append(page.Users, listing)
	}
	if err := rows.Err(); err != nil {
		return storage.UserPage{}, fmt.Errorf("list users: %w", err)
	}
	page.Page = pagination.NewPage(req, total)
	return page, nil
}

// UpdateUser applies a change to the stored user inside one write
// transaction, so apply always sees the latest row.
func (s *Store) UpdateUser(ctx context.Context, id string, apply func(user.User) (user.User, error)) (user.User, error) {
	var updated user.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := queryUser(ctx, tx, "update user", `u.id = ?`, id)
		if err != nil {
			return err
		}
		next, err := apply(current)
		if err != nil {
			return err
		}
		next.ID, next.CreatedAt = current.ID, current.CreatedAt
		if err := requireCompany(ctx, tx, next.CompanyID); err != nil {
			return err
		}
		result, err := tx.ExecContext(
			ctx,
			`UPDATE users
			    SET first_name = ?, last_name = ?, email = ?, phone = ?, password_hash = ?,
			        role = ?, company_id = ?, updated_at = ?
			  WHERE id = ?`,
			next.FirstName, next.LastName, next.Email, next.Phone, next.PasswordHash,
			string(next.Role), nullable(next.CompanyID), toMillis(next.UpdatedAt), next.ID,
		)
		if err != nil {
			return mapUserWriteError("update user", err)
		}
		updated = next
		return requireAffected(result)
	})
	if err != nil {
		return user.User{}, err
	}
	return updated, nil
}

// DeleteUser deletes a user that created no jobs. Their applications are
// kept and unlinked.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		found, err := exists(ctx, tx, "users", id)
		if err != nil {
			return err
		}
		if !found {
			return storage.ErrNotFound
		}
		jobs, err := count(ctx, tx, `SELECT COUNT(*) FROM jobs WHERE created_by = ?`, id)
		if err != nil {
			return fmt.Errorf("count user jobs: %w", err)
		}
		if jobs > 0 {
			return &storage.DependencyError{Entity: storage.EntityUser, Jobs: jobs}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
			switch {
			case isForeignKeyViolation(err):
				return &storage.DependencyError{Entity: storage.EntityUser}
			case isUniqueViolation(err):
				// An unlinked application collided with an anonymous one
				// for the same job and email.
				return &storage.ConflictError{Field: storage.FieldApplication}
			}
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

func requireCompany(ctx context.Context, tx *sql.Tx, companyID string) error {
	if companyID == "" {
		return nil
	}
	found, err := exists(ctx, tx, "companies", companyID)
	if err != nil {
		return err
	}
	if !found {
		return &storage.ReferenceError{Entity: storage.EntityCompany}
	}
	return nil
}

func mapUserWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return &storage.ConflictError{Field: storage.FieldUserEmail}
	case isForeignKeyViolation(err):
		return &storage.ReferenceError{Entity: storage.EntityCompany}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// scanUser scans userColumns followed by extra destinations.
func scanUser(row rowScanner, extra ...any) (user.User, error) {
	var u user.User
	var role string
	var companyID sql.NullString
	var createdAt, updatedAt int64
	dest := append([]any{
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.PasswordHash,
		&role, &companyID, &createdAt, &updatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return user.User{}, err
	}
	u.Role = identity.Role(role)
	u.CompanyID = companyID.String
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

func withCompany(u user.User, companyName sql.NullString) user.WithCompany {
	out := user.WithCompany{User: u}
	if u.CompanyID != "" && companyName.Valid {
		out.Company = &user.CompanyRef{ID: u.CompanyID, Name: companyName.String}
	}
	return out
}
