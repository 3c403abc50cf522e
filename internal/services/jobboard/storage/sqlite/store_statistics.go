package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/application"
	"github.com/louisbranch/jobboard/internal/services/jobboard/domain/job"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
	"github.com/louisbranch/jobboard/internal/services/jobboard/storage"
)

// GetStatistics counts companies, users by role, jobs by status, and
// applications by status from one snapshot.
func (s *Store) GetStatistics(ctx context.Context) (storage.Statistics, error) {
	stats := storage.Statistics{
		UsersByRole: map[identity.Role]int{
			identity.RoleCandidate: 0,
			identity.RoleRecruiter: 0,
			identity.RoleAdmin:     0,
		},
		JobsByStatus: map[job.Status]int{
			job.StatusPublished: 0,
			job.StatusArchived:  0,
		},
		ApplicationsByStatus: map[application.Status]int{
			application.StatusPending:  0,
			application.StatusAccepted: 0,
			application.StatusRejected: 0,
		},
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if stats.Companies, err = count(ctx, tx, `SELECT COUNT(*) FROM companies`); err != nil {
			return fmt.Errorf("count companies: %w", err)
		}
		if err := groupCount(ctx, tx, `SELECT role, COUNT(*) FROM users GROUP BY role`, func(key string, n int) {
			stats.UsersByRole[identity.Role(key)] = n
			stats.Users += n
		}); err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if err := groupCount(ctx, tx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`, func(key string, n int) {
			stats.JobsByStatus[job.Status(key)] = n
			stats.Jobs += n
		}); err != nil {
			return fmt.Errorf("count jobs: %w", err)
		}
		if err := groupCount(ctx, tx, `SELECT status, COUNT(*) FROM job_applications GROUP BY status`, func(key string, n int) {
			stats.ApplicationsByStatus[application.Status(key)] = n
			stats.Applications += n
		}); err != nil {
			return fmt.Errorf("count applications: %w", err)
		}
		return nil
	})
	if err != nil {
		return storage.Statistics{}, err
	}
	return stats, nil
}

func groupCount(ctx context.Context, q queryer, query string, fn func(key string, n int)) error {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		fn(key, n)
	}
	return rows.Err()
}
