package service

import (
	"context"

	apperrors "github.com/louisbranch/jobboard/internal/platform/errors"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
	"github.com/louisbranch/jobboard/internal/services/jobboard/policy"
	"github.com/louisbranch/jobboard/internal/services/jobboard/storage"
)

// GetStatistics returns dashboard counts for recruiters and admins.
func (s *Service) GetStatistics(ctx context.Context, principal identity.Principal) (_ storage.Statistics, err error) {
	ctx, finish := s.start(ctx, "GetStatistics", principal)
	defer finish(&err)

	if err := authorize(principal, policy.ActionRead, policy.ResourceStatistics, policy.Target{}); err != nil {
		return storage.Statistics{}, err
	}
	stats, err := s.store.GetStatistics(ctx)
	if err != nil {
		return storage.Statistics{}, storageError("get statistics", err, apperrors.CodeNotFound)
	}
	return stats, nil
}
