package leadService

import (
	"LeadReceptionist/internal/api/lead"
	"LeadReceptionist/pkg/redis"
	"context"
)

func (s *leadService) GetSession(ctx context.Context, identity string) (*lead.SessionResponse, error) {
	session, err := s.leadRepo.GetSnapshot(ctx, lead.NormalizeIdentity(identity))
	if err != nil {
		return nil, err
	}

	resp := lead.NewSessionResponse(session)
	return &resp, nil
}

func (s *leadService) ListRecovery(ctx context.Context, limit int64) ([]redis.RecoveryRecord, error) {
	if s.recovery == nil {
		return nil, lead.ErrRecoveryDisabled
	}
	return s.recovery.ListRecovery(ctx, limit)
}
