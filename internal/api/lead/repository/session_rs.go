package leadRepository

import (
	"LeadReceptionist/internal/entity"
	contextPkg "LeadReceptionist/pkg/context"
	"context"

	"github.com/sirupsen/logrus"
)

// GetOrCreate returns a private copy of the stored session, creating and
// storing the default session on first contact.
func (s *sessionRepository) GetOrCreate(ctx context.Context) (entity.LeadSession, error) {
	r := s.repo

	r.mu.RLock()
	session, ok := r.sessions[s.identity]
	r.mu.RUnlock()
	if ok {
		return session.Clone(), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[s.identity]; ok {
		return session.Clone(), nil
	}

	session = entity.NewLeadSession(s.identity, r.now())
	r.sessions[s.identity] = session

	r.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"identity":   s.identity,
	}).Debug("Created lead session")

	return session.Clone(), nil
}

func (s *sessionRepository) Put(ctx context.Context, session entity.LeadSession) error {
	r := s.repo
	session.Identity = s.identity

	r.mu.Lock()
	r.sessions[s.identity] = session.Clone()
	r.mu.Unlock()

	return nil
}
