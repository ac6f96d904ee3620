package leadRepository

import (
	"LeadReceptionist/internal/api/lead"
	"LeadReceptionist/internal/entity"
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Repository is the process-wide session store. Sessions live for the life
// of the process and are never evicted.
type Repository interface {
	// NewClient blocks until the caller holds the identity's lock, or ctx ends.
	NewClient(ctx context.Context, identity string) (Client, error)
	GetSnapshot(ctx context.Context, identity string) (entity.LeadSession, error)
}

// Client is scoped to one identity. Release must be called exactly once;
// further calls are no-ops.
type Client struct {
	Sessions interface {
		GetOrCreate(ctx context.Context) (entity.LeadSession, error)
		Put(ctx context.Context, session entity.LeadSession) error
	}

	Release func()
}

type repository struct {
	log *logrus.Logger
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]entity.LeadSession

	locks *keyedLocker
}

func New(log *logrus.Logger) Repository {
	return NewWithClock(log, time.Now)
}

func NewWithClock(log *logrus.Logger, now func() time.Time) Repository {
	return &repository{
		log:      log,
		now:      now,
		sessions: make(map[string]entity.LeadSession),
		locks:    newKeyedLocker(),
	}
}

func (r *repository) NewClient(ctx context.Context, identity string) (Client, error) {
	unlock, err := r.locks.Lock(ctx, identity)
	if err != nil {
		return Client{}, lead.ErrSessionBusy
	}

	var once sync.Once
	return Client{
		Sessions: &sessionRepository{repo: r, identity: identity},
		Release:  func() { once.Do(unlock) },
	}, nil
}

func (r *repository) GetSnapshot(ctx context.Context, identity string) (entity.LeadSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[identity]
	if !ok {
		return entity.LeadSession{}, lead.ErrSessionNotFound
	}
	return session.Clone(), nil
}

type sessionRepository struct {
	repo     *repository
	identity string
}
