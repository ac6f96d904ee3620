package leadService_test

import (
	"LeadReceptionist/internal/api/lead"
	leadRepository "LeadReceptionist/internal/api/lead/repository"
	leadService "LeadReceptionist/internal/api/lead/service"
	"LeadReceptionist/internal/entity"
	"LeadReceptionist/pkg/extraction"
	"LeadReceptionist/pkg/pubsub"
	"LeadReceptionist/pkg/redis"
	"LeadReceptionist/pkg/utils"
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
)

type stubExtractor struct {
	mu      sync.Mutex
	calls   int
	lastReq extraction.Request
	fn      func(req extraction.Request) (*extraction.Proposal, error)
}

func (s *stubExtractor) Extract(ctx context.Context, req extraction.Request) (*extraction.Proposal, error) {
	s.mu.Lock()
	s.calls++
	s.lastReq = req
	fn := s.fn
	s.mu.Unlock()
	return fn(req)
}

func (s *stubExtractor) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubExtractor) LastRequest() extraction.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReq
}

type sentMessage struct {
	to   string
	text string
}

type stubMessenger struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (s *stubMessenger) SendMessage(ctx context.Context, phoneNumber, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentMessage{to: phoneNumber, text: message})
	return s.err
}

func (s *stubMessenger) Sent() []sentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMessage(nil), s.sent...)
}

type stubCRM struct {
	calls  atomic.Int32
	err    error
	mu     sync.Mutex
	fields entity.FieldSet
}

func (s *stubCRM) CreateLead(ctx context.Context, identity string, fields entity.FieldSet) error {
	s.calls.Add(1)
	s.mu.Lock()
	s.fields = fields
	s.mu.Unlock()
	return s.err
}

type stubRecovery struct {
	mu      sync.Mutex
	records []redis.RecoveryRecord
}

func (s *stubRecovery) PushRecovery(ctx context.Context, record redis.RecoveryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *stubRecovery) ListRecovery(ctx context.Context, limit int64) ([]redis.RecoveryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]redis.RecoveryRecord(nil), s.records...), nil
}

type stubPublisher struct {
	mu     sync.Mutex
	events []pubsub.Envelope
}

func (s *stubPublisher) Publish(ctx context.Context, key string, msg pubsub.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, msg)
	return nil
}

func (s *stubPublisher) Close() error { return nil }

type fixture struct {
	svc       leadService.ILeadService
	extractor *stubExtractor
	messenger *stubMessenger
	crm       *stubCRM
	recovery  *stubRecovery
	publisher *stubPublisher
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfig() lead.Config {
	cfg := lead.DefaultConfig()
	cfg.ExtractionTimeout = "2s"
	cfg.DeliveryTimeout = "2s"
	cfg.CRMTimeout = "2s"
	return cfg
}

func newFixture(t *testing.T, fn func(req extraction.Request) (*extraction.Proposal, error)) *fixture {
	t.Helper()
	return newFixtureWithConfig(t, testConfig(), fn)
}

func newFixtureWithConfig(t *testing.T, cfg lead.Config, fn func(req extraction.Request) (*extraction.Proposal, error)) *fixture {
	t.Helper()

	f := &fixture{
		extractor: &stubExtractor{fn: fn},
		messenger: &stubMessenger{},
		crm:       &stubCRM{},
		recovery:  &stubRecovery{},
		publisher: &stubPublisher{},
	}
	logger := newLogger()
	f.svc = leadService.NewLeadService(
		logger,
		leadRepository.New(logger),
		f.extractor,
		f.messenger,
		f.crm,
		f.recovery,
		f.publisher,
		utils.New(),
		cfg,
	)
	return f
}

func boolPtr(b bool) *bool { return &b }

func fields(kv map[entity.Slot]string) entity.FieldSet {
	out := entity.FieldSet{}
	for k, v := range kv {
		out.Set(k, v)
	}
	return out
}

func askNext(question string, updates map[entity.Slot]string) func(extraction.Request) (*extraction.Proposal, error) {
	return func(extraction.Request) (*extraction.Proposal, error) {
		return &extraction.Proposal{
			Fields:       fields(updates),
			NextQuestion: question,
			IsComplete:   boolPtr(false),
		}, nil
	}
}

func completeLead() map[entity.Slot]string {
	return map[entity.Slot]string{
		entity.SlotFullName:           "Jane Doe",
		entity.SlotVehicle:            "2019 Honda Civic",
		entity.SlotServiceInterest:    "brake inspection",
		entity.SlotPreferredTimeframe: "next Tuesday morning",
		entity.SlotBestContactMethod:  "text",
	}
}
