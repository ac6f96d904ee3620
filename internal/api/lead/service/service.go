package leadService

import (
	"LeadReceptionist/internal/api/lead"
	leadRepository "LeadReceptionist/internal/api/lead/repository"
	"LeadReceptionist/internal/entity"
	"LeadReceptionist/pkg/crm"
	"LeadReceptionist/pkg/extraction"
	"LeadReceptionist/pkg/pubsub"
	"LeadReceptionist/pkg/redis"
	"LeadReceptionist/pkg/utils"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type ILeadService interface {
	ProcessInbound(ctx context.Context, msg lead.InboundMessage) (*lead.TurnResult, error)
	Finalize(ctx context.Context, identity string, fields entity.FieldSet) string

	GetSession(ctx context.Context, identity string) (*lead.SessionResponse, error)
	ListRecovery(ctx context.Context, limit int64) ([]redis.RecoveryRecord, error)
}

// IMessenger is satisfied by both the SMS and the WhatsApp senders.
type IMessenger interface {
	SendMessage(ctx context.Context, phoneNumber, message string) error
}

type leadService struct {
	log       *logrus.Logger
	leadRepo  leadRepository.Repository
	extractor extraction.IExtractor
	messenger IMessenger
	crm       crm.ICRM
	recovery  redis.IRedis
	publisher pubsub.Publisher
	utils     utils.IUtils
	config    lead.Config
	now       func() time.Time
}

// NewLeadService wires the dialogue engine. recovery and publisher may be nil.
func NewLeadService(
	log *logrus.Logger,
	leadRepo leadRepository.Repository,
	extractor extraction.IExtractor,
	messenger IMessenger,
	crmClient crm.ICRM,
	recovery redis.IRedis,
	publisher pubsub.Publisher,
	utils utils.IUtils,
	config lead.Config,
) ILeadService {
	return &leadService{
		log:       log,
		leadRepo:  leadRepo,
		extractor: extractor,
		messenger: messenger,
		crm:       crmClient,
		recovery:  recovery,
		publisher: publisher,
		utils:     utils,
		config:    config,
		now:       time.Now,
	}
}
