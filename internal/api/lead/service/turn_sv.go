package leadService

import (
	"LeadReceptionist/internal/api/lead"
	"LeadReceptionist/internal/entity"
	contextPkg "LeadReceptionist/pkg/context"
	"LeadReceptionist/pkg/extraction"
	"LeadReceptionist/pkg/response"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

type turnOutcome struct {
	reply     string
	state     entity.LeadState
	finalized bool
}

// ProcessInbound runs one dialogue turn. Session changes are committed before
// delivery is attempted, and a delivery failure is reported in the result
// rather than as an error.
func (s *leadService) ProcessInbound(ctx context.Context, msg lead.InboundMessage) (*lead.TurnResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	msg = lead.NormalizeInbound(msg)
	if msg.Identity == "" || msg.Text == "" {
		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"has_identity": msg.Identity != "",
			"has_text":     msg.Text != "",
		}).Debug("Ignoring unresolvable inbound message")
		return &lead.TurnResult{Ignored: true}, nil
	}

	outcome, err := s.runTurn(ctx, msg)
	if err != nil {
		return nil, err
	}

	return &lead.TurnResult{
		Identity:  msg.Identity,
		Reply:     outcome.reply,
		State:     outcome.state,
		Finalized: outcome.finalized,
		Delivery:  s.deliver(ctx, msg.Identity, outcome.reply),
	}, nil
}

// runTurn holds the identity lock from load to store.
func (s *leadService) runTurn(ctx context.Context, msg lead.InboundMessage) (*turnOutcome, error) {
	requestID := contextPkg.GetRequestID(ctx)
	logger := s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"identity":   msg.Identity,
	})

	repo, err := s.leadRepo.NewClient(ctx, msg.Identity)
	if err != nil {
		logger.WithField("error", err.Error()).Warn("Failed to acquire session")
		return nil, err
	}
	defer repo.Release()

	session, err := repo.Sessions.GetOrCreate(ctx)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to load session")
		return nil, err
	}

	if err := s.appendTurn(&session, entity.TurnRoleCustomer, msg.Text); err != nil {
		return nil, err
	}

	outcome := &turnOutcome{}
	if session.Complete {
		logger.Info("Message received for completed lead")
		outcome.reply = s.config.AlreadyCompleteReply
	} else {
		proposal, err := s.extract(ctx, session)
		if err != nil {
			logger.WithField("error", err.Error()).Error("Extraction failed, turn aborted")
			return nil, err
		}

		session.Fields = MergeFields(session.Fields, proposal.Fields)

		if EvaluateCompletion(session.Fields, proposal.IsComplete) {
			outcome.reply = s.Finalize(ctx, session.Identity, session.Fields)
			completedAt := s.now()
			session.Complete = true
			session.CompletedAt = &completedAt
			outcome.finalized = true
		} else {
			outcome.reply = proposal.NextQuestion
			if outcome.reply == "" {
				outcome.reply = s.config.FallbackQuestion
			}
		}
	}

	if err := s.appendTurn(&session, entity.TurnRoleAssistant, outcome.reply); err != nil {
		return nil, err
	}
	session.LastActivity = s.now()

	if err := repo.Sessions.Put(ctx, session); err != nil {
		logger.WithField("error", err.Error()).Error("Failed to store session")
		return nil, err
	}

	outcome.state = session.State()
	logger.WithFields(logrus.Fields{
		"state":     outcome.state,
		"finalized": outcome.finalized,
		"turns":     len(session.Turns),
	}).Info("Turn processed")

	return outcome, nil
}

func (s *leadService) extract(ctx context.Context, session entity.LeadSession) (*extraction.Proposal, error) {
	req := extraction.NewRequest(session.Fields, session.RecentTurns(s.config.HistoryWindow))

	extractCtx, cancel := context.WithTimeout(ctx, s.config.ExtractionTimeoutDuration())
	defer cancel()

	proposal, err := s.extractor.Extract(extractCtx, req)
	if err != nil {
		if errors.Is(err, extraction.ErrMalformedProposal) || errors.Is(err, extraction.ErrEmptyResponse) {
			return nil, response.Wrap(lead.ErrMalformedExtraction, err)
		}
		return nil, response.Wrap(lead.ErrExtractionFailed, err)
	}
	if proposal == nil {
		return nil, response.Wrap(lead.ErrMalformedExtraction, extraction.ErrEmptyResponse)
	}
	return proposal, nil
}

func (s *leadService) appendTurn(session *entity.LeadSession, role entity.TurnRole, text string) error {
	now := s.now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return fmt.Errorf("failed to generate turn id: %w", err)
	}
	session.Turns = append(session.Turns, entity.TurnRecord{
		ID:        id,
		Role:      role,
		Text:      text,
		CreatedAt: now,
	})
	return nil
}

func (s *leadService) deliver(ctx context.Context, identity, text string) lead.DeliveryResult {
	logger := s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"identity":   identity,
	})

	if s.messenger == nil {
		logger.Warn("No messenger configured, reply not delivered")
		return lead.DeliveryResult{Error: "messaging is not configured"}
	}

	deliverCtx, cancel := context.WithTimeout(ctx, s.config.DeliveryTimeoutDuration())
	defer cancel()

	if err := s.messenger.SendMessage(deliverCtx, identity, text); err != nil {
		logger.WithField("error", err.Error()).Warn("Failed to deliver reply")
		return lead.DeliveryResult{Attempted: true, Error: err.Error()}
	}

	return lead.DeliveryResult{Attempted: true, Delivered: true}
}
