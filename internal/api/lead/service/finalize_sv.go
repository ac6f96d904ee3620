package leadService

import (
	"LeadReceptionist/internal/entity"
	contextPkg "LeadReceptionist/pkg/context"
	"LeadReceptionist/pkg/crm"
	"LeadReceptionist/pkg/pubsub"
	"LeadReceptionist/pkg/redis"
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

const maxFailureReason = 200

// Finalize submits the lead and always returns the closing reply. A CRM
// failure is written into the notes slot of fields, which is modified in place.
// A nil fields is submitted as the default set.
func (s *leadService) Finalize(ctx context.Context, identity string, fields entity.FieldSet) string {
	if fields == nil {
		fields = entity.NewFieldSet()
	}

	logger := s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"identity":   identity,
	})

	crmCtx, cancel := context.WithTimeout(ctx, s.config.CRMTimeoutDuration())
	defer cancel()

	var err error
	if s.crm == nil {
		err = crm.ErrNotConfigured
	} else {
		err = s.crm.CreateLead(crmCtx, identity, fields.Clone())
	}

	status, reason := pubsub.CRMStatusSubmitted, ""
	if err != nil {
		status, reason = pubsub.CRMStatusFailed, failureReason(err)
		AppendNote(fields, "[CRM sync failed: "+reason+"]")

		logger.WithField("error", err.Error()).Warn("CRM submission failed, lead kept locally")
		s.pushRecovery(ctx, identity, fields, reason)
	} else {
		logger.Info("Lead submitted to CRM")
	}

	s.publishFinalized(ctx, identity, fields, status, reason)

	return s.config.ClosingMessage
}

func failureReason(err error) string {
	reason := strings.TrimSpace(err.Error())
	if i := strings.IndexByte(reason, '\n'); i >= 0 {
		reason = reason[:i]
	}
	if r := []rune(reason); len(r) > maxFailureReason {
		reason = string(r[:maxFailureReason])
	}
	if reason == "" {
		reason = "unknown error"
	}
	return reason
}

func (s *leadService) pushRecovery(ctx context.Context, identity string, fields entity.FieldSet, reason string) {
	if s.recovery == nil {
		return
	}

	pushCtx, cancel := context.WithTimeout(ctx, s.config.CRMTimeoutDuration())
	defer cancel()

	err := s.recovery.PushRecovery(pushCtx, redis.RecoveryRecord{
		Identity: identity,
		Fields:   fields.Strings(),
		Reason:   reason,
		FailedAt: s.now().UTC(),
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"identity":   identity,
			"error":      err.Error(),
		}).Error("Failed to queue lead for recovery")
	}
}

func (s *leadService) publishFinalized(ctx context.Context, identity string, fields entity.FieldSet, status, reason string) {
	if s.publisher == nil {
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, s.config.CRMTimeoutDuration())
	defer cancel()

	envelope := pubsub.NewEnvelope(pubsub.LeadFinalizedKey, contextPkg.GetRequestID(ctx), pubsub.LeadFinalizedData{
		Identity:  identity,
		Fields:    fields.Strings(),
		CRMStatus: status,
		CRMError:  reason,
	})
	if err := s.publisher.Publish(publishCtx, pubsub.LeadFinalizedKey, envelope); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"identity":   identity,
			"error":      err.Error(),
		}).Warn("Failed to publish lead event")
	}
}
