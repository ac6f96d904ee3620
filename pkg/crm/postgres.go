package crm

import (
	"LeadReceptionist/internal/entity"
	"LeadReceptionist/pkg/utils"
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const queryCreateLead = `
	INSERT INTO leads (
		id, phone, full_name, vehicle, service_interest,
		preferred_timeframe, best_contact_method, notes, source, created_at
	) VALUES (
		:id, :phone, :full_name, :vehicle, :service_interest,
		:preferred_timeframe, :best_contact_method, :notes, :source, :created_at
	)`

type leadRow struct {
	Lead
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

type postgresCRM struct {
	db    *sqlx.DB
	log   *logrus.Logger
	utils utils.IUtils
}

// NewPostgres writes leads straight into a leads table.
func NewPostgres(db *sqlx.DB, log *logrus.Logger, u utils.IUtils) ICRM {
	return &postgresCRM{db: db, log: log, utils: u}
}

func (c *postgresCRM) CreateLead(ctx context.Context, identity string, fields entity.FieldSet) error {
	if c.db == nil {
		return ErrNotConfigured
	}

	now := time.Now()
	id, err := c.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return fmt.Errorf("failed to generate lead id: %w", err)
	}

	row := leadRow{Lead: NewLead(identity, fields), ID: id, CreatedAt: now}

	query, args, err := sqlx.Named(queryCreateLead, row)
	if err != nil {
		return fmt.Errorf("failed to build lead insert: %w", err)
	}
	query = c.db.Rebind(query)

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		c.log.WithFields(logrus.Fields{
			"lead_id": id,
			"error":   err.Error(),
		}).Error("Database error when creating lead")
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	return nil
}
