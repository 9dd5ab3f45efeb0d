package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// Unit unidad de trabajo con bitácora: fn escribe las entradas en la transacción y, si hay
// publicador, se difunden después del Commit.
type Unit struct {
	tx        ports.TxRunner
	publisher ports.AuditPublisher
	log       zerolog.Logger
}

// NewUnit construye la unidad sin publicador.
func NewUnit(tx ports.TxRunner) *Unit {
	return &Unit{tx: tx, log: zerolog.Nop()}
}

// WithPublisher difunde las entradas confirmadas; los fallos se registran en log.
func (u *Unit) WithPublisher(p ports.AuditPublisher, log zerolog.Logger) {
	u.publisher = p
	u.log = log
}

// Run ejecuta fn en una transacción. Un error descarta las entradas y no se difunde nada.
func (u *Unit) Run(ctx context.Context, fn func(repos ports.Repositories, trail *Trail) error) error {
	var entries []*entity.AuditLog
	err := u.tx.Run(ctx, func(repos ports.Repositories) error {
		trail := NewTrail(repos.Audit)
		if err := fn(repos, trail); err != nil {
			return err
		}
		entries = trail.Entries()
		return nil
	})
	if err != nil {
		return err
	}
	Publish(ctx, u.publisher, u.log, entries)
	return nil
}

// Publish difusión best effort: un fallo del broker no revierte ni falla la operación ya confirmada.
func Publish(ctx context.Context, p ports.AuditPublisher, log zerolog.Logger, entries []*entity.AuditLog) {
	if p == nil || len(entries) == 0 {
		return
	}
	if err := p.Publish(ctx, entries); err != nil {
		log.Warn().Err(err).Int("entries", len(entries)).Msg("no se pudo difundir la bitácora")
	}
}
