package appointment

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/therapy-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/notify"
)

type BatchOutcome string

const (
	BatchComplete BatchOutcome = "complete"
	BatchPartial  BatchOutcome = "partial"
	BatchFailed   BatchOutcome = "failed"
)

// BatchResult é o desfecho do envio: quantas citas foram salvas de quantas,
// e qual entrada interrompeu a sequência.
type BatchResult struct {
	Outcome     BatchOutcome  `json:"outcome"`
	Saved       int           `json:"saved"`
	Total       int           `json:"total"`
	FailedIndex int           `json:"failed_index"`
	FailedEntry *Entry        `json:"failed_entry,omitempty"`
	Created     []domain.View `json:"created"`
}

// ======================================================
// USE CASE
// ======================================================

type BatchBooking struct {
	mirror   *Mirror
	services ServiceLookup
	notifier notify.Notifier
	audit    audit.Sink
}

func NewBatchBooking(
	mirror *Mirror,
	services ServiceLookup,
	notifier notify.Notifier,
	sink audit.Sink,
) *BatchBooking {
	if sink == nil {
		sink = audit.Nop{}
	}
	return &BatchBooking{
		mirror:   mirror,
		services: services,
		notifier: notifier,
		audit:    sink,
	}
}

func (uc *BatchBooking) validate(d *Draft) error {
	if strings.TrimSpace(d.ClientID) == "" {
		return httperr.ErrBusiness("missing_client")
	}
	if strings.TrimSpace(d.ServiceID) == "" {
		return httperr.ErrBusiness("missing_service")
	}
	if len(d.Entries) == 0 {
		return httperr.ErrBusiness("empty_batch")
	}
	if len(d.Entries) > d.Quantity {
		return httperr.ErrBusiness("batch_over_quantity")
	}
	return nil
}

// ======================================================
// EXECUTE
// ======================================================

// Submit grava a fila em ordem, uma cita por vez. A primeira falha interrompe
// o resto; o que já foi gravado fica. As entradas salvas saem do rascunho
// para que um novo envio retome do ponto da falha.
func (uc *BatchBooking) Submit(ctx context.Context, d *Draft) (BatchResult, error) {
	if err := uc.validate(d); err != nil {
		uc.notifier.Error(httperr.CodeOf(err), "Complete el paciente, el servicio y al menos una fecha")
		return BatchResult{}, err
	}
	if err := CheckService(ctx, uc.services, uc.mirror.log, d.ClientID, d.ServiceID); err != nil {
		uc.notifier.Error(httperr.CodeOf(err), "El servicio no pertenece al paciente")
		return BatchResult{}, err
	}

	res := BatchResult{Total: len(d.Entries), FailedIndex: -1}

	for i, e := range d.Entries {
		if !uc.insert(ctx, d.ServiceID, e, &res) {
			entry := e
			res.FailedIndex = i
			res.FailedEntry = &entry
			break
		}
		res.Saved++
	}

	d.Entries = d.Entries[res.Saved:]

	switch {
	case res.Saved == res.Total:
		res.Outcome = BatchComplete
		uc.notifier.Success(fmt.Sprintf("Se agendaron %d citas", res.Saved))
	case res.Saved > 0:
		res.Outcome = BatchPartial
		uc.notifier.Error("batch_partial", fmt.Sprintf(
			"Se guardaron %d de %d citas; falló la cita del %s",
			res.Saved, res.Total, res.FailedEntry.Date,
		))
	default:
		res.Outcome = BatchFailed
		uc.notifier.Error("batch_failed", fmt.Sprintf(
			"No se pudo guardar la cita del %s", res.FailedEntry.Date,
		))
	}

	uc.mirror.Refetch(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   "batch_submitted",
		Entity:   "cliente",
		EntityID: d.ClientID,
		Metadata: map[string]any{"outcome": res.Outcome, "saved": res.Saved, "total": res.Total},
	})

	return res, nil
}

func (uc *BatchBooking) insert(ctx context.Context, serviceID string, e Entry, res *BatchResult) bool {
	clock, err := e.Clock()
	if err != nil {
		uc.mirror.log.Error("batch entry rejected",
			zap.String("fecha", e.Date),
			zap.String("hora", e.Hour+":"+e.Minute),
			zap.Error(err),
		)
		return false
	}
	ap, err := domain.NewScheduled(serviceID, e.Date, clock)
	if err != nil {
		uc.mirror.log.Error("batch entry rejected",
			zap.String("clientes_servicio_id", serviceID),
			zap.String("fecha", e.Date),
			zap.String("hora", clock),
			zap.Error(err),
		)
		return false
	}

	v, ok := uc.mirror.Add(ctx, ap)
	if ok {
		res.Created = append(res.Created, v)
	}
	return ok
}
