package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/therapy-scheduler/internal/audit"
)

type CascadeOutcome string

const (
	CascadeDone    CascadeOutcome = "done"
	CascadePartial CascadeOutcome = "partial"
	CascadeFailed  CascadeOutcome = "failed"
)

// Passos da exclusão em cascata, na ordem em que rodam.
const (
	StepLookupServices     = "lookup_services"
	StepDeleteAppointments = "delete_appointments"
	StepDeleteServices     = "delete_services"
	StepDeleteClient       = "delete_client"
)

// CascadeReport distingue exclusão completa de exclusão interrompida no meio.
type CascadeReport struct {
	Outcome             CascadeOutcome `json:"outcome"`
	FailedStep          string         `json:"failed_step,omitempty"`
	AppointmentsDeleted int64          `json:"appointments_deleted"`
	ServicesDeleted     int64          `json:"services_deleted"`
}

func (r CascadeReport) OK() bool {
	return r.Outcome == CascadeDone
}

// Delete remove citas -> serviços -> paciente. Com Transactor tudo roda numa
// transação e o desfecho nunca é parcial.
func (d *Directory) Delete(ctx context.Context, id string) CascadeReport {
	var rep CascadeReport

	run := func(ctx context.Context) error {
		rep = CascadeReport{}

		ids, err := d.deps.Services.IDsByClient(ctx, id)
		if err != nil {
			rep.FailedStep = StepLookupServices
			return err
		}

		n, err := d.deps.Appointments.DeleteByServices(ctx, ids)
		if err != nil {
			rep.FailedStep = StepDeleteAppointments
			return err
		}
		rep.AppointmentsDeleted = n

		n, err = d.deps.Services.DeleteByClient(ctx, id)
		if err != nil {
			rep.FailedStep = StepDeleteServices
			return err
		}
		rep.ServicesDeleted = n

		if err := d.deps.Clients.Delete(ctx, id); err != nil {
			rep.FailedStep = StepDeleteClient
			return err
		}
		return nil
	}

	var err error
	if d.deps.Tx != nil {
		err = d.deps.Tx.WithinTransaction(ctx, run)
		if err != nil {
			step := rep.FailedStep
			rep = CascadeReport{FailedStep: step}
		}
	} else {
		err = run(ctx)
	}

	switch {
	case err == nil:
		rep.Outcome = CascadeDone
	case rep.AppointmentsDeleted > 0 || rep.ServicesDeleted > 0:
		rep.Outcome = CascadePartial
	default:
		rep.Outcome = CascadeFailed
	}

	if err != nil {
		d.deps.Log.Error("client cascade delete failed",
			zap.String("id", id),
			zap.String("step", rep.FailedStep),
			zap.String("outcome", string(rep.Outcome)),
			zap.Error(err),
		)
		if rep.Outcome == CascadePartial {
			d.deps.Notifier.Error("cascade_partial", fmt.Sprintf(
				"Eliminación incompleta del paciente %s (paso %s): %d citas y %d servicios ya eliminados",
				id, rep.FailedStep, rep.AppointmentsDeleted, rep.ServicesDeleted,
			))
		} else {
			d.deps.Notifier.Error("cascade_failed", fmt.Sprintf("No se pudo eliminar el paciente %s", id))
		}
		return rep
	}

	d.mu.Lock()
	for i := range d.items {
		if d.items[i].ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			break
		}
	}
	d.mu.Unlock()

	d.deps.Notifier.Success(fmt.Sprintf(
		"Paciente %s eliminado con %d servicios y %d citas",
		id, rep.ServicesDeleted, rep.AppointmentsDeleted,
	))
	d.deps.Audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   "client_deleted",
		Entity:   "cliente",
		EntityID: id,
		Metadata: rep,
	})
	return rep
}
