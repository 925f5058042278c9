package appointment

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/therapy-scheduler/internal/httperr"
	"github.com/BruksfildServices01/therapy-scheduler/internal/notify"
)

// BookingForm é o formulário de nova cita aberto a partir de uma célula.
type BookingForm struct {
	ClientID  string `json:"cliente_id"`
	Date      string `json:"fecha"`
	Time      string `json:"hora"`
	ServiceID string `json:"clientes_servicio_id"`
}

type SingleBooking struct {
	mirror   *Mirror
	services ServiceLookup
	notifier notify.Notifier
	form     BookingForm
}

func NewSingleBooking(mirror *Mirror, services ServiceLookup, notifier notify.Notifier) *SingleBooking {
	return &SingleBooking{
		mirror:   mirror,
		services: services,
		notifier: notifier,
	}
}

// Open vincula o formulário à data e hora da célula clicada.
func (uc *SingleBooking) Open(date, hour string) {
	uc.form = BookingForm{Date: date, Time: hour + ":00"}
}

func (uc *SingleBooking) Form() BookingForm {
	return uc.form
}

func (uc *SingleBooking) Fill(f BookingForm) {
	uc.form = f
}

func (uc *SingleBooking) SetClient(clientID string) {
	uc.form.ClientID = clientID
	uc.form.ServiceID = ""
}

func (uc *SingleBooking) SetService(serviceID string) {
	uc.form.ServiceID = serviceID
}

// SetTime troca o horário usando os conjuntos fixos de hora e minuto.
func (uc *SingleBooking) SetTime(hour, minute string) error {
	clock, err := domain.ManualTime(hour, minute)
	if err != nil {
		return err
	}
	uc.form.Time = clock
	return nil
}

func (uc *SingleBooking) precheck() error {
	switch {
	case strings.TrimSpace(uc.form.ClientID) == "":
		return httperr.ErrBusiness("missing_client")
	case strings.TrimSpace(uc.form.Date) == "":
		return httperr.ErrBusiness("missing_date")
	case strings.TrimSpace(uc.form.Time) == "":
		return httperr.ErrBusiness("missing_time")
	case strings.TrimSpace(uc.form.ServiceID) == "":
		return httperr.ErrBusiness("missing_service")
	}
	return nil
}

// Submit grava a cita como programada. Em sucesso limpa o formulário e
// recarrega a janela; em falha mantém o formulário para nova tentativa.
func (uc *SingleBooking) Submit(ctx context.Context) (domain.View, error) {
	if err := uc.precheck(); err != nil {
		uc.notifier.Error(httperr.CodeOf(err), "Complete todos los campos de la cita")
		return domain.View{}, err
	}

	if _, err := domain.ParseSlotDate(uc.form.Date); err != nil {
		uc.notifier.Error(httperr.CodeOf(err), "La fecha debe ser un día hábil válido")
		return domain.View{}, err
	}
	clock, err := domain.SlotTime(uc.form.Time)
	if err != nil {
		uc.notifier.Error(httperr.CodeOf(err), "La hora está fuera del horario de atención")
		return domain.View{}, err
	}

	if err := CheckService(ctx, uc.services, uc.mirror.log, uc.form.ClientID, uc.form.ServiceID); err != nil {
		uc.notifier.Error(httperr.CodeOf(err), "El servicio no pertenece al paciente")
		return domain.View{}, err
	}

	ap, err := domain.NewScheduled(uc.form.ServiceID, uc.form.Date, clock)
	if err != nil {
		uc.notifier.Error(httperr.CodeOf(err), "Fecha, hora o servicio inválidos")
		return domain.View{}, err
	}

	v, ok := uc.mirror.Add(ctx, ap)
	if !ok {
		uc.notifier.Error("appointment_not_saved", "No se pudo agendar la cita")
		return domain.View{}, httperr.ErrBusiness("appointment_not_saved")
	}

	uc.form = BookingForm{}
	uc.mirror.Refetch(ctx)

	uc.notifier.Success(fmt.Sprintf(
		"Cita agendada para %s el %s a las %s",
		v.ClientName, v.Date, domain.Format12h(v.Time),
	))
	return v, nil
}
