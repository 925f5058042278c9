// Package testutil traz um store em memória com injeção de falhas para os
// testes dos fluxos de agenda.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/client"
	"github.com/BruksfildServices01/therapy-scheduler/internal/domain/notice"
	"github.com/BruksfildServices01/therapy-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/therapy-scheduler/internal/models"
)

// ErrInjected é o erro padrão das falhas injetadas.
var ErrInjected = errors.New("injected store failure")

// Nomes de operação aceitos por FailOn / FailAfter / Calls.
const (
	OpAppointmentsList     = "appointments.list"
	OpAppointmentsCreate   = "appointments.create"
	OpAppointmentsUpdate   = "appointments.update"
	OpAppointmentsDelete   = "appointments.delete"
	OpAppointmentsDeleteBy = "appointments.delete_by_services"
	OpAppointmentsHas      = "appointments.has_for_service"
	OpClientsList          = "clients.list"
	OpClientsExists        = "clients.exists"
	OpClientsCreate        = "clients.create"
	OpClientsUpdate        = "clients.update"
	OpClientsDelete        = "clients.delete"
	OpServicesList         = "services.list"
	OpServicesCreate       = "services.create"
	OpServicesDelete       = "services.delete"
	OpServicesDeleteBy     = "services.delete_by_client"
	OpNoticesPurge         = "notices.purge"
	OpNoticesList          = "notices.list"
	OpNoticesCreate        = "notices.create"
	OpNoticesDelete        = "notices.delete"
)

type snapshot struct {
	clients      map[string]models.Client
	services     map[uuid.UUID]models.ClientService
	appointments map[uuid.UUID]models.Appointment
	notices      map[uint]models.Notice
}

type MemStore struct {
	mu sync.Mutex

	snapshot
	nextNotice uint
	tick       time.Time

	fail      map[string]error
	failAfter map[string]int
	calls     map[string]int
}

func NewMemStore() *MemStore {
	return &MemStore{
		snapshot: snapshot{
			clients:      map[string]models.Client{},
			services:     map[uuid.UUID]models.ClientService{},
			appointments: map[uuid.UUID]models.Appointment{},
			notices:      map[uint]models.Notice{},
		},
		tick:      time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		fail:      map[string]error{},
		failAfter: map[string]int{},
		calls:     map[string]int{},
	}
}

// --------------------------------------------------
// Falhas
// --------------------------------------------------

// FailOn faz toda chamada de op falhar com err (ErrInjected se nil).
func (s *MemStore) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		err = ErrInjected
	}
	s.fail[op] = err
}

// FailAfter deixa n chamadas de op passarem e falha as seguintes.
func (s *MemStore) FailAfter(op string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAfter[op] = s.calls[op] + n
}

func (s *MemStore) Recover(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fail, op)
	delete(s.failAfter, op)
}

// Calls conta quantas vezes op foi chamada (falhas incluídas).
func (s *MemStore) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// enter registra a chamada; precisa de s.mu travado.
func (s *MemStore) enter(op string) error {
	s.calls[op]++
	if err, ok := s.fail[op]; ok {
		return err
	}
	if limit, ok := s.failAfter[op]; ok && s.calls[op] > limit {
		return ErrInjected
	}
	return nil
}

func (s *MemStore) now() time.Time {
	s.tick = s.tick.Add(time.Second)
	return s.tick
}

// --------------------------------------------------
// Transação
// --------------------------------------------------

// WithinTransaction restaura o estado anterior se fn falhar.
func (s *MemStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	saved := s.copyState()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.snapshot = saved
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *MemStore) copyState() snapshot {
	cp := snapshot{
		clients:      make(map[string]models.Client, len(s.clients)),
		services:     make(map[uuid.UUID]models.ClientService, len(s.services)),
		appointments: make(map[uuid.UUID]models.Appointment, len(s.appointments)),
		notices:      make(map[uint]models.Notice, len(s.notices)),
	}
	for k, v := range s.clients {
		cp.clients[k] = v
	}
	for k, v := range s.services {
		cp.services[k] = v
	}
	for k, v := range s.appointments {
		cp.appointments[k] = v
	}
	for k, v := range s.notices {
		cp.notices[k] = v
	}
	return cp
}

// --------------------------------------------------
// Contagens diretas (asserções)
// --------------------------------------------------

func (s *MemStore) CountAppointments() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

func (s *MemStore) CountServices(clientID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, cs := range s.services {
		if cs.ClientID == clientID {
			n++
		}
	}
	return n
}

func (s *MemStore) HasClient(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.clients[id]
	return ok
}

// SeedNotice grava um aviso sem validação (para avisos já vencidos).
func (s *MemStore) SeedNotice(n models.Notice) models.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextNotice++
	n.ID = s.nextNotice
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	s.notices[n.ID] = n
	return n
}

// SeedAppointment grava uma cita crua, inclusive com serviço inexistente.
func (s *MemStore) SeedAppointment(ap models.Appointment) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	s.appointments[ap.ID] = ap
	return ap
}

// --------------------------------------------------
// Facetas
// --------------------------------------------------

func (s *MemStore) Appointments() appointment.Repository { return memAppointments{s} }
func (s *MemStore) Clients() client.Repository           { return memClients{s} }
func (s *MemStore) Services() client.ServiceRepository   { return memServices{s} }
func (s *MemStore) Notices() notice.Repository           { return memNotices{s} }

// ======================================================
// Appointments
// ======================================================

type memAppointments struct{ s *MemStore }

// joined devolve a cita com serviço e paciente resolvidos; precisa de s.mu.
func (s *MemStore) joined(ap models.Appointment) models.Appointment {
	if cs, ok := s.services[ap.ClientServiceID]; ok {
		if c, ok := s.clients[cs.ClientID]; ok {
			cc := c
			cs.Client = &cc
		}
		ap.ClientService = &cs
	}
	return ap
}

func sortAppointments(list []models.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		di := appointment.FormatStoreDate(list[i].Date)
		dj := appointment.FormatStoreDate(list[j].Date)
		if di != dj {
			return di < dj
		}
		return list[i].Time < list[j].Time
	})
}

func (r memAppointments) ListByRange(ctx context.Context, startDate, endDate string) ([]models.Appointment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpAppointmentsList); err != nil {
		return nil, err
	}

	var out []models.Appointment
	for _, ap := range s.appointments {
		d := appointment.FormatStoreDate(ap.Date)
		if d >= startDate && d <= endDate {
			out = append(out, s.joined(ap))
		}
	}
	sortAppointments(out)
	return out, nil
}

func (r memAppointments) ListByClient(ctx context.Context, clientID string) ([]models.Appointment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpAppointmentsList); err != nil {
		return nil, err
	}

	var out []models.Appointment
	for _, ap := range s.appointments {
		if cs, ok := s.services[ap.ClientServiceID]; ok && cs.ClientID == clientID {
			out = append(out, s.joined(ap))
		}
	}
	sortAppointments(out)
	return out, nil
}

func (r memAppointments) HasForService(ctx context.Context, serviceID uuid.UUID) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpAppointmentsHas); err != nil {
		return false, err
	}

	for _, ap := range s.appointments {
		if ap.ClientServiceID == serviceID {
			return true, nil
		}
	}
	return false, nil
}

func (r memAppointments) Create(ctx context.Context, ap *models.Appointment) (*models.Appointment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpAppointmentsCreate); err != nil {
		return nil, err
	}
	if _, ok := s.services[ap.ClientServiceID]; !ok {
		return nil, errors.New("violates foreign key clientes_servicio_id")
	}

	row := *ap
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.ClientService = nil
	row.CreatedAt = s.now()
	row.UpdatedAt = row.CreatedAt
	s.appointments[row.ID] = row

	out := s.joined(row)
	return &out, nil
}

func (r memAppointments) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Appointment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpAppointmentsUpdate); err != nil {
		return nil, err
	}

	row, ok := s.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := applyAppointmentFields(&row, fields); err != nil {
		return nil, err
	}
	row.UpdatedAt = s.now()
	s.appointments[id] = row

	out := s.joined(row)
	return &out, nil
}

func (r memAppointments) Delete(ctx context.Context, id uuid.UUID) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpAppointmentsDelete); err != nil {
		return err
	}

	if _, ok := s.appointments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.appointments, id)
	return nil
}

func (r memAppointments) DeleteByServices(ctx context.Context, serviceIDs []uuid.UUID) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpAppointmentsDeleteBy); err != nil {
		return 0, err
	}

	set := make(map[uuid.UUID]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		set[id] = true
	}

	var n int64
	for id, ap := range s.appointments {
		if set[ap.ClientServiceID] {
			delete(s.appointments, id)
			n++
		}
	}
	return n, nil
}

// ======================================================
// Clients
// ======================================================

type memClients struct{ s *MemStore }

func (r memClients) List(ctx context.Context) ([]models.Client, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpClientsList); err != nil {
		return nil, err
	}

	out := make([]models.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r memClients) Get(ctx context.Context, id string) (*models.Client, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r memClients) Exists(ctx context.Context, id string) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpClientsExists); err != nil {
		return false, err
	}

	_, ok := s.clients[id]
	return ok, nil
}

func (r memClients) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpClientsCreate); err != nil {
		return nil, err
	}
	if _, ok := s.clients[c.ID]; ok {
		return nil, errors.New("duplicate key clientes_pkey")
	}

	row := *c
	row.CreatedAt = s.now()
	row.UpdatedAt = row.CreatedAt
	s.clients[row.ID] = row
	return &row, nil
}

func (r memClients) Update(ctx context.Context, id string, fields map[string]any) (*models.Client, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpClientsUpdate); err != nil {
		return nil, err
	}

	row, ok := s.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for k, v := range fields {
		str, _ := v.(string)
		switch k {
		case "nombre":
			row.Name = str
		case "telefono":
			row.Phone = str
		case "motivo":
			row.Reason = str
		}
	}
	row.UpdatedAt = s.now()
	s.clients[id] = row
	return &row, nil
}

func (r memClients) Delete(ctx context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpClientsDelete); err != nil {
		return err
	}

	if _, ok := s.clients[id]; !ok {
		return repository.ErrNotFound
	}
	for _, cs := range s.services {
		if cs.ClientID == id {
			return errors.New("violates foreign key cliente_id")
		}
	}
	delete(s.clients, id)
	return nil
}

// ======================================================
// Client services
// ======================================================

type memServices struct{ s *MemStore }

func (s *MemStore) servicesWhere(keep func(models.ClientService) bool) []models.ClientService {
	out := []models.ClientService{}
	for _, cs := range s.services {
		if keep(cs) {
			if c, ok := s.clients[cs.ClientID]; ok {
				cc := c
				cs.Client = &cc
			}
			out = append(out, cs)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AssignedAt.After(out[j].AssignedAt)
	})
	return out
}

func (r memServices) ListByClient(ctx context.Context, clientID string) ([]models.ClientService, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpServicesList); err != nil {
		return nil, err
	}
	return s.servicesWhere(func(cs models.ClientService) bool { return cs.ClientID == clientID }), nil
}

func (r memServices) ListAll(ctx context.Context) ([]models.ClientService, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpServicesList); err != nil {
		return nil, err
	}
	return s.servicesWhere(func(models.ClientService) bool { return true }), nil
}

func (r memServices) Get(ctx context.Context, id uuid.UUID) (*models.ClientService, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	cs, ok := s.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &cs, nil
}

func (r memServices) IDsByClient(ctx context.Context, clientID string) ([]uuid.UUID, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpServicesList); err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	for id, cs := range s.services {
		if cs.ClientID == clientID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r memServices) Create(ctx context.Context, cs *models.ClientService) (*models.ClientService, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpServicesCreate); err != nil {
		return nil, err
	}
	if _, ok := s.clients[cs.ClientID]; !ok {
		return nil, errors.New("violates foreign key cliente_id")
	}

	row := *cs
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.Client = nil
	row.AssignedAt = s.now()
	s.services[row.ID] = row
	return &row, nil
}

func (r memServices) Delete(ctx context.Context, id uuid.UUID) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpServicesDelete); err != nil {
		return err
	}

	if _, ok := s.services[id]; !ok {
		return repository.ErrNotFound
	}
	for _, ap := range s.appointments {
		if ap.ClientServiceID == id {
			return errors.New("violates foreign key clientes_servicio_id")
		}
	}
	delete(s.services, id)
	return nil
}

func (r memServices) DeleteByClient(ctx context.Context, clientID string) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpServicesDeleteBy); err != nil {
		return 0, err
	}

	var n int64
	for id, cs := range s.services {
		if cs.ClientID != clientID {
			continue
		}
		for _, ap := range s.appointments {
			if ap.ClientServiceID == id {
				return n, errors.New("violates foreign key clientes_servicio_id")
			}
		}
		delete(s.services, id)
		n++
	}
	return n, nil
}

// ======================================================
// Notices
// ======================================================

type memNotices struct{ s *MemStore }

func (r memNotices) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpNoticesPurge); err != nil {
		return 0, err
	}

	var n int64
	for id, nt := range s.notices {
		if nt.ExpiresAt.Before(now) {
			delete(s.notices, id)
			n++
		}
	}
	return n, nil
}

func (r memNotices) List(ctx context.Context) ([]models.Notice, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpNoticesList); err != nil {
		return nil, err
	}

	out := make([]models.Notice, 0, len(s.notices))
	for _, n := range s.notices {
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r memNotices) Create(ctx context.Context, n *models.Notice) (*models.Notice, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpNoticesCreate); err != nil {
		return nil, err
	}

	s.nextNotice++
	row := *n
	row.ID = s.nextNotice
	row.CreatedAt = s.now()
	s.notices[row.ID] = row
	return &row, nil
}

func (r memNotices) Delete(ctx context.Context, id uint) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(OpNoticesDelete); err != nil {
		return err
	}

	if _, ok := s.notices[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.notices, id)
	return nil
}
