package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/decodahealth/patient-record/appointments"
	"github.com/decodahealth/patient-record/billing"
	"github.com/decodahealth/patient-record/memos"
	"github.com/decodahealth/patient-record/record"
	"github.com/decodahealth/patient-record/view"
)

//go:generate mockgen --build_flags=--mod=mod -source=./session.go -destination=./test/mock_session.go -package test

// Loader fetches the persisted aggregate for a patient.
type Loader interface {
	Get(ctx context.Context, patientId string) (record.PatientRecord, error)
}

// Sink persists a new aggregate produced by a command. The core itself never
// performs I/O; everything flows through here.
type Sink interface {
	Upsert(ctx context.Context, rec record.PatientRecord) error
}

// Snapshot is what callers get back after every operation: the aggregate, the
// derived view state and the alerts still active under the session overlay.
type Snapshot struct {
	Record       record.PatientRecord `json:"record"`
	View         view.State           `json:"view"`
	ActiveAlerts []record.Alert       `json:"activeAlerts"`
}

type Manager interface {
	Load(ctx context.Context, patientId string) (Snapshot, error)
	Refresh(ctx context.Context, patientId string) (Snapshot, error)

	SchedulePayment(ctx context.Context, patientId string, input billing.SchedulePaymentInput) (Snapshot, error)
	ChargeNow(ctx context.Context, patientId string, input billing.ChargeNowInput) (Snapshot, error)
	RescheduleAppointment(ctx context.Context, patientId string, eventId string, newStart time.Time) (Snapshot, error)
	CancelAppointment(ctx context.Context, patientId string, eventId string, reason string) (Snapshot, error)
	AddMemo(ctx context.Context, patientId string, note string) (Snapshot, error)

	DismissAlert(ctx context.Context, patientId string, alertId string) (Snapshot, error)
	ToggleSection(ctx context.Context, patientId string, section view.Section) (Snapshot, error)
	MarkSummaryViewed(ctx context.Context, patientId string) (Snapshot, error)
}

// manager serializes all operations per patient behind a session lock. The
// aggregate held by a session is only ever replaced wholesale, so snapshots
// handed out earlier stay valid.
type manager struct {
	loader Loader
	sink   Sink
	actor  record.PersonRef
	logger *zap.SugaredLogger
	clock  func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu      sync.Mutex
	loaded  bool
	rec     record.PatientRecord
	overlay view.Overlay
}

var _ Manager = &manager{}

func NewManager(loader Loader, sink Sink, actor record.PersonRef, logger *zap.SugaredLogger) (Manager, error) {
	return &manager{
		loader:   loader,
		sink:     sink,
		actor:    actor,
		logger:   logger,
		clock:    time.Now,
		sessions: map[string]*session{},
	}, nil
}

func (m *manager) session(patientId string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[patientId]
	if !ok {
		s = &session{overlay: view.NewOverlay()}
		m.sessions[patientId] = s
	}
	return s
}

// ensureLoaded fetches the aggregate on first use and immediately runs the
// scheduled payment processor over it, persisting the normalized record when
// any payment settled. Must be called with the session lock held.
func (m *manager) ensureLoaded(ctx context.Context, s *session, patientId string, now time.Time) error {
	if s.loaded {
		return nil
	}

	rec, err := m.loader.Get(ctx, patientId)
	if err != nil {
		return err
	}

	processed, changed := billing.ProcessScheduledPayments(rec, now)
	if changed {
		m.logger.Infow("settled scheduled payments on load", "patientId", patientId)
		if err := m.sink.Upsert(ctx, processed); err != nil {
			return err
		}
	}

	s.rec = processed
	s.loaded = true
	return nil
}

func (m *manager) snapshot(s *session, now time.Time) Snapshot {
	return Snapshot{
		Record:       s.rec,
		View:         view.Calculate(s.rec, s.overlay, now),
		ActiveAlerts: view.ActiveAlerts(s.rec, s.overlay),
	}
}

func (m *manager) Load(ctx context.Context, patientId string) (Snapshot, error) {
	now := m.clock()
	s := m.session(patientId)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := m.ensureLoaded(ctx, s, patientId, now); err != nil {
		return Snapshot{}, err
	}
	return m.snapshot(s, now), nil
}

// Refresh re-runs the processor over the current aggregate. Unlike Load it
// always processes, so charges that became due since load get settled.
func (m *manager) Refresh(ctx context.Context, patientId string) (Snapshot, error) {
	now := m.clock()
	s := m.session(patientId)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := m.ensureLoaded(ctx, s, patientId, now); err != nil {
		return Snapshot{}, err
	}

	processed, changed := billing.ProcessScheduledPayments(s.rec, now)
	if changed {
		m.logger.Infow("settled scheduled payments on refresh", "patientId", patientId)
		if err := m.sink.Upsert(ctx, processed); err != nil {
			return Snapshot{}, err
		}
		s.rec = processed
	}
	return m.snapshot(s, now), nil
}

// apply runs a command handler against the current aggregate, persists the
// result and replaces the session's record. On rejection the session is left
// untouched.
func (m *manager) apply(ctx context.Context, patientId string, command func(rec record.PatientRecord, now time.Time) (record.PatientRecord, error)) (Snapshot, error) {
	now := m.clock()
	s := m.session(patientId)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := m.ensureLoaded(ctx, s, patientId, now); err != nil {
		return Snapshot{}, err
	}

	updated, err := command(s.rec, now)
	if err != nil {
		return Snapshot{}, err
	}
	if err := m.sink.Upsert(ctx, updated); err != nil {
		return Snapshot{}, err
	}

	s.rec = updated
	return m.snapshot(s, now), nil
}

func (m *manager) SchedulePayment(ctx context.Context, patientId string, input billing.SchedulePaymentInput) (Snapshot, error) {
	input.Actor = m.actor
	return m.apply(ctx, patientId, func(rec record.PatientRecord, now time.Time) (record.PatientRecord, error) {
		return billing.SchedulePayment(rec, input, now)
	})
}

func (m *manager) ChargeNow(ctx context.Context, patientId string, input billing.ChargeNowInput) (Snapshot, error) {
	return m.apply(ctx, patientId, func(rec record.PatientRecord, now time.Time) (record.PatientRecord, error) {
		return billing.ChargeNow(rec, input, now)
	})
}

func (m *manager) RescheduleAppointment(ctx context.Context, patientId string, eventId string, newStart time.Time) (Snapshot, error) {
	return m.apply(ctx, patientId, func(rec record.PatientRecord, now time.Time) (record.PatientRecord, error) {
		return appointments.Reschedule(rec, eventId, newStart, m.actor, now)
	})
}

func (m *manager) CancelAppointment(ctx context.Context, patientId string, eventId string, reason string) (Snapshot, error) {
	return m.apply(ctx, patientId, func(rec record.PatientRecord, now time.Time) (record.PatientRecord, error) {
		return appointments.Cancel(rec, eventId, reason, m.actor, now)
	})
}

func (m *manager) AddMemo(ctx context.Context, patientId string, note string) (Snapshot, error) {
	return m.apply(ctx, patientId, func(rec record.PatientRecord, now time.Time) (record.PatientRecord, error) {
		return memos.Add(rec, note, m.actor, now)
	})
}

// Overlay operations change session state only. The aggregate and the sink
// are never touched.
func (m *manager) DismissAlert(ctx context.Context, patientId string, alertId string) (Snapshot, error) {
	now := m.clock()
	s := m.session(patientId)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := m.ensureLoaded(ctx, s, patientId, now); err != nil {
		return Snapshot{}, err
	}
	s.overlay = s.overlay.Dismiss(alertId)
	return m.snapshot(s, now), nil
}

func (m *manager) ToggleSection(ctx context.Context, patientId string, section view.Section) (Snapshot, error) {
	now := m.clock()
	s := m.session(patientId)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := m.ensureLoaded(ctx, s, patientId, now); err != nil {
		return Snapshot{}, err
	}
	current := view.Calculate(s.rec, s.overlay, now)[section]
	s.overlay = s.overlay.Toggle(section, current.Expanded)
	return m.snapshot(s, now), nil
}

func (m *manager) MarkSummaryViewed(ctx context.Context, patientId string) (Snapshot, error) {
	now := m.clock()
	s := m.session(patientId)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := m.ensureLoaded(ctx, s, patientId, now); err != nil {
		return Snapshot{}, err
	}
	s.overlay = s.overlay.MarkSummaryViewed()
	return m.snapshot(s, now), nil
}
