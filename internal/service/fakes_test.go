package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"smart_plant/internal/models"
	"smart_plant/internal/repository"
)

// clock is a settable time source.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *clock { return &clock{t: t} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *clock) Advance(d time.Duration) { c.Set(c.Now().Add(d)) }

type memReadings struct {
	mu     sync.Mutex
	rows   []models.Reading
	nextID int64
	err    error
}

func (m *memReadings) Append(_ context.Context, r models.Reading) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.nextID++
	r.ID = m.nextID
	m.rows = append(m.rows, r)
	return r.ID, nil
}

func (m *memReadings) Count(_ context.Context, plantID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.rows {
		if r.PlantID == plantID {
			n++
		}
	}
	return n, m.err
}

func (m *memReadings) Latest(_ context.Context, plantID string) (*models.Reading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var best *models.Reading
	for i := range m.rows {
		r := m.rows[i]
		if r.PlantID != plantID {
			continue
		}
		if best == nil || !r.RecordedAt.Before(best.RecordedAt) {
			best = &r
		}
	}
	return best, nil
}

func (m *memReadings) Between(_ context.Context, plantID string, from, to time.Time) ([]models.Reading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Reading
	for _, r := range m.rows {
		if r.PlantID == plantID && !r.RecordedAt.Before(from) && r.RecordedAt.Before(to) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RecordedAt.Before(out[j].RecordedAt) })
	return out, m.err
}

func (m *memReadings) DeleteAll(_ context.Context, plantID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.rows[:0]
	var n int64
	for _, r := range m.rows {
		if r.PlantID == plantID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	return n, m.err
}

type memOverrides struct {
	mu     sync.Mutex
	rows   []models.OverrideRequest
	nextID int64
	cutoff time.Time
}

func (m *memOverrides) Append(_ context.Context, o models.OverrideRequest) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	o.ID = m.nextID
	m.rows = append(m.rows, o)
	return o.ID, nil
}

func (m *memOverrides) Latest(_ context.Context, plantID string) (*models.OverrideRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *models.OverrideRequest
	for i := range m.rows {
		o := m.rows[i]
		if o.PlantID == plantID && (best == nil || !o.RequestedAt.Before(best.RequestedAt)) {
			best = &o
		}
	}
	return best, nil
}

func (m *memOverrides) DeleteAll(_ context.Context, plantID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.rows[:0]
	var n int64
	for _, o := range m.rows {
		if o.PlantID == plantID {
			n++
			continue
		}
		kept = append(kept, o)
	}
	m.rows = kept
	return n, nil
}

func (m *memOverrides) Count(_ context.Context, plantID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, o := range m.rows {
		if o.PlantID == plantID {
			n++
		}
	}
	return n, nil
}

func (m *memOverrides) PruneSuperseded(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cutoff = cutoff
	return 0, nil
}

type memNotifications struct {
	mu   sync.Mutex
	rows []models.NotificationRecord
	err  error

	gotFrom, gotTo time.Time
	gotReason      models.NotificationReason
}

func (m *memNotifications) Append(_ context.Context, n models.NotificationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, n)
	return nil
}

func (m *memNotifications) LatestByReason(_ context.Context, plantID string, reason models.NotificationReason) (*models.NotificationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var best *models.NotificationRecord
	for i := range m.rows {
		n := m.rows[i]
		if n.PlantID == plantID && n.Reason == reason && (best == nil || n.DispatchedAt.After(best.DispatchedAt)) {
			best = &n
		}
	}
	return best, nil
}

func (m *memNotifications) List(_ context.Context, plantID string, from, to time.Time, reason models.NotificationReason) ([]models.NotificationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gotFrom, m.gotTo, m.gotReason = from, to, reason
	var out []models.NotificationRecord
	for _, n := range m.rows {
		if n.PlantID == plantID && (reason == "" || n.Reason == reason) {
			out = append(out, n)
		}
	}
	return out, m.err
}

func (m *memNotifications) count(plantID string, reason models.NotificationReason) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := 0
	for _, n := range m.rows {
		if n.PlantID == plantID && n.Reason == reason {
			c++
		}
	}
	return c
}

type memTokens struct {
	mu       sync.Mutex
	bindings map[string][]string
	saves    int
}

func newMemTokens() *memTokens { return &memTokens{bindings: map[string][]string{}} }

func (m *memTokens) Get(_ context.Context, plantID string) (models.TokenBinding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tokens := append([]string{}, m.bindings[plantID]...)
	return models.TokenBinding{PlantID: plantID, Tokens: tokens}, nil
}

func (m *memTokens) Save(_ context.Context, b models.TokenBinding) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.bindings[b.PlantID] = append([]string{}, b.Tokens...)
	return nil
}

// fakeDispatcher records enqueued jobs; full makes Enqueue report a full queue.
type fakeDispatcher struct {
	mu   sync.Mutex
	jobs []Dispatch
	full bool
}

func (d *fakeDispatcher) Enqueue(job Dispatch) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.full {
		return false
	}
	d.jobs = append(d.jobs, job)
	return true
}

func (d *fakeDispatcher) Run(context.Context) {}

type fakeNotifier struct {
	mu     sync.Mutex
	sent   []string
	failOn map[string]error
}

func (n *fakeNotifier) Send(_ context.Context, token, _, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, token)
	return n.failOn[token]
}

type fakePublisher struct {
	mu     sync.Mutex
	states map[string]models.ActuatorState
	err    error
}

func (p *fakePublisher) PublishActuatorState(_ context.Context, plantID string, s models.ActuatorState) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.states == nil {
		p.states = map[string]models.ActuatorState{}
	}
	p.states[plantID] = s
	return p.err
}

func (p *fakePublisher) Close() {}

type fakeMirror struct {
	written []models.Reading
	err     error
}

func (m *fakeMirror) WriteReading(_ context.Context, r models.Reading) error {
	m.written = append(m.written, r)
	return m.err
}

func (m *fakeMirror) Close() {}

func newMemRepos() *repository.Repository {
	return &repository.Repository{
		Readings:      &memReadings{},
		Overrides:     &memOverrides{},
		Notifications: &memNotifications{},
		Tokens:        newMemTokens(),
		PurgeTickets:  repository.NewMemoryPurgeStore(10 * time.Minute),
	}
}
