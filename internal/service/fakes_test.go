package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*domain.User
	touched map[uuid.UUID]time.Time
	rehash  map[uuid.UUID]string
	err     error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{
		users:   map[uuid.UUID]*domain.User{},
		touched: map[uuid.UUID]time.Time{},
		rehash:  map[uuid.UUID]string{},
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return nil, domain.ErrConflict
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.users[u.ID] = &cp
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return &cp, nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rehash[id] = hash
	if u, ok := r.users[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touched[id] = at
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type fakeRoleRepo struct {
	roles map[string]domain.Role
}

func newFakeRoleRepo(roles ...domain.Role) *fakeRoleRepo {
	r := &fakeRoleRepo{roles: map[string]domain.Role{}}
	for _, role := range roles {
		r.roles[role.Name] = role
	}
	return r
}

func (r *fakeRoleRepo) Get(_ context.Context, name string) (*domain.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &role, nil
}

func (r *fakeRoleRepo) List(context.Context) ([]domain.Role, error) {
	out := []domain.Role{}
	for _, role := range r.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeRoleRepo) Upsert(_ context.Context, role domain.Role) (*domain.Role, error) {
	r.roles[role.Name] = role
	return &role, nil
}

type fakeCheckpointRepo struct {
	cps     map[uuid.UUID]*domain.Checkpoint
	listErr error
}

func newFakeCheckpointRepo(cps ...domain.Checkpoint) *fakeCheckpointRepo {
	r := &fakeCheckpointRepo{cps: map[uuid.UUID]*domain.Checkpoint{}}
	for i := range cps {
		cp := cps[i]
		r.cps[cp.ID] = &cp
	}
	return r
}

func (r *fakeCheckpointRepo) Create(_ context.Context, cp *domain.Checkpoint) (*domain.Checkpoint, error) {
	for _, existing := range r.cps {
		if existing.Token == cp.Token {
			return nil, domain.ErrConflict
		}
	}
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	c := *cp
	r.cps[c.ID] = &c
	return &c, nil
}

func (r *fakeCheckpointRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Checkpoint, error) {
	cp, ok := r.cps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *cp
	return &c, nil
}

func (r *fakeCheckpointRepo) GetActiveByToken(_ context.Context, token string) (*domain.Checkpoint, error) {
	for _, cp := range r.cps {
		if cp.Token == token && cp.Active {
			c := *cp
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCheckpointRepo) Update(_ context.Context, cp *domain.Checkpoint) (*domain.Checkpoint, error) {
	if _, ok := r.cps[cp.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	c := *cp
	r.cps[c.ID] = &c
	return &c, nil
}

func (r *fakeCheckpointRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.cps[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.cps, id)
	return nil
}

func (r *fakeCheckpointRepo) List(context.Context) ([]domain.Checkpoint, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []domain.Checkpoint{}
	for _, cp := range r.cps {
		out = append(out, *cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeAttendanceRepo struct {
	mu       sync.Mutex
	records  []domain.AttendanceRecord
	cutoffs  []time.Time
	purged   int64
	from, to time.Time
}

func (r *fakeAttendanceRepo) Create(_ context.Context, rec *domain.AttendanceRecord) (*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.records = append(r.records, *rec)
	out := *rec
	return &out, nil
}

func (r *fakeAttendanceRepo) ListBetween(_ context.Context, from, to time.Time) ([]domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.from, r.to = from, to
	out := []domain.AttendanceRecord{}
	for _, rec := range r.records {
		if !rec.Timestamp.Before(from) && rec.Timestamp.Before(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListRecent(_ context.Context, limit, offset int) ([]domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]domain.AttendanceRecord(nil), r.records...)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if offset > len(out) {
		return []domain.AttendanceRecord{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAttendanceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeAttendanceRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cutoffs = append(r.cutoffs, cutoff)
	kept := r.records[:0]
	var n int64
	for _, rec := range r.records {
		if rec.Timestamp.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	r.purged += n
	return n, nil
}

type fakeScheduleRepo struct {
	schedule domain.CoverageSchedule
}

func (r *fakeScheduleRepo) Get(context.Context) (domain.CoverageSchedule, error) {
	return r.schedule, nil
}

func (r *fakeScheduleRepo) Save(_ context.Context, s domain.CoverageSchedule) (domain.CoverageSchedule, error) {
	s.UpdatedAt = time.Now()
	r.schedule = s
	return s, nil
}

type fakeRateLimiter struct {
	allow   bool
	checked []string
	resets  []string
}

func (f *fakeRateLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	f.checked = append(f.checked, key)
	return f.allow, nil
}

func (f *fakeRateLimiter) Reset(_ context.Context, key string) error {
	f.resets = append(f.resets, key)
	return nil
}

type published struct {
	subject string
	data    interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *fakePublisher) Publish(_ context.Context, subject string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{subject: subject, data: data})
	return nil
}

func (p *fakePublisher) Close() error { return nil }

// plainHasher stores "plain:<password>" and flags "legacy:<password>" for rehash.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "plain:" + password, nil }

func (plainHasher) Verify(password, hash string) (bool, bool, error) {
	switch hash {
	case "plain:" + password:
		return true, false, nil
	case "legacy:" + password:
		return true, true, nil
	}
	return false, false, nil
}

func ptr[T any](v T) *T { return &v }
