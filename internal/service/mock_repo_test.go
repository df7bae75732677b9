package service_test

import (
	"context"
	"sort"
	"time"

	"github.com/cecepns/trailrun/internal/model"
	"github.com/cecepns/trailrun/internal/repo"
)

// fakeRepo is an in-memory Repository that mirrors the ledger semantics of
// the Postgres implementation: one registration per (event, user), capacity
// counted over confirmed rows only, unconditional status overwrites.
type fakeRepo struct {
	users         map[int64]*model.User
	events        map[int64]*model.Event
	registrations map[int64]*model.Registration
	methods       map[int64]*model.PaymentMethod
	faqs          map[int64]*model.FAQ
	nextID        int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:         make(map[int64]*model.User),
		events:        make(map[int64]*model.Event),
		registrations: make(map[int64]*model.Registration),
		methods:       make(map[int64]*model.PaymentMethod),
		faqs:          make(map[int64]*model.FAQ),
	}
}

func (f *fakeRepo) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) addUser(name, email, role string) *model.User {
	u := &model.User{ID: f.id(), Name: name, Email: email, Role: role, CreatedAt: time.Now()}
	f.users[u.ID] = u
	return u
}

func (f *fakeRepo) addEvent(title string, maxParticipants int) *model.Event {
	e := &model.Event{
		ID:              f.id(),
		Title:           title,
		Date:            time.Now().AddDate(0, 1, 0),
		Time:            "06:00",
		Location:        "Kebon Kito",
		Category:        "trail",
		Distance:        "15K",
		Price:           250000,
		MaxParticipants: maxParticipants,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	f.events[e.ID] = e
	return e
}

func (f *fakeRepo) addMethod(name, typ string) *model.PaymentMethod {
	m := &model.PaymentMethod{ID: f.id(), Name: name, Type: typ, Active: true}
	f.methods[m.ID] = m
	return m
}

func (f *fakeRepo) confirmedCount(eventID int64) int {
	n := 0
	for _, r := range f.registrations {
		if r.EventID == eventID && r.PaymentStatus == model.StatusConfirmed {
			n++
		}
	}
	return n
}

// users

func (f *fakeRepo) CreateUser(_ context.Context, u *model.User) (int64, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return 0, repo.ErrEmailTaken
		}
	}
	stored := *u
	stored.ID = f.id()
	stored.CreatedAt = time.Now()
	f.users[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repo.ErrUserNotFound
}

func (f *fakeRepo) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepo) ListUsers(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeRepo) UpdateUserRole(_ context.Context, id int64, role string) error {
	u, ok := f.users[id]
	if !ok {
		return repo.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeRepo) UpdateUserPassword(_ context.Context, id int64, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return repo.ErrUserNotFound
	}
	u.Password = hash
	return nil
}

// events

func (f *fakeRepo) CreateEvent(_ context.Context, e *model.Event) (int64, error) {
	stored := *e
	stored.ID = f.id()
	f.events[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeRepo) UpdateEvent(_ context.Context, e *model.Event) error {
	if _, ok := f.events[e.ID]; !ok {
		return repo.ErrEventNotFound
	}
	stored := *e
	f.events[e.ID] = &stored
	return nil
}

func (f *fakeRepo) DeleteEvent(_ context.Context, id int64) error {
	if _, ok := f.events[id]; !ok {
		return repo.ErrEventNotFound
	}
	delete(f.events, id)
	for rid, r := range f.registrations {
		if r.EventID == id {
			delete(f.registrations, rid)
		}
	}
	return nil
}

func (f *fakeRepo) GetEventByID(_ context.Context, id int64) (*model.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, repo.ErrEventNotFound
	}
	out := *e
	out.RegisteredCount = f.confirmedCount(id)
	return &out, nil
}

func (f *fakeRepo) ListEvents(_ context.Context) ([]model.Event, error) {
	out := make([]model.Event, 0, len(f.events))
	for _, e := range f.events {
		item := *e
		item.RegisteredCount = f.confirmedCount(e.ID)
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeRepo) ConfirmedCount(_ context.Context, eventID int64) (int, error) {
	return f.confirmedCount(eventID), nil
}

// registrations

func (f *fakeRepo) RegisterTx(_ context.Context, eventID, userID int64) (int64, error) {
	e, ok := f.events[eventID]
	if !ok {
		return 0, repo.ErrEventNotFound
	}
	for _, r := range f.registrations {
		if r.EventID == eventID && r.UserID == userID {
			return 0, repo.ErrDuplicateRegistration
		}
	}
	if f.confirmedCount(eventID) >= e.MaxParticipants {
		return 0, repo.ErrEventFull
	}
	reg := &model.Registration{
		ID:            f.id(),
		EventID:       eventID,
		UserID:        userID,
		PaymentStatus: model.StatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.registrations[reg.ID] = reg
	return reg.ID, nil
}

func (f *fakeRepo) GetRegistrationByID(_ context.Context, id int64) (*model.Registration, error) {
	r, ok := f.registrations[id]
	if !ok {
		return nil, repo.ErrRegistrationNotFound
	}
	return r, nil
}

func (f *fakeRepo) detail(r *model.Registration) model.RegistrationDetail {
	e := f.events[r.EventID]
	return model.RegistrationDetail{
		Registration:     *r,
		EventTitle:       e.Title,
		EventDescription: e.Description,
		EventDate:        e.Date,
		EventTime:        e.Time,
		EventLocation:    e.Location,
		EventCategory:    e.Category,
		EventDistance:    e.Distance,
		EventPrice:       e.Price,
	}
}

func (f *fakeRepo) GetRegistrationForUser(_ context.Context, id, userID int64) (*model.RegistrationDetail, error) {
	r, ok := f.registrations[id]
	if !ok || r.UserID != userID {
		return nil, repo.ErrRegistrationNotFound
	}
	d := f.detail(r)
	return &d, nil
}

func (f *fakeRepo) ListRegistrationsByUser(_ context.Context, userID int64) ([]model.RegistrationDetail, error) {
	out := make([]model.RegistrationDetail, 0)
	for _, r := range f.registrations {
		if r.UserID == userID {
			out = append(out, f.detail(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRepo) ListRegistrationsAdmin(_ context.Context, status, _ string) ([]model.AdminRegistration, error) {
	out := make([]model.AdminRegistration, 0)
	for _, r := range f.registrations {
		if status != "" && r.PaymentStatus != status {
			continue
		}
		u := f.users[r.UserID]
		e := f.events[r.EventID]
		out = append(out, model.AdminRegistration{
			Registration: *r,
			UserName:     u.Name,
			UserEmail:    u.Email,
			EventTitle:   e.Title,
			EventPrice:   e.Price,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRepo) SetPaymentMethod(_ context.Context, id, userID, methodID int64) error {
	r, ok := f.registrations[id]
	if !ok || r.UserID != userID {
		return repo.ErrRegistrationNotFound
	}
	r.PaymentMethodID = &methodID
	return nil
}

func (f *fakeRepo) SetShirtSize(_ context.Context, id, userID int64, size string) error {
	r, ok := f.registrations[id]
	if !ok || r.UserID != userID {
		return repo.ErrRegistrationNotFound
	}
	r.ShirtSize = &size
	return nil
}

func (f *fakeRepo) UpdateRegistrationStatusTx(_ context.Context, id int64, newStatus string) error {
	r, ok := f.registrations[id]
	if !ok {
		return repo.ErrRegistrationNotFound
	}
	r.PaymentStatus = newStatus
	return nil
}

// payment methods

func (f *fakeRepo) ListPaymentMethods(_ context.Context, activeOnly bool) ([]model.PaymentMethod, error) {
	out := make([]model.PaymentMethod, 0)
	for _, m := range f.methods {
		if activeOnly && !m.Active {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeRepo) GetPaymentMethodByID(_ context.Context, id int64) (*model.PaymentMethod, error) {
	m, ok := f.methods[id]
	if !ok {
		return nil, repo.ErrPaymentMethodNotFound
	}
	return m, nil
}

func (f *fakeRepo) CreatePaymentMethod(_ context.Context, m *model.PaymentMethod) (int64, error) {
	stored := *m
	stored.ID = f.id()
	f.methods[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeRepo) UpdatePaymentMethod(_ context.Context, m *model.PaymentMethod) error {
	if _, ok := f.methods[m.ID]; !ok {
		return repo.ErrPaymentMethodNotFound
	}
	stored := *m
	f.methods[m.ID] = &stored
	return nil
}

func (f *fakeRepo) DeletePaymentMethod(_ context.Context, id int64) error {
	if _, ok := f.methods[id]; !ok {
		return repo.ErrPaymentMethodNotFound
	}
	delete(f.methods, id)
	return nil
}

// faqs

func (f *fakeRepo) ListFAQs(_ context.Context) ([]model.FAQ, error) {
	out := make([]model.FAQ, 0)
	for _, faq := range f.faqs {
		out = append(out, *faq)
	}
	return out, nil
}

func (f *fakeRepo) CreateFAQ(_ context.Context, faq *model.FAQ) (int64, error) {
	stored := *faq
	stored.ID = f.id()
	f.faqs[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeRepo) UpdateFAQ(_ context.Context, faq *model.FAQ) error {
	if _, ok := f.faqs[faq.ID]; !ok {
		return repo.ErrFAQNotFound
	}
	stored := *faq
	f.faqs[faq.ID] = &stored
	return nil
}

func (f *fakeRepo) DeleteFAQ(_ context.Context, id int64) error {
	if _, ok := f.faqs[id]; !ok {
		return repo.ErrFAQNotFound
	}
	delete(f.faqs, id)
	return nil
}

// dashboard

func (f *fakeRepo) DashboardStats(_ context.Context) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{
		TotalUsers:  len(f.users),
		TotalEvents: len(f.events),
	}
	for _, r := range f.registrations {
		switch r.PaymentStatus {
		case model.StatusConfirmed:
			stats.TotalRevenue += f.events[r.EventID].Price
		case model.StatusPending:
			stats.PendingPayments++
		}
	}
	return stats, nil
}

func (f *fakeRepo) RecentRegistrations(ctx context.Context, limit int) ([]model.AdminRegistration, error) {
	regs, err := f.ListRegistrationsAdmin(ctx, "", "")
	if err != nil {
		return nil, err
	}
	if len(regs) > limit {
		regs = regs[:limit]
	}
	return regs, nil
}

func (f *fakeRepo) UpcomingEvents(ctx context.Context, limit int) ([]model.Event, error) {
	events, err := f.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (f *fakeRepo) MigrateUp(string) error   { return nil }
func (f *fakeRepo) MigrateDown(string) error { return nil }
