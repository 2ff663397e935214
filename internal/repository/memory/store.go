// Package memory keeps every table in process. It honors the same unique,
// foreign key and release-on-delete rules as the postgres repositories and is
// used to run services and the router without a database.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
)

type Store struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	patients     map[int64]model.Patient
	doctors      map[int64]model.Doctor
	appointments map[int64]model.Appointment
	invoices     map[int64]model.Invoice
	medicines    map[int64]model.Medicine
	rooms        map[int64]model.Room
	users        map[int64]model.User
	ambulances   map[int64]model.Ambulance
	contacts     map[int64]model.EmergencyContact
	payroll      map[int64]model.PayrollEntry
	machinery    map[int64]model.Machinery
	laundry      map[int64]model.LaundryItem

	// queries counts calls that would reach the database, per operation.
	queries map[string]int
}

func New() *Store {
	return &Store{
		now:          time.Now,
		patients:     map[int64]model.Patient{},
		doctors:      map[int64]model.Doctor{},
		appointments: map[int64]model.Appointment{},
		invoices:     map[int64]model.Invoice{},
		medicines:    map[int64]model.Medicine{},
		rooms:        map[int64]model.Room{},
		users:        map[int64]model.User{},
		ambulances:   map[int64]model.Ambulance{},
		contacts:     map[int64]model.EmergencyContact{},
		payroll:      map[int64]model.PayrollEntry{},
		machinery:    map[int64]model.Machinery{},
		laundry:      map[int64]model.LaundryItem{},
		queries:      map[string]int{},
	}
}

// Queries reports how many times op ran, e.g. "search.patients" or "admin.select_rows:users".
func (s *Store) Queries(op string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queries[op]
}

// TotalQueries sums every recorded operation.
func (s *Store) TotalQueries() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, n := range s.queries {
		total += n
	}
	return total
}

// track must be called with mu held for writing.
func (s *Store) track(op string) {
	s.queries[op]++
}

func (s *Store) nextID() (int64, time.Time) {
	s.seq++
	return s.seq, s.now()
}

func (s *Store) Patients() repository.PatientRepository { return patientRepo{s} }
func (s *Store) Doctors() repository.DoctorRepository   { return doctorRepo{s} }
func (s *Store) Appointments() repository.AppointmentRepository {
	return appointmentRepo{s}
}
func (s *Store) Invoices() repository.InvoiceRepository   { return invoiceRepo{s} }
func (s *Store) Medicines() repository.MedicineRepository { return medicineRepo{s} }
func (s *Store) Rooms() repository.RoomRepository         { return roomRepo{s} }
func (s *Store) Users() repository.UserRepository         { return userRepo{s} }
func (s *Store) Ambulances() repository.AmbulanceRepository {
	return ambulanceRepo{s}
}
func (s *Store) EmergencyContacts() repository.EmergencyContactRepository {
	return contactRepo{s}
}
func (s *Store) Payroll() repository.PayrollRepository     { return payrollRepo{s} }
func (s *Store) Machinery() repository.MachineryRepository { return machineryRepo{s} }
func (s *Store) Laundry() repository.LaundryRepository     { return laundryRepo{s} }
func (s *Store) Search() repository.SearchRepository       { return searchRepo{s} }
func (s *Store) Admin() repository.AdminRepository         { return adminRepo{s} }
func (s *Store) Dashboard() repository.DashboardRepository { return dashboardRepo{s} }

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// newestFirst orders ids the way "ORDER BY created_at DESC, id DESC" does for
// rows created in sequence.
func newestFirst[V any](m map[int64]V) []int64 {
	keys := sortedKeys(m)
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return keys
}

type patientRepo struct{ s *Store }

func (r patientRepo) Create(_ context.Context, p *model.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("patients.create")

	p.ID, p.CreatedAt = r.s.nextID()
	r.s.patients[p.ID] = *p
	return nil
}

func (r patientRepo) Get(_ context.Context, id int64) (*model.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("patients.get")

	p, ok := r.s.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	return &p, nil
}

func (r patientRepo) List(_ context.Context) ([]*model.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("patients.list")

	out := []*model.Patient{}
	for _, id := range newestFirst(r.s.patients) {
		p := r.s.patients[id]
		out = append(out, &p)
	}
	return out, nil
}

func (r patientRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("patients.delete")

	if _, ok := r.s.patients[id]; !ok {
		return apperrors.NotFound("patient", nil)
	}
	for _, a := range r.s.appointments {
		if a.PatientID == id {
			return apperrors.Conflict("patient has dependent records", nil)
		}
	}
	for _, inv := range r.s.invoices {
		if inv.PatientID == id {
			return apperrors.Conflict("patient has dependent records", nil)
		}
	}

	for rid, room := range r.s.rooms {
		if room.PatientID != nil && *room.PatientID == id {
			room.PatientID = nil
			room.Status = model.RoomStatusAvailable
			r.s.rooms[rid] = room
		}
	}
	delete(r.s.patients, id)
	return nil
}

type doctorRepo struct{ s *Store }

func (r doctorRepo) Create(_ context.Context, d *model.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("doctors.create")

	d.ID, d.CreatedAt = r.s.nextID()
	r.s.doctors[d.ID] = *d
	return nil
}

func (r doctorRepo) Get(_ context.Context, id int64) (*model.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("doctors.get")

	d, ok := r.s.doctors[id]
	if !ok {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return &d, nil
}

func (r doctorRepo) List(_ context.Context) ([]*model.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("doctors.list")

	out := []*model.Doctor{}
	for _, id := range newestFirst(r.s.doctors) {
		d := r.s.doctors[id]
		out = append(out, &d)
	}
	return out, nil
}

func (r doctorRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("doctors.delete")

	if _, ok := r.s.doctors[id]; !ok {
		return apperrors.NotFound("doctor", nil)
	}
	for _, a := range r.s.appointments {
		if a.DoctorID == id {
			return apperrors.Conflict("doctor has dependent records", nil)
		}
	}
	delete(r.s.doctors, id)
	return nil
}

type appointmentRepo struct{ s *Store }

func (r appointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("appointments.create")

	if _, ok := r.s.patients[a.PatientID]; !ok {
		return apperrors.Validation("patient does not exist")
	}
	if _, ok := r.s.doctors[a.DoctorID]; !ok {
		return apperrors.Validation("doctor does not exist")
	}
	a.ID, a.CreatedAt = r.s.nextID()
	r.s.appointments[a.ID] = *a
	return nil
}

func (r appointmentRepo) Get(_ context.Context, id int64) (*model.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("appointments.get")

	a, ok := r.s.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	return &a, nil
}

func (r appointmentRepo) List(_ context.Context) ([]*model.AppointmentView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("appointments.list")

	out := []*model.AppointmentView{}
	for _, id := range sortedKeys(r.s.appointments) {
		view := &model.AppointmentView{Appointment: r.s.appointments[id]}
		if p, ok := r.s.patients[view.PatientID]; ok {
			view.PatientName = model.StringPtr(p.FullName())
			view.PatientPhone = model.StringPtr(p.Phone)
		}
		if d, ok := r.s.doctors[view.DoctorID]; ok {
			view.DoctorName = model.StringPtr(d.Name)
			view.DoctorSpecialization = model.StringPtr(d.Specialization)
			view.DoctorDepartment = d.Department
		}
		out = append(out, view)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppointmentDate.Before(out[j].AppointmentDate.Time)
	})
	return out, nil
}

func (r appointmentRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("appointments.update_status")

	a, ok := r.s.appointments[id]
	if !ok {
		return apperrors.NotFound("appointment", nil)
	}
	a.Status = status
	r.s.appointments[id] = a
	return nil
}

type invoiceRepo struct{ s *Store }

func (r invoiceRepo) Create(_ context.Context, inv *model.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("invoices.create")

	if _, ok := r.s.patients[inv.PatientID]; !ok {
		return apperrors.Validation("patient does not exist")
	}
	inv.ID, inv.CreatedAt = r.s.nextID()
	r.s.invoices[inv.ID] = *inv
	return nil
}

func (r invoiceRepo) Get(_ context.Context, id int64) (*model.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("invoices.get")

	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, apperrors.NotFound("invoice", nil)
	}
	return &inv, nil
}

func (r invoiceRepo) List(_ context.Context) ([]*model.InvoiceView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("invoices.list")

	out := []*model.InvoiceView{}
	for _, id := range newestFirst(r.s.invoices) {
		view := &model.InvoiceView{Invoice: r.s.invoices[id]}
		if p, ok := r.s.patients[view.PatientID]; ok {
			view.PatientName = model.StringPtr(p.FullName())
		}
		out = append(out, view)
	}
	return out, nil
}

func (r invoiceRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("invoices.update_status")

	inv, ok := r.s.invoices[id]
	if !ok {
		return apperrors.NotFound("invoice", nil)
	}
	inv.Status = status
	r.s.invoices[id] = inv
	return nil
}

type medicineRepo struct{ s *Store }

func (r medicineRepo) Create(_ context.Context, m *model.Medicine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("medicines.create")

	m.ID, m.CreatedAt = r.s.nextID()
	r.s.medicines[m.ID] = *m
	return nil
}

func (r medicineRepo) Get(_ context.Context, id int64) (*model.Medicine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("medicines.get")

	m, ok := r.s.medicines[id]
	if !ok {
		return nil, apperrors.NotFound("medicine", nil)
	}
	return &m, nil
}

func (r medicineRepo) List(_ context.Context) ([]*model.Medicine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("medicines.list")

	out := []*model.Medicine{}
	for _, id := range sortedKeys(r.s.medicines) {
		m := r.s.medicines[id]
		out = append(out, &m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r medicineRepo) Update(_ context.Context, m *model.Medicine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("medicines.update")

	existing, ok := r.s.medicines[m.ID]
	if !ok {
		return apperrors.NotFound("medicine", nil)
	}
	m.CreatedAt = existing.CreatedAt
	r.s.medicines[m.ID] = *m
	return nil
}

func (r medicineRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("medicines.delete")

	if _, ok := r.s.medicines[id]; !ok {
		return apperrors.NotFound("medicine", nil)
	}
	delete(r.s.medicines, id)
	return nil
}

type roomRepo struct{ s *Store }

func (r roomRepo) checkRoom(room *model.Room) error {
	for id, other := range r.s.rooms {
		if id != room.ID && other.RoomNumber == room.RoomNumber {
			return apperrors.Conflict("Room number already exists", nil)
		}
	}
	if room.PatientID != nil {
		if _, ok := r.s.patients[*room.PatientID]; !ok {
			return apperrors.Validation("patient does not exist")
		}
	}
	return nil
}

func (r roomRepo) Create(_ context.Context, room *model.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("rooms.create")

	if err := r.checkRoom(room); err != nil {
		return err
	}
	room.ID, room.CreatedAt = r.s.nextID()
	r.s.rooms[room.ID] = *room
	return nil
}

func (r roomRepo) Get(_ context.Context, id int64) (*model.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("rooms.get")

	room, ok := r.s.rooms[id]
	if !ok {
		return nil, apperrors.NotFound("room", nil)
	}
	return &room, nil
}

func (r roomRepo) List(_ context.Context) ([]*model.RoomView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("rooms.list")

	out := []*model.RoomView{}
	for _, id := range sortedKeys(r.s.rooms) {
		view := &model.RoomView{Room: r.s.rooms[id]}
		if view.PatientID != nil {
			if p, ok := r.s.patients[*view.PatientID]; ok {
				view.PatientName = model.StringPtr(p.FullName())
			}
		}
		out = append(out, view)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (r roomRepo) Update(_ context.Context, room *model.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("rooms.update")

	existing, ok := r.s.rooms[room.ID]
	if !ok {
		return apperrors.NotFound("room", nil)
	}
	if err := r.checkRoom(room); err != nil {
		return err
	}
	room.CreatedAt = existing.CreatedAt
	r.s.rooms[room.ID] = *room
	return nil
}

func (r roomRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("rooms.delete")

	if _, ok := r.s.rooms[id]; !ok {
		return apperrors.NotFound("room", nil)
	}
	delete(r.s.rooms, id)
	return nil
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("users.create")

	for _, other := range r.s.users {
		if other.Username == u.Username {
			return apperrors.Conflict("Username already exists", nil)
		}
	}
	u.ID, u.CreatedAt = r.s.nextID()
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("users.get")

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	return &u, nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("users.get_by_username")

	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (r userRepo) List(_ context.Context) ([]*model.UserSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("users.list")

	out := []*model.UserSummary{}
	for _, id := range newestFirst(r.s.users) {
		u := r.s.users[id]
		out = append(out, &model.UserSummary{
			ID:        u.ID,
			Username:  u.Username,
			Role:      u.Role,
			FullName:  u.FullName,
			Email:     u.Email,
			Phone:     u.Phone,
			CreatedAt: u.CreatedAt,
		})
	}
	return out, nil
}

func (r userRepo) Update(_ context.Context, upd *model.UserUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("users.update")

	u, ok := r.s.users[upd.ID]
	if !ok {
		return apperrors.NotFound("user", nil)
	}
	u.FullName, u.Email, u.Phone = upd.FullName, upd.Email, upd.Phone
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	r.s.users[upd.ID] = u
	return nil
}

func (r userRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("users.delete")

	if _, ok := r.s.users[id]; !ok {
		return apperrors.NotFound("user", nil)
	}
	delete(r.s.users, id)
	return nil
}

func (r userRepo) ListPasswordHashes(_ context.Context) (map[int64]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("users.list_passwords")

	out := make(map[int64]string, len(r.s.users))
	for id, u := range r.s.users {
		out[id] = u.PasswordHash
	}
	return out, nil
}

func (r userRepo) SetPasswordHash(_ context.Context, id int64, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("users.set_password")

	u, ok := r.s.users[id]
	if !ok {
		return apperrors.NotFound("user", nil)
	}
	u.PasswordHash = hash
	r.s.users[id] = u
	return nil
}

type ambulanceRepo struct{ s *Store }

func (r ambulanceRepo) Create(_ context.Context, a *model.Ambulance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("ambulances.create")

	for _, other := range r.s.ambulances {
		if other.VehicleNumber == a.VehicleNumber {
			return apperrors.Conflict("Vehicle number already exists", nil)
		}
	}
	a.ID, a.CreatedAt = r.s.nextID()
	r.s.ambulances[a.ID] = *a
	return nil
}

func (r ambulanceRepo) List(_ context.Context) ([]*model.Ambulance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("ambulances.list")

	out := []*model.Ambulance{}
	for _, id := range newestFirst(r.s.ambulances) {
		a := r.s.ambulances[id]
		out = append(out, &a)
	}
	return out, nil
}

func (r ambulanceRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("ambulances.delete")

	if _, ok := r.s.ambulances[id]; !ok {
		return apperrors.NotFound("ambulance", nil)
	}
	delete(r.s.ambulances, id)
	return nil
}

type contactRepo struct{ s *Store }

func (r contactRepo) Create(_ context.Context, c *model.EmergencyContact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("emergency_contacts.create")

	c.ID, c.CreatedAt = r.s.nextID()
	r.s.contacts[c.ID] = *c
	return nil
}

func (r contactRepo) List(_ context.Context) ([]*model.EmergencyContact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("emergency_contacts.list")

	out := []*model.EmergencyContact{}
	for _, id := range newestFirst(r.s.contacts) {
		c := r.s.contacts[id]
		out = append(out, &c)
	}
	return out, nil
}

func (r contactRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("emergency_contacts.delete")

	if _, ok := r.s.contacts[id]; !ok {
		return apperrors.NotFound("emergency contact", nil)
	}
	delete(r.s.contacts, id)
	return nil
}

type payrollRepo struct{ s *Store }

func (r payrollRepo) Create(_ context.Context, e *model.PayrollEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("payroll.create")

	e.ID, e.CreatedAt = r.s.nextID()
	r.s.payroll[e.ID] = *e
	return nil
}

func (r payrollRepo) List(_ context.Context) ([]*model.PayrollEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("payroll.list")

	out := []*model.PayrollEntry{}
	for _, id := range newestFirst(r.s.payroll) {
		e := r.s.payroll[id]
		out = append(out, &e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PaymentDate.After(out[j].PaymentDate.Time)
	})
	return out, nil
}

type machineryRepo struct{ s *Store }

func (r machineryRepo) Create(_ context.Context, m *model.Machinery) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("machinery.create")

	m.ID, m.CreatedAt = r.s.nextID()
	m.UpdatedAt = m.CreatedAt
	r.s.machinery[m.ID] = *m
	return nil
}

func (r machineryRepo) Get(_ context.Context, id int64) (*model.Machinery, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("machinery.get")

	m, ok := r.s.machinery[id]
	if !ok {
		return nil, apperrors.NotFound("machinery", nil)
	}
	return &m, nil
}

func (r machineryRepo) List(_ context.Context) ([]*model.Machinery, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("machinery.list")

	out := []*model.Machinery{}
	for _, id := range newestFirst(r.s.machinery) {
		m := r.s.machinery[id]
		out = append(out, &m)
	}
	return out, nil
}

func (r machineryRepo) Update(_ context.Context, m *model.Machinery) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("machinery.update")

	existing, ok := r.s.machinery[m.ID]
	if !ok {
		return apperrors.NotFound("machinery", nil)
	}
	m.CreatedAt, m.UpdatedAt = existing.CreatedAt, r.s.now()
	r.s.machinery[m.ID] = *m
	return nil
}

func (r machineryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("machinery.delete")

	if _, ok := r.s.machinery[id]; !ok {
		return apperrors.NotFound("machinery", nil)
	}
	delete(r.s.machinery, id)
	return nil
}

type laundryRepo struct{ s *Store }

func (r laundryRepo) Create(_ context.Context, item *model.LaundryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("laundry.create")

	item.ID, item.CreatedAt = r.s.nextID()
	item.UpdatedAt = item.CreatedAt
	r.s.laundry[item.ID] = *item
	return nil
}

func (r laundryRepo) Get(_ context.Context, id int64) (*model.LaundryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("laundry.get")

	item, ok := r.s.laundry[id]
	if !ok {
		return nil, apperrors.NotFound("laundry item", nil)
	}
	return &item, nil
}

func (r laundryRepo) List(_ context.Context) ([]*model.LaundryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("laundry.list")

	out := []*model.LaundryItem{}
	for _, id := range newestFirst(r.s.laundry) {
		item := r.s.laundry[id]
		out = append(out, &item)
	}
	return out, nil
}

func (r laundryRepo) Update(_ context.Context, item *model.LaundryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("laundry.update")

	existing, ok := r.s.laundry[item.ID]
	if !ok {
		return apperrors.NotFound("laundry item", nil)
	}
	item.CreatedAt, item.UpdatedAt = existing.CreatedAt, r.s.now()
	r.s.laundry[item.ID] = *item
	return nil
}

func (r laundryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("laundry.delete")

	if _, ok := r.s.laundry[id]; !ok {
		return apperrors.NotFound("laundry item", nil)
	}
	delete(r.s.laundry, id)
	return nil
}

type searchRepo struct{ s *Store }

// likeMatcher compiles an escaped ILIKE pattern.
func likeMatcher(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString(`(?is)^`)
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			b.WriteString(`.*`)
		case r == '_':
			b.WriteString(`.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`$`)
	return regexp.Compile(b.String())
}

func anyMatch(re *regexp.Regexp, values ...string) bool {
	for _, v := range values {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}

func (r searchRepo) SearchPatients(_ context.Context, pattern string, limit int) ([]model.PatientHit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("search.patients")

	re, err := likeMatcher(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	hits := []model.PatientHit{}
	for _, id := range sortedKeys(r.s.patients) {
		p := r.s.patients[id]
		if len(hits) < limit && anyMatch(re, p.FirstName, p.LastName, p.Phone) {
			hits = append(hits, model.PatientHit{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, Phone: p.Phone})
		}
	}
	return hits, nil
}

func (r searchRepo) SearchDoctors(_ context.Context, pattern string, limit int) ([]model.DoctorHit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("search.doctors")

	re, err := likeMatcher(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}
	hits := []model.DoctorHit{}
	for _, id := range sortedKeys(r.s.doctors) {
		d := r.s.doctors[id]
		if len(hits) < limit && anyMatch(re, d.Name, d.Specialization) {
			hits = append(hits, model.DoctorHit{ID: d.ID, Name: d.Name, Specialization: d.Specialization})
		}
	}
	return hits, nil
}

func (r searchRepo) SearchMedicines(_ context.Context, pattern string, limit int) ([]model.MedicineHit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("search.medicines")

	re, err := likeMatcher(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search medicines: %w", err)
	}
	hits := []model.MedicineHit{}
	for _, id := range sortedKeys(r.s.medicines) {
		m := r.s.medicines[id]
		category := ""
		if m.Category != nil {
			category = *m.Category
		}
		if len(hits) < limit && anyMatch(re, m.Name, category) {
			hits = append(hits, model.MedicineHit{ID: m.ID, Name: m.Name, Category: m.Category, Stock: m.Stock})
		}
	}
	return hits, nil
}

type adminRepo struct{ s *Store }

var tableNames = []string{
	"ambulances", "appointments", "doctors", "emergency_contacts", "invoices", "laundry",
	"machinery", "medicines", "patients", "payroll", "rooms", "users",
}

func (r adminRepo) ListTables(_ context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("admin.list_tables")

	return append([]string(nil), tableNames...), nil
}

// toRow renders v through its json tags, which match the column names.
func toRow(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	row := map[string]interface{}{}
	return row, json.Unmarshal(b, &row)
}

func collectRows[V any](m map[int64]V, limit int, extra func(V, map[string]interface{})) ([]map[string]interface{}, error) {
	rows := []map[string]interface{}{}
	for _, id := range sortedKeys(m) {
		if len(rows) >= limit {
			break
		}
		row, err := toRow(m[id])
		if err != nil {
			return nil, err
		}
		if extra != nil {
			extra(m[id], row)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r adminRepo) SelectRows(_ context.Context, table string, limit int) ([]map[string]interface{}, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("admin.select_rows:" + table)

	switch table {
	case "ambulances":
		return collectRows(r.s.ambulances, limit, nil)
	case "appointments":
		return collectRows(r.s.appointments, limit, nil)
	case "doctors":
		return collectRows(r.s.doctors, limit, nil)
	case "emergency_contacts":
		return collectRows(r.s.contacts, limit, nil)
	case "invoices":
		return collectRows(r.s.invoices, limit, nil)
	case "laundry":
		return collectRows(r.s.laundry, limit, nil)
	case "machinery":
		return collectRows(r.s.machinery, limit, nil)
	case "medicines":
		return collectRows(r.s.medicines, limit, nil)
	case "patients":
		return collectRows(r.s.patients, limit, nil)
	case "payroll":
		return collectRows(r.s.payroll, limit, nil)
	case "rooms":
		return collectRows(r.s.rooms, limit, nil)
	case "users":
		return collectRows(r.s.users, limit, func(u model.User, row map[string]interface{}) {
			row["password"] = u.PasswordHash
		})
	}
	return nil, fmt.Errorf("relation %q does not exist", table)
}

type dashboardRepo struct{ s *Store }

func (r dashboardRepo) Stats(_ context.Context, day time.Time) (*model.DashboardStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.track("dashboard.stats")

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	stats := &model.DashboardStats{
		TotalPatients: len(r.s.patients),
		TotalDoctors:  len(r.s.doctors),
	}
	for _, a := range r.s.appointments {
		if !a.AppointmentDate.Before(start) && a.AppointmentDate.Before(end) {
			stats.AppointmentsToday++
		}
	}
	for _, inv := range r.s.invoices {
		if inv.Status == model.InvoiceStatusPending {
			stats.PendingInvoices++
		}
	}
	for _, m := range r.s.medicines {
		if m.LowStock() {
			stats.LowStockMedicines++
		}
	}
	for _, room := range r.s.rooms {
		if room.Status == model.RoomStatusAvailable {
			stats.AvailableRooms++
		}
	}
	for _, a := range r.s.ambulances {
		if a.Status == model.AmbulanceStatusOnCall {
			stats.AmbulancesOnCall++
		}
	}
	for _, m := range r.s.machinery {
		if m.Status == model.MachineryStatusUnderMaintenance {
			stats.MachineryInMaintenance++
		}
	}
	return stats, nil
}
