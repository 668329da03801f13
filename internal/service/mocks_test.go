package service_test

import (
	"strings"
	"time"

	"github.com/glowpoint/recruiting-backend/internal/apperrors"
	"github.com/glowpoint/recruiting-backend/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// --- students ---

type contactCall struct {
	StudentID int
	At        time.Time
}

type memStudentRepo struct {
	students     map[int]*model.Student
	nextID       int
	contactCalls []contactCall
	markErr      error
}

func newMemStudentRepo(students ...*model.Student) *memStudentRepo {
	r := &memStudentRepo{students: map[int]*model.Student{}, nextID: 1}
	for _, s := range students {
		if s.ID == 0 {
			s.ID = r.nextID
		}
		if s.ID >= r.nextID {
			r.nextID = s.ID + 1
		}
		r.students[s.ID] = s
	}
	return r
}

func (r *memStudentRepo) List(schoolID, campaignID *int) ([]model.Student, error) {
	out := []model.Student{}
	for _, s := range r.students {
		if schoolID != nil && s.SchoolID != *schoolID {
			continue
		}
		if campaignID != nil && s.CampaignID != *campaignID {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *memStudentRepo) ListByIDs(ids []int) ([]model.Student, error) {
	out := []model.Student{}
	for _, id := range ids {
		if s, ok := r.students[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memStudentRepo) GetByID(id int) (*model.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *memStudentRepo) Create(s *model.Student) error {
	s.ID = r.nextID
	r.nextID++
	s.CreatedAt = time.Now()
	copied := *s
	r.students[s.ID] = &copied
	return nil
}

func (r *memStudentRepo) Update(s *model.Student) error {
	copied := *s
	r.students[s.ID] = &copied
	return nil
}

func (r *memStudentRepo) Delete(id int) error {
	delete(r.students, id)
	return nil
}

func (r *memStudentRepo) ExistsContactInCampaign(campaignID int, email, phone string) (bool, error) {
	for _, s := range r.students {
		if s.CampaignID != campaignID {
			continue
		}
		if email != "" && s.Email != nil && *s.Email == email {
			return true, nil
		}
		if phone != "" && s.Phone != nil && *s.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

// MarkContacted mirrors the repository's COALESCE: contacted_at keeps its
// first value.
func (r *memStudentRepo) MarkContacted(id int, at time.Time) error {
	if r.markErr != nil {
		return r.markErr
	}
	r.contactCalls = append(r.contactCalls, contactCall{StudentID: id, At: at})
	if s, ok := r.students[id]; ok {
		s.Contacted = true
		if s.ContactedAt == nil {
			stamp := at
			s.ContactedAt = &stamp
		}
	}
	return nil
}

// --- tours ---

type completionCall struct {
	TourID          int
	Status          model.TourStatus
	CompleteStudent bool
	Now             time.Time
}

type memTourRepo struct {
	tours       map[int]*model.TourVisit
	nextID      int
	completions []completionCall
	updateErr   error

	listStart, listEnd time.Time
}

func newMemTourRepo(tours ...*model.TourVisit) *memTourRepo {
	r := &memTourRepo{tours: map[int]*model.TourVisit{}, nextID: 1}
	for _, t := range tours {
		if t.ID == 0 {
			t.ID = r.nextID
		}
		if t.ID >= r.nextID {
			r.nextID = t.ID + 1
		}
		r.tours[t.ID] = t
	}
	return r
}

func (r *memTourRepo) GetByID(id int) (*model.TourVisit, error) {
	t, ok := r.tours[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (r *memTourRepo) GetJoined(id int) (*model.TourVisit, error) {
	return r.GetByID(id)
}

func (r *memTourRepo) ListForDay(start, end time.Time) ([]model.TourVisit, error) {
	r.listStart, r.listEnd = start, end
	out := []model.TourVisit{}
	for _, t := range r.tours {
		if !t.StartsAt.Before(start) && !t.StartsAt.After(end) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTourRepo) FindClashAt(startsAt time.Time, excludeID int) (*model.TourVisit, error) {
	for _, t := range r.tours {
		if t.ID == excludeID || t.Status == model.TourCanceled {
			continue
		}
		if t.StartsAt.Equal(startsAt) {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memTourRepo) Create(t *model.TourVisit) error {
	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	copied := *t
	r.tours[t.ID] = &copied
	return nil
}

func (r *memTourRepo) UpdateWithCompletion(t *model.TourVisit, completeStudent bool, now time.Time) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.completions = append(r.completions, completionCall{
		TourID:          t.ID,
		Status:          t.Status,
		CompleteStudent: completeStudent,
		Now:             now,
	})
	copied := *t
	r.tours[t.ID] = &copied
	return nil
}

func (r *memTourRepo) Cancel(id int) (*model.TourVisit, error) {
	t, ok := r.tours[id]
	if !ok {
		return nil, apperrors.NotFound("tour not found")
	}
	t.Status = model.TourCanceled
	copied := *t
	return &copied, nil
}

// --- campaigns ---

type memCampaignRepo struct {
	campaigns    map[int]*model.Campaign
	nextID       int
	studentCount map[int]int
}

func newMemCampaignRepo(campaigns ...*model.Campaign) *memCampaignRepo {
	r := &memCampaignRepo{campaigns: map[int]*model.Campaign{}, nextID: 1, studentCount: map[int]int{}}
	for _, c := range campaigns {
		if c.ID == 0 {
			c.ID = r.nextID
		}
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
		r.campaigns[c.ID] = c
	}
	return r
}

func (r *memCampaignRepo) List() ([]model.Campaign, error) {
	out := []model.Campaign{}
	for _, c := range r.campaigns {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCampaignRepo) GetByID(id int) (*model.Campaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *memCampaignRepo) GetActive() (*model.Campaign, error) {
	for _, c := range r.campaigns {
		if c.IsActive {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memCampaignRepo) Create(c *model.Campaign) error {
	c.ID = r.nextID
	r.nextID++
	c.CreatedAt = time.Now()
	copied := *c
	r.campaigns[c.ID] = &copied
	return nil
}

func (r *memCampaignRepo) Activate(id int) error {
	if _, ok := r.campaigns[id]; !ok {
		return apperrors.NotFound("campaign not found")
	}
	for _, c := range r.campaigns {
		c.IsActive = c.ID == id
	}
	return nil
}

func (r *memCampaignRepo) Deactivate(id int) error {
	c, ok := r.campaigns[id]
	if !ok {
		return apperrors.NotFound("campaign not found")
	}
	c.IsActive = false
	return nil
}

func (r *memCampaignRepo) Delete(id int) error {
	delete(r.campaigns, id)
	return nil
}

func (r *memCampaignRepo) CountStudents(campaignID int) (int, error) {
	return r.studentCount[campaignID], nil
}

// --- schools ---

type memSchoolRepo struct {
	schools      map[int]*model.School
	nextID       int
	studentCount map[int]int
}

func newMemSchoolRepo(schools ...*model.School) *memSchoolRepo {
	r := &memSchoolRepo{schools: map[int]*model.School{}, nextID: 1, studentCount: map[int]int{}}
	for _, s := range schools {
		if s.ID == 0 {
			s.ID = r.nextID
		}
		if s.ID >= r.nextID {
			r.nextID = s.ID + 1
		}
		r.schools[s.ID] = s
	}
	return r
}

func (r *memSchoolRepo) List() ([]model.School, error) {
	out := []model.School{}
	for _, s := range r.schools {
		out = append(out, *s)
	}
	return out, nil
}

func (r *memSchoolRepo) GetByID(id int) (*model.School, error) {
	s, ok := r.schools[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *memSchoolRepo) GetByNameFold(name string) (*model.School, error) {
	for _, s := range r.schools {
		if strings.EqualFold(s.Name, name) {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memSchoolRepo) Create(s *model.School) error {
	s.ID = r.nextID
	r.nextID++
	copied := *s
	r.schools[s.ID] = &copied
	return nil
}

func (r *memSchoolRepo) Update(s *model.School) error {
	copied := *s
	r.schools[s.ID] = &copied
	return nil
}

func (r *memSchoolRepo) Delete(id int) error {
	delete(r.schools, id)
	return nil
}

func (r *memSchoolRepo) CountStudents(schoolID int) (int, error) {
	return r.studentCount[schoolID], nil
}

// --- outreach ---

type memOutreachRepo struct {
	messages []model.OutreachMessage
	logs     []model.OutreachLog
	msgErr   error
	logErr   error
}

func (r *memOutreachRepo) CreateMessage(m *model.OutreachMessage) error {
	if r.msgErr != nil {
		return r.msgErr
	}
	m.ID = len(r.messages) + 1
	m.CreatedAt = time.Now()
	r.messages = append(r.messages, *m)
	return nil
}

func (r *memOutreachRepo) CreateLog(l *model.OutreachLog) error {
	if r.logErr != nil {
		return r.logErr
	}
	l.ID = len(r.logs) + 1
	l.CreatedAt = time.Now()
	r.logs = append(r.logs, *l)
	return nil
}

// --- events ---

type recordPublisher struct {
	topics   []string
	payloads []any
	err      error
}

func (p *recordPublisher) Publish(topic string, payload any) error {
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return nil
}
