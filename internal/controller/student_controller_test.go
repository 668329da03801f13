package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/glowpoint/recruiting-backend/internal/controller"
	"github.com/glowpoint/recruiting-backend/internal/model"
	"github.com/glowpoint/recruiting-backend/internal/service"
)

// --- stub repositories ---

type stubStudentRepo struct {
	created *model.Student
}

func (r *stubStudentRepo) List(schoolID, campaignID *int) ([]model.Student, error) {
	return []model.Student{}, nil
}
func (r *stubStudentRepo) ListByIDs(ids []int) ([]model.Student, error) { return nil, nil }
func (r *stubStudentRepo) GetByID(id int) (*model.Student, error) {
	if r.created != nil && r.created.ID == id {
		return r.created, nil
	}
	return nil, nil
}
func (r *stubStudentRepo) Create(s *model.Student) error {
	s.ID = 1
	s.CreatedAt = time.Now()
	r.created = s
	return nil
}
func (r *stubStudentRepo) Update(s *model.Student) error { return nil }
func (r *stubStudentRepo) Delete(id int) error           { return nil }
func (r *stubStudentRepo) ExistsContactInCampaign(campaignID int, email, phone string) (bool, error) {
	return false, nil
}
func (r *stubStudentRepo) MarkContacted(id int, at time.Time) error { return nil }

type stubSchoolRepo struct{}

func (r *stubSchoolRepo) List() ([]model.School, error) { return nil, nil }
func (r *stubSchoolRepo) GetByID(id int) (*model.School, error) {
	if id == 1 {
		return &model.School{ID: 1, Name: "Lincoln High School"}, nil
	}
	return nil, nil
}
func (r *stubSchoolRepo) GetByNameFold(name string) (*model.School, error) { return nil, nil }
func (r *stubSchoolRepo) Create(s *model.School) error                     { return nil }
func (r *stubSchoolRepo) Update(s *model.School) error                     { return nil }
func (r *stubSchoolRepo) Delete(id int) error                              { return nil }
func (r *stubSchoolRepo) CountStudents(schoolID int) (int, error)          { return 0, nil }

type stubCampaignRepo struct {
	active *model.Campaign
}

func (r *stubCampaignRepo) List() ([]model.Campaign, error)         { return nil, nil }
func (r *stubCampaignRepo) GetByID(id int) (*model.Campaign, error) { return r.active, nil }
func (r *stubCampaignRepo) GetActive() (*model.Campaign, error)     { return r.active, nil }
func (r *stubCampaignRepo) Create(c *model.Campaign) error          { return nil }
func (r *stubCampaignRepo) Activate(id int) error                   { return nil }
func (r *stubCampaignRepo) Deactivate(id int) error                 { return nil }
func (r *stubCampaignRepo) Delete(id int) error                     { return nil }
func (r *stubCampaignRepo) CountStudents(campaignID int) (int, error) {
	return 0, nil
}

func newStudentController(campaigns *stubCampaignRepo) *controller.StudentController {
	log := zap.NewNop().Sugar()
	return &controller.StudentController{
		IntakeService: &service.IntakeService{
			StudentRepo:  &stubStudentRepo{},
			SchoolRepo:   &stubSchoolRepo{},
			CampaignRepo: campaigns,
			Log:          log,
		},
		StudentService: &service.StudentService{StudentRepo: &stubStudentRepo{}, Log: log},
		Validate:       validator.New(),
		Log:            log,
	}
}

func postIntake(t *testing.T, ctrl *controller.StudentController, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/students", bytes.NewReader(b))
	w := httptest.NewRecorder()
	ctrl.Intake(w, req)
	return w
}

func TestIntakeHandlerCreatesStudent(t *testing.T) {
	ctrl := newStudentController(&stubCampaignRepo{
		active: &model.Campaign{ID: 1, Name: "Spring 2026", IsActive: true},
	})

	w := postIntake(t, ctrl, map[string]any{
		"first_name":       "Emily",
		"last_name":        "Garcia",
		"phone":            "(602) 555-1111",
		"school_id":        1,
		"area_of_interest": "COSMETOLOGY",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var student model.Student
	require.NoError(t, json.NewDecoder(w.Body).Decode(&student))
	assert.Equal(t, "Emily", student.FirstName)
	require.NotNil(t, student.Phone)
	assert.Equal(t, "6025551111", *student.Phone)
	assert.Equal(t, 1, student.CampaignID)
}

func TestIntakeHandlerRejectsMissingFields(t *testing.T) {
	ctrl := newStudentController(&stubCampaignRepo{
		active: &model.Campaign{ID: 1, Name: "Spring 2026", IsActive: true},
	})

	w := postIntake(t, ctrl, map[string]any{
		"first_name":       "Emily",
		"school_id":        1,
		"area_of_interest": "COSMETOLOGY",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Missing required fields", resp["error"])
}

func TestIntakeHandlerWithoutActiveCampaign(t *testing.T) {
	ctrl := newStudentController(&stubCampaignRepo{})

	w := postIntake(t, ctrl, map[string]any{
		"first_name":       "Emily",
		"last_name":        "Garcia",
		"phone":            "(602) 555-1111",
		"school_id":        1,
		"area_of_interest": "COSMETOLOGY",
	})

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "no active campaign", resp["error"])
}

func TestIntakeHandlerRejectsInvalidJSON(t *testing.T) {
	ctrl := newStudentController(&stubCampaignRepo{})

	req := httptest.NewRequest("POST", "/students", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	ctrl.Intake(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
