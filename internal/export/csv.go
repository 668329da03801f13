// internal/export/csv.go
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/glowpoint/recruiting-backend/internal/model"
)

var studentHeader = []string{
	"ID", "First Name", "Last Name", "Email", "Phone", "Area of Interest",
	"School", "Campaign", "Contacted", "Contacted At",
	"Visit Completed", "Visit Completed At", "Created At",
}

func orEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// WriteStudents renders the student read model as CSV. encoding/csv applies
// standard quoting (double-quote doubling) where needed.
func WriteStudents(w io.Writer, students []model.Student) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(studentHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, s := range students {
		schoolName := ""
		if s.School != nil {
			schoolName = s.School.Name
		}
		campaignName := ""
		if s.Campaign != nil {
			campaignName = s.Campaign.Name
		}

		record := []string{
			strconv.Itoa(s.ID),
			s.FirstName,
			s.LastName,
			orEmpty(s.Email),
			orEmpty(s.Phone),
			string(s.AreaOfInterest),
			schoolName,
			campaignName,
			strconv.FormatBool(s.Contacted),
			timeOrEmpty(s.ContactedAt),
			strconv.FormatBool(s.VisitCompleted),
			timeOrEmpty(s.VisitCompletedAt),
			s.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
