package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hackmate/hackmate/internal/repositories"
)

// ExportService renders hackathon data as downloadable spreadsheets.
type ExportService struct {
	applicationRepo *repositories.ApplicationRepository
	hackathonRepo   *repositories.HackathonRepository
	userRepo        *repositories.UserRepository
}

func NewExportService(
	applicationRepo *repositories.ApplicationRepository,
	hackathonRepo *repositories.HackathonRepository,
	userRepo *repositories.UserRepository,
) *ExportService {
	return &ExportService{
		applicationRepo: applicationRepo,
		hackathonRepo:   hackathonRepo,
		userRepo:        userRepo,
	}
}

var applicationExportHeader = []string{
	"Name", "Email", "Status", "Skills", "Preferred Roles",
	"Looking For Team", "Open To Remote", "Project Idea", "Submitted At",
}

// ExportApplications builds an xlsx workbook of a hackathon's
// applications. Restricted to the hackathon's creator.
func (s *ExportService) ExportApplications(hackathonID, organizerID string) (*bytes.Buffer, string, error) {
	hackathon, err := s.hackathonRepo.GetByID(hackathonID)
	if err != nil {
		return nil, "", ErrNotHackathonCreator
	}
	if !hackathon.IsUserCreated || hackathon.CreatedBy == nil || hackathon.CreatedBy.String() != organizerID {
		return nil, "", ErrNotHackathonCreator
	}

	applications, err := s.applicationRepo.ListByHackathon(hackathonID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Applications"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range applicationExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for row, a := range applications {
		values := []interface{}{
			"", "", a.Status,
			strings.Join(a.Skills, ", "),
			strings.Join(a.PreferredRoles, ", "),
			a.LookingForTeam,
			a.OpenToRemote,
			a.ProjectIdea,
			"",
		}

		if user, err := s.userRepo.GetByID(a.UserID.String()); err == nil {
			values[0] = user.Name
			values[1] = user.Email
		}
		if a.SubmittedAt != nil {
			values[8] = a.SubmittedAt.Format("2006-01-02 15:04")
		}

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s-applications.xlsx", slugify(hackathon.Title))
	return buf, filename, nil
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "hackathon"
	}
	return b.String()
}
