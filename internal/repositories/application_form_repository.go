package repositories

import (
	"database/sql"

	"github.com/hackmate/hackmate/internal/models"
)

type ApplicationFormRepository struct {
	db *sql.DB
}

func NewApplicationFormRepository(db *sql.DB) *ApplicationFormRepository {
	return &ApplicationFormRepository{
		db: db,
	}
}

// UpsertForm creates a hackathon's form or overwrites the existing one.
// The one-per-hackathon constraint lives in the schema.
func (r *ApplicationFormRepository) UpsertForm(f *models.ApplicationForm) error {
	query := `
		INSERT INTO application_forms (id, hackathon_id, requires_portfolio, requires_resume,
			requires_github, requires_linkedin, custom_question_1, custom_question_2,
			custom_question_3, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hackathon_id) DO UPDATE SET
			requires_portfolio = excluded.requires_portfolio,
			requires_resume = excluded.requires_resume,
			requires_github = excluded.requires_github,
			requires_linkedin = excluded.requires_linkedin,
			custom_question_1 = excluded.custom_question_1,
			custom_question_2 = excluded.custom_question_2,
			custom_question_3 = excluded.custom_question_3,
			is_active = excluded.is_active,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(query,
		f.ID.String(),
		f.HackathonID.String(),
		f.RequiresPortfolio,
		f.RequiresResume,
		f.RequiresGithub,
		f.RequiresLinkedin,
		f.CustomQuestion1,
		f.CustomQuestion2,
		f.CustomQuestion3,
		f.IsActive,
	)

	return err
}

// GetFormByHackathon retrieves a hackathon's application form
func (r *ApplicationFormRepository) GetFormByHackathon(hackathonID string) (*models.ApplicationForm, error) {
	query := `
		SELECT id, hackathon_id, requires_portfolio, requires_resume, requires_github,
			requires_linkedin, custom_question_1, custom_question_2, custom_question_3,
			is_active, created_at, updated_at
		FROM application_forms
		WHERE hackathon_id = ?
	`

	f := &models.ApplicationForm{}
	err := r.db.QueryRow(query, hackathonID).Scan(
		&f.ID, &f.HackathonID, &f.RequiresPortfolio, &f.RequiresResume, &f.RequiresGithub,
		&f.RequiresLinkedin, &f.CustomQuestion1, &f.CustomQuestion2, &f.CustomQuestion3,
		&f.IsActive, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// UpsertResponse creates an application's response row or overwrites the
// existing answers
func (r *ApplicationFormRepository) UpsertResponse(resp *models.ApplicationResponse) error {
	query := `
		INSERT INTO application_responses (id, application_id, custom_answer_1,
			custom_answer_2, custom_answer_3)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(application_id) DO UPDATE SET
			custom_answer_1 = excluded.custom_answer_1,
			custom_answer_2 = excluded.custom_answer_2,
			custom_answer_3 = excluded.custom_answer_3,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(query,
		resp.ID.String(),
		resp.ApplicationID.String(),
		resp.CustomAnswer1,
		resp.CustomAnswer2,
		resp.CustomAnswer3,
	)

	return err
}

// GetResponseByApplication retrieves the answers attached to an application
func (r *ApplicationFormRepository) GetResponseByApplication(applicationID string) (*models.ApplicationResponse, error) {
	query := `
		SELECT id, application_id, custom_answer_1, custom_answer_2, custom_answer_3,
			created_at, updated_at
		FROM application_responses
		WHERE application_id = ?
	`

	resp := &models.ApplicationResponse{}
	err := r.db.QueryRow(query, applicationID).Scan(
		&resp.ID, &resp.ApplicationID, &resp.CustomAnswer1, &resp.CustomAnswer2,
		&resp.CustomAnswer3, &resp.CreatedAt, &resp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return resp, nil
}
