package repositories

import (
	"database/sql"

	"github.com/hackmate/hackmate/internal/models"
)

type TeamMessageRepository struct {
	db *sql.DB
}

func NewTeamMessageRepository(db *sql.DB) *TeamMessageRepository {
	return &TeamMessageRepository{
		db: db,
	}
}

// Create creates a new message
func (r *TeamMessageRepository) Create(m *models.TeamMessage) error {
	query := `
		INSERT INTO team_messages (id, team_id, sender_id, content, message_type, reply_to)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var replyTo interface{}
	if m.ReplyTo != nil {
		replyTo = m.ReplyTo.String()
	}

	_, err := r.db.Exec(query,
		m.ID.String(),
		m.TeamID.String(),
		m.SenderID.String(),
		m.Content,
		m.MessageType,
		replyTo,
	)

	return err
}

// GetByID retrieves a message by ID within a team
func (r *TeamMessageRepository) GetByID(teamID, messageID string) (*models.TeamMessage, error) {
	query := `
		SELECT id, team_id, sender_id, content, message_type, is_edited, edited_at, reply_to, created_at, updated_at
		FROM team_messages
		WHERE id = ? AND team_id = ?
	`

	rows, err := r.db.Query(query, messageID, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}

	m := &models.TeamMessage{}
	var replyTo sql.NullString
	err = rows.Scan(&m.ID, &m.TeamID, &m.SenderID, &m.Content, &m.MessageType,
		&m.IsEdited, &m.EditedAt, &replyTo, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if replyTo.Valid {
		if id, err := parseUUID(replyTo.String); err == nil {
			m.ReplyTo = &id
		}
	}

	return m, nil
}

// ListByTeam returns a page of team messages in chronological order
func (r *TeamMessageRepository) ListByTeam(teamID string, page, pageSize int) ([]*models.TeamMessage, int, error) {
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM team_messages WHERE team_id = ?`, teamID).Scan(&total); err != nil {
		return nil, 0, err
	}

	if pageSize <= 0 {
		pageSize = 50
	}
	if page <= 0 {
		page = 1
	}

	query := `
		SELECT m.id, m.team_id, m.sender_id, m.content, m.message_type, m.is_edited, m.edited_at,
			m.reply_to, m.created_at, m.updated_at, u.name
		FROM team_messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.team_id = ?
		ORDER BY m.created_at ASC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.Query(query, teamID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var messages []*models.TeamMessage
	for rows.Next() {
		m := &models.TeamMessage{}
		var replyTo sql.NullString

		err := rows.Scan(&m.ID, &m.TeamID, &m.SenderID, &m.Content, &m.MessageType,
			&m.IsEdited, &m.EditedAt, &replyTo, &m.CreatedAt, &m.UpdatedAt, &m.SenderName)
		if err != nil {
			return nil, 0, err
		}

		if replyTo.Valid {
			if id, err := parseUUID(replyTo.String); err == nil {
				m.ReplyTo = &id
			}
		}

		messages = append(messages, m)
	}

	return messages, total, rows.Err()
}

// Update updates message content and edit flags
func (r *TeamMessageRepository) Update(m *models.TeamMessage) error {
	query := `
		UPDATE team_messages
		SET content = ?, is_edited = ?, edited_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.Exec(query, m.Content, m.IsEdited, m.EditedAt, m.ID.String())
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Delete deletes a message
func (r *TeamMessageRepository) Delete(teamID, messageID string) error {
	result, err := r.db.Exec(`DELETE FROM team_messages WHERE id = ? AND team_id = ?`, messageID, teamID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
