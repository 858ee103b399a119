package models

import (
	"time"

	"github.com/google/uuid"
)

// Message types
const (
	MessageTypeText   = "text"
	MessageTypeSystem = "system"
)

type TeamMessage struct {
	ID       uuid.UUID `json:"id"`
	TeamID   uuid.UUID `json:"team_id"`
	SenderID uuid.UUID `json:"sender_id"`

	Content     string `json:"content"`
	MessageType string `json:"message_type"`

	IsEdited bool       `json:"is_edited"`
	EditedAt *time.Time `json:"edited_at,omitempty"`

	ReplyTo *uuid.UUID `json:"reply_to,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// SenderName is joined in by queries
	SenderName string `json:"sender_name,omitempty"`
}

// NewTeamMessage creates a text message
func NewTeamMessage(teamID, senderID uuid.UUID, content string) *TeamMessage {
	return &TeamMessage{
		ID:          uuid.New(),
		TeamID:      teamID,
		SenderID:    senderID,
		Content:     content,
		MessageType: MessageTypeText,
	}
}

// MarkEdited flags the message as edited
func (m *TeamMessage) MarkEdited() {
	now := time.Now()
	m.IsEdited = true
	m.EditedAt = &now
}
