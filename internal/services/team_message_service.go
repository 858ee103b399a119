package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/hackmate/hackmate/internal/models"
	"github.com/hackmate/hackmate/internal/repositories"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrNotMessageOwner = errors.New("only the sender can modify this message")
	ErrEmptyMessage    = errors.New("message content is required")
)

const maxMessageLength = 4000

type TeamMessageService struct {
	messageRepo    *repositories.TeamMessageRepository
	membershipRepo *repositories.TeamMembershipRepository
	teamRepo       *repositories.TeamRepository
	sanitizer      *bluemonday.Policy
}

func NewTeamMessageService(
	messageRepo *repositories.TeamMessageRepository,
	membershipRepo *repositories.TeamMembershipRepository,
	teamRepo *repositories.TeamRepository,
) *TeamMessageService {
	return &TeamMessageService{
		messageRepo:    messageRepo,
		membershipRepo: membershipRepo,
		teamRepo:       teamRepo,
		sanitizer:      bluemonday.StrictPolicy(),
	}
}

// Post sends a text message to the team chat. Content is stripped of any
// HTML before it is stored. Only active members can post.
func (s *TeamMessageService) Post(teamID, senderID, content string, replyTo string) (*models.TeamMessage, error) {
	if err := s.requireActiveMember(teamID, senderID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(s.sanitizer.Sanitize(content))
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if len(content) > maxMessageLength {
		return nil, errors.New("message is too long")
	}

	sender, err := uuid.Parse(senderID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}
	team, err := uuid.Parse(teamID)
	if err != nil {
		return nil, errors.New("invalid team id")
	}

	msg := models.NewTeamMessage(team, sender, content)
	if replyTo != "" {
		parent, err := s.messageRepo.GetByID(teamID, replyTo)
		if err != nil {
			return nil, ErrMessageNotFound
		}
		msg.ReplyTo = &parent.ID
	}

	if err := s.messageRepo.Create(msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// List returns team messages in chronological order, paginated. Only
// active members can read the chat.
func (s *TeamMessageService) List(teamID, userID string, page, pageSize int) ([]*models.TeamMessage, int, error) {
	if err := s.requireActiveMember(teamID, userID); err != nil {
		return nil, 0, err
	}

	return s.messageRepo.ListByTeam(teamID, page, pageSize)
}

// Edit rewrites a message's content, sender only
func (s *TeamMessageService) Edit(teamID, messageID, userID, content string) (*models.TeamMessage, error) {
	msg, err := s.messageRepo.GetByID(teamID, messageID)
	if err != nil {
		return nil, ErrMessageNotFound
	}
	if msg.SenderID.String() != userID {
		return nil, ErrNotMessageOwner
	}
	if msg.MessageType == models.MessageTypeSystem {
		return nil, errors.New("system messages cannot be edited")
	}

	content = strings.TrimSpace(s.sanitizer.Sanitize(content))
	if content == "" {
		return nil, ErrEmptyMessage
	}

	msg.Content = content
	msg.MarkEdited()
	if err := s.messageRepo.Update(msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// Delete removes a message. The sender or the team leader can delete.
func (s *TeamMessageService) Delete(teamID, messageID, userID string) error {
	msg, err := s.messageRepo.GetByID(teamID, messageID)
	if err != nil {
		return ErrMessageNotFound
	}

	if msg.SenderID.String() != userID {
		team, err := s.teamRepo.GetByID(teamID)
		if err != nil {
			return ErrTeamNotFound
		}
		if team.LeaderID.String() != userID {
			return ErrNotMessageOwner
		}
	}

	return s.messageRepo.Delete(teamID, messageID)
}

func (s *TeamMessageService) requireActiveMember(teamID, userID string) error {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return ErrTeamNotFound
	}
	if team.LeaderID.String() == userID {
		return nil
	}

	active, err := s.membershipRepo.ExistsWithStatus(teamID, userID, models.MembershipStatusActive)
	if err != nil {
		return err
	}
	if !active {
		return ErrNotActiveMember
	}

	return nil
}
