package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hackmate/hackmate/internal/models"
	"github.com/hackmate/hackmate/internal/repositories"
)

var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationClosed   = errors.New("invitation is no longer open")
	ErrInvitationExpired  = errors.New("invitation has expired")
	ErrNotInvitee         = errors.New("this invitation is not addressed to you")
	ErrInviteeNotFound    = errors.New("no user with this email")
	ErrAlreadyInvited     = errors.New("this user already has an open invitation to the team")
	ErrNotTeamMember      = errors.New("only team members can invite")
)

type TeamInvitationService struct {
	invitationRepo *repositories.TeamInvitationRepository
	teamRepo       *repositories.TeamRepository
	membershipRepo *repositories.TeamMembershipRepository
	messageRepo    *repositories.TeamMessageRepository
	userRepo       *repositories.UserRepository
}

func NewTeamInvitationService(
	invitationRepo *repositories.TeamInvitationRepository,
	teamRepo *repositories.TeamRepository,
	membershipRepo *repositories.TeamMembershipRepository,
	messageRepo *repositories.TeamMessageRepository,
	userRepo *repositories.UserRepository,
) *TeamInvitationService {
	return &TeamInvitationService{
		invitationRepo: invitationRepo,
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		messageRepo:    messageRepo,
		userRepo:       userRepo,
	}
}

// Invite invites a user to a team by email. Invitations from the leader
// go straight to the invitee; invitations proposed by other members wait
// for the leader's approval first.
func (s *TeamInvitationService) Invite(teamID, inviterID, inviteeEmail, message string) (*models.TeamInvitation, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, ErrTeamNotFound
	}
	if team.IsFull() {
		return nil, ErrTeamFull
	}

	fromLeader := team.LeaderID.String() == inviterID
	if !fromLeader {
		member, err := s.membershipRepo.ExistsWithStatus(teamID, inviterID, models.MembershipStatusActive)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, ErrNotTeamMember
		}
	}

	invitee, err := s.userRepo.GetByEmail(models.NormalizeEmail(inviteeEmail))
	if err != nil {
		return nil, ErrInviteeNotFound
	}

	if active, err := s.membershipRepo.ExistsWithStatus(teamID, invitee.ID.String(), models.MembershipStatusActive); err != nil {
		return nil, err
	} else if active {
		return nil, ErrAlreadyMember
	}

	if open, err := s.invitationRepo.HasOpen(teamID, invitee.ID.String()); err != nil {
		return nil, err
	} else if open {
		return nil, ErrAlreadyInvited
	}

	inviter, err := s.userRepo.GetByID(inviterID)
	if err != nil {
		return nil, errors.New("inviter not found")
	}

	invitation := models.NewTeamInvitation(team.ID, inviter.ID, invitee.ID, fromLeader)
	invitation.Message = message
	if err := s.invitationRepo.Create(invitation); err != nil {
		return nil, err
	}

	return invitation, nil
}

// ApproveProposed moves a member-proposed invitation to pending so the
// invitee can see it. Leader only.
func (s *TeamInvitationService) ApproveProposed(invitationID, actorID string) error {
	_, team, err := s.getOpenWithTeam(invitationID)
	if err != nil {
		return err
	}
	if team.LeaderID.String() != actorID {
		return ErrNotTeamLeader
	}
	if team.IsFull() {
		return ErrTeamFull
	}

	err = s.invitationRepo.UpdateStatus(invitationID, models.InvitationStatusLeaderPending, models.InvitationStatusPending, nil)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvitationClosed
	}
	return err
}

// RejectProposed rejects a member-proposed invitation before the invitee
// ever sees it. Leader only.
func (s *TeamInvitationService) RejectProposed(invitationID, actorID string) error {
	_, team, err := s.getOpenWithTeam(invitationID)
	if err != nil {
		return err
	}
	if team.LeaderID.String() != actorID {
		return ErrNotTeamLeader
	}

	now := time.Now()
	err = s.invitationRepo.UpdateStatus(invitationID, models.InvitationStatusLeaderPending, models.InvitationStatusRejected, &now)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvitationClosed
	}
	return err
}

// Accept accepts a pending invitation on behalf of the invitee. Joining
// is exclusive per hackathon: the user's other pending requests and open
// invitations there are closed in the same transaction.
func (s *TeamInvitationService) Accept(invitationID, actorID string) error {
	invitation, team, err := s.getOpenWithTeam(invitationID)
	if err != nil {
		return err
	}
	if invitation.InviteeID.String() != actorID {
		return ErrNotInvitee
	}
	if invitation.Status != models.InvitationStatusPending {
		return ErrInvitationClosed
	}

	now := time.Now()
	if invitation.IsExpired(now) {
		_ = s.invitationRepo.UpdateStatus(invitationID, models.InvitationStatusPending, models.InvitationStatusExpired, &now)
		return ErrInvitationExpired
	}
	if team.IsFull() {
		return ErrTeamFull
	}

	membership := &models.TeamMembership{
		ID:                 uuid.New(),
		TeamID:             invitation.TeamID,
		UserID:             invitation.InviteeID,
		Role:               models.MembershipRoleMember,
		Status:             models.MembershipStatusActive,
		SkillsContribution: []string{},
		InvitedAt:          &invitation.CreatedAt,
		InvitedBy:          &invitation.InviterID,
		InvitationMessage:  invitation.Message,
	}

	err = s.membershipRepo.AcceptInvitationWithExclusivity(invitation, membership, team.HackathonID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvitationClosed
	}
	if err != nil {
		return err
	}

	if err := s.teamRepo.UpdateStatus(team.ID.String()); err != nil {
		return err
	}

	s.postJoinMessage(team, invitation.InviteeID.String())
	return nil
}

// Decline declines a pending invitation on behalf of the invitee
func (s *TeamInvitationService) Decline(invitationID, actorID string) error {
	invitation, _, err := s.getOpenWithTeam(invitationID)
	if err != nil {
		return err
	}
	if invitation.InviteeID.String() != actorID {
		return ErrNotInvitee
	}

	now := time.Now()
	err = s.invitationRepo.UpdateStatus(invitationID, models.InvitationStatusPending, models.InvitationStatusDeclined, &now)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvitationClosed
	}
	return err
}

// SentInvitations returns invitations the user has sent
func (s *TeamInvitationService) SentInvitations(userID string) ([]*models.TeamInvitation, error) {
	return s.invitationRepo.ListSent(userID)
}

// ReceivedInvitations returns the user's pending invitations
func (s *TeamInvitationService) ReceivedInvitations(userID string) ([]*models.TeamInvitation, error) {
	return s.invitationRepo.ListReceived(userID)
}

// ProposedInvitations returns member-proposed invitations awaiting the
// leader's decision, across the teams the user leads
func (s *TeamInvitationService) ProposedInvitations(leaderID string) ([]*models.TeamInvitation, error) {
	return s.invitationRepo.ListLeaderPending(leaderID)
}

// ExpireOverdue sweeps invitations past their expiry time
func (s *TeamInvitationService) ExpireOverdue() (int64, error) {
	return s.invitationRepo.ExpireOverdue(time.Now())
}

func (s *TeamInvitationService) getOpenWithTeam(invitationID string) (*models.TeamInvitation, *models.Team, error) {
	invitation, err := s.invitationRepo.GetByID(invitationID)
	if err != nil {
		return nil, nil, ErrInvitationNotFound
	}

	team, err := s.teamRepo.GetByID(invitation.TeamID.String())
	if err != nil {
		return nil, nil, ErrTeamNotFound
	}

	return invitation, team, nil
}

func (s *TeamInvitationService) postJoinMessage(team *models.Team, userID string) {
	name := "A member"
	if user, err := s.userRepo.GetByID(userID); err == nil {
		name = user.Name
	}

	msg := models.NewTeamMessage(team.ID, team.LeaderID, name+" joined the team")
	msg.MessageType = models.MessageTypeSystem
	_ = s.messageRepo.Create(msg)
}
