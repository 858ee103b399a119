package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hackmate/hackmate/internal/models"
	"github.com/hackmate/hackmate/internal/repositories"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamNameTaken      = errors.New("a team with this name already exists in this hackathon")
	ErrTeamFull           = errors.New("team is full")
	ErrNotTeamLeader      = errors.New("only the team leader can do this")
	ErrLeaderCannotLeave  = errors.New("the leader cannot leave the team")
	ErrAlreadyMember      = errors.New("already an active member of this team")
	ErrAlreadyRequested   = errors.New("a join request for this team is already pending")
	ErrNoPendingRequest   = errors.New("no pending join request found")
	ErrNotActiveMember    = errors.New("not an active member of this team")
	ErrCannotRemoveLeader = errors.New("the leader cannot be removed from the team")
)

type TeamService struct {
	teamRepo       *repositories.TeamRepository
	membershipRepo *repositories.TeamMembershipRepository
	messageRepo    *repositories.TeamMessageRepository
	hackathonRepo  *repositories.HackathonRepository
	userRepo       *repositories.UserRepository
}

func NewTeamService(
	teamRepo *repositories.TeamRepository,
	membershipRepo *repositories.TeamMembershipRepository,
	messageRepo *repositories.TeamMessageRepository,
	hackathonRepo *repositories.HackathonRepository,
	userRepo *repositories.UserRepository,
) *TeamService {
	return &TeamService{
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		messageRepo:    messageRepo,
		hackathonRepo:  hackathonRepo,
		userRepo:       userRepo,
	}
}

// CreateTeam creates a team and makes the creator its active leader
func (s *TeamService) CreateTeam(t *models.Team) error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("team name is required")
	}
	if t.MaxMembers < 1 || t.MaxMembers > 10 {
		return errors.New("team size must be between 1 and 10")
	}

	if _, err := s.hackathonRepo.GetByID(t.HackathonID.String()); err != nil {
		return errors.New("hackathon not found")
	}

	if err := s.teamRepo.Create(t); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrTeamNameTaken
		}
		return err
	}

	leader := models.NewLeaderMembership(t.ID, t.LeaderID)
	if err := s.membershipRepo.Create(leader); err != nil {
		return err
	}

	return s.teamRepo.UpdateStatus(t.ID.String())
}

// GetTeam returns a team with its active members
func (s *TeamService) GetTeam(teamID string) (*models.Team, []*models.TeamMembership, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, nil, ErrTeamNotFound
	}

	members, err := s.membershipRepo.ListByTeam(teamID, models.MembershipStatusActive)
	if err != nil {
		return nil, nil, err
	}

	return team, members, nil
}

// ListTeams returns teams matching the filter plus the total count
func (s *TeamService) ListTeams(filter repositories.TeamFilter) ([]*models.Team, int, error) {
	return s.teamRepo.List(filter)
}

// MyTeams returns teams the user leads or belongs to
func (s *TeamService) MyTeams(userID string) ([]*models.Team, error) {
	return s.teamRepo.ListByUser(userID)
}

// UpdateTeam applies leader-only edits to a team
func (s *TeamService) UpdateTeam(t *models.Team, actorID string) error {
	existing, err := s.teamRepo.GetByID(t.ID.String())
	if err != nil {
		return ErrTeamNotFound
	}
	if existing.LeaderID.String() != actorID {
		return ErrNotTeamLeader
	}
	if t.MaxMembers < existing.ActiveMemberCount {
		return fmt.Errorf("team already has %d active members", existing.ActiveMemberCount)
	}

	t.Status = existing.StatusForMemberCount(existing.ActiveMemberCount)
	if err := s.teamRepo.Update(t); err != nil {
		return err
	}

	return s.teamRepo.UpdateStatus(t.ID.String())
}

// DeleteTeam deletes a team, leader only
func (s *TeamService) DeleteTeam(teamID, actorID string) error {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return ErrTeamNotFound
	}
	if team.LeaderID.String() != actorID {
		return ErrNotTeamLeader
	}

	return s.teamRepo.Delete(teamID)
}

// RequestToJoin files a pending join request for the user. Full teams
// reject the request outright.
func (s *TeamService) RequestToJoin(teamID, userID, message string) (*models.TeamMembership, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, ErrTeamNotFound
	}
	if team.IsFull() {
		return nil, ErrTeamFull
	}

	if active, err := s.membershipRepo.ExistsWithStatus(teamID, userID, models.MembershipStatusActive); err != nil {
		return nil, err
	} else if active {
		return nil, ErrAlreadyMember
	}
	if pending, err := s.membershipRepo.ExistsWithStatus(teamID, userID, models.MembershipStatusPending); err != nil {
		return nil, err
	} else if pending {
		return nil, ErrAlreadyRequested
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}

	request := models.NewJoinRequest(team.ID, uid)
	request.InvitationMessage = message
	if err := s.membershipRepo.Create(request); err != nil {
		return nil, err
	}

	return request, nil
}

// ApproveJoinRequest activates a pending join request. Other pending
// memberships and open invitations for the user in the same hackathon are
// closed in the same transaction.
func (s *TeamService) ApproveJoinRequest(teamID, requestUserID, actorID string) error {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return ErrTeamNotFound
	}
	if team.LeaderID.String() != actorID {
		return ErrNotTeamLeader
	}
	if team.IsFull() {
		return ErrTeamFull
	}

	request, err := s.membershipRepo.GetByTeamUserAndStatus(teamID, requestUserID, models.MembershipStatusPending)
	if err != nil {
		return ErrNoPendingRequest
	}

	err = s.membershipRepo.ApproveWithExclusivity(request.ID.String(), requestUserID, team.HackathonID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoPendingRequest
	}
	if err != nil {
		return err
	}

	if err := s.teamRepo.UpdateStatus(teamID); err != nil {
		return err
	}

	s.postSystemMessage(team, requestUserID, "%s joined the team")
	return nil
}

// RejectJoinRequest declines a pending join request, leader only
func (s *TeamService) RejectJoinRequest(teamID, requestUserID, actorID string) error {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return ErrTeamNotFound
	}
	if team.LeaderID.String() != actorID {
		return ErrNotTeamLeader
	}

	request, err := s.membershipRepo.GetByTeamUserAndStatus(teamID, requestUserID, models.MembershipStatusPending)
	if err != nil {
		return ErrNoPendingRequest
	}

	request.Status = models.MembershipStatusDeclined
	return s.membershipRepo.UpdateStatus(request)
}

// PendingRequests lists pending join requests for a team, leader only
func (s *TeamService) PendingRequests(teamID, actorID string) ([]*models.TeamMembership, error) {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return nil, ErrTeamNotFound
	}
	if team.LeaderID.String() != actorID {
		return nil, ErrNotTeamLeader
	}

	return s.membershipRepo.ListByTeam(teamID, models.MembershipStatusPending)
}

// RemoveMember removes an active member, leader only. The leader cannot
// remove themselves.
func (s *TeamService) RemoveMember(teamID, memberUserID, actorID string) error {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return ErrTeamNotFound
	}
	if team.LeaderID.String() != actorID {
		return ErrNotTeamLeader
	}
	if team.LeaderID.String() == memberUserID {
		return ErrCannotRemoveLeader
	}

	membership, err := s.membershipRepo.GetByTeamUserAndStatus(teamID, memberUserID, models.MembershipStatusActive)
	if err != nil {
		return ErrNotActiveMember
	}

	membership.Leave()
	membership.Status = models.MembershipStatusRemoved
	if err := s.membershipRepo.UpdateStatus(membership); err != nil {
		return err
	}

	if err := s.teamRepo.UpdateStatus(teamID); err != nil {
		return err
	}

	s.postSystemMessage(team, memberUserID, "%s was removed from the team")
	return nil
}

// LeaveTeam lets an active member leave. Leaders cannot leave; they must
// delete the team instead.
func (s *TeamService) LeaveTeam(teamID, userID string) error {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return ErrTeamNotFound
	}
	if team.LeaderID.String() == userID {
		return ErrLeaderCannotLeave
	}

	membership, err := s.membershipRepo.GetByTeamUserAndStatus(teamID, userID, models.MembershipStatusActive)
	if err != nil {
		return ErrNotActiveMember
	}

	membership.Leave()
	if err := s.membershipRepo.UpdateStatus(membership); err != nil {
		return err
	}

	if err := s.teamRepo.UpdateStatus(teamID); err != nil {
		return err
	}

	s.postSystemMessage(team, userID, "%s left the team")
	return nil
}

// postSystemMessage records a membership event in the team chat. Failures
// here never fail the triggering action.
func (s *TeamService) postSystemMessage(team *models.Team, subjectUserID, format string) {
	name := "A member"
	if user, err := s.userRepo.GetByID(subjectUserID); err == nil {
		name = user.Name
	}

	msg := models.NewTeamMessage(team.ID, team.LeaderID, fmt.Sprintf(format, name))
	msg.MessageType = models.MessageTypeSystem
	_ = s.messageRepo.Create(msg)
}
