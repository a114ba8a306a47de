package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mtilda/chipin/internal/models"
	"github.com/mtilda/chipin/internal/storage"
)

// GroupService manages groups, their membership, and their trips.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group. The creator is always a member, whether or
// not they appear in memberIDs.
func (s *GroupService) CreateGroup(ctx context.Context, name, creatorID string, memberIDs []string) (*models.Group, error) {
	members := append([]string{creatorID}, memberIDs...)
	members = dedupe(members)

	if err := s.requireUsersExist(ctx, members); err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:      name,
		MemberIDs: members,
		CreatedBy: creatorID,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	slog.Info("group created", "group_id", group.ID, "name", group.Name, "members", len(group.MemberIDs))
	return group, nil
}

// GetGroup returns the group if the caller is a member.
func (s *GroupService) GetGroup(ctx context.Context, groupID, callerID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(callerID) {
		return nil, ErrNotGroupMember
	}
	return group, nil
}

// ListGroups returns every group the user belongs to.
func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.ListGroupsForUser(ctx, userID)
}

// AddMembers adds existing users to a group.
func (s *GroupService) AddMembers(ctx context.Context, groupID string, userIDs []string) error {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return err
	}
	if err := s.requireUsersExist(ctx, userIDs); err != nil {
		return err
	}
	if err := s.store.AddGroupMembers(ctx, groupID, userIDs); err != nil {
		return err
	}

	slog.Info("group members added", "group_id", groupID, "added", len(userIDs))
	return nil
}

// CreateTrip creates a trip under a group.
func (s *GroupService) CreateTrip(ctx context.Context, groupID, name string) (*models.Trip, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	trip := &models.Trip{GroupID: groupID, Name: name}
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, err
	}

	slog.Info("trip created", "trip_id", trip.ID, "group_id", groupID, "name", name)
	return trip, nil
}

// ListTrips returns the group's trips, newest first.
func (s *GroupService) ListTrips(ctx context.Context, groupID string) ([]*models.Trip, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListTripsByGroup(ctx, groupID)
}

// requireUsersExist verifies every ID resolves to a registered user.
func (s *GroupService) requireUsersExist(ctx context.Context, userIDs []string) error {
	users, err := s.store.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return err
	}
	for _, id := range userIDs {
		if _, ok := users[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownUser, id)
		}
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
