package service

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"user-dashboard-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const (
	msgUserRequired = "Name and Date of Birth are required"
	msgUserBadDate  = "Date of Birth must be a date in YYYY-MM-DD format"
	msgUserNotFound = "User not found"

	DefaultPageSize = 20
)

// inputDateLayouts are tried in order. The edit dialog of the dashboard sends
// back the display form it was given by ListUsers.
var inputDateLayouts = []string{entity.DateLayout, DisplayLayout, time.RFC3339}

// UserStore is the storage the record API runs against.
type UserStore interface {
	ListUsers(ctx context.Context, limit int) ([]entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	DeleteUser(ctx context.Context, id int) (*entity.User, error)
}

type UserService struct {
	repo      UserStore
	publisher EventPublisher
	location  *time.Location
	pageSize  int
	now       func() time.Time
}

// NewUserService creates a new instance of UserService. Ages are computed
// against the current day in location and ListUsers returns at most pageSize users.
func NewUserService(repo UserStore, publisher EventPublisher, location *time.Location, pageSize int) *UserService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &UserService{
		repo:      repo,
		publisher: publisher,
		location:  location,
		pageSize:  pageSize,
		now:       time.Now,
	}
}

// ListUsers returns the first page of users with display date and age filled in.
func (s *UserService) ListUsers(ctx context.Context) ([]entity.UserView, error) {
	users, err := s.repo.ListUsers(ctx, s.pageSize)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, &StorageError{Op: "list users", Err: err}
	}

	now := s.now()
	views := make([]entity.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, entity.UserView{
			ID:          u.ID,
			Name:        u.Name,
			DateOfBirth: DisplayDate(u.DateOfBirth, s.location),
			Age:         Age(u.DateOfBirth, now, s.location),
		})
	}
	return views, nil
}

// CreateUser validates in and appends a user with the next free id.
func (s *UserService) CreateUser(ctx context.Context, in entity.UserInput) (*entity.User, error) {
	user, err := parseUserInput(in)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, &StorageError{Op: "create user", Err: err}
	}

	s.publish(ctx, entity.UserCreated, created)
	return created, nil
}

// UpdateUser replaces name and date of birth of the user with id.
func (s *UserService) UpdateUser(ctx context.Context, id int, in entity.UserInput) (*entity.User, error) {
	user, err := parseUserInput(in)
	if err != nil {
		return nil, err
	}
	user.ID = id

	updated, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating user %d", id)
		return nil, storageErr("update user", err, msgUserNotFound)
	}

	s.publish(ctx, entity.UserUpdated, updated)
	return updated, nil
}

// DeleteUser removes the user with id. Every user with a greater id moves
// down by one, so ids held by callers are stale afterwards.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	deleted, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting user %d", id)
		return storageErr("delete user", err, msgUserNotFound)
	}

	s.publish(ctx, entity.UserDeleted, deleted)
	return nil
}

// publish never fails the request: the mutation is already committed.
func (s *UserService) publish(ctx context.Context, eventType string, user *entity.User) {
	event := entity.UserEvent{
		Type:        eventType,
		UserID:      user.ID,
		Name:        user.Name,
		DateOfBirth: user.DateOfBirth.Format(entity.DateLayout),
		OccurredAt:  s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn().Err(err).Str("key", EventKey(event)).Msg("Error publishing user event")
	}
}

func parseUserInput(in entity.UserInput) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	dob := strings.TrimSpace(in.DateOfBirth)
	if name == "" || dob == "" {
		return nil, &ValidationError{Message: msgUserRequired}
	}

	parsed, ok := parseDate(dob)
	if !ok {
		return nil, &ValidationError{Message: msgUserBadDate}
	}

	return &entity.User{Name: name, DateOfBirth: parsed}, nil
}

// parseDate keeps only the calendar date of s, at midnight UTC.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range inputDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
