package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/todo-api/internal/apperror"
	"github.com/sakif/todo-api/internal/model"
	"github.com/sakif/todo-api/internal/repository"
)

// ProfileService handles business logic for the standalone user-profile
// resource. Unlike todos there is no ownership and no authentication — it's
// an address-book-style CRUD store.
type ProfileService struct {
	repo   repository.UserProfileRepository
	logger *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(repo repository.UserProfileRepository, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:   repo,
		logger: logger,
	}
}

// List returns all profiles.
func (s *ProfileService) List(ctx context.Context) ([]model.UserProfile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing user profiles: %w", err)
	}
	return profiles, nil
}

// Get returns a single profile, or not-found.
func (s *ProfileService) Get(ctx context.Context, id int64) (*model.UserProfile, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a new profile.
func (s *ProfileService) Create(ctx context.Context, req model.UserProfileRequest) (*model.UserProfile, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, apperror.ValidationFailed(errs)
	}

	profile := &model.UserProfile{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		BirthDate: req.BirthDate,
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("creating user profile: %w", err)
	}

	s.logger.Info("user profile created", slog.Int64("id", profile.ID))

	return profile, nil
}

// Update replaces all mutable fields of an existing profile.
func (s *ProfileService) Update(ctx context.Context, id int64, req model.UserProfileRequest) error {
	if errs := req.Validate(); len(errs) > 0 {
		return apperror.ValidationFailed(errs)
	}

	profile := &model.UserProfile{
		ID:        id,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		BirthDate: req.BirthDate,
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return err
	}

	s.logger.Info("user profile updated", slog.Int64("id", id))

	return nil
}

// Delete removes a profile.
func (s *ProfileService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user profile deleted", slog.Int64("id", id))

	return nil
}
