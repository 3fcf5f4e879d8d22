package service

import (
	"strings"

	"homeaway/internal/db"
	"homeaway/internal/entities"
	apperrors "homeaway/internal/errors"
)

type ProfileStore interface {
	GetProfileByID(id int) (*db.Profile, error)
	GetProfileByUsername(username string) (*db.Profile, error)
	CreateProfile(p *db.Profile) error
	UpdateProfile(p *db.Profile) error
}

type ProfileService struct {
	profiles ProfileStore
}

func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) GetProfile(profileID int) (*entities.ProfileResponse, error) {
	profile, err := s.profiles.GetProfileByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NewNotFound("Please create a profile first")
	}
	return toProfileResponse(profile), nil
}

// CreateProfile records the identity's profile. The profile id mirrors the
// identity id supplied by the auth layer.
func (s *ProfileService) CreateProfile(profileID int, email string, req entities.ProfileRequest) (*entities.ProfileResponse, error) {
	if err := validateProfileRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.profiles.GetProfileByID(profileID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewValidation("Profile already exists")
	}

	taken, err := s.profiles.GetProfileByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, apperrors.NewValidation("Username already exists")
	}

	profile := &db.Profile{
		ID:           profileID,
		Email:        email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Phone:        req.Phone,
		ProfileImage: req.ProfileImage,
	}
	if err := s.profiles.CreateProfile(profile); err != nil {
		return nil, err
	}
	return toProfileResponse(profile), nil
}

func (s *ProfileService) UpdateProfile(profileID int, req entities.ProfileRequest) (*entities.ProfileResponse, error) {
	if err := validateProfileRequest(req); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetProfileByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NewNotFound("Please create a profile first")
	}

	if req.Username != profile.Username {
		taken, err := s.profiles.GetProfileByUsername(req.Username)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, apperrors.NewValidation("Username already exists")
		}
	}

	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.Username = req.Username
	profile.Phone = req.Phone
	profile.ProfileImage = req.ProfileImage
	if err := s.profiles.UpdateProfile(profile); err != nil {
		return nil, err
	}
	return toProfileResponse(profile), nil
}

func validateProfileRequest(req entities.ProfileRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return apperrors.NewValidation("First name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return apperrors.NewValidation("Last name is required")
	}
	username := strings.TrimSpace(req.Username)
	if len(username) < 2 || len(username) > 30 {
		return apperrors.NewValidation("Username must be between 2 and 30 characters")
	}
	return nil
}

func toProfileResponse(p *db.Profile) *entities.ProfileResponse {
	return &entities.ProfileResponse{
		ID:           p.ID,
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Username:     p.Username,
		Phone:        p.Phone,
		ProfileImage: p.ProfileImage,
		CreatedAt:    p.CreatedAt,
	}
}
