package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hotelworks/hotel-api/internal/model"
	"github.com/hotelworks/hotel-api/internal/repository"
	apperrors "github.com/hotelworks/hotel-api/pkg/errors"
	"github.com/hotelworks/hotel-api/pkg/security"
)

type Service struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	hasher   security.PasswordHasher
}

func NewService(users repository.UserRepository, profiles repository.ProfileRepository, hasher security.PasswordHasher) *Service {
	return &Service{
		users:    users,
		profiles: profiles,
		hasher:   hasher,
	}
}

func (s *Service) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if existing, _ := s.users.GetByUsername(ctx, req.Username); existing != nil {
		return nil, apperrors.BadRequest("username already taken", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("password does not meet requirements", err)
	}

	user := &model.User{
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		IsStaff:      true,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.Get(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.users.List(ctx)
}

func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) CreateProfile(ctx context.Context, req *model.CreateProfileRequest, createdBy *uuid.UUID) (*model.Profile, error) {
	if _, err := s.users.Get(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	profile := &model.Profile{
		FullName:     req.FullName,
		UserID:       req.UserID,
		DepartmentID: req.DepartmentID,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		Address:      req.Address,
		GenderID:     req.GenderID,
		CreatedBy:    createdBy,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	return s.profiles.Get(ctx, id)
}

func (s *Service) GetProfileByUser(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) (*model.Profile, error) {
	profile, err := s.profiles.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.DepartmentID != nil {
		profile.DepartmentID = req.DepartmentID
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = *req.PhoneNumber
	}
	if req.Email != nil {
		profile.Email = *req.Email
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) ListProfiles(ctx context.Context, departmentID *uuid.UUID) ([]*model.Profile, error) {
	return s.profiles.List(ctx, departmentID)
}

func (s *Service) AssignRole(ctx context.Context, req *model.AssignRoleRequest, createdBy *uuid.UUID) (*model.ProfileRole, error) {
	pr := &model.ProfileRole{
		ProfileID: req.ProfileID,
		RoleID:    req.RoleID,
		IsActive:  true,
		CreatedBy: createdBy,
	}
	if err := s.profiles.AssignRole(ctx, pr); err != nil {
		return nil, err
	}
	return pr, nil
}

func (s *Service) DeactivateRole(ctx context.Context, profileID, roleID uuid.UUID) error {
	return s.profiles.DeactivateRole(ctx, profileID, roleID)
}

func (s *Service) CreateDepartment(ctx context.Context, name string) (*model.Department, error) {
	dept := &model.Department{Name: name}
	if err := s.profiles.CreateDepartment(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	return s.profiles.ListDepartments(ctx)
}

func (s *Service) CreateRole(ctx context.Context, name string) (*model.Role, error) {
	role := &model.Role{Name: name}
	if err := s.profiles.CreateRole(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *Service) ListRoles(ctx context.Context) ([]*model.Role, error) {
	return s.profiles.ListRolesCatalog(ctx)
}
