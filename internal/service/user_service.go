package service

import (
	"context"
	"errors"
	"time"

	"angus-connect-be/internal/dto"
	"angus-connect-be/internal/entity"
	"angus-connect-be/internal/repository/specification"
	"angus-connect-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	AssignRole(ctx context.Context, req *dto.AssignRoleRequest) error
	RevokeRole(ctx context.Context, req *dto.AssignRoleRequest) error
	ListMembers(ctx context.Context) ([]*dto.UserProfileResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

func (s *userService) toProfileResponse(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User) (*dto.UserProfileResponse, error) {
	roles, err := uow.UserRepository().FindRoles(ctx, user.Id)
	if err != nil {
		return nil, err
	}

	avatarURL := ""
	if user.AvatarURL != nil {
		avatarURL = *user.AvatarURL
	}

	return &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		Nombre:    user.Nombre,
		Roles:     rolesToStrings(roles),
		Status:    string(user.Status),
		AvatarURL: avatarURL,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return s.toProfileResponse(ctx, uow, user)
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	user.Nombre = req.Nombre
	if req.AvatarURL != "" {
		user.AvatarURL = &req.AvatarURL
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	return s.toProfileResponse(ctx, uow, user)
}

func (s *userService) AssignRole(ctx context.Context, req *dto.AssignRoleRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: req.UserId})
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	role := entity.AppRole(req.Role)
	has, err := uow.UserRepository().HasRole(ctx, req.UserId, role)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	assignment := &entity.RoleAssignment{
		Id:        uuid.New(),
		UserId:    req.UserId,
		Role:      role,
		CreatedAt: time.Now(),
	}
	return uow.UserRepository().AssignRole(ctx, assignment)
}

func (s *userService) RevokeRole(ctx context.Context, req *dto.AssignRoleRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UserRepository().RevokeRole(ctx, req.UserId, entity.AppRole(req.Role))
}

func (s *userService) ListMembers(ctx context.Context) ([]*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx,
		specification.ActiveUsers{},
		specification.OrderBy{Expr: "created_at DESC"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.UserProfileResponse, 0, len(users))
	for _, user := range users {
		profile, err := s.toProfileResponse(ctx, uow, user)
		if err != nil {
			return nil, err
		}
		result = append(result, profile)
	}
	return result, nil
}
