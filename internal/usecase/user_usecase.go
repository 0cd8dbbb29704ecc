package usecase

import (
	"context"
	"time"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
)

type UserUseCase struct {
	userRepo   repository.UserRepository
	authClient FirebaseAuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, authClient FirebaseAuthClient) *UserUseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		authClient: authClient,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,min=3"`
	Phone    string `json:"phone"`
}

type UpdateProfileInput struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
}

type BecomeVendorInput struct {
	StoreName string `json:"store_name" validate:"required,min=3"`
}

func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if existing, _ := uc.userRepo.GetByEmail(ctx, input.Email); existing != nil {
		return nil, errors.Conflict("Email is already registered")
	}

	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password, input.Username)
	if err != nil {
		return nil, errors.Internal("Failed to create auth user", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:        uid,
		Email:     input.Email,
		Username:  input.Username,
		Phone:     input.Phone,
		Role:      "user",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// BecomeVendor upgrades a regular account to a vendor account.
func (uc *UserUseCase) BecomeVendor(ctx context.Context, userID string, input BecomeVendorInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Role == "vendor" {
		return nil, errors.Conflict("User is already a vendor")
	}
	if user.Role == "admin" {
		return nil, errors.BadRequest("Admin accounts cannot become vendors", nil)
	}

	user.Role = "vendor"
	user.StoreName = input.StoreName

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteAccount removes the auth user first so a half-failed delete leaves a
// profile that can no longer sign in, rather than a live login with no data.
func (uc *UserUseCase) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := uc.authClient.DeleteUser(ctx, userID); err != nil {
		return errors.Internal("Failed to delete auth account", err)
	}

	return uc.userRepo.Delete(ctx, userID)
}

func (uc *UserUseCase) ListVendors(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	return uc.userRepo.ListByRole(ctx, "vendor", limit, offset)
}
