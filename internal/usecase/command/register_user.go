package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecoscan/ecoscan-api/internal/auth"
	"github.com/ecoscan/ecoscan-api/internal/domain"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Username string
	Password string
	Name     string
	Email    string
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*domain.User, error) {
	if strings.TrimSpace(cmd.Username) == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if len(cmd.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLength)
	}

	if len(cmd.Password) > auth.MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, auth.MaxPasswordBytes)
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	user, err := h.repo.CreateUser(ctx, domain.NewUser{
		Username: cmd.Username,
		Password: hashedPassword,
		Name:     cmd.Name,
		Email:    cmd.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
