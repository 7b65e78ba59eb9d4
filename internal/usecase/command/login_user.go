package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecoscan/ecoscan-api/internal/auth"
	"github.com/ecoscan/ecoscan-api/internal/domain"
)

// LoginUserCommand represents the command to login a user
type LoginUserCommand struct {
	Username string
	Password string
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo domain.UserRepository
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// Handle verifies the credentials. Unknown usernames and wrong passwords
// both return domain.ErrInvalidCredentials.
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*domain.User, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := h.repo.GetUserByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			auth.EqualizeTiming(cmd.Password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
