package http

import (
	"errors"
	"net/http"

	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/internal/usecase/command"
	"github.com/ecoscan/ecoscan-api/pkg/logger"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=6,bytesmax=72"`
	Name     string `json:"name" validate:"max=255"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary Register a new user
// @Description Create an account and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Registration data"
// @Success 201 {object} domain.User
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if reqErr := decodeAndValidate(w, r, &req, "Invalid registration data"); reqErr != nil {
		reqErr.write(w)
		return
	}

	user, err := h.commands.RegisterUser.Handle(r.Context(), command.RegisterUserCommand{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
	})
	if err != nil {
		writeError(w, r, err, "Registration failed")
		return
	}

	if err := h.sessions.Start(w, r, user.ID); err != nil {
		writeError(w, r, err, "Registration failed")
		return
	}

	logger.Info(r.Context()).Uint("user_id", user.ID).Msg("User registered")
	respondJSON(w, http.StatusCreated, user)
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and start a session; an existing session is replaced
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} domain.User
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if reqErr := decodeAndValidate(w, r, &req, "Invalid login data"); reqErr != nil {
		reqErr.write(w)
		return
	}

	user, err := h.commands.LoginUser.Handle(r.Context(), command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.metrics.loginAttempts.WithLabelValues("invalid_credentials").Inc()
		} else {
			h.metrics.loginAttempts.WithLabelValues("error").Inc()
		}
		writeError(w, r, err, "Invalid username or password")
		return
	}

	if err := h.sessions.Start(w, r, user.ID); err != nil {
		h.metrics.loginAttempts.WithLabelValues("error").Inc()
		writeError(w, r, err, "Invalid username or password")
		return
	}

	h.metrics.loginAttempts.WithLabelValues("success").Inc()
	respondJSON(w, http.StatusOK, user)
}

// Logout godoc
// @Summary Log out
// @Description End the current session, if any
// @Tags Auth
// @Success 204
// @Router /api/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Failed to delete session")
	}
	w.WriteHeader(http.StatusNoContent)
}

// CurrentUser godoc
// @Summary Current user
// @Description Return the user of the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} ErrorResponse
// @Router /api/user [get]
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request, user *domain.User) {
	respondJSON(w, http.StatusOK, user)
}
