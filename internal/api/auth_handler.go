package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ashrafz/foodshare-api/internal/api/shared"
	"github.com/ashrafz/foodshare-api/internal/config"
	"github.com/ashrafz/foodshare-api/internal/platform/logger"
	"github.com/ashrafz/foodshare-api/internal/redact"
	"github.com/ashrafz/foodshare-api/internal/service/auth"
)

// AuthHandler handles session-related API requests.
type AuthHandler struct {
	jwtService    auth.JWTService
	tokenLifetime time.Duration
	production    bool
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	jwtService auth.JWTService,
	cfg *config.Config,
	log *slog.Logger,
) *AuthHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		jwtService:    jwtService,
		tokenLifetime: time.Duration(cfg.Auth.TokenLifetimeMinutes) * time.Minute,
		production:    cfg.Server.Env == "production",
		logger:        log.With(slog.String("component", "auth_handler")),
	}
}

// IssueToken handles POST /jwt requests. It signs the supplied identity
// claims into a session token and sets it as an http-only cookie. The
// identity is not checked against any account store.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), auth.Identity{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to issue session token", err)
		return
	}

	http.SetCookie(w, auth.SessionCookie(token, h.tokenLifetime, h.production))

	log.Debug("session token issued")
	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{Success: true})
}

// Logout handles POST /logout requests. It clears the session cookie
// unconditionally; no signature check is performed.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearSessionCookie(h.production))
	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{Success: true})
}
