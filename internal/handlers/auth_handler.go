package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Varun5711/authcore/internal/apperror"
	"github.com/Varun5711/authcore/internal/enrichment"
	"github.com/Varun5711/authcore/internal/events"
	"github.com/Varun5711/authcore/internal/logger"
	"github.com/Varun5711/authcore/internal/metrics"
	"github.com/Varun5711/authcore/internal/middleware"
	usermodel "github.com/Varun5711/authcore/internal/models/user"
	"github.com/Varun5711/authcore/internal/presenter"
	"github.com/Varun5711/authcore/internal/service"
)

const (
	maxBodyBytes   = 1 << 20
	publishTimeout = time.Second
)

type AuthHandler struct {
	authService    *service.AuthService
	publisher      events.Publisher
	ips            *middleware.IPResolver
	log            *logger.Logger
	requestTimeout time.Duration
}

func NewAuthHandler(authService *service.AuthService, publisher events.Publisher, ips *middleware.IPResolver, requestTimeout time.Duration, log *logger.Logger) *AuthHandler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}

	return &AuthHandler{
		authService:    authService,
		publisher:      publisher,
		ips:            ips,
		log:            log,
		requestTimeout: requestTimeout,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(w, r)
	if err != nil {
		h.fail(w, r, events.EventRegister, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	user, err := h.authService.RegisterUser(ctx, creds.Email, creds.Password)
	if err != nil {
		h.fail(w, r, events.EventRegister, err)
		return
	}

	h.log.Info("Registered user %s", user.ID)
	h.record(r, events.EventRegister, events.OutcomeSuccess, user.ID)

	presenter.JSON(w, http.StatusCreated, usermodel.RegisterResponse{
		Success: true,
		Message: "user registered successfully",
		Data:    user.Identity(),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(w, r)
	if err != nil {
		h.fail(w, r, events.EventLogin, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result, err := h.authService.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		h.fail(w, r, events.EventLogin, err)
		return
	}

	h.record(r, events.EventLogin, events.OutcomeSuccess, result.User.ID)

	presenter.JSON(w, http.StatusOK, usermodel.LoginResponse{Token: result.Token})
}

// Profile must sit behind AuthMiddleware.RequireAuth, which resolves the
// identity from the store before this runs.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		presenter.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	presenter.JSON(w, http.StatusOK, usermodel.ProfileResponse{User: identity})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (*usermodel.Credentials, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var creds usermodel.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return nil, apperror.Wrap(apperror.KindInvalidInput, "request body too large", err)
		case errors.Is(err, io.EOF):
			return nil, apperror.Wrap(apperror.KindInvalidInput, "request body is required", err)
		default:
			return nil, apperror.Wrap(apperror.KindInvalidInput, "invalid request body", err)
		}
	}

	return &creds, nil
}

func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request, event events.EventType, err error) {
	outcome := events.OutcomeRejected
	if apperror.StatusOf(err) >= http.StatusInternalServerError {
		outcome = events.OutcomeError
		h.log.Error("%s failed: %v", event, err)
	} else {
		h.log.Debug("%s rejected: %v", event, err)
	}

	h.record(r, event, outcome, "")
	presenter.AppError(w, err)
}

// record publishes best-effort: a failed publish is logged and never changes
// the response.
func (h *AuthHandler) record(r *http.Request, event events.EventType, outcome events.Outcome, userID string) {
	metrics.RecordAuthEvent(string(event), string(outcome))

	ua := enrichment.ParseUserAgent(r.UserAgent())

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), publishTimeout)
	defer cancel()

	err := h.publisher.Publish(ctx, &events.AuthEvent{
		Type:      event,
		Outcome:   outcome,
		UserID:    userID,
		IP:        h.ips.ClientIP(r),
		Browser:   ua.Browser,
		OS:        ua.OS,
		Device:    ua.DeviceType,
		Timestamp: time.Now(),
	})
	if err != nil {
		h.log.Warn("Failed to publish %s event: %v", event, err)
	}
}
