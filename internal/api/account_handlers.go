package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Jeffreasy/LaventeCareTestAccount/internal/api/helpers"
	customMiddleware "github.com/Jeffreasy/LaventeCareTestAccount/internal/api/middleware"
	"github.com/Jeffreasy/LaventeCareTestAccount/internal/account"
	"github.com/Jeffreasy/LaventeCareTestAccount/internal/alert"
	"github.com/Jeffreasy/LaventeCareTestAccount/internal/auth"
)

// AccountHandler exposes the mock account service to UI test drivers.
type AccountHandler struct {
	service *auth.MockAccountService
	account *account.Account
	alerts  *alert.Model
}

func NewAccountHandler(service *auth.MockAccountService, host *account.Account, alerts *alert.Model) *AccountHandler {
	return &AccountHandler{service: service, account: host, alerts: alerts}
}

// LoginRequest defines the expected JSON body for login. An empty password
// is valid: fresh records have none.
type LoginRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password"`
}

// SignupRequest defines the expected JSON body for signup.
type SignupRequest struct {
	UserID         string `json:"userId" validate:"required"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	GenderIdentity string `json:"genderIdentity" validate:"omitempty,oneof=female male transgender non-binary prefer-not-to-state"`
	DateOfBirth    string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
}

type ResetPasswordRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// UpdateDetailsRequest carries account modifications. Only removable keys
// may appear in removed.
type UpdateDetailsRequest struct {
	Modified account.Details `json:"modified"`
	Removed  []account.Key   `json:"removed" validate:"dive,oneof=password name genderIdentity dateOfBirth biography"`
}

func (h *AccountHandler) Configuration(w http.ResponseWriter, r *http.Request) {
	helpers.RespondJSON(w, http.StatusOK, h.service.Configuration())
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := helpers.DecodeAndValidate(r, &req); err != nil {
		slog.Warn("login_invalid_request", "error", err)
		helpers.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Login(r.Context(), req.UserID, req.Password); err != nil {
		slog.Warn("login_failed", "user_id", req.UserID, "ip", helpers.GetRealIP(r).String(), "error", err)
		h.respondServiceError(w, r, err)
		return
	}

	h.respondCurrent(w, r)
}

func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := helpers.DecodeAndValidate(r, &req); err != nil {
		slog.Warn("signup_invalid_request", "error", err)
		helpers.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var dob time.Time
	if req.DateOfBirth != "" {
		// Format already checked by the validator.
		dob, _ = time.Parse(account.DateLayout, req.DateOfBirth)
	}

	details := account.SignupDetails{
		UserID:         req.UserID,
		Password:       req.Password,
		Name:           req.Name,
		GenderIdentity: account.GenderIdentity(req.GenderIdentity),
		DateOfBirth:    dob,
	}

	if err := h.service.SignUp(r.Context(), details); err != nil {
		slog.Warn("signup_failed", "user_id", req.UserID, "error", err)
		h.respondServiceError(w, r, err)
		return
	}

	h.respondCurrent(w, r)
}

// UpdateDetails blocks until the confirmation alert is answered when the
// userId or password changes.
func (h *AccountHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	var req UpdateDetailsRequest
	if err := helpers.DecodeAndValidate(r, &req); err != nil {
		slog.Warn("update_details_invalid_request", "error", err)
		helpers.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Modified.Has(account.KeyAccountID) {
		helpers.RespondError(w, http.StatusBadRequest, "accountId cannot be modified")
		return
	}

	mods := account.Modifications{Modified: req.Modified, Removed: req.Removed}
	if err := h.service.UpdateAccountDetails(r.Context(), mods); err != nil {
		slog.Warn("update_details_failed", "error", err)
		h.respondServiceError(w, r, err)
		return
	}

	h.respondCurrent(w, r)
}

func (h *AccountHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := helpers.DecodeAndValidate(r, &req); err != nil {
		helpers.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.UserID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	helpers.RespondStatus(w, http.StatusAccepted, "reset_requested")
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context()); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	helpers.RespondStatus(w, http.StatusOK, "logged_out")
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context()); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	helpers.RespondStatus(w, http.StatusOK, "deleted")
}

// Current returns the host account snapshot.
func (h *AccountHandler) Current(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.account.Details(); !ok {
		helpers.RespondError(w, http.StatusNotFound, "not signed in")
		return
	}
	h.respondCurrent(w, r)
}

type alertState struct {
	Presenting     bool   `json:"presenting"`
	ConfirmationID string `json:"confirmationId,omitempty"`
}

func (h *AccountHandler) AlertState(w http.ResponseWriter, r *http.Request) {
	id, ok := h.alerts.Pending()
	state := alertState{Presenting: ok}
	if ok {
		state.ConfirmationID = id.String()
	}
	helpers.RespondJSON(w, http.StatusOK, state)
}

// ConfirmAlert is the UI gesture that resumes a pending credential change.
func (h *AccountHandler) ConfirmAlert(w http.ResponseWriter, r *http.Request) {
	if !h.alerts.Confirm() {
		helpers.RespondError(w, http.StatusNotFound, "no alert presented")
		return
	}
	helpers.RespondStatus(w, http.StatusOK, "confirmed")
}

func (h *AccountHandler) respondCurrent(w http.ResponseWriter, r *http.Request) {
	details, ok := h.account.Details()
	if !ok {
		helpers.RespondError(w, http.StatusNotFound, "not signed in")
		return
	}
	customMiddleware.SetSentryAccount(r.Context(), details.AccountID(), details.UserID())
	helpers.RespondJSON(w, http.StatusOK, map[string]any{
		"account": details,
	})
}

func (h *AccountHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrWrongCredentials):
		helpers.RespondError(w, http.StatusUnauthorized, "wrong credentials")
	case errors.Is(err, auth.ErrCredentialsTaken):
		helpers.RespondError(w, http.StatusConflict, "credentials already taken")
	case errors.Is(err, alert.ErrAlreadyPresenting):
		helpers.RespondError(w, http.StatusConflict, "confirmation already pending")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away; nobody reads this.
		helpers.RespondError(w, http.StatusServiceUnavailable, "request abandoned")
	default:
		slog.Error("account_service_error", "path", r.URL.Path, "error", err)
		helpers.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
