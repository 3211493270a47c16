package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Jeffreasy/LaventeCareTestAccount/internal/account"
	"github.com/Jeffreasy/LaventeCareTestAccount/internal/audit"
	"github.com/google/uuid"
)

var (
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrCredentialsTaken = errors.New("credentials already taken")
)

const (
	DefaultLatency      = 1 * time.Second
	DefaultResetLatency = 2 * time.Second

	// NoLatency disables an artificial delay. A zero duration selects the default.
	NoLatency time.Duration = -1
)

const auditResource = "account"

// HostAccount receives the snapshots produced by the service.
type HostAccount interface {
	SupplyUserDetails(ctx context.Context, details account.Details) error
	RemoveUserDetails(ctx context.Context)
}

// AlertPresenter shows the confirmation UI required before credentials
// change. The presenter resolves the confirmation when the user acts.
type AlertPresenter interface {
	PresentConfirmation(ctx context.Context, c *Confirmation) error
}

// ServiceConfig is fixed at construction.
type ServiceConfig struct {
	UserIDType     account.UserIDType
	DefaultUserID  string // Overrides the identifier mode's default when set
	DefaultAccount bool   // Supply the default user on Configure
	OmitNameOnce   bool   // Leave the name out of the next snapshot only
	Latency        time.Duration
	ResetLatency   time.Duration
}

// Configuration describes the service to account UIs.
type Configuration struct {
	Name          string             `json:"name"`
	UserIDType    account.UserIDType `json:"userIdType"`
	KeyboardType  string             `json:"keyboardType"`
	RequiredKeys  []account.Key      `json:"requiredKeys"`
	SupportedKeys []account.Key      `json:"supportedKeys"`
}

// MockAccountService simulates an account backend holding exactly one
// registered user. All record access is serialized by mu.
type MockAccountService struct {
	config        ServiceConfig
	defaultUserID string
	account       HostAccount
	alerts        AlertPresenter
	audit         audit.AuditLogger
	logger        *slog.Logger

	mu          sync.Mutex
	record      userRecord
	excludeName bool
}

func NewMockAccountService(
	config ServiceConfig,
	host HostAccount,
	alerts AlertPresenter,
	auditLogger audit.AuditLogger,
) *MockAccountService {
	if config.UserIDType == "" {
		config.UserIDType = account.UserIDEmail
	}
	defaultUserID := config.DefaultUserID
	if defaultUserID == "" {
		defaultUserID = config.UserIDType.DefaultUserID()
	}
	if config.Latency == 0 {
		config.Latency = DefaultLatency
	}
	if config.ResetLatency == 0 {
		config.ResetLatency = DefaultResetLatency
	}
	if auditLogger == nil {
		auditLogger = &audit.MockAuditLogger{}
	}

	return &MockAccountService{
		config:        config,
		defaultUserID: defaultUserID,
		account:       host,
		alerts:        alerts,
		audit:         auditLogger,
		logger:        slog.Default(),
		record:        newUserRecord(defaultUserID),
		excludeName:   config.OmitNameOnce,
	}
}

// Configuration returns the static service descriptor.
func (s *MockAccountService) Configuration() Configuration {
	return Configuration{
		Name:         s.config.UserIDType.DisplayName() + " and Password",
		UserIDType:   s.config.UserIDType,
		KeyboardType: s.config.UserIDType.KeyboardType(),
		RequiredKeys: []account.Key{account.KeyUserID, account.KeyPassword},
		SupportedKeys: []account.Key{
			account.KeyUserID,
			account.KeyPassword,
			account.KeyName,
			account.KeyGenderIdentity,
			account.KeyDateOfBirth,
			account.KeyBiography,
		},
	}
}

// Configure supplies the default user when the service was built with
// DefaultAccount.
func (s *MockAccountService) Configure(ctx context.Context) error {
	if !s.config.DefaultAccount {
		return nil
	}
	if err := s.UpdateUser(ctx); err != nil {
		s.logger.Error("default_user_supply_failed", "error", err)
		return fmt.Errorf("failed to set default user: %w", err)
	}
	return nil
}

func (s *MockAccountService) Login(ctx context.Context, userID, password string) error {
	if err := sleep(ctx, s.config.Latency); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if userID != s.record.userID || password != s.record.password {
		s.audit.Log(ctx, s.record.accountID, audit.EventLoginFailed, auditResource, map[string]string{
			"user_id": userID,
		})
		return ErrWrongCredentials
	}

	next := s.record
	next.userID = userID
	if err := s.commitLocked(ctx, next); err != nil {
		return err
	}

	s.audit.Log(ctx, s.record.accountID, audit.EventLoginSuccess, auditResource, map[string]string{
		"user_id": userID,
	})
	return nil
}

func (s *MockAccountService) SignUp(ctx context.Context, details account.SignupDetails) error {
	if details.UserID == "" {
		return fmt.Errorf("%w: missing userId", account.ErrIncompleteDetails)
	}
	if err := sleep(ctx, s.config.Latency); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The mock only knows a single user, so uniqueness is a comparison with it.
	if details.UserID == s.record.userID {
		s.audit.Log(ctx, s.record.accountID, audit.EventSignupFailed, auditResource, map[string]string{
			"user_id": details.UserID,
		})
		return ErrCredentialsTaken
	}

	next := s.record
	next.userID = details.UserID
	next.name = details.Name
	next.genderIdentity = details.GenderIdentity
	next.dateOfBirth = details.DateOfBirth
	if err := s.commitLocked(ctx, next); err != nil {
		return err
	}

	s.audit.Log(ctx, s.record.accountID, audit.EventSignup, auditResource, map[string]string{
		"user_id": details.UserID,
	})
	return nil
}

// UpdateAccountDetails applies modifications to the record. Changing the
// userId or password first waits for the user to confirm the alert; there
// is no timeout other than ctx. It fails without changes when the presenter
// refuses the alert, e.g. alert.ErrAlreadyPresenting while another
// credential change is still waiting.
func (s *MockAccountService) UpdateAccountDetails(ctx context.Context, modifications account.Modifications) error {
	if modifications.TouchesCredentials() {
		if err := s.awaitConfirmation(ctx); err != nil {
			return err
		}
	} else if err := sleep(ctx, s.config.Latency); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.record
	next.apply(modifications)
	if err := s.commitLocked(ctx, next); err != nil {
		return err
	}

	s.audit.Log(ctx, s.record.accountID, audit.EventDetailsUpdated, auditResource, map[string]string{
		"credentials": fmt.Sprint(modifications.TouchesCredentials()),
	})
	return nil
}

func (s *MockAccountService) awaitConfirmation(ctx context.Context) error {
	c := NewConfirmation()
	if err := s.alerts.PresentConfirmation(ctx, c); err != nil {
		return fmt.Errorf("failed to present confirmation: %w", err)
	}

	select {
	case <-c.Done():
		return nil
	case <-ctx.Done():
		// Resolving frees the presenter; the caller has already gone.
		c.Resolve()
		return ctx.Err()
	}
}

// UpdateUser supplies a fresh snapshot of the record to the host account.
func (s *MockAccountService) UpdateUser(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, s.record)
}

// commitLocked supplies a snapshot of next to the host and stores next as
// the record only once the host has accepted it. The omit-name flag is
// consumed by the first accepted snapshot.
func (s *MockAccountService) commitLocked(ctx context.Context, next userRecord) error {
	if err := s.account.SupplyUserDetails(ctx, next.snapshot(!s.excludeName)); err != nil {
		return fmt.Errorf("failed to supply user details: %w", err)
	}
	s.record = next
	s.excludeName = false
	return nil
}

// ResetPassword only simulates latency.
func (s *MockAccountService) ResetPassword(ctx context.Context, userID string) error {
	if err := sleep(ctx, s.config.ResetLatency); err != nil {
		return err
	}

	s.audit.Log(ctx, s.accountID(), audit.EventPasswordReset, auditResource, map[string]string{
		"user_id": userID,
	})
	return nil
}

// Logout clears the host account. The registered user stays as it is.
func (s *MockAccountService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.account.RemoveUserDetails(ctx)
	s.audit.Log(ctx, s.record.accountID, audit.EventLogout, auditResource, nil)
	return nil
}

// Delete clears the host account and replaces the record with a fresh
// default one.
func (s *MockAccountService) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.account.RemoveUserDetails(ctx)
	deleted := s.record.accountID
	s.record = newUserRecord(s.defaultUserID)

	s.audit.Log(ctx, deleted, audit.EventAccountDeleted, auditResource, nil)
	return nil
}

func (s *MockAccountService) accountID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.accountID
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
