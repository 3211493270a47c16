package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Jeffreasy/LaventeCareTestAccount/internal/account"
	"github.com/Jeffreasy/LaventeCareTestAccount/internal/audit"
	"github.com/Jeffreasy/LaventeCareTestAccount/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingAccount captures every snapshot pushed by the service.
type recordingAccount struct {
	mu        sync.Mutex
	supplied  []account.Details
	removals  int
	supplyErr error
}

func (a *recordingAccount) SupplyUserDetails(ctx context.Context, details account.Details) error {
	if a.supplyErr != nil {
		return a.supplyErr
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.supplied = append(a.supplied, details)
	return nil
}

func (a *recordingAccount) RemoveUserDetails(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.removals++
}

func (a *recordingAccount) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.supplied)
}

func (a *recordingAccount) last(t *testing.T) account.Details {
	t.Helper()
	a.mu.Lock()
	defer a.mu.Unlock()
	require.NotEmpty(t, a.supplied, "no snapshot supplied")
	return a.supplied[len(a.supplied)-1]
}

// channelPresenter hands every confirmation to the test.
type channelPresenter struct {
	presented chan *auth.Confirmation
}

func newChannelPresenter() *channelPresenter {
	return &channelPresenter{presented: make(chan *auth.Confirmation, 1)}
}

func (p *channelPresenter) PresentConfirmation(ctx context.Context, c *auth.Confirmation) error {
	p.presented <- c
	return nil
}

const testUserID = "test@example.com"

type fixture struct {
	service   *auth.MockAccountService
	host      *recordingAccount
	presenter *channelPresenter
	audit     *audit.MockAuditLogger
}

func newFixture(cfg auth.ServiceConfig) *fixture {
	if cfg.DefaultUserID == "" {
		cfg.DefaultUserID = testUserID
	}
	if cfg.Latency == 0 {
		cfg.Latency = auth.NoLatency
	}
	if cfg.ResetLatency == 0 {
		cfg.ResetLatency = auth.NoLatency
	}
	f := &fixture{
		host:      &recordingAccount{},
		presenter: newChannelPresenter(),
		audit:     &audit.MockAuditLogger{},
	}
	f.service = auth.NewMockAccountService(cfg, f.host, f.presenter, f.audit)
	return f
}

func signup(t *testing.T, f *fixture, userID, name string) {
	t.Helper()
	err := f.service.SignUp(context.Background(), account.SignupDetails{
		UserID:         userID,
		Password:       "ignored",
		Name:           name,
		GenderIdentity: account.GenderFemale,
		DateOfBirth:    time.Date(1868, time.June, 14, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestLogin_MatchingDefaultsSucceeds(t *testing.T) {
	f := newFixture(auth.ServiceConfig{})

	err := f.service.Login(context.Background(), testUserID, "")
	require.NoError(t, err)

	snapshot := f.host.last(t)
	assert.Equal(t, testUserID, snapshot.UserID())
	assert.NotEmpty(t, snapshot.AccountID())
	assert.Equal(t, 1, f.host.count())
	assert.Equal(t, []audit.EventType{audit.EventLoginSuccess}, f.audit.Actions())
}

func TestLogin_WrongCredentials(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		password string
	}{
		{"wrong password", testUserID, "wrongpass"},
		{"wrong user", "other@example.com", ""},
		{"both wrong", "other@example.com", "wrongpass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(auth.ServiceConfig{})

			err := f.service.Login(context.Background(), tt.userID, tt.password)
			require.ErrorIs(t, err, auth.ErrWrongCredentials)
			assert.Equal(t, 0, f.host.count())

			// The record is untouched: the previous credentials still work.
			require.NoError(t, f.service.Login(context.Background(), testUserID, ""))
			assert.Equal(t, testUserID, f.host.last(t).UserID())
		})
	}
}

func TestSignUp_SameUserIDIsTaken(t *testing.T) {
	f := newFixture(auth.ServiceConfig{})

	err := f.service.SignUp(context.Background(), account.SignupDetails{UserID: testUserID, Name: "Jane"})
	require.ErrorIs(t, err, auth.ErrCredentialsTaken)
	assert.Equal(t, 0, f.host.count())

	require.NoError(t, f.service.UpdateUser(context.Background()))
	snapshot := f.host.last(t)
	assert.Equal(t, testUserID, snapshot.UserID())
	assert.False(t, snapshot.Has(account.KeyName))
}

func TestSignUp_EmptyUserIDRejected(t *testing.T) {
	host := account.NewAccount()
	service := auth.NewMockAccountService(auth.ServiceConfig{
		DefaultUserID: testUserID,
		Latency:       auth.NoLatency,
	}, host, newChannelPresenter(), nil)
	ctx := context.Background()

	err := service.SignUp(ctx, account.SignupDetails{Name: "Mallory"})
	require.ErrorIs(t, err, account.ErrIncompleteDetails)
	assert.False(t, host.SignedIn())

	require.NoError(t, service.Login(ctx, testUserID, ""))
	details, ok := host.Details()
	require.True(t, ok)
	assert.Equal(t, testUserID, details.UserID())
	assert.False(t, details.Has(account.KeyName))
}

func TestSupplyFailureLeavesRecordUnchanged(t *testing.T) {
	f := newFixture(auth.ServiceConfig{})
	ctx := context.Background()
	f.host.supplyErr = errors.New("host unavailable")

	err := f.service.SignUp(ctx, account.SignupDetails{UserID: "jane@stanford.edu", Name: "Jane"})
	require.Error(t, err)
	bio := account.Modifications{Modified: account.NewBuilder().SetBiography("Founder").Build()}
	require.Error(t, f.service.UpdateAccountDetails(ctx, bio))

	f.host.supplyErr = nil
	require.ErrorIs(t, f.service.Login(ctx, "jane@stanford.edu", ""), auth.ErrWrongCredentials)
	require.NoError(t, f.service.Login(ctx, testUserID, ""))

	snapshot := f.host.last(t)
	assert.Equal(t, testUserID, snapshot.UserID())
	assert.False(t, snapshot.Has(account.KeyName))
	assert.False(t, snapshot.Has(account.KeyBiography))
}

func TestSignUp_OverwritesProfileButKeepsBiography(t *testing.T) {
	f := newFixture(auth.ServiceConfig{})
	ctx := context.Background()

	bio := account.Modifications{Modified: account.NewBuilder().SetBiography("Founder").Build()}
	require.NoError(t, f.service.UpdateAccountDetails(ctx, bio))
	before := f.host.last(t)

	signup(t, f, "jane@stanford.edu", "Jane Stanford")

	snapshot := f.host.last(t)
	assert.Equal(t, "jane@stanford.edu", snapshot.UserID())
	assert.Equal(t, "Jane Stanford", snapshot.Name())
	assert.Equal(t, account.GenderFemale, snapshot.GenderIdentity())
	assert.Equal(t, 1868, snapshot.DateOfBirth().Year())
	assert.Equal(t, "Founder", snapshot.Biography())
	assert.Equal(t, before.AccountID(), snapshot.AccountID())
}

func TestSignUp_DoesNotStorePassword(t *testing.T) {
	f := newFixture(auth.ServiceConfig{})
	ctx := context.Background()

	signup(t, f, "jane@stanford.edu", "Jane Stanford")

	require.ErrorIs(t, f.service.Login(ctx, "jane@stanford.edu", "ignored"), auth.ErrWrongCredentials)
	require.NoError(t, f.service.Login(ctx, "jane@stanford.edu", ""))
}

func TestDelete_ResetsRecord(t *testing.T) {
	f := newFixture(auth.ServiceConfig{})
	ctx := context.Background()

	signup(t, f, "jane@stanford.edu", "Jane Stanford")
	bio := account.Modifications{Modified: account.NewBuilder().SetBiography("Founder").Build()}
	require.NoError(t, f.service.UpdateAccountDetails(ctx, bio))
	populated := f.host.last(t)

	require.NoError(t, f.service.Delete(ctx))
	assert.Equal(t, 1, f.host.removals)

	require.NoError(t, f.service.UpdateUser(ctx))
	snapshot := f.host.last(t)
	assert.Equal(t, testUserID, snapshot.UserID())
	assert.NotEqual(t, populated.AccountID(), snapshot.AccountID())
	assert.Equal(t, []account.Key{account.KeyAccountID, account.KeyUserID}, snapshot.Keys())
	assert.Contains(t, f.audit.Actions(), audit.EventAccountDeleted)
}

func TestDelete_ClearsPassword(t *testing.T) {
	f := newFixture(auth.ServiceConfig{})
	ctx := context.Background()

	go func() {
		c := <-f.presenter.presented
		c.Resolve()
	}()
	mods := account.Modifications{Modified: account.NewBuilder().SetPassword("new-secret").Build()}
	require.NoError(t, f.service.UpdateAccountDetails(ctx, mods))

	require.NoError(t, f.service.Delete(ctx))
	require.NoError(t, f.service.Login(ctx, testUserID, ""))
}

func TestOmitNameOnce(t *testing.T) {
	f := newFixture(auth.ServiceConfig{OmitNameOnce: true})
	ctx := context.Background()

	signup(t, f, "jane@stanford.edu", "Jane Stanford")
	assert.False(t, f.host.last(t).Has(account.KeyName))

	require.NoError(t, f.service.UpdateUser(ctx))
	assert.Equal(t, "Jane Stanford", f.host.last(t).Name())

	require.NoError(t, f.service.UpdateUser(ctx))
	assert.Equal(t, "Jane Stanford", f.host.last(t).Name())
}

func TestOmitNameOnce_SurvivesFailedSupply(t *testing.T) {
	f := newFixture(auth.ServiceConfig{OmitNameOnce: true})
	ctx := context.Background()

	f.host.supplyErr = errors.New("host unavailable")
	require.Error(t, f.service.UpdateUser(ctx))
	f.host.supplyErr = nil

	signup(t, f, "jane@stanford.edu", "Jane Stanford")
	assert.False(t, f.host.last(t).Has(account.KeyName))

	require.NoError(t, f.service.UpdateUser(ctx))
	assert.Equal(t, "Jane Stanford", f.host.last(t).Name())
}

func TestUpdateAccountDetails_CredentialChangeWaitsForConfirmation(t *testing.T) {
	f := newFixture(auth.ServiceConfig{Latency: time.Hour})
	ctx := context.Background()

	mods := account.Modifications{Modified: account.NewBuilder().SetPassword("new-secret").Build()}
	done := make(chan error, 1)
	go func() {
		done <- f.service.UpdateAccountDetails(ctx, mods)
	}()

	var confirmation *auth.Confirmation
	select {
	case confirmation = <-f.presenter.presented:
	case <-time.After(time.Second):
		t.Fatal("confirmation was never presented")
	}

	select {
	case err := <-done:
		t.Fatalf("update completed before confirmation: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, 0, f.host.count())

	require.True(t, confirmation.Resolve())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("update did not complete after confirmation")
	}
	assert.Equal(t, 1, f.host.count())
}

func TestUpdateAccountDetails_ProfileChangeSkipsConfirmation(t *testing.T) {
	f := newFixture(auth.ServiceConfig{Latency: 10 * time.Millisecond})
	ctx := context.Background()

	mods := account.Modifications{Modified: account.NewBuilder().SetName("Leland").Build()}
	start := time.Now()
	require.NoError(t, f.service.UpdateAccountDetails(ctx, mods))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	assert.Empty(t, f.presenter.presented)
	assert.Equal(t, "Leland", f.host.last(t).Name())
}

func TestUpdateAccountDetails_RemovingPasswordNeedsConfirmation(t *testing.T) {
	f := newFixture(auth.ServiceConfig{})
	ctx := context.Background()

	go func() {
		c := <-f.presenter.presented
		c.Resolve()
	}()
	set := account.Modifications{Modified: account.NewBuilder().SetPassword("secret").Build()}
	require.NoError(t, f.service.UpdateAccountDetails(ctx, set))

	done := make(chan error, 1)
	go func() {
		done <- f.service.UpdateAccountDetails(ctx, account.Modifications{Removed: []account.Key{account.KeyPassword}})
	}()

	var confirmation *auth.Confirmation
	select {
	case confirmation = <-f.presenter.presented:
	case <-time.After(time.Second):
		t.Fatal("removing the password did not present a confirmation")
	}
	require.True(t, confirmation.Resolve())
	require.NoError(t, <-done)

	require.NoError(t, f.service.Login(ctx, testUserID, ""))
}

func TestUpdateAccountDetails_KeepsAccountIDAndAppliesRemovals(t *testing.T) {
	f := newFixture(auth.ServiceConfig{})
	ctx := context.Background()

	signup(t, f, "jane@stanford.edu", "Jane Stanford")
	first := f.host.last(t)

	mods := account.Modifications{
		Modified: account.NewBuilder().SetBiography("Founder").Build(),
		Removed:  []account.Key{account.KeyGenderIdentity, account.KeyUserID},
	}
	require.NoError(t, f.service.UpdateAccountDetails(ctx, mods))

	snapshot := f.host.last(t)
	assert.Equal(t, first.AccountID(), snapshot.AccountID())
	assert.Equal(t, "jane@stanford.edu", snapshot.UserID())
	assert.Equal(t, "Founder", snapshot.Biography())
	assert.False(t, snapshot.Has(account.KeyGenderIdentity))
}

func TestUpdateAccountDetails_CancelledWhileWaiting(t *testing.T) {
	f := newFixture(auth.ServiceConfig{})
	ctx, cancel := context.WithCancel(context.Background())

	mods := account.Modifications{Modified: account.NewBuilder().SetUserID("new@example.com").Build()}
	done := make(chan error, 1)
	go func() {
		done <- f.service.UpdateAccountDetails(ctx, mods)
	}()

	confirmation := <-f.presenter.presented
	cancel()

	require.ErrorIs(t, <-done, context.Canceled)
	assert.True(t, confirmation.Resolved())
	assert.Equal(t, 0, f.host.count())

	require.NoError(t, f.service.Login(context.Background(), testUserID, ""))
}

func TestResetPassword_IsANoOp(t *testing.T) {
	f := newFixture(auth.ServiceConfig{ResetLatency: 20 * time.Millisecond})

	start := time.Now()
	require.NoError(t, f.service.ResetPassword(context.Background(), "nobody"))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	assert.Equal(t, 0, f.host.count())
	assert.Equal(t, 0, f.host.removals)
	require.NoError(t, f.service.Login(context.Background(), testUserID, ""))
}

func TestLogout_KeepsRecord(t *testing.T) {
	f := newFixture(auth.ServiceConfig{})
	ctx := context.Background()

	signup(t, f, "jane@stanford.edu", "Jane Stanford")
	require.NoError(t, f.service.Logout(ctx))
	assert.Equal(t, 1, f.host.removals)

	require.NoError(t, f.service.Login(ctx, "jane@stanford.edu", ""))
	assert.Equal(t, "Jane Stanford", f.host.last(t).Name())
}

func TestConfigure(t *testing.T) {
	ctx := context.Background()

	off := newFixture(auth.ServiceConfig{})
	require.NoError(t, off.service.Configure(ctx))
	assert.Equal(t, 0, off.host.count())

	on := newFixture(auth.ServiceConfig{DefaultAccount: true})
	require.NoError(t, on.service.Configure(ctx))
	assert.Equal(t, testUserID, on.host.last(t).UserID())
}

func TestSupplyFailurePropagates(t *testing.T) {
	f := newFixture(auth.ServiceConfig{DefaultAccount: true})
	f.host.supplyErr = errors.New("host unavailable")

	err := f.service.Login(context.Background(), testUserID, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host unavailable")

	assert.Error(t, f.service.Configure(context.Background()))
}

func TestLatencyHonoursContext(t *testing.T) {
	f := newFixture(auth.ServiceConfig{Latency: time.Hour})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := f.service.Login(ctx, testUserID, "")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, f.host.count())
}

func TestDefaultLatencyApplies(t *testing.T) {
	service := auth.NewMockAccountService(auth.ServiceConfig{DefaultUserID: testUserID}, &recordingAccount{}, newChannelPresenter(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, service.Login(ctx, testUserID, ""), context.DeadlineExceeded)

	ctx, cancel = context.WithTimeout(context.Background(), auth.DefaultLatency+50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, service.ResetPassword(ctx, testUserID), context.DeadlineExceeded)
}

func TestConfiguration(t *testing.T) {
	email := auth.NewMockAccountService(auth.ServiceConfig{}, &recordingAccount{}, newChannelPresenter(), nil)
	assert.Equal(t, "E-Mail Address and Password", email.Configuration().Name)
	assert.Equal(t, []account.Key{account.KeyUserID, account.KeyPassword}, email.Configuration().RequiredKeys)

	username := auth.NewMockAccountService(auth.ServiceConfig{UserIDType: account.UserIDUsername}, &recordingAccount{}, newChannelPresenter(), nil)
	assert.Equal(t, "Username and Password", username.Configuration().Name)

	// Without an override the mode's default identifier is used.
	host := &recordingAccount{}
	svc := auth.NewMockAccountService(auth.ServiceConfig{UserIDType: account.UserIDUsername}, host, newChannelPresenter(), nil)
	require.NoError(t, svc.UpdateUser(context.Background()))
	assert.Equal(t, account.DefaultUsername, host.last(t).UserID())
}
