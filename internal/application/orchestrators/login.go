package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymportal/internal/domain/account"
	"gymportal/internal/domain/member"
)

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// MemberStoreForLogin resolves the member profile behind an account.
type MemberStoreForLogin interface {
	GetByAccountID(ctx context.Context, accountID string) (member.Member, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	AccountID string
	MemberID  string // empty for staff and admins without a member profile
	Name      string
	Email     string
	Role      string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
	MemberStore  MemberStoreForLogin
	Now          func() time.Time
}

// ExecuteLogin validates credentials and returns account info for session creation.
// PRE: Valid email and password provided
// POST: Returns account info on success, records failed login on failure
// INVARIANT: Account must not be locked
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, account.ErrWrongPassword
	}
	now := deps.Now()
	email := account.NormalizeEmail(input.Email)

	acct, err := deps.AccountStore.GetByEmail(ctx, email)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "not_found")
		return LoginResult{}, account.ErrWrongPassword
	}

	if acct.IsLocked(now) {
		slog.Info("auth_event", "event", "login_blocked", "email", email, "reason", "locked")
		return LoginResult{}, account.ErrLocked
	}

	if err := acct.CheckPassword(input.Password); err != nil {
		acct.RecordFailedLogin(now)
		if saveErr := deps.AccountStore.Save(ctx, acct); saveErr != nil {
			slog.Error("auth_event", "event", "save_failed", "email", email, "error", saveErr.Error())
		}
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "wrong_password", "failed_logins", acct.FailedLogins)
		return LoginResult{}, account.ErrWrongPassword
	}

	if acct.FailedLogins > 0 {
		acct.ResetFailedLogins()
		if err := deps.AccountStore.Save(ctx, acct); err != nil {
			return LoginResult{}, err
		}
	}

	result := LoginResult{AccountID: acct.ID, Email: acct.Email, Role: acct.Role}
	if m, err := deps.MemberStore.GetByAccountID(ctx, acct.ID); err == nil {
		result.MemberID = m.ID
		result.Name = m.Name
	}

	slog.Info("auth_event", "event", "login_success", "email", email, "role", acct.Role)
	return result, nil
}
