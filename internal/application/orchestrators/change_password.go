package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"gymportal/internal/domain/account"
)

// ErrCurrentPasswordWrong and ErrNewPasswordSame reject a password change.
var (
	ErrCurrentPasswordWrong = errors.New("current password is incorrect")
	ErrNewPasswordSame      = errors.New("new password must differ from the current one")
)

// PasswordChange is a member's request to replace their password.
type PasswordChange struct {
	AccountID string
	Current   string
	New       string
}

// PasswordAccounts is the account access ChangePassword needs.
type PasswordAccounts interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// ChangePasswordDeps holds dependencies for ExecuteChangePassword.
// EndSessions, when set, signs the account out everywhere once the new
// password is stored; it returns how many sessions it ended.
type ChangePasswordDeps struct {
	Accounts    PasswordAccounts
	EndSessions func(accountID string) int
}

// ExecuteChangePassword verifies the current password and stores the new one.
// PRE: change.AccountID names an existing account
// POST: on success the new hash is saved, the lockout counter is cleared
// and every session of the account has been ended
func ExecuteChangePassword(ctx context.Context, change PasswordChange, deps ChangePasswordDeps) error {
	if change.Current == "" {
		return ErrCurrentPasswordWrong
	}
	acct, err := deps.Accounts.GetByID(ctx, change.AccountID)
	if err != nil {
		return err
	}
	if acct.CheckPassword(change.Current) != nil {
		return ErrCurrentPasswordWrong
	}
	if change.New == change.Current {
		return ErrNewPasswordSame
	}
	if err := acct.SetPassword(change.New); err != nil {
		return err
	}
	acct.ResetFailedLogins()
	if err := deps.Accounts.Save(ctx, acct); err != nil {
		return err
	}

	ended := 0
	if deps.EndSessions != nil {
		ended = deps.EndSessions(acct.ID)
	}
	slog.Info("auth_event", "event", "password_changed", "account_id", acct.ID, "sessions_ended", ended)
	return nil
}
