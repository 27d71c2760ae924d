package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gymportal/internal/domain/account"
	"gymportal/internal/domain/member"
)

// AccountStoreForCreate defines the store interface needed by CreateAccount.
type AccountStoreForCreate interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
}

// MemberStoreForCreate defines the member store interface needed by RegisterMember.
type MemberStoreForCreate interface {
	Save(ctx context.Context, m member.Member) error
}

// CreateAccountInput carries input for the orchestrator.
type CreateAccountInput struct {
	Email    string
	Password string
	Role     string
}

// CreateAccountDeps holds dependencies for CreateAccount.
type CreateAccountDeps struct {
	AccountStore AccountStoreForCreate
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteCreateAccount coordinates account creation.
// PRE: Valid email, password >= 12 chars, valid role
// POST: Account created with hashed password
// INVARIANT: Email must be unique
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (account.Account, error) {
	acct := account.Account{
		ID:        deps.GenerateID(),
		Email:     account.NormalizeEmail(input.Email),
		Role:      input.Role,
		CreatedAt: deps.Now(),
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}

	_, err := deps.AccountStore.GetByEmail(ctx, acct.Email)
	if err == nil {
		return account.Account{}, account.ErrEmailTaken
	}
	if !errors.Is(err, account.ErrNotFound) {
		return account.Account{}, err
	}

	if err := acct.SetPassword(input.Password); err != nil {
		return account.Account{}, err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}

	slog.Info("auth_event", "event", "account_created", "email", acct.Email, "role", acct.Role)
	return acct, nil
}

// RegisterMemberInput carries input for creating a member with a login.
type RegisterMemberInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterMemberDeps holds dependencies for RegisterMember.
type RegisterMemberDeps struct {
	AccountStore AccountStoreForCreate
	MemberStore  MemberStoreForCreate
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteRegisterMember creates a member account and its active profile.
// PRE: Name non-empty; email unused
// POST: Account (role member) and Member exist and are linked
func ExecuteRegisterMember(ctx context.Context, input RegisterMemberInput, deps RegisterMemberDeps) (member.Member, error) {
	m := member.Member{
		ID:        deps.GenerateID(),
		AccountID: "pending",
		Name:      input.Name,
		Email:     account.NormalizeEmail(input.Email),
		Status:    member.StatusActive,
	}
	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}

	acct, err := ExecuteCreateAccount(ctx, CreateAccountInput{
		Email:    input.Email,
		Password: input.Password,
		Role:     account.RoleMember,
	}, CreateAccountDeps{AccountStore: deps.AccountStore, GenerateID: deps.GenerateID, Now: deps.Now})
	if err != nil {
		return member.Member{}, err
	}

	m.AccountID = acct.ID
	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return member.Member{}, err
	}
	slog.Info("member_event", "event", "member_registered", "member_id", m.ID)
	return m, nil
}

// ExecuteSeedAdmin creates a default admin account if no accounts exist.
// PRE: Database is initialized
// POST: Admin account created if count == 0
func ExecuteSeedAdmin(ctx context.Context, deps CreateAccountDeps, email, password string) error {
	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if _, err := ExecuteCreateAccount(ctx, CreateAccountInput{
		Email:    email,
		Password: password,
		Role:     account.RoleAdmin,
	}, deps); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", email)
	return nil
}
