package member_test

import (
	"strings"
	"testing"

	"gymportal/internal/domain/member"
)

func validMember() member.Member {
	return member.Member{ID: "m1", AccountID: "a1", Name: "Anna Rossi", Email: "anna@gym.test", Status: member.StatusActive}
}

// TestMember_Validate tests validation of Member.
func TestMember_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *member.Member)
		wantErr error
	}{
		{"valid", func(m *member.Member) {}, nil},
		{"suspended is valid", func(m *member.Member) { m.Status = member.StatusSuspended }, nil},
		{"blank name", func(m *member.Member) { m.Name = "  " }, member.ErrEmptyName},
		{"long name", func(m *member.Member) { m.Name = strings.Repeat("x", 101) }, member.ErrNameTooLong},
		{"bad email", func(m *member.Member) { m.Email = "anna" }, member.ErrInvalidEmail},
		{"no account", func(m *member.Member) { m.AccountID = "" }, member.ErrEmptyAccountID},
		{"bad status", func(m *member.Member) { m.Status = "archived" }, member.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMember()
			tt.mutate(&m)
			if err := m.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestMember_SuspendReinstate tests the suspension lifecycle.
func TestMember_SuspendReinstate(t *testing.T) {
	m := validMember()
	if err := m.Reinstate(); err != member.ErrNotSuspended {
		t.Errorf("Reinstate(active) = %v", err)
	}
	if err := m.Suspend(); err != nil {
		t.Fatalf("Suspend: %v", err)
	}
	if m.IsActive() {
		t.Error("suspended member reported active")
	}
	if err := m.Suspend(); err != member.ErrAlreadySuspended {
		t.Errorf("Suspend twice = %v", err)
	}
	if err := m.Reinstate(); err != nil || !m.IsActive() {
		t.Errorf("Reinstate = %v, active=%v", err, m.IsActive())
	}
}

func TestMember_FirstName(t *testing.T) {
	m := validMember()
	if got := m.FirstName(); got != "Anna" {
		t.Errorf("FirstName() = %q", got)
	}
	m.Name = ""
	if got := m.FirstName(); got != "" {
		t.Errorf("FirstName() = %q, want empty", got)
	}
}
