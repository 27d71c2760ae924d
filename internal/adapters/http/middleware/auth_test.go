package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainAccount "gymportal/internal/domain/account"
)

func TestSessionStore_Lifecycle(t *testing.T) {
	ss := NewSessionStore()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ss.now = func() time.Time { return now }

	token, err := ss.Create(Session{AccountID: "a1", MemberID: "m1", Role: domainAccount.RoleMember})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64", len(token))
	}
	s, ok := ss.Get(token)
	if !ok || s.MemberID != "m1" || !s.CreatedAt.Equal(now) {
		t.Fatalf("Get = %+v, %v", s, ok)
	}

	now = now.Add(SessionTTL + time.Minute)
	if _, ok := ss.Get(token); ok {
		t.Error("expired session still valid")
	}
}

func TestSessionStore_DeleteAccount(t *testing.T) {
	ss := NewSessionStore()
	t1, _ := ss.Create(Session{AccountID: "a1", Role: domainAccount.RoleMember})
	t2, _ := ss.Create(Session{AccountID: "a1", Role: domainAccount.RoleMember})
	t3, _ := ss.Create(Session{AccountID: "a2", Role: domainAccount.RoleMember})

	if n := ss.DeleteAccount("a1"); n != 2 {
		t.Errorf("deleted %d sessions, want 2", n)
	}
	_, ok1 := ss.Get(t1)
	_, ok2 := ss.Get(t2)
	_, ok3 := ss.Get(t3)
	if ok1 || ok2 || !ok3 {
		t.Errorf("unexpected survivors: %v %v %v", ok1, ok2, ok3)
	}
}

func TestAuth_SetsSessionFromCookie(t *testing.T) {
	ss := NewSessionStore()
	token, _ := ss.Create(Session{AccountID: "a1", Email: "anna@example.com", Role: domainAccount.RoleMember})

	var got Session
	handler := Auth(ss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetSessionFromContext(r.Context())
	}))
	req := httptest.NewRequest("GET", "/bookings", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got.Email != "anna@example.com" {
		t.Errorf("session not loaded: %+v", got)
	}
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(okHandler(http.StatusOK))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/bookings", nil))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login?next=/bookings" {
		t.Errorf("page: status = %d, location = %q", rr.Code, rr.Header().Get("Location"))
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/bookings", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("api: status = %d, want 401", rr.Code)
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(domainAccount.RoleStaff, domainAccount.RoleAdmin)(okHandler(http.StatusOK))

	tests := []struct {
		role string
		want int
	}{
		{domainAccount.RoleMember, http.StatusForbidden},
		{domainAccount.RoleStaff, http.StatusOK},
		{domainAccount.RoleAdmin, http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/scan", nil)
		req = req.WithContext(ContextWithSession(req.Context(), Session{AccountID: "a", Role: tt.role}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != tt.want {
			t.Errorf("role %s: status = %d, want %d", tt.role, rr.Code, tt.want)
		}
	}
}

func TestRoleHelpers(t *testing.T) {
	ctx := ContextWithSession(context.Background(), Session{Role: domainAccount.RoleStaff})
	if IsAdmin(ctx) || !IsRole(ctx, domainAccount.RoleStaff) {
		t.Error("staff session misclassified")
	}
	if IsRole(context.Background(), domainAccount.RoleMember) {
		t.Error("anonymous request has no role")
	}
	if !(Session{Role: domainAccount.RoleAdmin}).IsStaff() || (Session{Role: domainAccount.RoleMember}).IsStaff() {
		t.Error("IsStaff wrong")
	}
}
