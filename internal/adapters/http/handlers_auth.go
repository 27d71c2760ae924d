package web

import (
	"net/http"

	"gymportal/internal/adapters/http/middleware"
	"gymportal/internal/application/orchestrators"
	"gymportal/internal/domain/account"
)

// homeFor returns the landing page for a role.
func homeFor(s middleware.Session) string {
	if s.MemberID == "" && s.IsStaff() {
		return "/scan"
	}
	return "/bookings"
}

// handleHome handles GET /
func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, homeFor(sess), http.StatusSeeOther)
}

// handleLogin handles GET and POST /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")
	if r.Method == http.MethodGet {
		if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, homeFor(sess), http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", newPage(r, "login.title", "", map[string]string{"Next": next}))
		return
	}

	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if isJSON(r) {
		if err := strictDecode(r, &in); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
	} else {
		in.Email, in.Password = r.FormValue("email"), r.FormValue("password")
		next = r.FormValue("next")
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{Email: in.Email, Password: in.Password}, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
		MemberStore:  stores.MemberStore,
		Now:          timeNow,
	})
	if err != nil {
		fail(w, r, err, "/login")
		return
	}

	sess := middleware.Session{
		AccountID: result.AccountID,
		MemberID:  result.MemberID,
		Name:      result.Name,
		Email:     result.Email,
		Role:      result.Role,
	}
	token, err := sessions.Create(sess)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	if isJSON(r) {
		writeJSON(w, http.StatusOK, map[string]string{
			"account_id": result.AccountID,
			"member_id":  result.MemberID,
			"name":       result.Name,
			"role":       result.Role,
		})
		return
	}
	dest := homeFor(sess)
	if len(next) > 1 && next[0] == '/' && next[1] != '/' {
		dest = next
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	if isJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleChangePassword handles GET and POST /account/password
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "password.html", newPage(r, "account.title", "", nil))
		return
	}

	var in struct {
		Current string `json:"current_password"`
		New     string `json:"new_password"`
	}
	if isJSON(r) {
		if err := strictDecode(r, &in); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
	} else {
		in.Current, in.New = r.FormValue("current_password"), r.FormValue("new_password")
	}
	if in.New == "" {
		fail(w, r, account.ErrPasswordTooShort, "/account/password")
		return
	}

	err := orchestrators.ExecuteChangePassword(r.Context(), orchestrators.PasswordChange{
		AccountID: sess.AccountID,
		Current:   in.Current,
		New:       in.New,
	}, orchestrators.ChangePasswordDeps{Accounts: stores.AccountStore, EndSessions: sessions.DeleteAccount})
	if err != nil {
		fail(w, r, err, "/account/password")
		return
	}

	// Every session was ended, this one included; keep the caller signed in.
	token, err := sessions.Create(sess)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	if isJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	redirectWith(w, r, "/account/password", "ok", "account.password_changed")
}
