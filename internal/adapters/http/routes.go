package web

import (
	"net/http"

	"gymportal/internal/adapters/http/middleware"
	"gymportal/internal/domain/account"
)

// registerRoutes mounts every page and API endpoint on mux.
func registerRoutes(mux *http.ServeMux) {
	member := func(h http.HandlerFunc) http.Handler { return middleware.RequireAuth(h) }
	staff := middleware.RequireRole(account.RoleStaff, account.RoleAdmin)
	admin := middleware.RequireRole(account.RoleAdmin)

	// public
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /", handleHome)
	mux.HandleFunc("GET /login", handleLogin)
	mux.HandleFunc("POST /login", handleLogin)
	mux.HandleFunc("POST /logout", handleLogout)
	mux.HandleFunc("GET /training", handleTrainingPage)
	mux.HandleFunc("GET /api/training", handleTrainingAPI)
	mux.HandleFunc("POST /training/enquiry", handleTrainingEnquiry)

	// account
	mux.Handle("GET /account/password", member(handleChangePassword))
	mux.Handle("POST /account/password", member(handleChangePassword))

	// lessons
	mux.Handle("GET /bookings", member(handleBookingsPage))
	mux.Handle("GET /api/bookings", member(handleBookingsAPI))
	mux.Handle("POST /bookings", member(handleBookLesson))
	mux.Handle("POST /bookings/{id}/cancel", member(handleCancelBooking))
	mux.Handle("GET /bookings/mine", member(handleMyBookingsPage))
	mux.Handle("GET /api/bookings/mine", member(handleMyBookingsAPI))

	// pilates
	mux.Handle("GET /pilates", member(handlePilatesPage))
	mux.Handle("GET /api/pilates", member(handlePilatesAPI))
	mux.Handle("POST /pilates/reservations", member(handleReservePilates))
	mux.Handle("POST /pilates/reservations/{id}/cancel", member(handleCancelPilates))

	// qr codes
	mux.Handle("GET /qr", member(handleQRPage))
	mux.Handle("GET /api/qr", member(handleQRAPI))
	mux.Handle("POST /qr", member(handleGenerateQR))
	mux.Handle("POST /qr/{id}/revoke", member(handleRevokeQR))
	mux.Handle("GET /qr/{id}/image.png", member(handleQRImage))
	mux.Handle("GET /qr/{id}/share", member(handleQRShare))

	// front desk
	mux.Handle("GET /scan", staff(http.HandlerFunc(handleScanPage)))
	mux.Handle("POST /scan", staff(http.HandlerFunc(handleScan)))
	mux.Handle("POST /scan/manual", staff(http.HandlerFunc(handleManualCheckIn)))
	mux.Handle("GET /api/desk/today", staff(http.HandlerFunc(handleDeskTodayAPI)))

	// admin API
	mux.Handle("GET /api/admin/lessons", admin(http.HandlerFunc(handleAdminLessons)))
	mux.Handle("POST /api/admin/lessons", admin(http.HandlerFunc(handleAdminSaveLesson)))
	mux.Handle("DELETE /api/admin/lessons", admin(http.HandlerFunc(handleAdminDeleteLesson)))
	mux.Handle("GET /api/admin/pilates/slots", admin(http.HandlerFunc(handleAdminSlots)))
	mux.Handle("POST /api/admin/pilates/slots", admin(http.HandlerFunc(handleAdminSaveSlot)))
	mux.Handle("DELETE /api/admin/pilates/slots", admin(http.HandlerFunc(handleAdminDeleteSlot)))
	mux.Handle("GET /api/admin/closures", admin(http.HandlerFunc(handleAdminClosures)))
	mux.Handle("POST /api/admin/closures", admin(http.HandlerFunc(handleAdminSaveClosure)))
	mux.Handle("DELETE /api/admin/closures", admin(http.HandlerFunc(handleAdminDeleteClosure)))
	mux.Handle("GET /api/admin/members", admin(http.HandlerFunc(handleAdminMembers)))
	mux.Handle("POST /api/admin/members", admin(http.HandlerFunc(handleAdminCreateMember)))
	mux.Handle("POST /api/admin/members/{id}/status", admin(http.HandlerFunc(handleAdminMemberStatus)))
	mux.Handle("GET /api/admin/perf", admin(http.HandlerFunc(handleAdminPerf)))
	mux.Handle("GET /api/admin/outbox", admin(http.HandlerFunc(handleAdminOutbox)))
}

// handleHealthz handles GET /healthz
func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
