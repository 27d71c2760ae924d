package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gymportal/internal/domain/attendance"
	"gymportal/internal/domain/member"
	"gymportal/internal/domain/qrcode"
)

// Scan results. Each maps to a scan.<result> message shown at the desk.
const (
	ScanOK        = "ok"
	ScanGuest     = "guest"
	ScanLocker    = "locker"
	ScanInvalid   = "invalid"
	ScanUnknown   = "unknown"
	ScanExpired   = "expired"
	ScanRevoked   = "revoked"
	ScanUsed      = "used"
	ScanSuspended = "suspended"
)

// AttendanceStore defines the interface for attendance persistence.
type AttendanceStore interface {
	Save(ctx context.Context, a attendance.Attendance) error
	CountByMemberAndDate(ctx context.Context, memberID, date string, guest bool) (int, error)
}

// ScanQRCodeInput carries the payload read by the desk scanner.
type ScanQRCodeInput struct {
	Payload   string
	ScannedBy string // staff account ID
}

// ScanResult is what the desk sees after a scan.
type ScanResult struct {
	Result     string
	MemberName string
	Category   string
	Attendance *attendance.Attendance // nil when nothing was recorded
}

// ScanQRCodeDeps holds dependencies for ScanQRCode.
type ScanQRCodeDeps struct {
	CodeStore       QRCodeStore
	MemberStore     MemberStoreForBooking
	AttendanceStore AttendanceStore
	Location        *time.Location
	GenerateID      func() string
	Now             func() time.Time
}

// ExecuteScanQRCode validates a scanned payload and checks the holder in.
// Rejections are reported through ScanResult.Result; only store failures return an error.
// PRE: ScannedBy is a staff or admin account
// POST: Entry and guest scans record attendance (entry at most once per day); guest codes become used
func ExecuteScanQRCode(ctx context.Context, input ScanQRCodeInput, deps ScanQRCodeDeps) (ScanResult, error) {
	category, token, err := qrcode.ParsePayload(input.Payload)
	if err != nil {
		slog.Info("checkin_event", "event", "scan_rejected", "reason", ScanInvalid)
		return ScanResult{Result: ScanInvalid}, nil
	}

	code, err := deps.CodeStore.GetByToken(ctx, token)
	if errors.Is(err, qrcode.ErrNotFound) || (err == nil && code.Category != category) {
		slog.Info("checkin_event", "event", "scan_rejected", "reason", ScanUnknown)
		return ScanResult{Result: ScanUnknown}, nil
	}
	if err != nil {
		return ScanResult{}, err
	}

	now := deps.Now()
	result := ScanResult{Category: code.Category}
	switch code.State(now) {
	case qrcode.StateRevoked:
		result.Result = ScanRevoked
	case qrcode.StateUsed:
		result.Result = ScanUsed
	case qrcode.StateExpired:
		result.Result = ScanExpired
	}
	if result.Result != "" {
		slog.Info("checkin_event", "event", "scan_rejected", "code_id", code.ID, "reason", result.Result)
		return result, nil
	}

	m, err := deps.MemberStore.GetByID(ctx, code.MemberID)
	if err != nil {
		return ScanResult{}, err
	}
	result.MemberName = m.Name
	if !m.IsActive() {
		result.Result = ScanSuspended
		slog.Info("checkin_event", "event", "scan_rejected", "code_id", code.ID, "reason", result.Result)
		return result, nil
	}

	if code.Category == qrcode.CategoryLocker {
		result.Result = ScanLocker
		slog.Info("checkin_event", "event", "locker_opened", "code_id", code.ID, "member_id", m.ID)
		return result, nil
	}

	guest := code.Category == qrcode.CategoryGuest
	result.Result = ScanOK
	if guest {
		result.Result = ScanGuest
		if err := code.MarkScanned(now); err != nil {
			return ScanResult{}, err
		}
		if err := deps.CodeStore.Save(ctx, code); err != nil {
			return ScanResult{}, err
		}
	}

	date := now.In(deps.Location).Format("2006-01-02")
	if !guest {
		n, err := deps.AttendanceStore.CountByMemberAndDate(ctx, m.ID, date, false)
		if err != nil {
			return ScanResult{}, err
		}
		if n > 0 {
			slog.Info("checkin_event", "event", "repeat_entry", "member_id", m.ID, "date", date)
			return result, nil
		}
	}

	a := attendance.Attendance{
		ID:          deps.GenerateID(),
		MemberID:    m.ID,
		CheckInTime: now,
		Date:        date,
		Method:      attendance.MethodQR,
		CodeID:      code.ID,
		Category:    code.Category,
		Guest:       guest,
		ScannedBy:   input.ScannedBy,
	}
	if err := a.Validate(); err != nil {
		return ScanResult{}, err
	}
	if err := deps.AttendanceStore.Save(ctx, a); err != nil {
		return ScanResult{}, err
	}
	result.Attendance = &a

	slog.Info("checkin_event", "event", "member_checked_in", "member_id", m.ID, "code_id", code.ID, "guest", guest)
	return result, nil
}

// ManualCheckInInput carries input for a desk check-in without a code.
type ManualCheckInInput struct {
	MemberID  string
	ScannedBy string
}

// ExecuteManualCheckIn records an entry for a member who has no code on them.
// PRE: MemberID is non-empty
// POST: Attendance recorded once per member per day
func ExecuteManualCheckIn(ctx context.Context, input ManualCheckInInput, deps ScanQRCodeDeps) (attendance.Attendance, error) {
	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if !m.IsActive() {
		return attendance.Attendance{}, member.ErrSuspended
	}

	now := deps.Now()
	date := now.In(deps.Location).Format("2006-01-02")
	n, err := deps.AttendanceStore.CountByMemberAndDate(ctx, m.ID, date, false)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if n > 0 {
		return attendance.Attendance{}, attendance.ErrAlreadyInToday
	}

	a := attendance.Attendance{
		ID:          deps.GenerateID(),
		MemberID:    m.ID,
		CheckInTime: now,
		Date:        date,
		Method:      attendance.MethodManual,
		ScannedBy:   input.ScannedBy,
	}
	if err := a.Validate(); err != nil {
		return attendance.Attendance{}, err
	}
	if err := deps.AttendanceStore.Save(ctx, a); err != nil {
		return attendance.Attendance{}, err
	}
	slog.Info("checkin_event", "event", "manual_check_in", "member_id", m.ID, "by", input.ScannedBy)
	return a, nil
}
