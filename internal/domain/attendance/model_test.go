package attendance_test

import (
	"testing"
	"time"

	"gymportal/internal/domain/attendance"
)

// TestAttendance_Validate tests validation of Attendance.
func TestAttendance_Validate(t *testing.T) {
	now := time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)
	tests := []struct {
		name    string
		a       attendance.Attendance
		wantErr error
	}{
		{"qr entry", attendance.Attendance{MemberID: "m1", CheckInTime: now, Method: attendance.MethodQR, CodeID: "c1"}, nil},
		{"manual entry", attendance.Attendance{MemberID: "m1", CheckInTime: now, Method: attendance.MethodManual}, nil},
		{"no member", attendance.Attendance{CheckInTime: now, Method: attendance.MethodManual}, attendance.ErrEmptyMemberID},
		{"no time", attendance.Attendance{MemberID: "m1", Method: attendance.MethodManual}, attendance.ErrNoCheckInTime},
		{"qr without code", attendance.Attendance{MemberID: "m1", CheckInTime: now, Method: attendance.MethodQR}, attendance.ErrMissingCode},
		{"unknown method", attendance.Attendance{MemberID: "m1", CheckInTime: now, Method: "nfc"}, attendance.ErrInvalidMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.a.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
