package web

import (
	"errors"
	"net/http"

	"gymportal/internal/application/orchestrators"
	"gymportal/internal/domain/account"
	"gymportal/internal/domain/attendance"
	"gymportal/internal/domain/booking"
	"gymportal/internal/domain/calendar"
	"gymportal/internal/domain/closure"
	"gymportal/internal/domain/lesson"
	"gymportal/internal/domain/member"
	"gymportal/internal/domain/pilates"
	"gymportal/internal/domain/qrcode"
	"gymportal/internal/domain/training"
	"gymportal/internal/i18n"
)

// userError maps a domain error to a status and a message key.
type userError struct {
	err    error
	status int
	key    string
}

var userErrors = []userError{
	{lesson.ErrNotFound, http.StatusNotFound, "error.lesson_not_found"},
	{booking.ErrLessonStarted, http.StatusConflict, "error.lesson_started"},
	{booking.ErrLessonFull, http.StatusConflict, "error.lesson_full"},
	{booking.ErrAlreadyBooked, http.StatusConflict, "error.already_booked"},
	{booking.ErrAlreadyCancelled, http.StatusConflict, "error.already_cancelled"},
	{booking.ErrCutoffPassed, http.StatusConflict, "error.cutoff"},
	{booking.ErrNotOwner, http.StatusForbidden, "error.not_owner"},
	{booking.ErrNotFound, http.StatusNotFound, "error.booking_not_found"},
	{pilates.ErrSlotNotFound, http.StatusNotFound, "error.slot_not_found"},
	{pilates.ErrWrongWeekday, http.StatusBadRequest, "error.wrong_weekday"},
	{pilates.ErrSlotStarted, http.StatusConflict, "error.slot_started"},
	{pilates.ErrSlotFull, http.StatusConflict, "error.slot_full"},
	{pilates.ErrStudioClosed, http.StatusConflict, "error.closed"},
	{pilates.ErrAlreadyReserved, http.StatusConflict, "error.already_reserved"},
	{pilates.ErrAlreadyCancelled, http.StatusConflict, "error.already_cancelled"},
	{pilates.ErrCutoffPassed, http.StatusConflict, "error.cutoff"},
	{pilates.ErrNotOwner, http.StatusForbidden, "error.not_owner"},
	{pilates.ErrReservationNotFound, http.StatusNotFound, "error.reservation_not_found"},
	{member.ErrSuspended, http.StatusForbidden, "error.suspended"},
	{member.ErrNotFound, http.StatusNotFound, "error.member_not_found"},
	{qrcode.ErrGuestLimit, http.StatusConflict, "error.guest_limit"},
	{qrcode.ErrNotFound, http.StatusNotFound, "error.code_not_found"},
	{qrcode.ErrNotOwner, http.StatusNotFound, "error.code_not_found"},
	{qrcode.ErrNotActive, http.StatusGone, "error.code_inactive"},
	{qrcode.ErrAlreadyRevoked, http.StatusConflict, "error.code_revoked"},
	{qrcode.ErrInvalidCategory, http.StatusBadRequest, "error.invalid_category"},
	{qrcode.ErrLabelTooLong, http.StatusBadRequest, "error.label_too_long"},
	{training.ErrEnquiryName, http.StatusBadRequest, "error.enquiry_name"},
	{training.ErrEnquiryEmail, http.StatusBadRequest, "error.enquiry_email"},
	{training.ErrEnquiryMessage, http.StatusBadRequest, "error.enquiry_message"},
	{training.ErrUnknownPackage, http.StatusBadRequest, "error.unknown_package"},
	{account.ErrWrongPassword, http.StatusUnauthorized, "login.failed"},
	{account.ErrLocked, http.StatusTooManyRequests, "login.locked"},
	{orchestrators.ErrCurrentPasswordWrong, http.StatusBadRequest, "account.current_wrong"},
	{orchestrators.ErrNewPasswordSame, http.StatusBadRequest, "account.same_password"},
	{account.ErrPasswordTooShort, http.StatusBadRequest, "account.too_short"},
	{attendance.ErrAlreadyInToday, http.StatusConflict, "scan.already_in"},
	{calendar.ErrInvalidDate, http.StatusBadRequest, "error.bad_date"},
	{calendar.ErrInvalidMonth, http.StatusBadRequest, "error.bad_date"},
}

// adminErrors are validation failures reported verbatim on the admin API.
var adminErrors = []error{
	lesson.ErrEmptyTitle, lesson.ErrTitleTooLong, lesson.ErrInvalidCategory, lesson.ErrInvalidDate,
	lesson.ErrInvalidTime, lesson.ErrEndBeforeStart, lesson.ErrInvalidCapacity,
	pilates.ErrInvalidDay, pilates.ErrInvalidTime, pilates.ErrEndBeforeStart, pilates.ErrEmptyInstructor,
	pilates.ErrInvalidLevel, pilates.ErrInvalidCapacity,
	closure.ErrEmptyName, closure.ErrInvalidDates, closure.ErrEmptyStartDate, closure.ErrEmptyEndDate,
	member.ErrInvalidStatus, member.ErrAlreadySuspended, member.ErrNotSuspended, member.ErrNotFound,
	member.ErrEmptyName, member.ErrNameTooLong, member.ErrInvalidEmail,
	account.ErrEmailTaken, account.ErrInvalidEmail, account.ErrEmptyEmail, account.ErrInvalidRole,
	orchestrators.ErrLessonHasBookings, orchestrators.ErrCapacityBelowBookings, orchestrators.ErrSlotClash,
}

// lookupUserError finds the mapping for err.
func lookupUserError(err error) (userError, bool) {
	for _, ue := range userErrors {
		if errors.Is(err, ue.err) {
			return ue, true
		}
	}
	return userError{}, false
}

// fail reports err to the client. Known errors become a translated 4xx:
// JSON callers get {"error","code"}, form posts are redirected to back with ?err=.
// Anything else is a 500 with a generic body.
func fail(w http.ResponseWriter, r *http.Request, err error, back string) {
	ue, ok := lookupUserError(err)
	if !ok {
		internalError(w, err)
		return
	}
	if isJSON(r) || back == "" {
		writeJSON(w, ue.status, map[string]string{
			"error": i18n.FromContext(r.Context()).T(ue.key),
			"code":  ue.key,
		})
		return
	}
	redirectWith(w, r, back, "err", ue.key)
}

// failAdmin reports admin API errors; validation failures come back as 400 with the raw message.
func failAdmin(w http.ResponseWriter, r *http.Request, err error) {
	for _, known := range adminErrors {
		if errors.Is(err, known) {
			status := http.StatusBadRequest
			if errors.Is(err, member.ErrNotFound) {
				status = http.StatusNotFound
			}
			if errors.Is(err, account.ErrEmailTaken) || errors.Is(err, orchestrators.ErrLessonHasBookings) || errors.Is(err, orchestrators.ErrSlotClash) {
				status = http.StatusConflict
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
	}
	if _, ok := lookupUserError(err); ok {
		fail(w, r, err, "")
		return
	}
	internalError(w, err)
}

// badRequest answers a malformed request.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
