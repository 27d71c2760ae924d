package i18n

// text is one message in every supported language.
type text struct{ en, it string }

var monthKeys = [12]string{
	"month.january", "month.february", "month.march", "month.april",
	"month.may", "month.june", "month.july", "month.august",
	"month.september", "month.october", "month.november", "month.december",
}

// weekdayKeys is indexed by time.Weekday.
var weekdayKeys = [7]string{
	"weekday.sunday", "weekday.monday", "weekday.tuesday", "weekday.wednesday",
	"weekday.thursday", "weekday.friday", "weekday.saturday",
}

var messages = map[string]text{
	// formats
	"format.day":      {"%s %d %s", "%s %d %s"},
	"format.month":    {"%s %s", "%s %s"},
	"format.datetime": {"%d %s, %s", "%d %s, %s"},

	// calendar names
	"month.january":   {"January", "gennaio"},
	"month.february":  {"February", "febbraio"},
	"month.march":     {"March", "marzo"},
	"month.april":     {"April", "aprile"},
	"month.may":       {"May", "maggio"},
	"month.june":      {"June", "giugno"},
	"month.july":      {"July", "luglio"},
	"month.august":    {"August", "agosto"},
	"month.september": {"September", "settembre"},
	"month.october":   {"October", "ottobre"},
	"month.november":  {"November", "novembre"},
	"month.december":  {"December", "dicembre"},

	"weekday.sunday":          {"Sunday", "domenica"},
	"weekday.monday":          {"Monday", "lunedì"},
	"weekday.tuesday":         {"Tuesday", "martedì"},
	"weekday.wednesday":       {"Wednesday", "mercoledì"},
	"weekday.thursday":        {"Thursday", "giovedì"},
	"weekday.friday":          {"Friday", "venerdì"},
	"weekday.saturday":        {"Saturday", "sabato"},
	"weekday.sunday.short":    {"Sun", "dom"},
	"weekday.monday.short":    {"Mon", "lun"},
	"weekday.tuesday.short":   {"Tue", "mar"},
	"weekday.wednesday.short": {"Wed", "mer"},
	"weekday.thursday.short":  {"Thu", "gio"},
	"weekday.friday.short":    {"Fri", "ven"},
	"weekday.saturday.short":  {"Sat", "sab"},

	// navigation and common
	"nav.bookings":  {"Bookings", "Prenotazioni"},
	"nav.training":  {"Personal Training", "Personal Training"},
	"nav.pilates":   {"Pilates", "Pilates"},
	"nav.qr":        {"QR Codes", "Codici QR"},
	"nav.scan":      {"Scan", "Scansiona"},
	"nav.logout":    {"Log out", "Esci"},
	"common.close":  {"Close", "Chiudi"},
	"common.cancel": {"Cancel", "Annulla"},
	"common.today":  {"Today", "Oggi"},
	"common.prev":   {"Previous", "Precedente"},
	"common.next":   {"Next", "Successivo"},
	"common.error":  {"Something went wrong. Please try again.", "Qualcosa è andato storto. Riprova."},

	// login
	"login.title":    {"Log in", "Accedi"},
	"login.email":    {"Email", "Email"},
	"login.password": {"Password", "Password"},
	"login.submit":   {"Log in", "Accedi"},
	"login.failed":   {"Incorrect email or password.", "Email o password non corretti."},
	"login.locked":   {"Too many failed attempts. Try again in 15 minutes.", "Troppi tentativi falliti. Riprova tra 15 minuti."},

	// account
	"account.title":            {"Change password", "Cambia password"},
	"account.current_password": {"Current password", "Password attuale"},
	"account.new_password":     {"New password", "Nuova password"},
	"account.submit":           {"Update password", "Aggiorna password"},
	"account.password_changed": {"Password updated.", "Password aggiornata."},
	"account.current_wrong":    {"Your current password is not correct.", "La password attuale non è corretta."},
	"account.same_password":    {"Choose a password different from the current one.", "Scegli una password diversa da quella attuale."},
	"account.too_short":        {"The new password must be at least 12 characters.", "La nuova password deve avere almeno 12 caratteri."},

	// lists
	"list.date":      {"Date", "Data"},
	"list.lesson":    {"Lesson", "Lezione"},
	"list.status":    {"Status", "Stato"},
	"list.booked_on": {"Booked on", "Prenotata il"},
	"list.total":     {"%d in total", "%d in totale"},

	// lesson availability
	"availability.past":       {"Finished", "Terminata"},
	"availability.booked":     {"Booked", "Prenotato"},
	"availability.waitlisted": {"On waitlist", "In lista d'attesa"},
	"availability.full":       {"Full", "Completo"},
	"availability.few_spots":  {"Few spots left", "Ultimi posti"},
	"availability.available":  {"Available", "Disponibile"},

	// booking status
	"booking.confirmed":  {"Confirmed", "Confermata"},
	"booking.waitlisted": {"Waitlisted", "In lista d'attesa"},
	"booking.cancelled":  {"Cancelled", "Annullata"},

	// lesson categories
	"category.group":      {"Group class", "Corso di gruppo"},
	"category.functional": {"Functional", "Funzionale"},
	"category.yoga":       {"Yoga", "Yoga"},
	"category.spinning":   {"Spinning", "Spinning"},
	"category.boxing":     {"Boxing", "Boxe"},

	// bookings page
	"bookings.title":         {"Book a lesson", "Prenota una lezione"},
	"bookings.no_lessons":    {"No lessons on this day.", "Nessuna lezione in questo giorno."},
	"bookings.lessons_on":    {"Lessons on %s", "Lezioni di %s"},
	"bookings.with":          {"with %s", "con %s"},
	"bookings.spots_left":    {"%d of %d spots left", "%d posti liberi su %d"},
	"bookings.book":          {"Book", "Prenota"},
	"bookings.join_waitlist": {"Join waitlist", "Entra in lista d'attesa"},
	"bookings.cancel":        {"Cancel booking", "Annulla prenotazione"},
	"bookings.confirm":       {"Confirm", "Conferma"},
	"bookings.modal_title":   {"Book %s?", "Prenotare %s?"},
	"bookings.confirmed":     {"You're booked in.", "Prenotazione confermata."},
	"bookings.waitlisted":    {"The lesson is full. You're on the waitlist and we'll email you if a spot opens.", "La lezione è al completo. Sei in lista d'attesa e ti scriveremo se si libera un posto."},
	"bookings.cancelled":     {"Booking cancelled.", "Prenotazione annullata."},
	"bookings.mine":          {"My bookings", "Le mie prenotazioni"},
	"bookings.none":          {"You have no bookings yet.", "Non hai ancora prenotazioni."},
	"bookings.filter_all":    {"All", "Tutte"},

	// personal training
	"training.packages":     {"Packages", "Pacchetti"},
	"training.trainers":     {"Our trainers", "I nostri trainer"},
	"training.sessions":     {"%d sessions", "%d sessioni"},
	"training.per_session":  {"%s per session", "%s a sessione"},
	"training.faq":          {"Frequently asked questions", "Domande frequenti"},
	"training.enquire":      {"Ask about personal training", "Richiedi informazioni"},
	"training.name":         {"Your name", "Il tuo nome"},
	"training.email":        {"Your email", "La tua email"},
	"training.package":      {"Package", "Pacchetto"},
	"training.package_any":  {"Not sure yet", "Non so ancora"},
	"training.message":      {"Message", "Messaggio"},
	"training.send":         {"Send", "Invia"},
	"training.enquiry_sent": {"Thanks! A trainer will get back to you soon.", "Grazie! Un trainer ti contatterà presto."},

	"training.title": {"Personal training", "Personal training"},

	// pilates
	"pilates.title":     {"Pilates calendar", "Calendario pilates"},
	"pilates.week_of":   {"Week of %s", "Settimana del %s"},
	"pilates.prev_week": {"Previous week", "Settimana precedente"},
	"pilates.next_week": {"Next week", "Settimana successiva"},
	"pilates.reserve":   {"Reserve", "Prenota"},
	"pilates.cancel":    {"Cancel", "Annulla"},
	"pilates.spots":     {"%d spots left", "%d posti liberi"},
	"pilates.reserved":  {"Reserved.", "Prenotato."},
	"pilates.cancelled": {"Reservation cancelled.", "Prenotazione annullata."},
	"pilates.no_slots":  {"No pilates classes are scheduled.", "Nessuna lezione di pilates in programma."},

	"cell.closed":    {"Closed", "Chiuso"},
	"cell.past":      {"Past", "Passata"},
	"cell.booked":    {"Booked", "Prenotato"},
	"cell.full":      {"Full", "Completo"},
	"cell.few_spots": {"Few spots", "Ultimi posti"},
	"cell.available": {"Available", "Disponibile"},

	"level.beginner":     {"Beginner", "Principianti"},
	"level.intermediate": {"Intermediate", "Intermedio"},
	"level.advanced":     {"Advanced", "Avanzato"},
	"level.all":          {"All levels", "Tutti i livelli"},

	// qr codes
	"qr.title":           {"My QR codes", "I miei codici QR"},
	"qr.generate":        {"Generate", "Genera"},
	"qr.label":           {"Label (optional)", "Etichetta (facoltativa)"},
	"qr.download":        {"Download", "Scarica"},
	"qr.share":           {"Share", "Condividi"},
	"qr.revoke":          {"Revoke", "Revoca"},
	"qr.none":            {"No codes yet.", "Nessun codice."},
	"qr.expires":         {"Expires %s", "Scade il %s"},
	"qr.no_expiry":       {"No expiry", "Nessuna scadenza"},
	"qr.share_title":     {"%s QR code", "Codice QR %s"},
	"qr.share_text":      {"Show this code at the front desk.", "Mostra questo codice alla reception."},
	"qr.generated":       {"New code ready.", "Nuovo codice pronto."},
	"qr.revoked_ok":      {"Code revoked.", "Codice revocato."},
	"qr.state.active":    {"Active", "Attivo"},
	"qr.state.expired":   {"Expired", "Scaduto"},
	"qr.state.revoked":   {"Revoked", "Revocato"},
	"qr.state.used":      {"Used", "Utilizzato"},
	"qr.category.entry":  {"Entry pass", "Ingresso"},
	"qr.category.guest":  {"Guest pass", "Pass ospite"},
	"qr.category.locker": {"Locker", "Armadietto"},

	// front desk scan
	"scan.title":         {"Scan a code", "Scansiona un codice"},
	"scan.payload":       {"Scanned code", "Codice scansionato"},
	"scan.submit":        {"Check in", "Registra ingresso"},
	"scan.ok":            {"Welcome, %s!", "Benvenuto, %s!"},
	"scan.guest":         {"Guest of %s admitted.", "Ospite di %s ammesso."},
	"scan.locker":        {"Locker access granted for %s.", "Accesso armadietto per %s."},
	"scan.invalid":       {"Not a valid gym code.", "Codice non valido."},
	"scan.unknown":       {"Code not recognised.", "Codice non riconosciuto."},
	"scan.expired":       {"This code has expired.", "Questo codice è scaduto."},
	"scan.revoked":       {"This code was revoked.", "Questo codice è stato revocato."},
	"scan.used":          {"This guest pass was already used.", "Questo pass ospite è già stato utilizzato."},
	"scan.already_in":    {"Already checked in today.", "Ingresso già registrato oggi."},
	"scan.manual":        {"Check in without a code", "Ingresso senza codice"},
	"scan.choose_member": {"Choose a member", "Scegli un iscritto"},
	"scan.manual_ok":     {"Check-in recorded.", "Ingresso registrato."},
	"scan.today":         {"Today: %d members, %d guests", "Oggi: %d iscritti, %d ospiti"},
	"scan.suspended":     {"Membership suspended. Please see reception.", "Abbonamento sospeso. Rivolgiti alla reception."},

	// errors shown to members
	"error.lesson_not_found":      {"Lesson not found.", "Lezione non trovata."},
	"error.lesson_started":        {"This lesson has already started.", "Questa lezione è già iniziata."},
	"error.lesson_full":           {"This lesson and its waitlist are full.", "Lezione e lista d'attesa al completo."},
	"error.already_booked":        {"You already have a booking for this lesson.", "Hai già una prenotazione per questa lezione."},
	"error.already_cancelled":     {"This booking is already cancelled.", "Questa prenotazione è già annullata."},
	"error.cutoff":                {"It's too late to cancel online. Please contact the gym.", "È troppo tardi per annullare online. Contatta la palestra."},
	"error.not_owner":             {"That booking belongs to someone else.", "Questa prenotazione appartiene a un altro utente."},
	"error.booking_not_found":     {"Booking not found.", "Prenotazione non trovata."},
	"error.slot_not_found":        {"Pilates class not found.", "Lezione di pilates non trovata."},
	"error.wrong_weekday":         {"That class does not run on this date.", "La lezione non si tiene in questa data."},
	"error.slot_started":          {"This class has already started.", "Questa lezione è già iniziata."},
	"error.slot_full":             {"This class is full.", "Questa lezione è al completo."},
	"error.closed":                {"The studio is closed on this date.", "Lo studio è chiuso in questa data."},
	"error.already_reserved":      {"You already reserved this class.", "Hai già prenotato questa lezione."},
	"error.reservation_not_found": {"Reservation not found.", "Prenotazione non trovata."},
	"error.suspended":             {"Your membership is suspended.", "Il tuo abbonamento è sospeso."},
	"error.guest_limit":           {"You already have 3 active guest passes.", "Hai già 3 pass ospite attivi."},
	"error.code_not_found":        {"Code not found.", "Codice non trovato."},
	"error.code_revoked":          {"This code is already revoked.", "Questo codice è già revocato."},
	"error.invalid_category":      {"Unknown code type.", "Tipo di codice sconosciuto."},
	"error.label_too_long":        {"Label is too long.", "Etichetta troppo lunga."},
	"error.enquiry_name":          {"Please tell us your name.", "Indica il tuo nome."},
	"error.enquiry_email":         {"Please enter a valid email address.", "Inserisci un indirizzo email valido."},
	"error.enquiry_message":       {"Message must be between 10 and 2000 characters.", "Il messaggio deve contenere tra 10 e 2000 caratteri."},
	"error.unknown_package":       {"Unknown package.", "Pacchetto sconosciuto."},
	"error.bad_date":              {"That date is not valid.", "Data non valida."},
	"error.member_not_found":      {"Member not found.", "Iscritto non trovato."},
	"error.code_inactive":         {"This code is no longer active.", "Questo codice non è più attivo."},
	"error.rate_limited":          {"Too many requests. Please slow down.", "Troppe richieste. Riprova tra poco."},

	// email
	"email.booked.subject":     {"Booked: %s on %s", "Prenotato: %s, %s"},
	"email.booked.body":        {"Hi %s,\n\nyou're booked in for %s on %s at %s.\n\nSee you there!", "Ciao %s,\n\nsei prenotato per %s, %s alle %s.\n\nA presto!"},
	"email.waitlisted.subject": {"Waitlist: %s on %s", "Lista d'attesa: %s, %s"},
	"email.waitlisted.body":    {"Hi %s,\n\n%s on %s at %s is full. You're on the waitlist and we'll email you if a spot opens.", "Ciao %s,\n\n%s del %s alle %s è al completo. Sei in lista d'attesa e ti scriveremo se si libera un posto."},
	"email.promoted.subject":   {"You're in: %s on %s", "Sei dentro: %s, %s"},
	"email.promoted.body":      {"Hi %s,\n\na spot opened up. You're now booked for %s on %s at %s.", "Ciao %s,\n\nsi è liberato un posto. Ora sei prenotato per %s, %s alle %s."},
	"email.reminder.subject":   {"Reminder: %s at %s", "Promemoria: %s alle %s"},
	"email.reminder.body":      {"Hi %s,\n\na reminder that %s starts on %s at %s. If you can't make it, please cancel so someone on the waitlist can take your spot.", "Ciao %s,\n\nti ricordiamo che %s inizia %s alle %s. Se non puoi venire, annulla la prenotazione così qualcuno in lista d'attesa potrà prendere il tuo posto."},
	"email.enquiry.subject":    {"Personal training enquiry from %s", "Richiesta personal training da %s"},
}
