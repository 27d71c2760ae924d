package web

import (
	"net"
	"net/http"

	"gymportal/internal/application/orchestrators"
	"gymportal/internal/application/projections"
	"gymportal/internal/domain/training"
	"gymportal/internal/i18n"
)

type trainingPage struct {
	projections.PersonalTrainingResult
	Sent bool
}

// handleTrainingPage handles GET /training
func handleTrainingPage(w http.ResponseWriter, r *http.Request) {
	t := i18n.FromContext(r.Context())
	res := projections.QueryPersonalTraining(stores.Content, t.Lang())
	renderTemplate(w, r, "personal_training.html", newPage(r, "training.title", "training", trainingPage{
		PersonalTrainingResult: res,
		Sent:                   r.URL.Query().Get("ok") == "training.enquiry_sent",
	}))
}

type packageJSON struct {
	Name        string `json:"name"`
	Sessions    int    `json:"sessions"`
	PriceCents  int    `json:"price_cents"`
	Currency    string `json:"currency"`
	Price       string `json:"price"`
	PerSession  string `json:"per_session"`
	Description string `json:"description"`
	Featured    bool   `json:"featured"`
}

// handleTrainingAPI handles GET /api/training
func handleTrainingAPI(w http.ResponseWriter, r *http.Request) {
	t := i18n.FromContext(r.Context())
	res := projections.QueryPersonalTraining(stores.Content, t.Lang())
	packages := make([]packageJSON, len(res.Packages))
	for i, p := range res.Packages {
		packages[i] = packageJSON{
			Name: p.Name, Sessions: p.Sessions, PriceCents: p.PriceCents, Currency: p.Currency,
			Price: p.Price, PerSession: p.PerSession, Description: p.Description, Featured: p.Featured,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"lang":     t.Lang(),
		"headline": res.Content.Headline,
		"intro":    res.Content.Intro,
		"trainers": res.Content.Trainers,
		"packages": packages,
		"faq":      res.Content.FAQ,
	})
}

// handleTrainingEnquiry handles POST /training/enquiry
func handleTrainingEnquiry(w http.ResponseWriter, r *http.Request) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !enquiryLimiter.Allow(host) {
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": i18n.FromContext(r.Context()).T("error.rate_limited")})
		return
	}
	if emailSender == nil {
		http.Error(w, "enquiries are not available", http.StatusServiceUnavailable)
		return
	}

	var in struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Package string `json:"package"`
		Message string `json:"message"`
	}
	if isJSON(r) {
		if err := strictDecode(r, &in); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
	} else {
		in.Name, in.Email, in.Package, in.Message = r.FormValue("name"), r.FormValue("email"), r.FormValue("package"), r.FormValue("message")
	}

	t := i18n.FromContext(r.Context())
	err = orchestrators.ExecuteSendTrainingEnquiry(r.Context(), training.Enquiry{
		Name:    in.Name,
		Email:   in.Email,
		Package: in.Package,
		Message: in.Message,
	}, orchestrators.SendTrainingEnquiryDeps{
		Content:    stores.Content.For(t.Lang()),
		Sender:     emailSender,
		To:         settings.EnquiryTo,
		Translator: t,
	})
	if err != nil {
		fail(w, r, err, "/training#enquiry")
		return
	}
	if isJSON(r) {
		writeJSON(w, http.StatusAccepted, map[string]string{"message": t.T("training.enquiry_sent")})
		return
	}
	redirectWith(w, r, "/training#enquiry", "ok", "training.enquiry_sent")
}
