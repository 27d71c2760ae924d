package web

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"gymportal/internal/adapters/qr"
	"gymportal/internal/application/orchestrators"
	"gymportal/internal/application/projections"
	"gymportal/internal/domain/qrcode"
	"gymportal/internal/i18n"
)

// thumbnailSize is the inline image size on the QR page.
const thumbnailSize = 192

type qrCodeJSON struct {
	ID         string       `json:"id"`
	Category   string       `json:"category"`
	Label      string       `json:"label,omitempty"`
	State      string       `json:"state"`
	StateLabel string       `json:"state_label"`
	Payload    string       `json:"payload,omitempty"`
	CreatedAt  string       `json:"created_at"`
	ExpiresAt  string       `json:"expires_at,omitempty"`
	Expiry     string       `json:"expiry"`
	ImageURL   string       `json:"image_url,omitempty"`
	DataURL    template.URL `json:"data_url,omitempty"`
	Filename   string       `json:"filename,omitempty"`
}

type qrGroupJSON struct {
	Category    string       `json:"category"`
	Title       string       `json:"title"`
	Active      int          `json:"active"`
	CanGenerate bool         `json:"can_generate"`
	Codes       []qrCodeJSON `json:"codes"`
}

// toQRJSON converts the grouped codes. Payloads and images are only exposed
// for active codes; inline data URLs are rendered when inline is set.
func toQRJSON(t *i18n.Translator, groups []projections.QRGroup, inline bool) []qrGroupJSON {
	out := make([]qrGroupJSON, len(groups))
	for i, g := range groups {
		codes := make([]qrCodeJSON, len(g.Codes))
		for j, v := range g.Codes {
			c := v.Code
			cj := qrCodeJSON{
				ID:         c.ID,
				Category:   c.Category,
				Label:      c.Label,
				State:      v.State,
				StateLabel: t.T("qr.state." + v.State),
				CreatedAt:  c.CreatedAt.Format(time.RFC3339),
				Expiry:     t.T("qr.no_expiry"),
			}
			if !c.ExpiresAt.IsZero() {
				cj.ExpiresAt = c.ExpiresAt.Format(time.RFC3339)
				cj.Expiry = t.T("qr.expires", t.FormatDateTime(c.ExpiresAt.In(settings.Location)))
			}
			if v.State == qrcode.StateActive {
				cj.Payload = v.Payload
				cj.ImageURL = "/qr/" + c.ID + "/image.png"
				cj.Filename = c.Filename(settings.Location)
				if inline {
					if data, err := qrRenderer.DataURL(v.Payload, thumbnailSize); err == nil {
						cj.DataURL = template.URL(data)
					}
				}
			}
			codes[j] = cj
		}
		out[i] = qrGroupJSON{
			Category:    g.Category,
			Title:       t.T("qr.category." + g.Category),
			Active:      g.Active,
			CanGenerate: g.CanGenerate,
			Codes:       codes,
		}
	}
	return out
}

func queryMyCodes(r *http.Request, memberID string) ([]projections.QRGroup, error) {
	return projections.QueryMyQRCodes(r.Context(), memberID, projections.MyQRCodesDeps{
		CodeStore: stores.QRCodeStore,
		Now:       timeNow,
	})
}

// ownCode loads a code and hides other members' codes behind a not-found.
func ownCode(r *http.Request, memberID string) (qrcode.Code, error) {
	c, err := stores.QRCodeStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		return qrcode.Code{}, err
	}
	if c.MemberID != memberID {
		return qrcode.Code{}, qrcode.ErrNotOwner
	}
	return c, nil
}

// handleQRPage handles GET /qr
func handleQRPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	groups, err := queryMyCodes(r, sess.MemberID)
	if err != nil {
		fail(w, r, err, "/qr")
		return
	}
	renderTemplate(w, r, "qr.html", newPage(r, "qr.title", "qr", toQRJSON(i18n.FromContext(r.Context()), groups, true)))
}

// handleQRAPI handles GET /api/qr
func handleQRAPI(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	groups, err := queryMyCodes(r, sess.MemberID)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, toQRJSON(i18n.FromContext(r.Context()), groups, r.URL.Query().Get("inline") == "1"))
}

// handleGenerateQR handles POST /qr
// JSON body {"category","label"} or the same form fields.
func handleGenerateQR(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	var in struct {
		Category string `json:"category"`
		Label    string `json:"label"`
	}
	if isJSON(r) {
		if err := strictDecode(r, &in); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
	} else {
		in.Category, in.Label = r.FormValue("category"), r.FormValue("label")
	}

	code, err := orchestrators.ExecuteGenerateQRCode(r.Context(), orchestrators.GenerateQRCodeInput{
		MemberID: sess.MemberID,
		Category: in.Category,
		Label:    in.Label,
	}, orchestrators.GenerateQRCodeDeps{
		CodeStore:   stores.QRCodeStore,
		MemberStore: stores.MemberStore,
		Issuer:      orchestrators.UUIDTokenIssuer{},
		Location:    settings.Location,
		GenerateID:  generateID,
		Now:         timeNow,
	})
	if err != nil {
		fail(w, r, err, "/qr")
		return
	}
	if isJSON(r) {
		t := i18n.FromContext(r.Context())
		view := projections.QRCodeView{Code: code, State: code.State(timeNow()), Payload: code.Payload()}
		groups := toQRJSON(t, []projections.QRGroup{{Category: code.Category, Codes: []projections.QRCodeView{view}}}, true)
		writeJSON(w, http.StatusCreated, groups[0].Codes[0])
		return
	}
	redirectWith(w, r, "/qr#"+code.Category, "ok", "qr.generated")
}

// handleRevokeQR handles POST /qr/{id}/revoke
func handleRevokeQR(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	code, err := orchestrators.ExecuteRevokeQRCode(r.Context(), orchestrators.RevokeQRCodeInput{
		CodeID:   r.PathValue("id"),
		MemberID: sess.MemberID,
	}, orchestrators.RevokeQRCodeDeps{
		CodeStore: stores.QRCodeStore,
		Now:       timeNow,
	})
	if err != nil {
		fail(w, r, err, "/qr")
		return
	}
	if isJSON(r) {
		writeJSON(w, http.StatusOK, map[string]string{"id": code.ID, "state": code.State(timeNow())})
		return
	}
	redirectWith(w, r, "/qr", "ok", "qr.revoked_ok")
}

// handleQRImage handles GET /qr/{id}/image.png
// ?size= is clamped to the renderer bounds; ?download=1 serves it as an attachment.
func handleQRImage(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	code, err := ownCode(r, sess.MemberID)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	if !code.IsActive(timeNow()) {
		fail(w, r, qrcode.ErrNotActive, "")
		return
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	png, err := qrRenderer.PNG(code.Payload(), qr.ClampSize(size))
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+code.Filename(settings.Location)+`"`)
	}
	_, _ = w.Write(png)
}

// handleQRShare handles GET /qr/{id}/share
// Returns what the browser hands to the Web Share API.
func handleQRShare(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	code, err := ownCode(r, sess.MemberID)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	if !code.IsActive(timeNow()) {
		fail(w, r, qrcode.ErrNotActive, "")
		return
	}
	data, err := qrRenderer.DataURL(code.Payload(), qr.DefaultSize)
	if err != nil {
		internalError(w, err)
		return
	}
	t := i18n.FromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{
		"title":    t.T("qr.share_title", t.T("qr.category."+code.Category)),
		"text":     t.T("qr.share_text"),
		"filename": code.Filename(settings.Location),
		"data_url": data,
	})
}
