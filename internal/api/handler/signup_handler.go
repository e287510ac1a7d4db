package handler

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"signup_portal/internal/app/service"
	"signup_portal/internal/common"
	"signup_portal/internal/domain/model"
)

const maxFormBytes = 64 << 10

//go:embed templates/signup.html
var templateFS embed.FS

var signupPage = template.Must(template.ParseFS(templateFS, "templates/signup.html"))

type SignupHandler struct {
	registrationService *service.RegistrationService
	loginURL            string
	logger              *zap.Logger
}

func NewSignupHandler(registrationService *service.RegistrationService, loginURL string, logger *zap.Logger) *SignupHandler {
	return &SignupHandler{registrationService: registrationService, loginURL: loginURL, logger: logger}
}

// RegisterRoutes mounts the browser-facing form endpoints.
func (h *SignupHandler) RegisterRoutes(r chi.Router) {
	r.Get("/signup", h.signupPage)
	r.Post("/signup", h.signupForm)
}

// RegisterAPIRoutes mounts the JSON endpoint.
func (h *SignupHandler) RegisterAPIRoutes(r chi.Router) {
	r.Post("/signup", h.signupJSON)
}

type signupPageData struct {
	Form     service.RegistrationRequest
	Error    string
	Roles    []string
	LoginURL string
}

func (h *SignupHandler) renderPage(w http.ResponseWriter, code int, form service.RegistrationRequest, message string) {
	form.Password = ""
	common.RespondWithHTML(w, code, signupPage, signupPageData{
		Form:     form,
		Error:    message,
		Roles:    model.Roles(),
		LoginURL: h.loginURL,
	})
}

func (h *SignupHandler) signupPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, http.StatusOK, service.RegistrationRequest{Role: model.RoleUser}, "")
}

func (h *SignupHandler) signupForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Info("malformed signup form", zap.Error(err))
		h.renderPage(w, http.StatusBadRequest, service.RegistrationRequest{}, "Invalid request payload.")
		return
	}

	req := service.RegistrationRequest{
		FirstName: r.PostFormValue("firstname"),
		LastName:  r.PostFormValue("lastname"),
		Email:     r.PostFormValue("email"),
		Phone:     r.PostFormValue("phone"),
		Password:  r.PostFormValue("password"),
		Role:      r.PostFormValue("role"),
	}

	if _, err := h.registrationService.Register(r.Context(), req); err != nil {
		h.renderPage(w, common.HTTPStatusFromError(err), req, service.OutcomeOf(err).Message())
		return
	}
	http.Redirect(w, r, h.loginURL, http.StatusSeeOther)
}

func (h *SignupHandler) signupJSON(w http.ResponseWriter, r *http.Request) {
	var req service.RegistrationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req); err != nil {
		h.logger.Info("malformed signup payload", zap.Error(err))
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.registrationService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), service.OutcomeOf(err).Message())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}
