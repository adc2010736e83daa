package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	authapi "github.com/MrEthical07/authapi"
	"github.com/MrEthical07/authapi/metrics/export/prometheus"
)

// Handler routes HTTP requests to an [authapi.Engine].
//
// Handler instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Handler struct {
	engine *authapi.Engine
	mux    *http.ServeMux
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	TwoFACode string `json:"twofa_code"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type provisionResponse struct {
	OTPAuthURL string `json:"otp_auth_url"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// NewHandler describes the newhandler operation and its observable behavior.
//
// NewHandler does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewHandler(engine *authapi.Engine) *Handler {
	h := &Handler{
		engine: engine,
		mux:    http.NewServeMux(),
	}

	h.mux.HandleFunc("POST /register", h.handleRegister)
	h.mux.HandleFunc("POST /login", h.handleLogin)
	h.mux.HandleFunc("POST /enable-2fa", h.handleEnableTwoFactor)
	h.mux.HandleFunc("GET /enable-2fa-html", h.handleEnableTwoFactorHTML)
	h.mux.HandleFunc("GET /{$}", h.handleRoot)
	h.mux.Handle("GET /metrics", prometheus.NewPrometheusExporter(engine).Handler())

	return h
}

// ServeHTTP implements [http.Handler].
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := authapi.WithClientIP(r.Context(), clientIP(r))
	ctx = authapi.WithUserAgent(ctx, r.UserAgent())
	h.mux.ServeHTTP(w, r.WithContext(ctx))
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	token, err := h.engine.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authapi.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, authapi.ErrInvalidCredentials):
			writeError(w, http.StatusUnprocessableEntity, "email and password are required")
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	token, err := h.engine.Login(r.Context(), req.Email, req.Password, req.TwoFACode)
	if err != nil {
		switch {
		case errors.Is(err, authapi.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, authapi.ErrTwoFactorRequired):
			writeError(w, http.StatusForbidden, "2FA code required")
		case errors.Is(err, authapi.ErrInvalidTwoFactorCode):
			writeError(w, http.StatusForbidden, "Invalid 2FA code")
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) handleEnableTwoFactor(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusUnprocessableEntity, "email query parameter is required")
		return
	}

	provision, err := h.engine.EnableTwoFactor(r.Context(), email)
	if err != nil {
		writeEnableTwoFactorError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, provisionResponse{OTPAuthURL: provision.URI})
}

func (h *Handler) handleEnableTwoFactorHTML(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusUnprocessableEntity, "email query parameter is required")
		return
	}

	provision, err := h.engine.EnableTwoFactor(r.Context(), email)
	if err != nil {
		writeEnableTwoFactorError(w, err)
		return
	}

	png, err := qrcode.Encode(provision.URI, qrcode.Medium, 256)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `<html>
  <body>
    <h2>Scan this QR code with your authenticator app</h2>
    <img src="data:image/png;base64,%s" alt="TOTP QR code">
    <p>Or enter the URI manually:</p>
    <code>%s</code>
  </body>
</html>
`, base64.StdEncoding.EncodeToString(png), html.EscapeString(provision.URI))
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "AuthAPI is running."})
}

func writeEnableTwoFactorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authapi.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// clientIP strips the port from RemoteAddr; proxies are not consulted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
