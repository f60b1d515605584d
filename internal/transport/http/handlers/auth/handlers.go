package authhandler

import (
	"encoding/json"
	"net/http"
	"time"

	"resourcehub/internal/domain/auth"
	"resourcehub/internal/platform/querier"
	"resourcehub/internal/requestctx"
	"resourcehub/internal/transport/http/api"
	"resourcehub/internal/transport/http/middleware"
)

const tokenTTL = 8 * time.Hour

type Handler struct {
	DB     querier.Querier
	Secret string
}

func NewHandler(db querier.Querier, secret string) *Handler {
	return &Handler{DB: db, Secret: secret}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestctx.GetRequestID(r.Context()))
		return
	}

	var id, name, role, level, hash string
	err := h.DB.QueryRow(r.Context(), `
    SELECT id, name, role, hierarchy_level, password_hash
    FROM employees
    WHERE email = $1 AND status = 'active'
  `, payload.Email).Scan(&id, &name, &role, &level, &hash)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	}

	if err := auth.CheckPassword(hash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestctx.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: id, Role: role, Level: level}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestctx.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user": map[string]string{
			"id":             id,
			"name":           name,
			"role":           role,
			"hierarchyLevel": level,
		},
	}, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{
		"id":             user.UserID,
		"role":           string(user.Role),
		"hierarchyLevel": user.Level.String(),
	}, requestctx.GetRequestID(r.Context()))
}
