package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/match-tagger/middleware"
	"github.com/Dosada05/match-tagger/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Password == "" {
		badRequestResponse(w, r, errors.New("password is required"))
		return
	}

	token, expires, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"token":      token,
		"expires_at": expires,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Me сообщает, включена ли авторизация и с какой ролью пришёл запрос.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{"auth_enabled": h.authService.Enabled()}
	if role, err := middleware.GetOperatorRoleFromContext(r.Context()); err == nil {
		response["role"] = role
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
