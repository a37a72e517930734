package handlers

import (
	"net/http"

	"github.com/Dosada05/match-tagger/services"
)

type ActionTypeHandler struct {
	session *services.Session
}

func NewActionTypeHandler(session *services.Session) *ActionTypeHandler {
	return &ActionTypeHandler{session: session}
}

func (h *ActionTypeHandler) ListActionTypes(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"action_types": h.session.ListActionTypes()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ActionTypeHandler) CreateActionType(w http.ResponseWriter, r *http.Request) {
	var input services.CreateActionTypeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	at, err := h.session.CreateActionType(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"action_type": at}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ActionTypeHandler) UpdateActionType(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "actionTypeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateActionTypeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	at, err := h.session.UpdateActionType(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"action_type": at}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteActionType не трогает ссылки counter_action у других типов.
func (h *ActionTypeHandler) DeleteActionType(w http.ResponseWriter, r *http.Request) {
	id, err := urlParam(r, "actionTypeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.session.DeleteActionType(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
