package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/match-tagger/models"
	"github.com/Dosada05/match-tagger/services"
)

type MatchHandler struct {
	session *services.Session
}

func NewMatchHandler(session *services.Session) *MatchHandler {
	return &MatchHandler{session: session}
}

type startMatchRequest struct {
	TeamAID string `json:"team_a_id"`
	TeamBID string `json:"team_b_id"`
}

type possessionRequest struct {
	TeamID string `json:"team_id"`
}

type recordActionRequest struct {
	Action   string       `json:"action"` // id или имя типа действия
	PlayerID *string      `json:"player_id,omitempty"`
	Zone     *models.Zone `json:"zone,omitempty"`
}

type completeActionRequest struct {
	PlayerID string `json:"player_id"`
}

type tickRequest struct {
	CurrentTime int `json:"current_time"`
}

func zoneOrCenter(z *models.Zone) models.Zone {
	if z == nil {
		return models.CenterZone
	}
	return *z
}

func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, h.session.CurrentMatch(), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) StartMatch(w http.ResponseWriter, r *http.Request) {
	var input startMatchRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.session.StartMatch(input.TeamAID, input.TeamBID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) SetPossession(w http.ResponseWriter, r *http.Request) {
	var input possessionRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.session.SetPossession(input.TeamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, h.session.CurrentMatch(), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ZoneTap(w http.ResponseWriter, r *http.Request) {
	var zone models.Zone
	if err := readJSON(w, r, &zone); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	action, err := h.session.RecordZoneTap(zone)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"actions": []models.GameAction{action}}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordAction записывает действие за один запрос (игрок передаётся сразу, если нужен).
func (h *MatchHandler) RecordAction(w http.ResponseWriter, r *http.Request) {
	var input recordActionRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Action == "" {
		badRequestResponse(w, r, errors.New("action is required"))
		return
	}

	recorded, err := h.session.RecordSpecificAction(input.Action, input.PlayerID, zoneOrCenter(input.Zone))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"actions": recorded}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// BeginAction начинает двухфазную запись: либо сразу записывает действие, либо возвращает список игроков для выбора.
func (h *MatchHandler) BeginAction(w http.ResponseWriter, r *http.Request) {
	var input recordActionRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Action == "" {
		badRequestResponse(w, r, errors.New("action is required"))
		return
	}

	pending, recorded, err := h.session.BeginAction(input.Action, zoneOrCenter(input.Zone))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if pending != nil {
		if err := writeJSON(w, http.StatusAccepted, jsonResponse{"pending": pending}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"actions": recorded}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) CompleteAction(w http.ResponseWriter, r *http.Request) {
	var input completeActionRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	recorded, err := h.session.CompleteAction(input.PlayerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"actions": recorded}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) CancelAction(w http.ResponseWriter, r *http.Request) {
	if err := h.session.CancelAction(); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MatchHandler) Tick(w http.ResponseWriter, r *http.Request) {
	var input tickRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.session.Tick(input.CurrentTime); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"current_time": input.CurrentTime}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) TogglePlay(w http.ResponseWriter, r *http.Request) {
	playing, err := h.session.TogglePlay()
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"is_playing": playing}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) EndMatch(w http.ResponseWriter, r *http.Request) {
	game, err := h.session.EndMatch(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) AbandonMatch(w http.ResponseWriter, r *http.Request) {
	if err := h.session.AbandonMatch(); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MatchHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.session.LiveStats()
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stats": st}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) HeatMap(w http.ResponseWriter, r *http.Request) {
	maps, err := h.session.LiveHeatMaps()
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, maps, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
