package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/Dosada05/match-tagger/services"
)

const maxImportBytes = 256 << 10

type TeamHandler struct {
	session *services.Session
}

func NewTeamHandler(session *services.Session) *TeamHandler {
	return &TeamHandler{session: session}
}

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": h.session.ListTeams()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.session.CreateTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.session.GetTeam(teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.session.UpdateTeam(r.Context(), teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.session.DeleteTeam(r.Context(), teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TeamHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.session.AddPlayer(r.Context(), teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := urlParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.session.UpdatePlayer(r.Context(), teamID, playerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := urlParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.session.DeletePlayer(r.Context(), teamID, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportPlayers принимает список игроков как text/plain или как {"text": "..."}.
func (h *TeamHandler) ImportPlayers(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	text, err := readImportText(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.session.ImportPlayers(r.Context(), teamID, text)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"players":           result.Players,
		"duplicate_numbers": result.DuplicateNumbers,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func readImportText(w http.ResponseWriter, r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var input struct {
			Text string `json:"text"`
		}
		if err := readJSON(w, r, &input); err != nil {
			return "", err
		}
		return input.Text, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		return "", errors.New("player list is too large or unreadable")
	}
	if strings.TrimSpace(string(body)) == "" {
		return "", errors.New("player list must not be empty")
	}
	return string(body), nil
}
