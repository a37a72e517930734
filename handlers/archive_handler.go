package handlers

import (
	"fmt"
	"net/http"

	"github.com/Dosada05/match-tagger/models"
	"github.com/Dosada05/match-tagger/services"
)

type ArchiveHandler struct {
	session *services.Session
	exports *services.ExportService
}

func NewArchiveHandler(session *services.Session, exports *services.ExportService) *ArchiveHandler {
	return &ArchiveHandler{session: session, exports: exports}
}

// ListGames godoc
// @Summary Список сохранённых матчей
// @Tags games
// @Produce json
// @Success 200 {object} map[string]interface{} "Сохранённые матчи"
// @Router /games [get]
func (h *ArchiveHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"games": h.session.ListGames()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetGame godoc
// @Summary Сохранённый матч
// @Tags games
// @Produce json
// @Param gameID path string true "Game ID"
// @Success 200 {object} map[string]interface{} "Матч"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Router /games/{gameID} [get]
func (h *ArchiveHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, ok := h.session.GetGame(gameID)
	if !ok {
		notFoundResponse(w, r)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteGame с неизвестным id ничего не делает и тоже отвечает 204.
func (h *ArchiveHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.session.DeleteGame(r.Context(), gameID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResumeGame godoc
// @Summary Продолжить сохранённый матч
// @Tags games
// @Produce json
// @Param gameID path string true "Game ID"
// @Success 201 {object} map[string]interface{} "Матч снова идёт"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Failure 409 {object} map[string]string "Уже идёт другой матч"
// @Security BearerAuth
// @Router /games/{gameID}/resume [post]
func (h *ArchiveHandler) ResumeGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.session.ResumeGame(gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// EditAction godoc
// @Summary Исправить действие в сохранённом матче
// @Tags games
// @Accept json
// @Produce json
// @Param gameID path string true "Game ID"
// @Param actionID path string true "Action ID"
// @Success 200 {object} map[string]interface{} "Матч после правки (без изменений, если действия нет)"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Security BearerAuth
// @Router /games/{gameID}/actions/{actionID} [patch]
func (h *ArchiveHandler) EditAction(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actionID, err := urlParam(r, "actionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var patch models.GameActionPatch
	if err := readJSON(w, r, &patch); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, found, err := h.session.EditAction(r.Context(), gameID, actionID, patch)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if !found {
		notFoundResponse(w, r)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ArchiveHandler) DeleteAction(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actionID, err := urlParam(r, "actionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, found, err := h.session.DeleteAction(r.Context(), gameID, actionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if !found {
		notFoundResponse(w, r)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ArchiveHandler) Stats(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	st, err := h.session.GameStats(gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stats": st}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ArchiveHandler) HeatMap(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	maps, err := h.session.HeatMaps(gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, maps, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ArchiveHandler) ExportText(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, text, _, err := h.exports.Render(gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.FileStem(game)+".txt"))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

func (h *ArchiveHandler) HeatMapPNG(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, _, img, err := h.exports.Render(gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.FileStem(game)+".png"))
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}

// Export godoc
// @Summary Выгрузить статистику матча в хранилище
// @Tags games
// @Produce json
// @Param gameID path string true "Game ID"
// @Success 201 {object} map[string]interface{} "Ссылки на TXT и PNG"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Failure 500 {object} map[string]string "Ошибка хранилища"
// @Security BearerAuth
// @Router /games/{gameID}/export [post]
func (h *ArchiveHandler) Export(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlParam(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.exports.ExportGame(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"export": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ClearAllData удаляет команды и архив, возвращает стандартный каталог действий.
func (h *ArchiveHandler) ClearAllData(w http.ResponseWriter, r *http.Request) {
	if err := h.session.ClearAllData(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
