package main

import (
	"encoding/json"
	"net/http"

	"gomoku/engine"
)

type StatusResponse struct {
	GameID          string            `json:"game_id"`
	Settings        GameSettingsDTO   `json:"settings"`
	Board           [][]int           `json:"board"`
	BoardSize       int               `json:"board_size"`
	NextPlayer      int               `json:"next_player"`
	Winner          int               `json:"winner"`
	Status          string            `json:"status"`
	HumanTurn       bool              `json:"human_turn"`
	MoveCount       int               `json:"move_count"`
	History         []historyEntryDTO `json:"history"`
	WinningLine     []engine.Move     `json:"winning_line"`
	LastMessage     string            `json:"last_message,omitempty"`
	TurnStartedAtMs int64             `json:"turn_started_at_ms"`
}

type GameSettingsDTO struct {
	Mode        string `json:"mode"`
	HumanPlayer int    `json:"human_player"`
	BoardSize   int    `json:"board_size,omitempty"`
}

type historyEntryDTO struct {
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Player    int     `json:"player"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
	Depth     int     `json:"depth"`
}

type startRequest struct {
	Settings GameSettingsDTO `json:"settings"`
	Opening  []engine.Move   `json:"opening"`
}

type moveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func gameStatus(g *Game) StatusResponse {
	state := g.state
	history := historyToDTO(g.history)
	return StatusResponse{
		GameID:          state.ID.String(),
		Settings:        settingsToDTO(g.settings),
		Board:           state.Board.Rows(),
		BoardSize:       state.Board.Size(),
		NextPlayer:      state.ToMove.Int(),
		Winner:          state.Status.Winner(),
		Status:          state.Status.String(),
		HumanTurn:       state.Status == StatusRunning && g.CurrentPlayerIsHuman(),
		MoveCount:       len(history),
		History:         history,
		WinningLine:     append([]engine.Move(nil), state.WinningLine...),
		LastMessage:     state.LastMessage,
		TurnStartedAtMs: g.TurnStartedAtMs(),
	}
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) GameSettings {
	settings := base
	if dto.BoardSize > 0 {
		settings.BoardSize = dto.BoardSize
	}
	switch dto.Mode {
	case "ai_vs_ai":
		settings.BlackType = PlayerAI
		settings.WhiteType = PlayerAI
	case "human_vs_human":
		settings.BlackType = PlayerHuman
		settings.WhiteType = PlayerHuman
	case "ai_vs_human":
		if dto.HumanPlayer == engine.PlayerWhite.Int() {
			settings.BlackType = PlayerAI
			settings.WhiteType = PlayerHuman
		} else {
			settings.BlackType = PlayerHuman
			settings.WhiteType = PlayerAI
		}
	}
	return settings
}

func settingsToDTO(settings GameSettings) GameSettingsDTO {
	dto := GameSettingsDTO{Mode: settings.Mode(), BoardSize: settings.BoardSize}
	if dto.Mode == "ai_vs_human" {
		if settings.BlackType == PlayerHuman {
			dto.HumanPlayer = engine.PlayerBlack.Int()
		} else {
			dto.HumanPlayer = engine.PlayerWhite.Int()
		}
	}
	return dto
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	out := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, historyEntryDTO{
			Row:       entry.Move.Row,
			Col:       entry.Move.Col,
			Player:    entry.Player.Int(),
			ElapsedMs: entry.ElapsedMs,
			IsAi:      entry.IsAi,
			Depth:     entry.Depth,
		})
	}
	return out
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
