package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

func (t PlayerType) String() string {
	if t == PlayerAI {
		return "ai"
	}
	return "human"
}

type GameSettings struct {
	BoardSize int        `json:"board_size"`
	BlackType PlayerType `json:"-"`
	WhiteType PlayerType `json:"-"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		BoardSize: 15,
		BlackType: PlayerHuman,
		WhiteType: PlayerAI,
	}
}

// Mode is the name used on the wire: ai_vs_ai, human_vs_human or ai_vs_human.
func (s GameSettings) Mode() string {
	switch {
	case s.BlackType == PlayerAI && s.WhiteType == PlayerAI:
		return "ai_vs_ai"
	case s.BlackType == PlayerHuman && s.WhiteType == PlayerHuman:
		return "human_vs_human"
	default:
		return "ai_vs_human"
	}
}
