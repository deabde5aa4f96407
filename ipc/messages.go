package ipc

import "github.com/MegaMek/megamek-sub083/model"

// These constants must stay in sync with the host's message types.
const (
	TypeHello     = "hello"
	TypeAck       = "ack"
	TypeGameState = "game_state" // payload is model.GameState
	TypeRanking   = "ranking"
	TypeError     = "error"
)

// HelloMessage opens a session for one bot player.
type HelloMessage struct {
	Player   int              `json:"player"`
	Team     int              `json:"team"`
	Name     string           `json:"name,omitempty"`
	Board    *model.Board     `json:"board,omitempty"`
	Generate *GenerateRequest `json:"generate,omitempty"` // used when Board is absent
}

// GenerateRequest sizes a procedural board.
type GenerateRequest struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Seed   int64 `json:"seed"`
}

type AckMessage struct {
	Status string `json:"status"`
	Goals  int    `json:"goals,omitempty"` // strategic goals placed at hello
}

// RankingMessage answers a game state with every scored decision, best first.
type RankingMessage struct {
	Pass      string           `json:"pass"`
	Turn      int              `json:"turn"`
	Unit      int              `json:"unit"`
	Decisions []RankedDecision `json:"decisions"`
}

type RankedDecision struct {
	Rank      int     `json:"rank"`
	Decision  string  `json:"decision"`
	Action    string  `json:"action"`
	Score     float64 `json:"score"`
	Candidate int     `json:"candidate"`
	TargetID  int     `json:"targetId,omitempty"`
}

// Best returns the top decision, if any.
func (m RankingMessage) Best() (RankedDecision, bool) {
	if len(m.Decisions) == 0 {
		return RankedDecision{}, false
	}
	return m.Decisions[0], true
}

type ErrorMessage struct {
	Type  string `json:"type"` // message type that failed
	Error string `json:"error"`
}
