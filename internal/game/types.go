// internal/game/types.go
//
// Core type definitions for the round engine.
// Defines:
//   - Phase: the per-room state machine.
//   - Game: server-side state for one room's running game.
//   - Hint/Guess/RoundSummary/GameResult records and their public views.

package game

import (
	"time"

	"github.com/guessword/go-server/internal/apperr"
	"github.com/guessword/go-server/internal/room"
	"github.com/guessword/go-server/internal/words"
)

// Phase is a step of the round state machine. Phases only move forward,
// except ROUND_END which loops back to WORD_SELECTION.
type Phase string

const (
	PhaseWaiting        Phase = "WAITING"
	PhaseRoleAssignment Phase = "ROLE_ASSIGNMENT"
	PhaseWordSelection  Phase = "WORD_SELECTION"
	PhaseWordReveal     Phase = "WORD_REVEAL"
	PhaseHint           Phase = "HINT_PHASE"
	PhaseGuess          Phase = "GUESS_PHASE"
	PhaseRoundEnd       Phase = "ROUND_END"
	PhaseGameEnd        Phase = "GAME_END"
)

// Points credited when the guesser finds the secret.
const (
	HinterPoints     = 30
	WordSetterPoints = 50
)

// GuesserPoints is the guesser's reward for a correct guess on the given attempt.
func GuesserPoints(attempt int) int {
	switch attempt {
	case 1:
		return 100
	case 2:
		return 70
	case 3:
		return 50
	}
	return 0
}

// Game holds the state of one room's game. Players share pointers with the
// room so role and score changes are visible to room views.
type Game struct {
	ID           string
	RoomID       string
	Phase        Phase
	CurrentRound int
	MaxRounds    int
	MaxGuesses   int

	Players    []*room.Player
	Guesser    *room.Player
	WordSetter *room.Player
	Hinters    []*room.Player
	guesserIdx int

	MainWord string // secret, never part of a public view
	Hints    []Hint
	Guesses  []Guess
	Scores   map[string]int

	PhaseStartedAt time.Time
	PhaseTimeLimit int // seconds, advisory
	History        []RoundSummary
}

// Hint is the full server-side record of an accepted hint.
type Hint struct {
	PlayerID   string         `json:"playerId"`
	PlayerName string         `json:"playerName"`
	Zhuyin     string         `json:"zhuyin"`
	HintChar   string         `json:"hintChar"`
	Word       string         `json:"word,omitempty"`
	Position   words.Position `json:"position"`
	Timestamp  int64          `json:"timestamp"`
}

// HintDisplay is the only hint form shown while a round is running.
type HintDisplay struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Zhuyin     string `json:"zhuyin"`
	Timestamp  int64  `json:"timestamp"`
}

func (h Hint) Display() HintDisplay {
	return HintDisplay{
		PlayerID:   h.PlayerID,
		PlayerName: h.PlayerName,
		Zhuyin:     h.Zhuyin,
		Timestamp:  h.Timestamp,
	}
}

type Guess struct {
	Guess     string `json:"guess"`
	IsCorrect bool   `json:"isCorrect"`
	Timestamp int64  `json:"timestamp"`
}

// Rejection is a soft failure addressed only to the acting player.
type Rejection struct {
	Code   apperr.Code `json:"code"`
	Reason string      `json:"reason"`
}

// HintResult is the outcome of SubmitHint. Rejected is nil on success.
type HintResult struct {
	Hint     HintDisplay
	Rejected *Rejection
}

// GuessResult is broadcast to the room after an accepted guess.
type GuessResult struct {
	Guess            string `json:"guess"`
	IsCorrect        bool   `json:"isCorrect"`
	CorrectAnswer    string `json:"correctAnswer,omitempty"`
	RemainingGuesses int    `json:"remainingGuesses"`
	Attempt          int    `json:"attempt"`

	Rejected *Rejection `json:"-"`
}

// RoundOver reports whether this guess closed the round.
func (r GuessResult) RoundOver() bool {
	return r.Rejected == nil && (r.IsCorrect || r.RemainingGuesses <= 0)
}

type RoundSummary struct {
	Round     int            `json:"round"`
	MainWord  string         `json:"mainWord"`
	Hints     []Hint         `json:"hints"`
	Guesses   []Guess        `json:"guesses"`
	IsCorrect bool           `json:"isCorrect"`
	Scores    map[string]int `json:"scores"`
}

type GameResult struct {
	Rounds      []RoundSummary   `json:"rounds"`
	FinalScores map[string]int   `json:"finalScores"`
	Winner      *room.PlayerInfo `json:"winner"`
}

// RoleAssignment is one player's view of the current roles.
type RoleAssignment struct {
	MyRole         room.Role `json:"myRole"`
	GuesserID      string    `json:"guesserId"`
	GuesserName    string    `json:"guesserName"`
	WordSetterID   string    `json:"wordSetterId"`
	WordSetterName string    `json:"wordSetterName"`
	HinterIDs      []string  `json:"hinterIds"`
	HinterNames    []string  `json:"hinterNames"`
}

// State is the projection of a Game that is safe to send to anyone.
type State struct {
	ID             string         `json:"id"`
	RoomID         string         `json:"roomId"`
	Phase          Phase          `json:"phase"`
	CurrentRound   int            `json:"currentRound"`
	MaxRounds      int            `json:"maxRounds"`
	MaxGuesses     int            `json:"maxGuesses"`
	GuesserID      string         `json:"guesserId"`
	WordSetterID   string         `json:"wordSetterId"`
	HinterIDs      []string       `json:"hinterIds"`
	MainWord       *string        `json:"mainWord"`
	Hints          []HintDisplay  `json:"hints"`
	Guesses        []Guess        `json:"guesses"`
	Scores         map[string]int `json:"scores"`
	PhaseStartTime int64          `json:"phaseStartTime"`
	PhaseTimeLimit int            `json:"phaseTimeLimit"`
}
