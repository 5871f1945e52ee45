// Package apperr defines the error kinds surfaced to players.
//
// Hard errors are *Error values carrying a machine code and a default
// English message. Soft rejections reuse the same codes but travel as plain
// result values. Transports pick the display text from a locale catalog.
package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	// hard errors
	RoomNotFound        Code = "ROOM_NOT_FOUND"
	GameInProgress      Code = "GAME_IN_PROGRESS"
	RoomFull            Code = "ROOM_FULL"
	WrongPassword       Code = "WRONG_PASSWORD"
	NotHost             Code = "NOT_HOST"
	NotInRoom           Code = "NOT_IN_ROOM"
	AlreadyInRoom       Code = "ALREADY_IN_ROOM"
	InsufficientPlayers Code = "INSUFFICIENT_PLAYERS"
	NotReady            Code = "NOT_READY"
	InvalidRole         Code = "INVALID_ROLE"
	InvalidWord         Code = "INVALID_WORD"
	InvalidGuess        Code = "INVALID_GUESS"
	GameNotFound        Code = "GAME_NOT_FOUND"
	WrongPhase          Code = "WRONG_PHASE"
	InvalidName         Code = "INVALID_NAME"
	InvalidSettings     Code = "INVALID_SETTINGS"
	InvalidToken        Code = "INVALID_TOKEN"
	BadRequest          Code = "BAD_REQUEST"
	RateLimited         Code = "RATE_LIMITED"
	Internal            Code = "INTERNAL"

	// soft rejections
	NotHinter     Code = "NOT_HINTER"
	DuplicateHint Code = "DUPLICATE_HINT"
	NotSingleChar Code = "NOT_SINGLE_CHAR"
	HintIsSecret  Code = "HINT_IS_SECRET"
	NoSuchWord    Code = "NO_SUCH_WORD"
	HintPhaseOver Code = "HINT_PHASE_OVER"
	NoGuessesLeft Code = "NO_GUESSES_LEFT"
	RoundSolved   Code = "ROUND_SOLVED"
)

// Error is a hard error with a stable code.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return string(e.Code) + ": " + e.Message }

// Is matches any *Error with the same code, so sentinels work with errors.Is
// even after a message was customised.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func New(code Code, msg string) *Error { return &Error{Code: code, Message: msg} }

// Newf is New with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrRoomNotFound        = New(RoomNotFound, "room not found")
	ErrGameInProgress      = New(GameInProgress, "game already started")
	ErrRoomFull            = New(RoomFull, "room is full")
	ErrWrongPassword       = New(WrongPassword, "wrong password")
	ErrNotHost             = New(NotHost, "only the host can do that")
	ErrNotInRoom           = New(NotInRoom, "not in a room")
	ErrAlreadyInRoom       = New(AlreadyInRoom, "already in a room")
	ErrInsufficientPlayers = New(InsufficientPlayers, "at least 3 players are required")
	ErrNotReady            = New(NotReady, "some players are not ready")
	ErrInvalidRole         = New(InvalidRole, "your role cannot do that")
	ErrInvalidWord         = New(InvalidWord, "the secret must be a single character")
	ErrInvalidGuess        = New(InvalidGuess, "a guess must be a single character")
	ErrGameNotFound        = New(GameNotFound, "game not found")
	ErrWrongPhase          = New(WrongPhase, "not allowed in the current phase")
	ErrInvalidName         = New(InvalidName, "name must be 1-20 characters")
	ErrInvalidSettings     = New(InvalidSettings, "invalid room settings")
	ErrInvalidToken        = New(InvalidToken, "invalid session token")
	ErrBadRequest          = New(BadRequest, "malformed request")
	ErrRateLimited         = New(RateLimited, "too many requests")
)

// CodeOf extracts the code of err, or Internal for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Internal
}
