// internal/hub/messages.go
//
// Wire messages. Every frame is {"type": ..., "payload": ...}.

package hub

import (
	"encoding/json"

	"github.com/guessword/go-server/internal/apperr"
	"github.com/guessword/go-server/internal/room"
)

// Inbound message types.
const (
	TypeRoomCreate         = "room:create"
	TypeRoomJoin           = "room:join"
	TypeRoomLeave          = "room:leave"
	TypeRoomReady          = "room:ready"
	TypeRoomUpdateSettings = "room:updateSettings"
	TypeRoomReconnect      = "room:reconnect"
	TypeGameStart          = "game:start"
	TypeGameSelectWord     = "game:selectWord"
	TypeGameSuggestWords   = "game:suggestWords"
	TypeGameSubmitHint     = "game:submitHint"
	TypeGameGuess          = "game:guess"
	TypeGameSkipRound      = "game:skipRound"
	TypeGameSync           = "game:sync"
)

// Outbound message types.
const (
	TypeRoomCreated            = "room:created"
	TypeRoomJoined             = "room:joined"
	TypeRoomPlayerJoined       = "room:playerJoined"
	TypeRoomPlayerLeft         = "room:playerLeft"
	TypeRoomPlayerDisconnected = "room:playerDisconnected"
	TypeRoomPlayerReconnected  = "room:playerReconnected"
	TypeRoomHostChanged        = "room:hostChanged"
	TypeRoomUpdated            = "room:updated"
	TypeRoomError              = "room:error"
	TypeSessionToken           = "session:token"
	TypeGameStarted            = "game:started"
	TypeGameRolesAssigned      = "game:rolesAssigned"
	TypeGameWordSelected       = "game:wordSelected"
	TypeGameWordRevealed       = "game:wordRevealed"
	TypeGameWordSuggestions    = "game:wordSuggestions"
	TypeGamePhaseChanged       = "game:phaseChanged"
	TypeGameHintSubmitted      = "game:hintSubmitted"
	TypeGameHintRejected       = "game:hintRejected"
	TypeGameGuessResult        = "game:guessResult"
	TypeGameGuessRejected      = "game:guessRejected"
	TypeGameRoundEnd           = "game:roundEnd"
	TypeGameEnded              = "game:ended"
	TypeGameStateSync          = "game:stateSync"
	TypeGameError              = "game:error"
)

// Envelope is an inbound frame; Payload is decoded per type.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message is an outbound frame.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Effect is a message addressed to a set of connections.
type Effect struct {
	ConnIDs []string
	Message Message
}

type joinPayload struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
	Password   string `json:"password"`
}

type readyPayload struct {
	IsReady bool `json:"isReady"`
}

type wordPayload struct {
	Word string `json:"word"`
}

type hintPayload struct {
	HintChar string `json:"hintChar"`
}

type guessPayload struct {
	Guess string `json:"guess"`
}

type reconnectPayload struct {
	Token string `json:"token"`
}

type ErrorPayload struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
}

type JoinedPayload struct {
	Room   room.Info       `json:"room"`
	Player room.PlayerInfo `json:"player"`
}

// SessionPayload carries the token a client presents on room:reconnect.
type SessionPayload struct {
	Token    string `json:"token"`
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

type SuggestionsPayload struct {
	Words []string `json:"words"`
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return apperr.ErrBadRequest
	}
	return nil
}
