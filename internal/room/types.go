// internal/room/types.go
//
// Room and player records owned by the Registry.
//
// Notes:
//   - Player.ID is stable for the life of the room; ConnID changes on reconnect.
//   - Players is ordered by join time and that order drives role rotation.
//   - Info/PlayerInfo are the public projections; they never carry
//     connection ids or the password hash.

package room

import "time"

// Role is a player's part in the current round.
type Role string

const (
	RoleSpectator  Role = "SPECTATOR"
	RoleGuesser    Role = "GUESSER"
	RoleWordSetter Role = "WORD_SETTER"
	RoleHinter     Role = "HINTER"
)

// Status is the room lifecycle.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusPlaying  Status = "PLAYING"
	StatusFinished Status = "FINISHED"
)

// Defaults applied when room options leave a field zero.
const (
	DefaultRounds         = 5
	DefaultHintTimeLimit  = 60
	DefaultGuessTimeLimit = 120
	DefaultMaxGuesses     = 3
	DefaultMaxPlayers     = 8
	MinPlayers            = 3
)

// Settings are per-room game parameters. Time limits are in seconds and
// advisory only.
type Settings struct {
	Rounds         int `json:"rounds"`
	HintTimeLimit  int `json:"hintTimeLimit"`
	GuessTimeLimit int `json:"guessTimeLimit"`
	MaxGuesses     int `json:"maxGuesses"`
}

// Options configure CreateRoom and UpdateSettings. Zero fields take defaults
// on create and are left unchanged on update.
type Options struct {
	HostName       string `json:"hostName"`
	Name           string `json:"name,omitempty"`
	MaxPlayers     int    `json:"maxPlayers,omitempty"`
	IsPrivate      bool   `json:"isPrivate,omitempty"`
	Password       string `json:"password,omitempty"`
	Rounds         int    `json:"rounds,omitempty"`
	HintTimeLimit  int    `json:"hintTimeLimit,omitempty"`
	GuessTimeLimit int    `json:"guessTimeLimit,omitempty"`
	MaxGuesses     int    `json:"maxGuesses,omitempty"`
}

type Player struct {
	ID       string
	ConnID   string
	Name     string
	IsHost   bool
	IsReady  bool
	IsOnline bool
	Role     Role
	Score    int
	JoinedAt time.Time
}

type Room struct {
	ID             string
	Code           string
	Name           string
	HostConnID     string
	Players        []*Player
	MinPlayers     int
	MaxPlayers     int
	Status         Status
	IsPrivate      bool
	passwordHash   []byte
	Settings       Settings
	CreatedAt      time.Time
	LastActivityAt time.Time
}

// Player returns the member with the given player id.
func (r *Room) Player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerByConn returns the member bound to connID.
func (r *Room) PlayerByConn(connID string) *Player {
	for _, p := range r.Players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

// Host returns the current host, or nil for an empty room.
func (r *Room) Host() *Player {
	for _, p := range r.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

// IsHostConn reports whether connID belongs to the host.
func (r *Room) IsHostConn(connID string) bool {
	return connID != "" && r.HostConnID == connID
}

// ConnIDs lists the connection ids of every member, online or not.
func (r *Room) ConnIDs() []string {
	out := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, p.ConnID)
	}
	return out
}

// PlayerInfo is the public view of a Player.
type PlayerInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsHost   bool   `json:"isHost"`
	IsReady  bool   `json:"isReady"`
	IsOnline bool   `json:"isOnline"`
	Role     Role   `json:"role"`
	Score    int    `json:"score"`
}

func (p *Player) Info() PlayerInfo {
	return PlayerInfo{
		ID:       p.ID,
		Name:     p.Name,
		IsHost:   p.IsHost,
		IsReady:  p.IsReady,
		IsOnline: p.IsOnline,
		Role:     p.Role,
		Score:    p.Score,
	}
}

// Info is the public view of a Room.
type Info struct {
	ID          string       `json:"id"`
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	HostID      string       `json:"hostId"`
	Players     []PlayerInfo `json:"players"`
	MaxPlayers  int          `json:"maxPlayers"`
	MinPlayers  int          `json:"minPlayers"`
	Status      Status       `json:"status"`
	IsPrivate   bool         `json:"isPrivate"`
	HasPassword bool         `json:"hasPassword"`
	Settings    Settings     `json:"settings"`
}

func (r *Room) Info() Info {
	info := Info{
		ID:          r.ID,
		Code:        r.Code,
		Name:        r.Name,
		Players:     make([]PlayerInfo, 0, len(r.Players)),
		MaxPlayers:  r.MaxPlayers,
		MinPlayers:  r.MinPlayers,
		Status:      r.Status,
		IsPrivate:   r.IsPrivate,
		HasPassword: len(r.passwordHash) > 0,
		Settings:    r.Settings,
	}
	if h := r.Host(); h != nil {
		info.HostID = h.ID
	}
	for _, p := range r.Players {
		info.Players = append(info.Players, p.Info())
	}
	return info
}
