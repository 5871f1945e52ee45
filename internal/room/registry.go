// internal/room/registry.go
//
// Registry owns every live room and the connection → room binding.
//
// Responsibilities:
//   - Create/join/leave with host failover and empty-room deletion.
//   - Ready flags, disconnect (mark offline) and reconnect (rebind conn id).
//   - Join codes: 4 characters, case-insensitive, collision-checked.
//   - Host-only settings updates while no game is running.
//
// Notes:
//   - Not safe for concurrent use. The caller serializes access (see hub).
//   - Randomness and time are injected so tests are reproducible.

package room

import (
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/guessword/go-server/internal/apperr"
)

const (
	codeAlphabet     = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength       = 4
	codeMaxAttempts  = 100
	maxNameRunes     = 20
	maxRoomNameRunes = 40
	maxPlayersCap    = 12
	maxRounds        = 20
	maxGuessesCap    = 5
	minPhaseSeconds  = 10
	maxPhaseSeconds  = 600
)

type Registry struct {
	rooms    map[string]*Room  // room id → room
	codes    map[string]string // upper-case code → room id
	conns    map[string]string // conn id → room id
	rng      *rand.Rand
	now      func() time.Time
	hashCost int
}

type Option func(*Registry)

// WithRand sets the random source used for join codes.
func WithRand(rng *rand.Rand) Option { return func(r *Registry) { r.rng = rng } }

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(r *Registry) { r.now = now } }

// WithHashCost sets the bcrypt cost for room passwords.
func WithHashCost(cost int) Option { return func(r *Registry) { r.hashCost = cost } }

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		rooms:    make(map[string]*Room),
		codes:    make(map[string]string),
		conns:    make(map[string]string),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
		hashCost: bcrypt.DefaultCost,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// CreateRoom makes connID the host and sole member of a new room.
func (r *Registry) CreateRoom(connID string, opts Options) (*Room, error) {
	name, ok := cleanName(opts.HostName)
	if !ok {
		return nil, apperr.ErrInvalidName
	}
	if _, bound := r.conns[connID]; bound {
		return nil, apperr.ErrAlreadyInRoom
	}

	settings, maxPlayers, err := applyOptions(Settings{
		Rounds:         DefaultRounds,
		HintTimeLimit:  DefaultHintTimeLimit,
		GuessTimeLimit: DefaultGuessTimeLimit,
		MaxGuesses:     DefaultMaxGuesses,
	}, DefaultMaxPlayers, opts)
	if err != nil {
		return nil, err
	}

	roomName := strings.TrimSpace(opts.Name)
	if roomName == "" {
		roomName = name + "的房間"
	}
	if utf8.RuneCountInString(roomName) > maxRoomNameRunes {
		return nil, apperr.ErrInvalidSettings
	}

	var hash []byte
	if opts.IsPrivate && opts.Password != "" {
		hash, err = bcrypt.GenerateFromPassword([]byte(opts.Password), r.hashCost)
		if err != nil {
			return nil, err
		}
	}

	now := r.now()
	rm := &Room{
		ID:         uuid.NewString(),
		Code:       r.generateCode(),
		Name:       roomName,
		HostConnID: connID,
		Players: []*Player{{
			ID:       uuid.NewString(),
			ConnID:   connID,
			Name:     name,
			IsHost:   true,
			IsReady:  true,
			IsOnline: true,
			Role:     RoleSpectator,
			JoinedAt: now,
		}},
		MinPlayers:     MinPlayers,
		MaxPlayers:     maxPlayers,
		Status:         StatusWaiting,
		IsPrivate:      opts.IsPrivate,
		passwordHash:   hash,
		Settings:       settings,
		CreatedAt:      now,
		LastActivityAt: now,
	}

	r.rooms[rm.ID] = rm
	r.codes[rm.Code] = rm.ID
	r.conns[connID] = rm.ID
	return rm, nil
}

// JoinRoom adds a non-host, not-ready player to the room with the given code.
func (r *Registry) JoinRoom(code, connID, name, password string) (*Room, *Player, error) {
	name, ok := cleanName(name)
	if !ok {
		return nil, nil, apperr.ErrInvalidName
	}
	if _, bound := r.conns[connID]; bound {
		return nil, nil, apperr.ErrAlreadyInRoom
	}

	rm := r.RoomByCode(code)
	if rm == nil {
		return nil, nil, apperr.ErrRoomNotFound
	}
	if rm.Status != StatusWaiting {
		return nil, nil, apperr.ErrGameInProgress
	}
	if len(rm.Players) >= rm.MaxPlayers {
		return nil, nil, apperr.ErrRoomFull
	}
	if rm.IsPrivate && !rm.passwordMatches(password) {
		return nil, nil, apperr.ErrWrongPassword
	}

	p := &Player{
		ID:       uuid.NewString(),
		ConnID:   connID,
		Name:     name,
		IsOnline: true,
		Role:     RoleSpectator,
		JoinedAt: r.now(),
	}
	rm.Players = append(rm.Players, p)
	rm.LastActivityAt = r.now()
	r.conns[connID] = rm.ID
	return rm, p, nil
}

// LeaveResult describes what LeaveRoom changed.
type LeaveResult struct {
	RoomID   string
	Room     *Room // nil when Deleted
	PlayerID string
	WasHost  bool
	NewHost  *Player // set when host moved
	Deleted  bool
}

// LeaveRoom removes the player bound to connID. ok is false when the
// connection is not in a room.
func (r *Registry) LeaveRoom(connID string) (LeaveResult, bool) {
	rm, p := r.PlayerByConn(connID)
	if p == nil {
		return LeaveResult{}, false
	}
	delete(r.conns, connID)

	res := LeaveResult{RoomID: rm.ID, PlayerID: p.ID, WasHost: p.IsHost}
	for i, q := range rm.Players {
		if q == p {
			rm.Players = append(rm.Players[:i], rm.Players[i+1:]...)
			break
		}
	}

	if len(rm.Players) == 0 {
		r.deleteRoom(rm)
		res.Deleted = true
		return res, true
	}

	if res.WasHost {
		next := rm.Players[0]
		next.IsHost = true
		rm.HostConnID = next.ConnID
		res.NewHost = next
	}
	rm.LastActivityAt = r.now()
	res.Room = rm
	return res, true
}

// SetPlayerReady sets the ready flag. ok is false when connID has no room.
func (r *Registry) SetPlayerReady(connID string, ready bool) (*Room, bool) {
	rm, p := r.PlayerByConn(connID)
	if p == nil {
		return nil, false
	}
	p.IsReady = ready
	rm.LastActivityAt = r.now()
	return rm, true
}

// HandleDisconnect marks the player offline without removing them.
// The conn binding is kept so the player can later reconnect.
func (r *Registry) HandleDisconnect(connID string) (*Room, *Player, bool) {
	rm, p := r.PlayerByConn(connID)
	if p == nil {
		return nil, nil, false
	}
	p.IsOnline = false
	return rm, p, true
}

// HandleReconnect moves the player bound to oldConnID onto newConnID.
// Identity, role, score and membership are untouched.
func (r *Registry) HandleReconnect(oldConnID, newConnID string) (*Room, *Player, bool) {
	if _, taken := r.conns[newConnID]; taken && oldConnID != newConnID {
		return nil, nil, false
	}
	rm, p := r.PlayerByConn(oldConnID)
	if p == nil {
		return nil, nil, false
	}

	p.ConnID = newConnID
	p.IsOnline = true
	if p.IsHost {
		rm.HostConnID = newConnID
	}
	delete(r.conns, oldConnID)
	r.conns[newConnID] = rm.ID
	rm.LastActivityAt = r.now()
	return rm, p, true
}

// CanStartGame checks player count and readiness.
func (r *Registry) CanStartGame(rm *Room) error {
	if rm.Status == StatusPlaying {
		return apperr.ErrGameInProgress
	}
	if len(rm.Players) < rm.MinPlayers {
		return apperr.Newf(apperr.InsufficientPlayers, "at least %d players are required", rm.MinPlayers)
	}
	for _, p := range rm.Players {
		if !p.IsReady {
			return apperr.ErrNotReady
		}
	}
	return nil
}

func (r *Registry) SetStatus(roomID string, s Status) {
	if rm, ok := r.rooms[roomID]; ok {
		rm.Status = s
		rm.LastActivityAt = r.now()
	}
}

// UpdateSettings applies non-zero fields of opts. Host only, and never
// while a game is running.
func (r *Registry) UpdateSettings(connID string, opts Options) (*Room, error) {
	rm, p := r.PlayerByConn(connID)
	if p == nil {
		return nil, apperr.ErrNotInRoom
	}
	if !p.IsHost {
		return nil, apperr.ErrNotHost
	}
	if rm.Status == StatusPlaying {
		return nil, apperr.ErrGameInProgress
	}

	settings, maxPlayers, err := applyOptions(rm.Settings, rm.MaxPlayers, opts)
	if err != nil {
		return nil, err
	}
	if maxPlayers < len(rm.Players) {
		return nil, apperr.ErrInvalidSettings
	}
	if n := strings.TrimSpace(opts.Name); n != "" {
		if utf8.RuneCountInString(n) > maxRoomNameRunes {
			return nil, apperr.ErrInvalidSettings
		}
		rm.Name = n
	}
	rm.Settings = settings
	rm.MaxPlayers = maxPlayers
	rm.LastActivityAt = r.now()
	return rm, nil
}

func (r *Registry) Room(id string) *Room { return r.rooms[id] }

// RoomByCode looks a room up by join code, ignoring case.
func (r *Registry) RoomByCode(code string) *Room {
	id, ok := r.codes[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil
	}
	return r.rooms[id]
}

func (r *Registry) RoomByConn(connID string) *Room {
	id, ok := r.conns[connID]
	if !ok {
		return nil
	}
	return r.rooms[id]
}

// PlayerByConn returns the room and player bound to connID.
func (r *Registry) PlayerByConn(connID string) (*Room, *Player) {
	rm := r.RoomByConn(connID)
	if rm == nil {
		return nil, nil
	}
	return rm, rm.PlayerByConn(connID)
}

// PublicRooms lists joinable rooms that are not private, oldest first.
func (r *Registry) PublicRooms() []Info {
	var list []*Room
	for _, rm := range r.rooms {
		if rm.IsPrivate || rm.Status != StatusWaiting || len(rm.Players) >= rm.MaxPlayers {
			continue
		}
		list = append(list, rm)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].Code < list[j].Code
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	out := make([]Info, 0, len(list))
	for _, rm := range list {
		out = append(out, rm.Info())
	}
	return out
}

// Len is the number of live rooms.
func (r *Registry) Len() int { return len(r.rooms) }

func (r *Registry) deleteRoom(rm *Room) {
	delete(r.rooms, rm.ID)
	if r.codes[rm.Code] == rm.ID {
		delete(r.codes, rm.Code)
	}
	for _, p := range rm.Players {
		delete(r.conns, p.ConnID)
	}
}

// generateCode retries on collision and accepts the last candidate after
// codeMaxAttempts tries.
func (r *Registry) generateCode() string {
	buf := make([]byte, codeLength)
	var code string
	for attempt := 0; attempt < codeMaxAttempts; attempt++ {
		for i := range buf {
			buf[i] = codeAlphabet[r.rng.Intn(len(codeAlphabet))]
		}
		code = string(buf)
		if _, taken := r.codes[code]; !taken {
			break
		}
	}
	return code
}

func cleanName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	return s, n >= 1 && n <= maxNameRunes
}

// applyOptions overlays the non-zero fields of opts and range-checks the result.
func applyOptions(s Settings, maxPlayers int, opts Options) (Settings, int, error) {
	if opts.Rounds != 0 {
		s.Rounds = opts.Rounds
	}
	if opts.HintTimeLimit != 0 {
		s.HintTimeLimit = opts.HintTimeLimit
	}
	if opts.GuessTimeLimit != 0 {
		s.GuessTimeLimit = opts.GuessTimeLimit
	}
	if opts.MaxGuesses != 0 {
		s.MaxGuesses = opts.MaxGuesses
	}
	if opts.MaxPlayers != 0 {
		maxPlayers = opts.MaxPlayers
	}

	switch {
	case s.Rounds < 1 || s.Rounds > maxRounds,
		s.MaxGuesses < 1 || s.MaxGuesses > maxGuessesCap,
		s.HintTimeLimit < minPhaseSeconds || s.HintTimeLimit > maxPhaseSeconds,
		s.GuessTimeLimit < minPhaseSeconds || s.GuessTimeLimit > maxPhaseSeconds,
		maxPlayers < MinPlayers || maxPlayers > maxPlayersCap:
		return s, maxPlayers, apperr.ErrInvalidSettings
	}
	return s, maxPlayers, nil
}

// passwordMatches checks a join password. A private room created without a
// password admits only an empty one.
func (r *Room) passwordMatches(password string) bool {
	if len(r.passwordHash) == 0 {
		return password == ""
	}
	return bcrypt.CompareHashAndPassword(r.passwordHash, []byte(password)) == nil
}
