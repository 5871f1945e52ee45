// internal/hub/hub.go
//
// Action dispatcher between the transport and the core.
// Responsibilities:
//   - Resolve the acting connection to a room and player.
//   - Authorize (host-only actions) and call the registry / engine.
//   - Turn outcomes into Effects: messages addressed to connection ids.
//   - Own the per-room round auto-advance timer.
//   - Archive finished games.
//
// Notes:
//   - One mutex serializes every action, including timer callbacks, so the
//     registry and engine never see interleaved mutations.
//   - Effects from client actions are returned to the caller; effects from
//     timers go to the Sink.
//   - Hard errors become a room:error / game:error for the actor only.

package hub

import (
	"context"
	"encoding/json"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/guessword/go-server/internal/apperr"
	"github.com/guessword/go-server/internal/game"
	"github.com/guessword/go-server/internal/room"
	"github.com/guessword/go-server/internal/store"
	"github.com/guessword/go-server/internal/token"
)

const (
	defaultAdvanceDelay = 5 * time.Second
	defaultSuggestions  = 6
	defaultMinWords     = 5
	archiveTimeout      = 5 * time.Second
)

// Suggester proposes secret characters to the word-setter.
type Suggester interface {
	Suggest(rng *rand.Rand, n, minWords int) []string
}

// Sink receives effects produced outside a client action.
type Sink interface {
	Deliver(effects []Effect)
}

type Config struct {
	AdvanceDelay time.Duration // pause between round end and the next round
	Locale       string        // message catalog for errors and rejections
	Suggestions  int           // secret suggestions offered per round
	MinWords     int           // minimum words a suggested secret must form
}

type Hub struct {
	mu sync.Mutex

	rooms   *room.Registry
	games   *game.Engine
	words   Suggester
	tokens  *token.Issuer
	archive store.Archive
	cfg     Config

	log  zerolog.Logger
	rng  *rand.Rand
	now  func() time.Time
	sink Sink

	timers map[string]*time.Timer // room id -> pending auto-advance
	gens   map[string]uint64      // room id -> generation of the pending timer
	seq    uint64
}

type Option func(*Hub)

func WithLogger(l zerolog.Logger) Option { return func(h *Hub) { h.log = l } }

// WithRand sets the random source for secret suggestions.
func WithRand(rng *rand.Rand) Option { return func(h *Hub) { h.rng = rng } }

// WithClock overrides time.Now for archived timestamps.
func WithClock(now func() time.Time) Option { return func(h *Hub) { h.now = now } }

func New(rooms *room.Registry, games *game.Engine, words Suggester, tokens *token.Issuer,
	archive store.Archive, cfg Config, opts ...Option) *Hub {
	if cfg.AdvanceDelay <= 0 {
		cfg.AdvanceDelay = defaultAdvanceDelay
	}
	if !apperr.HasLocale(cfg.Locale) {
		cfg.Locale = "en"
	}
	if cfg.Suggestions <= 0 {
		cfg.Suggestions = defaultSuggestions
	}
	if cfg.MinWords <= 0 {
		cfg.MinWords = defaultMinWords
	}
	h := &Hub{
		rooms:   rooms,
		games:   games,
		words:   words,
		tokens:  tokens,
		archive: archive,
		cfg:     cfg,
		log:     log.Logger,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
		timers:  make(map[string]*time.Timer),
		gens:    make(map[string]uint64),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// SetSink installs the receiver for timer-driven effects.
func (h *Hub) SetSink(s Sink) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sink = s
}

// Handle runs one inbound action from connID.
func (h *Hub) Handle(connID string, env Envelope) []Effect {
	h.mu.Lock()
	defer h.mu.Unlock()

	effects, err := h.dispatch(connID, env)
	if err != nil {
		ev := h.log.Debug()
		if apperr.CodeOf(err) == apperr.Internal {
			ev = h.log.Error()
		}
		ev.Err(err).Str("conn", connID).Str("event", env.Type).Msg("action failed")
		effects = append(effects, h.errorEffect(connID, env.Type, err))
	}
	return effects
}

func (h *Hub) dispatch(connID string, env Envelope) ([]Effect, error) {
	switch env.Type {
	case TypeRoomCreate:
		return h.create(connID, env.Payload)
	case TypeRoomJoin:
		return h.join(connID, env.Payload)
	case TypeRoomLeave:
		return h.leave(connID)
	case TypeRoomReady:
		return h.ready(connID, env.Payload)
	case TypeRoomUpdateSettings:
		return h.updateSettings(connID, env.Payload)
	case TypeRoomReconnect:
		return h.reconnect(connID, env.Payload)
	case TypeGameStart:
		return h.start(connID)
	case TypeGameSelectWord:
		return h.selectWord(connID, env.Payload)
	case TypeGameSuggestWords:
		return h.suggestWords(connID)
	case TypeGameSubmitHint:
		return h.submitHint(connID, env.Payload)
	case TypeGameGuess:
		return h.guess(connID, env.Payload)
	case TypeGameSkipRound:
		return h.skipRound(connID)
	case TypeGameSync:
		return h.sync(connID)
	}
	return nil, apperr.Newf(apperr.BadRequest, "unknown message type %q", env.Type)
}

// Disconnect marks the player on connID offline. The seat is kept for
// room:reconnect.
func (h *Hub) Disconnect(connID string) []Effect {
	h.mu.Lock()
	defer h.mu.Unlock()

	rm, p, ok := h.rooms.HandleDisconnect(connID)
	if !ok {
		return nil
	}
	h.log.Info().Str("room", rm.ID).Str("player", p.ID).Str("conn", connID).Msg("player disconnected")
	return []Effect{toOthers(rm, connID, TypeRoomPlayerDisconnected, p.ID)}
}

// ErrorMessage renders err as an error frame for msgType's namespace.
func (h *Hub) ErrorMessage(msgType string, err error) Message {
	code, msg := apperr.Localize(h.cfg.Locale, err)
	typ := TypeRoomError
	if strings.HasPrefix(msgType, "game:") {
		typ = TypeGameError
	}
	return Message{Type: typ, Payload: ErrorPayload{Code: code, Message: msg}}
}

func (h *Hub) errorEffect(connID, msgType string, err error) Effect {
	return Effect{ConnIDs: []string{connID}, Message: h.ErrorMessage(msgType, err)}
}

// ---------------------------------------------------------------- rooms

func (h *Hub) create(connID string, raw json.RawMessage) ([]Effect, error) {
	var opts room.Options
	if err := decode(raw, &opts); err != nil {
		return nil, err
	}
	rm, err := h.rooms.CreateRoom(connID, opts)
	if err != nil {
		return nil, err
	}
	host := rm.Host()
	h.log.Info().Str("room", rm.ID).Str("code", rm.Code).Str("player", host.ID).Msg("room created")

	effects := []Effect{to(connID, TypeRoomCreated, rm.Info())}
	return append(effects, h.session(rm, host)...), nil
}

func (h *Hub) join(connID string, raw json.RawMessage) ([]Effect, error) {
	var in joinPayload
	if err := decode(raw, &in); err != nil {
		return nil, err
	}
	rm, p, err := h.rooms.JoinRoom(in.RoomCode, connID, in.PlayerName, in.Password)
	if err != nil {
		return nil, err
	}
	h.log.Info().Str("room", rm.ID).Str("player", p.ID).Str("conn", connID).Msg("player joined")

	effects := []Effect{to(connID, TypeRoomJoined, JoinedPayload{Room: rm.Info(), Player: p.Info()})}
	effects = append(effects, h.session(rm, p)...)
	return append(effects, toOthers(rm, connID, TypeRoomPlayerJoined, p.Info())), nil
}

func (h *Hub) leave(connID string) ([]Effect, error) {
	res, ok := h.rooms.LeaveRoom(connID)
	if !ok {
		return nil, apperr.ErrNotInRoom
	}
	h.log.Info().Str("room", res.RoomID).Str("player", res.PlayerID).Bool("deleted", res.Deleted).Msg("player left")
	if res.Deleted {
		h.dropGame(res.RoomID)
		return nil, nil
	}

	rm := res.Room
	effects := []Effect{toRoom(rm, TypeRoomPlayerLeft, res.PlayerID)}
	if res.NewHost != nil {
		effects = append(effects, toRoom(rm, TypeRoomHostChanged, res.NewHost.ID))
	}
	return append(effects, h.afterDeparture(rm, res.PlayerID)...), nil
}

// afterDeparture repairs a running game once a player has left the room.
func (h *Hub) afterDeparture(rm *room.Room, playerID string) []Effect {
	if !h.games.Has(rm.ID) {
		return nil
	}
	keyRole, err := h.games.RemovePlayer(rm.ID, playerID)
	if err != nil {
		return nil
	}
	if h.games.PlayerCount(rm.ID) < rm.MinPlayers {
		h.log.Info().Str("room", rm.ID).Msg("too few players, ending game")
		return h.finishGame(rm)
	}

	g, _ := h.games.Get(rm.ID)
	switch {
	case keyRole && g.Phase != game.PhaseRoundEnd:
		sum, err := h.games.EndRound(rm.ID)
		if err != nil {
			return nil
		}
		h.scheduleAdvance(rm.ID)
		return []Effect{toRoom(rm, TypeGameRoundEnd, sum)}
	case g.Phase == game.PhaseHint && h.games.AllHintsSubmitted(rm.ID):
		return h.openGuessPhase(rm)
	}
	st, err := h.games.PublicState(rm.ID)
	if err != nil {
		return nil
	}
	return []Effect{toRoom(rm, TypeGameStateSync, st)}
}

func (h *Hub) ready(connID string, raw json.RawMessage) ([]Effect, error) {
	var in readyPayload
	if err := decode(raw, &in); err != nil {
		return nil, err
	}
	rm, ok := h.rooms.SetPlayerReady(connID, in.IsReady)
	if !ok {
		return nil, apperr.ErrNotInRoom
	}
	return []Effect{toRoom(rm, TypeRoomUpdated, rm.Info())}, nil
}

func (h *Hub) updateSettings(connID string, raw json.RawMessage) ([]Effect, error) {
	var opts room.Options
	if err := decode(raw, &opts); err != nil {
		return nil, err
	}
	rm, err := h.rooms.UpdateSettings(connID, opts)
	if err != nil {
		return nil, err
	}
	return []Effect{toRoom(rm, TypeRoomUpdated, rm.Info())}, nil
}

func (h *Hub) reconnect(connID string, raw json.RawMessage) ([]Effect, error) {
	var in reconnectPayload
	if err := decode(raw, &in); err != nil {
		return nil, err
	}
	claims, err := h.tokens.Verify(in.Token)
	if err != nil {
		return nil, err
	}
	rm := h.rooms.Room(claims.RoomID)
	if rm == nil {
		return nil, apperr.ErrRoomNotFound
	}
	p := rm.Player(claims.PlayerID)
	if p == nil {
		return nil, apperr.ErrInvalidToken
	}
	if _, _, ok := h.rooms.HandleReconnect(p.ConnID, connID); !ok {
		return nil, apperr.ErrAlreadyInRoom
	}
	h.log.Info().Str("room", rm.ID).Str("player", p.ID).Str("conn", connID).Msg("player reconnected")

	effects := []Effect{to(connID, TypeRoomJoined, JoinedPayload{Room: rm.Info(), Player: p.Info()})}
	effects = append(effects, h.session(rm, p)...)
	effects = append(effects, toOthers(rm, connID, TypeRoomPlayerReconnected, p.ID))
	return append(effects, h.gameView(rm, p)...), nil
}

// session issues a fresh reconnect token for p.
func (h *Hub) session(rm *room.Room, p *room.Player) []Effect {
	tok, err := h.tokens.Issue(rm.ID, p.ID)
	if err != nil {
		h.log.Error().Err(err).Str("room", rm.ID).Str("player", p.ID).Msg("issue token")
		return nil
	}
	return []Effect{to(p.ConnID, TypeSessionToken, SessionPayload{Token: tok, RoomID: rm.ID, PlayerID: p.ID})}
}

// ----------------------------------------------------------------- game

// member resolves connID to its room and player.
func (h *Hub) member(connID string) (*room.Room, *room.Player, error) {
	rm, p := h.rooms.PlayerByConn(connID)
	if p == nil {
		return nil, nil, apperr.ErrNotInRoom
	}
	return rm, p, nil
}

func (h *Hub) start(connID string) ([]Effect, error) {
	rm, _, err := h.member(connID)
	if err != nil {
		return nil, err
	}
	if !rm.IsHostConn(connID) {
		return nil, apperr.ErrNotHost
	}
	if err := h.rooms.CanStartGame(rm); err != nil {
		return nil, err
	}
	g, err := h.games.CreateGame(rm)
	if err != nil {
		return nil, err
	}
	h.rooms.SetStatus(rm.ID, room.StatusPlaying)
	h.log.Info().Str("room", rm.ID).Str("game", g.ID).Int("players", len(g.Players)).Msg("game started")

	st, err := h.games.PublicState(rm.ID)
	if err != nil {
		return nil, err
	}
	effects := h.roleEffects(rm.ID, g)
	effects = append(effects,
		toRoom(rm, TypeGameStarted, st),
		toRoom(rm, TypeGamePhaseChanged, g.Phase),
	)
	return append(effects, h.suggestions(g)...), nil
}

func (h *Hub) roleEffects(roomID string, g *game.Game) []Effect {
	out := make([]Effect, 0, len(g.Players))
	for _, p := range g.Players {
		ra, err := h.games.RoleAssignment(roomID, p.ID)
		if err != nil {
			continue
		}
		out = append(out, to(p.ConnID, TypeGameRolesAssigned, ra))
	}
	return out
}

func (h *Hub) suggestions(g *game.Game) []Effect {
	if g.WordSetter == nil || h.words == nil {
		return nil
	}
	words := h.words.Suggest(h.rng, h.cfg.Suggestions, h.cfg.MinWords)
	if words == nil {
		words = []string{}
	}
	return []Effect{to(g.WordSetter.ConnID, TypeGameWordSuggestions, SuggestionsPayload{Words: words})}
}

func (h *Hub) selectWord(connID string, raw json.RawMessage) ([]Effect, error) {
	rm, p, err := h.member(connID)
	if err != nil {
		return nil, err
	}
	var in wordPayload
	if err := decode(raw, &in); err != nil {
		return nil, err
	}
	word := strings.TrimSpace(in.Word)
	if err := h.games.SetMainWord(rm.ID, p.ID, word); err != nil {
		return nil, err
	}
	g, _ := h.games.Get(rm.ID)

	var effects []Effect
	effects = append(effects, to(g.WordSetter.ConnID, TypeGameWordRevealed, word))
	if len(g.Hinters) > 0 {
		effects = append(effects, toPlayers(g.Hinters, TypeGameWordRevealed, word))
	}
	effects = append(effects, to(g.Guesser.ConnID, TypeGameWordSelected, nil))

	if err := h.games.StartHintPhase(rm.ID, rm.Settings.HintTimeLimit); err != nil {
		return effects, err
	}
	st, err := h.games.PublicState(rm.ID)
	if err != nil {
		return effects, err
	}
	return append(effects,
		toRoom(rm, TypeGamePhaseChanged, game.PhaseHint),
		toRoom(rm, TypeGameStateSync, st),
	), nil
}

func (h *Hub) suggestWords(connID string) ([]Effect, error) {
	rm, p, err := h.member(connID)
	if err != nil {
		return nil, err
	}
	g, ok := h.games.Get(rm.ID)
	if !ok {
		return nil, apperr.ErrGameNotFound
	}
	if g.WordSetter == nil || g.WordSetter.ID != p.ID {
		return nil, apperr.ErrInvalidRole
	}
	if g.Phase != game.PhaseWordSelection {
		return nil, apperr.ErrWrongPhase
	}
	return h.suggestions(g), nil
}

func (h *Hub) submitHint(connID string, raw json.RawMessage) ([]Effect, error) {
	rm, p, err := h.member(connID)
	if err != nil {
		return nil, err
	}
	var in hintPayload
	if err := decode(raw, &in); err != nil {
		return nil, err
	}
	res, err := h.games.SubmitHint(rm.ID, p.ID, strings.TrimSpace(in.HintChar))
	if err != nil {
		return nil, err
	}
	if res.Rejected != nil {
		return []Effect{to(connID, TypeGameHintRejected, h.localize(res.Rejected))}, nil
	}

	effects := []Effect{toRoom(rm, TypeGameHintSubmitted, res.Hint)}
	if h.games.AllHintsSubmitted(rm.ID) {
		effects = append(effects, h.openGuessPhase(rm)...)
	}
	return effects, nil
}

func (h *Hub) openGuessPhase(rm *room.Room) []Effect {
	if err := h.games.StartGuessPhase(rm.ID, rm.Settings.GuessTimeLimit); err != nil {
		return nil
	}
	st, err := h.games.PublicState(rm.ID)
	if err != nil {
		return nil
	}
	return []Effect{
		toRoom(rm, TypeGamePhaseChanged, game.PhaseGuess),
		toRoom(rm, TypeGameStateSync, st),
	}
}

func (h *Hub) guess(connID string, raw json.RawMessage) ([]Effect, error) {
	rm, p, err := h.member(connID)
	if err != nil {
		return nil, err
	}
	var in guessPayload
	if err := decode(raw, &in); err != nil {
		return nil, err
	}
	var before game.Phase
	if g, ok := h.games.Get(rm.ID); ok {
		before = g.Phase
	}

	res, err := h.games.SubmitGuess(rm.ID, p.ID, strings.TrimSpace(in.Guess))
	if err != nil {
		return nil, err
	}
	if res.Rejected != nil {
		return []Effect{to(connID, TypeGameGuessRejected, h.localize(res.Rejected))}, nil
	}

	var effects []Effect
	if before == game.PhaseHint {
		effects = append(effects, toRoom(rm, TypeGamePhaseChanged, game.PhaseGuess))
	}
	effects = append(effects, toRoom(rm, TypeGameGuessResult, res))
	if !res.RoundOver() {
		return effects, nil
	}

	sum, err := h.games.EndRound(rm.ID)
	if err != nil {
		return effects, err
	}
	h.log.Info().Str("room", rm.ID).Int("round", sum.Round).Bool("correct", sum.IsCorrect).Msg("round ended")
	h.scheduleAdvance(rm.ID)
	return append(effects, toRoom(rm, TypeGameRoundEnd, sum)), nil
}

func (h *Hub) skipRound(connID string) ([]Effect, error) {
	rm, _, err := h.member(connID)
	if err != nil {
		return nil, err
	}
	if !rm.IsHostConn(connID) {
		return nil, apperr.ErrNotHost
	}
	g, ok := h.games.Get(rm.ID)
	if !ok {
		return nil, apperr.ErrGameNotFound
	}
	h.cancelAdvance(rm.ID)

	var effects []Effect
	if g.Phase != game.PhaseRoundEnd {
		sum, err := h.games.EndRound(rm.ID)
		if err != nil {
			return nil, err
		}
		effects = append(effects, toRoom(rm, TypeGameRoundEnd, sum))
	}
	h.log.Info().Str("room", rm.ID).Int("round", g.CurrentRound).Msg("round skipped")
	return append(effects, h.advance(rm)...), nil
}

// advance moves a room from ROUND_END to the next round or to the end of
// the game.
func (h *Hub) advance(rm *room.Room) []Effect {
	more, err := h.games.NextRound(rm.ID)
	if err != nil {
		h.log.Warn().Err(err).Str("room", rm.ID).Msg("advance round")
		return nil
	}
	if !more {
		return h.finishGame(rm)
	}
	g, _ := h.games.Get(rm.ID)
	h.log.Info().Str("room", rm.ID).Int("round", g.CurrentRound).Str("phase", string(g.Phase)).Msg("round started")
	st, err := h.games.PublicState(rm.ID)
	if err != nil {
		return nil
	}
	effects := []Effect{
		toRoom(rm, TypeGamePhaseChanged, g.Phase),
		toRoom(rm, TypeGameStateSync, st),
	}
	effects = append(effects, h.roleEffects(rm.ID, g)...)
	return append(effects, h.suggestions(g)...)
}

// finishGame ends the game, archives it and returns the room to the lobby.
func (h *Hub) finishGame(rm *room.Room) []Effect {
	h.cancelAdvance(rm.ID)
	g, ok := h.games.Get(rm.ID)
	if !ok {
		return nil
	}
	res, err := h.games.EndGame(rm.ID)
	if err != nil {
		return nil
	}
	h.archiveResult(rm, g, res)
	h.dropGame(rm.ID)

	h.rooms.SetStatus(rm.ID, room.StatusFinished)
	for _, p := range rm.Players {
		p.Role = room.RoleSpectator
	}
	ev := h.log.Info().Str("room", rm.ID).Str("game", g.ID)
	if res.Winner != nil {
		ev = ev.Str("winner", res.Winner.ID)
	}
	ev.Msg("game ended")

	return []Effect{
		toRoom(rm, TypeGameEnded, res),
		toRoom(rm, TypeRoomUpdated, rm.Info()),
	}
}

func (h *Hub) archiveResult(rm *room.Room, g *game.Game, res game.GameResult) {
	if h.archive == nil {
		return
	}
	r := store.Result{
		GameID:     g.ID,
		RoomID:     rm.ID,
		RoomCode:   rm.Code,
		Rounds:     len(res.Rounds),
		Scores:     make([]store.PlayerScore, 0, len(g.Players)),
		FinishedAt: h.now(),
	}
	if res.Winner != nil {
		r.WinnerID, r.WinnerName = res.Winner.ID, res.Winner.Name
	}
	for _, p := range g.Players {
		r.Scores = append(r.Scores, store.PlayerScore{PlayerID: p.ID, Name: p.Name, Score: res.FinalScores[p.ID]})
	}
	sort.SliceStable(r.Scores, func(i, j int) bool { return r.Scores[i].Score > r.Scores[j].Score })

	archive, l := h.archive, h.log
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()
		if err := archive.Save(ctx, r); err != nil {
			l.Error().Err(err).Str("game", r.GameID).Msg("archive result")
		}
	}()
}

func (h *Hub) sync(connID string) ([]Effect, error) {
	rm, p, err := h.member(connID)
	if err != nil {
		return nil, err
	}
	effects := []Effect{to(connID, TypeRoomUpdated, rm.Info())}
	return append(effects, h.gameView(rm, p)...), nil
}

// gameView is everything p needs to rebuild the game screen.
func (h *Hub) gameView(rm *room.Room, p *room.Player) []Effect {
	g, ok := h.games.Get(rm.ID)
	if !ok {
		return nil
	}
	st, err := h.games.PublicState(rm.ID)
	if err != nil {
		return nil
	}
	effects := []Effect{to(p.ConnID, TypeGameStateSync, st)}
	if ra, err := h.games.RoleAssignment(rm.ID, p.ID); err == nil {
		effects = append(effects, to(p.ConnID, TypeGameRolesAssigned, ra))
	}
	if g.MainWord != "" && g.Phase != game.PhaseRoundEnd && (p.Role == room.RoleWordSetter || p.Role == room.RoleHinter) {
		effects = append(effects, to(p.ConnID, TypeGameWordRevealed, g.MainWord))
	}
	return effects
}

func (h *Hub) localize(r *game.Rejection) game.Rejection {
	return game.Rejection{Code: r.Code, Reason: apperr.Message(h.cfg.Locale, r.Code, r.Reason)}
}

// ---------------------------------------------------------------- timer

// scheduleAdvance arms the auto-advance for roomID, replacing any pending one.
func (h *Hub) scheduleAdvance(roomID string) {
	h.cancelAdvance(roomID)
	h.seq++
	gen := h.seq
	h.gens[roomID] = gen
	h.timers[roomID] = time.AfterFunc(h.cfg.AdvanceDelay, func() { h.onAdvance(roomID, gen) })
}

// cancelAdvance stops the pending timer and invalidates any callback
// already running. Generations are never reused.
func (h *Hub) cancelAdvance(roomID string) {
	if t, ok := h.timers[roomID]; ok {
		t.Stop()
		delete(h.timers, roomID)
	}
	delete(h.gens, roomID)
}

func (h *Hub) onAdvance(roomID string, gen uint64) {
	h.mu.Lock()
	if cur, ok := h.gens[roomID]; !ok || cur != gen {
		h.mu.Unlock()
		return
	}
	delete(h.timers, roomID)
	delete(h.gens, roomID)

	var effects []Effect
	if rm := h.rooms.Room(roomID); rm != nil && h.games.Has(roomID) {
		effects = h.advance(rm)
	}
	sink := h.sink
	h.mu.Unlock()

	if sink != nil && len(effects) > 0 {
		sink.Deliver(effects)
	}
}

// dropGame forgets the game and timer state of roomID.
func (h *Hub) dropGame(roomID string) {
	h.cancelAdvance(roomID)
	h.games.Delete(roomID)
}

// ---------------------------------------------------------------- views

// Stats is a point-in-time count for health checks.
type Stats struct {
	Rooms int `json:"rooms"`
	Games int `json:"games"`
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{Rooms: h.rooms.Len(), Games: h.games.Len()}
}

// PublicRooms lists joinable rooms.
func (h *Hub) PublicRooms() []room.Info {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms.PublicRooms()
}

// ---------------------------------------------------------------- effects

func to(connID, typ string, payload any) Effect {
	return Effect{ConnIDs: []string{connID}, Message: Message{Type: typ, Payload: payload}}
}

func toRoom(rm *room.Room, typ string, payload any) Effect {
	return Effect{ConnIDs: rm.ConnIDs(), Message: Message{Type: typ, Payload: payload}}
}

func toOthers(rm *room.Room, except, typ string, payload any) Effect {
	ids := make([]string, 0, len(rm.Players))
	for _, p := range rm.Players {
		if p.ConnID != except {
			ids = append(ids, p.ConnID)
		}
	}
	return Effect{ConnIDs: ids, Message: Message{Type: typ, Payload: payload}}
}

func toPlayers(ps []*room.Player, typ string, payload any) Effect {
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ConnID)
	}
	return Effect{ConnIDs: ids, Message: Message{Type: typ, Payload: payload}}
}
