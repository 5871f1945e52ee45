// internal/game/engine.go
//
// Round engine: one Game per room, keyed by room id.
// Responsibilities:
//   - Assign roles (random for round 1, rotation afterwards).
//   - Walk the phase machine and reject actions from the wrong role/phase.
//   - Validate hints through the word index and mask them as zhuyin.
//   - Score correct guesses and build round/game summaries.
//
// Notes:
//   - Hard failures are *apperr.Error and are checked before any mutation.
//   - Soft failures (bad hint, no guesses left) come back as Rejection values.
//   - Not safe for concurrent use; the hub serializes calls.
package game

import (
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/guessword/go-server/internal/apperr"
	"github.com/guessword/go-server/internal/room"
	"github.com/guessword/go-server/internal/words"
)

const minPlayers = 3

// HintValidator decides whether a hint forms a known word with the secret.
type HintValidator interface {
	ValidateHintPair(secret, hint string) words.Validation
}

// PhoneticConverter renders a character as zhuyin.
type PhoneticConverter interface {
	CharToZhuyin(char string) (string, error)
}

type Engine struct {
	games     map[string]*Game
	validator HintValidator
	converter PhoneticConverter
	rng       *rand.Rand
	now       func() time.Time
}

type Option func(*Engine)

// WithRand sets the random source used for the first role assignment.
func WithRand(rng *rand.Rand) Option { return func(e *Engine) { e.rng = rng } }

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

func NewEngine(v HintValidator, c PhoneticConverter, opts ...Option) *Engine {
	e := &Engine{
		games:     make(map[string]*Game),
		validator: v,
		converter: c,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// CreateGame starts a game for rm and assigns round-1 roles.
func (e *Engine) CreateGame(rm *room.Room) (*Game, error) {
	if len(rm.Players) < minPlayers {
		return nil, apperr.ErrInsufficientPlayers
	}
	if _, running := e.games[rm.ID]; running {
		return nil, apperr.ErrGameInProgress
	}

	maxGuesses := rm.Settings.MaxGuesses
	if maxGuesses <= 0 {
		maxGuesses = room.DefaultMaxGuesses
	}
	g := &Game{
		ID:           uuid.NewString(),
		RoomID:       rm.ID,
		Phase:        PhaseRoleAssignment,
		CurrentRound: 1,
		MaxRounds:    rm.Settings.Rounds,
		MaxGuesses:   maxGuesses,
		Players:      append([]*room.Player(nil), rm.Players...),
		Scores:       make(map[string]int, len(rm.Players)),
	}
	for _, p := range g.Players {
		g.Scores[p.ID] = 0
		p.Score = 0
	}

	order := e.rng.Perm(len(g.Players))
	setRoles(g, order[0], order[1])

	g.Phase = PhaseWordSelection
	g.PhaseStartedAt = e.now()
	e.games[rm.ID] = g
	return g, nil
}

// setRoles makes Players[gi] guesser, Players[si] word-setter and everyone
// else a hinter.
func setRoles(g *Game, gi, si int) {
	g.guesserIdx = gi
	g.Guesser = g.Players[gi]
	g.WordSetter = g.Players[si]
	g.Hinters = make([]*room.Player, 0, len(g.Players))
	for i, p := range g.Players {
		switch i {
		case gi:
			p.Role = room.RoleGuesser
		case si:
			p.Role = room.RoleWordSetter
		default:
			p.Role = room.RoleHinter
			g.Hinters = append(g.Hinters, p)
		}
	}
}

// rotateRoles moves the guesser role to the next player in list order and
// the word-setter role to the one after.
func rotateRoles(g *Game) {
	n := len(g.Players)
	gi := (g.guesserIdx + 1) % n
	setRoles(g, gi, (gi+1)%n)
}

func (e *Engine) game(roomID string) (*Game, error) {
	g, ok := e.games[roomID]
	if !ok {
		return nil, apperr.ErrGameNotFound
	}
	return g, nil
}

// RoleAssignment builds playerID's view of the current roles.
func (e *Engine) RoleAssignment(roomID, playerID string) (RoleAssignment, error) {
	g, err := e.game(roomID)
	if err != nil {
		return RoleAssignment{}, err
	}
	ra := RoleAssignment{
		MyRole:      room.RoleSpectator,
		HinterIDs:   make([]string, 0, len(g.Hinters)),
		HinterNames: make([]string, 0, len(g.Hinters)),
	}
	if p := findPlayer(g, playerID); p != nil {
		ra.MyRole = p.Role
	}
	if g.Guesser != nil {
		ra.GuesserID, ra.GuesserName = g.Guesser.ID, g.Guesser.Name
	}
	if g.WordSetter != nil {
		ra.WordSetterID, ra.WordSetterName = g.WordSetter.ID, g.WordSetter.Name
	}
	for _, h := range g.Hinters {
		ra.HinterIDs = append(ra.HinterIDs, h.ID)
		ra.HinterNames = append(ra.HinterNames, h.Name)
	}
	return ra, nil
}

// SetMainWord stores the round's secret.
func (e *Engine) SetMainWord(roomID, setterID, char string) error {
	g, err := e.game(roomID)
	if err != nil {
		return err
	}
	if g.WordSetter == nil || g.WordSetter.ID != setterID {
		return apperr.ErrInvalidRole
	}
	if g.Phase != PhaseWordSelection {
		return apperr.ErrWrongPhase
	}
	if !singleChar(char) {
		return apperr.ErrInvalidWord
	}
	g.MainWord = char
	e.enter(g, PhaseWordReveal, 0)
	return nil
}

// StartHintPhase opens hint submission. limit is advisory.
func (e *Engine) StartHintPhase(roomID string, limit int) error {
	g, err := e.game(roomID)
	if err != nil {
		return err
	}
	if g.Phase != PhaseWordReveal {
		return apperr.ErrWrongPhase
	}
	e.enter(g, PhaseHint, limit)
	return nil
}

// StartGuessPhase closes hint submission. limit is advisory.
func (e *Engine) StartGuessPhase(roomID string, limit int) error {
	g, err := e.game(roomID)
	if err != nil {
		return err
	}
	if g.Phase != PhaseHint {
		return apperr.ErrWrongPhase
	}
	e.enter(g, PhaseGuess, limit)
	return nil
}

func (e *Engine) enter(g *Game, p Phase, limit int) {
	g.Phase = p
	g.PhaseStartedAt = e.now()
	g.PhaseTimeLimit = limit
}

func reject(code apperr.Code, reason string) *Rejection {
	return &Rejection{Code: code, Reason: reason}
}

// SubmitHint records a hint from playerID. Problems the player can fix come
// back as a Rejection; the error is reserved for a missing game or a hint
// sent before the hint phase opened.
func (e *Engine) SubmitHint(roomID, playerID, char string) (HintResult, error) {
	g, err := e.game(roomID)
	if err != nil {
		return HintResult{}, err
	}
	switch g.Phase {
	case PhaseHint:
	case PhaseGuess:
		return HintResult{Rejected: reject(apperr.HintPhaseOver, "the hint phase is over")}, nil
	default:
		return HintResult{}, apperr.ErrWrongPhase
	}

	p := findPlayer(g, playerID)
	if p == nil || !isHinter(g, playerID) {
		return HintResult{Rejected: reject(apperr.NotHinter, "only hinters can submit hints")}, nil
	}
	for _, h := range g.Hints {
		if h.PlayerID == playerID {
			return HintResult{Rejected: reject(apperr.DuplicateHint, "you already submitted a hint")}, nil
		}
	}
	if !singleChar(char) {
		return HintResult{Rejected: reject(apperr.NotSingleChar, "a hint must be a single character")}, nil
	}
	if char == g.MainWord {
		return HintResult{Rejected: reject(apperr.HintIsSecret, "you cannot hint the secret itself")}, nil
	}

	v := e.validator.ValidateHintPair(g.MainWord, char)
	if !v.Valid {
		reason := v.Reason
		if reason == "" {
			reason = "no known word pairs these characters"
		}
		return HintResult{Rejected: reject(apperr.NoSuchWord, reason)}, nil
	}

	zhuyin, err := e.converter.CharToZhuyin(char)
	if err != nil || zhuyin == "" {
		zhuyin = char
	}

	h := Hint{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Zhuyin:     zhuyin,
		HintChar:   char,
		Word:       v.Word,
		Position:   v.Position,
		Timestamp:  e.now().UnixMilli(),
	}
	g.Hints = append(g.Hints, h)
	return HintResult{Hint: h.Display()}, nil
}

// AllHintsSubmitted reports whether every current hinter has submitted.
// Hints left behind by players who have since departed do not count.
func (e *Engine) AllHintsSubmitted(roomID string) bool {
	g, ok := e.games[roomID]
	if !ok {
		return false
	}
	for _, p := range g.Hinters {
		if !hasHinted(g, p.ID) {
			return false
		}
	}
	return true
}

func hasHinted(g *Game, playerID string) bool {
	for _, h := range g.Hints {
		if h.PlayerID == playerID {
			return true
		}
	}
	return false
}

// SubmitGuess records a guess from the guesser. The engine enforces
// MaxGuesses itself: once the round is solved or attempts are used up, later
// guesses are rejected softly and nothing is recorded. A guess during the
// hint phase closes it.
func (e *Engine) SubmitGuess(roomID, playerID, char string) (GuessResult, error) {
	g, err := e.game(roomID)
	if err != nil {
		return GuessResult{}, err
	}
	if g.Guesser == nil || g.Guesser.ID != playerID {
		return GuessResult{}, apperr.ErrInvalidRole
	}
	if !singleChar(char) {
		return GuessResult{}, apperr.ErrInvalidGuess
	}
	if g.Phase != PhaseHint && g.Phase != PhaseGuess {
		return GuessResult{}, apperr.ErrWrongPhase
	}
	if solved(g) {
		return GuessResult{Guess: char, Rejected: reject(apperr.RoundSolved, "this round is already solved")}, nil
	}
	if len(g.Guesses) >= g.MaxGuesses {
		return GuessResult{Guess: char, Rejected: reject(apperr.NoGuessesLeft, "no guesses left this round")}, nil
	}

	if g.Phase == PhaseHint {
		e.enter(g, PhaseGuess, g.PhaseTimeLimit)
	}

	correct := char == g.MainWord
	g.Guesses = append(g.Guesses, Guess{Guess: char, IsCorrect: correct, Timestamp: e.now().UnixMilli()})
	if correct {
		credit(g)
	}

	remaining := g.MaxGuesses - len(g.Guesses)
	if remaining < 0 {
		remaining = 0
	}
	res := GuessResult{
		Guess:            char,
		IsCorrect:        correct,
		RemainingGuesses: remaining,
		Attempt:          len(g.Guesses),
	}
	if correct || remaining == 0 {
		res.CorrectAnswer = g.MainWord
	}
	return res, nil
}

// credit awards points for a correct guess.
func credit(g *Game) {
	add := func(id string, pts int) {
		g.Scores[id] += pts
		if p := findPlayer(g, id); p != nil {
			p.Score = g.Scores[id]
		}
	}
	add(g.Guesser.ID, GuesserPoints(len(g.Guesses)))
	for _, h := range g.Hints {
		add(h.PlayerID, HinterPoints)
	}
	if g.WordSetter != nil {
		add(g.WordSetter.ID, WordSetterPoints)
	}
}

// EndRound snapshots the round into history.
func (e *Engine) EndRound(roomID string) (RoundSummary, error) {
	g, err := e.game(roomID)
	if err != nil {
		return RoundSummary{}, err
	}
	if g.Phase == PhaseRoundEnd || g.Phase == PhaseGameEnd {
		return RoundSummary{}, apperr.ErrWrongPhase
	}

	s := RoundSummary{
		Round:     g.CurrentRound,
		MainWord:  g.MainWord,
		Hints:     append([]Hint{}, g.Hints...),
		Guesses:   append([]Guess{}, g.Guesses...),
		IsCorrect: solved(g),
		Scores:    copyScores(g.Scores),
	}
	g.History = append(g.History, s)
	e.enter(g, PhaseRoundEnd, 0)
	return s, nil
}

// NextRound advances to the next round, or reports false and moves to
// GAME_END when the last round is done.
func (e *Engine) NextRound(roomID string) (bool, error) {
	g, err := e.game(roomID)
	if err != nil {
		return false, err
	}
	if g.Phase != PhaseRoundEnd {
		return false, apperr.ErrWrongPhase
	}
	if g.CurrentRound >= g.MaxRounds {
		e.enter(g, PhaseGameEnd, 0)
		return false, nil
	}

	g.CurrentRound++
	g.MainWord = ""
	g.Hints = nil
	g.Guesses = nil
	rotateRoles(g)
	e.enter(g, PhaseWordSelection, 0)
	return true, nil
}

// EndGame finishes the game and picks the winner: highest score, then
// earliest join, then player order.
func (e *Engine) EndGame(roomID string) (GameResult, error) {
	g, err := e.game(roomID)
	if err != nil {
		return GameResult{}, err
	}
	e.enter(g, PhaseGameEnd, 0)

	var best *room.Player
	for _, p := range g.Players {
		if best == nil {
			best = p
			continue
		}
		ps, bs := g.Scores[p.ID], g.Scores[best.ID]
		if ps > bs || (ps == bs && p.JoinedAt.Before(best.JoinedAt)) {
			best = p
		}
	}

	res := GameResult{
		Rounds:      append([]RoundSummary{}, g.History...),
		FinalScores: copyScores(g.Scores),
	}
	if best != nil {
		info := best.Info()
		res.Winner = &info
	}
	return res, nil
}

// RemovePlayer drops a departed player from the game. It reports whether the
// player held the guesser or word-setter role, in which case the current
// round cannot finish normally.
func (e *Engine) RemovePlayer(roomID, playerID string) (keyRole bool, err error) {
	g, err := e.game(roomID)
	if err != nil {
		return false, err
	}
	idx := -1
	for i, p := range g.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	keyRole = g.Guesser.ID == playerID || (g.WordSetter != nil && g.WordSetter.ID == playerID)
	g.Players = append(g.Players[:idx], g.Players[idx+1:]...)
	for i, h := range g.Hinters {
		if h.ID == playerID {
			g.Hinters = append(g.Hinters[:i], g.Hinters[i+1:]...)
			break
		}
	}
	if idx <= g.guesserIdx {
		// keep rotation pointing at the player who was next in line
		g.guesserIdx--
		if g.guesserIdx < 0 {
			g.guesserIdx = len(g.Players) - 1
		}
	}
	return keyRole, nil
}

// PlayerCount is the number of players still in the game.
func (e *Engine) PlayerCount(roomID string) int {
	if g, ok := e.games[roomID]; ok {
		return len(g.Players)
	}
	return 0
}

// PublicState projects the game for broadcast. The secret is always nil and
// hints carry only their zhuyin.
func (e *Engine) PublicState(roomID string) (State, error) {
	g, err := e.game(roomID)
	if err != nil {
		return State{}, err
	}
	st := State{
		ID:             g.ID,
		RoomID:         g.RoomID,
		Phase:          g.Phase,
		CurrentRound:   g.CurrentRound,
		MaxRounds:      g.MaxRounds,
		MaxGuesses:     g.MaxGuesses,
		HinterIDs:      make([]string, 0, len(g.Hinters)),
		Hints:          make([]HintDisplay, 0, len(g.Hints)),
		Guesses:        append([]Guess{}, g.Guesses...),
		Scores:         copyScores(g.Scores),
		PhaseStartTime: g.PhaseStartedAt.UnixMilli(),
		PhaseTimeLimit: g.PhaseTimeLimit,
	}
	if g.Guesser != nil {
		st.GuesserID = g.Guesser.ID
	}
	if g.WordSetter != nil {
		st.WordSetterID = g.WordSetter.ID
	}
	for _, h := range g.Hinters {
		st.HinterIDs = append(st.HinterIDs, h.ID)
	}
	for _, h := range g.Hints {
		st.Hints = append(st.Hints, h.Display())
	}
	return st, nil
}

// Secret returns the current secret, empty before selection.
func (e *Engine) Secret(roomID string) (string, error) {
	g, err := e.game(roomID)
	if err != nil {
		return "", err
	}
	return g.MainWord, nil
}

func (e *Engine) Get(roomID string) (*Game, bool) {
	g, ok := e.games[roomID]
	return g, ok
}

func (e *Engine) Has(roomID string) bool {
	_, ok := e.games[roomID]
	return ok
}

func (e *Engine) Delete(roomID string) { delete(e.games, roomID) }

// Len is the number of running games.
func (e *Engine) Len() int { return len(e.games) }

func findPlayer(g *Game, id string) *room.Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func isHinter(g *Game, id string) bool {
	for _, h := range g.Hinters {
		if h.ID == id {
			return true
		}
	}
	return false
}

func solved(g *Game) bool {
	for _, gs := range g.Guesses {
		if gs.IsCorrect {
			return true
		}
	}
	return false
}

func singleChar(s string) bool { return utf8.RuneCountInString(s) == 1 }

func copyScores(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
