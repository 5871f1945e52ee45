package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guessword/go-server/internal/apperr"
	"github.com/guessword/go-server/internal/room"
	"github.com/guessword/go-server/internal/words"
	"github.com/guessword/go-server/internal/zhuyin"
)

var testWords = []string{"河流", "江河", "流水", "河川", "山河", "河水"}

var testReadings = map[string][]string{
	"流": {"liu2"},
	"江": {"jiang1"},
	"山": {"shan1"},
	"川": {"chuan1"},
	"水": {"shui3"},
}

type failingConverter struct{}

func (failingConverter) CharToZhuyin(string) (string, error) { return "", errors.New("no reading") }

func newTestEngine(seed int64) *Engine {
	conv := zhuyin.NewWithLookup(func(c string) []string { return testReadings[c] })
	return NewEngine(words.New(testWords), conv, WithRand(rand.New(rand.NewSource(seed))))
}

func newTestRoom(n, rounds int) *room.Room {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rm := &room.Room{
		ID:         "room-1",
		MinPlayers: 3,
		MaxPlayers: 8,
		Status:     room.StatusPlaying,
		Settings:   room.Settings{Rounds: rounds, HintTimeLimit: 60, GuessTimeLimit: 120, MaxGuesses: 3},
	}
	for i := 0; i < n; i++ {
		rm.Players = append(rm.Players, &room.Player{
			ID:       fmt.Sprintf("p%d", i),
			ConnID:   fmt.Sprintf("c%d", i),
			Name:     fmt.Sprintf("player%d", i),
			IsOnline: true,
			Role:     room.RoleSpectator,
			JoinedAt: base.Add(time.Duration(i) * time.Second),
		})
	}
	return rm
}

// openHints creates a game and moves it into the hint phase with secret.
func openHints(t *testing.T, e *Engine, rm *room.Room, secret string) *Game {
	t.Helper()
	g, err := e.CreateGame(rm)
	require.NoError(t, err)
	require.NoError(t, e.SetMainWord(rm.ID, g.WordSetter.ID, secret))
	require.NoError(t, e.StartHintPhase(rm.ID, 60))
	return g
}

func assertPartition(t *testing.T, g *Game) {
	t.Helper()
	seen := map[string]int{}
	seen[g.Guesser.ID]++
	seen[g.WordSetter.ID]++
	for _, h := range g.Hinters {
		seen[h.ID]++
	}
	assert.Len(t, seen, len(g.Players))
	for _, p := range g.Players {
		assert.Equal(t, 1, seen[p.ID], p.ID)
	}
	assert.Len(t, g.Hinters, len(g.Players)-2)
	assert.Equal(t, room.RoleGuesser, g.Guesser.Role)
	assert.Equal(t, room.RoleWordSetter, g.WordSetter.Role)
	for _, h := range g.Hinters {
		assert.Equal(t, room.RoleHinter, h.Role)
	}
}

func TestCreateGame_RolePartition(t *testing.T) {
	t.Parallel()
	for n := 3; n <= 8; n++ {
		for seed := int64(0); seed < 5; seed++ {
			n, seed := n, seed
			t.Run(fmt.Sprintf("n=%d/seed=%d", n, seed), func(t *testing.T) {
				t.Parallel()
				e := newTestEngine(seed)
				g, err := e.CreateGame(newTestRoom(n, 5))
				require.NoError(t, err)

				assert.Equal(t, PhaseWordSelection, g.Phase)
				assert.Equal(t, 1, g.CurrentRound)
				assert.Len(t, g.Scores, n)
				for _, s := range g.Scores {
					assert.Zero(t, s)
				}
				assertPartition(t, g)
			})
		}
	}
}

func TestCreateGame_Errors(t *testing.T) {
	e := newTestEngine(1)
	_, err := e.CreateGame(newTestRoom(2, 5))
	assert.ErrorIs(t, err, apperr.ErrInsufficientPlayers)
	assert.False(t, e.Has("room-1"))

	rm := newTestRoom(3, 5)
	_, err = e.CreateGame(rm)
	require.NoError(t, err)
	_, err = e.CreateGame(rm)
	assert.ErrorIs(t, err, apperr.ErrGameInProgress)
}

func TestRotation_EveryPlayerGuessesOnce(t *testing.T) {
	t.Parallel()
	for n := 3; n <= 8; n++ {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			t.Parallel()
			e := newTestEngine(int64(n))
			rm := newTestRoom(n, n+1)
			g, err := e.CreateGame(rm)
			require.NoError(t, err)

			counts := map[string]int{}
			for round := 1; round <= n; round++ {
				counts[g.Guesser.ID]++
				assertPartition(t, g)

				_, err := e.EndRound(rm.ID)
				require.NoError(t, err)
				prev := g.Guesser
				more, err := e.NextRound(rm.ID)
				require.NoError(t, err)
				require.True(t, more)

				// the word-setter follows the new guesser in list order
				gi := indexOf(g.Players, g.Guesser.ID)
				assert.Equal(t, g.Players[(gi+1)%n].ID, g.WordSetter.ID)
				assert.Equal(t, g.Players[(indexOf(g.Players, prev.ID)+1)%n].ID, g.Guesser.ID)
			}

			assert.Len(t, counts, n)
			for id, c := range counts {
				assert.Equal(t, 1, c, id)
			}
		})
	}
}

func indexOf(ps []*room.Player, id string) int {
	for i, p := range ps {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func TestSetMainWord(t *testing.T) {
	e := newTestEngine(2)
	rm := newTestRoom(4, 5)
	g, err := e.CreateGame(rm)
	require.NoError(t, err)

	assert.ErrorIs(t, e.SetMainWord(rm.ID, g.Guesser.ID, "河"), apperr.ErrInvalidRole)
	assert.ErrorIs(t, e.SetMainWord(rm.ID, g.WordSetter.ID, "河流"), apperr.ErrInvalidWord)
	assert.ErrorIs(t, e.SetMainWord(rm.ID, g.WordSetter.ID, ""), apperr.ErrInvalidWord)
	assert.Equal(t, PhaseWordSelection, g.Phase)

	require.NoError(t, e.SetMainWord(rm.ID, g.WordSetter.ID, "河"))
	assert.Equal(t, PhaseWordReveal, g.Phase)
	secret, err := e.Secret(rm.ID)
	require.NoError(t, err)
	assert.Equal(t, "河", secret)

	assert.ErrorIs(t, e.SetMainWord(rm.ID, g.WordSetter.ID, "山"), apperr.ErrWrongPhase)
	assert.ErrorIs(t, e.SetMainWord("nope", g.WordSetter.ID, "山"), apperr.ErrGameNotFound)
}

func TestPhaseOrder(t *testing.T) {
	e := newTestEngine(3)
	rm := newTestRoom(3, 5)
	g, err := e.CreateGame(rm)
	require.NoError(t, err)

	assert.ErrorIs(t, e.StartHintPhase(rm.ID, 60), apperr.ErrWrongPhase)
	assert.ErrorIs(t, e.StartGuessPhase(rm.ID, 120), apperr.ErrWrongPhase)

	require.NoError(t, e.SetMainWord(rm.ID, g.WordSetter.ID, "河"))
	require.NoError(t, e.StartHintPhase(rm.ID, 60))
	assert.Equal(t, 60, g.PhaseTimeLimit)
	require.NoError(t, e.StartGuessPhase(rm.ID, 120))
	assert.Equal(t, PhaseGuess, g.Phase)
	assert.Equal(t, 120, g.PhaseTimeLimit)

	_, err = e.NextRound(rm.ID)
	assert.ErrorIs(t, err, apperr.ErrWrongPhase)
}

func TestSubmitHint(t *testing.T) {
	e := newTestEngine(4)
	rm := newTestRoom(5, 5)

	g, err := e.CreateGame(rm)
	require.NoError(t, err)
	_, err = e.SubmitHint(rm.ID, g.Hinters[0].ID, "流")
	assert.ErrorIs(t, err, apperr.ErrWrongPhase)

	require.NoError(t, e.SetMainWord(rm.ID, g.WordSetter.ID, "河"))
	require.NoError(t, e.StartHintPhase(rm.ID, 60))
	h1, h2 := g.Hinters[0], g.Hinters[1]

	testCases := []struct {
		desc   string
		player string
		char   string
		code   apperr.Code
	}{
		{desc: "guesser", player: g.Guesser.ID, char: "流", code: apperr.NotHinter},
		{desc: "word setter", player: g.WordSetter.ID, char: "流", code: apperr.NotHinter},
		{desc: "stranger", player: "ghost", char: "流", code: apperr.NotHinter},
		{desc: "two characters", player: h1.ID, char: "流水", code: apperr.NotSingleChar},
		{desc: "empty", player: h1.ID, char: "", code: apperr.NotSingleChar},
		{desc: "the secret", player: h1.ID, char: "河", code: apperr.HintIsSecret},
		{desc: "no word", player: h1.ID, char: "火", code: apperr.NoSuchWord},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			res, err := e.SubmitHint(rm.ID, tc.player, tc.char)
			require.NoError(t, err)
			require.NotNil(t, res.Rejected)
			assert.Equal(t, tc.code, res.Rejected.Code)
			assert.NotEmpty(t, res.Rejected.Reason)
			assert.Empty(t, g.Hints)
		})
	}

	res, err := e.SubmitHint(rm.ID, h1.ID, "流")
	require.NoError(t, err)
	require.Nil(t, res.Rejected)
	assert.Equal(t, "ㄌㄧㄡˊ", res.Hint.Zhuyin)
	assert.Equal(t, h1.ID, res.Hint.PlayerID)
	require.Len(t, g.Hints, 1)
	assert.Equal(t, "河流", g.Hints[0].Word)
	assert.Equal(t, words.PositionAfter, g.Hints[0].Position)
	assert.Equal(t, "流", g.Hints[0].HintChar)

	res, err = e.SubmitHint(rm.ID, h1.ID, "江")
	require.NoError(t, err)
	require.NotNil(t, res.Rejected)
	assert.Equal(t, apperr.DuplicateHint, res.Rejected.Code)
	assert.Len(t, g.Hints, 1)

	assert.False(t, e.AllHintsSubmitted(rm.ID))
	res, err = e.SubmitHint(rm.ID, h2.ID, "江")
	require.NoError(t, err)
	require.Nil(t, res.Rejected)
	assert.Equal(t, words.PositionBefore, g.Hints[1].Position)
	assert.False(t, e.AllHintsSubmitted(rm.ID))

	res, err = e.SubmitHint(rm.ID, g.Hinters[2].ID, "山")
	require.NoError(t, err)
	require.Nil(t, res.Rejected)
	assert.True(t, e.AllHintsSubmitted(rm.ID))

	require.NoError(t, e.StartGuessPhase(rm.ID, 120))
	res, err = e.SubmitHint(rm.ID, h1.ID, "水")
	require.NoError(t, err)
	require.NotNil(t, res.Rejected)
	assert.Equal(t, apperr.HintPhaseOver, res.Rejected.Code)
}

func TestSubmitHint_ConverterFallback(t *testing.T) {
	e := NewEngine(words.New(testWords), failingConverter{}, WithRand(rand.New(rand.NewSource(1))))
	rm := newTestRoom(3, 5)
	g := openHints(t, e, rm, "河")

	res, err := e.SubmitHint(rm.ID, g.Hinters[0].ID, "流")
	require.NoError(t, err)
	require.Nil(t, res.Rejected)
	assert.Equal(t, "流", res.Hint.Zhuyin)
}

func TestScoring(t *testing.T) {
	testCases := []struct {
		desc         string
		guesses      []string
		guesserScore int
		credited     bool
	}{
		{desc: "first attempt", guesses: []string{"河"}, guesserScore: 100, credited: true},
		{desc: "second attempt", guesses: []string{"山", "河"}, guesserScore: 70, credited: true},
		{desc: "third attempt", guesses: []string{"山", "水", "河"}, guesserScore: 50, credited: true},
		{desc: "fourth attempt is refused", guesses: []string{"山", "水", "江", "河"}, guesserScore: 0, credited: false},
		{desc: "never found", guesses: []string{"山", "水", "江"}, guesserScore: 0, credited: false},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			e := newTestEngine(5)
			rm := newTestRoom(4, 5)
			g := openHints(t, e, rm, "河")
			for i, h := range g.Hinters {
				res, err := e.SubmitHint(rm.ID, h.ID, []string{"流", "江"}[i])
				require.NoError(t, err)
				require.Nil(t, res.Rejected)
			}

			for _, guess := range tc.guesses {
				_, err := e.SubmitGuess(rm.ID, g.Guesser.ID, guess)
				require.NoError(t, err)
			}

			hinterScore, setterScore := 0, 0
			if tc.credited {
				hinterScore, setterScore = HinterPoints, WordSetterPoints
			}
			assert.Equal(t, tc.guesserScore, g.Scores[g.Guesser.ID])
			assert.Equal(t, tc.guesserScore, g.Guesser.Score)
			assert.Equal(t, setterScore, g.Scores[g.WordSetter.ID])
			assert.Equal(t, setterScore, g.WordSetter.Score)
			for _, h := range g.Hinters {
				assert.Equal(t, hinterScore, g.Scores[h.ID])
				assert.Equal(t, hinterScore, h.Score)
			}
			assert.LessOrEqual(t, len(g.Guesses), g.MaxGuesses)
		})
	}

	assert.Equal(t, 0, GuesserPoints(4))
	assert.Equal(t, 0, GuesserPoints(0))
}

func TestSubmitGuess_ExhaustedRevealsAnswer(t *testing.T) {
	e := newTestEngine(6)
	rm := newTestRoom(3, 5)
	g := openHints(t, e, rm, "河")

	_, err := e.SubmitGuess(rm.ID, g.WordSetter.ID, "河")
	assert.ErrorIs(t, err, apperr.ErrInvalidRole)
	_, err = e.SubmitGuess(rm.ID, g.Guesser.ID, "河流")
	assert.ErrorIs(t, err, apperr.ErrInvalidGuess)
	assert.Empty(t, g.Guesses)

	for i, want := range []int{2, 1, 0} {
		res, err := e.SubmitGuess(rm.ID, g.Guesser.ID, []string{"山", "水", "江"}[i])
		require.NoError(t, err)
		require.Nil(t, res.Rejected)
		assert.False(t, res.IsCorrect)
		assert.Equal(t, want, res.RemainingGuesses)
		assert.Equal(t, i+1, res.Attempt)
		if want == 0 {
			assert.Equal(t, "河", res.CorrectAnswer)
			assert.True(t, res.RoundOver())
		} else {
			assert.Empty(t, res.CorrectAnswer)
			assert.False(t, res.RoundOver())
		}
	}
	assert.Equal(t, PhaseGuess, g.Phase)

	res, err := e.SubmitGuess(rm.ID, g.Guesser.ID, "河")
	require.NoError(t, err)
	require.NotNil(t, res.Rejected)
	assert.Equal(t, apperr.NoGuessesLeft, res.Rejected.Code)
	assert.False(t, res.RoundOver())
	assert.Len(t, g.Guesses, 3)
}

func TestSubmitGuess_CorrectClosesRound(t *testing.T) {
	e := newTestEngine(7)
	rm := newTestRoom(3, 5)
	g := openHints(t, e, rm, "河")

	res, err := e.SubmitGuess(rm.ID, g.Guesser.ID, "河")
	require.NoError(t, err)
	assert.True(t, res.IsCorrect)
	assert.Equal(t, "河", res.CorrectAnswer)
	assert.Equal(t, 2, res.RemainingGuesses)
	assert.True(t, res.RoundOver())

	res, err = e.SubmitGuess(rm.ID, g.Guesser.ID, "山")
	require.NoError(t, err)
	require.NotNil(t, res.Rejected)
	assert.Equal(t, apperr.RoundSolved, res.Rejected.Code)
	assert.Len(t, g.Guesses, 1)
}

func TestPublicState_HidesSecret(t *testing.T) {
	e := newTestEngine(8)
	rm := newTestRoom(4, 5)
	g := openHints(t, e, rm, "河")

	check := func() {
		t.Helper()
		st, err := e.PublicState(rm.ID)
		require.NoError(t, err)
		assert.Nil(t, st.MainWord)
		raw, err := json.Marshal(st)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "河")
		assert.NotContains(t, string(raw), "hintChar")
		assert.Contains(t, string(raw), `"mainWord":null`)
	}

	check()
	_, err := e.SubmitHint(rm.ID, g.Hinters[0].ID, "流")
	require.NoError(t, err)
	check()
	_, err = e.SubmitHint(rm.ID, g.Hinters[1].ID, "江")
	require.NoError(t, err)
	require.NoError(t, e.StartGuessPhase(rm.ID, 120))
	check()
	_, err = e.SubmitGuess(rm.ID, g.Guesser.ID, "山")
	require.NoError(t, err)
	check()

	st, err := e.PublicState(rm.ID)
	require.NoError(t, err)
	assert.Len(t, st.Hints, 2)
	assert.Equal(t, "ㄌㄧㄡˊ", st.Hints[0].Zhuyin)
	assert.Equal(t, g.Guesser.ID, st.GuesserID)
	assert.Len(t, st.HinterIDs, 2)
}

func TestRoundLifecycle(t *testing.T) {
	e := newTestEngine(9)
	rm := newTestRoom(3, 2)
	g := openHints(t, e, rm, "河")
	firstGuesser := g.Guesser

	_, err := e.SubmitHint(rm.ID, g.Hinters[0].ID, "流")
	require.NoError(t, err)
	_, err = e.SubmitGuess(rm.ID, g.Guesser.ID, "河")
	require.NoError(t, err)

	sum, err := e.EndRound(rm.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Round)
	assert.Equal(t, "河", sum.MainWord)
	assert.True(t, sum.IsCorrect)
	require.Len(t, sum.Hints, 1)
	assert.Equal(t, "流", sum.Hints[0].HintChar)
	assert.Equal(t, 100, sum.Scores[firstGuesser.ID])
	assert.Equal(t, PhaseRoundEnd, g.Phase)

	_, err = e.EndRound(rm.ID)
	assert.ErrorIs(t, err, apperr.ErrWrongPhase)

	// later score changes must not leak into the stored summary
	g.Scores[firstGuesser.ID] = 999
	assert.Equal(t, 100, g.History[0].Scores[firstGuesser.ID])
	g.Scores[firstGuesser.ID] = 100

	more, err := e.NextRound(rm.ID)
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, 2, g.CurrentRound)
	assert.Equal(t, PhaseWordSelection, g.Phase)
	assert.Empty(t, g.MainWord)
	assert.Empty(t, g.Hints)
	assert.Empty(t, g.Guesses)
	assert.NotEqual(t, firstGuesser.ID, g.Guesser.ID)

	_, err = e.EndRound(rm.ID)
	require.NoError(t, err)
	more, err = e.NextRound(rm.ID)
	require.NoError(t, err)
	assert.False(t, more)
	assert.Equal(t, PhaseGameEnd, g.Phase)

	res, err := e.EndGame(rm.ID)
	require.NoError(t, err)
	assert.Len(t, res.Rounds, 2)
	assert.False(t, res.Rounds[1].IsCorrect)
	require.NotNil(t, res.Winner)
	assert.Equal(t, firstGuesser.ID, res.Winner.ID)
	assert.Equal(t, 100, res.FinalScores[firstGuesser.ID])

	e.Delete(rm.ID)
	assert.False(t, e.Has(rm.ID))
	_, err = e.PublicState(rm.ID)
	assert.ErrorIs(t, err, apperr.ErrGameNotFound)
}

func TestEndGame_TieBreakByJoinTime(t *testing.T) {
	e := newTestEngine(10)
	rm := newTestRoom(4, 1)
	// p2 joined first even though it is third in list order
	rm.Players[2].JoinedAt = rm.Players[0].JoinedAt.Add(-time.Minute)
	_, err := e.CreateGame(rm)
	require.NoError(t, err)

	res, err := e.EndGame(rm.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Winner)
	assert.Equal(t, "p2", res.Winner.ID)

	g, _ := e.Get(rm.ID)
	g.Scores["p3"] = 30
	g.Scores["p1"] = 30
	res, err = e.EndGame(rm.ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", res.Winner.ID)
}

func TestRoleAssignment(t *testing.T) {
	e := newTestEngine(11)
	rm := newTestRoom(5, 5)
	g, err := e.CreateGame(rm)
	require.NoError(t, err)

	for _, p := range rm.Players {
		ra, err := e.RoleAssignment(rm.ID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Role, ra.MyRole)
		assert.Equal(t, g.Guesser.ID, ra.GuesserID)
		assert.Equal(t, g.Guesser.Name, ra.GuesserName)
		assert.Equal(t, g.WordSetter.ID, ra.WordSetterID)
		assert.Len(t, ra.HinterIDs, 3)
		assert.Len(t, ra.HinterNames, 3)
	}

	ra, err := e.RoleAssignment(rm.ID, "late-joiner")
	require.NoError(t, err)
	assert.Equal(t, room.RoleSpectator, ra.MyRole)
}

func TestRemovePlayer(t *testing.T) {
	e := newTestEngine(12)
	rm := newTestRoom(5, 5)
	g := openHints(t, e, rm, "河")

	hinter := g.Hinters[0]
	_, err := e.SubmitHint(rm.ID, g.Hinters[1].ID, "流")
	require.NoError(t, err)
	_, err = e.SubmitHint(rm.ID, g.Hinters[2].ID, "江")
	require.NoError(t, err)
	assert.False(t, e.AllHintsSubmitted(rm.ID))

	key, err := e.RemovePlayer(rm.ID, hinter.ID)
	require.NoError(t, err)
	assert.False(t, key)
	assert.Equal(t, 4, e.PlayerCount(rm.ID))
	assert.True(t, e.AllHintsSubmitted(rm.ID))

	guesser := g.Guesser
	after := g.Players[(indexOf(g.Players, guesser.ID)+1)%len(g.Players)]
	key, err = e.RemovePlayer(rm.ID, guesser.ID)
	require.NoError(t, err)
	assert.True(t, key)

	_, err = e.EndRound(rm.ID)
	require.NoError(t, err)
	more, err := e.NextRound(rm.ID)
	require.NoError(t, err)
	require.True(t, more)
	assert.Equal(t, after.ID, g.Guesser.ID)
	assertPartition(t, g)

	key, err = e.RemovePlayer(rm.ID, "ghost")
	require.NoError(t, err)
	assert.False(t, key)
}

func TestGuessDuringHintPhaseClosesHints(t *testing.T) {
	e := newTestEngine(13)
	rm := newTestRoom(4, 5)
	g := openHints(t, e, rm, "河")

	_, err := e.SubmitGuess(rm.ID, g.Guesser.ID, "山")
	require.NoError(t, err)
	assert.Equal(t, PhaseGuess, g.Phase)

	res, err := e.SubmitHint(rm.ID, g.Hinters[0].ID, "流")
	require.NoError(t, err)
	require.NotNil(t, res.Rejected)
	assert.Equal(t, apperr.HintPhaseOver, res.Rejected.Code)
	assert.True(t, strings.Contains(res.Rejected.Reason, "hint"))
}

func TestAllHintsSubmitted_IgnoresDepartedHinters(t *testing.T) {
	e := newTestEngine(17)
	rm := newTestRoom(4, 5)
	g := openHints(t, e, rm, "河")
	require.Len(t, g.Hinters, 2)
	gone, stays := g.Hinters[0].ID, g.Hinters[1].ID

	res, err := e.SubmitHint(rm.ID, gone, "流")
	require.NoError(t, err)
	require.Nil(t, res.Rejected)

	keyRole, err := e.RemovePlayer(rm.ID, gone)
	require.NoError(t, err)
	assert.False(t, keyRole)
	assert.False(t, e.AllHintsSubmitted(rm.ID))

	res, err = e.SubmitHint(rm.ID, stays, "江")
	require.NoError(t, err)
	require.Nil(t, res.Rejected)
	assert.True(t, e.AllHintsSubmitted(rm.ID))
}
