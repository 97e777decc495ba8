package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gameFixture struct {
	svc     GameService
	games   *fakeGameRepo
	teams   *fakeTeamRepo
	players *fakePlayerRepo

	team    *models.Team
	skater  *models.Player
	goalie  *models.Player
	retired *models.Player
}

func newGameFixture(t *testing.T) *gameFixture {
	t.Helper()
	f := &gameFixture{
		games:   newFakeGameRepo(),
		teams:   newFakeTeamRepo(),
		players: newFakePlayerRepo(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewGameService(nil, f.games, f.teams, f.players, logger)

	ctx := context.Background()
	f.team = &models.Team{ClubID: 1, Name: "HC Polar U18"}
	require.NoError(t, f.teams.Create(ctx, f.team))

	f.skater = &models.Player{TeamID: f.team.ID, FirstName: "Ilya", LastName: "Sorokin", Position: models.PositionForward, IsActive: true}
	require.NoError(t, f.players.Create(ctx, f.skater))
	f.goalie = &models.Player{TeamID: f.team.ID, FirstName: "Marek", LastName: "Svoboda", Position: models.PositionGoalkeeper, IsActive: true}
	require.NoError(t, f.players.Create(ctx, f.goalie))
	f.retired = &models.Player{TeamID: f.team.ID, FirstName: "Old", LastName: "Timer", Position: models.PositionDefender, IsActive: false}
	require.NoError(t, f.players.Create(ctx, f.retired))
	return f
}

func (f *gameFixture) scheduleGame(t *testing.T) *models.Game {
	t.Helper()
	game, err := f.svc.ScheduleGame(context.Background(), ScheduleGameInput{
		TeamID:   f.team.ID,
		Opponent: "HC Granite",
		IsHome:   true,
		DateTime: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	return game
}

func TestScheduleGame(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()

	game := f.scheduleGame(t)
	assert.Equal(t, models.GameStatusScheduled, game.Status)

	_, err := f.svc.ScheduleGame(ctx, ScheduleGameInput{TeamID: f.team.ID, Opponent: "  "})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = f.svc.ScheduleGame(ctx, ScheduleGameInput{TeamID: 9999, Opponent: "HC Ghost"})
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestSetSquadValidation(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()
	game := f.scheduleGame(t)

	err := f.svc.SetSquad(ctx, game.ID, []int{f.skater.ID, f.retired.ID})
	assert.ErrorIs(t, err, ErrValidationFailed)

	require.NoError(t, f.svc.SetSquad(ctx, game.ID, []int{f.skater.ID, f.goalie.ID}))

	loaded, err := f.svc.GetGameByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Squad, 2)
}

func TestCompleteGameRecordsStatsAndTransitions(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()
	game := f.scheduleGame(t)
	require.NoError(t, f.svc.SetSquad(ctx, game.ID, []int{f.skater.ID, f.goalie.ID}))

	completed, err := f.svc.CompleteGame(ctx, game.ID, CompleteGameInput{
		GoalsFor:     4,
		GoalsAgainst: 2,
		PlayerStats: []PlayerStatsInput{
			{PlayerID: f.skater.ID, GoalsScored: 2, Assists: 1},
			{PlayerID: f.goalie.ID, CustomValues: map[string]float64{"savesCount": 31}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusCompleted, completed.Status)
	assert.Equal(t, models.GameResultWin, completed.Result())

	loaded, err := f.svc.GetGameByID(ctx, game.ID)
	require.NoError(t, err)
	require.Len(t, loaded.PlayerStats, 2)
	for _, st := range loaded.PlayerStats {
		if st.PlayerID == f.goalie.ID {
			// Position is snapshotted from the roster at completion time.
			assert.Equal(t, models.PositionGoalkeeper, st.Position)
			assert.Equal(t, 31.0, st.CustomValues["savesCount"])
		}
	}
}

func TestCompleteGameRejectsPlayersOutsideSquad(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()
	game := f.scheduleGame(t)
	require.NoError(t, f.svc.SetSquad(ctx, game.ID, []int{f.skater.ID}))

	_, err := f.svc.CompleteGame(ctx, game.ID, CompleteGameInput{
		GoalsFor: 1,
		PlayerStats: []PlayerStatsInput{
			{PlayerID: f.goalie.ID},
		},
	})
	assert.ErrorIs(t, err, ErrGameStatsPlayerNotInSquad)
}

func TestGameStatusTransitions(t *testing.T) {
	f := newGameFixture(t)
	ctx := context.Background()

	game := f.scheduleGame(t)
	require.NoError(t, f.svc.CancelGame(ctx, game.ID))
	assert.ErrorIs(t, f.svc.CancelGame(ctx, game.ID), ErrGameInvalidStatusTransition)

	_, err := f.svc.CompleteGame(ctx, game.ID, CompleteGameInput{GoalsFor: 1})
	assert.ErrorIs(t, err, ErrGameInvalidStatusTransition)

	// Correcting a completed game before scoring is allowed.
	second := f.scheduleGame(t)
	_, err = f.svc.CompleteGame(ctx, second.ID, CompleteGameInput{GoalsFor: 2, GoalsAgainst: 2})
	require.NoError(t, err)
	fixed, err := f.svc.CompleteGame(ctx, second.ID, CompleteGameInput{GoalsFor: 3, GoalsAgainst: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, fixed.GoalsFor)
}
