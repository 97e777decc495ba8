package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoringFixture struct {
	svc      ScoringService
	teams    *fakeTeamRepo
	clubs    *fakeClubRepo
	games    *fakeGameRepo
	rules    *fakeRuleRepo
	profiles *fakeProfileRepo
	vars     *fakeVariableRepo
	points   *fakePointsRepo

	club *models.Club
	team *models.Team
	game *models.Game
}

func newScoringFixture(t *testing.T) *scoringFixture {
	t.Helper()
	f := &scoringFixture{
		teams:    newFakeTeamRepo(),
		clubs:    newFakeClubRepo(),
		games:    newFakeGameRepo(),
		rules:    newFakeRuleRepo(),
		profiles: newFakeProfileRepo(),
		vars:     newFakeVariableRepo(),
		points:   newFakePointsRepo(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewScoringService(nil, f.teams, f.clubs, f.games, f.rules, f.profiles, f.vars, f.points, logger)

	ctx := context.Background()
	f.club = &models.Club{Name: "HC Polar"}
	require.NoError(t, f.clubs.Create(ctx, f.club))
	f.team = &models.Team{ClubID: f.club.ID, Name: "HC Polar U18"}
	require.NoError(t, f.teams.Create(ctx, f.team))

	f.game = &models.Game{
		TeamID:       f.team.ID,
		Opponent:     "HC Granite",
		GoalsFor:     3,
		GoalsAgainst: 1,
		Status:       models.GameStatusCompleted,
	}
	require.NoError(t, f.games.Create(ctx, f.game))
	require.NoError(t, f.games.UpsertPlayerStats(ctx, nil, &models.GamePlayerStats{
		GameID:      f.game.ID,
		PlayerID:    10,
		GoalsScored: 2,
		Assists:     1,
		Position:    models.PositionDefender,
	}))
	require.NoError(t, f.games.UpsertPlayerStats(ctx, nil, &models.GamePlayerStats{
		GameID:      f.game.ID,
		PlayerID:    11,
		GoalsScored: 1,
		YellowCards: 1,
		Position:    models.PositionForward,
	}))
	return f
}

func (f *scoringFixture) addRule(t *testing.T, rule *models.Rule) *models.Rule {
	t.Helper()
	require.NoError(t, f.rules.Create(context.Background(), nil, rule))
	return rule
}

func goalRule() *models.Rule {
	return &models.Rule{
		Name:          "Goal Scored",
		Category:      "goals",
		PointsAwarded: 10,
		TargetScope:   models.TargetAllPlayers,
		IsActive:      true,
		Conditions: []models.RuleCondition{{
			Variable: "goalsScored",
			Operator: models.OperatorGreaterThanOrEqual,
			Value:    models.NumberValue(1),
			Scope:    models.ScopePlayer,
		}},
	}
}

func winRule() *models.Rule {
	return &models.Rule{
		Name:          "Team Win",
		Category:      "results",
		PointsAwarded: 5,
		TargetScope:   models.TargetAllPlayers,
		IsActive:      true,
		Conditions: []models.RuleCondition{{
			Variable: "result",
			Operator: models.OperatorEqual,
			Value:    models.StringValue("win"),
			Scope:    models.ScopeGame,
		}},
	}
}

func TestScoreGameWritesTeamAndClubRows(t *testing.T) {
	f := newScoringFixture(t)
	f.addRule(t, goalRule())
	ctx := context.Background()

	summary, err := f.svc.ScoreGame(ctx, f.game.ID)
	require.NoError(t, err)

	// Both players scored at least one goal, one award each, mirrored
	// into TEAM and CLUB rows.
	assert.Equal(t, 2, summary.PlayersScored)
	assert.Equal(t, 4, summary.AwardsCreated)
	assert.Equal(t, 20.0, summary.TotalPoints)
	assert.Equal(t, SourceGlobalFallback, summary.Source)

	rows, err := f.svc.ListGamePoints(ctx, f.game.ID)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	byType := map[models.PointType][]*models.PlayerGameRulePoints{}
	for _, row := range rows {
		byType[row.PointType] = append(byType[row.PointType], row)
	}
	require.Len(t, byType[models.PointTypeTeam], 2)
	require.Len(t, byType[models.PointTypeClub], 2)
	for _, row := range rows {
		assert.Equal(t, 10.0, row.Points)
		assert.False(t, row.IsManual)
		require.NotNil(t, row.RuleID)
	}

	updated, err := f.games.GetByID(ctx, f.game.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusScored, updated.Status)
}

func TestResolveEffectiveRulesPrecedence(t *testing.T) {
	f := newScoringFixture(t)
	base := f.addRule(t, goalRule())
	f.addRule(t, winRule())
	ctx := context.Background()

	t.Run("global fallback when no profile exists", func(t *testing.T) {
		set, err := f.svc.ResolveEffectiveRules(ctx, f.team.ID)
		require.NoError(t, err)
		assert.Equal(t, SourceGlobalFallback, set.Source)
		assert.Nil(t, set.ProfileID)
		assert.Len(t, set.Rules, 2)
	})

	clubDefault := &models.RulesProfile{
		ClubID:        f.club.ID,
		Name:          "Club Standard",
		IsClubDefault: true,
		IsActive:      true,
	}
	require.NoError(t, f.profiles.Create(ctx, nil, clubDefault))
	custom := 7.5
	require.NoError(t, f.profiles.AttachRule(ctx, nil, &models.RulesProfileRule{
		ProfileID:    clubDefault.ID,
		RuleID:       base.ID,
		CustomPoints: &custom,
		IsEnabled:    true,
	}))

	t.Run("club default beats global fallback", func(t *testing.T) {
		set, err := f.svc.ResolveEffectiveRules(ctx, f.team.ID)
		require.NoError(t, err)
		assert.Equal(t, SourceClubDefault, set.Source)
		require.NotNil(t, set.ProfileID)
		assert.Equal(t, clubDefault.ID, *set.ProfileID)
		// customPoints overrides the base value; the win rule is not in
		// the profile, so only one rule is effective. No tier merging.
		require.Len(t, set.Rules, 1)
		assert.Equal(t, 7.5, set.Rules[0].EffectivePoints)
		assert.True(t, set.Rules[0].IsCustomPoints)
	})

	teamProfile := &models.RulesProfile{
		ClubID:   f.club.ID,
		Name:     "U18 Development",
		IsActive: true,
	}
	require.NoError(t, f.profiles.Create(ctx, nil, teamProfile))
	require.NoError(t, f.profiles.AttachRule(ctx, nil, &models.RulesProfileRule{
		ProfileID: teamProfile.ID,
		RuleID:    base.ID,
		IsEnabled: true,
	}))
	require.NoError(t, f.teams.SetDefaultRulesProfile(ctx, f.team.ID, &teamProfile.ID))

	t.Run("team profile beats club default", func(t *testing.T) {
		set, err := f.svc.ResolveEffectiveRules(ctx, f.team.ID)
		require.NoError(t, err)
		assert.Equal(t, SourceTeamProfile, set.Source)
		require.NotNil(t, set.ProfileID)
		assert.Equal(t, teamProfile.ID, *set.ProfileID)
		require.Len(t, set.Rules, 1)
		assert.Equal(t, 10.0, set.Rules[0].EffectivePoints)
		assert.False(t, set.Rules[0].IsCustomPoints)
	})

	t.Run("inactive team profile falls through", func(t *testing.T) {
		teamProfile.IsActive = false
		set, err := f.svc.ResolveEffectiveRules(ctx, f.team.ID)
		require.NoError(t, err)
		assert.Equal(t, SourceClubDefault, set.Source)
		teamProfile.IsActive = true
	})

	t.Run("orphaned team profile reference falls through", func(t *testing.T) {
		missing := 9999
		require.NoError(t, f.teams.SetDefaultRulesProfile(ctx, f.team.ID, &missing))
		set, err := f.svc.ResolveEffectiveRules(ctx, f.team.ID)
		require.NoError(t, err)
		assert.Equal(t, SourceClubDefault, set.Source)
	})

	t.Run("disabled profile rules are excluded", func(t *testing.T) {
		require.NoError(t, f.teams.SetDefaultRulesProfile(ctx, f.team.ID, nil))
		require.NoError(t, f.profiles.UpdateProfileRule(ctx, nil, &models.RulesProfileRule{
			ProfileID:    clubDefault.ID,
			RuleID:       base.ID,
			CustomPoints: &custom,
			IsEnabled:    false,
		}))
		set, err := f.svc.ResolveEffectiveRules(ctx, f.team.ID)
		require.NoError(t, err)
		assert.Equal(t, SourceClubDefault, set.Source)
		assert.Empty(t, set.Rules)
	})
}

func TestScoreGameRescoreReplacesAutomaticRowsOnly(t *testing.T) {
	f := newScoringFixture(t)
	f.addRule(t, goalRule())
	ctx := context.Background()

	_, err := f.svc.ScoreGame(ctx, f.game.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.AddManualPoints(ctx, &models.PlayerGameRulePoints{
		PlayerID:  10,
		GameID:    f.game.ID,
		PointType: models.PointTypeTeam,
		Points:    3,
		IsManual:  true,
	}))

	// Re-scoring a scored game is allowed and replaces only the
	// automatic rows.
	summary, err := f.svc.ScoreGame(ctx, f.game.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.AwardsCreated)

	rows, err := f.svc.ListGamePoints(ctx, f.game.ID)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	manual := 0
	for _, row := range rows {
		if row.IsManual {
			manual++
			assert.Equal(t, 3.0, row.Points)
			assert.Nil(t, row.RuleID)
		}
	}
	assert.Equal(t, 1, manual)
}

func TestScoreGameStatusAndStatsGuards(t *testing.T) {
	f := newScoringFixture(t)
	f.addRule(t, goalRule())
	ctx := context.Background()

	scheduled := &models.Game{TeamID: f.team.ID, Opponent: "HC North", Status: models.GameStatusScheduled}
	require.NoError(t, f.games.Create(ctx, scheduled))
	_, err := f.svc.ScoreGame(ctx, scheduled.ID)
	assert.ErrorIs(t, err, ErrGameNotCompleted)

	noStats := &models.Game{TeamID: f.team.ID, Opponent: "HC South", Status: models.GameStatusCompleted}
	require.NoError(t, f.games.Create(ctx, noStats))
	_, err = f.svc.ScoreGame(ctx, noStats.ID)
	assert.ErrorIs(t, err, ErrGameHasNoStats)

	_, err = f.svc.ScoreGame(ctx, 9999)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestScoreGameStructuralValidation(t *testing.T) {
	t.Run("missing team aborts the run", func(t *testing.T) {
		f := newScoringFixture(t)
		f.addRule(t, goalRule())
		ctx := context.Background()

		delete(f.teams.teams, f.team.ID)
		_, err := f.svc.ScoreGame(ctx, f.game.ID)
		assert.ErrorIs(t, err, ErrGameTeamMissing)
		rows, _ := f.svc.ListGamePoints(ctx, f.game.ID)
		assert.Empty(t, rows)
	})

	t.Run("missing club aborts the run", func(t *testing.T) {
		f := newScoringFixture(t)
		f.addRule(t, goalRule())
		ctx := context.Background()

		delete(f.clubs.clubs, f.club.ID)
		_, err := f.svc.ScoreGame(ctx, f.game.ID)
		assert.ErrorIs(t, err, ErrTeamClubMissing)
		rows, _ := f.svc.ListGamePoints(ctx, f.game.ID)
		assert.Empty(t, rows)
	})
}

func TestScoreGamePositionTargeting(t *testing.T) {
	f := newScoringFixture(t)
	f.addRule(t, &models.Rule{
		Name:            "Defender Goal Bonus",
		Category:        "goals",
		PointsAwarded:   15,
		TargetScope:     models.TargetSpecificPositions,
		TargetPositions: []int{models.PositionDefender},
		IsActive:        true,
		Conditions: []models.RuleCondition{{
			Variable: "goalsScored",
			Operator: models.OperatorGreaterThanOrEqual,
			Value:    models.NumberValue(1),
			Scope:    models.ScopePlayer,
		}},
	})
	ctx := context.Background()

	summary, err := f.svc.ScoreGame(ctx, f.game.ID)
	require.NoError(t, err)

	// Only player 10 is a defender; player 11 scored but is a forward.
	assert.Equal(t, 1, summary.PlayersScored)
	assert.Equal(t, 2, summary.AwardsCreated)
	assert.Equal(t, 15.0, summary.TotalPoints)

	rows, err := f.svc.ListGamePoints(ctx, f.game.ID)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Equal(t, 10, row.PlayerID)
	}
}

func TestAddManualPointsValidation(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	err := f.svc.AddManualPoints(ctx, &models.PlayerGameRulePoints{
		PlayerID:  10,
		GameID:    9999,
		PointType: models.PointTypeTeam,
		Points:    1,
	})
	assert.ErrorIs(t, err, ErrGameNotFound)

	err = f.svc.AddManualPoints(ctx, &models.PlayerGameRulePoints{
		PlayerID:  10,
		GameID:    f.game.ID,
		PointType: "BONUS",
		Points:    1,
	})
	assert.ErrorIs(t, err, ErrValidationFailed)
}
