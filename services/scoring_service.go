package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Dosada05/hockey-club-system/engine"
	"github.com/Dosada05/hockey-club-system/models"
	"github.com/Dosada05/hockey-club-system/repositories"
)

// RuleSource tags which precedence tier produced the effective rule
// set, so callers (and tests) can assert the tier instead of inferring
// it from the output shape.
type RuleSource string

const (
	SourceTeamProfile    RuleSource = "team_profile"
	SourceClubDefault    RuleSource = "club_default"
	SourceGlobalFallback RuleSource = "global"
)

// EffectiveRule is one rule with its resolved point value after
// profile overrides.
type EffectiveRule struct {
	Rule            *models.Rule `json:"rule"`
	EffectivePoints float64      `json:"effective_points"`
	IsCustomPoints  bool         `json:"is_custom_points"`
}

type EffectiveRuleSet struct {
	Source    RuleSource      `json:"source"`
	ProfileID *int            `json:"profile_id,omitempty"`
	Rules     []EffectiveRule `json:"rules"`
}

type ScoringSummary struct {
	GameID        int        `json:"game_id"`
	TeamID        int        `json:"team_id"`
	ClubID        int        `json:"club_id"`
	Source        RuleSource `json:"source"`
	PlayersScored int        `json:"players_scored"`
	AwardsCreated int        `json:"awards_created"`
	TotalPoints   float64    `json:"total_points"`
}

type ScoringService interface {
	ResolveEffectiveRules(ctx context.Context, teamID int) (*EffectiveRuleSet, error)
	ScoreGame(ctx context.Context, gameID int) (*ScoringSummary, error)
	AddManualPoints(ctx context.Context, award *models.PlayerGameRulePoints) error
	ListGamePoints(ctx context.Context, gameID int) ([]*models.PlayerGameRulePoints, error)
}

type scoringService struct {
	db           *sql.DB
	teamRepo     repositories.TeamRepository
	clubRepo     repositories.ClubRepository
	gameRepo     repositories.GameRepository
	ruleRepo     repositories.RuleRepository
	profileRepo  repositories.ProfileRepository
	variableRepo repositories.VariableRepository
	pointsRepo   repositories.PointsRepository
	logger       *slog.Logger
}

func NewScoringService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	clubRepo repositories.ClubRepository,
	gameRepo repositories.GameRepository,
	ruleRepo repositories.RuleRepository,
	profileRepo repositories.ProfileRepository,
	variableRepo repositories.VariableRepository,
	pointsRepo repositories.PointsRepository,
	logger *slog.Logger,
) ScoringService {
	return &scoringService{
		db:           db,
		teamRepo:     teamRepo,
		clubRepo:     clubRepo,
		gameRepo:     gameRepo,
		ruleRepo:     ruleRepo,
		profileRepo:  profileRepo,
		variableRepo: variableRepo,
		pointsRepo:   pointsRepo,
		logger:       logger,
	}
}

// ResolveEffectiveRules determines the rule set a team is scored
// against. Strict precedence, first tier wins, no merging:
// team profile -> active club default profile -> all active global
// rules. An orphaned or inactive team profile reference falls through
// to the next tier instead of failing the request.
func (s *scoringService) ResolveEffectiveRules(ctx context.Context, teamID int) (*EffectiveRuleSet, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", teamID, err)
	}

	rulesByID, err := s.loadRulesByID(ctx)
	if err != nil {
		return nil, err
	}

	if team.DefaultRulesProfileID != nil {
		set, ok, err := s.resolveFromProfile(ctx, *team.DefaultRulesProfileID, SourceTeamProfile, rulesByID)
		if err != nil {
			return nil, err
		}
		if ok {
			return set, nil
		}
		s.logger.WarnContext(ctx, "team references missing or inactive rules profile, falling through",
			slog.Int("team_id", teamID), slog.Int("profile_id", *team.DefaultRulesProfileID))
	}

	clubDefault, err := s.profileRepo.GetClubDefault(ctx, nil, team.ClubID)
	if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to load club default profile for club %d: %w", team.ClubID, err)
	}
	if clubDefault != nil {
		set, ok, err := s.resolveFromProfile(ctx, clubDefault.ID, SourceClubDefault, rulesByID)
		if err != nil {
			return nil, err
		}
		if ok {
			return set, nil
		}
	}

	// Global fallback: every active rule at its base point value.
	set := &EffectiveRuleSet{Source: SourceGlobalFallback}
	for _, rule := range rulesByID {
		if !rule.IsActive {
			continue
		}
		set.Rules = append(set.Rules, EffectiveRule{
			Rule:            rule,
			EffectivePoints: rule.PointsAwarded,
			IsCustomPoints:  false,
		})
	}
	sortEffectiveRules(set.Rules)
	return set, nil
}

func (s *scoringService) loadRulesByID(ctx context.Context) (map[int]*models.Rule, error) {
	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	byID := make(map[int]*models.Rule, len(rules))
	for _, rule := range rules {
		byID[rule.ID] = rule
	}
	return byID, nil
}

// resolveFromProfile builds an effective rule set from one profile. The
// bool result reports whether the profile exists and is active; a false
// return tells the caller to fall through to the next precedence tier.
func (s *scoringService) resolveFromProfile(ctx context.Context, profileID int, source RuleSource, rulesByID map[int]*models.Rule) (*EffectiveRuleSet, bool, error) {
	profile, err := s.profileRepo.GetByID(ctx, nil, profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load rules profile %d: %w", profileID, err)
	}
	if !profile.IsActive {
		return nil, false, nil
	}

	profileRules, err := s.profileRepo.ListProfileRules(ctx, nil, profileID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to list rules of profile %d: %w", profileID, err)
	}

	set := &EffectiveRuleSet{Source: source, ProfileID: &profile.ID}
	for _, pr := range profileRules {
		if !pr.IsEnabled {
			continue
		}
		rule, ok := rulesByID[pr.RuleID]
		if !ok {
			// Orphaned join row; skip rather than abort.
			s.logger.WarnContext(ctx, "profile references missing rule",
				slog.Int("profile_id", profileID), slog.Int("rule_id", pr.RuleID))
			continue
		}
		effective := rule.PointsAwarded
		if pr.CustomPoints != nil {
			effective = *pr.CustomPoints
		}
		set.Rules = append(set.Rules, EffectiveRule{
			Rule:            rule,
			EffectivePoints: effective,
			IsCustomPoints:  pr.CustomPoints != nil,
		})
	}
	sortEffectiveRules(set.Rules)
	return set, true, nil
}

// Ordering is presentational and keeps runs deterministic; point totals
// do not depend on it.
func sortEffectiveRules(rules []EffectiveRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Rule.Category != rules[j].Rule.Category {
			return rules[i].Rule.Category < rules[j].Rule.Category
		}
		return rules[i].Rule.Name < rules[j].Rule.Name
	})
}

// ScoreGame runs the scoring pass for one game: resolves the team's
// effective rules, evaluates every squad player with recorded stats
// against them, and replaces the game's previous automatic award rows
// with the new ones in a single transaction. Manual rows are untouched,
// so re-running the pass is idempotent for unchanged inputs.
func (s *scoringService) ScoreGame(ctx context.Context, gameID int) (*ScoringSummary, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load game %d: %w", gameID, err)
	}
	if game.Status != models.GameStatusCompleted && game.Status != models.GameStatusScored {
		return nil, ErrGameNotCompleted
	}

	stats, err := s.gameRepo.ListStatsByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats for game %d: %w", gameID, err)
	}
	if len(stats) == 0 {
		return nil, ErrGameHasNoStats
	}

	// Structural validation: a game without a resolvable team, or a
	// team without a resolvable club, aborts the whole run.
	team, err := s.teamRepo.GetByID(ctx, game.TeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrGameTeamMissing
		}
		return nil, fmt.Errorf("failed to load team %d: %w", game.TeamID, err)
	}
	if _, err := s.clubRepo.GetByID(ctx, team.ClubID); err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrTeamClubMissing
		}
		return nil, fmt.Errorf("failed to load club %d: %w", team.ClubID, err)
	}

	ruleSet, err := s.ResolveEffectiveRules(ctx, game.TeamID)
	if err != nil {
		return nil, err
	}

	registry, err := s.loadVariableRegistry(ctx)
	if err != nil {
		return nil, err
	}

	awards := s.evaluateGame(game, stats, ruleSet, registry)

	summary := &ScoringSummary{
		GameID: gameID,
		TeamID: game.TeamID,
		ClubID: team.ClubID,
		Source: ruleSet.Source,
	}
	playersWithAwards := make(map[int]bool)
	for _, award := range awards {
		if award.PointType == models.PointTypeTeam {
			summary.TotalPoints += award.Points
			playersWithAwards[award.PlayerID] = true
		}
	}
	summary.PlayersScored = len(playersWithAwards)
	summary.AwardsCreated = len(awards)

	// Replace semantics: delete previous automatic rows and insert the
	// new set in one transaction so a failure leaves no partial run.
	err = s.withTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.pointsRepo.DeleteAutomaticByGame(ctx, exec, gameID); err != nil {
			return fmt.Errorf("failed to clear previous awards for game %d: %w", gameID, err)
		}
		if len(awards) > 0 {
			if err := s.pointsRepo.BatchCreate(ctx, exec, awards); err != nil {
				return fmt.Errorf("failed to persist awards for game %d: %w", gameID, err)
			}
		}
		return s.gameRepo.UpdateStatus(ctx, exec, gameID, models.GameStatusScored)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "game scored",
		slog.Int("game_id", gameID),
		slog.String("rule_source", string(ruleSet.Source)),
		slog.Int("players", summary.PlayersScored),
		slog.Int("awards", summary.AwardsCreated),
		slog.Float64("total_points", summary.TotalPoints))

	return summary, nil
}

// evaluateGame is the pure part of the scoring pass: every stats row is
// evaluated against every effective rule, and each fired rule emits a
// TEAM row and an equal CLUB row.
func (s *scoringService) evaluateGame(
	game *models.Game,
	stats []*models.GamePlayerStats,
	ruleSet *EffectiveRuleSet,
	registry map[string]models.Variable,
) []*models.PlayerGameRulePoints {
	teamFacts := engine.TeamFacts{
		GoalsFor:     game.GoalsFor,
		GoalsAgainst: game.GoalsAgainst,
	}
	for _, row := range stats {
		teamFacts.TotalGoals += row.GoalsScored
		teamFacts.TotalAssists += row.Assists
	}
	gameFacts := engine.GameFacts{
		GoalsFor:     game.GoalsFor,
		GoalsAgainst: game.GoalsAgainst,
		Result:       game.Result(),
	}

	awards := make([]*models.PlayerGameRulePoints, 0)
	for _, row := range stats {
		evalCtx := &engine.Context{
			Player: engine.PlayerFacts{
				PlayerID:    row.PlayerID,
				GoalsScored: row.GoalsScored,
				Assists:     row.Assists,
				YellowCards: row.YellowCards,
				RedCards:    row.RedCards,
				Position:    row.Position,
				Custom:      customValues(row.CustomValues),
			},
			Game:     gameFacts,
			Team:     teamFacts,
			Registry: registry,
		}

		for _, effective := range ruleSet.Rules {
			award, fired := engine.EvaluateRule(effective.Rule, effective.EffectivePoints, evalCtx)
			if !fired {
				continue
			}
			ruleID := award.RuleID
			for _, pointType := range []models.PointType{models.PointTypeTeam, models.PointTypeClub} {
				awards = append(awards, &models.PlayerGameRulePoints{
					PlayerID:  row.PlayerID,
					GameID:    game.ID,
					RuleID:    &ruleID,
					PointType: pointType,
					Points:    award.Points,
					IsManual:  false,
				})
			}
		}
	}
	return awards
}

func (s *scoringService) loadVariableRegistry(ctx context.Context) (map[string]models.Variable, error) {
	variables, err := s.variableRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load variable registry: %w", err)
	}
	registry := make(map[string]models.Variable, len(variables))
	for _, v := range variables {
		registry[v.Key] = *v
	}
	return registry, nil
}

func customValues(raw map[string]float64) map[string]models.Value {
	if len(raw) == 0 {
		return nil
	}
	values := make(map[string]models.Value, len(raw))
	for key, n := range raw {
		values[key] = models.NumberValue(n)
	}
	return values
}

func (s *scoringService) AddManualPoints(ctx context.Context, award *models.PlayerGameRulePoints) error {
	if _, err := s.gameRepo.GetByID(ctx, award.GameID); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	if award.PointType != models.PointTypeTeam && award.PointType != models.PointTypeClub {
		return fmt.Errorf("%w: unknown point type %q", ErrValidationFailed, award.PointType)
	}
	return s.pointsRepo.CreateManual(ctx, award)
}

func (s *scoringService) ListGamePoints(ctx context.Context, gameID int) ([]*models.PlayerGameRulePoints, error) {
	return s.pointsRepo.ListByGame(ctx, gameID)
}

// withTx runs fn inside a transaction when a database handle is
// present. Services constructed without one (unit tests with fake
// repositories) run fn directly.
func (s *scoringService) withTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	if s.db == nil {
		return fn(nil)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("rollback failed", slog.Any("error", rbErr))
			}
		}
	}()
	if txErr = fn(tx); txErr != nil {
		return txErr
	}
	if txErr = tx.Commit(); txErr != nil {
		return fmt.Errorf("failed to commit transaction: %w", txErr)
	}
	return nil
}
