package services

import (
	"context"

	"github.com/Dosada05/hockey-club-system/models"
	"github.com/Dosada05/hockey-club-system/repositories"
)

// In-memory repository fakes. Services built with a nil *sql.DB run
// their transactional closures directly, so these fakes carry the whole
// scoring flow without a database.

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[int]*models.Team)}
}

func (f *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	team.ID = len(f.teams) + 1
	f.teams[team.ID] = team
	return nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (f *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	if _, ok := f.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	f.teams[team.ID] = team
	return nil
}

func (f *fakeTeamRepo) UpdateLogoKey(_ context.Context, id int, logoKey *string) error {
	team, ok := f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.LogoKey = logoKey
	return nil
}

func (f *fakeTeamRepo) SetDefaultRulesProfile(_ context.Context, teamID int, profileID *int) error {
	team, ok := f.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.DefaultRulesProfileID = profileID
	return nil
}

func (f *fakeTeamRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(f.teams, id)
	return nil
}

func (f *fakeTeamRepo) ListByClubID(_ context.Context, clubID int) ([]*models.Team, error) {
	var out []*models.Team
	for _, team := range f.teams {
		if team.ClubID == clubID {
			out = append(out, team)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) CountByProfileID(_ context.Context, _ repositories.SQLExecutor, profileID int) (int, error) {
	count := 0
	for _, team := range f.teams {
		if team.DefaultRulesProfileID != nil && *team.DefaultRulesProfileID == profileID {
			count++
		}
	}
	return count, nil
}

type fakeClubRepo struct {
	clubs map[int]*models.Club
}

func newFakeClubRepo() *fakeClubRepo {
	return &fakeClubRepo{clubs: make(map[int]*models.Club)}
}

func (f *fakeClubRepo) Create(_ context.Context, club *models.Club) error {
	club.ID = len(f.clubs) + 1
	f.clubs[club.ID] = club
	return nil
}

func (f *fakeClubRepo) GetByID(_ context.Context, id int) (*models.Club, error) {
	club, ok := f.clubs[id]
	if !ok {
		return nil, repositories.ErrClubNotFound
	}
	copied := *club
	return &copied, nil
}

func (f *fakeClubRepo) Update(_ context.Context, club *models.Club) error {
	if _, ok := f.clubs[club.ID]; !ok {
		return repositories.ErrClubNotFound
	}
	f.clubs[club.ID] = club
	return nil
}

func (f *fakeClubRepo) UpdateLogoKey(_ context.Context, id int, logoKey *string) error {
	club, ok := f.clubs[id]
	if !ok {
		return repositories.ErrClubNotFound
	}
	club.LogoKey = logoKey
	return nil
}

func (f *fakeClubRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.clubs[id]; !ok {
		return repositories.ErrClubNotFound
	}
	delete(f.clubs, id)
	return nil
}

func (f *fakeClubRepo) List(_ context.Context) ([]*models.Club, error) {
	var out []*models.Club
	for _, club := range f.clubs {
		out = append(out, club)
	}
	return out, nil
}

type fakeGameRepo struct {
	games map[int]*models.Game
	stats map[int][]*models.GamePlayerStats
	squad map[int][]*models.GamePlayer
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{
		games: make(map[int]*models.Game),
		stats: make(map[int][]*models.GamePlayerStats),
		squad: make(map[int][]*models.GamePlayer),
	}
}

func (f *fakeGameRepo) Create(_ context.Context, game *models.Game) error {
	game.ID = len(f.games) + 1
	f.games[game.ID] = game
	return nil
}

func (f *fakeGameRepo) GetByID(_ context.Context, id int) (*models.Game, error) {
	game, ok := f.games[id]
	if !ok {
		return nil, repositories.ErrGameNotFound
	}
	copied := *game
	return &copied, nil
}

func (f *fakeGameRepo) Update(_ context.Context, game *models.Game) error {
	if _, ok := f.games[game.ID]; !ok {
		return repositories.ErrGameNotFound
	}
	f.games[game.ID] = game
	return nil
}

func (f *fakeGameRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.GameStatus) error {
	game, ok := f.games[id]
	if !ok {
		return repositories.ErrGameNotFound
	}
	game.Status = status
	return nil
}

func (f *fakeGameRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.games[id]; !ok {
		return repositories.ErrGameNotFound
	}
	delete(f.games, id)
	return nil
}

func (f *fakeGameRepo) ListByTeamID(_ context.Context, teamID int, status *models.GameStatus) ([]*models.Game, error) {
	var out []*models.Game
	for _, game := range f.games {
		if game.TeamID != teamID {
			continue
		}
		if status != nil && game.Status != *status {
			continue
		}
		out = append(out, game)
	}
	return out, nil
}

func (f *fakeGameRepo) CountByClubID(_ context.Context, _ int, status *models.GameStatus) (int, error) {
	count := 0
	for _, game := range f.games {
		if status == nil || game.Status == *status {
			count++
		}
	}
	return count, nil
}

func (f *fakeGameRepo) UpsertPlayerStats(_ context.Context, _ repositories.SQLExecutor, stats *models.GamePlayerStats) error {
	rows := f.stats[stats.GameID]
	for i, row := range rows {
		if row.PlayerID == stats.PlayerID {
			rows[i] = stats
			return nil
		}
	}
	f.stats[stats.GameID] = append(rows, stats)
	return nil
}

func (f *fakeGameRepo) ListStatsByGame(_ context.Context, gameID int) ([]*models.GamePlayerStats, error) {
	return f.stats[gameID], nil
}

func (f *fakeGameRepo) ListSquadByGame(_ context.Context, gameID int) ([]*models.GamePlayer, error) {
	return f.squad[gameID], nil
}

func (f *fakeGameRepo) AddSquadPlayer(_ context.Context, _ repositories.SQLExecutor, gp *models.GamePlayer) error {
	f.squad[gp.GameID] = append(f.squad[gp.GameID], gp)
	return nil
}

type fakePlayerRepo struct {
	players map[int]*models.Player
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int]*models.Player)}
}

func (f *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	player.ID = len(f.players) + 1
	f.players[player.ID] = player
	return nil
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	player, ok := f.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (f *fakePlayerRepo) Update(_ context.Context, player *models.Player) error {
	if _, ok := f.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	f.players[player.ID] = player
	return nil
}

func (f *fakePlayerRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(f.players, id)
	return nil
}

func (f *fakePlayerRepo) ListByTeamID(_ context.Context, teamID int) ([]*models.Player, error) {
	var out []*models.Player
	for _, player := range f.players {
		if player.TeamID == teamID {
			out = append(out, player)
		}
	}
	return out, nil
}

func (f *fakePlayerRepo) CountByClubID(_ context.Context, _ int) (int, error) {
	return len(f.players), nil
}

type fakeRuleRepo struct {
	rules map[int]*models.Rule
	refs  map[int]int
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: make(map[int]*models.Rule), refs: make(map[int]int)}
}

func (f *fakeRuleRepo) Create(_ context.Context, _ repositories.SQLExecutor, rule *models.Rule) error {
	rule.ID = len(f.rules) + 1
	f.rules[rule.ID] = rule
	return nil
}

func (f *fakeRuleRepo) GetByID(_ context.Context, id int) (*models.Rule, error) {
	rule, ok := f.rules[id]
	if !ok {
		return nil, repositories.ErrRuleNotFound
	}
	copied := *rule
	return &copied, nil
}

func (f *fakeRuleRepo) Update(_ context.Context, _ repositories.SQLExecutor, rule *models.Rule) error {
	if _, ok := f.rules[rule.ID]; !ok {
		return repositories.ErrRuleNotFound
	}
	f.rules[rule.ID] = rule
	return nil
}

func (f *fakeRuleRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id int) error {
	if _, ok := f.rules[id]; !ok {
		return repositories.ErrRuleNotFound
	}
	delete(f.rules, id)
	return nil
}

func (f *fakeRuleRepo) ListActive(_ context.Context) ([]*models.Rule, error) {
	var out []*models.Rule
	for _, rule := range f.rules {
		if rule.IsActive {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (f *fakeRuleRepo) List(_ context.Context) ([]*models.Rule, error) {
	var out []*models.Rule
	for _, rule := range f.rules {
		out = append(out, rule)
	}
	return out, nil
}

func (f *fakeRuleRepo) ReplaceConditions(_ context.Context, _ repositories.SQLExecutor, ruleID int, conditions []models.RuleCondition) error {
	rule, ok := f.rules[ruleID]
	if !ok {
		return repositories.ErrRuleNotFound
	}
	rule.Conditions = conditions
	return nil
}

func (f *fakeRuleRepo) CountProfileReferences(_ context.Context, _ repositories.SQLExecutor, ruleID int) (int, error) {
	return f.refs[ruleID], nil
}

type fakeProfileRepo struct {
	profiles map[int]*models.RulesProfile
	rules    map[int][]models.RulesProfileRule
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles: make(map[int]*models.RulesProfile),
		rules:    make(map[int][]models.RulesProfileRule),
	}
}

func (f *fakeProfileRepo) Create(_ context.Context, _ repositories.SQLExecutor, profile *models.RulesProfile) error {
	profile.ID = len(f.profiles) + 1
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.RulesProfile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeProfileRepo) GetClubDefault(_ context.Context, _ repositories.SQLExecutor, clubID int) (*models.RulesProfile, error) {
	for _, profile := range f.profiles {
		if profile.ClubID == clubID && profile.IsClubDefault && profile.IsActive {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileRepo) Update(_ context.Context, _ repositories.SQLExecutor, profile *models.RulesProfile) error {
	if _, ok := f.profiles[profile.ID]; !ok {
		return repositories.ErrProfileNotFound
	}
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeProfileRepo) UnsetClubDefault(_ context.Context, _ repositories.SQLExecutor, clubID int) error {
	for _, profile := range f.profiles {
		if profile.ClubID == clubID {
			profile.IsClubDefault = false
		}
	}
	return nil
}

func (f *fakeProfileRepo) SetClubDefault(_ context.Context, _ repositories.SQLExecutor, profileID int) error {
	profile, ok := f.profiles[profileID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	profile.IsClubDefault = true
	return nil
}

func (f *fakeProfileRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id int) error {
	if _, ok := f.profiles[id]; !ok {
		return repositories.ErrProfileNotFound
	}
	delete(f.profiles, id)
	delete(f.rules, id)
	return nil
}

func (f *fakeProfileRepo) ListByClubID(_ context.Context, clubID int) ([]*models.RulesProfile, error) {
	var out []*models.RulesProfile
	for _, profile := range f.profiles {
		if profile.ClubID == clubID {
			out = append(out, profile)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) ListProfileRules(_ context.Context, _ repositories.SQLExecutor, profileID int) ([]models.RulesProfileRule, error) {
	return f.rules[profileID], nil
}

func (f *fakeProfileRepo) AttachRule(_ context.Context, _ repositories.SQLExecutor, pr *models.RulesProfileRule) error {
	rows := f.rules[pr.ProfileID]
	for i, row := range rows {
		if row.RuleID == pr.RuleID {
			rows[i] = *pr
			return nil
		}
	}
	f.rules[pr.ProfileID] = append(rows, *pr)
	return nil
}

func (f *fakeProfileRepo) UpdateProfileRule(_ context.Context, _ repositories.SQLExecutor, pr *models.RulesProfileRule) error {
	rows := f.rules[pr.ProfileID]
	for i, row := range rows {
		if row.RuleID == pr.RuleID {
			rows[i] = *pr
			return nil
		}
	}
	return repositories.ErrProfileRuleNotFound
}

func (f *fakeProfileRepo) DetachRule(_ context.Context, _ repositories.SQLExecutor, profileID, ruleID int) error {
	rows := f.rules[profileID]
	for i, row := range rows {
		if row.RuleID == ruleID {
			f.rules[profileID] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrProfileRuleNotFound
}

type fakeVariableRepo struct {
	variables map[string]*models.Variable
}

func newFakeVariableRepo() *fakeVariableRepo {
	return &fakeVariableRepo{variables: make(map[string]*models.Variable)}
}

func (f *fakeVariableRepo) Create(_ context.Context, variable *models.Variable) error {
	if _, ok := f.variables[variable.Key]; ok {
		return repositories.ErrVariableKeyConflict
	}
	variable.ID = len(f.variables) + 1
	f.variables[variable.Key] = variable
	return nil
}

func (f *fakeVariableRepo) GetByKey(_ context.Context, key string) (*models.Variable, error) {
	variable, ok := f.variables[key]
	if !ok {
		return nil, repositories.ErrVariableNotFound
	}
	copied := *variable
	return &copied, nil
}

func (f *fakeVariableRepo) Update(_ context.Context, variable *models.Variable) error {
	if _, ok := f.variables[variable.Key]; !ok {
		return repositories.ErrVariableNotFound
	}
	f.variables[variable.Key] = variable
	return nil
}

func (f *fakeVariableRepo) Delete(_ context.Context, id int) error {
	for key, variable := range f.variables {
		if variable.ID == id {
			delete(f.variables, key)
			return nil
		}
	}
	return repositories.ErrVariableNotFound
}

func (f *fakeVariableRepo) ListActive(_ context.Context) ([]*models.Variable, error) {
	var out []*models.Variable
	for _, variable := range f.variables {
		if variable.IsActive {
			out = append(out, variable)
		}
	}
	return out, nil
}

type fakePointsRepo struct {
	nextID int
	rows   []*models.PlayerGameRulePoints
}

func newFakePointsRepo() *fakePointsRepo {
	return &fakePointsRepo{}
}

func (f *fakePointsRepo) BatchCreate(_ context.Context, _ repositories.SQLExecutor, awards []*models.PlayerGameRulePoints) error {
	for _, award := range awards {
		f.nextID++
		award.ID = f.nextID
		f.rows = append(f.rows, award)
	}
	return nil
}

func (f *fakePointsRepo) CreateManual(_ context.Context, award *models.PlayerGameRulePoints) error {
	f.nextID++
	award.ID = f.nextID
	award.IsManual = true
	f.rows = append(f.rows, award)
	return nil
}

func (f *fakePointsRepo) DeleteAutomaticByGame(_ context.Context, _ repositories.SQLExecutor, gameID int) error {
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.GameID == gameID && !row.IsManual {
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return nil
}

func (f *fakePointsRepo) ListByGame(_ context.Context, gameID int) ([]*models.PlayerGameRulePoints, error) {
	var out []*models.PlayerGameRulePoints
	for _, row := range f.rows {
		if row.GameID == gameID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakePointsRepo) TeamLeaderboard(_ context.Context, _ int, _ int) ([]models.LeaderboardEntry, error) {
	return nil, nil
}

func (f *fakePointsRepo) ClubLeaderboard(_ context.Context, _ int, _ int) ([]models.LeaderboardEntry, error) {
	return nil, nil
}

func (f *fakePointsRepo) SumByClub(_ context.Context, _ int) (float64, error) {
	var sum float64
	for _, row := range f.rows {
		if row.PointType == models.PointTypeClub {
			sum += row.Points
		}
	}
	return sum, nil
}
