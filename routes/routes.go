package routes

import (
	"github.com/Dosada05/hockey-club-system/handlers"
	"github.com/Dosada05/hockey-club-system/middleware"
	"github.com/Dosada05/hockey-club-system/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Club      *handlers.ClubHandler
	Team      *handlers.TeamHandler
	Player    *handlers.PlayerHandler
	Season    *handlers.SeasonHandler
	Game      *handlers.GameHandler
	Rule      *handlers.RuleHandler
	Profile   *handlers.ProfileHandler
	Scoring   *handlers.ScoringHandler
	Variable  *handlers.VariableHandler
	Invite    *handlers.InviteHandler
	WebSocket *handlers.WebSocketHandler
}

// SetupRoutes wires the full HTTP surface. Reads are open to any
// authenticated user; club and rule administration is gated to admin,
// match-day operations to admin and manager.
func SetupRoutes(router *chi.Mux, h Handlers, jwtSecret string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	router.Get("/ws/clubs/{clubID}", h.WebSocket.ServeClub)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Get("/auth/me", h.Auth.Me)
		r.Post("/invites/{token}/accept", h.Invite.AcceptInvite)

		r.Route("/clubs", func(r chi.Router) {
			r.Get("/", h.Club.ListClubs)
			r.Get("/{clubID}", h.Club.GetClubByID)
			r.Get("/{clubID}/dashboard", h.Club.GetDashboard)
			r.Get("/{clubID}/leaderboard", h.Club.GetLeaderboard)
			r.Get("/{clubID}/profiles", h.Profile.ListProfilesByClub)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Post("/", h.Club.CreateClub)
				r.Put("/{clubID}", h.Club.UpdateClub)
				r.Delete("/{clubID}", h.Club.DeleteClub)
				r.Post("/{clubID}/logo", h.Club.UploadLogo)
				r.Put("/{clubID}/profiles/{profileID}/default", h.Profile.SetClubDefault)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/{teamID}", h.Team.GetTeamByID)
			r.Get("/{teamID}/players", h.Team.ListTeamPlayers)
			r.Get("/{teamID}/games", h.Game.ListGamesByTeam)
			r.Get("/{teamID}/leaderboard", h.Team.GetLeaderboard)
			r.Get("/{teamID}/effective-rules", h.Scoring.GetEffectiveRules)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleManager))
				r.Post("/", h.Team.CreateTeam)
				r.Put("/{teamID}", h.Team.UpdateTeam)
				r.Put("/{teamID}/rules-profile", h.Team.SetRulesProfile)
				r.Delete("/{teamID}", h.Team.DeleteTeam)
				r.Post("/{teamID}/logo", h.Team.UploadLogo)
				r.Post("/{teamID}/invites", h.Invite.CreateInvite)
			})
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/{playerID}", h.Player.GetPlayerByID)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleManager))
				r.Post("/", h.Player.CreatePlayer)
				r.Put("/{playerID}", h.Player.UpdatePlayer)
				r.Post("/{playerID}/deactivate", h.Player.DeactivatePlayer)
				r.Delete("/{playerID}", h.Player.DeletePlayer)
			})
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/{gameID}", h.Game.GetGameByID)
			r.Get("/{gameID}/points", h.Scoring.ListGamePoints)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleManager))
				r.Post("/", h.Game.ScheduleGame)
				r.Put("/{gameID}/squad", h.Game.SetSquad)
				r.Post("/{gameID}/complete", h.Game.CompleteGame)
				r.Post("/{gameID}/cancel", h.Game.CancelGame)
				r.Post("/{gameID}/score", h.Scoring.ScoreGame)
				r.Post("/{gameID}/points", h.Scoring.AddManualPoints)
			})
		})

		r.Route("/leagues", func(r chi.Router) {
			r.Get("/", h.Season.ListLeagues)
			r.Get("/{leagueID}/seasons", h.Season.ListSeasonsByLeague)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Post("/", h.Season.CreateLeague)
			})
		})

		r.Route("/seasons", func(r chi.Router) {
			r.Get("/{seasonID}", h.Season.GetSeasonByID)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Post("/", h.Season.CreateSeason)
				r.Put("/{seasonID}", h.Season.UpdateSeason)
				r.Delete("/{seasonID}", h.Season.DeleteSeason)
			})
		})

		// Rules engine administration is admin only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))

			r.Route("/rules", func(r chi.Router) {
				r.Get("/", h.Rule.ListRules)
				r.Get("/{ruleID}", h.Rule.GetRuleByID)
				r.Post("/", h.Rule.CreateRule)
				r.Put("/{ruleID}", h.Rule.UpdateRule)
				r.Delete("/{ruleID}", h.Rule.DeleteRule)
			})

			r.Route("/profiles", func(r chi.Router) {
				r.Get("/{profileID}", h.Profile.GetProfileByID)
				r.Post("/", h.Profile.CreateProfile)
				r.Put("/{profileID}", h.Profile.UpdateProfile)
				r.Delete("/{profileID}", h.Profile.DeleteProfile)
				r.Post("/{profileID}/rules", h.Profile.AttachRule)
				r.Put("/{profileID}/rules", h.Profile.UpdateProfileRule)
				r.Delete("/{profileID}/rules/{ruleID}", h.Profile.DetachRule)
			})

			r.Route("/variables", func(r chi.Router) {
				r.Get("/", h.Variable.ListVariables)
				r.Post("/", h.Variable.CreateVariable)
				r.Put("/", h.Variable.UpdateVariable)
				r.Delete("/{variableID}", h.Variable.DeleteVariable)
			})

			r.Delete("/invites/{inviteID}", h.Invite.DeleteInvite)
		})
	})
}
