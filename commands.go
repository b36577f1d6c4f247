package main

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"civicsync/controllers"
	"civicsync/middlewares"
	"civicsync/models"
	"civicsync/routes"
	"civicsync/services"
)

type appRunner func(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newServeCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			cfg := a.cfg

			var limiter gin.HandlerFunc
			if a.redis != nil {
				limiter = middlewares.IssueRateLimiter(a.redis, cfg.Redis.IssueLimitQueue, cfg.Redis.IssueDailyLimit, a.log)
			}

			r := routes.New(routes.Dependencies{
				Auth: &controllers.AuthController{
					Session:    a.session,
					JWTSecret:  cfg.JWTSecret,
					Domain:     cfg.Domain,
					Production: cfg.IsProduction(),
					Logger:     a.log,
				},
				Issues: &controllers.IssueController{
					Query:      a.query,
					Mutation:   a.mutation,
					Projection: cfg.Map.Projection(),
					Logger:     a.log,
				},
				Users: &controllers.UserController{
					Query:  a.query,
					Logger: a.log,
				},
				RequireAuth:    middlewares.AuthMiddleware(cfg.JWTSecret, a.session, a.log),
				IssueLimiter:   limiter,
				AllowedOrigins: cfg.AllowedOrigins,
			})

			a.log.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
			if err := r.Run(":" + cfg.Port); err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}
			return nil
		}),
	}
}

func newLoginCmd(withApp appRunner) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			user, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return printJSON(cmd, user)
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newRegisterCmd(withApp appRunner) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and persist the session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			user, err := a.session.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			return printJSON(cmd, user)
		}),
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			a.session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		}),
	}
}

func newWhoamiCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			user, ok := a.session.CurrentUser()
			out := struct {
				User            *models.User `json:"user"`
				IsAuthenticated bool         `json:"isAuthenticated"`
				IsLoading       bool         `json:"isLoading"`
			}{IsAuthenticated: ok, IsLoading: a.session.IsLoading()}
			if ok {
				out.User = &user
			}
			return printJSON(cmd, out)
		}),
	}
}

func newIssuesCmd(withApp appRunner) *cobra.Command {
	var (
		page, limit int
		mine        bool
	)
	cmd := &cobra.Command{
		Use:   "issues",
		Short: "List reported issues",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			var (
				issues []models.Issue
				err    error
			)
			if mine {
				user, ok := a.session.CurrentUser()
				if !ok {
					return models.ErrUnauthenticated
				}
				issues, err = a.query.ListByReporter(cmd.Context(), user.ID, page, limit)
			} else {
				issues, err = a.query.List(cmd.Context(), page, limit)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, issues)
		}),
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&limit, "limit", services.DefaultPageLimit, "issues per page")
	cmd.Flags().BoolVar(&mine, "mine", false, "only issues reported by the current user, newest first")
	return cmd
}

func newStatsCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show issue statistics",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			stats, err := a.query.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, stats)
		}),
	}
}
