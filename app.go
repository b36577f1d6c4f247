package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"civicsync/config"
	"civicsync/kvstore"
	"civicsync/logger"
	"civicsync/services"
	"civicsync/store"
)

// app holds the wired services for one process.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	session  *services.Session
	query    *services.IssueQuery
	mutation *services.IssueMutation
	redis    *redis.Client
	closers  []func(context.Context) error
}

func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	if cfg.Redis.Address != "" {
		rdb, err := config.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Info("Connected to Redis", "address", cfg.Redis.Address)
		a.redis = rdb
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
	}

	var (
		issues      store.IssueStore
		credentials store.CredentialStore
	)
	switch cfg.Store.Backend {
	case "mongo":
		client, db, err := config.ConnectDB(ctx, cfg.Mongo)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		log.Info("Connected to MongoDB", "database", cfg.Mongo.Database)
		a.closers = append(a.closers, client.Disconnect)

		mongoIssues := store.NewMongoIssueStore(db)
		if err := mongoIssues.EnsureIndexes(ctx); err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("failed to create issue indexes: %w", err)
		}
		issues = mongoIssues
		credentials = store.NewMongoCredentialStore(db)
	default:
		issues = store.NewMemoryIssueStore()
		credentials = store.NewMemoryCredentialStore()
	}

	if cfg.Store.SeedMockData {
		if err := seedIfEmpty(ctx, issues, log); err != nil {
			a.Close(ctx)
			return nil, err
		}
	}

	storage, err := a.sessionStorage()
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	var verifier services.CredentialVerifier = services.AcceptAnyCredentials{}
	if cfg.Auth.Verifier == "password" {
		verifier = services.NewPasswordCredentials(credentials)
	}

	a.session = services.NewSession(storage, verifier, log)
	if err := a.session.Restore(ctx); err != nil {
		log.Warn("Session restore failed, continuing signed out", "error", err.Error())
	}

	a.query = services.NewIssueQuery(issues, log)
	var opts []services.MutationOption
	if cfg.Issues.ValidateForms {
		opts = append(opts, services.WithFormValidation())
	}
	a.mutation = services.NewIssueMutation(issues, log, opts...)

	return a, nil
}

func (a *app) sessionStorage() (kvstore.Storage, error) {
	switch a.cfg.Session.Backend {
	case "redis":
		return kvstore.NewRedis(a.redis, a.cfg.Redis.SessionPrefix), nil
	case "memory":
		return kvstore.NewMemory(), nil
	default:
		return kvstore.NewFile(a.cfg.Session.Dir)
	}
}

func seedIfEmpty(ctx context.Context, issues store.IssueStore, log *logger.Logger) error {
	existing, err := issues.All(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	if err := store.Seed(ctx, issues, store.MockIssues(time.Now().UTC())); err != nil {
		return err
	}
	log.Info("Seeded mock issues")
	return nil
}

// Close releases connections in reverse order of opening.
func (a *app) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.log.Warn("Shutdown: failed to close connection", "error", err.Error())
		}
	}
	a.closers = nil
}
