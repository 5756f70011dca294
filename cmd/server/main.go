package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yourname/daybook/internal"
	"github.com/yourname/daybook/internal/api"
	"github.com/yourname/daybook/internal/auth"
	"github.com/yourname/daybook/internal/config"
	"github.com/yourname/daybook/internal/storage"
)

type app struct {
	logger      internal.Logger
	journalRepo storage.JournalRepository
	todoRepo    storage.TodoRepository
}

func (a *app) Logger() internal.Logger                { return a.logger }
func (a *app) JournalRepo() storage.JournalRepository { return a.journalRepo }
func (a *app) TodoRepo() storage.TodoRepository       { return a.todoRepo }

func newLogger(cfg *config.Config) internal.Logger {
	var zcfg zap.Config
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	if lvl, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	z, err := zcfg.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return internal.NewZapLogger(z.Sugar())
}

func newRepositories(cfg *config.Config, logger internal.Logger) (storage.JournalRepository, storage.TodoRepository, error) {
	if cfg.StorageType == "postgres" {
		return storage.NewPostgresRepositories(cfg.DBDSN, logger)
	}
	if dir := filepath.Dir(cfg.FileEntries); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	return storage.NewFileRepositories(cfg.FileEntries, cfg.FileTodos, logger)
}

func newAuthProvider(cfg *config.Config, logger internal.Logger) auth.Provider {
	if cfg.Env == "development" {
		return auth.NewLocalAuthProvider(cfg.DevToken, logger)
	}
	return auth.NewRemoteAuthProvider(cfg.AuthURL, logger)
}

func main() {
	cfg := config.Load()
	logger := newLogger(cfg)

	journalRepo, todoRepo, err := newRepositories(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	a := &app{logger: logger, journalRepo: journalRepo, todoRepo: todoRepo}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestIDMiddleware())
	r.Use(auth.AuthMiddleware(newAuthProvider(cfg, logger), cfg))

	r.POST("/journal", api.PostEntry(a))
	r.GET("/journal", api.ListEntries(a))
	r.GET("/journal/count", api.GetEntryCount(a))
	r.GET("/journal/stats", api.GetJournalStats(a))
	r.PUT("/journal/:id", api.PutEntry(a))
	r.DELETE("/journal/:id", api.DeleteEntry(a))

	r.POST("/todos", api.PostTodo(a))
	r.GET("/todos", api.ListTodos(a))
	r.PUT("/todos/:id", api.PutTodo(a))
	r.DELETE("/todos/:id", api.DeleteTodo(a))

	logger.Infof("Server running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
