package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-kb/cmd/kb/internal/bootstrap"
	"github.com/goliatone/go-kb/internal/logging"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runServe(os.Args[1:]); err != nil {
		log.Fatalf("kb serve: %v", err)
	}
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("kb-serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "Listen address")
	driver := fs.String("driver", "sqlite3", "Database driver (sqlite3 or postgres)")
	dsn := fs.String("dsn", "file:kb.db?_fk=1", "Database connection string")
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	quizDir := fs.String("quiz-dir", "quizzes", "Subdirectory holding quiz companion files")
	recursive := fs.Bool("recursive", true, "Walk nested directories")
	sessionSecret := fs.String("session-secret", "", "Secret used to sign session cookies")
	syncOnStart := fs.Bool("sync-on-start", true, "Run a sync pass before listening")
	logLevel := fs.String("log-level", "info", "Log level")
	logFormat := fs.String("log-format", "console", "Log format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *sessionSecret == "" {
		return fmt.Errorf("session-secret is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		Driver:        *driver,
		DSN:           *dsn,
		ContentDir:    *contentDir,
		Pattern:       *pattern,
		QuizDir:       *quizDir,
		Recursive:     *recursive,
		SessionSecret: *sessionSecret,
		LogLevel:      *logLevel,
		LogFormat:     *logFormat,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := module.Migrate(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	logger := logging.ModuleLogger(module.Container().LoggerProvider(), "kb")

	if *syncOnStart {
		result, err := module.Sync(ctx)
		if err != nil {
			return fmt.Errorf("initial sync: %w", err)
		}
		logger.Info("initial sync finished",
			"created", result.Created,
			"updated", result.Updated,
			"skipped", result.Skipped,
			"errors", len(result.Errors),
		)
	}

	handler, err := module.Handler()
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", *addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
