package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-kb/cmd/kb/internal/bootstrap"
	"github.com/goliatone/go-kb/internal/commands"
	markdowncmd "github.com/goliatone/go-kb/internal/commands/markdown"
	"github.com/goliatone/go-kb/internal/logging"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("kb sync: %v", err)
	}
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("kb-sync", flag.ExitOnError)
	driver := fs.String("driver", "sqlite3", "Database driver (sqlite3 or postgres)")
	dsn := fs.String("dsn", "file:kb.db?_fk=1", "Database connection string")
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	quizDir := fs.String("quiz-dir", "quizzes", "Subdirectory holding quiz companion files")
	recursive := fs.Bool("recursive", true, "Walk nested directories")
	directory := fs.String("directory", "", "Directory to sync, relative to the content root")
	logLevel := fs.String("log-level", "info", "Log level")
	logFormat := fs.String("log-format", "console", "Log format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		Driver:     *driver,
		DSN:        *dsn,
		ContentDir: *contentDir,
		Pattern:    *pattern,
		QuizDir:    *quizDir,
		Recursive:  *recursive,
		LogLevel:   *logLevel,
		LogFormat:  *logFormat,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	ctx := context.Background()

	if err := module.Migrate(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	provider := module.Container().LoggerProvider()
	handler := markdowncmd.NewSyncDirectoryHandler(
		module.Markdown(),
		commands.CommandLogger(provider, "markdown"),
	)
	if err := handler.Execute(ctx, markdowncmd.SyncDirectoryCommand{Directory: *directory}); err != nil {
		return fmt.Errorf("execute sync command: %w", err)
	}

	logging.ModuleLogger(provider, "kb").Info("sync finished")
	return nil
}
