package markdowncmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-kb/pkg/interfaces"
)

type stubMarkdownService struct {
	syncedDirs []string
	result     *interfaces.SyncResult
	err        error
}

func (s *stubMarkdownService) Sync(ctx context.Context, dir string) (*interfaces.SyncResult, error) {
	s.syncedDirs = append(s.syncedDirs, dir)
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &interfaces.SyncResult{}, nil
}

func (s *stubMarkdownService) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	return markdown, nil
}

func TestSyncDirectoryHandlerExecutes(t *testing.T) {
	service := &stubMarkdownService{result: &interfaces.SyncResult{Created: 3}}
	handler := NewSyncDirectoryHandler(service, nil)

	if err := handler.Execute(context.Background(), SyncDirectoryCommand{Directory: "guides"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if len(service.syncedDirs) != 1 || service.syncedDirs[0] != "guides" {
		t.Fatalf("unexpected sync calls: %v", service.syncedDirs)
	}
}

func TestSyncDirectoryCommandRejectsParentReferences(t *testing.T) {
	service := &stubMarkdownService{}
	handler := NewSyncDirectoryHandler(service, nil)

	err := handler.Execute(context.Background(), SyncDirectoryCommand{Directory: "../outside"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(service.syncedDirs) != 0 {
		t.Fatalf("service must not be called on invalid input: %v", service.syncedDirs)
	}
}

func TestSyncDirectoryHandlerPropagatesServiceError(t *testing.T) {
	wantErr := errors.New("boom")
	handler := NewSyncDirectoryHandler(&stubMarkdownService{err: wantErr}, nil)

	err := handler.Execute(context.Background(), SyncDirectoryCommand{})
	if err == nil || !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped service error, got %v", err)
	}
}
