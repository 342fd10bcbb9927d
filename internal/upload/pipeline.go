package upload

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"sira/backend/internal/apperr"
	"sira/backend/internal/config"
)

// StagedFile is one file already received by the transport and written
// to local transient storage, pending durable relocation.
type StagedFile struct {
	LocalPath string
	MimeType  string
	Size      int64
}

// Pipeline validates staged evidence files and relocates them to the
// object store with all-or-nothing semantics toward the caller: either
// every file ends up remote and the ordered URLs are returned, or the
// caller gets an error and must not persist anything.
type Pipeline struct {
	Store ObjectStore
}

// NewPipeline creates an evidence pipeline over the given store.
func NewPipeline(store ObjectStore) *Pipeline {
	return &Pipeline{Store: store}
}

// Accept validates the staged set before any network I/O:
// 1..5 files, each at most 5 MiB, png or jpeg only.
func (p *Pipeline) Accept(files []StagedFile) error {
	if len(files) == 0 {
		return apperr.Validation("no files")
	}
	if len(files) > config.MaxEvidenceFiles {
		return apperr.Validation(fmt.Sprintf("at most %d files allowed", config.MaxEvidenceFiles))
	}
	for _, f := range files {
		if f.Size > config.MaxEvidenceFileSize {
			return apperr.Validation("file exceeds the 5 MiB limit")
		}
		if _, ok := config.AllowedEvidenceTypes[f.MimeType]; !ok {
			return apperr.Validation("invalid file type, only JPEG and PNG are allowed")
		}
	}
	return nil
}

// Commit uploads every staged file concurrently and returns the remote
// URLs in submission order.
//
// On any individual failure the local staged files are removed from
// disk (successful and failed alike), already-uploaded remote objects
// are deleted best-effort, and the first error in submission order is
// returned. On success the staged files are removed as well.
func (p *Pipeline) Commit(ctx context.Context, files []StagedFile) ([]string, error) {
	urls := make([]string, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f StagedFile) {
			defer wg.Done()
			urls[i], errs[i] = p.Store.Upload(ctx, f.LocalPath, f.MimeType)
		}(i, f)
	}
	wg.Wait()

	var firstErr error
	for _, err := range errs {
		if err != nil {
			firstErr = err
			break
		}
	}

	// Staging area is transient: clear it whatever the outcome.
	CleanupStaged(files)

	if firstErr != nil {
		// Компенсація: прибираємо вже завантажені об'єкти, щоб невдалий
		// commit не лишав сиріт у сховищі. Best-effort.
		for i, err := range errs {
			if err == nil && urls[i] != "" {
				if delErr := p.Store.Delete(ctx, urls[i]); delErr != nil {
					log.Printf("WARN: failed to roll back uploaded object %s: %v", urls[i], delErr)
				}
			}
		}
		return nil, firstErr
	}
	return urls, nil
}

// CleanupStaged removes the staged files that still exist on disk.
func CleanupStaged(files []StagedFile) {
	for _, f := range files {
		if err := os.Remove(f.LocalPath); err != nil && !os.IsNotExist(err) {
			log.Printf("WARN: failed to remove staged file %s: %v", f.LocalPath, err)
		}
	}
}
