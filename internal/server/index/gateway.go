// Package index manages the single shared remote document store: lazy
// provisioning with a persisted identifier, and the synchronous
// submit-and-poll workflow for indexing one file.
package index

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/docuchat/internal/filex"
	"github.com/dmitrijs2005/docuchat/internal/logging"
	"github.com/dmitrijs2005/docuchat/internal/server/gemini"
)

// StoreClient is the subset of the remote API the gateway needs.
type StoreClient interface {
	CreateStore(ctx context.Context, displayName string) (string, error)
	UploadToStore(ctx context.Context, storeName, localPath, displayName string) (*gemini.Operation, error)
	GetOperation(ctx context.Context, name string) (*gemini.Operation, error)
}

// Gateway owns the process-wide store handle. All other components reference
// the store only by the identifier string EnsureStore returns; nobody else
// provisions it.
type Gateway struct {
	client       StoreClient
	idFile       string
	displayName  string
	pollInterval time.Duration
	logger       logging.Logger

	mu        sync.Mutex
	storeName string
}

func NewGateway(client StoreClient, idFile, displayName string, pollInterval time.Duration, l logging.Logger) *Gateway {
	return &Gateway{
		client:       client,
		idFile:       idFile,
		displayName:  displayName,
		pollInterval: pollInterval,
		logger:       l.With("module", "index_gateway"),
	}
}

// EnsureStore returns the shared store identifier, provisioning it on first
// use. The lookup order is: in-process cache, persisted identifier file,
// remote creation. A freshly created identifier is persisted before it is
// returned, so a process restart never provisions a second store. The mutex
// keeps racing first calls from creating a redundant store.
func (g *Gateway) EnsureStore(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.storeName != "" {
		return g.storeName, nil
	}

	if data, err := os.ReadFile(g.idFile); err == nil {
		if name := strings.TrimSpace(string(data)); name != "" {
			g.storeName = name
			g.logger.Info(ctx, "reusing document store", "store", name)
			return name, nil
		}
	}

	name, err := g.client.CreateStore(ctx, g.displayName)
	if err != nil {
		return "", fmt.Errorf("provisioning document store: %w", err)
	}

	if err := filex.WriteFileAtomic(g.idFile, []byte(name), 0o644); err != nil {
		return "", fmt.Errorf("persisting store identifier: %w", err)
	}

	g.storeName = name
	g.logger.Info(ctx, "created document store", "store", name)
	return name, nil
}

// SubmitAndIndex uploads the file at localPath to the store and blocks,
// re-checking the indexing operation on a fixed interval, until the remote
// reports it done. Any submission or polling error is terminal for this
// attempt; there is no retry.
func (g *Gateway) SubmitAndIndex(ctx context.Context, localPath, displayName, storeName string) error {
	op, err := g.client.UploadToStore(ctx, storeName, localPath, displayName)
	if err != nil {
		return fmt.Errorf("submitting %s: %w", displayName, err)
	}

	g.logger.Info(ctx, "file submitted, waiting for indexing", "file", displayName, "operation", op.Name)

	for !op.Done {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(g.pollInterval):
		}

		op, err = g.client.GetOperation(ctx, op.Name)
		if err != nil {
			return fmt.Errorf("polling operation: %w", err)
		}
	}

	if op.Error != nil {
		return fmt.Errorf("indexing %s: %w", displayName, op.Error)
	}

	g.logger.Info(ctx, "indexing complete", "file", displayName)
	return nil
}
