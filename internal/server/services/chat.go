// Package services contains server-side business logic. This file implements
// ChatService, which answers a user message with one grounded generation
// request against the shared document store.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docuchat/internal/common"
	"github.com/dmitrijs2005/docuchat/internal/logging"
)

// fallbackReply is returned when the model produces no text, so the caller
// never sees an empty response.
const fallbackReply = "Sorry, I could not come up with an answer to that."

// StoreProvider yields the identifier of the shared document store.
type StoreProvider interface {
	EnsureStore(ctx context.Context) (string, error)
}

// Generator produces a grounded model reply for a message.
type Generator interface {
	GenerateGrounded(ctx context.Context, storeName, message string) (string, error)
}

// ChatService forwards user messages to the language model with the
// document-store retrieval tool attached.
type ChatService struct {
	stores    StoreProvider
	generator Generator
	logger    logging.Logger
}

func NewChatService(stores StoreProvider, generator Generator, l logging.Logger) *ChatService {
	return &ChatService{
		stores:    stores,
		generator: generator,
		logger:    l.With("module", "chat_service"),
	}
}

// Answer validates the message, resolves the shared store, and returns the
// model's text reply. A whitespace-only message fails with
// common.ErrEmptyMessage before any remote call. Remote failures are
// surfaced to the caller, never replaced with a fabricated reply.
func (s *ChatService) Answer(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", common.ErrEmptyMessage
	}

	storeName, err := s.stores.EnsureStore(ctx)
	if err != nil {
		return "", fmt.Errorf("resolving document store: %w", err)
	}

	reply, err := s.generator.GenerateGrounded(ctx, storeName, message)
	if err != nil {
		s.logger.Error(ctx, "generation failed", "error", err.Error())
		return "", err
	}

	if reply == "" {
		return fallbackReply, nil
	}
	return reply, nil
}
