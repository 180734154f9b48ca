package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docuchat/internal/common"
	"github.com/dmitrijs2005/docuchat/internal/logging"
)

// --- fakes ---

type fakeStoreProvider struct {
	name  string
	err   error
	calls int
}

func (f *fakeStoreProvider) EnsureStore(ctx context.Context) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.name, nil
}

type fakeGenerator struct {
	reply string
	err   error
	calls int

	gotStore   string
	gotMessage string
}

func (f *fakeGenerator) GenerateGrounded(ctx context.Context, storeName, message string) (string, error) {
	f.calls++
	f.gotStore = storeName
	f.gotMessage = message
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func newChatService(stores *fakeStoreProvider, gen *fakeGenerator) *ChatService {
	return NewChatService(stores, gen, testLogger())
}

// --- tests ---

func TestChatAnswer_Success(t *testing.T) {
	stores := &fakeStoreProvider{name: "fileSearchStores/s1"}
	gen := &fakeGenerator{reply: "Attendance is mandatory."}
	s := newChatService(stores, gen)

	reply, err := s.Answer(context.Background(), "What is the attendance policy?")
	require.NoError(t, err)

	assert.Equal(t, "Attendance is mandatory.", reply)
	assert.Equal(t, "fileSearchStores/s1", gen.gotStore)
	assert.Equal(t, "What is the attendance policy?", gen.gotMessage)
}

func TestChatAnswer_TrimsMessage(t *testing.T) {
	stores := &fakeStoreProvider{name: "fileSearchStores/s1"}
	gen := &fakeGenerator{reply: "ok"}
	s := newChatService(stores, gen)

	_, err := s.Answer(context.Background(), "  hello \n")
	require.NoError(t, err)
	assert.Equal(t, "hello", gen.gotMessage)
}

func TestChatAnswer_EmptyMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{"empty string", ""},
		{"spaces only", "   "},
		{"whitespace mix", " \t\n "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stores := &fakeStoreProvider{name: "fileSearchStores/s1"}
			gen := &fakeGenerator{reply: "should not be called"}
			s := newChatService(stores, gen)

			_, err := s.Answer(context.Background(), tc.message)
			assert.ErrorIs(t, err, common.ErrEmptyMessage)
			assert.Zero(t, stores.calls, "no remote call on validation failure")
			assert.Zero(t, gen.calls, "no remote call on validation failure")
		})
	}
}

func TestChatAnswer_EmptyReplyGetsFallback(t *testing.T) {
	stores := &fakeStoreProvider{name: "fileSearchStores/s1"}
	gen := &fakeGenerator{reply: ""}
	s := newChatService(stores, gen)

	reply, err := s.Answer(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, fallbackReply, reply)
}

func TestChatAnswer_StoreFailure(t *testing.T) {
	stores := &fakeStoreProvider{err: errors.New("store unavailable")}
	gen := &fakeGenerator{}
	s := newChatService(stores, gen)

	_, err := s.Answer(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store unavailable")
	assert.Zero(t, gen.calls)
}

func TestChatAnswer_GenerationFailureSurfaced(t *testing.T) {
	stores := &fakeStoreProvider{name: "fileSearchStores/s1"}
	gen := &fakeGenerator{err: errors.New("model overloaded")}
	s := newChatService(stores, gen)

	_, err := s.Answer(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}
