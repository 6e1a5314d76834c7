package assistant

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kestrelhq/badgehunt/internal/badge"
	"github.com/kestrelhq/badgehunt/internal/config"
)

func TestUnconfiguredAssistant(t *testing.T) {
	a := New(&config.Config{ChatModel: "gpt-4o-mini", ImageModel: "dall-e-2"}, zap.NewNop())

	assert.False(t, a.Configured())

	_, err := a.Chat(context.Background(), nil, "hi")
	assert.ErrorIs(t, err, ErrNoCredential)

	_, err = a.GenerateBadgeImage(context.Background(), badge.ByID("yolo"))
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestChatStreamsFragments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		for _, delta := range []string{"Pull ", "Shark ", "needs merged PRs."} {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", delta)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	a := New(&config.Config{
		OpenAIAPIKey:  "test-key",
		OpenAIBaseURL: server.URL,
		ChatModel:     "gpt-4o-mini",
	}, zap.NewNop())
	require.True(t, a.Configured())

	ch, err := a.Chat(context.Background(), []Message{
		{Role: RoleUser, Content: "earlier question"},
		{Role: RoleAssistant, Content: "earlier answer"},
	}, "How do I earn Pull Shark?")
	require.NoError(t, err)

	var reply string
	for delta := range ch {
		reply += delta
	}
	assert.Equal(t, "Pull Shark needs merged PRs.", reply)
}

func TestGenerateBadgeImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/images/generations", r.URL.Path)
		fmt.Fprint(w, `{"data":[{"b64_json":"aGVsbG8="}]}`)
	}))
	defer server.Close()

	a := New(&config.Config{
		OpenAIAPIKey:  "test-key",
		OpenAIBaseURL: server.URL,
		ImageModel:    "dall-e-2",
	}, zap.NewNop())

	uri, err := a.GenerateBadgeImage(context.Background(), badge.ByID("starstruck"))
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", uri)
}

func TestGenerateBadgeImageEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	a := New(&config.Config{
		OpenAIAPIKey:  "test-key",
		OpenAIBaseURL: server.URL,
		ImageModel:    "dall-e-2",
	}, zap.NewNop())

	_, err := a.GenerateBadgeImage(context.Background(), badge.ByID("starstruck"))
	assert.ErrorIs(t, err, ErrNoImage)
}
