package repository

import (
	"ta-chat-go/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(time.Minute, time.Minute)
	session := model.NewSession()

	repo.Save("c-1", session)
	got, ok := repo.Get("c-1")
	require.True(t, ok)
	assert.Same(t, session, got)
	assert.Equal(t, 1, repo.Count())

	repo.Delete("c-1")
	_, ok = repo.Get("c-1")
	assert.False(t, ok)
	assert.Equal(t, 0, repo.Count())
}

func TestSessionRepositoryIdleExpiry(t *testing.T) {
	repo := NewSessionRepository(20*time.Millisecond, time.Hour)
	repo.Save("c-1", model.NewSession())

	time.Sleep(50 * time.Millisecond)
	_, ok := repo.Get("c-1")
	assert.False(t, ok)
}
