package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"ta-chat-go/internal/model"
	"ta-chat-go/internal/repository"
	"ta-chat-go/pkg/backend"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errBackendDown = errors.New("backend down")

// fakeBackend 记录收到的请求，按预设返回结果。
type fakeBackend struct {
	mu sync.Mutex

	sessionID  string
	sessionErr error

	askRequests []backend.AskRequest
	askFn       func(req backend.AskRequest) (*backend.AskResponse, error)
	askGate     chan struct{}
	askStarted  chan struct{}

	rateCalls int
	rateFn    func(questionID string, positive bool) (bool, error)

	uploads  []backend.UploadRequest
	uploadFn func(req backend.UploadRequest) (*backend.UploadResponse, error)

	docs    []model.DocumentInfo
	docsErr error
	bearers []string
}

func newFakeBackend() *fakeBackend {
	counter := 0
	f := &fakeBackend{sessionID: "abc-123"}
	f.askFn = func(req backend.AskRequest) (*backend.AskResponse, error) {
		counter++
		return &backend.AskResponse{
			QuestionUUID: fmt.Sprintf("q%d", counter),
			Answer:       "answer to " + req.Question[len(req.Question)-1],
		}, nil
	}
	f.rateFn = func(string, bool) (bool, error) { return true, nil }
	f.uploadFn = func(backend.UploadRequest) (*backend.UploadResponse, error) {
		return &backend.UploadResponse{StatusCode: 200, FileID: "file-1"}, nil
	}
	return f
}

func (f *fakeBackend) AcquireSessionID(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessionID, f.sessionErr
}

func (f *fakeBackend) Ask(ctx context.Context, req backend.AskRequest) (*backend.AskResponse, error) {
	f.mu.Lock()
	f.askRequests = append(f.askRequests, req)
	f.bearers = append(f.bearers, backend.BearerFrom(ctx))
	gate, started := f.askGate, f.askStarted
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.askFn(req)
}

func (f *fakeBackend) Rate(ctx context.Context, questionID string, positive bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rateCalls++
	return f.rateFn(questionID, positive)
}

func (f *fakeBackend) Upload(ctx context.Context, req backend.UploadRequest) (*backend.UploadResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, req)
	return f.uploadFn(req)
}

func (f *fakeBackend) ListDocuments(ctx context.Context, department string) ([]model.DocumentInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docs, f.docsErr
}

func (f *fakeBackend) DocumentURL(fileID string) string {
	return "http://backend/documentation/" + fileID
}

func (f *fakeBackend) askCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.askRequests)
}

func (f *fakeBackend) lastAsk() backend.AskRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.askRequests[len(f.askRequests)-1]
}

type testEnv struct {
	backend     *fakeBackend
	sessions    SessionService
	chat        ChatService
	feedback    FeedbackService
	preferences PreferenceService
	uploads     UploadService
	documents   DocumentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fb := newFakeBackend()
	repo := repository.NewSessionRepository(time.Hour, time.Hour)
	sessions := NewSessionService(fb, repo)
	return &testEnv{
		backend:     fb,
		sessions:    sessions,
		chat:        NewChatService(sessions, fb, "", ""),
		feedback:    NewFeedbackService(sessions, fb),
		preferences: NewPreferenceService(sessions),
		uploads:     NewUploadService(sessions, fb, "", 1<<20),
		documents:   NewDocumentService(fb),
	}
}

func (e *testEnv) start(t *testing.T) string {
	t.Helper()
	id, _, err := e.sessions.Start(context.Background())
	require.NoError(t, err)
	return id
}
