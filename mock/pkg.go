// Package mock provides testify mocks for the capabilities vksetup injects.
package mock

import (
	// standard library
	"context"

	// external
	"github.com/stretchr/testify/mock"
)

// MockDebugExecutor implements the cmd.DebugExecutor interface for testing purposes
type MockDebugExecutor struct {
	mock.Mock
}

// ExecuteIfDebugIsTrue records the call to this method.
func (m *MockDebugExecutor) ExecuteIfDebugIsTrue(cb func()) {
	m.Called(cb)
}

// LogDebugMessageIfDebugIsTrue records the message and its key/value pairs
// as a flat argument list.
func (m *MockDebugExecutor) LogDebugMessageIfDebugIsTrue(msg string, keyvals ...interface{}) {
	args := []interface{}{msg}
	args = append(args, keyvals...)
	m.Called(args...)
}

// MockYesNoAsker implements prompt.YesNoAsker.
type MockYesNoAsker struct {
	mock.Mock
}

func (m *MockYesNoAsker) Ask(question string) (bool, error) {
	args := m.Called(question)
	return args.Bool(0), args.Error(1)
}

// NewMockYesNoAsker returns an asker that answers every question with answer.
func NewMockYesNoAsker(answer bool) *MockYesNoAsker {
	asker := &MockYesNoAsker{}
	asker.On("Ask", mock.AnythingOfType("string")).Return(answer, nil).Maybe()
	return asker
}

// MockDownloader implements services.Downloader without touching the network.
type MockDownloader struct {
	mock.Mock
}

func (m *MockDownloader) Fetch(ctx context.Context, url, destination string) error {
	args := m.Called(ctx, url, destination)
	return args.Error(0)
}

// NewMockDownloader returns a downloader that accepts any request and
// returns err.
func NewMockDownloader(err error) *MockDownloader {
	downloader := &MockDownloader{}
	downloader.On("Fetch", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(err).Maybe()
	return downloader
}

// MockOpener implements launcher.Opener without spawning processes.
type MockOpener struct {
	mock.Mock
}

func (m *MockOpener) Open(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// NewMockOpener returns an opener that accepts any path and returns err.
func NewMockOpener(err error) *MockOpener {
	opener := &MockOpener{}
	opener.On("Open", mock.AnythingOfType("string")).Return(err).Maybe()
	return opener
}

// ExitRecorder stands in for os.Exit and remembers the codes it was given.
type ExitRecorder struct {
	Codes []int
}

func (e *ExitRecorder) Exit(code int) {
	e.Codes = append(e.Codes, code)
}

// Called reports whether Exit was invoked at all.
func (e *ExitRecorder) Called() bool {
	return len(e.Codes) > 0
}
