package server

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger for a single render request. Messages go to
// the server log and are kept for the response.
type WebLogger struct {
	renderID string

	mu       sync.Mutex
	messages []ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string) *WebLogger {
	return &WebLogger{renderID: renderID}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", wl.renderID, strings.TrimRight(message, "\n"))

	wl.mu.Lock()
	defer wl.mu.Unlock()
	wl.messages = append(wl.messages, ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     levelOf(message),
	})
}

// Messages returns a copy of everything logged so far
func (wl *WebLogger) Messages() []ConsoleMessage {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	return append([]ConsoleMessage(nil), wl.messages...)
}

func levelOf(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "error"):
		return "error"
	case strings.Contains(lower, "warning"), strings.Contains(lower, "non-finite"):
		return "warning"
	default:
		return "info"
	}
}
