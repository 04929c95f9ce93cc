package utils

import (
	"fmt"
	"sync"
	"time"
)

// GenerateID creates schema-aligned prefixed IDs
// Format: prefix-timestamp-counter (e.g., "attempt-1705612800000-001")
func GenerateID(prefix string) string {
	timestamp := time.Now().UnixMilli()
	counter := atomicCounter()
	return fmt.Sprintf("%s-%d-%03d", prefix, timestamp, counter)
}

// GenerateAttemptID creates quiz-attempt-specific ID
func GenerateAttemptID() string {
	return GenerateID("attempt")
}

// GenerateEventID creates xp-event-specific ID
func GenerateEventID() string {
	return GenerateID("evt")
}

// GenerateSessionID creates quiz-session-specific ID
func GenerateSessionID() string {
	return GenerateID("session")
}

// atomicCounter provides thread-safe sequential counters
var (
	counter int64
	mu      sync.Mutex
)

func atomicCounter() int {
	mu.Lock()
	defer mu.Unlock()
	counter++
	return int(counter)
}
