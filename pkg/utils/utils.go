package utils

import (
	"context"
	"log"

	"golang-stock-advisor/pkg/logger"
)

// GoSafe runs the given function in a new goroutine and recovers from any panic.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Panic Recovered] %v", r)
			}
		}()
		fn()
	}()
}

// ShouldContinue reports whether the context is still alive, logging the reason when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.Warn("Context cancelled", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}
