// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/microgrid-exchange/microgrid-cli/sdk/constants"
)

// Unique returns a new slice containing only the unique elements from the input slice.
func Unique[T comparable](arr []T) []T {
	visited := map[T]bool{}
	unique := []T{}
	for _, e := range arr {
		if !visited[e] {
			unique = append(unique, e)
			visited[e] = true
		}
	}
	return unique
}

// Context for API requests, bound to [parent]
func GetAPIContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, constants.APIRequestTimeout)
}

// Context for API requests with large timeout, bound to [parent]
func GetAPILargeContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, constants.APIRequestLargeTimeout)
}

// RetryWithContextGen executes [fn] up to [maxAttempts] times, generating a fresh
// context from [parent] with [ctxGen] for each attempt, and sleeping [retryInterval]
// between failed attempts. It gives up early if [parent] is done.
func RetryWithContextGen[T any](
	parent context.Context,
	ctxGen func(context.Context) (context.Context, context.CancelFunc),
	fn func(context.Context) (T, error),
	maxAttempts int,
	retryInterval time.Duration,
) (T, error) {
	var (
		result T
		err    error
	)
	if maxAttempts <= 0 {
		return result, fmt.Errorf("invalid number of attempts %d", maxAttempts)
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err = func() (T, error) {
			ctx, cancel := ctxGen(parent)
			defer cancel()
			return fn(ctx)
		}()
		if err == nil {
			return result, nil
		}
		if attempt == maxAttempts-1 {
			break
		}
		select {
		case <-parent.Done():
			return result, fmt.Errorf("%w: last err = %w", parent.Err(), err)
		case <-time.After(retryInterval):
		}
	}
	return result, fmt.Errorf("maximum retry attempts %d reached: last err = %w", maxAttempts, err)
}
