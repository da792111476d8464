package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/healthmock/resilience"
)

func ExampleExecutor_Execute() {
	exec := resilience.NewExecutor(
		resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
		})),
		resilience.WithTimeout(time.Second),
	)

	attempts := 0
	err := exec.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 2 {
			return errors.New("connection refused")
		}
		return nil
	})

	fmt.Println(err, attempts)
	// Output:
	// <nil> 2
}

func ExampleRetry_Execute_exhausted() {
	r := resilience.NewRetry(resilience.RetryConfig{MaxAttempts: 2, InitialDelay: time.Millisecond})

	err := r.Execute(context.Background(), func(ctx context.Context) error {
		return errors.New("connection refused")
	})

	fmt.Println(errors.Is(err, resilience.ErrMaxRetriesExceeded))
	// Output:
	// true
}
