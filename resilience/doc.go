// Package resilience provides retry and timeout wrappers for calls made
// against a mock server.
//
// A [Retry] re-runs an operation with backoff while its errors are
// retryable. A [Timeout] bounds each attempt. An [Executor] composes both,
// with the timeout applied per attempt:
//
//	exec := resilience.NewExecutor(
//	    resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{
//	        MaxAttempts: 3,
//	        RetryIf:     isTransportError,
//	    })),
//	    resilience.WithTimeout(2*time.Second),
//	)
//
//	err := exec.Execute(ctx, func(ctx context.Context) error {
//	    return toggle(ctx, "mailer", false)
//	})
package resilience
