// Package client drives a running mock health server over HTTP.
//
// Transport failures are retried through a resilience executor with a
// per-attempt timeout. HTTP answers are never retried: a 500 from a health
// probe is a result, and any status the mock does not document is reported
// as ErrUnexpectedStatus.
//
// # Basic Usage
//
//	c, err := client.New("http://127.0.0.1:18080")
//	if err != nil {
//	    return err
//	}
//
//	if _, err := c.Toggle(ctx, "mailer", false); err != nil {
//	    return err
//	}
//	status, err := c.Check(ctx, "mailer") // health.StatusUnhealthy
package client
