// Command healthctl drives a running healthmock server.
//
// Usage:
//
//	healthctl [-url http://127.0.0.1:18080] toggle <component> <true|false>
//	healthctl [-url http://127.0.0.1:18080] check [component]
//
// check exits 0 when the component is healthy and 1 when it is not.
// Usage and transport errors exit 2.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonwraymond/healthmock/client"
	"github.com/jonwraymond/healthmock/health"
	"github.com/jonwraymond/healthmock/resilience"
)

const (
	exitOK        = 0
	exitUnhealthy = 1
	exitError     = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("healthctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	baseURL := fs.String("url", "http://127.0.0.1:18080", "mock server base URL")
	attempts := fs.Int("attempts", 3, "attempts per request on transport errors")
	timeout := fs.Duration("timeout", 2*time.Second, "timeout per attempt")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: healthctl [flags] toggle <component> <true|false>")
		fmt.Fprintln(stderr, "       healthctl [flags] check [component]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	c, err := client.New(*baseURL, client.WithExecutor(resilience.NewExecutor(
		resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{
			MaxAttempts: *attempts,
			Jitter:      true,
			RetryIf:     client.IsTransportError,
		})),
		resilience.WithTimeout(*timeout),
	)))
	if err != nil {
		fmt.Fprintln(stderr, "healthctl:", err)
		return exitError
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return exitError
	}

	switch rest[0] {
	case "toggle":
		return toggle(ctx, c, rest[1:], stdout, stderr)
	case "check":
		return check(ctx, c, rest[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "healthctl: unknown command %q\n", rest[0])
		fs.Usage()
		return exitError
	}
}

func toggle(ctx context.Context, c *client.Client, args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(stderr, "usage: healthctl toggle <component> <true|false>")
		return exitError
	}
	healthy, err := strconv.ParseBool(args[1])
	if err != nil {
		fmt.Fprintf(stderr, "healthctl: invalid health value %q\n", args[1])
		return exitError
	}

	res, err := c.Toggle(ctx, args[0], healthy)
	if err != nil {
		fmt.Fprintln(stderr, "healthctl:", err)
		return exitError
	}

	out, _ := json.Marshal(res)
	fmt.Fprintln(stdout, string(out))
	return exitOK
}

func check(ctx context.Context, c *client.Client, args []string, stdout, stderr io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintln(stderr, "usage: healthctl check [component]")
		return exitError
	}
	var component string
	if len(args) == 1 {
		component = args[0]
	}

	status, err := c.Check(ctx, component)
	if err != nil {
		fmt.Fprintln(stderr, "healthctl:", err)
		return exitError
	}

	fmt.Fprintln(stdout, status)
	if status != health.StatusHealthy {
		return exitUnhealthy
	}
	return exitOK
}
