package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/tdh8316/igcheck/internal/candidate"
	"github.com/tdh8316/igcheck/internal/cli"
	"github.com/tdh8316/igcheck/internal/httpx"
	"github.com/tdh8316/igcheck/internal/instagram"
	"github.com/tdh8316/igcheck/internal/output"
)

type job struct {
	field instagram.Field
	value string
}

func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return run(ctx, args, stdout, stderr, instagram.DefaultEndpoints())
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, endpoints instagram.Endpoints) int {
	fmt.Fprintln(stdout, "igcheck - Check Instagram Email/Username Availability.")

	opts, err := cli.Parse(args, stdout, stderr)
	if err != nil {
		if errors.Is(err, cli.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err.Error())
		return 2
	}

	color.NoColor = opts.NoColor
	printer := output.NewPrinter(stdout, opts.NoColor)
	logger := newLogger(stderr, opts)

	userAgent := httpx.DefaultUserAgent
	if opts.UserAgent != "" {
		userAgent = opts.UserAgent
		if httpx.OlderThanDefault(userAgent) {
			printer.Warn("User agent advertises an older Chrome than the default; the sign-up page may refuse it.")
		}
	}

	// Vet every candidate before touching the network.
	failed := false
	var jobs []job
	for _, v := range opts.Emails {
		if err := candidate.Email(v); err != nil {
			printer.Error(instagram.FieldEmail, v, err)
			failed = true
			continue
		}
		jobs = append(jobs, job{field: instagram.FieldEmail, value: v})
	}
	for _, v := range opts.Usernames {
		if err := candidate.Username(v); err != nil {
			printer.Error(instagram.FieldUsername, v, err)
			failed = true
			continue
		}
		jobs = append(jobs, job{field: instagram.FieldUsername, value: v})
	}
	if len(jobs) == 0 {
		fmt.Fprintln(stderr, "no valid candidates to check")
		return 1
	}

	httpClient, err := httpx.NewClient(httpx.ClientConfig{
		Timeout:     opts.Timeout,
		WithTor:     opts.WithTor,
		TorProxyURL: httpx.DefaultTorProxyURL,
	})
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize HTTP client: %v\n", err)
		return 1
	}
	if opts.WithTor {
		printer.Info("Using tor...")
	}

	checker := instagram.New(httpClient,
		instagram.WithEndpoints(endpoints),
		instagram.WithUserAgent(userAgent),
		instagram.WithLogger(logger),
	)

	session, err := checker.Initialize(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize session: %v\n", err)
		return 1
	}
	printer.Info("Session established")

	for _, j := range jobs {
		res, err := checker.Check(ctx, session, j.field, j.value)
		if err != nil {
			printer.Error(j.field, j.value, err)
			failed = true
			if ctx.Err() != nil {
				break
			}
			continue
		}
		printer.Result(res)
	}

	if failed {
		return 1
	}
	return 0
}

func newLogger(w io.Writer, opts cli.Options) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: opts.NoColor,
		FullTimestamp: true,
	})
	logger.SetLevel(logrus.WarnLevel)
	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
