package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/tdh8316/igcheck/internal/candidate"
)

var ErrHelp = errors.New("help requested")

type Options struct {
	NoColor bool
	Verbose bool
	WithTor bool

	Emails    []string
	Usernames []string
	Timeout   time.Duration
	UserAgent string
}

// Demo candidates, checked when none are given.
var (
	DefaultEmails    = []string{"hector@gmail.com", "darungrim@gmail.com"}
	DefaultUsernames = []string{"hector", "darungrim"}
)

const usageText = `
usage:
  igcheck [flags] [-e EMAIL]... [-u USERNAME]...

Checks whether emails and usernames are free to register on Instagram.
Without -e/-u a small demonstration set is checked.

flags:
  -h, --help            show this help message and exit
  --no-color            disable colored stdout output
  -t, --tor             use tor proxy
  -v, --verbose         debug logging to stderr

options:
  -e, --email ADDR      email address to check (repeatable, comma separated)
  -u, --username NAME   username to check (repeatable, comma separated)
  --timeout SECONDS     HTTP request timeout (default: 60)
  --user-agent UA       user agent sent to Instagram (default: built-in)
`

// listFlag collects repeated and comma separated values.
type listFlag []string

func (l *listFlag) String() string { return fmt.Sprint([]string(*l)) }

func (l *listFlag) Set(v string) error {
	*l = append(*l, candidate.Split(v)...)
	return nil
}

func Parse(args []string, stdout, stderr io.Writer) (Options, error) {
	var opts Options
	var (
		help      bool
		timeoutS  int
		emails    listFlag
		usernames listFlag
	)

	fs := flag.NewFlagSet("igcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Usage = func() {
		_, _ = fmt.Fprint(stdout, usageText)
	}

	// Help
	fs.BoolVar(&help, "h", false, "show help")
	fs.BoolVar(&help, "help", false, "show help")

	// Behavior flags
	fs.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	fs.BoolVar(&opts.Verbose, "v", false, "verbose output")
	fs.BoolVar(&opts.Verbose, "verbose", false, "verbose output")
	fs.BoolVar(&opts.WithTor, "t", false, "use tor proxy")
	fs.BoolVar(&opts.WithTor, "tor", false, "use tor proxy")

	// Options
	fs.Var(&emails, "e", "email to check")
	fs.Var(&emails, "email", "email to check")
	fs.Var(&usernames, "u", "username to check")
	fs.Var(&usernames, "username", "username to check")
	fs.IntVar(&timeoutS, "timeout", 60, "request timeout in seconds")
	fs.StringVar(&opts.UserAgent, "user-agent", "", "user agent override")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if help {
		fs.Usage()
		return Options{}, ErrHelp
	}
	if fs.NArg() > 0 {
		return Options{}, fmt.Errorf("unexpected arguments %q; use -e or -u", fs.Args())
	}

	if timeoutS <= 0 {
		// Don't allow zero or negative timeouts; reset to default.
		timeoutS = 60
		if opts.NoColor {
			fmt.Fprintf(stdout, "[!] Invalid timeout value; using default of 60 seconds.\n")
		} else {
			fmt.Fprintf(color.Output, "[%s] Invalid timeout value; using default of %s.\n",
				color.HiRedString("!"),
				color.HiYellowString("60 seconds"),
			)
		}
	}
	opts.Timeout = time.Duration(timeoutS) * time.Second

	opts.Emails = emails
	opts.Usernames = usernames
	if len(opts.Emails) == 0 && len(opts.Usernames) == 0 {
		opts.Emails = append([]string(nil), DefaultEmails...)
		opts.Usernames = append([]string(nil), DefaultUsernames...)
	}

	return opts, nil
}
