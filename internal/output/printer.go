package output

import (
	"io"
	"log"

	"github.com/fatih/color"

	"github.com/tdh8316/igcheck/internal/instagram"
)

type Printer struct {
	noColor bool
	logger  *log.Logger
}

func NewPrinter(stdout io.Writer, noColor bool) *Printer {
	return &Printer{
		noColor: noColor,
		logger:  log.New(stdout, "", 0),
	}
}

// Result prints one finished check: [+] available, [-] taken.
func (p *Printer) Result(res instagram.Result) {
	if res.Available {
		if p.noColor {
			p.logger.Printf("[%s] %s %s: %s", "+", res.Field, res.Value, "available")
		} else {
			p.logger.Printf("[%s] %s %s: %s",
				color.HiGreenString("+"), res.Field, color.HiWhiteString(res.Value), color.HiGreenString("available"))
		}
		return
	}

	reason := ""
	if res.Response != nil {
		if msgs := res.Response.FieldErrors(res.Field); len(msgs) > 0 {
			reason = " (" + msgs[0] + ")"
		}
	}
	if p.noColor {
		p.logger.Printf("[%s] %s %s: %s%s", "-", res.Field, res.Value, "taken", reason)
	} else {
		p.logger.Printf("[%s] %s %s: %s%s",
			color.HiRedString("-"), res.Field, color.HiWhiteString(res.Value), color.HiYellowString("taken"), reason)
	}
}

// Error prints a check that could not be answered.
func (p *Printer) Error(field instagram.Field, value string, err error) {
	if p.noColor {
		p.logger.Printf("[%s] %s %s: ERROR: %s", "!", field, value, err.Error())
		return
	}
	p.logger.Printf("[%s] %s %s: %s: %s",
		color.HiRedString("!"),
		field,
		value,
		color.HiMagentaString("ERROR"),
		color.HiRedString(err.Error()),
	)
}

// Info prints a status line such as "[i] Session established".
func (p *Printer) Info(msg string) {
	if p.noColor {
		p.logger.Printf("[%s] %s", "i", msg)
		return
	}
	p.logger.Printf("[%s] %s", color.HiBlueString("i"), msg)
}

// Warn prints a non fatal notice.
func (p *Printer) Warn(msg string) {
	if p.noColor {
		p.logger.Printf("[%s] %s", "!", msg)
		return
	}
	p.logger.Printf("[%s] %s", color.HiRedString("!"), color.HiYellowString(msg))
}
