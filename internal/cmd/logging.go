package cmd

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag"
)

type logFormat int8

const (
	formatAuto logFormat = iota
	formatPretty
	formatPlain
	formatJSON
)

var logLevelNames = map[zerolog.Level][]string{
	zerolog.DebugLevel: {"debug"},
	zerolog.InfoLevel:  {"info"},
	zerolog.WarnLevel:  {"warn"},
	zerolog.ErrorLevel: {"error"},
}

var logFormatNames = map[logFormat][]string{
	formatAuto:   {""},
	formatPretty: {"pretty"},
	formatPlain:  {"plain"},
	formatJSON:   {"json"},
}

type logOptions struct {
	level  zerolog.Level
	format logFormat
}

func (o *logOptions) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.Var(enumflag.New(&o.level, "level", logLevelNames, enumflag.EnumCaseInsensitive),
		"log-level", "Log level: debug, info, warn or error")
	flags.Var(enumflag.New(&o.format, "format", logFormatNames, enumflag.EnumCaseInsensitive),
		"log-format", "Log format: pretty, plain or json (default pretty on a terminal, plain otherwise)")
}

// configure installs the global logger writing to w.
func (o *logOptions) configure(w io.Writer, cmd *cobra.Command) {
	format := o.format
	if format == formatAuto {
		format = formatPlain
		if isTerminal(w) {
			format = formatPretty
		}
	}

	zerolog.SetGlobalLevel(o.level)
	out := w
	if format != formatJSON {
		out = zerolog.ConsoleWriter{Out: w, NoColor: format == formatPlain}
	}
	log.Logger = zerolog.New(out).With().
		Timestamp().
		Str("command", cmd.CommandPath()).
		Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
