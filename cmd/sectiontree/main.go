/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// sectiontree explores a section tree described in YAML (see package tree) and
// prints every combination of sections it visits, in the order a test body
// with the same sections would visit them. It is useful to check how many
// passes a nested set of sections costs before writing the test.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/hyperledger-labs/sections/pkg/explorer"
	"github.com/hyperledger-labs/sections/pkg/logging"
	"github.com/hyperledger-labs/sections/pkg/sections"
	"github.com/hyperledger-labs/sections/pkg/tree"
)

type arguments struct {
	input    *os.File
	logLevel logging.LogLevel
	logger   string
	noColor  bool
	quiet    bool
	expect   int
}

func parseArgs(args []string) (*arguments, error) {
	app := kingpin.New("sectiontree", "Utility for exploring the combinations of a section tree.")
	input := app.Flag("input", "The tree file to read (defaults to stdin).").Default(os.Stdin.Name()).File()
	logLevel := app.Flag("logLevel", "The level of the exploration logs written to stderr.").Default("warn").Enum("debug", "info", "warn", "error")
	logger := app.Flag("logger", "The logging library writing the exploration logs.").Default("zerolog").Enum("zerolog", "zap")
	noColor := app.Flag("noColor", "Do not color the output.").Default("false").Bool()
	quiet := app.Flag("quiet", "Only print the summary, not every pass.").Default("false").Bool()
	expect := app.Flag("expect", "Fail unless exactly this many combinations are explored.").Default("0").Int()

	_, err := app.Parse(args)
	if err != nil {
		return nil, err
	}

	if *expect < 0 {
		return nil, errors.Errorf("cannot expect a negative number of combinations")
	}

	level, ok := logging.ParseLevel(*logLevel)
	if !ok {
		return nil, errors.Errorf("unknown log level %q", *logLevel)
	}

	return &arguments{
		input:    *input,
		logLevel: level,
		logger:   *logger,
		noColor:  *noColor,
		quiet:    *quiet,
		expect:   *expect,
	}, nil
}

// newLogger builds the exploration logger. The returned function flushes it.
func (a *arguments) newLogger(output io.Writer) (logging.Logger, func()) {
	switch a.logger {
	case "zap":
		levels := map[logging.LogLevel]zapcore.Level{
			logging.LevelDebug: zapcore.DebugLevel,
			logging.LevelInfo:  zapcore.InfoLevel,
			logging.LevelWarn:  zapcore.WarnLevel,
			logging.LevelError: zapcore.ErrorLevel,
		}
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(output),
			levels[a.logLevel],
		)
		logger := zap.New(core).Named("sectiontree")
		return logging.NewZapLogger(logger), func() { logger.Sync() }
	default:
		levels := map[logging.LogLevel]zerolog.Level{
			logging.LevelDebug: zerolog.DebugLevel,
			logging.LevelInfo:  zerolog.InfoLevel,
			logging.LevelWarn:  zerolog.WarnLevel,
			logging.LevelError: zerolog.ErrorLevel,
		}
		logger := zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			NoColor:    a.noColor,
			TimeFormat: "15:04:05.000",
		}).Level(levels[a.logLevel]).With().Timestamp().Logger()
		return logging.NewZerologLogger(logger), func() {}
	}
}

func (a *arguments) execute(output, errOutput io.Writer) error {
	defer a.input.Close()

	t, err := tree.Load(a.input, a.input.Name())
	if err != nil {
		return errors.WithMessage(err, "bad input file")
	}

	logger, flush := a.newLogger(errOutput)
	defer flush()

	x := explorer.New(
		explorer.LoggerOpt(logging.Decorate(logger, "", "tree", t.Name)),
		explorer.OutputOpt(errOutput),
	)

	d := &display{
		output:  output,
		noColor: a.noColor,
	}

	err = sections.Run(x, func(s *sections.S) error {
		if !a.quiet {
			d.pass(x.Passes(), s.Active())
		}
		return t.Walk(s)
	})
	if err != nil {
		return err
	}

	d.summary(t.Name, x.Passes())

	if a.expect != 0 && a.expect != x.Passes() {
		return errors.Errorf("explored %d combinations, expected %d", x.Passes(), a.expect)
	}

	return nil
}

func main() {
	kingpin.Version("0.0.1")
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		kingpin.Fatalf("failed to parse arguments, %s, try --help", err)
	}
	err = args.execute(os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "")
		kingpin.Fatalf("%s", err)
	}
}
