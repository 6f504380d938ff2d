package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/synadia-labs/utf8stats/internal/bufpool"
	"github.com/synadia-labs/utf8stats/report"
)

// CLI defines the utf8stats command-line interface.
//
// Every input is read whole, scanned once and summarized. The exit status
// is 1 when any input is not well-formed.
type CLI struct {
	Paths    []string `arg:"" optional:"" name:"path" help:"Files to check; none or '-' reads stdin"`
	Format   string   `short:"f" enum:"text,json,cbor,msgpack" default:"text" env:"UTF8STATS_FORMAT" help:"Report format (${enum})"`
	CBOR     bool     `name:"cbor" env:"UTF8STATS_CBOR" help:"Inputs are CBOR; check the UTF-8 of their text strings"`
	Truncate bool     `short:"t" help:"Write the well-formed prefix of each input instead of a report"`
	Quiet    bool     `short:"q" help:"Print no report; only set the exit status"`
	Verbose  bool     `short:"v" env:"UTF8STATS_VERBOSE" help:"Enable debug logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("utf8stats"),
		kong.Description("Validate UTF-8 input and report code point statistics."),
	)

	logger := newLogger(os.Stderr, &cli)
	valid, err := run(&cli, os.Stdin, os.Stdout, logger)
	ctx.FatalIfErrorf(err)
	if !valid {
		os.Exit(1)
	}
}

func newLogger(w io.Writer, cli *CLI) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	allow := level.AllowInfo()
	switch {
	case cli.Verbose:
		allow = level.AllowDebug()
	case cli.Quiet:
		allow = level.AllowError()
	}
	logger = level.NewFilter(logger, allow)
	return log.With(logger, "ts", log.DefaultTimestampUTC)
}

// run checks every input and writes the requested output. It reports
// whether all inputs were valid; the error is reserved for usage and I/O
// failures.
func run(cli *CLI, stdin io.Reader, stdout io.Writer, logger log.Logger) (bool, error) {
	format, err := report.ParseFormat(cli.Format)
	if err != nil {
		return false, err
	}
	if cli.Truncate && cli.CBOR {
		return false, errors.New("--truncate is not allowed with --cbor")
	}

	paths := cli.Paths
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	allValid := true
	reports := make([]report.Report, 0, len(paths))
	for _, path := range paths {
		r, err := checkInput(cli, path, stdin, stdout, logger)
		if err != nil {
			return false, err
		}
		allValid = allValid && r.Valid
		reports = append(reports, r)
	}
	level.Debug(logger).Log("msg", "checked inputs", "inputs", len(reports), "valid", allValid)

	if cli.Quiet || cli.Truncate {
		return allValid, nil
	}
	if err := report.Write(stdout, format, reports); err != nil {
		return false, fmt.Errorf("write report: %w", err)
	}
	return allValid, nil
}

func checkInput(cli *CLI, path string, stdin io.Reader, stdout io.Writer, logger log.Logger) (report.Report, error) {
	name := path
	if path == "-" {
		name = "<stdin>"
	}

	bb, err := readInput(path, stdin)
	if err != nil {
		return report.Report{}, err
	}
	defer bufpool.Put(bb)
	level.Debug(logger).Log("msg", "read input", "input", name, "size", bb.Len())

	var r report.Report
	if cli.CBOR {
		r = report.FromCBOR(name, bb.Bytes())
	} else {
		r = report.FromBytes(name, bb.Bytes())
	}
	if !r.Valid {
		level.Info(logger).Log("msg", "input is not well-formed", "input", name, "parsed_length", r.ParsedLength, "err", r.Error)
	}

	if cli.Truncate {
		if _, err := stdout.Write(r.Prefix(bb.Bytes())); err != nil {
			return r, fmt.Errorf("write %s: %w", name, err)
		}
	}
	return r, nil
}

// readInput reads a whole file, or stdin for "-", into a pooled buffer.
func readInput(path string, stdin io.Reader) (*bufpool.ByteBuffer, error) {
	if path == "-" {
		bb := bufpool.Get()
		if _, err := bb.ReadFrom(stdin); err != nil {
			bufpool.Put(bb)
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return bb, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var size int
	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
		size = int(info.Size())
	}
	bb := bufpool.GetMinSize(size)
	if _, err := bb.ReadFrom(f); err != nil {
		bufpool.Put(bb)
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return bb, nil
}
