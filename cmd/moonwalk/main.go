package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"moonwalk/internal/config"
	"moonwalk/internal/core/macro"
)

type options struct {
	configPath     string
	configRequired bool
	backend        string
	logLevel       slog.Level
	logFile        bool
	logPath        string
	applyHotkeys   bool
	listDevices    bool
	runAction      string
}

type lineSinkWriter struct {
	sink  func(line string)
	mu    sync.Mutex
	lines bytes.Buffer
}

func (w *lineSinkWriter) Write(p []byte) (int, error) {
	if w.sink == nil {
		return len(p), nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	total := len(p)
	for len(p) > 0 {
		idx := bytes.IndexByte(p, '\n')
		if idx == -1 {
			_, _ = w.lines.Write(p)
			break
		}
		_, _ = w.lines.Write(p[:idx])
		line := strings.TrimSpace(w.lines.String())
		w.lines.Reset()
		if line != "" {
			w.sink(line)
		}
		p = p[idx+1:]
	}
	return total, nil
}

// newSlogLogger writes to stderr and the UI sink only when DEBUG=1. The log
// file, when given, always receives records.
func newSlogLogger(level slog.Level, sink func(line string), file io.Writer) *slog.Logger {
	writers := make([]io.Writer, 0, 3)
	if debugLogsEnabled() {
		writers = append(writers, os.Stderr)
		if sink != nil {
			writers = append(writers, &lineSinkWriter{sink: sink})
		}
	}
	if file != nil {
		writers = append(writers, file)
	}

	out := io.Discard
	if len(writers) > 0 {
		out = io.MultiWriter(writers...)
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
}

func debugLogsEnabled() bool {
	return strings.TrimSpace(os.Getenv("DEBUG")) == "1"
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid --log-level %q (expected debug|info|warning|error)", value)
	}
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options
	flags := flag.NewFlagSet("moonwalk", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var backendRaw string
	var logLevelRaw string

	flags.StringVar(&opts.configPath, "config", "", "Startup settings file (TOML). Defaults to moonwalk.toml in the user config dir; never written.")
	flags.StringVar(&backendRaw, "backend", "auto", "Input backend. Linux: auto|wayland|x11. Windows: auto|windows.")
	flags.StringVar(&logLevelRaw, "log-level", "info", "Log verbosity (default: info). Allowed: debug, info, warning, error.")
	flags.BoolVar(&opts.logFile, "logfile", false, "Also write logs to a rotating file in the user log dir.")
	flags.StringVar(&opts.logPath, "logfile-path", "", "Override the rotating log file location (implies --logfile).")
	flags.BoolVar(&opts.applyHotkeys, "apply-hotkeys", false, "Register the configured hotkeys at startup.")
	flags.BoolVar(&opts.listDevices, "list-devices", false, "Print available input devices and exit.")
	flags.StringVar(&opts.runAction, "run", "", "Run one macro without the GUI and exit: offset|clip.")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	if flags.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}

	flags.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			opts.configRequired = true
		}
	})
	if opts.logPath != "" {
		opts.logFile = true
	}
	if opts.runAction != "" {
		if _, err := macro.ParseAction(opts.runAction); err != nil {
			return opts, fmt.Errorf("invalid --run: %w", err)
		}
	}

	level, err := parseLogLevel(logLevelRaw)
	if err != nil {
		return opts, err
	}
	backend, err := parseBackendChoice(backendRaw)
	if err != nil {
		return opts, err
	}

	opts.logLevel = level
	opts.backend = backend
	return opts, nil
}

func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES)
}

func loadStartupConfig(fs afero.Fs, opts options, dirs appDirs) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = dirs.defaultConfigPath()
	}
	return config.Load(fs, path, opts.configRequired)
}

func runOnce(opts options, cfg config.Config, logger *slog.Logger, stderr io.Writer) int {
	action, _ := macro.ParseAction(opts.runAction)

	injector, err := openInjector(opts.backend, logger)
	if err != nil {
		if isPermissionError(err) {
			fmt.Fprintln(stderr, permissionDeniedHint())
			return 1
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer injector.Close()

	sequencer, err := macro.NewSequencer(injector, clockwork.NewRealClock(), logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	out := macro.Classify(action, sequencer.Run(action, cfg))
	fmt.Fprintln(stderr, out.Message)
	if out.Kind != macro.KindSuccess {
		return 1
	}
	return 0
}

func run(args []string, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.listDevices {
		if err := listInputDevices(opts.backend); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	dirs := newAppDirs()
	var logFile io.WriteCloser
	if opts.logFile {
		var path string
		logFile, path, err = openLogFile(opts.logPath, dirs)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer logFile.Close()
		opts.logPath = path
	}

	cfg, cfgErr := loadStartupConfig(afero.NewOsFs(), opts, dirs)
	if cfgErr != nil && opts.configRequired {
		fmt.Fprintln(stderr, cfgErr)
		return 2
	}

	if opts.runAction != "" {
		logger := newSlogLogger(opts.logLevel, nil, writerOrNil(logFile))
		if cfgErr != nil {
			logger.Warn("Ignoring startup config", "err", cfgErr)
		}
		return runOnce(opts, cfg, logger, stderr)
	}

	if err := runUI(opts, cfg, cfgErr, writerOrNil(logFile)); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func writerOrNil(w io.WriteCloser) io.Writer {
	if w == nil {
		return nil
	}
	return w
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
