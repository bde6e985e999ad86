package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/memscope/memscope/internal/config"
	"github.com/memscope/memscope/internal/logging"
	intOtel "github.com/memscope/memscope/internal/otel"
)

// BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.1.0"
	BuildDate      string = "unknown"

	AppName string = "memscope"
)

// app holds everything set up before a command runs and torn down after.
type app struct {
	out io.Writer
	in  io.Reader

	slogManager *logging.SlogManager
	log         *slog.Logger
	session     *logging.SessionContext
	otel        *intOtel.Provider

	// logFile receives slog text lines and, when enabled, OTel exports.
	logFile     io.Writer
	logFilePath string
	closers     []io.Closer

	sessionStart time.Time
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run parses flags, sets up the ambient stack and dispatches to a command.
// It returns the process exit code.
func run(args []string, in io.Reader, out io.Writer) int {
	fs := config.NewFlagSet(AppName)
	fs.SetOutput(out)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}

	a := &app{
		out:          out,
		in:           in,
		slogManager:  logging.NewSlogManager(),
		session:      &logging.SessionContext{},
		sessionStart: time.Now(),
	}
	a.slogManager.SetContextProvider(a.session.Attrs)
	defer a.shutdown()

	configDir, _ := fs.GetString("config-dir")
	a.setup(configDir, fs)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, cmdArgs := "run", fs.Args()
	if len(cmdArgs) > 0 {
		cmd, cmdArgs = strings.ToLower(cmdArgs[0]), cmdArgs[1:]
	}

	err := a.dispatch(ctx, cmd, cmdArgs)
	if err == nil {
		return 0
	}

	a.log.Error("Command failed", "command", cmd, "error", err)
	fmt.Fprintf(out, "Error: %v\n", err)
	if !config.GetBool("noPrompt") {
		pause(in, out)
	}
	return 1
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "run":
		return a.runLoop(ctx, config.GetLoopConfig().Mode)
	case "overlay", "headless":
		return a.runLoop(ctx, cmd)
	case "snapshot":
		return a.snapshot()
	case "offsets":
		return a.offsets()
	case "show":
		return a.show(args)
	case "version":
		fmt.Fprintf(a.out, "%s %s (built %s)\n", AppName, CurrentVersion, BuildDate)
		return nil
	default:
		return fmt.Errorf("unknown command %q (want run, overlay, headless, snapshot, offsets, show or version)", cmd)
	}
}

// setup loads config and brings up logging in the same order every command
// sees: console logging, config, log file, OTel, then file logging.
func (a *app) setup(configDir string, fs *pflag.FlagSet) {
	a.slogManager.Setup(nil, "info", nil)
	a.log = a.slogManager.Logger()

	if err := config.Load(configDir); err != nil {
		a.log.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		a.log.Info("Loaded config", "dir", configDir)
	}
	if err := config.BindFlags(fs); err != nil {
		a.log.Warn("Failed to bind flags", "error", err)
	}

	logCfg := config.GetLogConfig()
	a.slogManager.SetLevel(logCfg.Level)
	a.logFilePath = logging.LogFilePath(logCfg.Dir, AppName, a.sessionStart)
	file, err := logging.OpenLogFile(a.logFilePath, logging.RotationConfig{
		MaxSizeMB:  logCfg.MaxSizeMB,
		MaxBackups: logCfg.MaxBackups,
		MaxAgeDays: logCfg.MaxAgeDays,
	})
	if err != nil {
		a.log.Error("Failed to create/open log file!", "error", err, "path", a.logFilePath)
	} else {
		a.logFile = file
		a.closers = append(a.closers, file)
	}

	a.setupOTel()

	var extra []slog.Handler
	if gl := config.GetGraylogConfig(); gl.Enabled {
		h, closer, err := logging.NewGELFHandler(gl.Address, logCfg.Level)
		if err != nil {
			a.log.Error("Failed to connect to Graylog", "error", err, "address", gl.Address)
		} else {
			extra = append(extra, h)
			a.closers = append(a.closers, closer)
		}
	}

	var otelLogProvider *sdklog.LoggerProvider
	if a.otel != nil {
		otelLogProvider = a.otel.LoggerProvider()
	}
	a.slogManager.Setup(a.logFile, logCfg.Level, otelLogProvider, extra...)
	a.log = a.slogManager.Logger()
	a.log.Info("Starting up...", "version", CurrentVersion, "build", BuildDate, "logFile", a.logFilePath)
}

func (a *app) setupOTel() {
	otelCfg := config.GetOTelConfig()
	if !otelCfg.Enabled {
		return
	}

	p, err := intOtel.New(intOtel.Config{
		Enabled:        otelCfg.Enabled,
		ServiceName:    otelCfg.ServiceName,
		BatchTimeout:   otelCfg.BatchTimeout,
		LogWriter:      a.logFile,
		Endpoint:       otelCfg.Endpoint,
		Insecure:       otelCfg.Insecure,
		MetricWriter:   a.logFile,
		MetricInterval: otelCfg.MetricInterval,
	})
	if err != nil {
		a.log.Error("Failed to initialize OTel provider", "error", err)
		return
	}
	a.otel = p
	if otelCfg.Endpoint != "" {
		a.log.Info("OTel provider initialized", "file", a.logFilePath, "endpoint", otelCfg.Endpoint)
	} else {
		a.log.Info("OTel provider initialized", "file", a.logFilePath)
	}
}

func (a *app) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.log != nil {
		a.log.Info("Shutting down")
	}
	if err := a.slogManager.Flush(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "flushing logs: %v\n", err)
	}
	if a.otel != nil {
		if err := a.otel.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "shutting down OTel: %v\n", err)
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

// pause waits for Enter so a console window opened by double-click stays up
// long enough to read the error.
func pause(in io.Reader, out io.Writer) {
	fmt.Fprintln(out, "Press Enter to exit...")
	_, _ = bufio.NewReader(in).ReadString('\n')
}
