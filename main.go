package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/nstehr/anion/agent"
	"github.com/nstehr/anion/brain"
	"github.com/nstehr/anion/config"
	"github.com/nstehr/anion/ipc"
)

const banner = `
 █████╗ ███╗   ██╗██╗ ██████╗ ███╗   ██╗
██╔══██╗████╗  ██║██║██╔═══██╗████╗  ██║
███████║██╔██╗ ██║██║██║   ██║██╔██╗ ██║
██╔══██║██║╚██╗██║██║██║   ██║██║╚██╗██║
██║  ██║██║ ╚████║██║╚██████╔╝██║ ╚████║
╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝ ╚═════╝ ╚═╝  ╚═══╝

Utility-Driven Territory Control`

func main() {
	var (
		configPath = flag.String("config", "", "bot file (YAML)")
		brainName  = flag.String("brain", "", "brain to play: "+strings.Join(brain.Names(), ", "))
		logPath    = flag.String("log", "", "log file (default stderr)")
		verbose    = flag.Bool("v", false, "debug logging")
		seed       = flag.Int64("seed", 0, "seed for randomised brains (default: time)")
		listen     = flag.String("listen", "", "serve framed envelopes on this unix socket instead of stdin/stdout")
		wsAddr     = flag.String("ws", "", "serve envelopes over websocket on this address")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [KEY=VALUE ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	if *brainName != "" {
		cfg.Brain = *brainName
	}
	if *logPath != "" {
		cfg.Log.File = *logPath
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.ApplyOverrides(flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// stdout carries the game protocol, so logs never go there.
	var out io.Writer = os.Stderr
	if cfg.Log.File != "" {
		f, err := os.Create(cfg.Log.File)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	opts := agent.Options{
		Brain:  cfg.Brain,
		Params: cfg.Params,
		Rules:  cfg.RuleSet(),
		Seed:   *seed,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch {
	case *listen != "":
		fmt.Fprintln(os.Stderr, banner)
		err = serveSocket(ctx, *listen, opts)
	case *wsAddr != "":
		fmt.Fprintln(os.Stderr, banner)
		err = serveWebSocket(ctx, *wsAddr, opts)
	default:
		a := agent.New(opts, logger)
		err = agent.RunHalite(ctx, ipc.NewHalite(os.Stdin, os.Stdout), a)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("bot stopped", "error", err)
		os.Exit(1)
	}
}

func serveSocket(ctx context.Context, socketPath string, opts agent.Options) error {
	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(socketPath); err != nil {
		return fmt.Errorf("clean up socket %s: %w", socketPath, err)
	}
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", socketPath, err)
	}
	defer listener.Close()
	defer os.Remove(socketPath)

	slog.Info("listening on domain socket", "path", socketPath)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go handleConn(ipc.NewConnection(ipc.Stream(conn), nil), opts)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	return nil
}

func serveWebSocket(ctx context.Context, addr string, opts agent.Options) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", ipc.WebSocketHandler(func(c *ipc.Connection) { handleConn(c, opts) }))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("websocket server shutdown", "error", err)
		}
	}()

	slog.Info("listening for websocket sessions", "addr", addr, "path", "/ws")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

var sessions atomic.Int64

// handleConn plays one game per connection.
func handleConn(c *ipc.Connection, opts agent.Options) {
	c.Session = strconv.FormatInt(sessions.Add(1), 10)
	a := agent.New(opts, slog.Default().With("session", c.Session))
	c.RegisterHandler(ipc.TypeInit, a.HandleInit())
	c.RegisterHandler(ipc.TypeFrame, a.HandleFrame())
	c.RegisterHandler(ipc.TypeEnd, a.HandleEnd())
	c.ReadLoop()
}
