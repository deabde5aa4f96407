package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/MegaMek/megamek-sub083/agent"
	"github.com/MegaMek/megamek-sub083/history"
	"github.com/MegaMek/megamek-sub083/ipc"
	"github.com/MegaMek/megamek-sub083/model"
	"github.com/MegaMek/megamek-sub083/profile"
	"github.com/MegaMek/megamek-sub083/trace"
)

const banner = `
██╗   ██╗████████╗██╗██╗     ██╗████████╗██╗   ██╗
██║   ██║╚══██╔══╝██║██║     ██║╚══██╔══╝╚██╗ ██╔╝
██║   ██║   ██║   ██║██║     ██║   ██║    ╚████╔╝
██║   ██║   ██║   ██║██║     ██║   ██║     ╚██╔╝
╚██████╔╝   ██║   ██║███████╗██║   ██║      ██║
 ╚═════╝    ╚═╝   ╚═╝╚══════╝╚═╝   ╚═╝      ╚═╝

Utility-Scored Tactical Decisions`

func main() {
	var (
		socketPath  = flag.String("socket", "/tmp/utility-bot.sock", "unix socket to listen on")
		profilePath = flag.String("profile", "", "bot profile YAML (default: built-in balanced profile)")
		dumpProfile = flag.Bool("dump-profile", false, "print the built-in profile as YAML and exit")
		traceDir    = flag.String("trace-dir", "", "directory for compressed ranking traces (disabled if empty)")
		historyDB   = flag.String("history", "", "SQLite file for ranking history (disabled if empty)")
		workers     = flag.Int("workers", 4, "candidates scored concurrently")
		topN        = flag.Int("top", 10, "decisions kept per recorded pass (0 keeps all)")
		debug       = flag.Bool("debug", false, "record per-decision debug text in traces")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if *dumpProfile {
		raw, err := profile.Marshal(profile.Compile(model.DefaultBehaviorSettings()))
		if err != nil {
			slog.Error("failed to render profile", "error", err)
			os.Exit(1)
		}
		os.Stdout.Write(raw)
		return
	}

	fmt.Println(banner)

	cfg := agent.Config{Workers: *workers, TopN: *topN, Debug: *debug}
	if *profilePath != "" {
		p, err := profile.Load(*profilePath)
		if err != nil {
			slog.Error("failed to load profile", "path", *profilePath, "error", err)
			os.Exit(1)
		}
		cfg.Profile = p
	} else {
		cfg.Profile = profile.Default(model.DefaultBehaviorSettings())
	}
	slog.Info("starting utility bot",
		"profile", cfg.Profile.Name,
		"decisions", len(cfg.Profile.Decisions),
		"considerations", cfg.Profile.Considerations(),
		"workers", *workers,
	)

	if *traceDir != "" {
		cfg.Trace = trace.NewPassLogger(*traceDir)
		defer cfg.Trace.Close()
		slog.Info("tracing ranking passes", "dir", *traceDir)
	}
	if *historyDB != "" {
		store, err := history.Open(*historyDB)
		if err != nil {
			slog.Error("failed to open history", "path", *historyDB, "error", err)
			os.Exit(1)
		}
		defer store.Close()
		cfg.History = store
		if turn, err := store.LastTurn(); err == nil && turn > 0 {
			slog.Info("history resumed", "path", *historyDB, "lastTurn", turn)
		}
	}

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(*socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", *socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(*socketPath)

	slog.Info("listening on domain socket", "path", *socketPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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
			go handleConn(conn, cfg)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
}

func handleConn(conn net.Conn, cfg agent.Config) {
	c := ipc.NewConnection(conn, nil)
	a := agent.New(c, cfg)
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeGameState, a.HandleGameState)
	c.ReadLoop()
}
