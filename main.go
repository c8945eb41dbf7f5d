package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nstehr/stp/stp-core/agent"
	"github.com/nstehr/stp/stp-core/config"
	"github.com/nstehr/stp/stp-core/decisionlog"
	"github.com/nstehr/stp/stp-core/ipc"
	"github.com/nstehr/stp/stp-core/play"
)

const banner = `
███████╗████████╗██████╗
██╔════╝╚══██╔══╝██╔══██╗
███████╗   ██║   ██████╔╝
╚════██║   ██║   ██╔═══╝
███████║   ██║   ██║
╚══════╝   ╚═╝   ╚═╝

Skills, Tactics and Plays`

func main() {
	configPath := flag.String("config", "stp.yaml", "path to the YAML config file")
	flag.Parse()

	if err := config.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	slog.Info("starting stp",
		"config", *configPath,
		"commit_window_s", cfg.CornerKick.MaxTimeCommitToPassSeconds,
		"decision_log", cfg.DecisionLog.Path,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []play.Option
	var wg sync.WaitGroup
	if cfg.DecisionLog.Path != "" {
		store, err := decisionlog.Open(cfg.DecisionLog.Path, cfg.DecisionLog.QueueSize)
		if err != nil {
			slog.Error("failed to open decision log", "path", cfg.DecisionLog.Path, "error", err)
			os.Exit(1)
		}
		defer store.Close()
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Run(ctx)
		}()
		// Flush queued decisions before the store closes.
		defer wg.Wait()
		opts = append(opts, play.WithRecorder(store))
	}

	factories := []play.Factory{
		play.CornerKickFactory(cfg.CornerKick, cfg.Passing, opts...),
	}

	socketPath := cfg.Server.SocketPath

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", socketPath, "error", err)
		os.Exit(1)
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
			go handleConn(ctx, conn, factories)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
}

func handleConn(ctx context.Context, conn net.Conn, factories []play.Factory) {
	c := ipc.NewConnection(conn)
	a, err := agent.New(c, factories...)
	if err != nil {
		slog.Error("failed to create agent", "error", err)
		conn.Close()
		return
	}
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeWorld, a.HandleWorld)
	if err := c.Serve(ctx); err != nil {
		slog.Error("connection failed", "team", c.Team(), "error", err)
	}
}
