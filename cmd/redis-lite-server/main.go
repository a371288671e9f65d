// Command redis-lite-server runs the TCP listener described by
// redis-lite/server until interrupted.
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

	"redis-lite/server"
)

func main() {
	host := flag.String("host", "0.0.0.0", "address to bind")
	port := flag.Int("port", 6379, "port to bind")
	maxConnections := flag.Int64("max-connections", server.DefaultMaxConnections, "maximum concurrent connections")
	flag.Parse()

	addr := fmt.Sprintf("%s:%d", *host, *port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		slog.Error("listen failed", "addr", addr, "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.Info("listening", "addr", addr, "max_connections", *maxConnections)
	if err := server.Run(ctx, ln, server.Config{MaxConnections: *maxConnections}); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
