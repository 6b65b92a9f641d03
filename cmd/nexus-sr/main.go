// Command nexus-sr previews what a screen reader announces for
// accessibility nodes.
//
// Usage:
//
//	nexus-sr -in node.json                  # preview one node or an array of nodes
//	cat nodes.yaml | nexus-sr -in - -format json
//	nexus-sr -serve :8090                   # HTTP API on addr
//	nexus-sr -config inspector.yaml -http   # HTTP API on http.addr
//	nexus-sr -mcp                           # MCP tools over stdio
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/nexus-a11y/inspector"
	"github.com/hazyhaar/nexus-a11y/kit"
	"github.com/hazyhaar/nexus-a11y/srpreview"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to inspector.yaml config file")
	inPath := flag.String("in", "", "node file to preview (JSON or YAML, - for stdin)")
	format := flag.String("format", "", "output format: text or json (default: text on a terminal)")
	joiner := flag.String("joiner", "", "override the preview separator")
	serveAddr := flag.String("serve", "", "serve the HTTP API on addr (empty uses config http.addr)")
	serve := flag.Bool("http", false, "serve the HTTP API")
	mcpMode := flag.Bool("mcp", false, "serve MCP tools over stdio")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	flag.Parse()

	cfg := &inspector.Config{}
	if *configPath != "" {
		c, err := inspector.LoadConfigFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "nexus-sr:", err)
			os.Exit(1)
		}
		cfg = c
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *serveAddr != "" {
		cfg.HTTP.Addr = *serveAddr
		*serve = true
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := inspector.New(cfg, logger)

	var err error
	switch {
	case *mcpMode:
		err = runMCP(ctx, svc)
	case *serve:
		err = runHTTP(ctx, logger, svc)
	case *inPath != "":
		out := *format
		if out == "" {
			out = "json"
			if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				out = "text"
			}
		}
		var opts []srpreview.PreviewOption
		if isFlagSet("joiner") {
			opts = append(opts, srpreview.WithJoiner(*joiner))
		}
		err = runPreview(ctx, svc, *inPath, out, os.Stdin, os.Stdout, opts...)
	default:
		fmt.Fprintln(os.Stderr, "usage: nexus-sr -in <file|-> [-format text|json] | -serve <addr> | -mcp")
		os.Exit(2)
	}
	if err != nil {
		logger.Error("nexus-sr: fatal", "error", err)
		os.Exit(1)
	}
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// runPreview decodes the nodes at path and writes one preview per node.
func runPreview(ctx context.Context, svc *inspector.Service, path, format string, stdin io.Reader, w io.Writer, opts ...srpreview.PreviewOption) error {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		defer f.Close()
		r = f
	}
	data, err := inspector.ReadLimited(r, svc.Config().MaxBodyBytes)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	nodes, err := inspector.DecodeNodes(data, inspector.FormatForPath(path))
	if err != nil {
		return err
	}
	results := svc.InspectBatch(kit.WithTransport(ctx, "cli"), nodes, opts...)

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	case "text":
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeText(w, r)
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

// writeText prints the preview line followed by an aligned kind/text table.
func writeText(w io.Writer, r *inspector.Result) {
	if r.Preview == "" {
		fmt.Fprintln(w, "(silent)")
		return
	}
	fmt.Fprintln(w, r.Preview)

	width := 0
	for _, s := range r.Segments {
		if n := runewidth.StringWidth(string(s.Kind)); n > width {
			width = n
		}
	}
	for _, s := range r.Segments {
		line := "  " + runewidth.FillRight(string(s.Kind), width) + "  " + s.Text
		if s.Data != nil && s.Data.Truncated {
			line += " …"
		}
		fmt.Fprintln(w, line)
	}
}

func runMCP(ctx context.Context, svc *inspector.Service) error {
	srv := mcp.NewServer(&mcp.Implementation{Name: "nexus-sr", Version: version}, nil)
	svc.RegisterMCP(srv)
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp: %w", err)
	}
	return nil
}

func runHTTP(ctx context.Context, logger *slog.Logger, svc *inspector.Service) error {
	srv := &http.Server{
		Addr:              svc.Config().HTTP.Addr,
		Handler:           svc.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("nexus-sr: listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("nexus-sr: stopped")
	return nil
}
