package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/va6996/newsletter-agent/agents"
	"github.com/va6996/newsletter-agent/bootstrap"
	"github.com/va6996/newsletter-agent/config"
	"github.com/va6996/newsletter-agent/content"
	logcontext "github.com/va6996/newsletter-agent/context"
	"github.com/va6996/newsletter-agent/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// shutdownTimeout bounds how long serve waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// DefaultQuery is sent by "run" when no query is given.
const DefaultQuery = "what is the value of magic_function(3)?"

const usage = `Usage: newsletter-agent [-config config.yaml] <command> [args]

Commands:
  chat           interactive conversation (default)
  run [query]    answer a single query and exit
  serve          serve POST /v1/chat over HTTP
  context        print the assembled priming context
`

func main() {
	configPath := flag.String("config", config.DefaultFile, "path to the YAML config file")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()
	log.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info(context.Background(), "Program terminated externally. Exiting...")
		cancel()
	}()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatalf(ctx, "Failed to load config: %v", err)
	}
	if err := log.Configure(cfg.Log.Level); err != nil {
		log.Fatalf(ctx, "%v", err)
	}

	command := flag.Arg(0)
	if command == "" {
		command = "chat"
	}

	if command == "context" {
		fmt.Println(content.AssembleContext(bootstrap.ContentPaths(cfg.Content)))
		return
	}

	app, err := bootstrap.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf(ctx, "Setup failed: %v", err)
	}

	switch command {
	case "run":
		query := strings.Join(flag.Args()[1:], " ")
		if strings.TrimSpace(query) == "" {
			query = DefaultQuery
		}
		if err := runOnce(ctx, app, query, os.Stdout); err != nil {
			log.Fatalf(ctx, "Run failed: %v", err)
		}
	case "chat":
		editor := app.NewEditor(ctx, "", "chat", app.Primer())
		ctx = logcontext.WithSessionID(ctx, editor.SessionID())
		if err := agents.RunREPL(ctx, editor, os.Stdin, os.Stdout); err != nil {
			log.Fatalf(ctx, "Chat failed: %v", err)
		}
	case "serve":
		serve(ctx, app, cfg.Server.Port)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runOnce(ctx context.Context, app *bootstrap.App, query string, out io.Writer) error {
	editor := app.NewEditor(ctx, "", "run", app.Primer())
	reply, err := editor.Invoke(ctx, query)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, reply)
	return err
}

func serve(ctx context.Context, app *bootstrap.App, port string) {
	// Content is read once at startup and shared by all sessions.
	primer := app.Primer()
	var transcripts TranscriptReader
	if app.Store != nil {
		transcripts = app.Store
	}
	chat := NewChatServer(func(ctx context.Context, sessionID string) *agents.Editor {
		return app.NewEditor(ctx, sessionID, "serve", primer)
	}, transcripts)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: h2c.NewHandler(withCORS(chat.Handler()), &http2.Server{}),
	}

	go func() {
		<-ctx.Done()
		log.Info(context.Background(), "Shutting down server...")
		if err := shutdownServer(srv, shutdownTimeout); err != nil {
			log.Errorf(context.Background(), "Server shutdown failed: %v", err)
		}
	}()

	log.Infof(ctx, "Starting server on port %s", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf(ctx, "Server failed: %v", err)
	}
}

// shutdownServer stops srv, waiting at most timeout for in-flight requests.
func shutdownServer(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
