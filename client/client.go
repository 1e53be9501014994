package main

import (
	"anonymity-service/errors"
	"anonymity-service/infrastructure/grpc/client"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
// AUTH_TOKEN is only sent on init, pause and resume.
type Config struct {
	ServerAddress string        `env:"REGISTRY_ADDR,default=localhost:8080"`
	AuthToken     string        `env:"AUTH_TOKEN"`
	Timeout       time.Duration `env:"CLIENT_TIMEOUT,default=10s"`
	LogLevel      string        `env:"LOG_LEVEL,default=INFO"`
}

const usage = `usage: client <command> [arguments]

commands:
  send <content>             store an anonymous message
  bulk <first> <second>      store two messages at once
  get <id>                   read a message
  exists <id>                check a message identifier
  count                      number of stored messages
  last                       identifier of the latest message
  status                     registry state
  init | pause | resume      owner only, requires AUTH_TOKEN`

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, color.Red.Sprintf("Client error: %v", err))
	}
	os.Exit(code)
}

func run(args []string) (int, error) {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if len(args) == 0 {
		fmt.Println(usage)
		return exitConfig, nil
	}

	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, config.Timeout)
	defer cancel()

	conn, err := grpc.NewClient(config.ServerAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to server at %s: %w", config.ServerAddress, err)
	}
	defer func() {
		log.Debug("Closing connection...")
		_ = conn.Close()
	}()

	registry := client.NewRegistryClient(conn).WithToken(config.AuthToken)
	out, err := execute(ctx, registry, args[0], args[1:])
	if err != nil {
		if code, ok := errors.CodeOf(err); ok {
			color.Yellow.Printf("(err u%d) %s\n", uint32(code), code)
			return exitRuntime, nil
		}
		return exitRuntime, err
	}
	color.Green.Println(out)
	return exitOK, nil
}

// execute runs one command and renders its result the way the ledger would.
func execute(ctx context.Context, registry *client.RegistryClient, command string, args []string) (string, error) {
	switch command {
	case "send":
		if len(args) != 1 {
			return "", fmt.Errorf("send expects exactly one content")
		}
		id, err := registry.SendAnonymousMessage(ctx, args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(ok u%d)", id), nil
	case "bulk":
		receipt, err := registry.SendBulkMessages(ctx, args...)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(ok {first-id: u%d, second-id: u%d})", receipt.FirstID, receipt.SecondID), nil
	case "get":
		id, err := parseID(args)
		if err != nil {
			return "", err
		}
		msg, found, err := registry.GetMessage(ctx, id)
		if err != nil {
			return "", err
		}
		if !found {
			return "none", nil
		}
		return fmt.Sprintf("(some {content: u%q, sender: none})", msg.Content), nil
	case "exists":
		id, err := parseID(args)
		if err != nil {
			return "", err
		}
		exists, err := registry.DoesMessageExist(ctx, id)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(exists), nil
	case "count":
		count, err := registry.GetMessageCount(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("u%d", count), nil
	case "last":
		id, err := registry.GetLastMessageID(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(ok u%d)", id), nil
	case "status":
		state, err := registry.GetServiceStatus(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s (owner: %s, messages: %d)", state.Status(), state.Owner, state.MessageCount), nil
	case "init":
		return "(ok true)", registry.Initialize(ctx)
	case "pause":
		return "(ok true)", registry.PauseService(ctx)
	case "resume":
		return "(ok true)", registry.ResumeService(ctx)
	default:
		return "", fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}

func parseID(args []string) (uint64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one message identifier")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid message identifier %q: %w", args[0], err)
	}
	return id, nil
}
