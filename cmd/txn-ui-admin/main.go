package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerview/txn-ui-api/internal/adapters/jwtdecode"
	redisadapter "github.com/ledgerview/txn-ui-api/internal/adapters/redis"
	"github.com/ledgerview/txn-ui-api/internal/bootstrap"
	"github.com/ledgerview/txn-ui-api/internal/ports"
	"github.com/ledgerview/txn-ui-api/internal/util"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage()
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cmdCtx := &commandContext{Ctx: context.Background(), Logger: logger}
	if err := cmd.run(cmdCtx, os.Args[2:]); err != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"hash-password": {
			name:        "hash-password",
			description: "Produce a bcrypt hash for AUTH_ADMIN_PASSWORD_HASH",
			run:         runHashPassword,
		},
		"token-purge": {
			name:        "token-purge",
			description: "Delete the persisted credential for a session id",
			run:         runTokenPurge,
		},
		"token-inspect": {
			name:        "token-inspect",
			description: "Show the claims of the persisted credential for a session id",
			run:         runTokenInspect,
		},
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: txn-ui-admin <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-14s %s\n", name, cmds[name].description)
	}
}

func runHashPassword(_ *commandContext, args []string) error {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	password := fs.String("password", "", "password to hash")
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		return errors.New("-password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), *cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	fmt.Println(string(hash))
	return nil
}

func runTokenPurge(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("token-purge", flag.ContinueOnError)
	sid := fs.String("sid", "", "session id to purge")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sid == "" {
		return errors.New("-sid is required")
	}

	tokens, closeFn, err := openTokenStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := tokens.Clear(ctx.Ctx, *sid); err != nil {
		return fmt.Errorf("purge token: %w", err)
	}
	ctx.Logger.InfoContext(ctx.Ctx, "token purged", "sid", *sid)
	return nil
}

func runTokenInspect(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("token-inspect", flag.ContinueOnError)
	sid := fs.String("sid", "", "session id to inspect")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sid == "" {
		return errors.New("-sid is required")
	}

	tokens, closeFn, err := openTokenStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	token, err := tokens.Load(ctx.Ctx, *sid)
	if err != nil {
		if errors.Is(err, ports.ErrNoToken) {
			fmt.Println("no persisted credential for this session")
			return nil
		}
		return fmt.Errorf("load token: %w", err)
	}

	// Claims only; signature verification is the server's job.
	identity, err := jwtdecode.New().Decode(ctx.Ctx, token)
	if err != nil {
		return fmt.Errorf("decode stored credential: %w", err)
	}
	fmt.Printf("name:      %s\n", identity.Name)
	fmt.Printf("email:     %s\n", identity.Email)
	fmt.Printf("expires:   %s\n", identity.ExpiresAt.Format(time.RFC3339))
	fmt.Printf("remaining: %s\n", util.FormatRemaining(identity.ExpiresAt, time.Now()))
	return nil
}

func openTokenStore(ctx *commandContext) (*redisadapter.TokenStore, func(), error) {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := bootstrap.ConnectRedis(ctx.Ctx, cfg.Redis, ctx.Logger)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if cerr := client.Close(); cerr != nil {
			ctx.Logger.Warn("close redis failed", "error", cerr)
		}
	}
	tokens := redisadapter.NewTokenStore(redisadapter.TokenStoreOptions{
		Client:    client,
		Retention: cfg.Auth.TokenTTL,
	})
	return tokens, closeFn, nil
}
