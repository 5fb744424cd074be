package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"lawblox.app/assistant/internal/assistant"
	"lawblox.app/assistant/internal/client"
	"lawblox.app/assistant/internal/config"
	"lawblox.app/assistant/internal/tui"
)

const usage = `Usage: lawblox <command> [flags]

Commands:
  signup  -name -email -password -confirm
  login   -email -password
  chat    [-email -password]

Common flags:
  -base-url  backend root (default from LAWBLOX_BASE_URL)
`

func main() {
	cfg := config.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "signup":
		err = runSignup(ctx, cfg, os.Args[2:])
	case "login":
		err = runLogin(ctx, cfg, os.Args[2:])
	case "chat":
		err = runChat(ctx, cfg, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService(cfg config.Config, baseURL string) (*assistant.Service, error) {
	c, err := client.New(baseURL, nil, &http.Client{Timeout: cfg.HTTPTimeout})
	if err != nil {
		return nil, err
	}
	return assistant.NewService(c, c.Session()), nil
}

func runSignup(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	baseURL := fs.String("base-url", cfg.BaseURL, "backend root URL")
	name := fs.String("name", "", "first name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password confirmation")
	fs.Parse(args)

	svc, err := newService(cfg, *baseURL)
	if err != nil {
		return err
	}
	resp, err := svc.Signup(ctx, assistant.SignupForm{
		FirstName:       *name,
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *confirm,
	})
	if err != nil {
		return err
	}
	fmt.Println(successText(resp.Message, "Signup successful"))
	return nil
}

func runLogin(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	baseURL := fs.String("base-url", cfg.BaseURL, "backend root URL")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	svc, err := newService(cfg, *baseURL)
	if err != nil {
		return err
	}
	resp, err := svc.Login(ctx, assistant.LoginForm{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Println(successText(resp.Message, "Login successful"))
	return nil
}

func runChat(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	baseURL := fs.String("base-url", cfg.BaseURL, "backend root URL")
	email := fs.String("email", "", "log in with this email before chatting")
	password := fs.String("password", "", "password for -email")
	fs.Parse(args)

	svc, err := newService(cfg, *baseURL)
	if err != nil {
		return err
	}
	if *email != "" {
		if _, err := svc.Login(ctx, assistant.LoginForm{Email: *email, Password: *password}); err != nil {
			return err
		}
	}

	// The screen owns stdout and stderr from here on.
	if cfg.Debug() {
		f, err := tea.LogToFile("lawblox-debug.log", "lawblox")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	conv := svc.NewConversation(assistant.WithGreeting(assistant.Greeting))
	return tui.Run(ctx, conv)
}

func successText(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
