package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pethealth/internal/client"
	"pethealth/internal/domain"
)

// terminalAlerter prints pushed notifications to stdout, ringing the
// terminal bell for kinds routed with sound.
type terminalAlerter struct{}

func (terminalAlerter) Alert(style client.AlertStyle, sound bool, n domain.Notification) {
	props := client.PropsFor(style)
	bell := ""
	if sound {
		bell = "\a"
	}
	fmt.Printf("%s%s [%s] %s — %s\n", bell, props.Icon, n.Type, n.Title, n.Message)
}

func main() {
	_ = godotenv.Load()

	var (
		baseURL  = flag.String("url", envOr("API_URL", "http://localhost:8080"), "API base URL")
		email    = flag.String("email", "", "login email")
		password = flag.String("password", "", "login password")
		token    = flag.String("token", os.Getenv("API_TOKEN"), "session token (skips login)")
	)
	flag.Parse()

	facade := client.NewFacade(*baseURL)

	ctx := context.Background()
	switch {
	case *token != "":
		facade.SetToken(*token)
	case *email != "" && *password != "":
		user, err := facade.Login(ctx, *email, *password)
		if err != nil {
			log.Fatalf("login failed: %v", err)
		}
		log.Printf("signed in as %s (%s)", user.Name, user.Role)
	default:
		log.Fatal("pass -token, or -email and -password")
	}

	expired := make(chan struct{}, 1)
	facade.OnUnauthorized(func() {
		select {
		case expired <- struct{}{}:
		default:
		}
	})

	session, err := client.NewSession(client.SessionConfig{
		Facade:  facade,
		Alerter: terminalAlerter{},
		OnStatus: func(s client.Status) {
			log.Printf("stream %s", s)
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	startCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	if err := session.Start(startCtx); err != nil {
		log.Fatalf("start failed: %v", err)
	}
	defer session.Stop()

	log.Printf("%d notifications, %d unread. Waiting for events, Ctrl-C to quit.",
		len(session.Notifications()), session.UnreadCount())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sig:
		log.Println("bye")
	case <-expired:
		log.Println("session expired, sign in again")
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
