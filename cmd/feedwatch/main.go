// feedwatch tails a chat's realtime feed from the terminal. It is the
// reference consumer of the feed package: it subscribes to one chat,
// prints the reconciled message list after each event, and rides out
// reconnects until the retry cap.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pigeon_chat_server/internal/feed"

	"go.uber.org/zap"
)

func main() {
	url := flag.String("url", "ws://127.0.0.1:8000/ws/login", "relay websocket URL")
	token := flag.String("token", "", "access token")
	clientId := flag.String("client", "", "user uuid to connect as")
	flag.Parse()

	if *token == "" || *clientId == "" {
		log.Fatal("both -token and -client are required")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zap.ReplaceGlobals(logger)

	subscriber := feed.NewSubscriber(feed.DialWebsocket(*url, *token))
	callbacks := feed.Callbacks{
		OnMessages: func(key string, messages []feed.Message) {
			fmt.Printf("--- %s (%d messages) ---\n", key, len(messages))
			for _, m := range messages {
				marker := " "
				if m.Pending {
					marker = "*"
				}
				fmt.Printf("%s [%s] %s: %s\n", marker, m.SentAt.Format("15:04:05"), m.SenderName, m.Content)
			}
		},
		OnEvent: func(key string, frame []byte) {
			fmt.Printf("event on %s: %s\n", key, frame)
		},
		OnError: func(key string, err error) {
			fmt.Printf("feed for %s stopped: %v\n", key, err)
			os.Exit(1)
		},
	}

	if err := subscriber.Subscribe(context.Background(), *clientId, callbacks); err != nil {
		log.Fatalf("subscribe: %v", err)
	}
	fmt.Printf("watching feed for %s, ctrl-c to stop\n", *clientId)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	subscriber.Unsubscribe(*clientId)
}
