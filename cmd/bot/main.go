package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/plomlompom/plomrogue2-experiments/internal/agent"
	"github.com/plomlompom/plomrogue2-experiments/internal/geometry"
	"github.com/plomlompom/plomrogue2-experiments/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	addr := flag.String("addr", "localhost:5000", "Server address")
	geom := flag.String("geometry", "hex", "Map geometry of the server: hex or square")
	player := flag.Int("player", 0, "ID of the player thing")
	turns := flag.Int("turns", 0, "Quit after this many commands (0 = play until death)")
	render := flag.Bool("render", false, "Print the visible map on every state")
	color := flag.Bool("color", false, "Use ANSI colors when rendering")
	flag.Parse()

	g, err := geometry.New(*geom)
	if err != nil {
		logger.Log.WithError(err).Fatal("Bad geometry")
	}

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		logger.Log.WithError(err).Fatal("Cannot connect")
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// Закрытие соединения прерывает чтение в Run
		<-ctx.Done()
		conn.Close()
	}()

	bot := agent.NewBot(conn, g, *player)
	bot.MaxTurns = *turns
	if *render {
		bot.OnState = func(v *agent.View) {
			fmt.Printf("turn %d, last result %q\n%s\n", v.Turn, v.LastResult, v.Render(*color))
		}
	}

	logger.Log.WithField("addr", *addr).Info("Bot connected")
	if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Log.WithError(err).Error("Bot stopped")
		os.Exit(1)
	}
	logger.Log.WithField("decisions", bot.Decisions()).Info("Bot finished")
}
