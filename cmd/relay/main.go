package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/itswill307/TheNewSuzerainProject/internal/logger"
	"github.com/itswill307/TheNewSuzerainProject/internal/server"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Addr string `short:"a" long:"addr" env:"LISTEN_ADDRESS" description:"Address to listen on" default:"0.0.0.0"`
	Port int    `short:"p" long:"port" env:"LISTEN_PORT"    description:"Port to listen on"    default:"8080"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	srvCtx := server.NewServerContext()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/host", srvCtx.HandleHost)
	mux.HandleFunc("/ws/join", srvCtx.HandleJoin)
	mux.HandleFunc("/api/sessions", srvCtx.HandleSessions)
	mux.HandleFunc("/", srvCtx.HandleStatus)

	handler := server.RequestLogger(mux)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Msg("Session relay started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
