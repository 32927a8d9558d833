package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/itswill307/TheNewSuzerainProject/internal/config"
	"github.com/itswill307/TheNewSuzerainProject/internal/heightmap"
	"github.com/itswill307/TheNewSuzerainProject/internal/logger"
	"github.com/itswill307/TheNewSuzerainProject/internal/projection"
	"github.com/itswill307/TheNewSuzerainProject/internal/province"
	"github.com/itswill307/TheNewSuzerainProject/internal/session"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Width      int    `short:"W" long:"width"  env:"WINDOW_WIDTH"  description:"Window width"  default:"1280"`
	Height     int    `short:"H" long:"height" env:"WINDOW_HEIGHT" description:"Window height" default:"720"`

	Relay   string `long:"relay" env:"RELAY_URL" description:"Session relay URL (ws://host:port)"`
	Host    bool   `long:"host"  description:"Host a multiplayer session"`
	Join    string `long:"join"  description:"Join a session by code"`
	Offline bool   `long:"offline" description:"Skip network services entirely"`
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

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	family, err := projection.New(cfg.World.Projection, cfg.World.Radius)
	if err != nil {
		log.Fatal().Err(err).Msg("Bad projection family")
	}

	// An unreadable province map disables picking but not the viewer.
	var ids *province.IDMap
	if cfg.World.Provinces != "" {
		ids, err = province.LoadIDMap(cfg.World.Provinces, cfg.World.MaxTextureSize)
		if err != nil {
			log.Warn().Err(err).Msg("Province map unavailable, picking disabled")
			ids = nil
		}
	}

	var disp projection.Displacement
	if cfg.World.Heightmap != "" {
		field, err := heightmap.Load(cfg.World.Heightmap)
		if err != nil {
			log.Warn().Err(err).Msg("Heightmap unavailable, surface stays flat")
		} else {
			disp = projection.Displacement{
				Field:   field,
				Scale:   cfg.World.HeightScale,
				Bias:    cfg.World.HeightBias,
				UOffset: cfg.World.UVOffset,
			}
		}
	}

	picker := province.NewPicker(family, ids)
	picker.OceanID = cfg.World.OceanID
	picker.BlockOcean = cfg.World.BlockOcean
	picker.UVOffset = cfg.World.UVOffset

	sess := setupSession(opts)
	defer sess.Close()

	v := newViewer(cfg, family, picker, ids, disp, sess, opts.Width, opts.Height)
	v.run()
}

// setupSession wires the optional multiplayer bootstrap. Failures here are
// not fatal; the prototype keeps running single-player.
func setupSession(opts Options) *session.Client {
	sess := session.New(opts.Relay, opts.Offline)
	if err := sess.EnsureReady(); err != nil {
		log.Warn().Err(err).Msg("Network services unavailable")
		return sess
	}

	switch {
	case opts.Host:
		code, err := sess.Host()
		if err != nil {
			log.Warn().Err(err).Msg("Failed to host session")
			break
		}
		fmt.Printf("Session code: %s\n", code)
	case opts.Join != "":
		if err := sess.Join(opts.Join); err != nil {
			log.Warn().Err(err).Str("code", opts.Join).Msg("Failed to join session")
		}
	}

	if sess.Code() != "" {
		go receiveLoop(sess)
	}
	return sess
}

// receiveLoop drains peer frames for the lifetime of the connection. The
// prototype only shares selections.
func receiveLoop(sess *session.Client) {
	for {
		data, err := sess.Receive()
		if err != nil {
			log.Debug().Err(err).Msg("Session receive loop ended")
			return
		}
		log.Info().Str("frame", string(data)).Msg("Peer message")
	}
}
