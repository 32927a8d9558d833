package main

import (
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/itswill307/TheNewSuzerainProject/internal/logger"
	"github.com/itswill307/TheNewSuzerainProject/internal/worldgen"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	OutDir    string  `short:"o" long:"out"       env:"OUT_DIR"   description:"Output directory"                default:"maps"`
	Width     int     `short:"W" long:"width"     env:"WIDTH"     description:"Texture width in pixels"         default:"2048"`
	Height    int     `short:"H" long:"height"    env:"HEIGHT"    description:"Texture height in pixels"        default:"1024"`
	Provinces int     `short:"n" long:"provinces" env:"PROVINCES" description:"Number of land provinces"        default:"64"`
	SeaLevel  float64 `short:"s" long:"sea-level" env:"SEA_LEVEL" description:"Height below which is ocean"     default:"0.45"`
	OceanID   int32   `long:"ocean-id"            env:"OCEAN_ID"  description:"Province id encoded for ocean"   default:"0"`
	Seed      int64   `long:"seed"                env:"SEED"      description:"Generation seed"                 default:"1936"`
	Format    string  `short:"f" long:"format"    env:"FORMAT"    description:"Output image format" choice:"webp" choice:"png" default:"webp"`
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

	if opts.Width < 2 || opts.Height < 2 || opts.Provinces < 1 {
		log.Fatal().Msg("Width, height and provinces must all be positive")
	}

	ids, heights := worldgen.Bake(worldgen.Params{
		Width:     opts.Width,
		Height:    opts.Height,
		Provinces: opts.Provinces,
		SeaLevel:  opts.SeaLevel,
		OceanID:   opts.OceanID,
		Seed:      opts.Seed,
	})

	idPath := filepath.Join(opts.OutDir, "provinces."+opts.Format)
	if err := worldgen.WriteImage(idPath, ids); err != nil {
		log.Fatal().Err(err).Str("path", idPath).Msg("Failed to write province map")
	}

	heightPath := filepath.Join(opts.OutDir, "heightmap."+opts.Format)
	if err := worldgen.WriteImage(heightPath, heights); err != nil {
		log.Fatal().Err(err).Str("path", heightPath).Msg("Failed to write heightmap")
	}

	log.Info().
		Str("provinces", idPath).
		Str("heightmap", heightPath).
		Msg("World textures generated")
}
