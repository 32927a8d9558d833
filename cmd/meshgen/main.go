package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/itswill307/TheNewSuzerainProject/internal/heightmap"
	"github.com/itswill307/TheNewSuzerainProject/internal/logger"
	"github.com/itswill307/TheNewSuzerainProject/internal/meshgen"
	"github.com/itswill307/TheNewSuzerainProject/internal/projection"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Output      string  `short:"o" long:"out"        description:"Output OBJ path, stdout if empty"`
	Projection  string  `short:"P" long:"projection" description:"Projection family" choice:"planesphere" choice:"sinusoidal" choice:"aitoff" choice:"generalized" default:"planesphere"`
	Radius      float64 `short:"r" long:"radius"     description:"Map radius"        default:"100"`
	Morph       float64 `short:"m" long:"morph"      description:"Morph factor in [0,1]" default:"0"`
	Cols        int     `long:"cols"                 description:"Grid columns"      default:"128"`
	Rows        int     `long:"rows"                 description:"Grid rows"         default:"64"`
	Heightmap   string  `long:"heightmap"            description:"Optional elevation texture to displace with"`
	HeightScale float64 `long:"height-scale"         description:"Elevation displacement scale" default:"2"`
	HeightBias  float64 `long:"height-bias"          description:"Elevation bias subtracted before scaling" default:"0.5"`
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

	family, err := projection.New(opts.Projection, opts.Radius)
	if err != nil {
		log.Fatal().Err(err).Msg("Bad projection family")
	}

	var disp projection.Displacement
	if opts.Heightmap != "" {
		field, err := heightmap.Load(opts.Heightmap)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load heightmap")
		}
		disp = projection.Displacement{
			Field: field,
			Scale: opts.HeightScale,
			Bias:  opts.HeightBias,
		}
	}

	grid := meshgen.Build(opts.Cols, opts.Rows)
	positions, normals := grid.Project(family, opts.Morph, disp)

	out := os.Stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to create output")
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := grid.WriteOBJ(out, positions, normals); err != nil {
		log.Fatal().Err(err).Msg("Failed to write OBJ")
	}

	log.Info().
		Int("vertices", len(positions)).
		Int("triangles", len(grid.Indices)/3).
		Str("projection", opts.Projection).
		Float64("morph", opts.Morph).
		Msg("Mesh generated")
}
