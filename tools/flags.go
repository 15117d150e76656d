package tools

import (
	"flag"
	"runtime"

	"github.com/golang/glog"
)

const (
	CommandConvert = "convert"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

type TilerFlags struct {
	Input                *string `json:"input"`
	FolderProcessing     *bool   `json:"folder"`
	MaxLevel             *int    `json:"max_level"`
	Workers              *int    `json:"workers"`
	JPEGQuality          *int    `json:"jpeg_quality"`
	GeometricErrorPolicy *string `json:"error_policy"`
	SceneFormat          *string `json:"format"`
}

type FlagsForCommandConvert struct {
	TilerFlags
	Output  *string `json:"output"`
	Silent  *bool   `json:"silent"`
	Help    *bool   `json:"help"`
	Version *bool   `json:"version"`
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	// -v is taken by the glog verbosity flag
	version := defineBoolFlag("version", "", false, "Displays the version of osgb_tiler.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

func ParseFlagsForCommandConvert(args []string) FlagsForCommandConvert {
	return parseFlagsForCommandConvert(flag.NewFlagSet("command-convert", flag.ExitOnError), args)
}

func parseFlagsForCommandConvert(flagCommand *flag.FlagSet, args []string) FlagsForCommandConvert {
	glog.V(1).Infoln(FmtJSONString(args))

	input := defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the input root tile file, or the dataset folder when -folder is set.")
	output := defineStringFlagCommand(flagCommand, "output", "o", "", "Specifies the output folder where to write the tileset data.")
	folderProcessing := defineBoolFlagCommand(flagCommand, "folder", "f", false, "Enables processing of all root tiles found in <input>/Data/<Tile>/<Tile>.<ext>, or <input>/<Tile>/<Tile>.<ext>.")
	maxLevel := defineIntFlagCommand(flagCommand, "max-level", "l", 100, "Tiles whose name encodes a level greater or equal to this value are skipped together with their subtree.")
	workers := defineIntFlagCommand(flagCommand, "workers", "w", runtime.NumCPU(), "Number of tiles converted concurrently.")
	jpegQuality := defineIntFlagCommand(flagCommand, "jpeg-quality", "q", 80, "Quality of the JPEG textures embedded in the tiles, between 1 and 100.")
	errorPolicy := defineStringFlagCommand(flagCommand, "error-policy", "", "first-child", "Geometric error rule, 'first-child' doubles the first child's error, 'first-child-extent' doubles the error implied by the first child's box.")
	format := defineStringFlagCommand(flagCommand, "format", "", "osgjson", "Format of the input tile files.")
	silent := defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")
	version := defineBoolFlagCommand(flagCommand, "version", "v", false, "Displays the version of osgb_tiler.")

	flagCommand.Parse(args)

	return FlagsForCommandConvert{
		TilerFlags: TilerFlags{
			Input:                input,
			FolderProcessing:     folderProcessing,
			MaxLevel:             maxLevel,
			Workers:              workers,
			JPEGQuality:          jpegQuality,
			GeometricErrorPolicy: errorPolicy,
			SceneFormat:          format,
		},
		Output:  output,
		Silent:  silent,
		Help:    help,
		Version: version,
	}
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}
