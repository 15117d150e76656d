/*
 * This file is part of the osgb_tiler distribution (https://github.com/ecopia-map/osgb_tiler).
 * Copyright (c) 2026 ecopia-map
 *
 * This program is free software; you can redistribute it and/or modify it
 * under the terms of the GNU Lesser General Public License Version 3 as
 * published by the Free Software Foundation;
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/ecopia-map/osgb_tiler/internal/geometry"
	"github.com/ecopia-map/osgb_tiler/internal/tiler"
	"github.com/ecopia-map/osgb_tiler/pkg"
	"github.com/ecopia-map/osgb_tiler/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/osgb_tiler/tools"
)

const VERSION = "0.3.0"

const logo = `
           _       _        _   _ _
  ___  ___| |_   _| |__    | |_(_) | ___ _ __
 / _ \/ __| | | | | '_ \   | __| | |/ _ \ '__|
| (_) \__ \ | |_| | |_) |  | |_| | |  __/ |
 \___/|___/_|\__, |_.__/____\__|_|_|\___|_|
             |___/    |_____|
  Converts paged LOD tile hierarchies to Cesium 3D Tiles
`

func main() {
	defer glog.Flush()

	flagsGlobal := tools.ParseFlagsGlobal()
	glog.V(1).Infoln(tools.FmtJSONString(flagsGlobal))

	if *flagsGlobal.Version {
		printVersion()
		return
	}

	args := flag.Args()
	if len(args) == 0 || *flagsGlobal.Help {
		showHelp()
		if len(args) == 0 && !*flagsGlobal.Help {
			glog.Exitf("Please specify a subcommand [%s].", tools.CommandConvert)
		}
		return
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case tools.CommandConvert:
		mainCommandConvert(args)
	default:
		glog.Exitf("Unrecognized command [%q]. Command must be one of [%s]", cmd, tools.CommandConvert)
	}
}

func mainCommandConvert(args []string) {
	// Retrieve command line args
	flags := tools.ParseFlagsForCommandConvert(args)

	if *flags.Help {
		showHelp()
		return
	}

	if *flags.Version {
		printVersion()
		return
	}

	if *flags.Silent {
		tools.DisableLogger()
	} else {
		printLogo()
	}

	tilerFlags := flags.TilerFlags

	// Put args inside a TilerOptions struct
	opts := tiler.TilerOptions{
		Input:                *tilerFlags.Input,
		Output:               *flags.Output,
		FolderProcessing:     *tilerFlags.FolderProcessing,
		MaxLevel:             *tilerFlags.MaxLevel,
		Workers:              *tilerFlags.Workers,
		JPEGQuality:          *tilerFlags.JPEGQuality,
		GeometricErrorPolicy: *tilerFlags.GeometricErrorPolicy,
		SceneFormat:          tiler.SceneFormat(strings.ToLower(*tilerFlags.SceneFormat)),
		RefineMode:           tiler.RefineModeReplace,
		Command:              tools.CommandConvert,
	}

	// Validate TilerOptions
	if msg, res := validateOptionsForCommandConvert(&opts); !res {
		glog.Exit("Error parsing input parameters: " + msg)
	}

	// Starts the tiler
	defer timeTrack(time.Now(), "tiler")
	err := pkg.NewTiler(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(&opts)).RunTiler(&opts)

	if err != nil {
		glog.Fatal("Error while tiling: ", err)
	} else {
		tools.LogOutput("Conversion Completed")
	}
}

// Validates the input options provided to the command line tool checking
// that input and output folders/files exist
func validateOptionsForCommandConvert(opts *tiler.TilerOptions) (string, bool) {
	if opts.Input == "" {
		return "Input file/folder not specified", false
	}
	if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
		return "Input file/folder not found", false
	}
	if opts.FolderProcessing && !tools.IsDirectory(opts.Input) {
		return "Input must be a folder when -folder is set", false
	}
	if !tools.IsDirectory(opts.Output) {
		return "Output folder not found", false
	}

	if opts.MaxLevel <= 0 {
		return "max-level must be positive", false
	}
	if opts.JPEGQuality < 1 || opts.JPEGQuality > 100 {
		return "jpeg-quality must be between 1 and 100", false
	}
	if _, err := geometry.ParseGeometricErrorPolicy(opts.GeometricErrorPolicy); err != nil {
		return err.Error(), false
	}
	if opts.SceneFormat != tiler.SceneFormatJSON {
		return fmt.Sprintf("format should be %s", tiler.SceneFormatJSON), false
	}

	return "", true
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	tools.LogOutput(fmt.Sprintf("%s took %s", name, elapsed))
}

func printLogo() {
	fmt.Print(logo + "\n")
}

func showHelp() {
	printLogo()
	fmt.Println("***")
	fmt.Println("osgb_tiler converts a paged level of detail tile hierarchy into a 3D Tiles tileset consumable by Cesium.js")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Usage: osgb_tiler [flags] " + tools.CommandConvert + " -i <input> -o <output> [convert flags]")
	fmt.Println("")
	fmt.Println("Global flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
	fmt.Println("")
	fmt.Println("Run '" + tools.CommandConvert + " -h' for the convert flags.")
}

func printVersion() {
	fmt.Println("v." + VERSION)
}
