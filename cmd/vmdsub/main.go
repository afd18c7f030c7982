/*
NAME
  main.go

DESCRIPTION
  vmdsub is the subtitle overlay tool's CLI front end: it wires its four
  positional arguments (subtitles, input container, raw-frame sidecar,
  output container) to the overlay engine (spec.md §6).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is the vmdsub command.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/sierravid/overlay"
)

// Logging configuration, grounded on cmd/rv/main.go's lumberjack setup.
const (
	logPath      = "vmdsub.log"
	logMaxSize   = 50 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = false
)

const pkg = "vmdsub: "

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: vmdsub <subtitles> <in.vmd|in.rbt> <raw-frames> <out.vmd|out.rbt>")
	}
	flag.Parse()
	if flag.NArg() != 4 {
		flag.Usage()
		os.Exit(1)
	}
	subsPath, inPath, framesPath, outPath := flag.Arg(0), flag.Arg(1), flag.Arg(2), flag.Arg(3)

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, fileLog, logSuppress)

	if err := run(subsPath, inPath, framesPath, outPath, log); err != nil {
		log.Error(pkg+"failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(subsPath, inPath, framesPath, outPath string, log logging.Logger) error {
	rast, err := loadRasterizer(subsPath, log)
	if err != nil {
		return errors.Wrap(err, "loading subtitles")
	}

	framesFile, err := os.Open(framesPath)
	if err != nil {
		return errors.Wrap(err, "opening raw-frame sidecar")
	}
	defer framesFile.Close()
	sc, err := overlay.NewSidecar(framesFile)
	if err != nil {
		return errors.Wrap(err, "parsing raw-frame sidecar")
	}

	eng := overlay.NewEngine(overlay.DefaultOptions(), log)

	if isRBT(inPath) {
		return runRBT(eng, inPath, outPath, sc, rast)
	}
	return runVMD(eng, inPath, outPath, sc, rast)
}

func runVMD(eng *overlay.Engine, inPath, outPath string, sc *overlay.Sidecar, rast overlay.Rasterizer) error {
	in, err := os.Open(inPath)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	defer out.Close()

	return eng.RunVMD(in, out, sc, rast)
}

func runRBT(eng *overlay.Engine, inPath, outPath string, sc *overlay.Sidecar, rast overlay.Rasterizer) error {
	buf, err := os.ReadFile(inPath)
	if err != nil {
		return errors.Wrap(err, "reading input")
	}

	result, err := eng.RunRBT(buf, sc, rast)
	if err != nil {
		return err
	}

	return os.WriteFile(outPath, result, 0644)
}

func isRBT(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".rbt")
}

// loadRasterizer opens the subtitles file and returns the Rasterizer the
// overlay engine renders against. Subtitle rasterization itself is an
// externally implemented collaborator (spec.md §1 out-of-scope list); this
// stands in for whatever host multimedia framework supplies a real one,
// returning no layers for any timestamp so the pipeline still runs and
// remuxes unmodified frames end to end.
func loadRasterizer(path string, log logging.Logger) (overlay.Rasterizer, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	log.Debug(pkg+"using no-op subtitle rasterizer", "subtitles", path)
	return noopRasterizer{}, nil
}

type noopRasterizer struct{}

func (noopRasterizer) Render(ts time.Duration) ([]overlay.Layer, error) { return nil, nil }
