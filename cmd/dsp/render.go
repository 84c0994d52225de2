package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pipelined/dsp/log"
	"github.com/pipelined/dsp/metric"
	"github.com/pipelined/dsp/mp3"
	"github.com/pipelined/dsp/render"
	"github.com/pipelined/dsp/signal"
	"github.com/pipelined/dsp/wav"
)

type renderCommand struct {
	treeFlags
	out      string
	bitDepth int
	bitRate  int
	quality  int
}

//Implement command interface
func (cmd *renderCommand) Name() string {
	return "render"
}

func (cmd *renderCommand) Help() string {
	return "Render the demo tree into wav or mp3 file"
}

func (cmd *renderCommand) Register(fs *flag.FlagSet) {
	cmd.treeFlags.register(fs)
	fs.StringVar(&cmd.out, "out", "", "output file, .wav or .mp3 (required)")
	fs.IntVar(&cmd.bitDepth, "bitdepth", 16, "wav bit depth")
	fs.IntVar(&cmd.bitRate, "bitrate", 192, "mp3 bit rate")
	fs.IntVar(&cmd.quality, "quality", 2, "mp3 encoder quality, 0 is best")
}

func (cmd *renderCommand) Run() error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	logger := log.GetLogger()
	g, root, err := cmd.build(logger)
	if err != nil {
		return err
	}
	view, err := g.Node(root)
	if err != nil {
		return err
	}
	sink, err := cmd.sink()
	if err != nil {
		return err
	}
	s := cmd.settings()
	cycles := render.Cycles(cmd.duration, cmd.sampleRate, s.Frames)
	if err := render.Run(context.Background(), view, s, cycles, sink, render.WithLogger(logger)); err != nil {
		return err
	}
	for nodeType, counters := range metric.GetAll() {
		logger.WithFields(logrus.Fields{
			"node":     nodeType,
			"pulls":    counters[metric.PullCounter],
			"duration": counters[metric.DurationCounter],
		}).Debug("metrics")
	}
	logger.Info(fmt.Sprintf("rendered %v into %s", cmd.duration, cmd.out))
	return nil
}

func (cmd *renderCommand) sink() (render.Sink, error) {
	switch strings.ToLower(filepath.Ext(cmd.out)) {
	case ".wav":
		return wav.Create(cmd.out, cmd.sampleRate, cmd.channels, signal.BitDepth(cmd.bitDepth))
	case ".mp3":
		return mp3.Create(cmd.out, cmd.sampleRate, cmd.channels, cmd.bitRate, cmd.quality)
	}
	return nil, fmt.Errorf("unsupported output format: %s", cmd.out)
}

func (cmd *renderCommand) Validate() error {
	var message string
	if cmd.out == "" {
		message = message + "Missing -out required flag\n"
	}
	if err := cmd.treeFlags.validate(); err != nil {
		message = message + err.Error() + "\n"
	}
	if message != "" {
		return errors.New(message)
	}
	return nil
}
