package main

import (
	"flag"
	"time"

	"github.com/pipelined/dsp/log"
	"github.com/pipelined/dsp/portaudio"
)

type playCommand struct {
	treeFlags
}

//Implement command interface
func (cmd *playCommand) Name() string {
	return "play"
}

func (cmd *playCommand) Help() string {
	return "Play the demo tree with default output device"
}

func (cmd *playCommand) Register(fs *flag.FlagSet) {
	cmd.treeFlags.register(fs)
}

func (cmd *playCommand) Run() error {
	if err := cmd.validate(); err != nil {
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
	p := portaudio.NewPlayer(view, cmd.sampleRate, cmd.settings())
	if err := p.Start(); err != nil {
		return err
	}
	logger.Infof("playing for %v", cmd.duration)
	time.Sleep(cmd.duration)
	return p.Stop()
}
