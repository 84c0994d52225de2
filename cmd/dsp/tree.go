package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pipelined/dsp"
	"github.com/pipelined/dsp/graph"
	"github.com/pipelined/dsp/log"
	"github.com/pipelined/dsp/node"
)

// floatList is a semicolon separated list of floats.
type floatList []float64

func (l *floatList) String() string {
	s := make([]string, 0, len(*l))
	for _, v := range *l {
		s = append(s, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return strings.Join(s, ";")
}

func (l *floatList) Set(value string) error {
	for _, s := range strings.Split(value, ";") {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", s, err)
		}
		*l = append(*l, v)
	}
	return nil
}

// treeFlags describe the demo tree: every frequency gets its own
// oscillator, voices are spread across the stereo field and summed through
// a low-pass filter.
type treeFlags struct {
	freqs      floatList
	spread     float64
	cutoff     float64
	amplitude  float64
	sampleRate int
	frames     int
	channels   int
	duration   time.Duration
}

func (f *treeFlags) register(fs *flag.FlagSet) {
	fs.Var(&f.freqs, "freq", "semicolon separated oscillator frequencies (default 220;330)")
	fs.Float64Var(&f.spread, "spread", 0.5, "stereo spread of voices, from 0 to 1")
	fs.Float64Var(&f.cutoff, "cutoff", 8000, "low-pass cutoff frequency")
	fs.Float64Var(&f.amplitude, "amplitude", 0.3, "amplitude of every voice")
	fs.IntVar(&f.sampleRate, "rate", 44100, "sample rate")
	fs.IntVar(&f.frames, "frames", 512, "frames per buffer")
	fs.IntVar(&f.channels, "channels", 2, "number of channels, 1 or 2")
	fs.DurationVar(&f.duration, "duration", 5*time.Second, "duration of audio")
}

func (f *treeFlags) settings() dsp.Settings {
	return dsp.Settings{Frames: f.frames, Channels: f.channels}
}

func (f *treeFlags) validate() error {
	if len(f.freqs) == 0 {
		f.freqs = floatList{220, 330}
	}
	if f.sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", f.sampleRate)
	}
	if f.duration <= 0 {
		return fmt.Errorf("invalid duration: %v", f.duration)
	}
	return f.settings().Validate()
}

// build adds the demo tree to a new graph and returns it with the root.
func (f *treeFlags) build(logger log.Logger) (*graph.Graph, graph.ID, error) {
	g := graph.New(graph.WithLogger(logger), graph.WithMetric(f.sampleRate))
	root := g.Add(node.NewLowPass(f.cutoff, f.sampleRate))
	for i, freq := range f.freqs {
		voice := node.NewMixer()
		voice.Panning = dsp.Panning(f.pan(i))
		v := g.Add(voice)
		osc := node.NewOscillator(freq, f.sampleRate)
		osc.Amplitude = f.amplitude
		if err := g.Connect(v, g.Add(osc)); err != nil {
			return nil, 0, err
		}
		if err := g.Connect(root, v); err != nil {
			return nil, 0, err
		}
	}
	return g, root, nil
}

// pan spreads voices evenly between -spread and spread.
func (f *treeFlags) pan(i int) float64 {
	if len(f.freqs) < 2 {
		return 0
	}
	return -f.spread + 2*f.spread*float64(i)/float64(len(f.freqs)-1)
}
