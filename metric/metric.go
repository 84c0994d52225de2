// Package metric publishes expvar counters for pulled nodes. Counters are
// grouped by node type, so all instances of the same type share them.
package metric

import (
	"expvar"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pipelined/dsp"
	"github.com/pipelined/dsp/signal"
)

const nodesLabel = "dsp.nodes"

const (
	// PullCounter measures number of pulls.
	PullCounter = "Pulls"
	// SampleCounter measures number of produced samples.
	SampleCounter = "Samples"
	// LatencyCounter measures latency between pulls.
	LatencyCounter = "Latency"
	// DurationCounter counts what's the duration of produced signal.
	DurationCounter = "Duration"
	// NodeCounter counts number of metered nodes.
	NodeCounter = "Nodes"
)

var (
	nodes = metrics{
		m: make(map[string]metric),
	}

	counters = []string{
		PullCounter,
		SampleCounter,
		LatencyCounter,
		DurationCounter,
		NodeCounter,
	}
)

// Get metrics values for provided node type.
func Get(node interface{}) map[string]string {
	return getCounters(getType(node))
}

// GetAll returns counters for all measured node types.
func GetAll() map[string]map[string]string {
	m := make(map[string]map[string]string)
	nodes.Lock()
	defer nodes.Unlock()
	for node := range nodes.m {
		m[node] = getCounters(node)
	}
	return m
}

func getCounters(nodeType string) map[string]string {
	m := make(map[string]string)
	for _, counter := range counters {
		v := expvar.Get(key(nodeType, counter))
		if v != nil {
			m[counter] = v.String()
		}
	}
	return m
}

// MeasureFunc captures metrics when a node was pulled.
type MeasureFunc func(s dsp.Settings)

// Meter creates new meter closure to capture node counters.
func Meter(node interface{}, sampleRate int) MeasureFunc {
	t := getType(node)
	metric := nodes.get(t)
	metric.nodes.Add(1)
	var (
		calledAt       time.Time
		frames         int
		bufferDuration time.Duration
	)
	return func(s dsp.Settings) {
		if !calledAt.IsZero() {
			metric.latency.set(time.Since(calledAt))
		}
		metric.pulls.Add(1)
		metric.samples.Add(int64(s.SampleCount()))
		// recalculate buffer duration only when frame count has changed.
		if frames != s.Frames {
			frames = s.Frames
			bufferDuration = signal.DurationOf(sampleRate, int64(frames))
		}
		metric.duration.add(bufferDuration)
		calledAt = time.Now()
	}
}

type metrics struct {
	sync.Mutex
	m map[string]metric
}

func (m *metrics) get(nodeType string) metric {
	m.Lock()
	defer m.Unlock()
	if metric, ok := m.m[nodeType]; ok {
		return metric
	}
	metric := newMetric(nodeType)
	m.m[nodeType] = metric
	return metric
}

type metric struct {
	nodes    *expvar.Int
	pulls    *expvar.Int
	samples  *expvar.Int
	latency  *duration
	duration *duration
}

func newMetric(nodeType string) metric {
	m := metric{
		nodes:    expvar.NewInt(key(nodeType, NodeCounter)),
		pulls:    expvar.NewInt(key(nodeType, PullCounter)),
		samples:  expvar.NewInt(key(nodeType, SampleCounter)),
		latency:  &duration{},
		duration: &duration{},
	}
	expvar.Publish(key(nodeType, LatencyCounter), m.latency)
	expvar.Publish(key(nodeType, DurationCounter), m.duration)
	return m
}

func key(nodeType, counter string) string {
	return fmt.Sprintf("%s.%s.%s", nodesLabel, nodeType, counter)
}

func getType(node interface{}) string {
	rv := reflect.ValueOf(node)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	return rv.Type().String()
}

// duration allows to format time.Duration metric values.
type duration struct {
	d int64
}

func (v *duration) String() string {
	return fmt.Sprintf("%q", time.Duration(atomic.LoadInt64(&v.d)).String())
}

func (v *duration) add(delta time.Duration) {
	atomic.AddInt64(&v.d, int64(delta))
}

func (v *duration) set(value time.Duration) {
	atomic.StoreInt64(&v.d, int64(value))
}
