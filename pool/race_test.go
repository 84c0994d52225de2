// +build race

package pool_test

// sync.Pool drops items at random under the race detector.
func init() {
	raceEnabled = true
}
