package domain

import "github.com/jonboulle/clockwork"

// processingClock stamps Enrichment.ProcessedAt.
var processingClock clockwork.Clock = clockwork.NewRealClock()

// SetClock replaces the clock used for ProcessedAt. Tests pass a fake clock
// for stable output; nil restores the real one.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	processingClock = c
}
