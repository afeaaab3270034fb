package capture

import (
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/pixel-match-go/config"
	"github.com/soocke/pixel-match-go/debug"
	"github.com/soocke/pixel-match-go/imageio"
	"github.com/soocke/pixel-match-go/match"
)

const debugLogInterval = 5 * time.Second

var debugLoggersOnce sync.Once

// Locator finds template images on the live screen. It caches decoded
// templates across searches and exposes instrumentation counters. Safe for
// concurrent use; each search owns its frame.
type Locator struct {
	cfg       *config.Config
	logger    *slog.Logger
	templates *imageio.Cache

	searches    atomic.Uint64
	searchNanos atomic.Uint64
}

// LocatorStats summarises locator behaviour for instrumentation.
type LocatorStats struct {
	Searches        uint64
	AvgSearch       time.Duration
	CachedTemplates int
}

// NewLocator builds a Locator from the given config. A nil config uses
// defaults. The configured thread count is applied to the engine; debug mode
// starts the periodic memory and goroutine loggers once per process.
func NewLocator(cfg *config.Config, logger *slog.Logger) (*Locator, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := match.SetThreads(cfg.Threads); err != nil {
		return nil, err
	}
	templates, err := imageio.NewCache(cfg.TemplateCacheSize)
	if err != nil {
		return nil, err
	}
	if cfg.Debug && logger != nil {
		debugLoggersOnce.Do(func() {
			debug.StartMemLogger(debugLogInterval, logger)
			debug.StartGoroutineLogger(debugLogInterval, logger)
		})
	}
	return &Locator{cfg: cfg, logger: logger, templates: templates}, nil
}

// LocateOnScreen grabs the active monitor and returns the best placement of
// the template at templatePath, or nil when nothing reaches the configured
// threshold.
func (l *Locator) LocateOnScreen(templatePath string) (*match.Match, error) {
	frame, err := l.grabFrame()
	if err != nil {
		return nil, err
	}
	tpl, err := l.templates.Open(templatePath)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	m, err := match.MatchBest(match.FromImage(frame), tpl, l.cfg.Threshold)
	l.record(start)
	if err != nil {
		return nil, err
	}
	if l.cfg.Debug && l.logger != nil {
		if m != nil {
			l.logger.Debug("template located", "template", templatePath, "x", m.X, "y", m.Y, "score", m.Score)
		} else {
			l.logger.Debug("template not found", "template", templatePath, "threshold", l.cfg.Threshold)
		}
	}
	return m, nil
}

// LocateAllOnScreen grabs the active monitor and returns every
// non-overlapping placement reaching the configured threshold, capped at the
// configured max count.
func (l *Locator) LocateAllOnScreen(templatePath string) ([]match.Match, error) {
	frame, err := l.grabFrame()
	if err != nil {
		return nil, err
	}
	tpl, err := l.templates.Open(templatePath)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	ms, err := match.MatchAll(match.FromImage(frame), tpl, l.cfg.Threshold, l.cfg.MaxCount)
	l.record(start)
	if err != nil {
		return nil, err
	}
	if l.cfg.Debug && l.logger != nil {
		l.logger.Debug("templates located", "template", templatePath, "count", len(ms))
	}
	return ms, nil
}

// grabFrame captures the persisted selection rectangle when one is
// configured, the full screen otherwise.
func (l *Locator) grabFrame() (*image.RGBA, error) {
	if l.cfg.SelectionW > 0 && l.cfg.SelectionH > 0 {
		rect := image.Rect(l.cfg.SelectionX, l.cfg.SelectionY,
			l.cfg.SelectionX+l.cfg.SelectionW, l.cfg.SelectionY+l.cfg.SelectionH)
		return GrabSelection(rect)
	}
	return Grab()
}

func (l *Locator) record(start time.Time) {
	l.searches.Add(1)
	l.searchNanos.Add(uint64(time.Since(start)))
}

// Stats returns instrumentation counters for the locator.
func (l *Locator) Stats() LocatorStats {
	searches := l.searches.Load()
	var avg time.Duration
	if searches > 0 {
		avg = time.Duration(l.searchNanos.Load() / searches)
	}
	return LocatorStats{
		Searches:        searches,
		AvgSearch:       avg,
		CachedTemplates: l.templates.Len(),
	}
}
