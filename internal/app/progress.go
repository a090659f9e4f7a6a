package app

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// progressReporter renders spinners and bars on stderr, but only when stderr
// is an interactive terminal; in pipes and CI the run stays silent and the
// structured log remains the single source of output.
type progressReporter struct {
	enabled bool
}

func newProgress() progressReporter {
	return progressReporter{enabled: term.IsTerminal(int(os.Stderr.Fd()))}
}

// spinner shows an indeterminate spinner until the returned stop function is
// called.
func (p progressReporter) spinner(description string) (stop func()) {
	if !p.enabled {
		return func() {}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	return func() {
		close(done)
		_ = bar.Finish()
	}
}

type progressBar struct {
	bar *progressbar.ProgressBar
}

// bar returns a determinate progress bar of the given length. Disabled
// reporters return a no-op bar.
func (p progressReporter) bar(length int, description string) progressBar {
	if !p.enabled {
		return progressBar{}
	}
	return progressBar{bar: progressbar.NewOptions(length,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)}
}

func (b progressBar) add(n int) {
	if b.bar != nil {
		_ = b.bar.Add(n)
	}
}

func (b progressBar) finish() {
	if b.bar != nil {
		_ = b.bar.Finish()
	}
}
