// Package linear provides a synchronous, line-oriented renderer for build progress.
package linear

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/apiroutes/internal/ui/output"
	"go.trai.ch/apiroutes/internal/ui/style"
)

// Renderer implements ports.Renderer by printing one line per build event.
type Renderer struct {
	w      io.Writer
	output *termenv.Output

	mu        sync.Mutex
	builds    map[string]*buildState // spanID -> build state
	succeeded int
	failed    int
}

type buildState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a new Renderer writing to w, or stderr when w is nil.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stderr
	}

	return &Renderer{
		w:      w,
		output: output.NewWithProfile(w, output.ColorProfileANSI),
		builds: make(map[string]*buildState),
	}
}

// OnBuildStart prints a build start message.
func (r *Renderer) OnBuildStart(spanID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.builds[spanID] = &buildState{
		name:      name,
		startTime: startTime,
	}

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.w, "%s Starting...\n", prefix)
}

// OnBuildComplete prints the completion status of a build.
func (r *Renderer) OnBuildComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	build, ok := r.builds[spanID]
	if !ok {
		return
	}
	delete(r.builds, spanID)

	duration := endTime.Sub(build.startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s]", build.name)

	if err != nil {
		r.failed++
		symbol := r.output.String(style.Cross).Foreground(r.output.Color(style.Hex(style.Red))).String()
		_, _ = fmt.Fprintf(r.w, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
		return
	}

	r.succeeded++
	symbol := r.output.String(style.Check).Foreground(r.output.Color(style.Hex(style.Green))).String()
	_, _ = fmt.Fprintf(r.w, "%s %s Completed in %v\n", prefix, symbol, duration)
}

// Flush prints a summary of the builds completed since the last flush.
// Builds that are still running are not counted.
func (r *Renderer) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.succeeded == 0 && r.failed == 0 {
		return nil
	}

	summary := fmt.Sprintf("%d route(s) bundled", r.succeeded)
	if r.failed > 0 {
		summary += fmt.Sprintf(", %d failed", r.failed)
	}
	r.succeeded, r.failed = 0, 0

	_, err := fmt.Fprintln(r.w, r.output.String(summary).Bold().String())
	return err
}
