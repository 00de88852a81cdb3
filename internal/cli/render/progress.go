package render

import (
	"fmt"
	"io"
	"time"

	"followback/internal/domain/mutation"
	"followback/internal/domain/relation"

	"github.com/gosuri/uilive"
)

// FetchProgress reports pages as they load on a single live line.
type FetchProgress struct {
	out  io.Writer
	live *uilive.Writer
}

func NewFetchProgress(w io.Writer) *FetchProgress {
	live := uilive.New()
	live.Out = w

	return &FetchProgress{out: w, live: live}
}

func (p *FetchProgress) PageLoaded(kind relation.Kind, page, total int) {
	fmt.Fprintf(p.live, "loading %s: page %d, %d so far\n", kind, page, total)
	p.live.Flush()
}

func (p *FetchProgress) LowQuota(kind relation.Kind, remaining int) {
	Warning(p.out, "rate limit low while loading %s: %d requests left", kind, remaining)
}

// BatchProgress prints one line per target and a live countdown between
// targets.
type BatchProgress struct {
	out  io.Writer
	live *uilive.Writer
}

func NewBatchProgress(w io.Writer) *BatchProgress {
	return &BatchProgress{out: w}
}

func (p *BatchProgress) Started(i, n int, t mutation.Target) {
	if p.live != nil {
		fmt.Fprintln(p.live, "continuing")
		p.live.Flush()
		p.live = nil
	}

	Info(p.out, "[%d/%d] %s", i+1, n, t)
}

func (p *BatchProgress) Finished(res *mutation.Result) {
	switch {
	case res.OK && res.URL != "":
		Success(p.out, "%s %s: %s", res.Kind, res.Target, res.URL)
	case res.OK:
		Success(p.out, "%s %s", res.Kind, res.Target)
	default:
		Failure(p.out, "%s %s: %s", res.Kind, res.Target, res.Message)
	}
}

func (p *BatchProgress) Countdown(remaining time.Duration) {
	if p.live == nil {
		p.live = uilive.New()
		p.live.Out = p.out
	}

	fmt.Fprintf(p.live, "next in %s\n", remaining.Round(time.Second))
	p.live.Flush()
}
