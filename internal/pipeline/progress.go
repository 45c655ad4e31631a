package pipeline

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// newProgressBar creates a single labeling progress bar writing to w
func newProgressBar(w io.Writer, total int) (*mpb.Progress, *mpb.Bar) {
	p := mpb.New(mpb.WithWidth(80), mpb.WithOutput(w), mpb.WithAutoRefresh())
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("Labeling papers: "),
			decor.CountersNoUnit("%d / %d", decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.OnComplete(decor.Percentage(decor.WCSyncSpace), "done!"),
		),
	)
	return p, bar
}
