package trainer

import (
	"fmt"

	"github.com/gosuri/uilive"
)

// progress keeps a single live-updating line on the terminal while
// batches come in, so long runs stay observable without scrolling logs.
type progress struct {
	w *uilive.Writer
}

func newProgress() *progress {
	w := uilive.New()
	w.Start()
	return &progress{w: w}
}

func (p *progress) update(steps, total int, meanReward float64) {
	pct := 100 * float64(steps) / float64(total)
	if pct > 100 {
		pct = 100
	}
	fmt.Fprintf(p.w, "training: %d/%d steps (%.1f%%) mean_reward=%.2f\n",
		steps, total, pct, meanReward)
}

func (p *progress) stop() {
	p.w.Stop()
}
