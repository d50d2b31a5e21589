package worker

import (
	"context"
	"fmt"

	"github.com/piwi3910/gallerywall/internal/model"
)

// Worker moves generation off the caller's goroutine. Requests are served
// one at a time; each request's responses end with DONE or ERROR.
type Worker struct {
	orch *Orchestrator
}

func New(orch *Orchestrator) *Worker {
	return &Worker{orch: orch}
}

// Serve handles requests until the channel is closed or ctx is done.
// Responses are written to responses in order.
func (w *Worker) Serve(ctx context.Context, requests <-chan Request, responses chan<- Response) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-requests:
			if !ok {
				return
			}
			w.handle(ctx, req, func(r Response) {
				select {
				case responses <- r:
				case <-ctx.Done():
				}
			})
		}
	}
}

func (w *Worker) handle(ctx context.Context, req Request, emit func(Response)) {
	if req.Type != TypeGenerate {
		emit(failure(fmt.Sprintf("unsupported request type %q", req.Type)))
		return
	}
	w.orch.RunGeneration(ctx, req.Payload, emit)
}

// Generate runs one request on its own goroutine. The returned channel is
// closed after the terminal message.
func (w *Worker) Generate(ctx context.Context, in model.Input) <-chan Response {
	out := make(chan Response, DefaultMaxEmitted+1)
	go func() {
		defer close(out)
		w.orch.RunGeneration(ctx, in, func(r Response) {
			select {
			case out <- r:
			case <-ctx.Done():
			}
		})
	}()
	return out
}
