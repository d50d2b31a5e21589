package worker

import "github.com/piwi3910/gallerywall/internal/model"

// MessageType tags a request or response on the generation channel.
type MessageType string

const (
	TypeGenerate      MessageType = "GENERATE"
	TypeSolutionFound MessageType = "SOLUTION_FOUND"
	TypeDone          MessageType = "DONE"
	TypeError         MessageType = "ERROR"
)

// Request asks the worker to generate layouts for Payload.
type Request struct {
	Type    MessageType `json:"type"`
	Payload model.Input `json:"payload"`
}

// Response is one message of a generation stream: zero or more
// SOLUTION_FOUND messages followed by exactly one DONE or ERROR.
type Response struct {
	Type    MessageType           `json:"type"`
	Payload *model.LayoutSolution `json:"payload,omitempty"`
	Count   *int                  `json:"count,omitempty"` // DONE only: total solutions generated
	Message string                `json:"message,omitempty"`
}

// Terminal reports whether r ends its request.
func (r Response) Terminal() bool {
	return r.Type == TypeDone || r.Type == TypeError
}

func solutionFound(sol model.LayoutSolution) Response {
	return Response{Type: TypeSolutionFound, Payload: &sol}
}

func done(count int) Response {
	return Response{Type: TypeDone, Count: &count}
}

func failure(msg string) Response {
	return Response{Type: TypeError, Message: msg}
}
