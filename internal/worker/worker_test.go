package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/piwi3910/gallerywall/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, ch <-chan Response) []Response {
	t.Helper()
	var out []Response
	timeout := time.After(5 * time.Second)
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, r)
		case <-timeout:
			t.Fatal("timed out waiting for responses")
		}
	}
}

func TestWorker_GenerateClosesAfterTerminal(t *testing.T) {
	w := New(&Orchestrator{NewGenerator: fakeFactory(fakeGenerator{count: 3}, nil)})

	out := drain(t, w.Generate(context.Background(), validInput()))
	require.Len(t, out, 4)
	assert.True(t, out[3].Terminal())
	for _, r := range out[:3] {
		assert.False(t, r.Terminal())
	}
}

func TestWorker_ServeHandlesRequestsInOrder(t *testing.T) {
	w := New(&Orchestrator{NewGenerator: fakeFactory(fakeGenerator{count: 2}, nil)})
	requests := make(chan Request, 3)
	responses := make(chan Response, 16)

	empty := validInput()
	empty.Inventory = nil
	requests <- Request{Type: TypeGenerate, Payload: validInput()}
	requests <- Request{Type: "PING"}
	requests <- Request{Type: TypeGenerate, Payload: empty}
	close(requests)

	w.Serve(context.Background(), requests, responses)
	close(responses)

	var types []MessageType
	for r := range responses {
		types = append(types, r.Type)
	}
	assert.Equal(t, []MessageType{
		TypeSolutionFound, TypeSolutionFound, TypeDone,
		TypeError,
		TypeDone,
	}, types)
}

func TestWorker_ServeStopsOnCancel(t *testing.T) {
	w := New(&Orchestrator{NewGenerator: fakeFactory(fakeGenerator{count: 1}, nil)})
	ctx, cancel := context.WithCancel(context.Background())
	requests := make(chan Request)
	finished := make(chan struct{})

	go func() {
		w.Serve(ctx, requests, make(chan Response, 4))
		close(finished)
	}()
	cancel()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestResponse_DoneCountAlwaysSerialized(t *testing.T) {
	r := done(0)
	require.NotNil(t, r.Count)
	assert.Equal(t, 0, *r.Count)
	assert.Nil(t, solutionFound(model.LayoutSolution{}).Count)
}

func TestResponse_JSONShape(t *testing.T) {
	data, err := json.Marshal(done(0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"DONE","count":0}`, string(data))

	data, err = json.Marshal(failure("bad wall"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ERROR","message":"bad wall"}`, string(data))
}
