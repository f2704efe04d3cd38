// Package servicetest provides a scripted service.Generator for tests.
package servicetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/fadilmartias/career-compass/internal/service"
)

// Reply is what the generator returns for one prompt name.
type Reply struct {
	Text string
	Err  error
	// Gate, when set, blocks the call until it is closed or the context ends.
	Gate chan struct{}
}

// Generator answers each request with the reply registered for its Name and
// records every request it sees.
type Generator struct {
	mu       sync.Mutex
	replies  map[string][]Reply
	Requests []service.GenerateRequest
}

func New() *Generator {
	return &Generator{replies: make(map[string][]Reply)}
}

// On queues replies for a prompt name. The last reply is reused once the
// queue is drained.
func (g *Generator) On(name string, replies ...Reply) *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies[name] = append(g.replies[name], replies...)
	return g
}

func (g *Generator) Generate(ctx context.Context, req service.GenerateRequest) (string, error) {
	g.mu.Lock()
	g.Requests = append(g.Requests, req)
	queue := g.replies[req.Name]
	if len(queue) == 0 {
		g.mu.Unlock()
		return "", fmt.Errorf("no scripted reply for %q", req.Name)
	}
	reply := queue[0]
	if len(queue) > 1 {
		g.replies[req.Name] = queue[1:]
	}
	g.mu.Unlock()

	if reply.Gate != nil {
		select {
		case <-reply.Gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return reply.Text, reply.Err
}

// Calls returns how many requests were made for name.
func (g *Generator) Calls(name string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, r := range g.Requests {
		if r.Name == name {
			n++
		}
	}
	return n
}

// Last returns the most recent request for name.
func (g *Generator) Last(name string) (service.GenerateRequest, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := len(g.Requests) - 1; i >= 0; i-- {
		if g.Requests[i].Name == name {
			return g.Requests[i], true
		}
	}
	return service.GenerateRequest{}, false
}
