// Package model provides Bubble Tea models and render loops for the CLI.
package model

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/schemewatch/pkg/colorscheme"
)

// ReadFunc reads the preferred color scheme from host, arranging for
// scheduleUpdate to be called when it changes. colorscheme.Use and
// (*colorscheme.Hook).Read both satisfy it.
type ReadFunc func(host colorscheme.Host, scheduleUpdate func()) colorscheme.Scheme

// RerenderMsg asks the watch model to render again.
type RerenderMsg struct{}

// sender is the part of *tea.Program the scheduler needs.
type sender interface {
	Send(msg tea.Msg)
}

// Scheduler turns change notifications into RerenderMsg deliveries.
// Schedule may be called from any goroutine and never blocks; calls made
// before a program is bound are dropped, since the first render reads the
// current value anyway.
type Scheduler struct {
	mu     sync.RWMutex
	target sender
}

// NewScheduler returns a scheduler with no program bound.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Bind attaches the program that receives RerenderMsg.
func (s *Scheduler) Bind(p *tea.Program) {
	s.bind(p)
}

func (s *Scheduler) bind(target sender) {
	s.mu.Lock()
	s.target = target
	s.mu.Unlock()
}

// Schedule requests a re-render.
func (s *Scheduler) Schedule() {
	s.mu.RLock()
	target := s.target
	s.mu.RUnlock()

	if target == nil {
		return
	}
	// Program.Send blocks until the event loop reads the message.
	go target.Send(RerenderMsg{})
}
