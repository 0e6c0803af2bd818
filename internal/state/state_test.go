package state

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

type recordingState struct {
	name string
	log  *[]string
}

func (s recordingState) Enter()             { *s.log = append(*s.log, "enter "+s.name) }
func (s recordingState) Update(float64)     { *s.log = append(*s.log, "update "+s.name) }
func (s recordingState) Draw(*ebiten.Image) {}
func (s recordingState) Exit()              { *s.log = append(*s.log, "exit "+s.name) }

func TestStateMachineTransitions(t *testing.T) {
	var log []string
	sm := NewStateMachine()
	sm.Update(16)
	assert.Nil(t, sm.Current())

	sm.SetState(recordingState{name: "game", log: &log})
	sm.Update(16)
	sm.SetState(recordingState{name: "result", log: &log})

	assert.Equal(t, []string{"enter game", "update game", "exit game", "enter result"}, log)
}
