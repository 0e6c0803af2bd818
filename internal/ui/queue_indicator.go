// internal/ui/queue_indicator.go
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-lane-defense/internal/component"
)

const (
	queueCellSize = 14
	queueCellGap  = 4
)

var queueFillColor = color.RGBA{194, 178, 128, 255}

// QueueIndicator draws one cell per queue slot. Occupied cells are filled
// and the head cell fills up as its spawn timer runs down.
type QueueIndicator struct {
	X, Y float32
}

func NewQueueIndicator(x, y float32) *QueueIndicator {
	return &QueueIndicator{X: x, Y: y}
}

func (i *QueueIndicator) Draw(screen *ebiten.Image, q *component.SpawnQueue) {
	for j := 0; j < q.Capacity; j++ {
		x := i.X + float32(j)*(queueCellSize+queueCellGap)
		vector.StrokeRect(screen, x, i.Y, queueCellSize, queueCellSize, borderWidth, borderColor, false)
		if j >= q.Len() {
			continue
		}
		h := float32(queueCellSize - 2*borderWidth)
		if j == 0 {
			h *= float32(HeadProgress(q))
		}
		if h > 0 {
			vector.DrawFilledRect(screen, x+borderWidth, i.Y+queueCellSize-borderWidth-h, queueCellSize-2*borderWidth, h, queueFillColor, false)
		}
	}
}

// HeadProgress is how far the head of q is towards release, in [0, 1].
func HeadProgress(q *component.SpawnQueue) float64 {
	head, ok := q.Head()
	if !ok {
		return 0
	}
	if !q.Started || head.SpawnTime <= 0 {
		if q.Started {
			return 1
		}
		return 0
	}
	p := 1 - q.Timer/head.SpawnTime
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
