// internal/audio/sound_manager.go
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
)

// Sink plays finished streamers.
type Sink interface {
	Play(s beep.Streamer)
}

// SpeakerSink mixes everything into the system speaker.
type SpeakerSink struct {
	mixer *beep.Mixer
}

// NewSpeakerSink opens the speaker. It fails on machines without audio.
func NewSpeakerSink() (*SpeakerSink, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	s := &SpeakerSink{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

func (s *SpeakerSink) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops every queued sound.
func (s *SpeakerSink) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}

// cues maps events to what they sound like.
var cues = map[event.EventType][]Tone{
	event.UnitDied: {
		{Freq: 140, Duration: 90 * time.Millisecond, Wave: WaveSquare, Volume: 0.15},
	},
	event.BaseDestroyed: {
		{Freq: 60, Duration: 600 * time.Millisecond, Wave: WaveNoise, Volume: 0.4},
	},
	event.LevelUp: {
		{Freq: 660, Duration: 90 * time.Millisecond, Wave: WaveSine, Volume: 0.3},
		{Freq: 880, Duration: 140 * time.Millisecond, Wave: WaveSine, Volume: 0.3},
	},
	event.MatchOver: {
		{Freq: 523.25, Duration: 150 * time.Millisecond, Wave: WaveSine, Volume: 0.3},
		{Freq: 659.25, Duration: 150 * time.Millisecond, Wave: WaveSine, Volume: 0.3},
		{Freq: 783.99, Duration: 300 * time.Millisecond, Wave: WaveSine, Volume: 0.3},
	},
}

// minGap keeps a burst of identical events from stacking into noise.
const minGap = 60 * time.Millisecond

// SoundManager turns game events into short tones. It listens on the
// dispatcher and never touches the simulation.
type SoundManager struct {
	mu       sync.Mutex
	sink     Sink
	listener types.Faction // deaths on this side are not announced
	now      func() time.Time
	lastPlay map[event.EventType]time.Time
	logger   *zap.Logger
}

func NewSoundManager(sink Sink, listener types.Faction, logger *zap.Logger) *SoundManager {
	return &SoundManager{
		sink:     sink,
		listener: listener,
		now:      time.Now,
		lastPlay: make(map[event.EventType]time.Time),
		logger:   logger,
	}
}

// Attach subscribes to every event that has a cue.
func (m *SoundManager) Attach(d *event.Dispatcher) {
	for eventType := range cues {
		d.Subscribe(eventType, m)
	}
}

func (m *SoundManager) OnEvent(e event.Event) {
	tones, ok := cues[e.Type]
	if !ok {
		return
	}
	if data, ok := e.Data.(event.UnitDiedData); ok && e.Type == event.UnitDied && data.Faction == m.listener {
		return
	}

	m.mu.Lock()
	now := m.now()
	if last, ok := m.lastPlay[e.Type]; ok && now.Sub(last) < minGap {
		m.mu.Unlock()
		return
	}
	m.lastPlay[e.Type] = now
	m.mu.Unlock()

	m.logger.Debug("cue", zap.String("event", string(e.Type)))
	m.sink.Play(Sequence(tones...))
}
