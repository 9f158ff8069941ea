package testutil

import (
	"fmt"
	"sync"

	"github.com/udisondev/emberfall/internal/model"
)

// ScriptedDice — детерминированный источник случайности для unit тестов.
//
// Every draw consumes the next value of Rolls:
//   - PercentChance(n) succeeds when roll < n;
//   - Between(a, b) returns min(a,b) + roll, clamped to max(a,b); a == b draws nothing;
//   - IntN(n) returns roll % n.
//
// When Rolls runs out PercentChance rolls 99, Between returns its lower bound
// and IntN returns 0. Every call is appended to Calls.
type ScriptedDice struct {
	Rolls []int
	Calls []string
}

// NewScriptedDice creates a ScriptedDice with the given rolls.
func NewScriptedDice(rolls ...int) *ScriptedDice {
	return &ScriptedDice{Rolls: rolls}
}

func (d *ScriptedDice) next(fallback int) int {
	if len(d.Rolls) == 0 {
		return fallback
	}
	v := d.Rolls[0]
	d.Rolls = d.Rolls[1:]
	return v
}

// PercentChance implements combat.Dice.
func (d *ScriptedDice) PercentChance(n int) bool {
	d.Calls = append(d.Calls, fmt.Sprintf("percent(%d)", n))
	return d.next(99) < n
}

// Between implements combat.Dice.
func (d *ScriptedDice) Between(a, b int) int {
	if a == b {
		return a
	}
	d.Calls = append(d.Calls, fmt.Sprintf("between(%d,%d)", a, b))
	lo, hi := min(a, b), max(a, b)
	return min(lo+d.next(0), hi)
}

// IntN implements combat.Dice.
func (d *ScriptedDice) IntN(n int) int {
	d.Calls = append(d.Calls, fmt.Sprintf("intn(%d)", n))
	return d.next(0) % n
}

// StatusSet — фиксированный набор campaign статусов.
type StatusSet map[string]bool

// CheckStatus implements campaign.StatusOracle.
func (s StatusSet) CheckStatus(name string) bool {
	return s[name]
}

// StubCollider отвечает на line-of-movement фиксированным значением и записывает unblock.
type StubCollider struct {
	Clear     bool
	Unblocked []model.FPoint
}

// LineOfMovement returns c.Clear.
func (c *StubCollider) LineOfMovement(_, _, _, _ float32, _ model.MovementType) bool {
	return c.Clear
}

// Unblock records the position.
func (c *StubCollider) Unblock(x, y float32) {
	c.Unblocked = append(c.Unblocked, model.FPoint{X: x, Y: y})
}

// Dummy — минимальная цель для resolver: статы, имя анимации и записанные звуки.
type Dummy struct {
	StatBlock *model.StatBlock
	Animation string
	Resets    int
	Sounds    []model.SoundKind
}

// NewDummy wraps stats in a Dummy.
func NewDummy(stats *model.StatBlock) *Dummy {
	return &Dummy{StatBlock: stats}
}

// Stats returns the wrapped StatBlock.
func (d *Dummy) Stats() *model.StatBlock { return d.StatBlock }

// ActiveAnimationName returns d.Animation.
func (d *Dummy) ActiveAnimationName() string { return d.Animation }

// ResetActiveAnimation counts resets.
func (d *Dummy) ResetActiveAnimation() { d.Resets++ }

// PlaySound records kind.
func (d *Dummy) PlaySound(kind model.SoundKind) {
	d.Sounds = append(d.Sounds, kind)
}

// PlayedSound — запись одного вызова Play.
type PlayedSound struct {
	ID      int
	Channel string
}

// RecordingAudio — audio sink, записывающий load/unload/play.
// Safe for concurrent use.
type RecordingAudio struct {
	mu       sync.Mutex
	nextID   int
	Loaded   map[int]string
	Unloaded []int
	Played   []PlayedSound
}

// NewRecordingAudio creates an empty RecordingAudio.
func NewRecordingAudio() *RecordingAudio {
	return &RecordingAudio{Loaded: make(map[int]string)}
}

// Load assigns the next id to path. Ids start at 1.
func (a *RecordingAudio) Load(path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextID++
	a.Loaded[a.nextID] = path
	return a.nextID
}

// Unload records id.
func (a *RecordingAudio) Unload(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.Loaded, id)
	a.Unloaded = append(a.Unloaded, id)
}

// Play records id and channel.
func (a *RecordingAudio) Play(id int, channel string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Played = append(a.Played, PlayedSound{ID: id, Channel: channel})
}
