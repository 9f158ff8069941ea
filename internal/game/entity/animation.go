package entity

// AnimationDef describes one named animation of an entity.
type AnimationDef struct {
	Name     string
	Frames   int
	Duration int // frames to play every image once
	Looped   bool
}

// Animation is a playing instance of an AnimationDef.
type Animation struct {
	def         AnimationDef
	tick        int
	timesPlayed int
}

// NewAnimation creates an Animation at its first frame.
func NewAnimation(def AnimationDef) *Animation {
	if def.Duration <= 0 {
		def.Duration = 1
	}
	if def.Frames <= 0 {
		def.Frames = 1
	}
	return &Animation{def: def}
}

// Name returns the animation name.
func (a *Animation) Name() string {
	return a.def.Name
}

// Advance moves the animation one game frame forward.
// A non-looped animation holds its last frame once finished.
func (a *Animation) Advance() {
	a.tick++
	if a.tick < a.def.Duration {
		return
	}
	a.timesPlayed++
	if a.def.Looped {
		a.tick = 0
	} else {
		a.tick = a.def.Duration - 1
	}
}

// Frame returns the image index to draw.
func (a *Animation) Frame() int {
	return a.tick * a.def.Frames / a.def.Duration
}

// TimesPlayed returns how many times the animation ran to its end.
func (a *Animation) TimesPlayed() int {
	return a.timesPlayed
}

// IsLastFrame reports whether the animation is on its final tick.
func (a *Animation) IsLastFrame() bool {
	return a.tick == a.def.Duration-1
}

// Reset rewinds the animation to its first frame.
func (a *Animation) Reset() {
	a.tick = 0
	a.timesPlayed = 0
}

// AnimationSet is the animations available to an entity, by name.
type AnimationSet struct {
	defs map[string]AnimationDef
}

// NewAnimationSet creates an AnimationSet from defs.
func NewAnimationSet(defs ...AnimationDef) *AnimationSet {
	s := &AnimationSet{defs: make(map[string]AnimationDef, len(defs))}
	for _, d := range defs {
		s.defs[d.Name] = d
	}
	return s
}

// Animation returns a fresh instance of the named animation, or nil.
func (s *AnimationSet) Animation(name string) *Animation {
	def, ok := s.defs[name]
	if !ok {
		return nil
	}
	return NewAnimation(def)
}
