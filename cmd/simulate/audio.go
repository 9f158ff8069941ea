package main

import "log/slog"

// logAudio stands in for a mixer: it hands out ids and logs playback.
type logAudio struct {
	next  int
	paths map[int]string
}

func newLogAudio() *logAudio {
	return &logAudio{paths: make(map[int]string)}
}

func (a *logAudio) Load(path string) int {
	a.next++
	a.paths[a.next] = path
	return a.next
}

func (a *logAudio) Unload(id int) {
	delete(a.paths, id)
}

func (a *logAudio) Play(id int, channel string) {
	slog.Debug("sound", "file", a.paths[id], "channel", channel)
}
