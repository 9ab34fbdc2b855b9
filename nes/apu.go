package nes

import "math"

// APU is the audio register sink. Per spec this core does not
// synthesize sound: real channel state is tracked only far enough to
// exist as a register target for CPU writes (so $4000-$4015 and
// $4017 are "accepted" rather than unmapped), and the audio output fed
// to the host is a placeholder tone, not an accurate mix. Accurate APU
// synthesis is an explicit Non-goal.
type APU struct {
	pulse1, pulse2 pulse
	out            chan float32
	sample         int
	enabled        byte // $4015
}

func NewAPU() *APU {
	return &APU{}
}

// WriteRegister accepts a CPU write to one of the APU's registers.
// Addresses outside $4000-$4013, $4015, $4017 are not APU registers
// and are not routed here.
func (a *APU) WriteRegister(address uint16, data byte) {
	switch {
	case address >= 0x4000 && address <= 0x4003:
		a.pulse1.write(address-0x4000, data)
	case address >= 0x4004 && address <= 0x4007:
		a.pulse2.write(address-0x4004, data)
	case address == 0x4015:
		a.enabled = data
	case address == 0x4017:
		// Frame counter mode/IRQ inhibit: accepted, not emulated.
	}
}

// Step advances the audio sink by one CPU cycle's worth of samples.
func (a *APU) Step() {
	const sampleRate = 44100
	x := float32(math.Sin(2.0 * math.Pi * 440 * float64(a.sample) / float64(sampleRate)))
	if a.out != nil {
		select {
		case a.out <- x: // left
		default:
		}
		select {
		case a.out <- x: // right
		default:
		}
	}
	a.sample++
	if a.sample >= sampleRate*10 {
		a.sample = 0
	}
}

// SetAudioOut wires the sink channel the host's audio device consumes.
func (a *APU) SetAudioOut(c chan float32) {
	a.out = c
}

// pulse tracks a pulse channel's register bytes without synthesizing
// its waveform (Non-goal: accurate APU sound synthesis).
type pulse struct {
	control, sweep, timerLow, timerHigh byte
}

func (p *pulse) write(reg uint16, data byte) {
	switch reg {
	case 0:
		p.control = data
	case 1:
		p.sweep = data
	case 2:
		p.timerLow = data
	case 3:
		p.timerHigh = data
	}
}
