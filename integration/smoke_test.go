// Package integration exercises the CPU, PPU, APU and Bus together
// through the public Console API, using a synthetic in-memory ROM
// rather than a binary fixture.
package integration

import (
	"testing"

	"github.com/jnesproject/gones/ines"
	"github.com/jnesproject/gones/nes"
)

// buildROM assembles a minimal playable program: it enables background
// and sprite rendering, then loops forever reading the controller and
// writing its state to a zero-page scratch byte, exercising the PPU
// register path, the controller strobe/read path and the CPU's main
// loop all at once.
func buildROM() *ines.ROM {
	prg := make([]byte, 0x8000)
	program := []byte{
		0xA9, 0x80, // LDA #$80        ; enable NMI generation
		0x8D, 0x00, 0x20, // STA $2000  ; PPUCTRL
		0xA9, 0x18, // LDA #$18        ; show background + sprites
		0x8D, 0x01, 0x20, // STA $2001  ; PPUMASK
		0xA9, 0x01, // LDA #$01
		0x8D, 0x16, 0x40, // STA $4016  ; strobe controller on
		0xA9, 0x00, // LDA #$00
		0x8D, 0x16, 0x40, // STA $4016  ; strobe off, start cycling
		0xAD, 0x16, 0x40, // LDA $4016  ; read button A
		0x85, 0x00, // STA $00
		0x4C, 0x14, 0x80, // JMP $8014  ; loop forever on the read
	}
	copy(prg, program)
	prg[0x7FFC] = 0x00
	prg[0x7FFD] = 0x80
	// NMI vector: just RTI so vblank servicing returns immediately.
	prg[0x7FFA] = 0x30
	prg[0x7FFB] = 0x80
	prg[0x30] = 0x40 // RTI

	return &ines.ROM{PRG: prg, CHR: make([]byte, 0x2000), Mirror: ines.MirrorVertical}
}

func TestConsoleRunsWithoutPanicking(t *testing.T) {
	cart := nes.NewCartridge(buildROM())
	console := nes.NewConsole(cart)
	console.Reset()
	console.SetButtons([8]bool{true}) // hold button A

	frameReady := false
	for i := 0; i < 2_000_000 && !frameReady; i++ {
		console.Step()
		_, frameReady = console.Frame()
	}
	if !frameReady {
		t.Fatalf("no frame became ready within 2,000,000 console steps")
	}

	fb, _ := console.Frame()
	if fb == nil {
		t.Fatalf("Frame returned a nil framebuffer")
	}
}

func TestConsoleAcceptsAudioOutWithoutBlocking(t *testing.T) {
	cart := nes.NewCartridge(buildROM())
	console := nes.NewConsole(cart)
	console.Reset()

	samples := make(chan float32, 4096)
	console.SetAudioOut(samples)

	for i := 0; i < 10000; i++ {
		console.Step()
	}
	if len(samples) == 0 {
		t.Fatalf("no audio samples were produced over 10000 steps")
	}
}
