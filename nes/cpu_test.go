package nes

import (
	"testing"

	"github.com/jnesproject/gones/ines"
)

// newTestCPU builds a CPU over a 32 KiB PRG ROM filled with NOPs, with
// the reset vector pointing at 0x8000, so tests can drop a short
// program at the start of PRG and single-step through it.
func newTestCPU(program []byte) *CPU {
	prg := make([]byte, 0x8000)
	for i := range prg {
		prg[i] = 0xEA // NOP
	}
	copy(prg, program)
	// Reset vector at 0xFFFC-0xFFFD -> 0x8000.
	prg[0x7FFC] = 0x00
	prg[0x7FFD] = 0x80

	cart := NewCartridge(&ines.ROM{PRG: prg, CHR: make([]byte, 0x2000), Mirror: ines.MirrorHorizontal})
	bus := NewBus(newRAM(), NewPPU(cart), NewAPU(), cart, NewController())
	return NewCPU(bus)
}

func TestResetVector(t *testing.T) {
	c := newTestCPU(nil)
	if c.pc != 0x8000 {
		t.Fatalf("pc after reset = %#04x, want 0x8000", c.pc)
	}
	if c.s != 0xFD {
		t.Fatalf("s after reset = %#02x, want 0xFD", c.s)
	}
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c := newTestCPU([]byte{0xA9, 0x00, 0xA9, 0x80, 0xA9, 0x7F})
	c.Do() // LDA #$00
	if !c.p.z || c.p.n {
		t.Fatalf("LDA #0: z=%v n=%v, want z=true n=false", c.p.z, c.p.n)
	}
	c.Do() // LDA #$80
	if c.p.z || !c.p.n {
		t.Fatalf("LDA #0x80: z=%v n=%v, want z=false n=true", c.p.z, c.p.n)
	}
	c.Do() // LDA #$7F
	if c.p.z || c.p.n {
		t.Fatalf("LDA #0x7F: z=%v n=%v, want both false", c.p.z, c.p.n)
	}
}

func TestADCCarryAndOverflow(t *testing.T) {
	// LDA #$7F; ADC #$01 -> overflow (positive+positive=negative), no carry.
	c := newTestCPU([]byte{0xA9, 0x7F, 0x69, 0x01})
	c.Do()
	c.Do()
	if c.a != 0x80 {
		t.Fatalf("a = %#02x, want 0x80", c.a)
	}
	if !c.p.v {
		t.Fatalf("overflow flag not set on 0x7F+0x01")
	}
	if c.p.c {
		t.Fatalf("carry flag unexpectedly set on 0x7F+0x01")
	}
}

func TestSBCBorrow(t *testing.T) {
	// SEC; LDA #$00; SBC #$01 -> 0xFF, carry clear (borrow occurred).
	c := newTestCPU([]byte{0x38, 0xA9, 0x00, 0xE9, 0x01})
	c.Do()
	c.Do()
	c.Do()
	if c.a != 0xFF {
		t.Fatalf("a = %#02x, want 0xFF", c.a)
	}
	if c.p.c {
		t.Fatalf("carry flag set, want clear (borrow)")
	}
}

func TestCompareSetsCarryOnGreaterOrEqual(t *testing.T) {
	c := newTestCPU([]byte{0xA9, 0x10, 0xC9, 0x05})
	c.Do() // LDA #$10
	c.Do() // CMP #$05
	if !c.p.c {
		t.Fatalf("carry not set for 0x10 CMP 0x05 (a >= m)")
	}
	if c.p.z {
		t.Fatalf("zero flag set, a != m")
	}
}

func TestBranchNotTakenCosts2Cycles(t *testing.T) {
	c := newTestCPU([]byte{0xD0, 0x10}) // BNE +16; Z starts false (taken), so set Z first
	c.p.z = true
	cycles := c.Do()
	if cycles != 2 {
		t.Fatalf("untaken branch cost %d cycles, want 2", cycles)
	}
}

func TestBranchTakenSamePageCosts3Cycles(t *testing.T) {
	c := newTestCPU([]byte{0xD0, 0x10}) // BNE +16
	cycles := c.Do()
	if cycles != 3 {
		t.Fatalf("taken same-page branch cost %d cycles, want 3", cycles)
	}
	if c.pc != 0x8000+2+0x10 {
		t.Fatalf("pc after branch = %#04x, want %#04x", c.pc, 0x8000+2+0x10)
	}
}

func TestBranchTakenPageCrossCosts4Cycles(t *testing.T) {
	program := make([]byte, 0xFF)
	program[0xFD] = 0xD0 // BNE at 0x80FD; base (0x80FF) + 1 crosses into page 0x81
	program[0xFE] = 0x01
	c := newTestCPU(program)
	c.pc = 0x80FD
	cycles := c.Do()
	if cycles != 4 {
		t.Fatalf("taken page-crossing branch cost %d cycles, want 4", cycles)
	}
	if c.pc != 0x8100 {
		t.Fatalf("pc after branch = %#04x, want 0x8100", c.pc)
	}
}

func TestIndirectXAddressing(t *testing.T) {
	// LDX #$04; LDA ($10,X) reads the pointer from zero page 0x14/0x15.
	c := newTestCPU([]byte{0xA2, 0x04, 0xA1, 0x10})
	c.bus.write(0x14, 0x00)
	c.bus.write(0x15, 0x02) // pointer -> 0x0200
	c.bus.write(0x0200, 0x42)
	c.Do() // LDX
	c.Do() // LDA (indirectX)
	if c.a != 0x42 {
		t.Fatalf("a = %#02x, want 0x42 via indirectX", c.a)
	}
}

func TestIndirectYAddressing(t *testing.T) {
	// LDY #$01; LDA ($20),Y: pointer at zero page 0x20/0x21, +Y.
	c := newTestCPU([]byte{0xA0, 0x01, 0xB1, 0x20})
	c.bus.write(0x20, 0x00)
	c.bus.write(0x21, 0x03) // base -> 0x0300
	c.bus.write(0x0301, 0x99)
	c.Do() // LDY
	c.Do() // LDA (indirectY)
	if c.a != 0x99 {
		t.Fatalf("a = %#02x, want 0x99 via indirectY", c.a)
	}
}

func TestStackPushPop(t *testing.T) {
	c := newTestCPU(nil)
	startS := c.s
	c.push(0x42)
	if c.s != startS-1 {
		t.Fatalf("s after push = %#02x, want %#02x", c.s, startS-1)
	}
	if got := c.pop(); got != 0x42 {
		t.Fatalf("pop = %#02x, want 0x42", got)
	}
	if c.s != startS {
		t.Fatalf("s after pop = %#02x, want %#02x", c.s, startS)
	}
}

func TestOAMDMAStallsCPU(t *testing.T) {
	c := newTestCPU(nil)
	c.write(0x4014, 0x02) // page 0x0200
	if c.stall == 0 {
		t.Fatalf("OAM DMA write did not stall the CPU")
	}
	total := 0
	for c.stall > 0 {
		total += c.Do()
	}
	if total < 513 {
		t.Fatalf("OAM DMA stalled for %d cycles, want >= 513", total)
	}
}
