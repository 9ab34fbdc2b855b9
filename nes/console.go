package nes

// dotsPerScanline is how many PPU dots make up one scanline; the PPU
// dot clock runs exactly 3x the CPU clock.
const (
	dotsPerScanline = 341
	ppuMultiplier   = 3
)

// Console wires a CPU, PPU, APU, Controller and Cartridge together and
// drives their co-execution one CPU instruction at a time.
type Console struct {
	cpu        *CPU
	ppu        *PPU
	apu        *APU
	controller *Controller
	cartridge  *Cartridge

	dots         int
	nmiPending   bool
	lastFrame    uint64
	currentFrame uint64
}

// NewConsole builds a console around an already-parsed cartridge.
func NewConsole(cartridge *Cartridge) *Console {
	controller := NewController()
	ppu := NewPPU(cartridge)
	apu := NewAPU()
	bus := NewBus(newRAM(), ppu, apu, cartridge, controller)
	cpu := NewCPU(bus)
	return &Console{cpu: cpu, ppu: ppu, apu: apu, controller: controller, cartridge: cartridge}
}

// Reset returns the console to its post-power-on state.
func (c *Console) Reset() {
	c.cpu.Reset()
	c.dots = 0
	c.nmiPending = false
	c.lastFrame = 0
	c.currentFrame = 0
}

// Step runs exactly one CPU instruction (or stall/NMI-service cycle),
// co-executing the PPU and APU alongside it, and returns how many CPU
// cycles elapsed.
//
// The PPU dot counter advances by the instruction's base cycle cost
// *before* the instruction runs: this is what lets a PPU register
// write performed by the instruction about to execute land on the
// scanline the hardware would actually place it on. Scanlines resolve
// atomically (renderScanline paints the whole line at once) rather
// than dot-by-dot, so a full scanline's worth of dots is drained in a
// single call whenever the 341-dot boundary is crossed.
//
// NMI is only delivered once the new scanline's dot counter exceeds 2:
// vblank is set on dot 1 of scanline 241, so delivering NMI any
// earlier than that would let the CPU observe it a line early.
func (c *Console) Step() int {
	baseCycles := c.cpu.PeekCycles()
	c.dots += baseCycles * ppuMultiplier
	if c.dots >= dotsPerScanline {
		c.dots %= dotsPerScanline
		if c.ppu.renderScanline() {
			c.nmiPending = true
		}
	}

	cycles := c.cpu.Do()

	if c.nmiPending && c.dots > 2 {
		c.cpu.NMI()
		c.nmiPending = false
	}

	for i := 0; i < cycles; i++ {
		c.apu.Step()
	}

	if c.ppu.Scanline() == 240 {
		c.currentFrame = c.ppu.FrameCount()
	}

	return cycles
}

// Frame returns the current framebuffer and whether it is a frame the
// caller has not yet observed (i.e. a new frame completed since the
// last call that returned true).
func (c *Console) Frame() (*[screenHeight][screenWidth]uint32, bool) {
	if c.lastFrame < c.currentFrame {
		c.lastFrame = c.currentFrame
		return c.ppu.Screen(), true
	}
	return c.ppu.Screen(), false
}

// SetAudioOut wires the channel the host's audio device reads samples
// from.
func (c *Console) SetAudioOut(ch chan float32) {
	c.apu.SetAudioOut(ch)
}

// SetButtons updates controller 1's button state for the next read.
func (c *Console) SetButtons(buttons [8]bool) {
	c.controller.Set(buttons)
}
