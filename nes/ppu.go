package nes

import "github.com/golang/glog"

// Screen dimensions the PPU renders into.
const (
	screenWidth  = 256
	screenHeight = 240

	// ScreenWidth and ScreenHeight are exported for host code (ui
	// package) that needs to size a framebuffer without reaching into
	// package internals.
	ScreenWidth  = screenWidth
	ScreenHeight = screenHeight
)

// palette is the NES master palette: 64 hardware color indices packed as
// 24-bit RGB (R<<16 | G<<8 | B).
// Reference: https://emulation.gametechwiki.com/index.php/Famicom_color_palette
var palette = [64]uint32{
	0x656565, 0x002D69, 0x131F7F, 0x3C137C, 0x600B62, 0x730A37, 0x710F07, 0x5A1A00,
	0x342800, 0x0B3400, 0x003C00, 0x003D10, 0x003840, 0x000000, 0x000000, 0x000000,
	0xAEAEAE, 0x0F63B3, 0x4051D0, 0x7841CC, 0xA736A9, 0xC03470, 0xBD3C30, 0x9F4A00,
	0x6D5C00, 0x366D00, 0x077704, 0x00793D, 0x00727D, 0x000000, 0x000000, 0x000000,
	0xFEFEFF, 0x5DB3FF, 0x8FA1FF, 0xC890FF, 0xF785FA, 0xFF83C0, 0xFF8B7F, 0xEF9A49,
	0xBDAC2C, 0x85BC2F, 0x55C753, 0x3CC98C, 0x3EC2CD, 0x4E4E4E, 0x000000, 0x000000,
	0xFEFEFF, 0xBCDFFF, 0xD1D8FF, 0xE8D1FF, 0xFBCDFD, 0xFFCCE5, 0xFFCFCA, 0xF8D5B4,
	0xE4DCA8, 0xCCE3A9, 0xB9E8B8, 0xAEE8D0, 0xAFE5EA, 0xB6B6B6, 0x000000, 0x000000,
}

// PPU is the picture processing unit: it owns nametable RAM, palette RAM
// and OAM, and renders one whole scanline at a time into screen rather
// than stepping dot-by-dot. The CPU-side co-execution loop (Console.Step)
// decides when a scanline's worth of dots has elapsed and calls
// renderScanline accordingly; the PPU itself carries no per-dot state.
type PPU struct {
	cart *Cartridge
	vram *ram // 2 KiB nametable RAM

	// PPUCTRL $2000
	vramIncrement32 bool
	spriteTableHigh bool
	bgTableHigh     bool
	sprite8x16      bool
	masterSlave     bool
	nmiEnable       bool

	// PPUMASK $2001
	grayscale       bool
	showLeftBG      bool
	showLeftSprites bool
	showBG          bool
	showSprites     bool
	emphasizeRed    bool
	emphasizeGreen  bool
	emphasizeBlue   bool

	// PPUSTATUS $2002
	spriteOverflow bool
	sprite0Hit     bool
	vblank         bool

	oamAddr byte
	oam     [256]byte

	// Loopy scroll registers.
	v     uint16
	t     uint16
	fineX byte
	w     bool

	scanline int

	paletteRAM [32]byte

	lastWrite    byte
	dataBuffer   byte
	initialReset bool
	nmiGenerated bool

	sprite0Prerender   [8]byte
	sprite0BGPrerender [256]byte

	screen [screenHeight][screenWidth]uint32

	frameCount uint64
}

// NewPPU creates a PPU wired to the given cartridge's CHR and mirroring.
func NewPPU(cart *Cartridge) *PPU {
	return &PPU{
		cart:         cart,
		vram:         newRAM(),
		scanline:     241,
		initialReset: true,
	}
}

// writeCtrl handles a $2000 write.
func (p *PPU) writeCtrl(data byte) {
	p.lastWrite = data

	p.t &= 0x73FF
	p.t |= uint16(data&3) << 10

	p.vramIncrement32 = data&(1<<2) != 0
	p.spriteTableHigh = data&(1<<3) != 0
	p.bgTableHigh = data&(1<<4) != 0
	p.sprite8x16 = data&(1<<5) != 0
	p.masterSlave = data&(1<<6) != 0
	p.nmiEnable = data&(1<<7) != 0
}

// writeMask handles a $2001 write.
func (p *PPU) writeMask(data byte) {
	p.lastWrite = data

	p.grayscale = data&(1<<0) != 0
	p.showLeftBG = data&(1<<1) != 0
	p.showLeftSprites = data&(1<<2) != 0
	p.showBG = data&(1<<3) != 0
	p.showSprites = data&(1<<4) != 0
	p.emphasizeRed = data&(1<<5) != 0
	p.emphasizeGreen = data&(1<<6) != 0
	p.emphasizeBlue = data&(1<<7) != 0
}

// readStatus handles a $2002 read: the act of reading clears vblank and
// resets the write-toggle latch used by writeScroll/writeAddr.
func (p *PPU) readStatus() byte {
	var value byte
	if p.spriteOverflow {
		value |= 1 << 5
	}
	if p.sprite0Hit {
		value |= 1 << 6
	}
	if p.vblank {
		value |= 1 << 7
		p.vblank = false
		p.nmiGenerated = false
	}
	p.w = false
	return value | (p.lastWrite & 0b11111)
}

// writeOAMAddr handles a $2003 write.
func (p *PPU) writeOAMAddr(data byte) {
	p.lastWrite = data
	p.oamAddr = data
}

// writeOAMData handles a $2004 write.
func (p *PPU) writeOAMData(data byte) {
	p.lastWrite = data
	p.oam[p.oamAddr] = data
	p.oamAddr++
}

// readOAMData handles a $2004 read.
func (p *PPU) readOAMData() byte {
	return p.oam[p.oamAddr]
}

// writeScroll handles a $2005 write. The first write after readStatus
// sets the fine/coarse X scroll, the second sets Y.
func (p *PPU) writeScroll(data byte) {
	p.lastWrite = data
	if !p.w {
		p.fineX = data & 0x7
		p.t &= 0xFFE0
		p.t |= uint16(data&0xF8) >> 3
	} else {
		p.t &= 0x0C1F
		p.t |= uint16(data&0x7) << 12
		p.t |= uint16(data&0xF8) << 2
	}
	p.w = !p.w
}

// writeAddr handles a $2006 write: two writes assemble the 14-bit VRAM
// address, high byte first.
func (p *PPU) writeAddr(data byte) {
	p.lastWrite = data
	if !p.w {
		p.t &= 0x00FF
		p.t |= uint16(data&0x3F) << 8
	} else {
		p.t &= 0xFF00
		p.t |= uint16(data)
		p.v = p.t
	}
	p.w = !p.w
}

// videoIncrement returns how much v advances after a PPUDATA access.
func (p *PPU) videoIncrement() uint16 {
	if p.vramIncrement32 {
		return 32
	}
	return 1
}

// writeData handles a $2007 write.
func (p *PPU) writeData(data byte) {
	p.lastWrite = data
	p.writeVideo(p.v, data)
	p.v += p.videoIncrement()
}

// readData handles a $2007 read. Reads are buffered one byte behind
// except for palette addresses, which return immediately while the
// buffer is refilled from the nametable mirrored 0x1000 below.
func (p *PPU) readData() byte {
	addr := p.v
	data := p.readVideo(addr)
	p.v += p.videoIncrement()

	if addr >= 0x3F00 && addr <= 0x3FFF {
		p.dataBuffer = p.readVideo(addr - 0x1000)
		return data
	}
	ret := p.dataBuffer
	p.dataBuffer = data
	return ret
}

// writeOAMDMA copies 256 bytes into OAM, as driven by a CPU $4014 write.
// Byte i of the page lands at oam[(oamAddr+i) % 256], not at offset 0:
// the DMA starts wherever OAMADDR currently points and wraps around.
func (p *PPU) writeOAMDMA(data [256]byte) {
	for i := 0; i < 256; i++ {
		p.oam[byte(int(p.oamAddr)+i)] = data[i]
	}
}

// readVideo reads the PPU's own address space (pattern tables, nametable
// RAM and palette RAM), as opposed to the CPU-side Bus.
func (p *PPU) readVideo(addr uint16) byte {
	switch {
	case addr <= 0x1FFF:
		return p.cart.ReadCHR(addr)
	case addr <= 0x3EFF:
		return p.vram.read(mirrorNametable(addr, p.cart.Mirror()))
	case addr <= 0x3FFF:
		return p.paletteRAM[paletteIndex(addr)]
	default:
		glog.Fatalf("nes: PPU read from invalid address %#04x", addr)
		return 0
	}
}

// writeVideo writes the PPU's own address space.
func (p *PPU) writeVideo(addr uint16, data byte) {
	switch {
	case addr <= 0x1FFF:
		p.cart.WriteCHR(addr, data)
	case addr <= 0x3EFF:
		p.vram.write(mirrorNametable(addr, p.cart.Mirror()), data)
	case addr <= 0x3FFF:
		p.paletteRAM[paletteIndex(addr)] = data
	default:
		glog.Fatalf("nes: PPU write to invalid address %#04x", addr)
	}
}

// paletteIndex folds a $3F00-$3FFF address down to the 32-entry palette
// RAM, mirroring the background color into the three sprite-palette
// "transparent" slots.
func paletteIndex(addr uint16) uint16 {
	i := (addr - 0x3F00) % 0x20
	if i == 0x10 || i == 0x14 || i == 0x18 || i == 0x1C {
		i -= 0x10
	}
	return i
}

// color resolves a palette RAM index (0-31) to a packed RGB pixel.
func (p *PPU) color(i byte) uint32 {
	return palette[p.paletteRAM[i]&0x3F]
}

// Scanline reports the PPU's current scanline counter, -1 (pre-render)
// through 260.
func (p *PPU) Scanline() int {
	return p.scanline
}

// FrameCount reports how many frames have completed rendering so far.
func (p *PPU) FrameCount() uint64 {
	return p.frameCount
}

// Screen returns the current framebuffer: 240 rows of 256 packed 24-bit
// RGB pixels. The returned pointer aliases the PPU's own buffer and is
// only valid to read until the next renderScanline call.
func (p *PPU) Screen() *[screenHeight][screenWidth]uint32 {
	return &p.screen
}
