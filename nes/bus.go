package nes

import "github.com/golang/glog"

// Bus is the CPU-side memory aggregate: the single owner of system
// RAM, the PPU, the APU and the Cartridge. It decodes the 16-bit CPU
// address space and forwards reads/writes to the right region.
//
// CPU memory map:
//   0x0000-0x1FFF  System RAM, mirrored every 0x0800 bytes
//   0x2000-0x3FFF  PPU registers, mirrored every 8 bytes
//   0x4000-0x4013  APU registers
//   0x4014         OAM DMA (handled by CPU.write, not here)
//   0x4015         APU status
//   0x4016         Controller port (strobe write / serial read)
//   0x4017         APU frame counter / 2nd controller (unimplemented)
//   0x4018-0x401F  APU/IO test mode, unmapped
//   0x4020-0xFFFF  Cartridge PRG (0x4020-0x7FFF unmapped on NROM)
type Bus struct {
	wram       *ram
	ppu        *PPU
	apu        *APU
	cartridge  *Cartridge
	controller *Controller

	// lastValue is the most recent byte placed on the bus, returned by
	// reads of the APU registers (open-bus behavior) per spec.
	lastValue byte
}

// NewBus creates the CPU-side bus aggregate.
func NewBus(wram *ram, ppu *PPU, apu *APU, cartridge *Cartridge, controller *Controller) *Bus {
	return &Bus{wram: wram, ppu: ppu, apu: apu, cartridge: cartridge, controller: controller}
}

func (b *Bus) readPPURegister(address uint16) byte {
	switch 0x2000 + address%8 {
	case 0x2002:
		return b.ppu.readStatus()
	case 0x2004:
		return b.ppu.readOAMData()
	case 0x2007:
		return b.ppu.readData()
	default:
		// Write-only registers read back as open bus: the last byte
		// written to any PPU register.
		return b.ppu.lastWrite
	}
}

func (b *Bus) writePPURegister(address uint16, data byte) {
	switch 0x2000 + address%8 {
	case 0x2000:
		b.ppu.writeCtrl(data)
	case 0x2001:
		b.ppu.writeMask(data)
	case 0x2003:
		b.ppu.writeOAMAddr(data)
	case 0x2004:
		b.ppu.writeOAMData(data)
	case 0x2005:
		b.ppu.writeScroll(data)
	case 0x2006:
		b.ppu.writeAddr(data)
	case 0x2007:
		b.ppu.writeData(data)
	}
}

// read reads a byte from CPU address space. Unmapped ranges return 0
// per spec (reads from unwired regions return 0), tracked through
// lastValue for the handful of registers that expose open bus.
func (b *Bus) read(address uint16) byte {
	var v byte
	switch {
	case address < 0x2000:
		v = b.wram.read(address % 0x0800)
	case address < 0x4000:
		v = b.readPPURegister(address)
	case address == 0x4016:
		v = b.controller.read()
	case address <= 0x4015, address == 0x4017:
		// APU registers: reads return last bus value (spec §4.2).
		v = b.lastValue
	case address < 0x4020:
		v = 0 // APU/IO test mode: unmapped
	case address < 0x8000:
		v = 0 // extended/battery RAM: unmapped on NROM
	default:
		v = b.cartridge.ReadPRG(address)
	}
	b.lastValue = v
	return v
}

// read16 reads a little-endian 16-bit value.
func (b *Bus) read16(address uint16) uint16 {
	lo := uint16(b.read(address))
	hi := uint16(b.read(address + 1))
	return hi<<8 | lo
}

// write writes a byte to CPU address space. Writes to unwired regions
// are silently dropped per spec §7; 0x4014 (OAM DMA) is intercepted by
// CPU.write before reaching here, since servicing it needs to stall
// the CPU.
func (b *Bus) write(address uint16, data byte) {
	b.lastValue = data
	switch {
	case address < 0x2000:
		b.wram.write(address%0x0800, data)
	case address < 0x4000:
		b.writePPURegister(address, data)
	case address == 0x4014:
		glog.Fatalf("nes: $4014 (OAM DMA) must be handled by CPU.write, got to Bus.write")
	case address == 0x4016:
		b.controller.write(data)
	case address <= 0x4015, address == 0x4017:
		b.apu.WriteRegister(address, data)
	case address < 0x4020:
		// Unimplemented IO test range: accepted, dropped.
	case address < 0x8000:
		// Extended/battery RAM: unmapped on NROM, dropped.
	default:
		b.cartridge.WritePRG(address, data)
	}
}

// writeOAMDMA copies 256 bytes into OAM starting at the PPU's current
// OAM address, as performed by a $4014 write.
func (b *Bus) writeOAMDMA(data [256]byte) {
	b.ppu.writeOAMDMA(data)
}
