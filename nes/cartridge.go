package nes

import (
	"fmt"

	"github.com/jnesproject/gones/ines"
)

// Cartridge is a read-only view over PRG-ROM and CHR-ROM, plus the
// nametable mirroring mode. It implements only the identity/flat
// mapping (iNES mapper 0, NROM): a 16 KiB PRG-ROM is mirrored across
// both CPU banks, a 32 KiB PRG-ROM fills them directly, and CHR is
// addressed directly. Mappers beyond nametable mirroring are out of
// scope (see spec Non-goals); a cartridge built from any other mapper
// number still loads, decoded as NROM, since identity mapping is the
// only mapping this core understands.
type Cartridge struct {
	prg    []byte
	chr    []byte
	mirror ines.Mirroring
}

// NewCartridge wraps a parsed iNES ROM for bus access.
func NewCartridge(rom *ines.ROM) *Cartridge {
	return &Cartridge{prg: rom.PRG, chr: rom.CHR, mirror: rom.Mirror}
}

// ReadPRG reads a byte from CPU address space 0x8000-0xFFFF.
func (c *Cartridge) ReadPRG(address uint16) byte {
	offset := int(address-0x8000) % len(c.prg)
	return c.prg[offset]
}

// WritePRG accepts writes to the PRG window; NROM has no writable PRG
// registers, so this is a no-op (mirrors the real cartridge's
// open-bus behavior rather than erroring).
func (c *Cartridge) WritePRG(address uint16, value byte) {}

// ReadCHR reads a byte from the 14-bit PPU pattern-table space.
func (c *Cartridge) ReadCHR(address uint16) byte {
	return c.chr[address]
}

// WriteCHR writes a byte to CHR space. Only meaningful for CHR-RAM
// cartridges (zero CHR banks in the header); writes to CHR-ROM are
// accepted the way NROM+CHR-RAM boards behave, since this core does
// not distinguish ROM from RAM backing at the mapper level.
func (c *Cartridge) WriteCHR(address uint16, value byte) {
	if int(address) >= len(c.chr) {
		return
	}
	c.chr[address] = value
}

// Mirror returns the cartridge's declared nametable mirroring mode.
func (c *Cartridge) Mirror() ines.Mirroring {
	return c.mirror
}

func (c *Cartridge) String() string {
	return fmt.Sprintf("Cartridge{prg=%dB chr=%dB mirror=%v}", len(c.prg), len(c.chr), c.mirror)
}
