package nes

import "github.com/jnesproject/gones/ines"

// mirrorNametable maps the logical 4 KiB nametable range 0x2000-0x2FFF
// (and its mirror at 0x3000-0x3EFF) down to a physical 2 KiB VRAM
// offset, per the cartridge's mirroring mode.
//
// The four logical 1 KiB nametables are numbered 0-3 by address order.
// Vertical mirroring pairs {0,2} and {1,3} into the two physical 1 KiB
// pages (nametable select bit 0x400 chooses the page); horizontal
// mirroring pairs {0,1} and {2,3} (bit 0x800 chooses the page).
//
// Addresses in 0x3000-0x3EFF mirror 0x2000-0x2EFF and are folded back
// before the rule above is applied; the Rust ancestor this spec was
// distilled from elides this fold, but a faithful core includes it. That
// ancestor's horizontal-mirroring test also mis-parenthesized the two
// half-open ranges so the second one applied unconditionally, collapsing
// all four nametables onto one physical page; the bit-select form here
// doesn't share that failure mode.
func mirrorNametable(address uint16, mirror ines.Mirroring) uint16 {
	if address >= 0x3000 {
		address -= 0x1000
	}
	rel := address - 0x2000
	nt := rel / 0x400
	offsetInTable := rel % 0x400

	var page uint16
	switch mirror {
	case ines.MirrorVertical:
		page = nt & 1
	case ines.MirrorHorizontal:
		page = (nt >> 1) & 1
	}
	return page*0x400 + offsetInTable
}
