package nes

// renderScanline resolves one entire scanline at a time: background and
// sprites are painted over each other in priority order, sprite-0 hit is
// evaluated, and the scroll registers are advanced exactly once per
// scanline rather than once per dot. This mirrors the console's real
// timing (341 PPU dots make up a scanline) without tracking per-dot
// fetch state, which the spec this core follows does not require.
//
// It returns true exactly once per frame, on the scanline where vblank
// begins and NMI generation is both enabled and not already latched.
func (p *PPU) renderScanline() bool {
	if p.scanline >= 0 && p.scanline < 240 {
		if !p.sprite0Hit {
			p.sprite0Prerender = [8]byte{}
			p.sprite0BGPrerender = [256]byte{}
		}

		if p.showSprites {
			p.renderSprite(true) // behind-background sprites
		}
		if p.showBG {
			p.renderBG()
		}
		if p.showSprites {
			p.renderSprite(false) // in-front sprites
		}

		if !p.sprite0Hit {
			px0 := int(p.oam[3])
			for x := 0; x < 8; x++ {
				offset := px0 + x
				var bg byte
				if offset <= 254 {
					bg = p.sprite0BGPrerender[offset]
				}
				if bg != 0 && p.sprite0Prerender[x] != 0 {
					p.sprite0Hit = true
					break
				}
			}
		}
	}

	if p.showBG && p.showSprites && !p.vblank {
		p.incrementY()
		p.v = p.v&0x7BE0 | p.t&^uint16(0x7BE0)
	}

	if p.scanline == -1 {
		p.sprite0Hit = false
		if p.showBG && p.showSprites {
			p.screen = [screenHeight][screenWidth]uint32{}
			p.v = p.v&0x041F | p.t&^uint16(0x041F)
		}
	}

	if p.scanline == 241 && !p.initialReset {
		p.vblank = true
		if p.showBG {
			p.frameCount++
		}
	}

	p.scanline++
	if p.scanline > 260 {
		p.scanline = -1
		p.vblank = false
		p.nmiGenerated = false
		p.initialReset = false
	}

	if p.vblank && p.nmiEnable && !p.nmiGenerated {
		p.nmiGenerated = true
		return true
	}
	return false
}

// renderBG paints the current scanline's background, tile by tile,
// advancing v across the nametable with incrementX as it goes.
func (p *PPU) renderBG() {
	sl := p.scanline
	bg := p.color(0)

	for col := 0; col < 32; col++ {
		attrAddr := 0x23C0 | (p.v & 0x0C00) | (p.v>>4)&0x38 | (p.v>>2)&0x07
		attrByte := p.readVideo(attrAddr)

		var attr byte
		quadrant := (sl % 32) / 16
		half := (col % 4) / 2
		switch {
		case quadrant == 0 && half == 0:
			attr = attrByte & 0b0000_0011 >> 0
		case quadrant == 0 && half != 0:
			attr = attrByte & 0b0000_1100 >> 2
		case quadrant != 0 && half == 0:
			attr = attrByte & 0b0011_0000 >> 4
		default:
			attr = attrByte & 0b1100_0000 >> 6
		}

		tilePalette := [4]uint32{
			bg,
			p.color(1 + attr*4),
			p.color(2 + attr*4),
			p.color(3 + attr*4),
		}

		nametableAddr := 0x2000 | (p.v & 0x0FFF)
		tileAddr := uint16(p.readVideo(nametableAddr)) * 16
		if p.bgTableHigh {
			tileAddr += 0x1000
		}

		fineY := p.v >> 12
		lo := p.readVideo(tileAddr + fineY)
		hi := p.readVideo(tileAddr + 8 + fineY)

		start := byte(0)
		if col == 0 {
			start = p.fineX
		}
		for px := start; px < 8; px++ {
			shift := 7 - px
			pv := (hi>>shift)&1<<1 | (lo>>shift)&1
			x := col*8 + int(px) - int(p.fineX)
			p.screen[sl][x] = tilePalette[pv]

			if sl >= int(p.oam[0])+1 && sl <= int(p.oam[0])+8 && !p.sprite0Hit {
				p.sprite0BGPrerender[x] = pv
			}
		}

		p.incrementX()
	}
}

// renderSprite paints either the behind-background (bg=true) or
// in-front (bg=false) sprite pass for the current scanline, in OAM
// priority order (sprite 0 painted last so it wins ties).
func (p *PPU) renderSprite(bg bool) {
	sl := p.scanline
	for s := 63; s >= 0; s-- {
		attrByte := p.oam[s*4+2]
		behind := attrByte&0x20 != 0
		if behind != bg {
			continue
		}

		y := int(p.oam[s*4])
		if sl < y+1 || sl > y+8 {
			continue
		}

		index := uint16(p.oam[s*4+1]) * 16
		if p.spriteTableHigh {
			index += 0x1000
		}
		pal := 0x11 + (attrByte&0b11)*4

		flipH := attrByte&(1<<6) != 0
		flipV := attrByte&(1<<7) != 0
		x := int(p.oam[s*4+3])

		var offset int
		if flipV {
			offset = 7 - (sl - y - 1)
		} else {
			offset = sl - y - 1
		}

		lo := p.readVideo(index + uint16(offset))
		hi := p.readVideo(index + 8 + uint16(offset))

		for px := 0; px < 8; px++ {
			var pv byte
			if flipH {
				pv = (hi>>px)&1<<1 | (lo>>px)&1
			} else {
				shift := 7 - px
				pv = (hi>>shift)&1<<1 | (lo>>shift)&1
			}
			if pv > 0 && x+px < 256 {
				p.screen[sl][x+px] = p.color(byte(pal) + pv - 1)
			}
			if s == 0 && !p.sprite0Hit {
				p.sprite0Prerender[px] = pv
			}
		}
	}
}

// incrementY advances the fine/coarse Y scroll in v, wrapping the
// vertical nametable select bit at row 29 (the last row of on-screen
// tiles; rows 30-31 are the attribute table and never wrap through
// here on a correctly-behaving game).
func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = p.v&^uint16(0x03E0) | y<<5
}

// incrementX advances the coarse X scroll in v, wrapping the horizontal
// nametable select bit every 32 tiles.
func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}
