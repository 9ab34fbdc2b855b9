package nes

import (
	"testing"

	"github.com/jnesproject/gones/ines"
)

func TestMirrorVertical(t *testing.T) {
	cases := []struct {
		addr uint16
		want uint16
	}{
		{0x2000, 0x000},
		{0x23FF, 0x3FF},
		{0x2400, 0x400}, // nametable 1, second physical half
		{0x2800, 0x000}, // nametable 2 mirrors nametable 0
		{0x2C00, 0x400}, // nametable 3 mirrors nametable 1
		{0x3000, 0x000}, // 0x3000-0x3EFF mirrors 0x2000-0x2EFF
	}
	for _, c := range cases {
		if got := mirrorNametable(c.addr, ines.MirrorVertical); got != c.want {
			t.Errorf("mirrorNametable(%#04x, vertical) = %#03x, want %#03x", c.addr, got, c.want)
		}
	}
}

func TestMirrorHorizontal(t *testing.T) {
	cases := []struct {
		addr uint16
		want uint16
	}{
		{0x2000, 0x000},
		{0x2400, 0x000}, // nametable 1 mirrors nametable 0
		{0x2800, 0x400}, // nametable 2, second physical half
		{0x2C00, 0x400}, // nametable 3 mirrors nametable 2
	}
	for _, c := range cases {
		if got := mirrorNametable(c.addr, ines.MirrorHorizontal); got != c.want {
			t.Errorf("mirrorNametable(%#04x, horizontal) = %#03x, want %#03x", c.addr, got, c.want)
		}
	}
}
