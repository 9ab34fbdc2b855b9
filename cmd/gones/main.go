// Command gones runs an NES ROM in a window.
package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/jnesproject/gones/ines"
	"github.com/jnesproject/gones/nes"
	"github.com/jnesproject/gones/ui"
)

var (
	scale = flag.Int("scale", 2, "window scale factor")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	romPath := "smb.nes"
	if flag.NArg() > 0 {
		romPath = flag.Arg(0)
	}

	rom, err := ines.Load(romPath)
	if err != nil {
		glog.Exitf("load %s: %v", romPath, err)
	}
	if rom.Mapper != 0 {
		glog.Infof("%s declares mapper %d; only the identity mapping is emulated, loading anyway", romPath, rom.Mapper)
	}

	cart := nes.NewCartridge(rom)
	console := nes.NewConsole(cart)
	console.Reset()

	ui.Start(console, nes.ScreenWidth*(*scale), nes.ScreenHeight*(*scale))
}
