package ui

import (
	"image"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/jnesproject/gones/nes"
)

// getKeys reads the host keyboard, WASD for directions, G/F for
// Start/Select, H/J for B/A.
func getKeys(window *glfw.Window) [8]bool {
	var keys [8]bool
	keys[nes.ButtonRight] = window.GetKey(glfw.KeyD) == glfw.Press
	keys[nes.ButtonLeft] = window.GetKey(glfw.KeyA) == glfw.Press
	keys[nes.ButtonDown] = window.GetKey(glfw.KeyS) == glfw.Press
	keys[nes.ButtonUp] = window.GetKey(glfw.KeyW) == glfw.Press
	keys[nes.ButtonStart] = window.GetKey(glfw.KeyG) == glfw.Press
	keys[nes.ButtonSelect] = window.GetKey(glfw.KeyF) == glfw.Press
	keys[nes.ButtonB] = window.GetKey(glfw.KeyH) == glfw.Press
	keys[nes.ButtonA] = window.GetKey(glfw.KeyJ) == glfw.Press
	return keys
}

// toRGBA converts the console's packed 24-bit RGB framebuffer to an
// image.RGBA, the format updateTexture's OpenGL upload expects.
func toRGBA(fb *[nes.ScreenHeight][nes.ScreenWidth]uint32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, nes.ScreenWidth, nes.ScreenHeight))
	for y := 0; y < nes.ScreenHeight; y++ {
		for x := 0; x < nes.ScreenWidth; x++ {
			pixel := fb[y][x]
			offset := img.PixOffset(x, y)
			img.Pix[offset+0] = byte(pixel >> 16)
			img.Pix[offset+1] = byte(pixel >> 8)
			img.Pix[offset+2] = byte(pixel)
			img.Pix[offset+3] = 0xFF
		}
	}
	return img
}
