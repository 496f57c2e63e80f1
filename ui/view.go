package ui

import (
	"image"
	"time"

	"github.com/55utah/fc6502/nes"
)

// RunView runs console until BRK or an error, pushing a frame to frames
// whenever the framebuffer changes. A full channel drops the frame.
// delay is slept after every instruction.
func RunView(console *nes.Console, frames chan<- *image.RGBA, delay time.Duration) error {
	console.Refresh()
	frames <- console.Buffer()

	view := nes.StepHookFunc(func(cpu *nes.CPU) error {
		if console.Refresh() {
			select {
			case frames <- console.Buffer():
			default:
			}
		}
		if delay > 0 {
			time.Sleep(delay)
		}
		return nil
	})
	return console.Run(view)
}
