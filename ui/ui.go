/*
负责窗口渲染，接受控制的模块
*/

package ui

import (
	"image"
	"log"
	"time"

	"fyne.io/fyne"
	"fyne.io/fyne/app"
	"fyne.io/fyne/canvas"
	"fyne.io/fyne/driver/desktop"

	"github.com/55utah/fc6502/nes"
)

const scale = 10

func keyParse(ev *fyne.KeyEvent) int {
	var index int = -1
	switch ev.Name {
	case fyne.KeyW, fyne.KeyUp:
		index = nes.ButtonUp
	case fyne.KeyS, fyne.KeyDown:
		index = nes.ButtonDown
	case fyne.KeyA, fyne.KeyLeft:
		index = nes.ButtonLeft
	case fyne.KeyD, fyne.KeyRight:
		index = nes.ButtonRight
	}
	return index
}

// OpenWindow shows the framebuffer in a window and blocks until the
// window closes or the program stops.
func OpenWindow(console *nes.Console, delay time.Duration) {
	myApp := app.New()
	w := myApp.NewWindow("TinyFC")
	size := nes.ScreenWidth * scale
	w.Resize(fyne.NewSize(size, size))
	// 禁止用户缩放窗口
	w.SetFixedSize(true)
	myCanvas := w.Canvas()

	if deskCanvas, ok := myCanvas.(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if ev.Name == fyne.KeyEscape {
				myApp.Quit()
				return
			}
			if index := keyParse(ev); index >= 0 {
				console.Controller.PressButton(index)
			}
		})
	}

	frames := make(chan *image.RGBA, 1)
	go func() {
		if err := RunView(console, frames, delay); err != nil {
			log.Printf("emulation stopped: %v", err)
		}
		close(frames)
	}()
	go changeContent(myCanvas, frames)

	w.ShowAndRun()
}

func changeContent(can fyne.Canvas, frames <-chan *image.RGBA) {
	for frame := range frames {
		res := canvas.NewImageFromImage(Resize(frame, scale))
		res.FillMode = canvas.ImageFillOriginal
		can.SetContent(res)
	}
}
