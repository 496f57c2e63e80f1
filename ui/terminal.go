package ui

import (
	"fmt"
	"image"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/55utah/fc6502/nes"
)

var errQuit = errors.New("quit")

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// RenderANSI draws img with two spaces per pixel using 24-bit
// background colours, starting from the top-left of the terminal.
func RenderANSI(img *image.RGBA) string {
	var sb strings.Builder
	sb.WriteString("\x1b[H")
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			fmt.Fprintf(&sb, "\x1b[48;2;%d;%d;%dm  ", c.R, c.G, c.B)
		}
		sb.WriteString("\x1b[0m\r\n")
	}
	return sb.String()
}

// keyDecoder turns raw terminal bytes into controller buttons. Arrow
// keys arrive as ESC [ A..D.
type keyDecoder struct {
	seq []byte
}

// feed returns the button for b, -1 for none, and whether to quit.
func (d *keyDecoder) feed(b byte) (int, bool) {
	if len(d.seq) > 0 {
		d.seq = append(d.seq, b)
		if len(d.seq) < 3 {
			if b != '[' {
				d.seq = d.seq[:0]
			}
			return -1, false
		}
		d.seq = d.seq[:0]
		switch b {
		case 'A':
			return nes.ButtonUp, false
		case 'B':
			return nes.ButtonDown, false
		case 'C':
			return nes.ButtonRight, false
		case 'D':
			return nes.ButtonLeft, false
		}
		return -1, false
	}
	switch b {
	case keyEscape:
		d.seq = append(d.seq, b)
	case keyCtrlC, 'q', 'Q':
		return -1, true
	case 'w', 'W':
		return nes.ButtonUp, false
	case 's', 'S':
		return nes.ButtonDown, false
	case 'a', 'A':
		return nes.ButtonLeft, false
	case 'd', 'D':
		return nes.ButtonRight, false
	}
	return -1, false
}

// RunTerminal runs console in the current terminal. W/A/S/D or the
// arrow keys steer, q or Ctrl-C quits.
func RunTerminal(console *nes.Console, delay time.Duration) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return errors.Wrap(err, "set raw mode")
	}
	defer term.Restore(fd, oldState)

	quit := make(chan struct{})
	go readKeys(os.Stdin, console.Controller, quit)

	// 清屏，隐藏光标
	fmt.Print("\x1b[2J\x1b[?25l")
	defer fmt.Print("\x1b[0m\x1b[?25h\r\n")

	console.Refresh()
	fmt.Print(RenderANSI(console.Buffer()))
	lastDraw := time.Now()

	view := nes.StepHookFunc(func(cpu *nes.CPU) error {
		select {
		case <-quit:
			return errQuit
		default:
		}
		// 终端刷新太快会闪，限制在 60fps 左右
		if time.Since(lastDraw) >= 16*time.Millisecond && console.Refresh() {
			fmt.Print(RenderANSI(console.Buffer()))
			lastDraw = time.Now()
		}
		if delay > 0 {
			time.Sleep(delay)
		}
		return nil
	})

	err = console.Run(view)
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func readKeys(r io.Reader, ctrl *nes.Controller, quit chan<- struct{}) {
	var decoder keyDecoder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			button, stop := decoder.feed(buf[0])
			if stop {
				close(quit)
				return
			}
			if button >= 0 {
				ctrl.PressButton(button)
			}
		}
		if err != nil {
			return
		}
	}
}
