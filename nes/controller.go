package nes

import "sync/atomic"

/*
贪吃蛇程序每帧读一次 $FF，拿到的是最后一次按键的 ASCII 码
w 上 / s 下 / a 左 / d 右
*/

const (
	ButtonUp = iota
	ButtonDown
	ButtonLeft
	ButtonRight
)

var buttonCodes = [...]byte{
	ButtonUp:    'w',
	ButtonDown:  's',
	ButtonLeft:  'a',
	ButtonRight: 'd',
}

// Controller latches the last key press and writes it to memory at the
// next step. Press is safe to call from another goroutine.
type Controller struct {
	addr    uint16
	pending uint32 // 0 表示没有新按键
}

func NewController(addr uint16) *Controller {
	return &Controller{addr: addr}
}

func (c *Controller) Press(code byte) {
	atomic.StoreUint32(&c.pending, uint32(code))
}

func (c *Controller) PressButton(button int) {
	if button < 0 || button >= len(buttonCodes) {
		return
	}
	c.Press(buttonCodes[button])
}

func (c *Controller) BeforeStep(cpu *CPU) error {
	code := atomic.SwapUint32(&c.pending, 0)
	if code == 0 {
		return nil
	}
	return cpu.Write(c.addr, byte(code))
}
