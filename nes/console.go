package nes

import (
	"image"
	"math/rand"
	"time"
)

/**
这个模块作为 cpu/bus/card 以及贪吃蛇运行环境的封装：
每一步往 $FE 写随机数，按键写到 $FF，显存在 [$0200, $0600)
*/

const (
	RandomAddr uint16 = 0x00fe
	InputAddr  uint16 = 0x00ff
)

type Console struct {
	CPU        *CPU
	Card       *Cartridge
	Controller *Controller
	Screen     *Screen
	rng        *rand.Rand
}

func NewConsole(data []byte) (*Console, error) {
	card, err := LoadNESRom(data)
	if err != nil {
		return nil, err
	}
	return NewConsoleFromCartridge(card), nil
}

func NewConsoleFromCartridge(card *Cartridge) *Console {
	console := &Console{
		CPU:        NewCPU(NewBus(card)),
		Card:       card,
		Controller: NewController(InputAddr),
		Screen:     NewScreen(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	console.Reset()
	return console
}

func (console *Console) Reset() {
	console.CPU.Reset()
}

func (console *Console) SetSeed(seed int64) {
	console.rng.Seed(seed)
}

// BeforeStep writes a random byte in [1, 15] to RandomAddr.
func (console *Console) BeforeStep(cpu *CPU) error {
	return cpu.Write(RandomAddr, byte(console.rng.Intn(15)+1))
}

// Run executes the cartridge with the random source, the controller and
// any extra hooks, in that order.
func (console *Console) Run(hooks ...StepHook) error {
	all := append([]StepHook{console, console.Controller}, hooks...)
	return console.CPU.RunWithHook(ChainHooks(all...))
}

// Refresh updates the screen from memory and reports whether it changed.
func (console *Console) Refresh() bool {
	return console.Screen.Update(console.CPU)
}

func (console *Console) Buffer() *image.RGBA {
	return console.Screen.Buffer()
}
