package nes

import (
	"io"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestCPU() *CPU {
	return NewCPU(NewBus(nil))
}

// run loads program at 0x8000, resets and runs it to BRK.
func run(t *testing.T, program ...byte) *CPU {
	t.Helper()
	cpu := newTestCPU()
	if err := cpu.LoadAndRun(program); err != nil {
		t.Fatalf("LoadAndRun: %v", err)
	}
	return cpu
}

// buildROM returns an iNES image with zeroed banks.
func buildROM(prgBanks, chrBanks int, flag6, flag7 byte) []byte {
	rom := []byte{'N', 'E', 'S', 0x1a, byte(prgBanks), byte(chrBanks), flag6, flag7,
		0, 0, 0, 0, 0, 0, 0, 0}
	size := prgBanks*PRGBankSize + chrBanks*CHRBankSize
	if flag6&0b100 != 0 {
		size += trainerSize
	}
	return append(rom, make([]byte, size)...)
}

// programROM returns a 32KB NROM image with program at 0x8000 and the
// reset vector pointing at it.
func programROM(program []byte) []byte {
	rom := buildROM(2, 1, 0, 0)
	copy(rom[headerSize:], program)
	rom[headerSize+0x7ffc] = 0x00
	rom[headerSize+0x7ffd] = 0x80
	return rom
}

func checkFlag(t *testing.T, cpu *CPU, f Flag, name string, want bool) {
	t.Helper()
	if cpu.Flag(f) != want {
		t.Errorf("%s flag = %v, want %v (P=0x%02X)", name, cpu.Flag(f), want, cpu.Flags())
	}
}
