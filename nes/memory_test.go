package nes

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestBusRAMMirroring(t *testing.T) {
	bus := NewBus(nil)
	for addr := uint16(0); addr < 0x0800; addr++ {
		if err := bus.Write(addr, byte(addr*7)); err != nil {
			t.Fatal(err)
		}
	}
	for addr := uint16(0); addr < 0x2000; addr++ {
		if got, want := bus.Read(addr), byte((addr&0x07ff)*7); got != want {
			t.Fatalf("Read(0x%04X) = 0x%02X, want 0x%02X", addr, got, want)
		}
	}

	bus.Write(0x1805, 0x99)
	if bus.Read(0x0005) != 0x99 {
		t.Fatalf("write through mirror 0x1805 did not reach 0x0005")
	}
}

func TestBusPPUWindowIsStubbed(t *testing.T) {
	bus := NewBus(nil)
	for _, addr := range []uint16{0x2000, 0x2007, 0x3fff} {
		if err := bus.Write(addr, 0xff); err != nil {
			t.Fatalf("Write(0x%04X): %v", addr, err)
		}
		if got := bus.Read(addr); got != 0 {
			t.Fatalf("Read(0x%04X) = 0x%02X, want 0", addr, got)
		}
	}
}

func TestBusInvalidAddressWarns(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(io.Discard)

	bus := NewBus(nil)
	if err := bus.Write(0x4016, 1); err != nil {
		t.Fatalf("Write(0x4016): %v", err)
	}
	if got := bus.Read(0x6000); got != 0 {
		t.Fatalf("Read(0x6000) = 0x%02X, want 0", got)
	}
	out := buf.String()
	if !strings.Contains(out, "0x4016") || !strings.Contains(out, "0x6000") {
		t.Fatalf("missing warnings, log = %q", out)
	}
}

func TestBusROMWindow(t *testing.T) {
	prg := make([]byte, PRGBankSize)
	prg[0x0123] = 0x77
	card, _ := NewCartridge(prg, nil, 0, MirrorHorizontal)
	bus := NewBus(card)

	if bus.Read(0x8123) != 0x77 || bus.Read(0xC123) != 0x77 {
		t.Fatalf("PRG read = 0x%02X/0x%02X, want 0x77", bus.Read(0x8123), bus.Read(0xC123))
	}
	if err := bus.Write(0x8123, 0); !errors.Is(err, ErrIllegalWrite) {
		t.Fatalf("err = %v, want ErrIllegalWrite", err)
	}
	if bus.Cartridge() != card {
		t.Fatalf("Cartridge() did not return the inserted cartridge")
	}
}

func TestBusWithoutCartridge(t *testing.T) {
	bus := NewBus(nil)
	if got := bus.Read(0xfffc); got != 0 {
		t.Fatalf("Read(0xFFFC) = 0x%02X, want 0", got)
	}
	if err := bus.Write(0x8000, 1); !errors.Is(err, ErrIllegalWrite) {
		t.Fatalf("err = %v, want ErrIllegalWrite", err)
	}
}

func TestRead16Write16(t *testing.T) {
	bus := NewBus(nil)
	if err := bus.Write16(0x0010, 0xbeef); err != nil {
		t.Fatal(err)
	}
	if bus.Read(0x0010) != 0xef || bus.Read(0x0011) != 0xbe {
		t.Fatalf("Write16 is not little-endian")
	}
	if got := bus.Read16(0x0010); got != 0xbeef {
		t.Fatalf("Read16 = 0x%04X, want 0xBEEF", got)
	}
	// 跨 RAM 镜像边界
	bus.Write(0x07ff, 0x34)
	bus.Write(0x0000, 0x12)
	if got := Read16(bus, 0x07ff); got != 0x1234 {
		t.Fatalf("Read16(0x07FF) = 0x%04X, want 0x1234", got)
	}
}
