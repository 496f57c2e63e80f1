package nes

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	fnes "github.com/fogleman/nes/nes"
)

// 用 fogleman/nes 做对照，逐条指令比较寄存器和 RAM

type fixup struct {
	at    int
	label string
	kind  byte // 'w' 16 位地址 / 'l' 低字节 / 'h' 高字节
}

// assembler 是个只认标签的小汇编器，代码从 $8000 开始
type assembler struct {
	code   []byte
	labels map[string]uint16
	fixups []fixup
}

func newAssembler() *assembler {
	return &assembler{labels: make(map[string]uint16)}
}

func (a *assembler) emit(b ...byte) {
	a.code = append(a.code, b...)
}

func (a *assembler) mark(label string) {
	a.labels[label] = ProgramOrigin + uint16(len(a.code))
}

func (a *assembler) ref(opcode byte, label string) {
	a.emit(opcode)
	a.fixups = append(a.fixups, fixup{len(a.code), label, 'w'})
	a.emit(0, 0)
}

func (a *assembler) refByte(opcode byte, label string, kind byte) {
	a.emit(opcode)
	a.fixups = append(a.fixups, fixup{len(a.code), label, kind})
	a.emit(0)
}

func (a *assembler) assemble(t *testing.T) []byte {
	t.Helper()
	for _, f := range a.fixups {
		addr, ok := a.labels[f.label]
		if !ok {
			t.Fatalf("undefined label %q", f.label)
		}
		switch f.kind {
		case 'w':
			a.code[f.at] = byte(addr)
			a.code[f.at+1] = byte(addr >> 8)
		case 'l':
			a.code[f.at] = byte(addr)
		case 'h':
			a.code[f.at] = byte(addr >> 8)
		}
	}
	return a.code
}

type pair struct {
	ours   *CPU
	theirs *fnes.Console
}

func newPair(t *testing.T, rom []byte) pair {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.nes")
	if err := os.WriteFile(path, rom, 0644); err != nil {
		t.Fatal(err)
	}
	theirs, err := fnes.NewConsole(path)
	if err != nil {
		t.Fatalf("fogleman/nes: %v", err)
	}
	card, err := LoadNESRom(rom)
	if err != nil {
		t.Fatal(err)
	}
	ours := NewCPU(NewBus(card))
	ours.Reset()
	return pair{ours, theirs}
}

func (p pair) compare(t *testing.T, step int) {
	t.Helper()
	o, f := p.ours, p.theirs.CPU
	if o.PC != f.PC || o.A != f.A || o.X != f.X || o.Y != f.Y || o.SP != f.SP || o.Flags() != f.Flags() {
		t.Fatalf("step %d diverged:\n ours   PC:%04X A:%02X X:%02X Y:%02X P:%02X SP:%02X\n theirs PC:%04X A:%02X X:%02X Y:%02X P:%02X SP:%02X",
			step,
			o.PC, o.A, o.X, o.Y, o.Flags(), o.SP,
			f.PC, f.A, f.X, f.Y, f.Flags(), f.SP)
	}
}

func (p pair) compareRAM(t *testing.T) {
	t.Helper()
	for i := 0; i < ramSize; i++ {
		if got, want := p.ours.Read(uint16(i)), p.theirs.RAM[i]; got != want {
			t.Fatalf("RAM[0x%04X] = 0x%02X, want 0x%02X", i, got, want)
		}
	}
}

func (p pair) step(t *testing.T, n int) {
	t.Helper()
	p.compare(t, 0)
	for i := 1; i <= n; i++ {
		if err := p.ours.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		p.theirs.CPU.Step()
		p.compare(t, i)
	}
}

func officialProgram(t *testing.T) []byte {
	a := newAssembler()
	// 寄存器、各种寻址模式的读写
	a.emit(0xa2, 0x10, 0xa0, 0x20, 0xa9, 0xc3)
	a.emit(0x85, 0x10, 0x95, 0x10, 0x9d, 0x00, 0x03, 0x99, 0x00, 0x03)
	a.emit(0xa9, 0x00, 0x85, 0x30, 0xa9, 0x03, 0x85, 0x31)
	a.emit(0xb1, 0x30, 0xa1, 0x20, 0x91, 0x30, 0x81, 0x20)
	a.emit(0xa6, 0x10, 0xa4, 0x10, 0xae, 0x10, 0x03, 0xac, 0x10, 0x03)
	a.emit(0xbe, 0x00, 0x03, 0xbc, 0x00, 0x03, 0xb6, 0x00, 0xb4, 0x00)
	a.emit(0xb5, 0x00, 0xbd, 0x00, 0x03, 0xb9, 0x00, 0x03, 0xad, 0x20, 0x03)
	// 间接寻址前把 X/Y 复位，指针只落在 RAM
	a.emit(0xa2, 0x10, 0xa0, 0x20)
	a.emit(0x86, 0x40, 0x84, 0x41, 0x8e, 0x40, 0x03, 0x8c, 0x41, 0x03)
	a.emit(0x94, 0x40, 0x96, 0x40, 0x8d, 0x42, 0x03)
	// 算术
	a.emit(0x18, 0x69, 0x7f, 0x38, 0xe9, 0x80, 0x65, 0x10, 0xe5, 0x20)
	a.emit(0x75, 0x00, 0xf5, 0x00, 0x6d, 0x10, 0x03, 0xed, 0x10, 0x03)
	a.emit(0x7d, 0x00, 0x03, 0xfd, 0x00, 0x03, 0x79, 0x00, 0x03, 0xf9, 0x00, 0x03)
	a.emit(0x71, 0x30, 0xf1, 0x30, 0x61, 0x20, 0xe1, 0x20)
	a.emit(0xa9, 0x50, 0x69, 0x50, 0xa9, 0xd0, 0xe9, 0x70)
	// 逻辑
	a.emit(0x29, 0x0f, 0x09, 0xf0, 0x49, 0xaa)
	a.emit(0x25, 0x10, 0x05, 0x10, 0x45, 0x10, 0x35, 0x00, 0x15, 0x00, 0x55, 0x00)
	a.emit(0x2d, 0x10, 0x03, 0x0d, 0x10, 0x03, 0x4d, 0x10, 0x03)
	a.emit(0x3d, 0x00, 0x03, 0x1d, 0x00, 0x03, 0x5d, 0x00, 0x03)
	a.emit(0x39, 0x00, 0x03, 0x19, 0x00, 0x03, 0x59, 0x00, 0x03)
	a.emit(0x31, 0x30, 0x11, 0x30, 0x51, 0x30, 0x21, 0x20, 0x01, 0x20, 0x41, 0x20)
	// 移位
	a.emit(0x0a, 0x4a, 0x2a, 0x6a, 0x38, 0x2a, 0x38, 0x6a)
	a.emit(0x06, 0x10, 0x46, 0x10, 0x26, 0x10, 0x66, 0x10)
	a.emit(0x16, 0x00, 0x56, 0x00, 0x36, 0x00, 0x76, 0x00)
	a.emit(0x0e, 0x10, 0x03, 0x4e, 0x10, 0x03, 0x2e, 0x10, 0x03, 0x6e, 0x10, 0x03)
	a.emit(0x1e, 0x00, 0x03, 0x5e, 0x00, 0x03, 0x3e, 0x00, 0x03, 0x7e, 0x00, 0x03)
	// 增减
	a.emit(0xe6, 0x10, 0xc6, 0x10, 0xf6, 0x00, 0xd6, 0x00)
	a.emit(0xee, 0x10, 0x03, 0xce, 0x10, 0x03, 0xfe, 0x00, 0x03, 0xde, 0x00, 0x03)
	a.emit(0xe8, 0xca, 0xc8, 0x88)
	// 比较、BIT
	a.emit(0x24, 0x10, 0x2c, 0x10, 0x03)
	a.emit(0xc9, 0x40, 0xe0, 0x10, 0xc0, 0x20, 0xc5, 0x10, 0xe4, 0x10, 0xc4, 0x10)
	a.emit(0xcd, 0x10, 0x03, 0xec, 0x10, 0x03, 0xcc, 0x10, 0x03)
	a.emit(0xd5, 0x00, 0xdd, 0x00, 0x03, 0xd9, 0x00, 0x03, 0xd1, 0x30, 0xc1, 0x20)
	// 传送、标志、堆栈
	a.emit(0xaa, 0xa8, 0x8a, 0x98, 0xba, 0x9a)
	a.emit(0x78, 0x58, 0xf8, 0xd8, 0xb8, 0x38, 0x18, 0xea)
	a.emit(0x48, 0x08, 0xa9, 0xff, 0x28, 0x68)
	// 子程序
	a.ref(0x20, "sub")
	// RTI 回到 after_rti
	a.refByte(0xa9, "after_rti", 'h')
	a.emit(0x48)
	a.refByte(0xa9, "after_rti", 'l')
	a.emit(0x48)
	a.emit(0xa9, 0xc3, 0x48, 0x40)
	a.mark("after_rti")
	// 循环和分支
	a.emit(0xa2, 0x05)
	a.mark("loop")
	a.emit(0xca, 0xd0, 0xfd)
	a.emit(0xf0, 0x02, 0xea, 0xea)
	a.emit(0xa9, 0x80, 0x30, 0x01, 0xea, 0x10, 0x01, 0x38, 0xb0, 0x01, 0xea)
	a.emit(0x90, 0x01, 0x18, 0xa9, 0x7f, 0x69, 0x01, 0x70, 0x01, 0xea, 0xb8, 0x50, 0x01, 0xea)
	// JMP ($04FF)，指针跨页
	a.refByte(0xa9, "end", 'l')
	a.emit(0x8d, 0xff, 0x04)
	a.refByte(0xa9, "end", 'h')
	a.emit(0x8d, 0x00, 0x04)
	a.emit(0xa9, 0x00, 0x8d, 0x00, 0x05)
	a.emit(0x6c, 0xff, 0x04)
	a.emit(0xea, 0xea)
	a.mark("end")
	a.ref(0x4c, "end")

	a.mark("sub")
	a.emit(0xa9, 0x42, 0x85, 0x50, 0x60)
	return a.assemble(t)
}

func TestOracleOfficialOpcodes(t *testing.T) {
	p := newPair(t, programROM(officialProgram(t)))
	p.step(t, 400)
	p.compareRAM(t)
}

func TestOracleALU(t *testing.T) {
	ops := []byte{0x69, 0xe9, 0x29, 0x09, 0x49, 0xc9}
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		op := ops[r.Intn(len(ops))]
		flag := byte(0x18)
		if r.Intn(2) == 1 {
			flag = 0x38
		}
		program := []byte{0xa9, byte(r.Intn(256)), flag, op, byte(r.Intn(256)), 0x4c, 0x05, 0x80}
		p := newPair(t, programROM(program))
		p.step(t, 4)
	}
}

func TestOracleLoader(t *testing.T) {
	tests := []struct {
		name         string
		prg, chr     int
		flag6, flag7 byte
	}{
		{"nrom-128", 1, 1, 0x00, 0x00},
		{"nrom-256 vertical", 2, 1, 0x01, 0x00},
		{"trainer", 1, 1, 0x04, 0x00},
		{"mapper bits", 2, 2, 0x10, 0x20},
	}
	for _, tt := range tests {
		rom := buildROM(tt.prg, tt.chr, tt.flag6, tt.flag7)
		for i := headerSize; i < len(rom); i++ {
			rom[i] = byte(i * 7)
		}
		path := filepath.Join(t.TempDir(), "test.nes")
		if err := os.WriteFile(path, rom, 0644); err != nil {
			t.Fatal(err)
		}
		want, err := fnes.LoadNESFile(path)
		if err != nil {
			t.Fatalf("%s: fogleman/nes: %v", tt.name, err)
		}
		got, err := LoadNESFile(path)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got.Mapper() != want.Mapper {
			t.Errorf("%s: mapper = %d, want %d", tt.name, got.Mapper(), want.Mapper)
		}
		if string(got.PRG()) != string(want.PRG) {
			t.Errorf("%s: PRG differs", tt.name)
		}
		if string(got.CHR()) != string(want.CHR) {
			t.Errorf("%s: CHR differs", tt.name)
		}
		if byte(got.Mirroring()) != want.Mirror {
			t.Errorf("%s: mirroring = %v, want %d", tt.name, got.Mirroring(), want.Mirror)
		}
	}
}
