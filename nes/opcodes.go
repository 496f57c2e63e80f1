package nes

import "fmt"

// 寻址方式
type AddressingMode byte

const (
	NoneAddressing AddressingMode = iota
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	IndirectX
	IndirectY
)

var modeNames = [...]string{
	NoneAddressing: "NoneAddressing",
	Immediate:      "Immediate",
	ZeroPage:       "ZeroPage",
	ZeroPageX:      "ZeroPage_X",
	ZeroPageY:      "ZeroPage_Y",
	Absolute:       "Absolute",
	AbsoluteX:      "Absolute_X",
	AbsoluteY:      "Absolute_Y",
	IndirectX:      "Indirect_X",
	IndirectY:      "Indirect_Y",
}

func (mode AddressingMode) String() string {
	if int(mode) < len(modeNames) {
		return modeNames[mode]
	}
	return fmt.Sprintf("AddressingMode(%d)", byte(mode))
}

// Opcode describes one opcode byte. Cycles is the base count only.
// Unofficial opcodes carry a "*" prefix in Name, as in nestest logs.
type Opcode struct {
	Code   byte
	Name   string
	Size   byte
	Cycles byte
	Mode   AddressingMode
}

func op(code byte, name string, size, cycles byte, mode AddressingMode) Opcode {
	return Opcode{code, name, size, cycles, mode}
}

var opcodeList = []Opcode{
	op(0x00, "BRK", 1, 7, NoneAddressing),
	op(0xea, "NOP", 1, 2, NoneAddressing),

	/* Arithmetic */
	op(0x69, "ADC", 2, 2, Immediate),
	op(0x65, "ADC", 2, 3, ZeroPage),
	op(0x75, "ADC", 2, 4, ZeroPageX),
	op(0x6d, "ADC", 3, 4, Absolute),
	op(0x7d, "ADC", 3, 4, AbsoluteX),
	op(0x79, "ADC", 3, 4, AbsoluteY),
	op(0x61, "ADC", 2, 6, IndirectX),
	op(0x71, "ADC", 2, 5, IndirectY),

	op(0xe9, "SBC", 2, 2, Immediate),
	op(0xe5, "SBC", 2, 3, ZeroPage),
	op(0xf5, "SBC", 2, 4, ZeroPageX),
	op(0xed, "SBC", 3, 4, Absolute),
	op(0xfd, "SBC", 3, 4, AbsoluteX),
	op(0xf9, "SBC", 3, 4, AbsoluteY),
	op(0xe1, "SBC", 2, 6, IndirectX),
	op(0xf1, "SBC", 2, 5, IndirectY),

	op(0x29, "AND", 2, 2, Immediate),
	op(0x25, "AND", 2, 3, ZeroPage),
	op(0x35, "AND", 2, 4, ZeroPageX),
	op(0x2d, "AND", 3, 4, Absolute),
	op(0x3d, "AND", 3, 4, AbsoluteX),
	op(0x39, "AND", 3, 4, AbsoluteY),
	op(0x21, "AND", 2, 6, IndirectX),
	op(0x31, "AND", 2, 5, IndirectY),

	op(0x49, "EOR", 2, 2, Immediate),
	op(0x45, "EOR", 2, 3, ZeroPage),
	op(0x55, "EOR", 2, 4, ZeroPageX),
	op(0x4d, "EOR", 3, 4, Absolute),
	op(0x5d, "EOR", 3, 4, AbsoluteX),
	op(0x59, "EOR", 3, 4, AbsoluteY),
	op(0x41, "EOR", 2, 6, IndirectX),
	op(0x51, "EOR", 2, 5, IndirectY),

	op(0x09, "ORA", 2, 2, Immediate),
	op(0x05, "ORA", 2, 3, ZeroPage),
	op(0x15, "ORA", 2, 4, ZeroPageX),
	op(0x0d, "ORA", 3, 4, Absolute),
	op(0x1d, "ORA", 3, 4, AbsoluteX),
	op(0x19, "ORA", 3, 4, AbsoluteY),
	op(0x01, "ORA", 2, 6, IndirectX),
	op(0x11, "ORA", 2, 5, IndirectY),

	/* Shifts */
	op(0x0a, "ASL", 1, 2, NoneAddressing),
	op(0x06, "ASL", 2, 5, ZeroPage),
	op(0x16, "ASL", 2, 6, ZeroPageX),
	op(0x0e, "ASL", 3, 6, Absolute),
	op(0x1e, "ASL", 3, 7, AbsoluteX),

	op(0x4a, "LSR", 1, 2, NoneAddressing),
	op(0x46, "LSR", 2, 5, ZeroPage),
	op(0x56, "LSR", 2, 6, ZeroPageX),
	op(0x4e, "LSR", 3, 6, Absolute),
	op(0x5e, "LSR", 3, 7, AbsoluteX),

	op(0x2a, "ROL", 1, 2, NoneAddressing),
	op(0x26, "ROL", 2, 5, ZeroPage),
	op(0x36, "ROL", 2, 6, ZeroPageX),
	op(0x2e, "ROL", 3, 6, Absolute),
	op(0x3e, "ROL", 3, 7, AbsoluteX),

	op(0x6a, "ROR", 1, 2, NoneAddressing),
	op(0x66, "ROR", 2, 5, ZeroPage),
	op(0x76, "ROR", 2, 6, ZeroPageX),
	op(0x6e, "ROR", 3, 6, Absolute),
	op(0x7e, "ROR", 3, 7, AbsoluteX),

	op(0xe6, "INC", 2, 5, ZeroPage),
	op(0xf6, "INC", 2, 6, ZeroPageX),
	op(0xee, "INC", 3, 6, Absolute),
	op(0xfe, "INC", 3, 7, AbsoluteX),

	op(0xe8, "INX", 1, 2, NoneAddressing),
	op(0xc8, "INY", 1, 2, NoneAddressing),

	op(0xc6, "DEC", 2, 5, ZeroPage),
	op(0xd6, "DEC", 2, 6, ZeroPageX),
	op(0xce, "DEC", 3, 6, Absolute),
	op(0xde, "DEC", 3, 7, AbsoluteX),

	op(0xca, "DEX", 1, 2, NoneAddressing),
	op(0x88, "DEY", 1, 2, NoneAddressing),

	op(0xc9, "CMP", 2, 2, Immediate),
	op(0xc5, "CMP", 2, 3, ZeroPage),
	op(0xd5, "CMP", 2, 4, ZeroPageX),
	op(0xcd, "CMP", 3, 4, Absolute),
	op(0xdd, "CMP", 3, 4, AbsoluteX),
	op(0xd9, "CMP", 3, 4, AbsoluteY),
	op(0xc1, "CMP", 2, 6, IndirectX),
	op(0xd1, "CMP", 2, 5, IndirectY),

	op(0xc0, "CPY", 2, 2, Immediate),
	op(0xc4, "CPY", 2, 3, ZeroPage),
	op(0xcc, "CPY", 3, 4, Absolute),

	op(0xe0, "CPX", 2, 2, Immediate),
	op(0xe4, "CPX", 2, 3, ZeroPage),
	op(0xec, "CPX", 3, 4, Absolute),

	/* Branching */
	op(0x4c, "JMP", 3, 3, NoneAddressing),
	op(0x6c, "JMP", 3, 5, NoneAddressing),

	op(0x20, "JSR", 3, 6, NoneAddressing),
	op(0x60, "RTS", 1, 6, NoneAddressing),
	op(0x40, "RTI", 1, 6, NoneAddressing),

	op(0xd0, "BNE", 2, 2, NoneAddressing),
	op(0x70, "BVS", 2, 2, NoneAddressing),
	op(0x50, "BVC", 2, 2, NoneAddressing),
	op(0x30, "BMI", 2, 2, NoneAddressing),
	op(0xf0, "BEQ", 2, 2, NoneAddressing),
	op(0xb0, "BCS", 2, 2, NoneAddressing),
	op(0x90, "BCC", 2, 2, NoneAddressing),
	op(0x10, "BPL", 2, 2, NoneAddressing),

	op(0x24, "BIT", 2, 3, ZeroPage),
	op(0x2c, "BIT", 3, 4, Absolute),

	/* Stores, Loads */
	op(0xa9, "LDA", 2, 2, Immediate),
	op(0xa5, "LDA", 2, 3, ZeroPage),
	op(0xb5, "LDA", 2, 4, ZeroPageX),
	op(0xad, "LDA", 3, 4, Absolute),
	op(0xbd, "LDA", 3, 4, AbsoluteX),
	op(0xb9, "LDA", 3, 4, AbsoluteY),
	op(0xa1, "LDA", 2, 6, IndirectX),
	op(0xb1, "LDA", 2, 5, IndirectY),

	op(0xa2, "LDX", 2, 2, Immediate),
	op(0xa6, "LDX", 2, 3, ZeroPage),
	op(0xb6, "LDX", 2, 4, ZeroPageY),
	op(0xae, "LDX", 3, 4, Absolute),
	op(0xbe, "LDX", 3, 4, AbsoluteY),

	op(0xa0, "LDY", 2, 2, Immediate),
	op(0xa4, "LDY", 2, 3, ZeroPage),
	op(0xb4, "LDY", 2, 4, ZeroPageX),
	op(0xac, "LDY", 3, 4, Absolute),
	op(0xbc, "LDY", 3, 4, AbsoluteX),

	op(0x85, "STA", 2, 3, ZeroPage),
	op(0x95, "STA", 2, 4, ZeroPageX),
	op(0x8d, "STA", 3, 4, Absolute),
	op(0x9d, "STA", 3, 5, AbsoluteX),
	op(0x99, "STA", 3, 5, AbsoluteY),
	op(0x81, "STA", 2, 6, IndirectX),
	op(0x91, "STA", 2, 6, IndirectY),

	op(0x86, "STX", 2, 3, ZeroPage),
	op(0x96, "STX", 2, 4, ZeroPageY),
	op(0x8e, "STX", 3, 4, Absolute),

	op(0x84, "STY", 2, 3, ZeroPage),
	op(0x94, "STY", 2, 4, ZeroPageX),
	op(0x8c, "STY", 3, 4, Absolute),

	/* Flags clear */
	op(0xd8, "CLD", 1, 2, NoneAddressing),
	op(0x58, "CLI", 1, 2, NoneAddressing),
	op(0xb8, "CLV", 1, 2, NoneAddressing),
	op(0x18, "CLC", 1, 2, NoneAddressing),
	op(0x38, "SEC", 1, 2, NoneAddressing),
	op(0x78, "SEI", 1, 2, NoneAddressing),
	op(0xf8, "SED", 1, 2, NoneAddressing),

	op(0xaa, "TAX", 1, 2, NoneAddressing),
	op(0xa8, "TAY", 1, 2, NoneAddressing),
	op(0xba, "TSX", 1, 2, NoneAddressing),
	op(0x8a, "TXA", 1, 2, NoneAddressing),
	op(0x9a, "TXS", 1, 2, NoneAddressing),
	op(0x98, "TYA", 1, 2, NoneAddressing),

	/* Stack */
	op(0x48, "PHA", 1, 3, NoneAddressing),
	op(0x68, "PLA", 1, 4, NoneAddressing),
	op(0x08, "PHP", 1, 3, NoneAddressing),
	op(0x28, "PLP", 1, 4, NoneAddressing),

	/* 非官方指令 */
	op(0xc7, "*DCP", 2, 5, ZeroPage),
	op(0xd7, "*DCP", 2, 6, ZeroPageX),
	op(0xcf, "*DCP", 3, 6, Absolute),
	op(0xdf, "*DCP", 3, 7, AbsoluteX),
	op(0xdb, "*DCP", 3, 7, AbsoluteY),
	op(0xc3, "*DCP", 2, 8, IndirectX),
	op(0xd3, "*DCP", 2, 8, IndirectY),

	op(0xe7, "*ISB", 2, 5, ZeroPage),
	op(0xf7, "*ISB", 2, 6, ZeroPageX),
	op(0xef, "*ISB", 3, 6, Absolute),
	op(0xff, "*ISB", 3, 7, AbsoluteX),
	op(0xfb, "*ISB", 3, 7, AbsoluteY),
	op(0xe3, "*ISB", 2, 8, IndirectX),
	op(0xf3, "*ISB", 2, 8, IndirectY),

	op(0x07, "*SLO", 2, 5, ZeroPage),
	op(0x17, "*SLO", 2, 6, ZeroPageX),
	op(0x0f, "*SLO", 3, 6, Absolute),
	op(0x1f, "*SLO", 3, 7, AbsoluteX),
	op(0x1b, "*SLO", 3, 7, AbsoluteY),
	op(0x03, "*SLO", 2, 8, IndirectX),
	op(0x13, "*SLO", 2, 8, IndirectY),

	op(0x27, "*RLA", 2, 5, ZeroPage),
	op(0x37, "*RLA", 2, 6, ZeroPageX),
	op(0x2f, "*RLA", 3, 6, Absolute),
	op(0x3f, "*RLA", 3, 7, AbsoluteX),
	op(0x3b, "*RLA", 3, 7, AbsoluteY),
	op(0x23, "*RLA", 2, 8, IndirectX),
	op(0x33, "*RLA", 2, 8, IndirectY),

	op(0x47, "*SRE", 2, 5, ZeroPage),
	op(0x57, "*SRE", 2, 6, ZeroPageX),
	op(0x4f, "*SRE", 3, 6, Absolute),
	op(0x5f, "*SRE", 3, 7, AbsoluteX),
	op(0x5b, "*SRE", 3, 7, AbsoluteY),
	op(0x43, "*SRE", 2, 8, IndirectX),
	op(0x53, "*SRE", 2, 8, IndirectY),

	op(0x67, "*RRA", 2, 5, ZeroPage),
	op(0x77, "*RRA", 2, 6, ZeroPageX),
	op(0x6f, "*RRA", 3, 6, Absolute),
	op(0x7f, "*RRA", 3, 7, AbsoluteX),
	op(0x7b, "*RRA", 3, 7, AbsoluteY),
	op(0x63, "*RRA", 2, 8, IndirectX),
	op(0x73, "*RRA", 2, 8, IndirectY),

	op(0xa7, "*LAX", 2, 3, ZeroPage),
	op(0xb7, "*LAX", 2, 4, ZeroPageY),
	op(0xaf, "*LAX", 3, 4, Absolute),
	op(0xbf, "*LAX", 3, 4, AbsoluteY),
	op(0xa3, "*LAX", 2, 6, IndirectX),
	op(0xb3, "*LAX", 2, 5, IndirectY),

	op(0x87, "*SAX", 2, 3, ZeroPage),
	op(0x97, "*SAX", 2, 4, ZeroPageY),
	op(0x8f, "*SAX", 3, 4, Absolute),
	op(0x83, "*SAX", 2, 6, IndirectX),

	op(0xeb, "*SBC", 2, 2, Immediate),

	op(0x0b, "*ANC", 2, 2, Immediate),
	op(0x2b, "*ANC", 2, 2, Immediate),
	op(0x4b, "*ALR", 2, 2, Immediate),
	op(0x6b, "*ARR", 2, 2, Immediate),
	op(0xcb, "*AXS", 2, 2, Immediate),
	op(0x8b, "*XAA", 2, 2, Immediate),
	op(0xab, "*LXA", 2, 2, Immediate),

	op(0xbb, "*LAS", 3, 4, AbsoluteY),
	op(0x9b, "*TAS", 3, 5, AbsoluteY),
	op(0x93, "*AHX", 2, 6, IndirectY),
	op(0x9f, "*AHX", 3, 5, AbsoluteY),
	op(0x9e, "*SHX", 3, 5, AbsoluteY),
	op(0x9c, "*SHY", 3, 5, AbsoluteX),

	// 只读一下操作数然后丢弃
	op(0x1a, "*NOP", 1, 2, NoneAddressing),
	op(0x3a, "*NOP", 1, 2, NoneAddressing),
	op(0x5a, "*NOP", 1, 2, NoneAddressing),
	op(0x7a, "*NOP", 1, 2, NoneAddressing),
	op(0xda, "*NOP", 1, 2, NoneAddressing),
	op(0xfa, "*NOP", 1, 2, NoneAddressing),

	op(0x80, "*NOP", 2, 2, Immediate),
	op(0x82, "*NOP", 2, 2, Immediate),
	op(0x89, "*NOP", 2, 2, Immediate),
	op(0xc2, "*NOP", 2, 2, Immediate),
	op(0xe2, "*NOP", 2, 2, Immediate),

	op(0x04, "*NOP", 2, 3, ZeroPage),
	op(0x44, "*NOP", 2, 3, ZeroPage),
	op(0x64, "*NOP", 2, 3, ZeroPage),
	op(0x14, "*NOP", 2, 4, ZeroPageX),
	op(0x34, "*NOP", 2, 4, ZeroPageX),
	op(0x54, "*NOP", 2, 4, ZeroPageX),
	op(0x74, "*NOP", 2, 4, ZeroPageX),
	op(0xd4, "*NOP", 2, 4, ZeroPageX),
	op(0xf4, "*NOP", 2, 4, ZeroPageX),

	op(0x0c, "*NOP", 3, 4, Absolute),
	op(0x1c, "*NOP", 3, 4, AbsoluteX),
	op(0x3c, "*NOP", 3, 4, AbsoluteX),
	op(0x5c, "*NOP", 3, 4, AbsoluteX),
	op(0x7c, "*NOP", 3, 4, AbsoluteX),
	op(0xdc, "*NOP", 3, 4, AbsoluteX),
	op(0xfc, "*NOP", 3, 4, AbsoluteX),

	// KIL (0x02, 0x12 ... 0xf2) 不注册，执行到就是 ErrUnimplementedOpcode
}

type opcodeTable struct {
	ops     [256]Opcode
	present [256]bool
}

var opcodes = newOpcodeTable(opcodeList)

func newOpcodeTable(list []Opcode) *opcodeTable {
	table := &opcodeTable{}
	for _, o := range list {
		if table.present[o.Code] {
			panic(fmt.Sprintf("nes: opcode 0x%02X registered twice (%s, %s)",
				o.Code, table.ops[o.Code].Name, o.Name))
		}
		table.ops[o.Code] = o
		table.present[o.Code] = true
	}
	return table
}

// LookupOpcode returns the descriptor registered for code.
func LookupOpcode(code byte) (Opcode, bool) {
	return opcodes.ops[code], opcodes.present[code]
}

// Opcodes returns every registered descriptor ordered by code.
func Opcodes() []Opcode {
	list := make([]Opcode, 0, len(opcodeList))
	for code := 0; code < 256; code++ {
		if opcodes.present[code] {
			list = append(list, opcodes.ops[code])
		}
	}
	return list
}
