package nes

import (
	"fmt"
	"io"
	"strings"
)

// Trace formats the instruction at PC in nestest log style followed by
// the register state. It only reads memory.
//
//	C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD
func Trace(cpu *CPU) string {
	begin := cpu.PC
	code := cpu.Read(begin)
	o, ok := LookupOpcode(code)
	if !ok {
		o = Opcode{Code: code, Name: "???", Size: 1, Mode: NoneAddressing}
	}

	var address uint16
	var stored byte
	if o.Mode != Immediate && o.Mode != NoneAddressing {
		address, _ = cpu.operandAddress(o.Mode, begin+1)
		stored = cpu.Read(address)
	}

	dump := []byte{code}
	var operand string
	switch o.Size {
	case 1:
		switch code {
		case 0x0a, 0x4a, 0x2a, 0x6a:
			operand = "A "
		}
	case 2:
		value := cpu.Read(begin + 1)
		dump = append(dump, value)
		switch o.Mode {
		case Immediate:
			operand = fmt.Sprintf("#$%02X", value)
		case ZeroPage:
			operand = fmt.Sprintf("$%02X = %02X", address, stored)
		case ZeroPageX:
			operand = fmt.Sprintf("$%02X,X @ %02X = %02X", value, address, stored)
		case ZeroPageY:
			operand = fmt.Sprintf("$%02X,Y @ %02X = %02X", value, address, stored)
		case IndirectX:
			operand = fmt.Sprintf("($%02X,X) @ %02X = %04X = %02X", value, value+cpu.X, address, stored)
		case IndirectY:
			operand = fmt.Sprintf("($%02X),Y = %04X @ %04X = %02X", value, address-uint16(cpu.Y), address, stored)
		case NoneAddressing:
			// 分支，偏移是有符号数
			target := begin + 2 + uint16(int8(value))
			operand = fmt.Sprintf("$%04X", target)
		}
	case 3:
		lo, hi := cpu.Read(begin+1), cpu.Read(begin+2)
		dump = append(dump, lo, hi)
		value := uint16(hi)<<8 | uint16(lo)
		switch o.Mode {
		case NoneAddressing:
			if code == 0x6c {
				operand = fmt.Sprintf("($%04X) = %04X", value, cpu.read16bug(value))
			} else {
				operand = fmt.Sprintf("$%04X", value)
			}
		case Absolute:
			operand = fmt.Sprintf("$%04X = %02X", value, stored)
		case AbsoluteX:
			operand = fmt.Sprintf("$%04X,X @ %04X = %02X", value, address, stored)
		case AbsoluteY:
			operand = fmt.Sprintf("$%04X,Y @ %04X = %02X", value, address, stored)
		}
	}

	var hex strings.Builder
	for _, b := range dump {
		fmt.Fprintf(&hex, "%02X ", b)
	}

	asm := fmt.Sprintf("%04X  %-9s%4s %s", begin, hex.String(), o.Name, operand)
	return fmt.Sprintf("%-47s A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		asm, cpu.A, cpu.X, cpu.Y, cpu.status, cpu.SP)
}

// TraceHook writes one Trace line per step to w.
func TraceHook(w io.Writer) StepHook {
	return StepHookFunc(func(cpu *CPU) error {
		_, err := fmt.Fprintln(w, Trace(cpu))
		return err
	})
}
