package nes

// 取操作数
func (cpu *CPU) operand(info *stepInfo) (byte, error) {
	address, err := info.target()
	if err != nil {
		return 0, err
	}
	return cpu.Read(address), nil
}

// 读-改-写，返回写回的值
func (cpu *CPU) modify(info *stepInfo, fn func(byte) byte) (byte, error) {
	address, err := info.target()
	if err != nil {
		return 0, err
	}
	value := fn(cpu.Read(address))
	return value, cpu.Write(address, value)
}

func (cpu *CPU) store(info *stepInfo, value byte) error {
	address, err := info.target()
	if err != nil {
		return err
	}
	return cpu.Write(address, value)
}

// ADC 核心，A = A + M + C；SBC 传入 ^M
func (cpu *CPU) addToA(value byte) {
	sum := uint16(cpu.A) + uint16(value) + uint16(cpu.carry())
	result := byte(sum)
	cpu.setFlag(FlagCarry, sum > 0xff)
	cpu.setFlag(FlagOverflow, (value^result)&(result^cpu.A)&0x80 != 0)
	cpu.setA(result)
}

func (cpu *CPU) compare(reg, value byte) {
	cpu.setFlag(FlagCarry, reg >= value)
	cpu.setZN(reg - value)
}

func (cpu *CPU) branch(info *stepInfo, condition bool) error {
	if condition {
		offset := int8(cpu.Read(info.pc))
		cpu.jump(info, info.pc+1+uint16(offset))
	}
	return nil
}

// 移位：C <- |7|6|5|4|3|2|1|0| <- 0
func (cpu *CPU) shiftLeft(value byte, carryIn byte) byte {
	cpu.setFlag(FlagCarry, value&0x80 != 0)
	result := value<<1 | carryIn
	cpu.setZN(result)
	return result
}

func (cpu *CPU) shiftRight(value byte, carryIn byte) byte {
	cpu.setFlag(FlagCarry, value&1 != 0)
	result := value>>1 | carryIn<<7
	cpu.setZN(result)
	return result
}

func (cpu *CPU) aslMemory(info *stepInfo) (byte, error) {
	return cpu.modify(info, func(v byte) byte { return cpu.shiftLeft(v, 0) })
}

func (cpu *CPU) lsrMemory(info *stepInfo) (byte, error) {
	return cpu.modify(info, func(v byte) byte { return cpu.shiftRight(v, 0) })
}

func (cpu *CPU) rolMemory(info *stepInfo) (byte, error) {
	c := cpu.carry()
	return cpu.modify(info, func(v byte) byte { return cpu.shiftLeft(v, c) })
}

func (cpu *CPU) rorMemory(info *stepInfo) (byte, error) {
	c := cpu.carry()
	return cpu.modify(info, func(v byte) byte { return cpu.shiftRight(v, c) })
}

func (cpu *CPU) incMemory(info *stepInfo) (byte, error) {
	value, err := cpu.modify(info, func(v byte) byte { return v + 1 })
	if err != nil {
		return 0, err
	}
	cpu.setZN(value)
	return value, nil
}

func (cpu *CPU) decMemory(info *stepInfo) (byte, error) {
	value, err := cpu.modify(info, func(v byte) byte { return v - 1 })
	if err != nil {
		return 0, err
	}
	cpu.setZN(value)
	return value, nil
}

// LDA - load "A"
func (cpu *CPU) lda(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	cpu.setA(value)
	return nil
}

// LDX - load "X"
func (cpu *CPU) ldx(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	cpu.setX(value)
	return nil
}

// LDY - load "Y"
func (cpu *CPU) ldy(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	cpu.setY(value)
	return nil
}

// STA - store "A"
func (cpu *CPU) sta(info *stepInfo) error {
	return cpu.store(info, cpu.A)
}

// STX - store "X"
func (cpu *CPU) stx(info *stepInfo) error {
	return cpu.store(info, cpu.X)
}

// STY - store "Y"
func (cpu *CPU) sty(info *stepInfo) error {
	return cpu.store(info, cpu.Y)
}

// ADC - add with carry -- A = A + M + C
func (cpu *CPU) adc(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	cpu.addToA(value)
	return nil
}

// SBC - subtract with carry -- A = A - M - (1 - C)
func (cpu *CPU) sbc(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	cpu.addToA(^value)
	return nil
}

// INC - Increment memory
func (cpu *CPU) inc(info *stepInfo) error {
	_, err := cpu.incMemory(info)
	return err
}

// DEC - Decrement memory
func (cpu *CPU) dec(info *stepInfo) error {
	_, err := cpu.decMemory(info)
	return err
}

// AND - A & memory
func (cpu *CPU) and(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	cpu.setA(cpu.A & value)
	return nil
}

// ORA - A | memory
func (cpu *CPU) ora(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	cpu.setA(cpu.A | value)
	return nil
}

// EOR "Exclusive-Or" memory with A
func (cpu *CPU) eor(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	cpu.setA(cpu.A ^ value)
	return nil
}

// INX - Increment X
func (cpu *CPU) inx(info *stepInfo) error {
	cpu.setX(cpu.X + 1)
	return nil
}

// DEX - Decrement X
func (cpu *CPU) dex(info *stepInfo) error {
	cpu.setX(cpu.X - 1)
	return nil
}

// INY - Increment Y
func (cpu *CPU) iny(info *stepInfo) error {
	cpu.setY(cpu.Y + 1)
	return nil
}

// DEY - Decrement Y
func (cpu *CPU) dey(info *stepInfo) error {
	cpu.setY(cpu.Y - 1)
	return nil
}

// TAX - Transfer A to X
func (cpu *CPU) tax(info *stepInfo) error {
	cpu.setX(cpu.A)
	return nil
}

// TXA - Transfer X to A
func (cpu *CPU) txa(info *stepInfo) error {
	cpu.setA(cpu.X)
	return nil
}

// TAY - Transfer A to Y
func (cpu *CPU) tay(info *stepInfo) error {
	cpu.setY(cpu.A)
	return nil
}

// TYA - Transfer Y to A
func (cpu *CPU) tya(info *stepInfo) error {
	cpu.setA(cpu.Y)
	return nil
}

// TSX - Transfer SP to X
func (cpu *CPU) tsx(info *stepInfo) error {
	cpu.setX(cpu.SP)
	return nil
}

// TXS - Transfer X to SP，不影响标志
func (cpu *CPU) txs(info *stepInfo) error {
	cpu.SP = cpu.X
	return nil
}

// CLC - Clear Carry
func (cpu *CPU) clc(info *stepInfo) error {
	cpu.setFlag(FlagCarry, false)
	return nil
}

// SEC - Set Carry
func (cpu *CPU) sec(info *stepInfo) error {
	cpu.setFlag(FlagCarry, true)
	return nil
}

// CLD - Clear Decimal
func (cpu *CPU) cld(info *stepInfo) error {
	cpu.setFlag(FlagDecimal, false)
	return nil
}

// SED - Set Decimal
func (cpu *CPU) sed(info *stepInfo) error {
	cpu.setFlag(FlagDecimal, true)
	return nil
}

// CLV - Clear Overflow
func (cpu *CPU) clv(info *stepInfo) error {
	cpu.setFlag(FlagOverflow, false)
	return nil
}

// CLI - Clear Interrupt-disable
func (cpu *CPU) cli(info *stepInfo) error {
	cpu.setFlag(FlagInterrupt, false)
	return nil
}

// SEI - Set Interrupt-disable
func (cpu *CPU) sei(info *stepInfo) error {
	cpu.setFlag(FlagInterrupt, true)
	return nil
}

// CMP - Compare memory with A
func (cpu *CPU) cmp(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	cpu.compare(cpu.A, value)
	return nil
}

// CPX - Compare memory with X
func (cpu *CPU) cpx(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	cpu.compare(cpu.X, value)
	return nil
}

// CPY - Compare memory with Y
func (cpu *CPU) cpy(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	cpu.compare(cpu.Y, value)
	return nil
}

// BIT - Bit test memory with A
func (cpu *CPU) bit(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	cpu.setFlag(FlagZero, cpu.A&value == 0)
	cpu.setFlag(FlagOverflow, value&0x40 != 0)
	cpu.setFlag(FlagNegative, value&0x80 != 0)
	return nil
}

// ASL - Arithmetic Shift Left
// NoneAddressing 就是累加器寻址
func (cpu *CPU) asl(info *stepInfo) error {
	if info.mode == NoneAddressing {
		cpu.A = cpu.shiftLeft(cpu.A, 0)
		return nil
	}
	_, err := cpu.aslMemory(info)
	return err
}

// LSR - Logical Shift Right
func (cpu *CPU) lsr(info *stepInfo) error {
	if info.mode == NoneAddressing {
		cpu.A = cpu.shiftRight(cpu.A, 0)
		return nil
	}
	_, err := cpu.lsrMemory(info)
	return err
}

// ROL - Rotate Left
func (cpu *CPU) rol(info *stepInfo) error {
	if info.mode == NoneAddressing {
		cpu.A = cpu.shiftLeft(cpu.A, cpu.carry())
		return nil
	}
	_, err := cpu.rolMemory(info)
	return err
}

// ROR - Rotate Right
func (cpu *CPU) ror(info *stepInfo) error {
	if info.mode == NoneAddressing {
		cpu.A = cpu.shiftRight(cpu.A, cpu.carry())
		return nil
	}
	_, err := cpu.rorMemory(info)
	return err
}

// PHA - Push A
func (cpu *CPU) pha(info *stepInfo) error {
	return cpu.push(cpu.A)
}

// PLA - Pull(Pop) A
func (cpu *CPU) pla(info *stepInfo) error {
	cpu.setA(cpu.pull())
	return nil
}

// PHP - Push Processor-status，压栈的副本 B 和 U 置位
func (cpu *CPU) php(info *stepInfo) error {
	return cpu.push(cpu.status | byte(FlagBreak) | byte(FlagUnused))
}

// PLP - Pull Processor-status
func (cpu *CPU) plp(info *stepInfo) error {
	cpu.SetFlags(cpu.pull())
	return nil
}

// JMP - Jump
// 0x6c 是间接跳转，带页边界 bug
func (cpu *CPU) jmp(info *stepInfo) error {
	address := cpu.Read16(info.pc)
	if info.code == 0x6c {
		address = cpu.read16bug(address)
	}
	cpu.jump(info, address)
	return nil
}

// BEQ - Branch if Equal
func (cpu *CPU) beq(info *stepInfo) error {
	return cpu.branch(info, cpu.Flag(FlagZero))
}

// BNE - Branch if Not Equal
func (cpu *CPU) bne(info *stepInfo) error {
	return cpu.branch(info, !cpu.Flag(FlagZero))
}

// BCS - Branch if Carry Set
func (cpu *CPU) bcs(info *stepInfo) error {
	return cpu.branch(info, cpu.Flag(FlagCarry))
}

// BCC - Branch if Carry Clear
func (cpu *CPU) bcc(info *stepInfo) error {
	return cpu.branch(info, !cpu.Flag(FlagCarry))
}

// BMI - Branch if Minus
func (cpu *CPU) bmi(info *stepInfo) error {
	return cpu.branch(info, cpu.Flag(FlagNegative))
}

// BPL - Branch if Plus
func (cpu *CPU) bpl(info *stepInfo) error {
	return cpu.branch(info, !cpu.Flag(FlagNegative))
}

// BVS - Branch if Overflow Set
func (cpu *CPU) bvs(info *stepInfo) error {
	return cpu.branch(info, cpu.Flag(FlagOverflow))
}

// BVC - Branch if Overflow Clear
func (cpu *CPU) bvc(info *stepInfo) error {
	return cpu.branch(info, !cpu.Flag(FlagOverflow))
}

// JSR - Jump to Subroutine
// 压入的是 JSR 最后一个字节的地址
func (cpu *CPU) jsr(info *stepInfo) error {
	if err := cpu.push16(info.pc + 1); err != nil {
		return err
	}
	cpu.jump(info, cpu.Read16(info.pc))
	return nil
}

// RTS - Return from Subroutine
func (cpu *CPU) rts(info *stepInfo) error {
	cpu.jump(info, cpu.pull16()+1)
	return nil
}

// RTI - Return from Interrupt
func (cpu *CPU) rti(info *stepInfo) error {
	cpu.SetFlags(cpu.pull())
	cpu.jump(info, cpu.pull16())
	return nil
}

// NOP - do nothing
func (cpu *CPU) nop(info *stepInfo) error {
	return nil
}

// BRK 这里不走中断，直接停机
func (cpu *CPU) brk(info *stepInfo) error {
	cpu.state = Halted
	return nil
}
