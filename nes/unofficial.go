package nes

/*
非官方指令
组合指令都是先调用官方指令的读-改-写部分，再把结果合到 A 上
*/

// *NOP - 读取操作数后丢弃
func (cpu *CPU) nopRead(info *stepInfo) error {
	if info.mode != NoneAddressing {
		cpu.Read(info.address)
	}
	return nil
}

// *LAX - LDA + TAX
func (cpu *CPU) lax(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	cpu.setA(value)
	cpu.X = value
	return nil
}

// *SAX - 存 A & X，不影响标志
func (cpu *CPU) sax(info *stepInfo) error {
	return cpu.store(info, cpu.A&cpu.X)
}

// *DCP - DEC + CMP
func (cpu *CPU) dcp(info *stepInfo) error {
	value, err := cpu.modify(info, func(v byte) byte { return v - 1 })
	if err != nil {
		return err
	}
	cpu.compare(cpu.A, value)
	return nil
}

// *ISB - INC + SBC
func (cpu *CPU) isb(info *stepInfo) error {
	value, err := cpu.modify(info, func(v byte) byte { return v + 1 })
	if err != nil {
		return err
	}
	cpu.addToA(^value)
	return nil
}

// *SLO - ASL + ORA
func (cpu *CPU) slo(info *stepInfo) error {
	value, err := cpu.aslMemory(info)
	if err != nil {
		return err
	}
	cpu.setA(cpu.A | value)
	return nil
}

// *RLA - ROL + AND
func (cpu *CPU) rla(info *stepInfo) error {
	value, err := cpu.rolMemory(info)
	if err != nil {
		return err
	}
	cpu.setA(cpu.A & value)
	return nil
}

// *SRE - LSR + EOR
func (cpu *CPU) sre(info *stepInfo) error {
	value, err := cpu.lsrMemory(info)
	if err != nil {
		return err
	}
	cpu.setA(cpu.A ^ value)
	return nil
}

// *RRA - ROR + ADC，ROR 移出的位作为 ADC 的进位
func (cpu *CPU) rra(info *stepInfo) error {
	value, err := cpu.rorMemory(info)
	if err != nil {
		return err
	}
	cpu.addToA(value)
	return nil
}

// *ANC - AND，然后 C = N
func (cpu *CPU) anc(info *stepInfo) error {
	if err := cpu.and(info); err != nil {
		return err
	}
	cpu.setFlag(FlagCarry, cpu.Flag(FlagNegative))
	return nil
}

// *ALR - AND + LSR A
func (cpu *CPU) alr(info *stepInfo) error {
	if err := cpu.and(info); err != nil {
		return err
	}
	cpu.A = cpu.shiftRight(cpu.A, 0)
	return nil
}

// *ARR - AND + ROR A，C 取 bit6，V = bit6 ^ bit5
func (cpu *CPU) arr(info *stepInfo) error {
	if err := cpu.and(info); err != nil {
		return err
	}
	result := cpu.A>>1 | cpu.carry()<<7
	cpu.setA(result)
	cpu.setFlag(FlagCarry, result&0x40 != 0)
	cpu.setFlag(FlagOverflow, (result>>6^result>>5)&1 != 0)
	return nil
}

// *AXS - X = (A & X) - M，进位同 CMP
func (cpu *CPU) axs(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	ax := cpu.A & cpu.X
	cpu.setFlag(FlagCarry, ax >= value)
	cpu.setX(ax - value)
	return nil
}

// *XAA - TXA + AND，真机结果不稳定
func (cpu *CPU) xaa(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	cpu.setA(cpu.X & value)
	return nil
}

// *LXA - LDA + TAX
func (cpu *CPU) lxa(info *stepInfo) error {
	return cpu.lax(info)
}

// *LAS - A = X = SP = M & SP
func (cpu *CPU) las(info *stepInfo) error {
	value, err := cpu.operand(info)
	if err != nil {
		return err
	}
	value &= cpu.SP
	cpu.SP = value
	cpu.X = value
	cpu.setA(value)
	return nil
}

// 存 value & (地址高字节 + 1)
func (cpu *CPU) storeHigh(info *stepInfo, value byte) error {
	address, err := info.target()
	if err != nil {
		return err
	}
	return cpu.Write(address, value&(byte(address>>8)+1))
}

// *TAS - SP = A & X，再存 SP & (H + 1)
func (cpu *CPU) tas(info *stepInfo) error {
	cpu.SP = cpu.A & cpu.X
	return cpu.storeHigh(info, cpu.SP)
}

// *AHX - 存 A & X & (H + 1)
func (cpu *CPU) ahx(info *stepInfo) error {
	return cpu.storeHigh(info, cpu.A&cpu.X)
}

// *SHX - 存 X & (H + 1)
func (cpu *CPU) shx(info *stepInfo) error {
	return cpu.storeHigh(info, cpu.X)
}

// *SHY - 存 Y & (H + 1)
func (cpu *CPU) shy(info *stepInfo) error {
	return cpu.storeHigh(info, cpu.Y)
}
