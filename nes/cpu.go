package nes

import (
	"fmt"

	"github.com/pkg/errors"
)

/*
CPU模块，对外需要以下接口：
Reset
Load / LoadAt / LoadAndRun
Step / Run / RunWithHook
还需要一个NewCPU方法
*/

const (
	// 每次启动触发，2byte
	RESET = 0xfffc
	// 栈基址，SP 0x00-0xff 对应真实地址的 0x100-0x1ff
	stackBase = 0x0100
	// 栈指针初始化为$FD即指向$1FD
	stackReset = 0xfd
	// I 和 U 置位
	statusReset = 0x24
	// Load 默认装载地址
	ProgramOrigin = 0x8000
)

// Flag 是状态寄存器 P 的位
type Flag byte

const (
	FlagCarry     Flag = 1 << 0 // C - 进位标志
	FlagZero      Flag = 1 << 1 // Z - 结果为零标志
	FlagInterrupt Flag = 1 << 2 // I - 中断屏蔽
	FlagDecimal   Flag = 1 << 3 // D - 十进制模式，算术不使用
	FlagBreak     Flag = 1 << 4 // B - 只在压栈的副本里出现
	FlagUnused    Flag = 1 << 5 // U - 恒为 1
	FlagOverflow  Flag = 1 << 6 // V - 溢出标志
	FlagNegative  Flag = 1 << 7 // N - 负标志
)

// State is the run state of a CPU.
type State int

const (
	Running State = iota
	Halted
	Faulted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// StepHook is called before every instruction fetch. It may read and
// write memory through the CPU, but must leave PC and the status
// register untouched. A returned error stops the run loop.
type StepHook interface {
	BeforeStep(cpu *CPU) error
}

type StepHookFunc func(cpu *CPU) error

func (f StepHookFunc) BeforeStep(cpu *CPU) error { return f(cpu) }

type hookChain []StepHook

func (chain hookChain) BeforeStep(cpu *CPU) error {
	for _, hook := range chain {
		if err := hook.BeforeStep(cpu); err != nil {
			return err
		}
	}
	return nil
}

// ChainHooks runs hooks in order, stopping at the first error. Nil
// hooks are skipped.
func ChainHooks(hooks ...StepHook) StepHook {
	chain := make(hookChain, 0, len(hooks))
	for _, hook := range hooks {
		if hook != nil {
			chain = append(chain, hook)
		}
	}
	return chain
}

type CPU struct {
	*Bus
	Cycles uint64 // 只累加基础周期数
	PC     uint16
	SP     byte // 堆栈寄存器
	A      byte
	X      byte
	Y      byte
	status byte
	state  State
	fault  error
	table  [256]func(*stepInfo) error
}

// 指令执行需要的信息
type stepInfo struct {
	code       byte
	mode       AddressingMode
	address    uint16 // 操作数地址，NoneAddressing 时无效
	pc         uint16 // 操作数第一个字节的地址
	redirected bool   // 指令自己设置了 PC
}

// target returns the operand address, failing for instructions
// without one.
func (info *stepInfo) target() (uint16, error) {
	if info.mode == NoneAddressing {
		return 0, errors.Wrapf(ErrUnsupportedAddressingMode,
			"opcode 0x%02X needs an operand address", info.code)
	}
	return info.address, nil
}

func NewCPU(bus *Bus) *CPU {
	cpu := &CPU{Bus: bus, SP: stackReset, status: statusReset}
	cpu.createTable()
	return cpu
}

// 按指令名把执行函数填进 256 项的表，没注册的 opcode 留空
func (cpu *CPU) createTable() {
	handlers := map[string]func(*stepInfo) error{
		"ADC": cpu.adc, "AND": cpu.and, "ASL": cpu.asl, "BCC": cpu.bcc,
		"BCS": cpu.bcs, "BEQ": cpu.beq, "BIT": cpu.bit, "BMI": cpu.bmi,
		"BNE": cpu.bne, "BPL": cpu.bpl, "BRK": cpu.brk, "BVC": cpu.bvc,
		"BVS": cpu.bvs, "CLC": cpu.clc, "CLD": cpu.cld, "CLI": cpu.cli,
		"CLV": cpu.clv, "CMP": cpu.cmp, "CPX": cpu.cpx, "CPY": cpu.cpy,
		"DEC": cpu.dec, "DEX": cpu.dex, "DEY": cpu.dey, "EOR": cpu.eor,
		"INC": cpu.inc, "INX": cpu.inx, "INY": cpu.iny, "JMP": cpu.jmp,
		"JSR": cpu.jsr, "LDA": cpu.lda, "LDX": cpu.ldx, "LDY": cpu.ldy,
		"LSR": cpu.lsr, "NOP": cpu.nop, "ORA": cpu.ora, "PHA": cpu.pha,
		"PHP": cpu.php, "PLA": cpu.pla, "PLP": cpu.plp, "ROL": cpu.rol,
		"ROR": cpu.ror, "RTI": cpu.rti, "RTS": cpu.rts, "SBC": cpu.sbc,
		"SEC": cpu.sec, "SED": cpu.sed, "SEI": cpu.sei, "STA": cpu.sta,
		"STX": cpu.stx, "STY": cpu.sty, "TAX": cpu.tax, "TAY": cpu.tay,
		"TSX": cpu.tsx, "TXA": cpu.txa, "TXS": cpu.txs, "TYA": cpu.tya,

		"*NOP": cpu.nopRead, "*LAX": cpu.lax, "*SAX": cpu.sax, "*SBC": cpu.sbc,
		"*DCP": cpu.dcp, "*ISB": cpu.isb, "*SLO": cpu.slo, "*RLA": cpu.rla,
		"*SRE": cpu.sre, "*RRA": cpu.rra, "*ANC": cpu.anc, "*ALR": cpu.alr,
		"*ARR": cpu.arr, "*AXS": cpu.axs, "*XAA": cpu.xaa, "*LXA": cpu.lxa,
		"*LAS": cpu.las, "*TAS": cpu.tas, "*AHX": cpu.ahx, "*SHX": cpu.shx,
		"*SHY": cpu.shy,
	}
	for _, o := range Opcodes() {
		handler, ok := handlers[o.Name]
		if !ok {
			panic(fmt.Sprintf("nes: no handler for %s (0x%02X)", o.Name, o.Code))
		}
		cpu.table[o.Code] = handler
	}
}

func (cpu *CPU) State() State { return cpu.state }

// Fault returns the error that stopped the CPU, or nil.
func (cpu *CPU) Fault() error { return cpu.fault }

// Flags returns the status register.
func (cpu *CPU) Flags() byte { return cpu.status }

// SetFlags loads the status register the way PLP does: B is dropped
// and U is forced on.
func (cpu *CPU) SetFlags(p byte) {
	cpu.status = p&^byte(FlagBreak) | byte(FlagUnused)
}

func (cpu *CPU) Flag(f Flag) bool {
	return cpu.status&byte(f) != 0
}

func (cpu *CPU) setFlag(f Flag, on bool) {
	if on {
		cpu.status |= byte(f)
	} else {
		cpu.status &^= byte(f)
	}
}

func (cpu *CPU) carry() byte {
	return cpu.status & byte(FlagCarry)
}

func (cpu *CPU) setZN(value byte) {
	cpu.setFlag(FlagZero, value == 0)
	cpu.setFlag(FlagNegative, value&0x80 != 0)
}

// 标志只在这里统一设置
func (cpu *CPU) setA(value byte) {
	cpu.A = value
	cpu.setZN(value)
}

func (cpu *CPU) setX(value byte) {
	cpu.X = value
	cpu.setZN(value)
}

func (cpu *CPU) setY(value byte) {
	cpu.Y = value
	cpu.setZN(value)
}

// Reset reinitialises the registers and loads PC from the reset vector.
// Memory is left alone.
func (cpu *CPU) Reset() {
	cpu.A = 0
	cpu.X = 0
	cpu.Y = 0
	cpu.SP = stackReset
	cpu.status = statusReset
	cpu.Cycles = 0
	cpu.state = Running
	cpu.fault = nil
	cpu.PC = cpu.Read16(RESET)
}

// Load places program at ProgramOrigin.
func (cpu *CPU) Load(program []byte) error {
	return cpu.LoadAt(ProgramOrigin, program)
}

// LoadAt installs a cartridge whose reset vector points at origin.
// Origins at or above 0x8000 put the program in PRG-ROM. Origins below
// 0x0800 write the program into RAM. RAM keeps its contents either way.
func (cpu *CPU) LoadAt(origin uint16, program []byte) error {
	switch {
	case origin >= ProgramOrigin:
	case int(origin)+len(program) <= ramSize:
		for i, b := range program {
			if err := cpu.Bus.Write(origin+uint16(i), b); err != nil {
				return err
			}
		}
	default:
		return errors.Wrapf(ErrProgramTooLarge,
			"%d bytes at 0x%04X: origin must be in RAM or PRG-ROM", len(program), origin)
	}
	card, err := newProgramCartridge(origin, program)
	if err != nil {
		return err
	}
	cpu.insert(card)
	return nil
}

// LoadAndRun loads program at ProgramOrigin, resets and runs it.
func (cpu *CPU) LoadAndRun(program []byte) error {
	if err := cpu.Load(program); err != nil {
		return err
	}
	cpu.Reset()
	return cpu.Run()
}

// Run executes until BRK or a fault.
func (cpu *CPU) Run() error {
	return cpu.RunWithHook(nil)
}

// RunWithHook is Run with hook called before each fetch. It returns nil
// on BRK, the fault on failure, or the hook's error.
func (cpu *CPU) RunWithHook(hook StepHook) error {
	for cpu.state == Running {
		if hook != nil {
			pc, status := cpu.PC, cpu.status
			if err := hook.BeforeStep(cpu); err != nil {
				return err
			}
			if cpu.PC != pc || cpu.status != status {
				return cpu.fail(errors.Wrapf(ErrHookContract,
					"PC 0x%04X -> 0x%04X, P 0x%02X -> 0x%02X", pc, cpu.PC, status, cpu.status))
			}
		}
		if err := cpu.Step(); err != nil {
			return err
		}
	}
	return cpu.fault
}

func (cpu *CPU) fail(err error) error {
	cpu.state = Faulted
	cpu.fault = err
	return err
}

// step执行一个指令：读指令-寻址-将数据提供给指令方法执行
func (cpu *CPU) Step() error {
	switch cpu.state {
	case Halted:
		return nil
	case Faulted:
		return cpu.fault
	}

	pc := cpu.PC
	code := cpu.Read(pc)
	cpu.PC++

	o, ok := LookupOpcode(code)
	handler := cpu.table[code]
	if !ok || handler == nil {
		return cpu.fail(errors.Wrapf(ErrUnimplementedOpcode, "opcode 0x%02X at 0x%04X", code, pc))
	}

	info := &stepInfo{code: code, mode: o.Mode, pc: cpu.PC}
	if o.Mode != NoneAddressing {
		address, err := cpu.operandAddress(o.Mode, cpu.PC)
		if err != nil {
			return cpu.fail(err)
		}
		info.address = address
	}

	if err := handler(info); err != nil {
		return cpu.fail(errors.WithMessagef(err, "%s at 0x%04X", o.Name, pc))
	}
	cpu.Cycles += uint64(o.Cycles)

	if !info.redirected && cpu.state == Running {
		cpu.PC += uint16(o.Size - 1)
	}
	return nil
}

// 参考这里： https://github.com/dustpg/BlogFM/issues/9
// operandAddress 只读内存，不改寄存器，tracer 也用它
func (cpu *CPU) operandAddress(mode AddressingMode, pc uint16) (uint16, error) {
	switch mode {
	case Immediate:
		return pc, nil
	case ZeroPage:
		return uint16(cpu.Read(pc)), nil
	case ZeroPageX:
		return uint16(cpu.Read(pc) + cpu.X), nil
	case ZeroPageY:
		return uint16(cpu.Read(pc) + cpu.Y), nil
	case Absolute:
		return cpu.Read16(pc), nil
	case AbsoluteX:
		return cpu.Read16(pc) + uint16(cpu.X), nil
	case AbsoluteY:
		return cpu.Read16(pc) + uint16(cpu.Y), nil
	// 变址间接寻址，指针在零页内回绕
	case IndirectX:
		ptr := cpu.Read(pc) + cpu.X
		return cpu.readZeroPage16(ptr), nil
	// 间接变址寻址
	case IndirectY:
		base := cpu.readZeroPage16(cpu.Read(pc))
		return base + uint16(cpu.Y), nil
	}
	return 0, errors.Wrapf(ErrUnsupportedAddressingMode, "mode %v has no operand address", mode)
}

func (cpu *CPU) readZeroPage16(ptr byte) uint16 {
	lo := cpu.Read(uint16(ptr))
	hi := cpu.Read(uint16(ptr + 1))
	return (uint16(hi) << 8) | uint16(lo)
}

// 这里模拟cpu的bug，读取16位数据
// 例如JMP ($10FF), 理论上讲是读取$10FF和$1100这两个字节的数据, 但是实际上是读取的$10FF和$1000这两个字节的数据.
func (cpu *CPU) read16bug(address uint16) uint16 {
	a := address
	b := (a & 0xFF00) | uint16(byte(a)+1)
	lo := cpu.Read(a)
	hi := cpu.Read(b)
	return (uint16(hi) << 8) | uint16(lo)
}

func (cpu *CPU) jump(info *stepInfo, address uint16) {
	cpu.PC = address
	info.redirected = true
}

// 栈操作：push/push16/pull/pull16
// 压栈 SP指针向0x00靠近
func (cpu *CPU) push(value byte) error {
	err := cpu.Write(stackBase|uint16(cpu.SP), value)
	cpu.SP--
	return err
}

func (cpu *CPU) push16(value uint16) error {
	if err := cpu.push(byte(value >> 8)); err != nil {
		return err
	}
	return cpu.push(byte(value & 0xff))
}

func (cpu *CPU) pull() byte {
	cpu.SP++
	return cpu.Read(stackBase | uint16(cpu.SP))
}

func (cpu *CPU) pull16() uint16 {
	lo := uint16(cpu.pull())
	hi := uint16(cpu.pull())
	return (hi << 8) | lo
}
