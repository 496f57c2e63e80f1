package nes

import "github.com/pkg/errors"

// 运行时错误分类，调用方用 errors.Is 判断具体类型
var (
	// 卡带头部损坏：magic 不对、NES 2.0 格式或数据长度不足
	ErrMalformedCartridge = errors.New("malformed cartridge")

	// opcode 没有对应的执行函数
	ErrUnimplementedOpcode = errors.New("unimplemented opcode")

	// 向只读的 PRG-ROM 区写数据
	ErrIllegalWrite = errors.New("illegal write to read-only memory")

	// 指令需要操作数地址，但寻址方式是 NoneAddressing
	ErrUnsupportedAddressingMode = errors.New("unsupported addressing mode")

	// step hook 修改了 PC 或状态寄存器
	ErrHookContract = errors.New("step hook modified PC or status")

	// 程序放不进指定的装载区域
	ErrProgramTooLarge = errors.New("program does not fit")
)
