/*
mapper0 (NROM)，没有 bank 切换
16KB 的卡带 [$C000, $10000) 是 [$8000, $C000) 的镜像
32KB 的卡带直接映射

$FFFA-FFFB = NMI
$FFFC-FFFD = RESET
$FFFE-FFFF = IRQ/BRK
*/

package nes

import "github.com/pkg/errors"

type Mapper0 struct {
	card     *Cartridge
	prgBanks int
}

func NewMapper0(card *Cartridge) Mapper {
	return &Mapper0{card, card.PRGBanks()}
}

func (mapper *Mapper0) Read(addr uint16) byte {
	index := int(addr - 0x8000)
	if mapper.prgBanks == 1 {
		index %= PRGBankSize
	}
	if addr < 0x8000 || index >= len(mapper.card.prg) {
		warnf("unhandled mapper0 read at addr: 0x%04X", addr)
		return 0
	}
	return mapper.card.prg[index]
}

func (mapper *Mapper0) Write(addr uint16, value byte) error {
	return errors.Wrapf(ErrIllegalWrite, "write 0x%02X to PRG-ROM at 0x%04X", value, addr)
}
