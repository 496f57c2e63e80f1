package nes

// Mapper 负责 CPU 地址 [$8000, $10000) 到卡带 PRG-ROM 的映射
type Mapper interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte) error
}

// NewMapper only knows NROM. Other ids run as NROM with a warning.
func NewMapper(card *Cartridge) Mapper {
	if card.Mapper() != 0 {
		warnf("mapper %d is not supported, using NROM", card.Mapper())
	}
	return NewMapper0(card)
}
