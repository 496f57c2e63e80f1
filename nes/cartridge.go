package nes

import "github.com/pkg/errors"

const (
	PRGBankSize = 0x4000 // 16KB
	CHRBankSize = 0x2000 // 8KB
)

// Mirroring 是 PPU 的 nametable 镜像方式，这里只作为卡带元数据保存
type Mirroring byte

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorFourScreen
)

func (m Mirroring) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorFourScreen:
		return "four-screen"
	}
	return "unknown"
}

// Cartridge 创建后不可修改，PRG/CHR 对外只提供拷贝
type Cartridge struct {
	prg       []byte
	chr       []byte
	mapper    byte
	mirroring Mirroring
}

// NewCartridge copies prg and chr. Their lengths must be whole banks.
func NewCartridge(prg []byte, chr []byte, mapper byte, mirroring Mirroring) (*Cartridge, error) {
	if len(prg)%PRGBankSize != 0 {
		return nil, errors.Wrapf(ErrMalformedCartridge, "PRG-ROM size %d is not a multiple of 16KB", len(prg))
	}
	if len(chr)%CHRBankSize != 0 {
		return nil, errors.Wrapf(ErrMalformedCartridge, "CHR-ROM size %d is not a multiple of 8KB", len(chr))
	}
	card := &Cartridge{
		prg:       append([]byte(nil), prg...),
		chr:       append([]byte(nil), chr...),
		mapper:    mapper,
		mirroring: mirroring,
	}
	return card, nil
}

func (card *Cartridge) PRG() []byte {
	return append([]byte(nil), card.prg...)
}

func (card *Cartridge) CHR() []byte {
	return append([]byte(nil), card.chr...)
}

func (card *Cartridge) PRGBanks() int { return len(card.prg) / PRGBankSize }

func (card *Cartridge) CHRBanks() int { return len(card.chr) / CHRBankSize }

func (card *Cartridge) Mapper() byte { return card.mapper }

func (card *Cartridge) Mirroring() Mirroring { return card.mirroring }

// 程序装载用的卡带：32KB PRG，程序放在 origin，RESET 向量指向 origin。
// origin 在 RAM 里的时候 PRG 只带 RESET 向量，程序由调用方写进 RAM。
func newProgramCartridge(origin uint16, program []byte) (*Cartridge, error) {
	prg := make([]byte, 2*PRGBankSize)
	if origin >= 0x8000 {
		start := int(origin) - 0x8000
		end := start + len(program)
		if end > int(RESET)-0x8000 {
			return nil, errors.Wrapf(ErrProgramTooLarge,
				"%d bytes at 0x%04X overlap the reset vector", len(program), origin)
		}
		copy(prg[start:end], program)
	}
	prg[int(RESET)-0x8000] = byte(origin)
	prg[int(RESET)-0x8000+1] = byte(origin >> 8)
	return &Cartridge{prg: prg, chr: make([]byte, CHRBankSize), mirroring: MirrorHorizontal}, nil
}
