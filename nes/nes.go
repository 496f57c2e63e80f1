package nes

import (
	"os"

	"github.com/pkg/errors"
)

const (
	headerSize  = 16
	trainerSize = 512
)

var nesMagic = [4]byte{'N', 'E', 'S', 0x1A}

// LoadNESFile reads an iNES image from disk.
func LoadNESFile(path string) (*Cartridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read rom %s", path)
	}
	return LoadNESRom(data)
}

// LoadNESRom parses an iNES (version 1) image.
func LoadNESRom(data []byte) (*Cartridge, error) {
	if len(data) < headerSize {
		return nil, errors.Wrapf(ErrMalformedCartridge, "header is %d bytes, want %d", len(data), headerSize)
	}
	if data[0] != nesMagic[0] || data[1] != nesMagic[1] || data[2] != nesMagic[2] || data[3] != nesMagic[3] {
		return nil, errors.Wrapf(ErrMalformedCartridge, "bad magic % X", data[0:4])
	}

	prgNum := int(data[4]) // PRG块数目 一块大小为 16KB
	chrNum := int(data[5]) // CHR块数目 一块大小为 8KB
	flag := data[6]
	flag2 := data[7]

	if version := (flag2 >> 2) & 0b11; version != 0 {
		return nil, errors.Wrapf(ErrMalformedCartridge, "iNES version %d is not supported", version)
	}

	mapper := (flag2 & 0xf0) | (flag >> 4)

	var mirroring Mirroring
	switch {
	case flag&0b1000 != 0:
		mirroring = MirrorFourScreen
	case flag&0b1 != 0:
		mirroring = MirrorVertical
	default:
		mirroring = MirrorHorizontal
	}

	prgStart := headerSize
	if flag&0b100 != 0 {
		prgStart += trainerSize
	}
	chrStart := prgStart + prgNum*PRGBankSize
	chrEnd := chrStart + chrNum*CHRBankSize
	if len(data) < chrEnd {
		return nil, errors.Wrapf(ErrMalformedCartridge,
			"image is %d bytes, header declares %d", len(data), chrEnd)
	}

	Logger("ROM: PRG-ROM: %d x 16kb, CHR_ROM: %d x 8kb Mapper: %d", prgNum, chrNum, mapper)
	return NewCartridge(data[prgStart:chrStart], data[chrStart:chrEnd], mapper, mirroring)
}

/*
FLAG (byte 6)

76543210
||||||||
|||||||+- Mirroring: 0: 水平镜像  1: 垂直镜像
||||||+-- 1: 卡带上有没有带电池的 SRAM
|||||+--- 1: Trainer 标志，PRG 之前多 512 字节
||||+---- 1: 4-Screen 模式
++++----- Mapper 号的低 4 bit

FLAG2 (byte 7)
76543210
||||||||
|||||||+- VS Unisystem
||||||+-- PlayChoice-10
||||++--- 非 0 代表 NES 2.0 格式，不支持
++++----- Mapper 号的高 4 bit
*/
