package nes

import "github.com/pkg/errors"

/*
[$0000, $2000) cpu 内存 {0-0x0800，[0x0800-0x1000, 0x1000-0x1800, 0x1800-0x2000]都是0-0x0800的镜像}
[$2000, $4000) PPU 寄存器，未实现：读返回 0，写忽略
[$4000, $8000) APU/IO/SRAM，未接入：读返回 0，写忽略，打印警告
[$8000, $10000) 程序代码区 PRG-ROM，只读
*/

type Memory interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte) error
}

// Read16 reads a little-endian word. addr+1 wraps at 0xFFFF.
func Read16(mem Memory, addr uint16) uint16 {
	low := mem.Read(addr)
	high := mem.Read(addr + 1)
	return (uint16(high) << 8) | uint16(low)
}

func Write16(mem Memory, addr uint16, value uint16) error {
	if err := mem.Write(addr, byte(value&0xff)); err != nil {
		return err
	}
	return mem.Write(addr+1, byte(value>>8))
}

const ramSize = 0x0800

type Bus struct {
	ram    [ramSize]byte
	card   *Cartridge
	mapper Mapper
}

// NewBus wires RAM to card. card may be nil, in which case the PRG
// window reads as zero.
func NewBus(card *Cartridge) *Bus {
	bus := &Bus{}
	bus.insert(card)
	return bus
}

// 换卡带，RAM 保留
func (bus *Bus) insert(card *Cartridge) {
	bus.card = card
	bus.mapper = nil
	if card != nil {
		bus.mapper = NewMapper(card)
	}
}

func (bus *Bus) Cartridge() *Cartridge {
	return bus.card
}

func (bus *Bus) Read(addr uint16) byte {
	switch {
	case addr < 0x2000:
		return bus.ram[addr&0x07ff]
	case addr < 0x4000:
		debugf("PPU register read at 0x%04X is not implemented", addr)
		return 0
	case addr >= 0x8000:
		if bus.mapper == nil {
			warnf("read at 0x%04X with no cartridge inserted", addr)
			return 0
		}
		return bus.mapper.Read(addr)
	default:
		warnf("ignoring read at invalid address 0x%04X", addr)
		return 0
	}
}

func (bus *Bus) Write(addr uint16, value byte) error {
	switch {
	case addr < 0x2000:
		bus.ram[addr&0x07ff] = value
	case addr < 0x4000:
		debugf("PPU register write at 0x%04X is not implemented", addr)
	case addr >= 0x8000:
		if bus.mapper == nil {
			return errors.Wrapf(ErrIllegalWrite, "write 0x%02X to PRG-ROM at 0x%04X", value, addr)
		}
		return bus.mapper.Write(addr, value)
	default:
		warnf("ignoring write of 0x%02X at invalid address 0x%04X", value, addr)
	}
	return nil
}

func (bus *Bus) Read16(addr uint16) uint16 {
	return Read16(bus, addr)
}

func (bus *Bus) Write16(addr uint16, value uint16) error {
	return Write16(bus, addr, value)
}
