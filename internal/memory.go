package internal

const (
	totalMemory = 0x1000
	fontAddr    = 0x000
	glyphSize   = 5
)

var fontset = []uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the 4 KB address space of the VM. The hex font occupies the
// first 80 bytes.
type Memory struct {
	data [totalMemory]uint8
}

// NewMemory returns a zeroed memory with the fontset copied to address 0
func NewMemory() *Memory {
	m := &Memory{}
	copy(m.data[fontAddr:], fontset)
	return m
}

// Read returns the byte stored at addr
func (m *Memory) Read(addr uint16) (uint8, error) {
	if err := checkRange(int(addr), 1); err != nil {
		return 0, err
	}
	return m.data[addr], nil
}

// Write stores value at addr
func (m *Memory) Write(addr uint16, value uint8) error {
	if err := checkRange(int(addr), 1); err != nil {
		return err
	}
	m.data[addr] = value
	return nil
}

// ReadBlock returns a copy of n bytes starting at addr. Nothing is read
// unless the whole block is addressable.
func (m *Memory) ReadBlock(addr uint16, n int) ([]byte, error) {
	if err := checkRange(int(addr), n); err != nil {
		return nil, err
	}
	block := make([]byte, n)
	copy(block, m.data[int(addr):int(addr)+n])
	return block, nil
}

// WriteBlock copies data to memory starting at addr. Nothing is written
// unless the whole block fits.
func (m *Memory) WriteBlock(addr uint16, data []byte) error {
	if err := checkRange(int(addr), len(data)); err != nil {
		return err
	}
	copy(m.data[addr:], data)
	return nil
}

func checkRange(addr, n int) error {
	if addr >= totalMemory {
		return &AddressError{Addr: addr}
	}
	if n > 0 && addr+n > totalMemory {
		return &AddressError{Addr: totalMemory}
	}
	return nil
}
