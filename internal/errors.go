package internal

import (
	"errors"
	"fmt"
)

// Errors returned by the VM. Step wraps them in a *CycleError.
var (
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrIllegalOpcode     = errors.New("illegal opcode")
	ErrInvalidKey        = errors.New("invalid key")
	ErrProgramTooLarge   = errors.New("program size exceeds the maximum size")
)

// AddressError reports an access outside of the 4 KB address space
type AddressError struct {
	Addr int
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%v: %#04x", ErrAddressOutOfRange, e.Addr)
}

func (e *AddressError) Unwrap() error {
	return ErrAddressOutOfRange
}

// CycleError is returned by Step when an instruction cycle can not complete.
// PC is the address the instruction was fetched from.
type CycleError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle at %#04x (opcode %04X): %v", e.PC, e.Opcode, e.Err)
}

func (e *CycleError) Unwrap() error {
	return e.Err
}
