package memory

import "fmt"

// Address is an absolute address in the target's address space.
// It is only meaningful for the instant it was read.
type Address uint64

// Add returns the address displaced by off bytes.
func (a Address) Add(off uint64) Address {
	return a + Address(off)
}

// IsNull reports whether the address is zero.
func (a Address) IsNull() bool {
	return a == 0
}

func (a Address) String() string {
	return fmt.Sprintf("0x%X", uint64(a))
}
