package memory

import (
	"fmt"
	"io"
	"strings"
)

// HexDump writes buf as 16 bytes per line, labelled with target addresses
// starting at addr, with printable ASCII on the right.
func HexDump(w io.Writer, buf []byte, addr Address) {
	var line strings.Builder
	for i := 0; i < len(buf); i += 16 {
		line.Reset()
		fmt.Fprintf(&line, "%16X:", uint64(addr)+uint64(i))
		for j := 0; j < 16; j++ {
			if j == 8 {
				line.WriteByte(' ')
			}
			if i+j < len(buf) {
				fmt.Fprintf(&line, " %02x", buf[i+j])
			} else {
				line.WriteString("   ")
			}
		}

		line.WriteString("  |")
		for j := 0; j < 16 && i+j < len(buf); j++ {
			c := buf[i+j]
			if c >= 32 && c <= 126 {
				line.WriteByte(c)
			} else {
				line.WriteByte('.')
			}
		}
		line.WriteString("|\n")

		io.WriteString(w, line.String())
	}
}
