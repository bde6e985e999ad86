package memory

import (
	"bufio"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// parseModuleBase scans a /proc/<pid>/maps listing and returns the lowest
// start address among mappings whose file base name equals module.
// Under Wine/Proton the PE images show up here with their Windows names.
func parseModuleBase(r io.Reader, module string) (Address, error) {
	var base Address
	found := false

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		// start-end perms offset dev inode [path]
		fields := strings.Fields(sc.Text())
		if len(fields) < 6 {
			continue
		}
		path := strings.Join(fields[5:], " ")
		if !strings.EqualFold(filepath.Base(path), module) {
			continue
		}

		start, _, ok := strings.Cut(fields[0], "-")
		if !ok {
			continue
		}
		v, err := strconv.ParseUint(start, 16, 64)
		if err != nil {
			continue
		}
		if !found || Address(v) < base {
			base = Address(v)
			found = true
		}
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	if !found {
		return 0, ErrModuleNotFound
	}
	return base, nil
}
