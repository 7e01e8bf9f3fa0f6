//go:build gofuzz
// +build gofuzz

package pagedev

// Fuzz interprets data as a stream of operations against a small device,
// cross-checking every read against a flat reference image.
func Fuzz(data []byte) int {
	const pageSize, pageCount = 64, 8
	const total = int64(pageSize * pageCount)

	dev := New(NewMem(pageSize, pageCount))
	if err := dev.Init(); err != nil {
		return 0
	}

	ref := make([]byte, total)
	for i := range ref {
		ref[i] = eraseFill
	}

	take := func(n int) []byte {
		if len(data) < n {
			return nil
		}
		b := data[:n]
		data = data[n:]
		return b
	}

	ops := 0
loop:
	for {
		hdr := take(4)
		if hdr == nil {
			break
		}
		addr := (int64(hdr[1])<<8 | int64(hdr[2])) % total
		length := int64(hdr[3])
		if addr+length > total {
			length = total - addr
		}

		switch hdr[0] % 3 {
		case 0:
			src := take(int(length))
			if src == nil {
				break loop
			}
			if err := dev.Program(src, addr); err != nil {
				panic(err)
			}
			copy(ref[addr:addr+length], src)

		case 1:
			out := make([]byte, length)
			if err := dev.Read(out, addr); err != nil {
				panic(err)
			}
			for i, b := range out {
				if b != ref[addr+int64(i)] {
					panic("read diverged from reference")
				}
			}

		case 2:
			// The end page is inclusive, so the range must stop one byte
			// short of the device end to stay on it.
			if addr+length > total-1 {
				length = total - 1 - addr
			}
			if err := dev.Erase(addr, length); err != nil {
				panic(err)
			}
			start := addr / pageSize * pageSize
			end := (addr+length)/pageSize*pageSize + pageSize
			for i := start; i < end; i++ {
				ref[i] = eraseFill
			}
		}
		ops++
	}

	if ops == 0 {
		return 0
	}
	return 1
}
