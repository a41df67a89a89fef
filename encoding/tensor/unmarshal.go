package tensor

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// maxElements bounds allocations driven by untrusted dimensions.
const maxElements = 1 << 24

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (t *Tensor) UnmarshalBinary(data []byte) error {
	r := reader{bytes.NewReader(data)}
	if err := r.checkHeader(); err != nil {
		return err
	}

	rank, err := r.readNumber()
	if err != nil {
		return err
	}
	if rank == 0 || rank > 8 {
		return fmt.Errorf("unsupported rank %d", rank)
	}

	shape := make([]int, rank)
	n := 1
	for i := range shape {
		d, err := r.readNumber()
		if err != nil {
			return err
		}
		if d == 0 {
			return fmt.Errorf("zero dimension at axis %d", i)
		}
		shape[i] = int(d)
		n *= int(d)
		if n > maxElements {
			return fmt.Errorf("tensor too large")
		}
	}

	values := make([]float32, n)
	if err := binary.Read(r, binary.LittleEndian, values); err != nil {
		return fmt.Errorf("failed to read values: %w", err)
	}
	if r.Len() != 0 {
		return fmt.Errorf("%d trailing bytes", r.Len())
	}

	t.Shape = shape
	t.Data = values
	return nil
}

type reader struct {
	*bytes.Reader
}

func (r reader) checkHeader() error {
	buf := make([]byte, HeaderLen)
	n, err := r.Read(buf)
	if err != nil {
		return err
	}
	if n != HeaderLen {
		return fmt.Errorf("wrong header size")
	}
	if string(buf) != HeaderV1 {
		return fmt.Errorf("unknown header")
	}
	return nil
}

func (r reader) readNumber() (uint32, error) {
	var nb uint32
	if err := binary.Read(r, binary.LittleEndian, &nb); err != nil {
		return 0, fmt.Errorf("wrong number read")
	}
	return nb, nil
}
