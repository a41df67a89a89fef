package tensor

import (
	"bytes"
	"encoding/binary"
)

// MarshalBinary implements encoding.BinaryMarshaler: header, rank, dims and
// the values, all little endian.
func (t *Tensor) MarshalBinary() (data []byte, err error) {
	if err = t.Validate(); err != nil {
		return nil, err
	}

	w := new(writer)
	w.writeHeader()
	w.writeNumber(len(t.Shape))
	for _, d := range t.Shape {
		w.writeNumber(d)
	}
	for _, v := range t.Data {
		w.writeFloat32(v)
	}
	data = w.Bytes()

	return
}

type writer struct {
	b bytes.Buffer
}

func (w *writer) Bytes() []byte {
	return w.b.Bytes()
}

func (w *writer) writeHeader() {
	w.b.Write([]byte(HeaderV1))
}

func (w *writer) writeNumber(n int) {
	binary.Write(&w.b, binary.LittleEndian, uint32(n))
}

func (w *writer) writeFloat32(n float32) {
	binary.Write(&w.b, binary.LittleEndian, n)
}
