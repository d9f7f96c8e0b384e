package testing

import "io"

// SystemWriter is the signature of rtos.SetSystemWriter.
type SystemWriter func(int, []byte) int

// NewSystemWriter returns a SystemWriter from an io.Writer, e.g. a host
// console. Unlike machine.DefaultWrite it needs a working heap.
func NewSystemWriter(w io.Writer) SystemWriter {
	return func(fd int, p []byte) int {
		n, _ := w.Write(p)
		return n
	}
}
