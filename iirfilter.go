// iirfilter.go - order-N direct-form-I IIR filter

package soxplugins

import "fmt"

// IIRFilter holds an order N in {3, 5} and a flat coefficient array of
// length 2N, laid out as [b0,...,b_{N-1}, a0,...,a_{N-1}]. After any set
// call every coefficient is divided by a0, so the stored a0 is always 1.
type IIRFilter struct {
	order int
	coeff []float64 // [b0..b_{N-1}, a0..a_{N-1}]
}

// NewIIRFilter allocates a filter of the given order, initialized as a
// unit pass-through (b0=1, a0=1, everything else zero).
func NewIIRFilter(order int) *IIRFilter {
	if order != 3 && order != 5 {
		panic(fmt.Sprintf("soxplugins: unsupported IIR filter order %d", order))
	}
	f := &IIRFilter{order: order, coeff: make([]float64, 2*order)}
	f.coeff[0] = 1
	f.coeff[order] = 1
	return f
}

func (f *IIRFilter) b(k int) float64 { return f.coeff[k] }
func (f *IIRFilter) a(k int) float64 { return f.coeff[f.order+k] }

// Clear sets every coefficient to zero, producing silence.
func (f *IIRFilter) Clear() {
	for i := range f.coeff {
		f.coeff[i] = 0
	}
}

func (f *IIRFilter) normalize() {
	a0 := f.coeff[f.order]
	if a0 == 0 {
		panic("soxplugins: IIR filter a0 must not be zero")
	}
	for i := range f.coeff {
		f.coeff[i] /= a0
	}
}

// SetIdentity installs H(z) = b0: all coefficients zero except b0 and the
// stored a0 = 1.
func (f *IIRFilter) SetIdentity(b0 float64) {
	f.Clear()
	f.coeff[0] = b0
	f.coeff[f.order] = 1
}

// SetCoefficients3 installs explicit order-3 coefficients and normalizes
// by a0.
func (f *IIRFilter) SetCoefficients3(b0, b1, b2, a0, a1, a2 float64) {
	if f.order != 3 {
		panic("soxplugins: SetCoefficients3 requires an order-3 filter")
	}
	f.coeff[0], f.coeff[1], f.coeff[2] = b0, b1, b2
	f.coeff[3], f.coeff[4], f.coeff[5] = a0, a1, a2
	f.normalize()
}

// SetCoefficients5 installs explicit order-5 coefficients and normalizes
// by a0.
func (f *IIRFilter) SetCoefficients5(b0, b1, b2, b3, b4, a0, a1, a2, a3, a4 float64) {
	if f.order != 5 {
		panic("soxplugins: SetCoefficients5 requires an order-5 filter")
	}
	f.coeff[0], f.coeff[1], f.coeff[2], f.coeff[3], f.coeff[4] = b0, b1, b2, b3, b4
	f.coeff[5], f.coeff[6], f.coeff[7], f.coeff[8], f.coeff[9] = a0, a1, a2, a3, a4
	f.normalize()
}

// Apply computes y[0] = b0*x[0] + sum_{k=1..N-1} b_k*x[k] - sum_{k=1..N-1}
// a_k*y[k], reading x[k] and y[k] from the caller-owned ring buffers, and
// writes the result into out via SetFirst. It never allocates.
//
// Callers are responsible for keeping position 0 of in and out meaning
// "now": before each sample, ShiftRight(0) on both rings to make room,
// then SetFirst the fresh input sample on in. Apply itself performs the
// matching SetFirst on out.
func (f *IIRFilter) Apply(in, out *SampleRingBuffer) AudioSample {
	n := f.order
	y := f.b(0) * in.At(0)
	for k := 1; k < n; k++ {
		y += f.b(k) * in.At(k)
	}
	for k := 1; k < n; k++ {
		y -= f.a(k) * out.At(k)
	}
	out.SetFirst(y)
	return y
}
