package p256ecdh

// FieldElement represents an element of the P-256 base field GF(p),
// p = 2^256 - 2^224 + 2^192 + 2^96 - 1, as ten signed 32-bit limbs in
// a fixed 26-bit radix: limb i holds bits [26*i .. 26*i+25] of the
// value when the element is normalized. Limbs are signed so that
// intermediate subtraction results may be momentarily negative;
// normalize restores the canonical range.
//
// This mirrors the teacher's FieldElement (a fixed-size limb array
// with value semantics and pointer-receiver mutators) but uses the
// 10x26 radix this spec's prime and reference implementation require
// instead of the teacher's 5x52 secp256k1 layout.
type FieldElement [10]int32

const limbMask = 0x3ffffff // 2^26 - 1

// p256Mod is the P-256 field modulus in 10-limb canonical form.
var p256Mod = FieldElement{
	0x3ffffff, 0x3ffffff, 0x3ffffff, 0x003ffff, 0x0000000,
	0x0000000, 0x0000000, 0x0000400, 0x3ff0000, 0x03fffff,
}

// p256ModP2 is p-2 packed as eight 32-bit words, word 0 holding the
// least significant 32 bits. It is the public exponent used by
// montInv's Fermat-little-theorem inversion.
var p256ModP2 = [8]uint32{
	0xfffffffd, 0xffffffff, 0xffffffff, 0x00000000,
	0x00000000, 0x00000000, 0x00000001, 0xffffffff,
}

// fieldZero and fieldOne are the additive and multiplicative
// identities in canonical (non-Montgomery) limb form.
var (
	fieldZero = FieldElement{}
	fieldOne  = FieldElement{1}
)

// fromBytes reads 32 big-endian bytes into a's ten 26-bit limbs.
func (a *FieldElement) fromBytes(b []byte) {
	_ = b[31]
	j, s := 0, 0
	a[0] = 0
	for i := 31; i >= 0; i-- {
		a[j] |= int32(b[i]) << uint(s)
		if s >= 18 {
			a[j] &= limbMask
			s = 26 - s
			if j+1 >= 10 {
				break
			}
			j++
			a[j] = int32(b[i]) >> uint(s)
			s = 8 - s
		} else {
			s += 8
		}
	}
	for j++; j < 10; j++ {
		a[j] = 0
	}
}

// toBytes normalizes a in place, then emits it as 32 big-endian bytes.
func (a *FieldElement) toBytes(out []byte) {
	_ = out[31]
	a.normalize()

	j := 31
	out[j] = 0
	s := 0
	for i := 0; i < 10 && j >= 0; i++ {
		b := 0
		out[j] |= byte(a[i] << uint(s))
		j--
		b += 8 - s
		if j < 0 {
			break
		}
		for b < 26 {
			out[j] = byte(a[i] >> uint(b))
			j--
			b += 8
			if j < 0 {
				break
			}
		}
		s = 8 - (b - 26)
		if j >= 0 {
			out[j] = 0
		}
		if s != 0 {
			j++
		}
	}
}

// normalize propagates carries so that limbs 0..8 land in [0, 2^26-1],
// leaving limb 9 to absorb whatever remains (INV-1).
func (a *FieldElement) normalize() {
	for i := 0; i < 9; i++ {
		a[i+1] += a[i] >> 26
		a[i] &= limbMask
	}
}

// add sets r = a + b, limbwise, without normalizing.
func (r *FieldElement) add(a, b *FieldElement) {
	for i := 0; i < 10; i++ {
		r[i] = a[i] + b[i]
	}
}

// sub sets r = a - b, limbwise, without normalizing.
func (r *FieldElement) sub(a, b *FieldElement) {
	for i := 0; i < 10; i++ {
		r[i] = a[i] - b[i]
	}
}

// condAdd sets r = a + (b & mask) limbwise. mask is all-ones (-1) to
// add, all-zero to no-op; this is the only conditional operation
// permitted on secret-dependent data — no branch ever depends on a
// secret bit.
func condAdd(r, a, b *FieldElement, mask int32) {
	for i := 0; i < 10; i++ {
		r[i] = a[i] + (b[i] & mask)
	}
}

// condSub sets r = a - (b & mask) limbwise.
func condSub(r, a, b *FieldElement, mask int32) {
	for i := 0; i < 10; i++ {
		r[i] = a[i] - (b[i] & mask)
	}
}

// rshift1 shifts a right by one bit across limb boundaries; the
// bottom bit is lost. Used only after an even-guarded conditional
// add, inside div2.
func rshift1(r, a *FieldElement) {
	for i := 0; i < 9; i++ {
		r[i] = ((a[i] >> 1) | (a[i+1] << 25)) & limbMask
	}
	r[9] = a[9] >> 1
}

// div2 computes r = a/2 mod p256Mod: if a is odd, p (itself odd) is
// added first so the sum is even, then the value is normalized and
// shifted right by one bit.
func div2(r, a *FieldElement) {
	condAdd(r, a, &p256Mod, 0-(a[0]&1))
	r.normalize()
	rshift1(r, r)
}

// cmp performs a constant-time comparison of a and b, scanning from
// the most significant limb down. It returns a negative, zero, or
// positive value according to whether a is less than, equal to, or
// greater than b — preserving the reference's "first nonzero
// difference wins, scanned from the top, under a cascading mask"
// semantics.
func cmp(a, b *FieldElement) int32 {
	var r int32
	for i := 9; i >= 0; i-- {
		var notR int32
		if r == 0 {
			notR = 1
		}
		r |= (a[i] - b[i]) & (0 - notR)
	}
	return r
}

// equal reports whether a and b hold identical limbs. It does not
// normalize; callers compare normalized values when canonical
// equality is required.
func equal(a, b *FieldElement) bool {
	var r int32
	for i := 0; i < 10; i++ {
		r |= a[i] ^ b[i]
	}
	return r == 0
}

// isZero reports whether a's limbs are all zero.
func (a *FieldElement) isZero() bool {
	return equal(a, &fieldZero)
}

// cmov conditionally sets r = a when mask is all-ones, leaving r
// unchanged when mask is zero. Used by the point formulas to select
// between a freshly computed result and an unchanged operand without
// branching on which case applies.
func (r *FieldElement) cmov(a *FieldElement, mask int32) {
	for i := 0; i < 10; i++ {
		r[i] = (r[i] &^ mask) | (a[i] & mask)
	}
}
