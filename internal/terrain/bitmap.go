package terrain

// Bitmap is a 1-bit-per-pixel image with a fixed byte stride. Bit set
// means drawn (black). Bits are MSB-first within a byte, so column x
// lives at Pix[y*Stride + x>>3], mask 0x80>>(x&7).
//
// The rasterizer is the only writer during a frame; collision reads.
type Bitmap struct {
	W, H   int
	Stride int
	Pix    []byte
}

// NewBitmap allocates a cleared bitmap. The stride is rounded up to a
// whole number of 16-bit words so pattern blits never straddle the row
// end mid-word.
func NewBitmap(w, h int) *Bitmap {
	stride := (w + 15) / 16 * 2
	return &Bitmap{
		W:      w,
		H:      h,
		Stride: stride,
		Pix:    make([]byte, stride*h),
	}
}

// Clear zeroes every pixel.
func (b *Bitmap) Clear() {
	clear(b.Pix)
}

// Bit reports whether the pixel at (x, y) is set. Out of range is unset.
func (b *Bitmap) Bit(x, y int) bool {
	if x < 0 || x >= b.W || y < 0 || y >= b.H {
		return false
	}
	return b.Pix[y*b.Stride+x>>3]&(0x80>>(x&7)) != 0
}

// SetBit sets the pixel at (x, y). Out of range is a no-op.
func (b *Bitmap) SetBit(x, y int) {
	if x < 0 || x >= b.W || y < 0 || y >= b.H {
		return
	}
	b.Pix[y*b.Stride+x>>3] |= 0x80 >> (x & 7)
}

// blitOp selects how a pattern combines with existing pixels.
type blitOp uint8

const (
	blitOr  blitOp = iota // set pattern bits (black pass, hashes)
	blitAnd               // clear where pattern bits are zero (whites)
	blitXor               // invert pattern bits (junction whites)
)

// blit16 applies a 16-bit pattern at columns [x, x+16) of row y, clipped
// to columns [clipL, clipR). Pattern bit 15 lands on column x. For
// blitAnd the pattern is a keep-mask: zero bits erase, and columns
// outside the pattern window are kept.
func (b *Bitmap) blit16(x, y int, pat uint16, clipL, clipR int, op blitOp) {
	if y < 0 || y >= b.H {
		return
	}
	if clipL < 0 {
		clipL = 0
	}
	if clipR > b.W {
		clipR = b.W
	}
	lo, hi := x, x+16
	if lo < clipL {
		lo = clipL
	}
	if hi > clipR {
		hi = clipR
	}
	if hi <= lo {
		return
	}

	// Work in a 32-bit window of 4 bytes starting at byte bx; columns
	// bx*8 .. bx*8+31 map to bits 31..0.
	bx := x >> 3 // arithmetic shift floors negative x
	off := x - bx*8
	v := uint32(pat) << (16 - off)

	a := uint(lo - bx*8)
	n := uint(hi - lo)
	vis := (^uint32(0) >> a) &^ (^uint32(0) >> (a + n))

	row := y * b.Stride
	for j := 0; j < 4; j++ {
		bi := bx + j
		if bi < 0 || bi >= b.Stride {
			continue
		}
		sh := uint(24 - 8*j)
		m := byte(vis >> sh)
		if m == 0 {
			continue
		}
		pv := byte(v >> sh)
		switch op {
		case blitOr:
			b.Pix[row+bi] |= pv & m
		case blitAnd:
			b.Pix[row+bi] &= pv | ^m
		case blitXor:
			b.Pix[row+bi] ^= pv & m
		}
	}
}

// setRun sets n contiguous pixels in row y starting at column x, clipped
// to [clipL, clipR).
func (b *Bitmap) setRun(x, y, n, clipL, clipR int) {
	if y < 0 || y >= b.H {
		return
	}
	if clipL < 0 {
		clipL = 0
	}
	if clipR > b.W {
		clipR = b.W
	}
	lo, hi := x, x+n
	if lo < clipL {
		lo = clipL
	}
	if hi > clipR {
		hi = clipR
	}
	if hi <= lo {
		return
	}
	row := y * b.Stride
	// Leading partial byte.
	for lo < hi && lo&7 != 0 {
		b.Pix[row+lo>>3] |= 0x80 >> (lo & 7)
		lo++
	}
	// Whole bytes.
	for lo+8 <= hi {
		b.Pix[row+lo>>3] = 0xFF
		lo += 8
	}
	// Trailing partial byte.
	for lo < hi {
		b.Pix[row+lo>>3] |= 0x80 >> (lo & 7)
		lo++
	}
}

// CountBits returns the number of set pixels (tests and reports).
func (b *Bitmap) CountBits() int {
	n := 0
	for _, p := range b.Pix {
		for p != 0 {
			n += int(p & 1)
			p >>= 1
		}
	}
	return n
}

// Checksum is a cheap FNV-1a over the pixel bytes, used by the headless
// renderer to compare frames.
func (b *Bitmap) Checksum() uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for _, p := range b.Pix {
		h ^= uint64(p)
		h *= prime64
	}
	return h
}
