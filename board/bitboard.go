package board

import (
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit set of squares. Bit i corresponds to square
// i (file-major: A1=0, H8=63).
type Bitboard uint64

// File masks.
const (
	MaskFileA Bitboard = 0x0101010101010101
	MaskFileB Bitboard = MaskFileA << 1
	MaskFileC Bitboard = MaskFileA << 2
	MaskFileD Bitboard = MaskFileA << 3
	MaskFileE Bitboard = MaskFileA << 4
	MaskFileF Bitboard = MaskFileA << 5
	MaskFileG Bitboard = MaskFileA << 6
	MaskFileH Bitboard = MaskFileA << 7
)

// Rank masks.
const (
	MaskRank1 Bitboard = 0x00000000000000FF
	MaskRank2 Bitboard = MaskRank1 << (8 * 1)
	MaskRank3 Bitboard = MaskRank1 << (8 * 2)
	MaskRank4 Bitboard = MaskRank1 << (8 * 3)
	MaskRank5 Bitboard = MaskRank1 << (8 * 4)
	MaskRank6 Bitboard = MaskRank1 << (8 * 5)
	MaskRank7 Bitboard = MaskRank1 << (8 * 6)
	MaskRank8 Bitboard = MaskRank1 << (8 * 7)
)

const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF

	notFileA Bitboard = ^MaskFileA
	notFileH Bitboard = ^MaskFileH
	notAB    Bitboard = ^(MaskFileA | MaskFileB)
	notGH    Bitboard = ^(MaskFileG | MaskFileH)
)

// FileMask maps a File to its full-column mask.
var FileMask = [8]Bitboard{MaskFileA, MaskFileB, MaskFileC, MaskFileD, MaskFileE, MaskFileF, MaskFileG, MaskFileH}

// RankMask maps a Rank to its full-row mask.
var RankMask = [8]Bitboard{MaskRank1, MaskRank2, MaskRank3, MaskRank4, MaskRank5, MaskRank6, MaskRank7, MaskRank8}

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Contains reports whether sq is a member of the set.
func (b Bitboard) Contains(sq Square) bool {
	return b&(1<<sq) != 0
}

// Set returns b with sq added.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | (1 << sq)
}

// Clear returns b with sq removed.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (1 << sq)
}

// Toggle returns b with sq's membership flipped.
func (b Bitboard) Toggle(sq Square) Bitboard {
	return b ^ (1 << sq)
}

// Union returns the set union of a and b.
func (b Bitboard) Union(o Bitboard) Bitboard { return b | o }

// Intersect returns the set intersection of a and b.
func (b Bitboard) Intersect(o Bitboard) Bitboard { return b & o }

// Subtract returns b with every member of o removed.
func (b Bitboard) Subtract(o Bitboard) Bitboard { return b &^ o }

// PopCount returns the number of member squares.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest-indexed member square, or NoSquare if empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the highest-indexed member square, or NoSquare if empty.
func (b Bitboard) MSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLSB removes and returns the lowest-indexed member square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Any reports whether any square is a member.
func (b Bitboard) Any() bool { return b != 0 }

// None reports whether no square is a member.
func (b Bitboard) None() bool { return b == 0 }

// North shifts every member one rank toward rank 8, off-board bits drop.
func (b Bitboard) North() Bitboard { return b << 8 }

// South shifts every member one rank toward rank 1.
func (b Bitboard) South() Bitboard { return b >> 8 }

// East shifts every member one file toward H, wrapping masked off.
func (b Bitboard) East() Bitboard { return (b << 1) & notFileA }

// West shifts every member one file toward A, wrapping masked off.
func (b Bitboard) West() Bitboard { return (b >> 1) & notFileH }

// NorthEast shifts diagonally toward the H8 corner.
func (b Bitboard) NorthEast() Bitboard { return (b << 9) & notFileA }

// NorthWest shifts diagonally toward the A8 corner.
func (b Bitboard) NorthWest() Bitboard { return (b << 7) & notFileH }

// SouthEast shifts diagonally toward the H1 corner.
func (b Bitboard) SouthEast() Bitboard { return (b >> 7) & notFileA }

// SouthWest shifts diagonally toward the A1 corner.
func (b Bitboard) SouthWest() Bitboard { return (b >> 9) & notFileH }

// Knight and king step tables live in attacks.go, which precomputes
// per-square tables rather than reshifting on every lookup.

// String returns an 8x8 ASCII diagram, rank 8 first.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := Rank8; rank >= Rank1; rank-- {
		sb.WriteString(rank.String())
		sb.WriteByte(' ')
		for file := FileA; file <= FileH; file++ {
			if b.Contains(NewSquare(file, rank)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
		if rank == Rank1 {
			break
		}
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// ForEach calls f once per member square, lowest square first.
func (b Bitboard) ForEach(f func(Square)) {
	for b != 0 {
		f(b.PopLSB())
	}
}

// Squares returns every member square, lowest first.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// diagonalOf and antiDiagonalOf return the full 8x8 diagonal/anti-diagonal
// bitboard running through sq, constructed by sweeping every rank and
// keeping the square whose (file-rank) or (file+rank) matches sq's. Grounded on original_source's main_diag_for/anti_diag_for,
// which derive these from (file-rank) and (file+rank) index arithmetic;
// here they are built once at init time the way the teacher precomputes its
// attack tables.
func diagonalOf(sq Square) Bitboard {
	var bb Bitboard
	f, r := int(sq.File()), int(sq.Rank())
	for ff, rr := f-r, 0; ; ff, rr = ff+1, rr+1 {
		if rr > 7 {
			break
		}
		if ff >= 0 && ff <= 7 {
			bb |= SquareBB(NewSquare(File(ff), Rank(rr)))
		}
	}
	return bb
}

func antiDiagonalOf(sq Square) Bitboard {
	var bb Bitboard
	f, r := int(sq.File()), int(sq.Rank())
	s := f + r
	for rr := 0; rr <= 7; rr++ {
		ff := s - rr
		if ff >= 0 && ff <= 7 {
			bb |= SquareBB(NewSquare(File(ff), Rank(rr)))
		}
	}
	return bb
}

var (
	mainDiagonal     [64]Bitboard
	antiDiagonalMask [64]Bitboard
)

func init() {
	for sq := A1; sq <= H8; sq++ {
		mainDiagonal[sq] = diagonalOf(sq)
		antiDiagonalMask[sq] = antiDiagonalOf(sq)
	}
}

// DiagonalThrough returns the A1-H8-direction diagonal passing through sq.
func DiagonalThrough(sq Square) Bitboard { return mainDiagonal[sq] }

// AntiDiagonalThrough returns the A8-H1-direction diagonal passing through sq.
func AntiDiagonalThrough(sq Square) Bitboard { return antiDiagonalMask[sq] }
