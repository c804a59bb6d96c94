package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a Board. It accepts both standard
// castling letters (KQkq) and Chess960/Shredder-FEN rook-file letters
// (A-H, a-h). On any malformed input it returns the zero Board and false,
// with no further diagnostic — failures are the caller's to detect and
// report (spec's error-handling contract: only FEN and move parsing can
// fail, and both fail silently).
func ParseFEN(fen string) (Board, bool) {
	fields := strings.Fields(fen)
	if len(fields) != 4 && len(fields) != 6 {
		return Board{}, false
	}

	var b Board
	for sq := A1; sq <= H8; sq++ {
		b.Mailbox[sq] = NoPieceType
	}
	b.EnPassant = NoFile
	b.FullmoveCount = 1

	if !parsePiecePlacement(&b, fields[0]) {
		return Board{}, false
	}

	switch fields[1] {
	case "w":
		b.STM = White
	case "b":
		b.STM = Black
	default:
		return Board{}, false
	}

	if (b.Pieces[King] & b.Occupied[White]).PopCount() != 1 {
		return Board{}, false
	}
	if (b.Pieces[King] & b.Occupied[Black]).PopCount() != 1 {
		return Board{}, false
	}

	if !parseCastlingRights(&b, fields[2]) {
		return Board{}, false
	}

	if !parseEnPassant(&b, fields[3]) {
		return Board{}, false
	}

	if len(fields) == 6 {
		hmc, err := strconv.Atoi(fields[4])
		if err != nil || hmc < 0 || hmc >= 100 {
			return Board{}, false
		}
		b.HalfmoveClock = hmc

		fmc, err := strconv.Atoi(fields[5])
		if err != nil || fmc < 1 {
			return Board{}, false
		}
		b.FullmoveCount = fmc
	}

	b.Hash = b.computeHash()
	b.calcPinnedAndCheckers()

	return b, true
}

func parsePiecePlacement(b *Board, placement string) bool {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return false
	}

	for i, rankStr := range ranks {
		rank := Rank(7 - i)
		file := FileA
		seenFile := 0

		for _, ch := range rankStr {
			if seenFile > 7 {
				return false
			}
			if ch >= '1' && ch <= '8' {
				n := int(ch - '0')
				file += File(n)
				seenFile += n
				continue
			}
			piece := PieceFromChar(byte(ch))
			if piece == NoPiece {
				return false
			}
			sq := NewSquare(file, rank)
			if b.Mailbox[sq] != NoPieceType {
				return false
			}
			pt, c := piece.Type(), piece.Color()
			b.Pieces[pt] = b.Pieces[pt].Set(sq)
			b.Occupied[c] = b.Occupied[c].Set(sq)
			b.Mailbox[sq] = pt
			file++
			seenFile++
		}

		if seenFile != 8 {
			return false
		}
	}

	return true
}

// parseCastlingRights resolves both the standard KQkq form and the
// Chess960/Shredder-FEN file-letter form into per-color Short/Long rook
// files. For K/Q/k/q, the matching rook is the one nearest the H (K) or A
// (Q) edge of that color's back rank, on the correct side of the king —
// the FEN contract spelled out in spec §6.
func parseCastlingRights(b *Board, castling string) bool {
	b.Castles = [2]CastlingRights{{NoFile, NoFile}, {NoFile, NoFile}}
	if castling == "-" {
		return true
	}

	for _, ch := range castling {
		var c Color
		var f File
		var resolveLetter bool
		kingSide := false

		switch ch {
		case 'K':
			c, resolveLetter, kingSide = White, true, true
		case 'Q':
			c, resolveLetter, kingSide = White, true, false
		case 'k':
			c, resolveLetter, kingSide = Black, true, true
		case 'q':
			c, resolveLetter, kingSide = Black, true, false
		default:
			var ok bool
			switch {
			case ch >= 'A' && ch <= 'H':
				c, f, ok = White, File(ch-'A'), true
			case ch >= 'a' && ch <= 'h':
				c, f, ok = Black, File(ch-'a'), true
			}
			if !ok {
				return false
			}
		}

		backRank := Rank1.Relative(c)
		kingSq := b.KingSquare(c)
		if kingSq == NoSquare || kingSq.Rank() != backRank {
			return false
		}
		kingFile := kingSq.File()

		if resolveLetter {
			var found File = NoFile
			if kingSide {
				for cf := FileH; cf > kingFile; cf-- {
					sq := NewSquare(cf, backRank)
					if b.Mailbox[sq] == Rook && b.Occupied[c].Contains(sq) {
						found = cf
						break
					}
				}
			} else {
				for cf := FileA; cf < kingFile; cf++ {
					sq := NewSquare(cf, backRank)
					if b.Mailbox[sq] == Rook && b.Occupied[c].Contains(sq) {
						found = cf
						break
					}
				}
			}
			if found == NoFile {
				return false
			}
			f = found
		} else {
			sq := NewSquare(f, backRank)
			if b.Mailbox[sq] != Rook || !b.Occupied[c].Contains(sq) {
				return false
			}
		}

		cr := &b.Castles[c]
		if f > kingFile {
			cr.Short = f
		} else if f < kingFile {
			cr.Long = f
		} else {
			return false
		}
	}

	return true
}

func parseEnPassant(b *Board, field string) bool {
	if field == "-" {
		b.EnPassant = NoFile
		return true
	}

	sq, ok := ParseSquare(field)
	if !ok {
		return false
	}
	mover := b.STM.Other()
	if sq.Rank() != Rank3.Relative(mover) {
		return false
	}

	if PawnAttacks(sq, mover)&b.Pieces[Pawn]&b.Occupied[b.STM] != 0 {
		b.EnPassant = sq.File()
	} else {
		b.EnPassant = NoFile
	}
	return true
}

// ToFEN emits the board as a FEN string. chess960 selects Shredder-FEN
// rook-file castling letters instead of KQkq.
func (b *Board) ToFEN(chess960 bool) string {
	var sb strings.Builder

	for rank := Rank8; ; rank-- {
		empty := 0
		for file := FileA; file <= FileH; file++ {
			piece := b.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank != Rank1 {
			sb.WriteByte('/')
		} else {
			break
		}
	}

	sb.WriteByte(' ')
	if b.STM == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.castlingString(chess960))

	sb.WriteByte(' ')
	if b.EnPassant == NoFile {
		sb.WriteByte('-')
	} else {
		targetRank := Rank3.Relative(b.STM.Other())
		sb.WriteString(NewSquare(b.EnPassant, targetRank).String())
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.FullmoveCount))

	return sb.String()
}

func (b *Board) castlingString(chess960 bool) string {
	if b.Castles[White].None() && b.Castles[Black].None() {
		return "-"
	}

	var sb strings.Builder
	if chess960 {
		if f := b.Castles[White].Short; f != NoFile {
			sb.WriteString(strings.ToUpper(f.String()))
		}
		if f := b.Castles[White].Long; f != NoFile {
			sb.WriteString(strings.ToUpper(f.String()))
		}
		if f := b.Castles[Black].Short; f != NoFile {
			sb.WriteString(f.String())
		}
		if f := b.Castles[Black].Long; f != NoFile {
			sb.WriteString(f.String())
		}
		return sb.String()
	}

	if b.Castles[White].Short != NoFile {
		sb.WriteByte('K')
	}
	if b.Castles[White].Long != NoFile {
		sb.WriteByte('Q')
	}
	if b.Castles[Black].Short != NoFile {
		sb.WriteByte('k')
	}
	if b.Castles[Black].Long != NoFile {
		sb.WriteByte('q')
	}
	return sb.String()
}

// computeHash recomputes the Zobrist hash from scratch by replaying the
// same per-element XORs MakeMove applies incrementally (spec §4.4).
func (b *Board) computeHash() uint64 {
	var hash uint64

	for c := White; c <= Black; c++ {
		for pt := Knight; pt <= King; pt++ {
			bb := b.Pieces[pt] & b.Occupied[c]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= ZobristPiece(c, pt, sq)
			}
		}
	}

	if b.STM == Black {
		hash ^= ZobristSideToMove()
	}

	for c := White; c <= Black; c++ {
		if f := b.Castles[c].Short; f != NoFile {
			hash ^= ZobristCastleFile(c, f)
		}
		if f := b.Castles[c].Long; f != NoFile {
			hash ^= ZobristCastleFile(c, f)
		}
	}

	if b.EnPassant != NoFile {
		hash ^= ZobristEnPassant(b.EnPassant)
	}

	return hash
}
