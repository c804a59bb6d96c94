package board

// ParseMove parses long-algebraic notation ("e2e4", "e7e8q", "e1g1",
// "b1a1") against the current position, resolving castling and en
// passant disambiguation per the board's actual state rather than a
// separate Chess960 flag: a destination landing on one of the mover's own
// rooks is always read as a castle, which covers both notations for free.
// Returns the zero Move and false on any malformed or unresolvable input,
// with no diagnostic (spec §7).
func ParseMove(b *Board, s string) (Move, bool) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, false
	}

	from, ok := ParseSquare(s[0:2])
	if !ok {
		return NoMove, false
	}
	to, ok := ParseSquare(s[2:4])
	if !ok {
		return NoMove, false
	}

	piece := b.Mailbox[from]
	if piece == NoPieceType {
		return NoMove, false
	}

	if len(s) == 5 {
		promo := promotionFromChar(s[4])
		if promo == NoPieceType {
			return NoMove, false
		}
		return NewPromotion(from, to, promo), true
	}

	if piece == King {
		ownRookAtDst := b.Mailbox[to] == Rook && b.Occupied[b.STM].Contains(to)
		standardCastle := from.File() == FileE && (to.File() == FileC || to.File() == FileG)
		if ownRookAtDst || standardCastle {
			kingDst := FileC
			if to.File() > from.File() {
				kingDst = FileG
			}
			return NewCastle(from, NewSquare(kingDst, from.Rank())), true
		}
	}

	if piece == Pawn && from.Rank() == Rank5.Relative(b.STM) && to.File() == b.EnPassant {
		return NewEnPassant(from, to), true
	}

	return NewMove(from, to), true
}

// MoveToLAN renders m the way ParseMove expects to read it back, given the
// position m was generated from (b.STM must still be the mover — call this
// before MakeMove(m)). Every flag but Castle round-trips through plain
// Move.String(); a castle's encoded `to` is always the normalized (C or G)
// king destination (spec §4.1), which isn't enough on its own to recover
// the rook's actual origin file in a Chess960 shuffle, so that case needs
// the board's castling rights to fill it back in. chess960 selects the
// king-takes-rook notation for the Chess960 case; when false, the familiar
// king-two-squares form is used, which ParseMove reads back as a castle only
// when the king starts on the E file.
func MoveToLAN(b *Board, m Move, chess960 bool) string {
	if !m.IsCastle() {
		return m.String()
	}

	us := b.STM
	from, kingDst := m.From(), m.To()
	backRank := kingDst.Rank()

	var rookFile File
	if kingDst.File() == FileG {
		rookFile = b.Castles[us].Short
	} else {
		rookFile = b.Castles[us].Long
	}

	if !chess960 {
		return from.String() + kingDst.String()
	}
	return from.String() + NewSquare(rookFile, backRank).String()
}

func promotionFromChar(c byte) PieceType {
	switch c {
	case 'q':
		return Queen
	case 'r':
		return Rook
	case 'b':
		return Bishop
	case 'n':
		return Knight
	default:
		return NoPieceType
	}
}
