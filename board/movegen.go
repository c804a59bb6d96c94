package board

// PieceMovesVisitor receives one PieceMoves batch per source square that has
// at least one destination. Kept as a callback, not a built slice, so the
// hot path allocates nothing (spec §5, §9 "visitor vs. iterator").
type PieceMovesVisitor func(PieceMoves)

// GenMoves generates every legal move for the side to move, dispatched on
// how many checkers attack its king:
//
//   - 0: ordinary generation, pinned pieces constrained to their pin line.
//   - 1: non-king pieces may only capture the checker or block on the
//     segment between checker and king; pinned pieces cannot move at all.
//   - 2+: only the king may move.
func (b *Board) GenMoves(visit PieceMovesVisitor) {
	us := b.STM
	them := us.Other()
	occ := b.AllOccupied()
	king := b.KingSquare(us)

	switch b.Checkers.PopCount() {
	case 0:
		targets := Universe &^ b.Occupied[us]
		b.genPawnMoves(visit, us, them, occ, king, targets, false)
		b.genEnPassant(visit, us, them, occ, king, false, NoSquare)
		b.genKnightMoves(visit, us, king, targets, false)
		b.genSliderMoves(visit, us, king, occ, targets, false, b.Pieces[Bishop]|b.Pieces[Queen], BishopAttacks)
		b.genSliderMoves(visit, us, king, occ, targets, false, b.Pieces[Rook]|b.Pieces[Queen], RookAttacks)
		b.genKingMoves(visit, us, them, king, occ)
		b.genCastling(visit, us, them, king, occ)
	case 1:
		checkerSq := b.Checkers.LSB()
		targets := BetweenInclusive(checkerSq, king) &^ b.Occupied[us]
		b.genPawnMoves(visit, us, them, occ, king, targets, true)
		b.genEnPassant(visit, us, them, occ, king, true, checkerSq)
		b.genKnightMoves(visit, us, king, targets, true)
		b.genSliderMoves(visit, us, king, occ, targets, true, b.Pieces[Bishop]|b.Pieces[Queen], BishopAttacks)
		b.genSliderMoves(visit, us, king, occ, targets, true, b.Pieces[Rook]|b.Pieces[Queen], RookAttacks)
		b.genKingMoves(visit, us, them, king, occ)
	default:
		b.genKingMoves(visit, us, them, king, occ)
	}
}

// LegalMoves collects every legal move into a MoveList. Convenience wrapper
// around GenMoves for callers that want a slice rather than a callback.
func (b *Board) LegalMoves() MoveList {
	var ml MoveList
	b.GenMoves(func(pm PieceMoves) { ml.AddBatch(pm) })
	return ml
}

func promotionSplit(dest Bitboard) (normal, promo Bitboard) {
	const lastRanks = MaskRank1 | MaskRank8
	return dest &^ lastRanks, dest & lastRanks
}

func (b *Board) genPawnMoves(visit PieceMovesVisitor, us, them Color, occ Bitboard, king Square, targets Bitboard, inCheck bool) {
	pawns := b.Pieces[Pawn] & b.Occupied[us]
	if inCheck {
		pawns &^= b.Pinned
	}

	for pawns != 0 {
		from := pawns.PopLSB()
		dest := (PawnPushes(from, us, occ) | (PawnAttacks(from, us) & b.Occupied[them])) & targets
		if !inCheck && b.Pinned.Contains(from) {
			dest &= Line(king, from)
		}
		if dest == 0 {
			continue
		}
		normal, promo := promotionSplit(dest)
		if normal != 0 {
			visit(PieceMoves{From: from, To: normal, Piece: Pawn, Flag: FlagNone})
		}
		if promo != 0 {
			visit(PieceMoves{From: from, To: promo, Piece: Pawn, Flag: FlagPromotion})
		}
	}
}

// genEnPassant handles the one capture type that needs a dedicated
// discovered-check simulation instead of the ordinary pinned/targets
// machinery: removing both the capturing and captured pawn from the same
// rank can expose the king along that rank in a way the `pinned` bitboard
// never tracks (it only tracks single-piece pins).
func (b *Board) genEnPassant(visit PieceMovesVisitor, us, them Color, occ Bitboard, king Square, inCheck bool, checkerSq Square) {
	if b.EnPassant == NoFile {
		return
	}

	to := NewSquare(b.EnPassant, Rank3.Relative(them))

	candidates := PawnAttacks(to, them) & b.Pieces[Pawn] & b.Occupied[us]
	for candidates != 0 {
		from := candidates.PopLSB()
		captured := NewSquare(b.EnPassant, from.Rank())

		if inCheck && checkerSq != captured {
			continue
		}

		simOcc := (occ &^ SquareBB(from) &^ SquareBB(captured)) | SquareBB(to)

		if RookAttacks(king, simOcc)&(b.Pieces[Rook]|b.Pieces[Queen])&b.Occupied[them] != 0 {
			continue
		}
		if BishopAttacks(king, simOcc)&(b.Pieces[Bishop]|b.Pieces[Queen])&b.Occupied[them] != 0 {
			continue
		}

		visit(PieceMoves{From: from, To: SquareBB(to), Piece: Pawn, Flag: FlagEnPassant})
	}
}

func (b *Board) genKnightMoves(visit PieceMovesVisitor, us Color, king Square, targets Bitboard, inCheck bool) {
	knights := b.Pieces[Knight] & b.Occupied[us]
	if inCheck {
		knights &^= b.Pinned
	}

	for knights != 0 {
		from := knights.PopLSB()
		dest := KnightAttacks(from) & targets
		if !inCheck && b.Pinned.Contains(from) {
			dest &= Line(king, from)
		}
		if dest != 0 {
			visit(PieceMoves{From: from, To: dest, Piece: Knight, Flag: FlagNone})
		}
	}
}

func (b *Board) genSliderMoves(visit PieceMovesVisitor, us Color, king Square, occ Bitboard, targets Bitboard, inCheck bool, pieces Bitboard, attacks func(Square, Bitboard) Bitboard) {
	sliders := pieces & b.Occupied[us]
	if inCheck {
		sliders &^= b.Pinned
	}

	for sliders != 0 {
		from := sliders.PopLSB()
		dest := attacks(from, occ) & targets
		if !inCheck && b.Pinned.Contains(from) {
			dest &= Line(king, from)
		}
		if dest != 0 {
			visit(PieceMoves{From: from, To: dest, Piece: b.Mailbox[from], Flag: FlagNone})
		}
	}
}

// attackedBy reports whether byColor attacks sq given occupancy occ.
func (b *Board) attackedBy(sq Square, byColor Color, occ Bitboard) bool {
	defender := byColor.Other()
	if PawnAttacks(sq, defender)&b.Pieces[Pawn]&b.Occupied[byColor] != 0 {
		return true
	}
	if KnightAttacks(sq)&b.Pieces[Knight]&b.Occupied[byColor] != 0 {
		return true
	}
	if KingAttacks(sq)&b.Pieces[King]&b.Occupied[byColor] != 0 {
		return true
	}
	diag := b.Pieces[Bishop] | b.Pieces[Queen]
	if BishopRays(sq)&diag&b.Occupied[byColor] != 0 {
		if BishopAttacks(sq, occ)&diag&b.Occupied[byColor] != 0 {
			return true
		}
	}
	orth := b.Pieces[Rook] | b.Pieces[Queen]
	if RookRays(sq)&orth&b.Occupied[byColor] != 0 {
		if RookAttacks(sq, occ)&orth&b.Occupied[byColor] != 0 {
			return true
		}
	}
	return false
}

func (b *Board) genKingMoves(visit PieceMovesVisitor, us, them Color, king Square, occ Bitboard) {
	candidates := KingAttacks(king) &^ b.Occupied[us]
	occWithoutKing := occ &^ SquareBB(king)

	var dest Bitboard
	for candidates != 0 {
		sq := candidates.PopLSB()
		if !b.attackedBy(sq, them, occWithoutKing) {
			dest |= SquareBB(sq)
		}
	}
	if dest != 0 {
		visit(PieceMoves{From: king, To: dest, Piece: King, Flag: FlagNone})
	}
}

// genCastling emits the (at most two) castling moves available to the side
// to move. Only called when not in check, per spec.
func (b *Board) genCastling(visit PieceMovesVisitor, us, them Color, king Square, occ Bitboard) {
	backRank := king.Rank()
	rights := b.Castles[us]

	sides := [2]struct {
		rookFile File
		kingDst  File
		rookDst  File
	}{
		{rights.Short, FileG, FileF},
		{rights.Long, FileC, FileD},
	}

	for _, side := range sides {
		if side.rookFile == NoFile {
			continue
		}

		rook := NewSquare(side.rookFile, backRank)
		kingDst := NewSquare(side.kingDst, backRank)
		rookDst := NewSquare(side.rookDst, backRank)

		if b.Pinned.Contains(rook) {
			continue
		}

		path := BetweenInclusive(king, kingDst) | Between(king, rook) | SquareBB(rookDst)
		obstruction := path &^ SquareBB(king) &^ SquareBB(rook) & occ
		if obstruction != 0 {
			continue
		}

		simOcc := occ &^ SquareBB(king) &^ SquareBB(rook)
		kingPath := BetweenInclusive(king, kingDst)
		safe := true
		for kp := kingPath; kp != 0; {
			sq := kp.PopLSB()
			if b.attackedBy(sq, them, simOcc) {
				safe = false
				break
			}
		}
		if !safe {
			continue
		}

		visit(PieceMoves{From: king, To: SquareBB(kingDst), Piece: King, Flag: FlagCastle})
	}
}

// HasLegalMoves reports whether the side to move has any legal move.
func (b *Board) HasLegalMoves() bool {
	found := false
	b.GenMoves(func(pm PieceMoves) {
		if pm.Len() > 0 {
			found = true
		}
	})
	return found
}

// IsCheckmate reports whether the side to move is checkmated.
func (b *Board) IsCheckmate() bool {
	return b.InCheck() && !b.HasLegalMoves()
}

// IsStalemate reports whether the side to move is stalemated.
func (b *Board) IsStalemate() bool {
	return !b.InCheck() && !b.HasLegalMoves()
}

// IsInsufficientMaterial reports whether neither side has enough material
// to deliver checkmate by any sequence of legal moves.
func (b *Board) IsInsufficientMaterial() bool {
	if b.Pieces[Pawn]|b.Pieces[Rook]|b.Pieces[Queen] != 0 {
		return false
	}

	w := (b.Pieces[Knight] | b.Pieces[Bishop]) & b.Occupied[White]
	bl := (b.Pieces[Knight] | b.Pieces[Bishop]) & b.Occupied[Black]

	if w == 0 && bl == 0 {
		return true
	}
	if w.PopCount() <= 1 && bl == 0 {
		return true
	}
	if bl.PopCount() <= 1 && w == 0 {
		return true
	}
	return false
}

// IsDraw reports whether the position is drawn by stalemate, the 50-move
// rule, or insufficient material. Repetition is not tracked (Non-goal); a
// caller that wants that layers it externally.
func (b *Board) IsDraw() bool {
	if b.HalfmoveClock >= 100 {
		return true
	}
	if b.IsStalemate() {
		return true
	}
	return b.IsInsufficientMaterial()
}
