package board

// Move encodes a chess move in 16 bits: from:6 | to:6 | flag:2 | promo:2.
// Because PieceType's ordinal places Knight..Queen at 0..3, the 2-bit
// promotion field is a PieceType value with no translation needed.
type Move uint16

// Move flags.
const (
	FlagNone      uint16 = 0 << 14
	FlagPromotion uint16 = 1 << 14
	FlagEnPassant uint16 = 2 << 14
	FlagCastle    uint16 = 3 << 14
)

// NoMove is the zero value, never produced by the generator (A1->A1).
const NoMove Move = 0

// NewMove creates a move with no special flag.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a promotion move. promo must be one of
// Knight/Bishop/Rook/Queen.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move(from) | Move(to)<<6 | Move(promo)<<12 | Move(FlagPromotion)
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(FlagEnPassant)
}

// NewCastle creates a castling move; to is always the king's normalized
// destination (G or C file), never the rook's square.
func NewCastle(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(FlagCastle)
}

// From returns the origin square.
func (m Move) From() Square { return Square(m & 0x3F) }

// To returns the destination square.
func (m Move) To() Square { return Square((m >> 6) & 0x3F) }

// Flag returns the move's flag bits.
func (m Move) Flag() uint16 { return uint16(m) & 0xC000 }

// Promotion returns the promotion piece type; only meaningful when
// IsPromotion() is true.
func (m Move) Promotion() PieceType { return PieceType((m >> 12) & 3) }

// IsPromotion reports whether this move promotes a pawn.
func (m Move) IsPromotion() bool { return m.Flag() == FlagPromotion }

// IsCastle reports whether this move is a castle.
func (m Move) IsCastle() bool { return m.Flag() == FlagCastle }

// IsEnPassant reports whether this move is an en passant capture.
func (m Move) IsEnPassant() bool { return m.Flag() == FlagEnPassant }

// String returns the long-algebraic form of the move (e.g. "e2e4", "e7e8q").
// For a castle this renders the encoded, normalized king destination
// (C or G file) rather than the rook's origin square, since a bare Move
// carries no board context to recover it; use MoveToLAN against the
// originating board for a form that survives a Chess960 round trip.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char() + ('a' - 'A'))
	}
	return s
}

// PieceMoves batches every destination square reachable from one source
// square by one piece, sharing a single flag. It is the unit gen_moves
// delivers to its visitor; callers expand it into individual Moves.
type PieceMoves struct {
	From  Square
	To    Bitboard
	Piece PieceType
	Flag  uint16
}

// Len returns how many individual Moves this batch expands into: one per
// destination square, times four for promotions (one per promotion target).
func (pm PieceMoves) Len() int {
	n := pm.To.PopCount()
	if pm.Flag == FlagPromotion {
		n *= 4
	}
	return n
}

// PieceMovesIter walks the individual moves contained in a PieceMoves
// batch, promotions expanding queen-first (promotion index 0..3 maps to
// PieceType ordinals 3,2,1,0: Queen, Rook, Bishop, Knight).
type PieceMovesIter struct {
	pm       PieceMoves
	to       Bitboard
	cur      Square
	promoIdx int // -1 means "pop the next destination square"
}

// Iter returns an iterator over pm's individual moves.
func (pm PieceMoves) Iter() *PieceMovesIter {
	return &PieceMovesIter{pm: pm, to: pm.To, promoIdx: -1}
}

// Next returns the next Move and true, or the zero Move and false when
// exhausted.
func (it *PieceMovesIter) Next() (Move, bool) {
	if it.pm.Flag == FlagPromotion {
		if it.promoIdx < 0 {
			if it.to.None() {
				return NoMove, false
			}
			it.cur = it.to.PopLSB()
			it.promoIdx = 0
		}
		promo := PieceType(3 - it.promoIdx)
		it.promoIdx++
		if it.promoIdx == 4 {
			it.promoIdx = -1
		}
		return NewPromotion(it.pm.From, it.cur, promo), true
	}

	if it.to.None() {
		return NoMove, false
	}
	to := it.to.PopLSB()
	switch it.pm.Flag {
	case FlagEnPassant:
		return NewEnPassant(it.pm.From, to), true
	case FlagCastle:
		return NewCastle(it.pm.From, to), true
	default:
		return NewMove(it.pm.From, to), true
	}
}

// MoveList is a fixed-size list of moves; 218 is the established bound on
// legal moves from any reachable chess position, chosen to avoid
// allocation in the generator's hot path.
type MoveList struct {
	Moves [218]Move
	Len   int
}

// Add appends m to the list.
func (ml *MoveList) Add(m Move) {
	ml.Moves[ml.Len] = m
	ml.Len++
}

// AddBatch expands a PieceMoves batch and appends every individual move.
func (ml *MoveList) AddBatch(pm PieceMoves) {
	it := pm.Iter()
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		ml.Add(m)
	}
}

// Slice returns the accumulated moves.
func (ml *MoveList) Slice() []Move {
	return ml.Moves[:ml.Len]
}

// Contains reports whether m is present in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.Len; i++ {
		if ml.Moves[i] == m {
			return true
		}
	}
	return false
}
