package board

import "testing"

// verifyInvariants checks the structural and bookkeeping invariants that
// MakeMove and ParseFEN must maintain by construction: Pieces/Occupied/
// Mailbox agree, the two colors' occupancy does not overlap, each side has
// exactly one king, the incremental hash matches a from-scratch recompute,
// and the side not to move is not left in check.
func verifyInvariants(t *testing.T, b *Board, path string) {
	t.Helper()

	var fromMailbox [2]Bitboard
	for sq := A1; sq <= H8; sq++ {
		pt := b.Mailbox[sq]
		if pt == NoPieceType {
			continue
		}
		c := Black
		if b.Occupied[White].Contains(sq) {
			c = White
		}
		fromMailbox[c] = fromMailbox[c].Set(sq)
		if !b.Pieces[pt].Contains(sq) {
			t.Fatalf("%s: square %v mailbox says %v but Pieces[%v] disagrees", path, sq, pt, pt)
		}
	}
	for c := White; c <= Black; c++ {
		if fromMailbox[c] != b.Occupied[c] {
			t.Fatalf("%s: Occupied[%v] = %v, mailbox reconstructs %v", path, c, b.Occupied[c], fromMailbox[c])
		}
	}
	if b.Occupied[White]&b.Occupied[Black] != 0 {
		t.Fatalf("%s: White and Black occupancy overlap", path)
	}

	if (b.Pieces[King] & b.Occupied[White]).PopCount() != 1 {
		t.Fatalf("%s: White does not have exactly one king", path)
	}
	if (b.Pieces[King] & b.Occupied[Black]).PopCount() != 1 {
		t.Fatalf("%s: Black does not have exactly one king", path)
	}

	if got, want := b.Hash, b.computeHash(); got != want {
		t.Fatalf("%s: incremental Hash = %016x, recompute = %016x", path, got, want)
	}

	notMover := b.KingSquare(b.STM.Other())
	if b.attackedBy(notMover, b.STM, b.AllOccupied()) {
		t.Fatalf("%s: side not to move is left in check", path)
	}
}

// walkAndVerify recurses over every legal move to depth, checking
// invariants at each node reached. This plays the role of randomized
// play-out testing without depending on live randomness: the move tree
// itself supplies the combinatorial variety.
func walkAndVerify(t *testing.T, b Board, depth int, path string) {
	verifyInvariants(t, &b, path)
	if depth == 0 {
		return
	}

	moves := b.LegalMoves()
	for i := 0; i < moves.Len; i++ {
		m := moves.Moves[i]
		child := b
		child.MakeMove(m)
		walkAndVerify(t, child, depth-1, path+" "+m.String())
	}
}

func TestInvariantsFromStartingPosition(t *testing.T) {
	walkAndVerify(t, NewBoard(), 3, "start")
}

func TestInvariantsFromKiwipete(t *testing.T) {
	b, ok := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if !ok {
		t.Fatal("failed to parse Kiwipete FEN")
	}
	walkAndVerify(t, b, 2, "kiwipete")
}

func TestInvariantsFromChess960Start(t *testing.T) {
	b, ok := ParseFEN("bbqnnrkr/pppppppp/8/8/8/8/PPPPPPPP/BBQNNRKR w KQkq - 0 1")
	if !ok {
		t.Fatal("failed to parse Chess960 FEN")
	}
	walkAndVerify(t, b, 2, "chess960")
}

// TestNoGeneratedMoveLandsOnOwnPiece checks that no generated move's
// destination holds a piece of the mover's own color, except for a
// Chess960 castle where the king's destination may coincide with its own
// rook's origin square.
func TestNoGeneratedMoveLandsOnOwnPiece(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/8/8/8/8/8/8/RK6 w A - 0 1",
	}

	for _, fen := range fens {
		b, ok := ParseFEN(fen)
		if !ok {
			t.Fatalf("failed to parse %q", fen)
		}
		b.GenMoves(func(pm PieceMoves) {
			if pm.Flag == FlagCastle {
				return
			}
			if pm.To&b.Occupied[b.STM] != 0 {
				t.Errorf("%q: move from %v lands on own piece: %v", fen, pm.From, pm.To&b.Occupied[b.STM])
			}
		})
	}
}
