package board

import "testing"

// perft counts leaf nodes at depth by walking every legal move. Board is a
// plain value type, so each recursive call works on its own copy and no
// unmake step is needed — the no-undo lifecycle model pays for itself here.
func perft(b Board, depth int) int64 {
	if depth == 0 {
		return 1
	}

	var ml MoveList
	b.GenMoves(func(pm PieceMoves) { ml.AddBatch(pm) })
	if depth == 1 {
		return int64(ml.Len)
	}

	var nodes int64
	for i := 0; i < ml.Len; i++ {
		child := b
		child.MakeMove(ml.Moves[i])
		nodes += perft(child, depth-1)
	}
	return nodes
}

func TestPerftStartingPosition(t *testing.T) {
	b := NewBoard()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		{5, 4865609},
	}

	for _, tc := range tests {
		got := perft(b, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftKiwipete exercises castling, en passant, and promotion in a
// single densely tactical position.
func TestPerftKiwipete(t *testing.T) {
	b, ok := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if !ok {
		t.Fatal("failed to parse Kiwipete FEN")
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
		{4, 4085603},
	}

	for _, tc := range tests {
		got := perft(b, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftEndgame covers the en passant horizontal-pin family of edge cases.
func TestPerftEndgame(t *testing.T) {
	b, ok := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	if !ok {
		t.Fatal("failed to parse endgame FEN")
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}

	for _, tc := range tests {
		got := perft(b, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftPromotion drives every under-promotion and capture-promotion
// combination.
func TestPerftPromotion(t *testing.T) {
	b, ok := ParseFEN("r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1")
	if !ok {
		t.Fatal("failed to parse promotion FEN")
	}

	got := perft(b, 4)
	if want := int64(422333); got != want {
		t.Errorf("perft(4) = %d, want %d", got, want)
	}
}
