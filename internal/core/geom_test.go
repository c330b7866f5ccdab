package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestRectSplitColumns(t *testing.T) {
	tests := []struct {
		name   string
		r      Rect
		n, gap int
		wantW  int
	}{
		{"four lanes", NewRect(2, 0, 35, 10), 4, 1, 8},
		{"no gap", NewRect(0, 0, 12, 3), 3, 0, 4},
		{"too narrow", NewRect(0, 0, 2, 3), 4, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cols := tc.r.SplitColumns(tc.n, tc.gap)
			if len(cols) != tc.n {
				t.Fatalf("got %d columns, expected %d", len(cols), tc.n)
			}
			for i, c := range cols {
				if c.W != tc.wantW || c.H != tc.r.H || c.Y != tc.r.Y {
					t.Errorf("column %d = %+v", i, c)
				}
				if i > 0 && c.X != cols[i-1].Right()+tc.gap {
					t.Errorf("column %d starts at %d, expected %d", i, c.X, cols[i-1].Right()+tc.gap)
				}
			}
			if cols[0].X != tc.r.X {
				t.Errorf("first column at %d, expected %d", cols[0].X, tc.r.X)
			}
		})
	}

	if cols := NewRect(0, 0, 10, 1).SplitColumns(0, 1); cols != nil {
		t.Error("zero columns should return nil")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestLaneActions(t *testing.T) {
	for lane := 0; lane < 4; lane++ {
		a := LaneAction(lane)
		got, ok := a.Lane()
		if !ok || got != lane {
			t.Errorf("LaneAction(%d).Lane() = %d, %v", lane, got, ok)
		}
	}
	if LaneAction(4) != ActionNone || LaneAction(-1) != ActionNone {
		t.Error("out of range lanes should map to ActionNone")
	}
	if _, ok := ActionPause.Lane(); ok {
		t.Error("ActionPause is not a lane action")
	}
	if LaneColor(0) == LaneColor(3) || LaneColor(9) != ColorGray {
		t.Error("unexpected lane colors")
	}
}
