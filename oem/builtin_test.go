package oem

import "testing"

func TestDecodePowerSupplyInfoFields(t *testing.T) {
	d := make([]byte, 24)
	d[0], d[1] = 0x10, 0x00 // overall capacity = 16
	d[2], d[3] = 0xFF, 0xFF // peak VA = not specified
	d[4] = 0x05             // inrush current / interval / dropout tolerance (shared byte)
	d[17] = 0x1F             // all boolean flags set

	node, err := decodePowerSupplyInfo(0, 0x00, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.NumFields() != 22 {
		t.Fatalf("num fields = %d, want 22", node.NumFields())
	}

	name, kind, value, _, err := node.GetField(0)
	if err != nil {
		t.Fatalf("overall capacity: %v", err)
	}
	if name != "overall capacity" || kind != DataInt || value.Int != 16 {
		t.Fatalf("overall capacity = %+v", value)
	}

	_, _, _, _, err = node.GetField(1)
	if err != ErrNotApplicable {
		t.Fatalf("expected ErrNotApplicable for peak VA, got %v", err)
	}

	_, kind, value, _, err = node.GetField(2)
	if err != nil {
		t.Fatalf("inrush current: %v", err)
	}
	if kind != DataInt || value.Int != 5 {
		t.Fatalf("inrush current = %+v", value)
	}

	// Field 10, "A/C dropout tolerance", reuses the same byte as inrush
	// current/interval rather than a dedicated byte.
	name, kind, value, _, err = node.GetField(10)
	if err != nil {
		t.Fatalf("dropout tolerance: %v", err)
	}
	if name != "A/C dropout tolerance" || kind != DataFloat || value.Float != 0.005 {
		t.Fatalf("dropout tolerance = %+v", value)
	}

	_, kind, value, _, err = node.GetField(11)
	if err != nil {
		t.Fatalf("tach pulses: %v", err)
	}
	if kind != DataBoolean || !value.Bool {
		t.Fatalf("tach pulses per rotation = %+v", value)
	}
}

func TestDecodePowerSupplyInfoRejectsShortRecord(t *testing.T) {
	if _, err := decodePowerSupplyInfo(0, 0x00, make([]byte, 10)); err == nil {
		t.Fatalf("expected error for short record")
	}
}

func TestCombinedWattageVoltage(t *testing.T) {
	cases := map[byte]float64{0: 12.0, 1: -12.0, 2: 5.0, 3: 3.3, 4: 0.0}
	for nibble, want := range cases {
		if got := combinedWattageVoltage(nibble); got != want {
			t.Fatalf("combinedWattageVoltage(%d) = %v, want %v", nibble, got, want)
		}
	}
}

func TestDecodeDCOutputFields(t *testing.T) {
	d := make([]byte, 13)
	d[0] = 0x82 // output 2, standby set
	d[1], d[2] = 0xE8, 0x03 // nominal voltage raw 1000 -> 10.00V

	node, err := decodeDCOutput(0, 0x01, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.NumFields() != 8 {
		t.Fatalf("num fields = %d, want 8", node.NumFields())
	}

	name, kind, value, _, err := node.GetField(0)
	if err != nil || name != "output number" || kind != DataInt || value.Int != 2 {
		t.Fatalf("output number = %+v, err=%v", value, err)
	}
	_, kind, value, _, err = node.GetField(1)
	if err != nil || kind != DataBoolean || !value.Bool {
		t.Fatalf("standby = %+v, err=%v", value, err)
	}
	_, kind, value, _, err = node.GetField(2)
	if err != nil || kind != DataFloat || value.Float != 10.0 {
		t.Fatalf("nominal voltage = %+v, err=%v", value, err)
	}
}

func TestDecodeDCLoadFields(t *testing.T) {
	d := make([]byte, 13)
	d[0] = 0x03

	node, err := decodeDCLoad(0, 0x02, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.NumFields() != 7 {
		t.Fatalf("num fields = %d, want 7", node.NumFields())
	}
	name, kind, value, _, err := node.GetField(0)
	if err != nil || name != "output number" || kind != DataInt || value.Int != 3 {
		t.Fatalf("output number = %+v, err=%v", value, err)
	}
}

func TestDecodeDCOutputRejectsShortRecord(t *testing.T) {
	if _, err := decodeDCOutput(0, 0x01, make([]byte, 5)); err == nil {
		t.Fatalf("expected error for short record")
	}
}
