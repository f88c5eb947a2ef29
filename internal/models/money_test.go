package models

import "testing"

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in      string
		want    Money
		wantErr bool
	}{
		{"19.99", 1999, false},
		{"59.97", 5997, false},
		{"19.9", 1990, false},
		{"19", 1900, false},
		{"0.05", 5, false},
		{"-3.50", -350, false},
		{"19.999", 0, true},
		{"", 0, true},
		{"abc", 0, true},
		{".", 0, true},
		{"-", 0, true},
		{"-.", 0, true},
		{".5", 50, false},
	}
	for _, c := range cases {
		got, err := ParseMoney(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseMoney(%q): expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMoney(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseMoney(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestMoneyMulIntExact(t *testing.T) {
	// quantity=3, unitPrice=19.99 must give exactly 59.97
	unit, err := ParseMoney("19.99")
	if err != nil {
		t.Fatal(err)
	}
	total := unit.MulInt(3)
	if total != 5997 {
		t.Fatalf("3 * 19.99 = %d cents, want 5997", total)
	}
	if total.String() != "59.97" {
		t.Fatalf("String() = %q, want \"59.97\"", total.String())
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		in   Money
		want string
	}{
		{5997, "59.97"},
		{1990, "19.90"},
		{5, "0.05"},
		{0, "0.00"},
		{-350, "-3.50"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("Money(%d).String() = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := Money(5997)
	data, err := m.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "59.97" {
		t.Fatalf("MarshalJSON = %s, want 59.97", data)
	}
	var back Money
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if back != m {
		t.Fatalf("round trip = %d, want %d", back, m)
	}
}
