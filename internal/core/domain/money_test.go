package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want Money
	}{
		{"12", 1200},
		{"12.5", 1250},
		{"12.50", 1250},
		{"0.01", 1},
		{"-3.25", -325},
		{" 10.00 ", 1000},
	}
	for _, tt := range tests {
		got, err := ParseMoney(tt.in)
		if err != nil {
			t.Fatalf("ParseMoney(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseMoney(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseMoney_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1.234", "1.2.3", "."} {
		if _, err := ParseMoney(in); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("ParseMoney(%q): expected ErrInvalidAmount, got %v", in, err)
		}
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		in   Money
		want string
	}{
		{3000, "30.00"},
		{1, "0.01"},
		{1250, "12.50"},
		{-325, "-3.25"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Fatalf("Money(%d).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMoneyMulInt(t *testing.T) {
	price, err := ParseMoney("10.00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := price.MulInt(3).String(); got != "30.00" {
		t.Fatalf("3 x 10.00 = %s, want 30.00", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	out, err := json.Marshal(Money(3000))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"30.00"` {
		t.Fatalf("marshal = %s, want \"30.00\"", out)
	}

	var m Money
	if err := json.Unmarshal([]byte(`"12.50"`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m != 1250 {
		t.Fatalf("unmarshal = %d, want 1250", m)
	}
}
