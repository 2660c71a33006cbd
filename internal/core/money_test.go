package core

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "plain", input: "12.34", want: 1234},
		{name: "integer", input: "200", want: 20000},
		{name: "half rounds up", input: "200.005", want: 20001},
		{name: "below half rounds down", input: "12.344", want: 1234},
		{name: "negative half rounds away from zero", input: "-200.005", want: -20001},
		{name: "negative expense", input: "-3.5", want: -350},
		{name: "zero", input: "0", want: 0},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "nan", input: "NaN", wantErr: true},
		{name: "infinity", input: "Infinity", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) expected error, got %v", tt.input, got)
				}
				if !IsValidation(err) {
					t.Errorf("ParseAmount(%q) error should be a validation error, got %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			}
			if got.Cents != tt.want {
				t.Errorf("ParseAmount(%q) = %d cents, want %d", tt.input, got.Cents, tt.want)
			}
		})
	}
}

func TestAmountJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int64
	}{
		{name: "number", body: `{"amount": 42.5}`, want: 4250},
		{name: "number needing rounding", body: `{"amount": 200.005}`, want: 20001},
		{name: "quoted string", body: `{"amount": "19.99"}`, want: 1999},
		{name: "negative", body: `{"amount": -7.25}`, want: -725},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				Amount Amount `json:"amount"`
			}
			if err := json.Unmarshal([]byte(tt.body), &payload); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if payload.Amount.Cents != tt.want {
				t.Errorf("unmarshal %s = %d cents, want %d", tt.body, payload.Amount.Cents, tt.want)
			}
		})
	}

	t.Run("marshal emits bare 2-decimal number", func(t *testing.T) {
		out, err := json.Marshal(Amount{Cents: 20001})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(out) != "200.01" {
			t.Errorf("marshal = %s, want 200.01", out)
		}
	})

	t.Run("null rejected", func(t *testing.T) {
		var a Amount
		if err := json.Unmarshal([]byte("null"), &a); err == nil {
			t.Error("null should not decode into an amount")
		}
	})
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name  string
		part  int64
		whole int64
		want  float64
	}{
		{name: "half", part: 5000, whole: 10000, want: 50},
		{name: "over", part: 15000, whole: 10000, want: 150},
		{name: "zero whole guards divide by zero", part: 5000, whole: 0, want: 0},
		{name: "zero part", part: 0, whole: 10000, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentage(Amount{Cents: tt.part}, Amount{Cents: tt.whole})
			if got != tt.want {
				t.Errorf("Percentage(%d, %d) = %v, want %v", tt.part, tt.whole, got, tt.want)
			}
		})
	}
}
