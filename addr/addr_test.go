package addr

import (
	"encoding/json"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	var a Address
	for i := range a {
		a[i] = byte(i * 7)
	}
	got, err := Parse(a.String())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != a {
		t.Fatalf("round trip mismatch: %s vs %s", got, a)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	for _, s := range []string{"", "0OIl", "abc", "!!!!"} {
		if _, err := Parse(s); err == nil {
			t.Fatalf("Parse(%q) accepted invalid input", s)
		}
	}
}

func TestFromBytesLength(t *testing.T) {
	if _, err := FromBytes(make([]byte, Size-1)); err == nil {
		t.Fatalf("short input accepted")
	}
	if _, err := FromBytes(make([]byte, Size+1)); err == nil {
		t.Fatalf("long input accepted")
	}
	if _, err := FromBytes(make([]byte, Size)); err != nil {
		t.Fatalf("exact input rejected: %v", err)
	}
}

func TestZero(t *testing.T) {
	if !Zero.IsZero() {
		t.Fatalf("Zero.IsZero() = false")
	}
	var a Address
	a[31] = 1
	if a.IsZero() {
		t.Fatalf("nonzero address reported zero")
	}
}

func TestBytesIsACopy(t *testing.T) {
	var a Address
	a[0] = 0xAA
	b := a.Bytes()
	b[0] = 0
	if a[0] != 0xAA {
		t.Fatalf("Bytes aliased the address")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var a Address
	a[3] = 9
	raw, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back Address
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != a {
		t.Fatalf("round trip mismatch")
	}
}
