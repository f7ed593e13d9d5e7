package codes

import (
	"errors"
	"testing"
)

func TestPackLayout(t *testing.T) {
	enc := NewEncoder()
	for n := 1; n <= MaxLength; n++ {
		for _, fill := range []int{0x00, 0x7F, 0xFF} {
			seq := make([]int, n)
			for i := range seq {
				seq[i] = (fill + i) % 256
			}

			code, err := enc.Pack(seq)
			if err != nil {
				t.Fatalf("Pack(%v) failed: %v", seq, err)
			}

			b := code.Bytes()
			for i := 0; i < MaxLength; i++ {
				want := byte(0)
				if i < n {
					want = byte(seq[i])
				}
				if b[i] != want {
					t.Errorf("Pack(%v) byte %d = %#x, want %#x", seq, i, b[i], want)
				}
			}
		}
	}
}

func TestPackNoStaleBytes(t *testing.T) {
	enc := NewEncoder()

	if _, err := enc.Pack([]int{9, 8, 7, 6, 5, 4, 3, 2}); err != nil {
		t.Fatalf("Pack long failed: %v", err)
	}
	code, err := enc.Pack([]int{1, 2})
	if err != nil {
		t.Fatalf("Pack short failed: %v", err)
	}

	if code != 0x0201 {
		t.Errorf("short code = %s, want 0x0201", code)
	}
}

func TestPackErrors(t *testing.T) {
	tests := []struct {
		name string
		seq  []int
		want error
	}{
		{"too long", []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, ErrSequenceTooLong},
		{"above byte", []int{1, 256}, ErrIndexOutOfRange},
		{"negative", []int{-1}, ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewEncoder()
			if _, err := enc.Pack(tt.seq); !errors.Is(err, tt.want) {
				t.Fatalf("Pack(%v) error = %v, want %v", tt.seq, err, tt.want)
			}
			// A rejected sequence must not leave bytes behind.
			code, err := enc.Pack([]int{3})
			if err != nil || code != 3 {
				t.Errorf("Pack after failure = %s, %v; want 0x3", code, err)
			}
		})
	}
}

func TestPackEmpty(t *testing.T) {
	code, err := Pack(nil)
	if err != nil {
		t.Fatalf("Pack(nil) failed: %v", err)
	}
	if code != 0 {
		t.Errorf("Pack(nil) = %s, want 0", code)
	}
}

func TestFromBytes(t *testing.T) {
	code, err := Pack([]int{1, 0, 0xFF})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if got := FromBytes(code.Bytes()); got != code {
		t.Errorf("FromBytes(Bytes()) = %s, want %s", got, code)
	}
}
