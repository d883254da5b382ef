package normalize

import (
	"testing"
	"time"
)

func TestDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"01.234.567.8-901.234", "012345678901234"},
		{"010.000-24.12345678", "0100002412345678"},
		{"no digits here", ""},
		{"", ""},
		{"123", "123"},
	}

	for _, tt := range tests {
		if got := Digits(tt.in); got != tt.want {
			t.Errorf("Digits(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompanyName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PT. MAJU BERSAMA", "PT MAJU BERSAMA"},
		{"PT MAJU BERSAMA", "PT MAJU BERSAMA"},
		{"PT.MAJU BERSAMA", "PT MAJU BERSAMA"},
		{"pt maju   bersama", "PT MAJU BERSAMA"},
		{"CV. Sumber   Rejeki", "CV SUMBER REJEKI"},
		{"Toko Jaya Abadi", "TOKO JAYA ABADI"},
		{"  PT   ", "PT"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CompanyName(tt.in); got != tt.want {
			t.Errorf("CompanyName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompanyName_Idempotent(t *testing.T) {
	inputs := []string{"PT. MAJU BERSAMA", "CV sumber rejeki", "TOKO JAYA"}
	for _, in := range inputs {
		once := CompanyName(in)
		if twice := CompanyName(once); twice != once {
			t.Errorf("CompanyName not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestCurrencyAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"36.364.855,00", 36364855.00},
		{"1.000,50", 1000.50},
		{"500", 500},
		{"  4.000.000,00  ", 4000000.00},
		{"", 0.0},
		{"abc", 0.0},
		{"12,34,56", 0.0},
		{"-100", 0.0},
	}

	for _, tt := range tests {
		if got := CurrencyAmount(tt.in); got != tt.want {
			t.Errorf("CurrencyAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIndonesianDate(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Time
		wantOK bool
	}{
		{"17 Agustus 1945", time.Date(1945, time.August, 17, 0, 0, 0, 0, time.UTC), true},
		{"1 januari 2024", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), true},
		{"29 Februari 2024", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), true},
		{"30 Februari 2024", time.Time{}, false},
		{"32 Januari 2024", time.Time{}, false},
		{"17 Augustus 1945", time.Time{}, false}, // not an Indonesian month name
		{"17 Agustus", time.Time{}, false},
		{"", time.Time{}, false},
		{"abc def ghi", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := IndonesianDate(tt.in)
		if ok != tt.wantOK {
			t.Errorf("IndonesianDate(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("IndonesianDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGenericDate(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Time
		wantOK bool
	}{
		{"17/08/2024", time.Date(2024, time.August, 17, 0, 0, 0, 0, time.UTC), true},
		{"17-08-2024", time.Date(2024, time.August, 17, 0, 0, 0, 0, time.UTC), true},
		{"31/02/2024", time.Time{}, false},
		{"2024/08/17", time.Time{}, false},
		{"17/8/2024", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := GenericDate(tt.in)
		if ok != tt.wantOK {
			t.Errorf("GenericDate(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("GenericDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// All normalizers must return a value for arbitrary garbage input.
func TestTotality(t *testing.T) {
	garbage := []string{"", " ", "\n\t", "!!!@@@", strings72(), "NPWP: :::", "17//2024"}
	for _, g := range garbage {
		_ = Digits(g)
		_ = CompanyName(g)
		_ = CurrencyAmount(g)
		_, _ = IndonesianDate(g)
		_, _ = GenericDate(g)
	}
}

func strings72() string {
	s := ""
	for i := 0; i < 72; i++ {
		s += "x"
	}
	return s
}
