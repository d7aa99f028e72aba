package date

import (
	"reflect"
	"testing"
)

func TestParseInput(t *testing.T) {
	// wednesday is 2024-01-10
	tests := []struct {
		name    string
		args    []string
		want    *Date
		wantErr bool
	}{
		{"empty", []string{"", "  "}, nil, false},
		{"today", []string{"today", "TOD", "오늘"}, Ptr(New(2024, 1, 10)), false},
		{"tomorrow", []string{"tomorrow", "tom", "내일", "+1", "+1d"}, Ptr(New(2024, 1, 11)), false},
		{"offset", []string{"+7"}, Ptr(New(2024, 1, 17)), false},
		{"iso", []string{"2024-03-05"}, Ptr(New(2024, 3, 5)), false},
		{"month/day", []string{"3/5"}, Ptr(New(2024, 3, 5)), false},
		{"same weekday is today", []string{"wed", "wednesday", "수", "수요일"}, Ptr(New(2024, 1, 10)), false},
		{"friday", []string{"fri", "friday", "금요일"}, Ptr(New(2024, 1, 12)), false},
		{"monday wraps to next week", []string{"mon", "월"}, Ptr(New(2024, 1, 15)), false},
		{"garbage", []string{"someday", "+x", "2024-13-01"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, arg := range tt.args {
				got, err := ParseInput(arg, wednesday)
				if (err != nil) != tt.wantErr {
					t.Errorf("ParseInput(%q) error = %v, wantErr %v", arg, err, tt.wantErr)
					return
				}
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("ParseInput(%q) = %v, want %v", arg, got, tt.want)
				}
			}
		})
	}
}

func TestValidTime(t *testing.T) {
	for in, want := range map[string]bool{
		"":      true,
		"09:30": true,
		"23:59": true,
		"24:00": false,
		"9시":    false,
	} {
		if got := ValidTime(in); got != want {
			t.Errorf("ValidTime(%q) = %v, want %v", in, got, want)
		}
	}
}
