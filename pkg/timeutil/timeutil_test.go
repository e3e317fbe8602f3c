package timeutil

import "testing"

func TestFormatters(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "time", got: FormatTime(4282), want: "1:11:22"},
		{name: "time negative", got: FormatTime(-3), want: "0:00:00"},
		{name: "clock", got: FormatClock(90, false), want: "1:30"},
		{name: "clock tenths", got: FormatClock(61.25, true), want: "1:01.3"},
		{name: "hour minute", got: FormatHourMinute(7260), want: "2:01"},
		{name: "frame", got: FormatFrame(95, 30), want: "0:00:03+05"},
		{name: "frame before start", got: FormatFrame(-1, 30), want: "-:--:--+--"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestParseTimeToSeconds(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "1:02:03", want: 3723},
		{in: "2:30", want: 150},
		{in: "12.5", want: 12.5},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTimeToSeconds(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseTimeToSeconds(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseTimeToSeconds(%q) = %g, want %g", tt.in, got, tt.want)
		}
	}
}
