package model

import (
	"encoding/json"
	"testing"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"09:00", 540},
		{"9:00 AM", 540},
		{"9:00 am", 540},
		{"12:30 PM", 750},
		{"12:30 AM", 30},
		{"1:05PM", 785},
		{"  15:04 ", 904},
		{"00:00", 0},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseTimeOfDayRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "25:00", "9 o'clock", "13:00 PM"} {
		if _, err := ParseTimeOfDay(in); err == nil {
			t.Errorf("ParseTimeOfDay(%q) accepted invalid input", in)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	if got := TimeOfDay(540).String(); got != "09:00" {
		t.Fatalf("String() = %q, want 09:00", got)
	}
	if got := TimeOfDay(0).String(); got != "00:00" {
		t.Fatalf("String() = %q, want 00:00", got)
	}
}

func TestTimeOfDayJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(TimeOfDay(615))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"10:15"` {
		t.Fatalf("marshal = %s, want \"10:15\"", b)
	}
	var back TimeOfDay
	if err := json.Unmarshal([]byte(`"2:45 PM"`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != 885 {
		t.Fatalf("unmarshal = %d, want 885", back)
	}
}

func TestSessionOverlaps(t *testing.T) {
	a := Session{Date: "2025-04-09", StartTime: 540, EndTime: 630}
	b := Session{Date: "2025-04-09", StartTime: 600, EndTime: 690}
	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Fatal("intersecting ranges on the same date must overlap")
	}

	touching := Session{Date: "2025-04-09", StartTime: 630, EndTime: 720}
	if a.Overlaps(touching) {
		t.Fatal("touching boundaries must not overlap")
	}

	otherDay := Session{Date: "2025-04-10", StartTime: 540, EndTime: 630}
	if a.Overlaps(otherDay) {
		t.Fatal("different dates must not overlap")
	}
}
