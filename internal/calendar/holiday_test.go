package calendar

import (
	"reflect"
	"testing"
	"time"
)

var feb2024 = CalendarMonth{Year: 2024, Month: time.February}

func TestBucketByWeek(t *testing.T) {
	tests := []struct {
		name     string
		holidays []Holiday
		month    CalendarMonth
		want     map[int]int
	}{
		{
			name:     "no holidays",
			holidays: nil,
			month:    feb2024,
			want:     map[int]int{},
		},
		{
			name: "same week shares a bucket",
			holidays: []Holiday{
				NewHoliday(2024, time.February, 5, "X"),
				NewHoliday(2024, time.February, 6, "Y"),
				NewHoliday(2024, time.February, 12, "Z"),
			},
			month: feb2024,
			want:  map[int]int{6: 2, 7: 1},
		},
		{
			name: "other months are ignored",
			holidays: []Holiday{
				NewHoliday(2024, time.January, 1, "New Year"),
				NewHoliday(2024, time.February, 19, "Presidents Day"),
				NewHoliday(2024, time.March, 29, "Good Friday"),
			},
			month: feb2024,
			want:  map[int]int{8: 1},
		},
		{
			name: "duplicate dates are not deduplicated",
			holidays: []Holiday{
				NewHoliday(2024, time.February, 5, "A"),
				NewHoliday(2024, time.February, 5, "B"),
				NewHoliday(2024, time.February, 7, "C"),
			},
			month: feb2024,
			want:  map[int]int{6: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BucketByWeek(tt.holidays, tt.month)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BucketByWeek() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Holidays are filtered by month only; the year is not compared.
func TestBucketByWeek_CountsSameMonthOfOtherYear(t *testing.T) {
	holidays := []Holiday{
		NewHoliday(2023, time.February, 20, "Presidents Day 2023"),
	}

	got := BucketByWeek(holidays, feb2024)

	if len(got) != 1 {
		t.Fatalf("BucketByWeek() = %v, want one bucket for the 2023 holiday", got)
	}
	// 2023-02-20 is in week 8 of 2023.
	if got[8] != 1 {
		t.Errorf("BucketByWeek()[8] = %d, want 1", got[8])
	}
}

func TestTierForCount(t *testing.T) {
	tests := []struct {
		count int
		want  SlotColor
	}{
		{-1, ColorNone},
		{0, ColorNone},
		{1, ColorLow},
		{2, ColorMedium},
		{3, ColorHigh},
		{7, ColorHigh},
	}

	for _, tt := range tests {
		if got := TierForCount(tt.count); got != tt.want {
			t.Errorf("TierForCount(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestColorize_Monotonic(t *testing.T) {
	g := BuildGrid(feb2024, time.Time{})
	const week = 6

	prev := ColorNone
	for count := 0; count <= 5; count++ {
		colors := Colorize(g.Slots, map[int]int{week: count}, feb2024)
		// Feb 7 2024 is in week 6.
		got := colors[g.Leading()+6]
		if got < prev {
			t.Fatalf("count %d: tier %v dropped below %v", count, got, prev)
		}
		prev = got
	}
	if prev != ColorHigh {
		t.Errorf("tier at count 5 = %v, want high", prev)
	}
}

func TestColorize_BlankSlotsAreNone(t *testing.T) {
	g := BuildGrid(feb2024, time.Time{})
	// Every week of the month is busy.
	counts := map[int]int{5: 3, 6: 3, 7: 3, 8: 3, 9: 3}

	colors := Colorize(g.Slots, counts, feb2024)

	if len(colors) != len(g.Slots) {
		t.Fatalf("len(colors) = %d, want %d", len(colors), len(g.Slots))
	}
	for i := 0; i < g.Leading(); i++ {
		if colors[i] != ColorNone {
			t.Errorf("blank slot %d colored %v", i, colors[i])
		}
	}
	for i := g.Leading(); i < len(colors); i++ {
		if colors[i] != ColorHigh {
			t.Errorf("slot %d colored %v, want high", i, colors[i])
		}
	}
}

func TestIndexNames(t *testing.T) {
	g := BuildGrid(feb2024, time.Time{})
	holidays := []Holiday{
		NewHoliday(2024, time.February, 14, "Valentine"),
		NewHoliday(2024, time.February, 13, "Carnival"),
		NewHoliday(2024, time.February, 14, "Ash Wednesday"),
		NewHoliday(2023, time.February, 15, "Last year"),
	}

	names := IndexNames(g.Slots, holidays, feb2024)

	if len(names) != len(g.Slots) {
		t.Fatalf("len(names) = %d, want %d", len(names), len(g.Slots))
	}
	lead := g.Leading()
	if got, want := names[lead+13], []string{"Valentine", "Ash Wednesday"}; !reflect.DeepEqual(got, want) {
		t.Errorf("names for Feb 14 = %v, want %v", got, want)
	}
	if got, want := names[lead+12], []string{"Carnival"}; !reflect.DeepEqual(got, want) {
		t.Errorf("names for Feb 13 = %v, want %v", got, want)
	}
	// One day off must not match, neither does another year.
	if got := names[lead+14]; len(got) != 0 {
		t.Errorf("names for Feb 15 = %v, want empty", got)
	}
	for i := 0; i < lead; i++ {
		if names[i] == nil || len(names[i]) != 0 {
			t.Errorf("blank slot %d names = %#v, want empty non-nil", i, names[i])
		}
	}
}

func TestEndToEnd_February2024(t *testing.T) {
	holidays := []Holiday{
		NewHoliday(2024, time.February, 5, "X"),
		NewHoliday(2024, time.February, 6, "Y"),
		NewHoliday(2024, time.February, 12, "Z"),
	}

	g := BuildGrid(feb2024, time.Time{})
	counts := BucketByWeek(holidays, feb2024)
	colors := Colorize(g.Slots, counts, feb2024)
	names := IndexNames(g.Slots, holidays, feb2024)

	for i, s := range g.Slots {
		if s.Blank() {
			continue
		}
		want := ColorNone
		switch {
		case s.Day >= 5 && s.Day <= 11:
			want = ColorMedium
		case s.Day >= 12 && s.Day <= 18:
			want = ColorLow
		}
		if colors[i] != want {
			t.Errorf("Feb %d colored %v, want %v", s.Day, colors[i], want)
		}
	}

	lead := g.Leading()
	for day, want := range map[int]string{5: "X", 6: "Y", 12: "Z"} {
		if got := names[lead+day-1]; len(got) != 1 || got[0] != want {
			t.Errorf("names for Feb %d = %v, want [%s]", day, got, want)
		}
	}
}

func TestCoreFunctions_Idempotent(t *testing.T) {
	holidays := []Holiday{
		NewHoliday(2024, time.February, 5, "X"),
		NewHoliday(2024, time.February, 12, "Z"),
	}
	g := BuildGrid(feb2024, time.Time{})

	if a, b := BucketByWeek(holidays, feb2024), BucketByWeek(holidays, feb2024); !reflect.DeepEqual(a, b) {
		t.Errorf("BucketByWeek differs between calls: %v vs %v", a, b)
	}
	counts := BucketByWeek(holidays, feb2024)
	if a, b := Colorize(g.Slots, counts, feb2024), Colorize(g.Slots, counts, feb2024); !reflect.DeepEqual(a, b) {
		t.Errorf("Colorize differs between calls")
	}
	if a, b := IndexNames(g.Slots, holidays, feb2024), IndexNames(g.Slots, holidays, feb2024); !reflect.DeepEqual(a, b) {
		t.Errorf("IndexNames differs between calls")
	}
}

func TestInMonth(t *testing.T) {
	holidays := []Holiday{
		NewHoliday(2024, time.February, 19, "A"),
		NewHoliday(2023, time.February, 20, "B"),
		NewHoliday(2024, time.March, 1, "C"),
		NewHoliday(2024, time.February, 2, "D"),
	}

	got := InMonth(holidays, feb2024)

	if len(got) != 2 || got[0].LocalName != "A" || got[1].LocalName != "D" {
		t.Errorf("InMonth() = %v, want [A D]", got)
	}
}

func TestSlotColor_String(t *testing.T) {
	if got := ColorMedium.String(); got != "medium" {
		t.Errorf("ColorMedium.String() = %q", got)
	}
	if got := SlotColor(9).String(); got != "SlotColor(9)" {
		t.Errorf("SlotColor(9).String() = %q", got)
	}
}

func TestSlotColor_Text(t *testing.T) {
	for _, c := range []SlotColor{ColorNone, ColorLow, ColorMedium, ColorHigh} {
		text, err := c.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", c, err)
		}
		var got SlotColor
		if err := got.UnmarshalText(text); err != nil || got != c {
			t.Errorf("UnmarshalText(%q) = %v, %v, want %v", text, got, err, c)
		}
	}

	var c SlotColor
	if err := c.UnmarshalText([]byte("purple")); err == nil {
		t.Errorf("UnmarshalText(purple) should fail")
	}
}
