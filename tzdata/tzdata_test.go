package tzdata

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const zurich = `
# Rule  NAME  FROM  TO    -  IN   ON       AT    SAVE  LETTER/S
Rule    Swiss 1941  1942  -  May  Mon>=1   1:00  1:00  S
Rule    Swiss 1941  1942  -  Oct  Mon>=1   2:00  0     -
Rule    EU    1977  1980  -  Apr  Sun>=1   1:00u 1:00  S
Rule    EU    1977  only  -  Sep  lastSun  1:00u 0     -
Rule    EU    1978  only  -  Oct   1       1:00u 0     -
Rule    EU    1979  1995  -  Sep  lastSun  1:00u 0     -
Rule    EU    1981  max   -  Mar  lastSun  1:00u 1:00  S
Rule    EU    1996  max   -  Oct  lastSun  1:00u 0     -

# Zone  NAME           STDOFF      RULES  FORMAT  [UNTIL]
Zone    Europe/Zurich  0:34:08     -      LMT     1853 Jul 16
                       0:29:45.50  -      BMT     1894 Jun
                       1:00        Swiss  CE%sT   1981
                       1:00        EU     CE%sT

Link    Europe/Zurich  Europe/Vaduz
`

func TestParse(t *testing.T) {
	got, err := Parse(strings.NewReader(zurich))
	if err != nil {
		t.Fatal(err)
	}

	var (
		hour     = Time{time.Hour, WallClock}
		hourUT   = Time{time.Hour, UniversalTime}
		save     = Time{time.Hour, DaylightSavingTime}
		noSave   = Time{0, StandardTime}
		firstMon = Day{Form: DayFormAfter, Day: time.Monday, Num: 1}
		lastSun  = Day{Form: DayFormLast, Day: time.Sunday}
	)
	want := File{
		Rules: []Rule{
			{Name: "Swiss", From: 1941, To: 1942, In: time.May, On: firstMon, At: hour, Save: save, Letter: "S"},
			{Name: "Swiss", From: 1941, To: 1942, In: time.October, On: firstMon, At: Time{2 * time.Hour, WallClock}, Save: noSave},
			{Name: "EU", From: 1977, To: 1980, In: time.April, On: Day{Form: DayFormAfter, Day: time.Sunday, Num: 1}, At: hourUT, Save: save, Letter: "S"},
			{Name: "EU", From: 1977, To: 1977, In: time.September, On: lastSun, At: hourUT, Save: noSave},
			{Name: "EU", From: 1978, To: 1978, In: time.October, On: Day{Form: DayFormNum, Num: 1}, At: hourUT, Save: noSave},
			{Name: "EU", From: 1979, To: 1995, In: time.September, On: lastSun, At: hourUT, Save: noSave},
			{Name: "EU", From: 1981, To: MaxYear, In: time.March, On: lastSun, At: hourUT, Save: save, Letter: "S"},
			{Name: "EU", From: 1996, To: MaxYear, In: time.October, On: lastSun, At: hourUT, Save: noSave},
		},
		Zones: []Zone{{
			Name: "Europe/Zurich",
			Lines: []ZoneLine{
				{
					Offset: 34*time.Minute + 8*time.Second,
					Rules:  ZoneRules{Form: ZoneRulesStandard},
					Format: "LMT",
					Until:  Until{Defined: true, Year: 1853, Month: time.July, Day: Day{Form: DayFormNum, Num: 16}},
				},
				{
					Offset: 29*time.Minute + 45*time.Second + 500*time.Millisecond,
					Rules:  ZoneRules{Form: ZoneRulesStandard},
					Format: "BMT",
					Until:  Until{Defined: true, Year: 1894, Month: time.June, Day: Day{Form: DayFormNum, Num: 1}},
				},
				{
					Offset: time.Hour,
					Rules:  ZoneRules{Form: ZoneRulesName, Name: "Swiss"},
					Format: "CE%sT",
					Until:  Until{Defined: true, Year: 1981, Month: time.January, Day: Day{Form: DayFormNum, Num: 1}},
				},
				{
					Offset: time.Hour,
					Rules:  ZoneRules{Form: ZoneRulesName, Name: "EU"},
					Format: "CE%sT",
				},
			},
		}},
		Links: []Link{{Target: "Europe/Zurich", Name: "Europe/Vaduz"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}

	vaduz, ok := got.Zone("Europe/Vaduz")
	if !ok || vaduz.Name != "Europe/Zurich" {
		t.Errorf("Zone(Europe/Vaduz) = %v, %v, want Europe/Zurich", vaduz.Name, ok)
	}
	if _, ok := got.Zone("Europe/Berlin"); ok {
		t.Error("Zone(Europe/Berlin) found")
	}
	if n := len(got.RuleSet("EU")); n != 6 {
		t.Errorf("RuleSet(EU) has %d rules, want 6", n)
	}
}

func TestParseError(t *testing.T) {
	cases := []struct {
		input    string
		wantLine int
	}{
		{"Rule EU 1981 max - Mar lastSun 1:00u 1:00", 1},
		{"# comment\nZone Europe/Nowhere 1:00 - CET 1990 Foo", 2},
		{"Link Europe/Zurich", 1},
		{"Leap 2016 Dec 31 23:59:60 + S\nLeep 2016", 2},
		{"\n\nRule EU 1981 max - Mar lastXyz 1:00u 1:00 S", 3},
	}
	for _, c := range cases {
		_, err := Parse(strings.NewReader(c.input))
		var perr *parseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q) = %v, want *parseError", c.input, err)
			continue
		}
		if perr.lineNumber != c.wantLine {
			t.Errorf("Parse(%q) failed on line %d, want %d", c.input, perr.lineNumber, c.wantLine)
		}
	}

	f, err := Parse(strings.NewReader("Leap 2016 Dec 31 23:59:60 + S\nExpires 2025 Jun 28 00:00:00\nLink A B"))
	if err != nil || len(f.Links) != 1 {
		t.Errorf("Parse() with leap lines = %+v, %v; want one link", f, err)
	}

	if _, err := Parse(strings.NewReader("Zone Europe/Nowhere 1:00 - CET 1990")); err == nil {
		t.Error("Parse() accepted a zone without its continuation line")
	}
}

func TestSplitLine(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   # only a comment", nil},
		{"Rule\tUS 1967\t1973 # trailing", []string{"Rule", "US", "1967", "1973"}},
		{`Zone "Name With Space" 1:00 - "A#B"`, []string{"Zone", "Name With Space", "1:00", "-", "A#B"}},
		{`Rule X 1 2 - Jan 1 0 0 ""`, []string{"Rule", "X", "1", "2", "-", "Jan", "1", "0", "0", ""}},
	}
	for _, c := range cases {
		if diff := cmp.Diff(c.want, splitLine(c.line)); diff != "" {
			t.Errorf("splitLine(%q) mismatch (-want +got):\n%s", c.line, diff)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input string
		want  time.Duration
	}{
		{"2", 2 * time.Hour},
		{"2:00", 2 * time.Hour},
		{"01:28:14", time.Hour + 28*time.Minute + 14*time.Second},
		{"00:19:32.13", 19*time.Minute + 32*time.Second + 130*time.Millisecond},
		{"24:00", 24 * time.Hour},
		{"260:00", 260 * time.Hour},
		{"-2:30", -(2*time.Hour + 30*time.Minute)},
		{"-", 0},
	}
	for _, c := range cases {
		got, err := parseTimeOfDay(c.input)
		if err != nil {
			t.Errorf("parseTimeOfDay(%q) failed: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseTimeOfDay(%q) = %v, want %v", c.input, got, c.want)
		}
	}
	for _, input := range []string{"", "1:60", "1:2:3:4", "1.5", "x"} {
		if _, err := parseTimeOfDay(input); err == nil {
			t.Errorf("parseTimeOfDay(%q) succeeded", input)
		}
	}
}

func TestParseDay(t *testing.T) {
	cases := []struct {
		input string
		want  Day
	}{
		{"5", Day{Form: DayFormNum, Num: 5}},
		{"lastSun", Day{Form: DayFormLast, Day: time.Sunday}},
		{"lastThursday", Day{Form: DayFormLast, Day: time.Thursday}},
		{"Sun>=8", Day{Form: DayFormAfter, Day: time.Sunday, Num: 8}},
		{"Fri<=25", Day{Form: DayFormBefore, Day: time.Friday, Num: 25}},
	}
	for _, c := range cases {
		got, err := parseDay(c.input)
		if err != nil {
			t.Errorf("parseDay(%q) failed: %v", c.input, err)
			continue
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("parseDay(%q) mismatch (-want +got):\n%s", c.input, diff)
		}
	}
	for _, input := range []string{"0", "32", "lastX", "Sun>=", "Sun=8"} {
		if _, err := parseDay(input); err == nil {
			t.Errorf("parseDay(%q) succeeded", input)
		}
	}
}

func TestParseSave(t *testing.T) {
	cases := []struct {
		input string
		want  Time
	}{
		{"0", Time{0, StandardTime}},
		{"1:00", Time{time.Hour, DaylightSavingTime}},
		{"-1:00", Time{-time.Hour, DaylightSavingTime}},
		{"1:00s", Time{time.Hour, StandardTime}},
		{"0d", Time{0, DaylightSavingTime}},
	}
	for _, c := range cases {
		got, err := parseSave(c.input)
		if err != nil {
			t.Errorf("parseSave(%q) failed: %v", c.input, err)
			continue
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("parseSave(%q) mismatch (-want +got):\n%s", c.input, diff)
		}
	}
}
