package naming

import (
	"errors"
	"testing"
	"time"
)

func ts(value string) time.Time {
	t, err := time.Parse("20060102_150405", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParse(t *testing.T) {
	cases := []struct {
		name     string
		basename string

		wantUnit int
		wantTime time.Time
		wantErr  error
	}{
		// Well-formed recorder names.
		{
			name: "canonical segment", basename: "RecM01_20231215_143045_002.mp4",
			wantUnit: 1, wantTime: ts("20231215_143045"),
		},
		{
			name: "higher unit index", basename: "RecM05_20231215_143022_001.mp4",
			wantUnit: 5, wantTime: ts("20231215_143022"),
		},
		{
			name: "multi digit unit", basename: "RecM012_20240101_000000_99.mov",
			wantUnit: 12, wantTime: ts("20240101_000000"),
		},
		{
			name: "no trailing suffix", basename: "RecM03_20231215_143108",
			wantUnit: 3, wantTime: ts("20231215_143108"),
		},
		{
			name: "long rig serial suffix", basename: "RecM02_20230630_235959_cam-B_0042.avi",
			wantUnit: 2, wantTime: ts("20230630_235959"),
		},
		{
			name: "leap day", basename: "RecM01_20240229_120000_001.mp4",
			wantUnit: 1, wantTime: ts("20240229_120000"),
		},

		// Prefix failures.
		{
			name: "wrong prefix", basename: "Clip01_20231215_143022_001.mp4",
			wantErr: ErrPrefixMismatch,
		},
		{
			name: "lowercase prefix", basename: "recm01_20231215_143022_001.mp4",
			wantErr: ErrPrefixMismatch,
		},
		{
			name: "prefix mid name", basename: "x_RecM01_20231215_143022.mp4",
			wantErr: ErrPrefixMismatch,
		},
		{
			name: "empty name", basename: "",
			wantErr: ErrPrefixMismatch,
		},

		// Timestamp failures.
		{
			name: "month thirteen", basename: "RecM01_20231315_143022_001.mp4",
			wantErr: ErrTimestampUnparsable,
		},
		{
			name: "day thirty two", basename: "RecM01_20231232_143022_001.mp4",
			wantErr: ErrTimestampUnparsable,
		},
		{
			name: "hour twenty five", basename: "RecM01_20231215_253022_001.mp4",
			wantErr: ErrTimestampUnparsable,
		},
		{
			name: "non leap february 29", basename: "RecM01_20230229_120000_001.mp4",
			wantErr: ErrTimestampUnparsable,
		},
		{
			name: "short date token", basename: "RecM01_2023121_143022_001.mp4",
			wantErr: ErrTimestampUnparsable,
		},
		{
			name: "short time token", basename: "RecM01_20231215_1430_001.mp4",
			wantErr: ErrTimestampUnparsable,
		},
		{
			name: "letters in date", basename: "RecM01_2023AB15_143022_001.mp4",
			wantErr: ErrTimestampUnparsable,
		},
		{
			name: "missing unit digits", basename: "RecM0_20231215_143022_001.mp4",
			wantErr: ErrTimestampUnparsable,
		},
		{
			name: "missing time token", basename: "RecM01_20231215.mp4",
			wantErr: ErrTimestampUnparsable,
		},
		{
			name: "prefix only", basename: "RecM0",
			wantErr: ErrTimestampUnparsable,
		},
	}

	pat := NewPattern(DefaultPrefix)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pat.Parse(tc.basename)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tc.basename, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tc.basename, err)
			}
			if got.Unit != tc.wantUnit {
				t.Errorf("unit: got %d, want %d", got.Unit, tc.wantUnit)
			}
			if !got.Timestamp.Equal(tc.wantTime) {
				t.Errorf("timestamp: got %s, want %s", got.Timestamp, tc.wantTime)
			}
		})
	}
}

func TestParse_SameSecondDifferentSuffix(t *testing.T) {
	// Two units writing in the same second are both valid, distinct
	// candidates; relative order is the sequencer's concern, not ours.
	pat := NewPattern(DefaultPrefix)

	a, errA := pat.Parse("RecM01_20231215_143022_001.mp4")
	b, errB := pat.Parse("RecM02_20231215_143022_001.mp4")
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}
	if !a.Timestamp.Equal(b.Timestamp) {
		t.Errorf("timestamps differ: %s vs %s", a.Timestamp, b.Timestamp)
	}
	if a.Unit == b.Unit {
		t.Errorf("units should differ, both %d", a.Unit)
	}
}

func TestNewPattern_CustomPrefix(t *testing.T) {
	cases := []struct {
		name     string
		prefix   string
		basename string
		ok       bool
	}{
		{"custom prefix accepts", "CamX", "CamX7_20231215_143022.mp4", true},
		{"custom prefix rejects default", "CamX", "RecM01_20231215_143022.mp4", false},
		{"regex metachars are literal", "Rec+M", "Rec+M1_20231215_143022.mp4", true},
		{"empty prefix uses default", "", "RecM01_20231215_143022.mp4", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPattern(tc.prefix).Parse(tc.basename)
			if (err == nil) != tc.ok {
				t.Errorf("Parse(%q) with prefix %q: error = %v, want ok=%v",
					tc.basename, tc.prefix, err, tc.ok)
			}
		})
	}
}
