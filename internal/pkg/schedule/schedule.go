// Package schedule implements the weekly-grid time arithmetic behind the
// kelas jadwal conflict checks: wall-clock "HH:MM" parsing, half-open
// interval overlap, and the room/lecturer conflict scan itself. Everything
// here is pure; callers supply the candidate slot and the already-stored
// slots to compare against.
package schedule

import (
	"errors"
	"fmt"
)

// Conflict dimensions. Room conflicts are always reported before lecturer
// conflicts so a caller fixing the first item in the list frees the room
// before worrying about the dosen.
const (
	ConflictRoom     = "room"
	ConflictLecturer = "lecturer"
)

var (
	ErrInvalidClock = errors.New("invalid time, expected zero-padded 24-hour HH:MM")
	ErrInvalidHari  = errors.New("unknown day name")
	ErrInvalidRange = errors.New("jam_mulai must be before jam_selesai")
)

// hariNames is the closed set of weekday labels used across the system.
// Comparison is as opaque labels; the schedule is a recurring weekly grid,
// not a calendar.
var hariNames = map[string]bool{
	"Senin":  true,
	"Selasa": true,
	"Rabu":   true,
	"Kamis":  true,
	"Jumat":  true,
	"Sabtu":  true,
	"Minggu": true,
}

// ValidHari reports whether s is one of the known weekday labels.
func ValidHari(s string) bool {
	return hariNames[s]
}

// ParseClock converts a fixed-width 24-hour "HH:MM" string into minutes
// since midnight. Anything that is not exactly two zero-padded digit pairs
// separated by a colon is rejected, never coerced.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}
	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')
	if hh > 23 || mm > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return hh*60 + mm, nil
}

// RangesOverlap reports whether two half-open minute ranges overlap.
// Touching endpoints do not overlap: a class ending 10:00 and one starting
// 10:00 may share a room. Degenerate ranges (start >= end) are the
// caller's problem; this predicate just evaluates startA < endB && startB < endA.
func RangesOverlap(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

// Slot is an existing kelas time slot as stored, narrowed to what the
// conflict scan needs to compare and to describe a hit.
type Slot struct {
	KelasID    string
	KodeKelas  string
	MataKuliah string
	Hari       string
	JamMulai   string
	JamSelesai string
}

// Candidate is a proposed (or edited) kelas slot.
type Candidate struct {
	Hari       string
	JamMulai   string
	JamSelesai string
	// ExcludeKelasID skips one stored kelas, so an update never conflicts
	// with its own previous slot. Empty on create.
	ExcludeKelasID string
}

// Conflict describes one overlap with an existing kelas.
type Conflict struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Validate checks the candidate's day name, time format, and orientation.
// It must pass before any conflict scan runs.
func (c Candidate) Validate() (start, end int, err error) {
	if !ValidHari(c.Hari) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidHari, c.Hari)
	}
	start, err = ParseClock(c.JamMulai)
	if err != nil {
		return 0, 0, err
	}
	end, err = ParseClock(c.JamSelesai)
	if err != nil {
		return 0, 0, err
	}
	if start >= end {
		return 0, 0, fmt.Errorf("%w: %s-%s", ErrInvalidRange, c.JamMulai, c.JamSelesai)
	}
	return start, end, nil
}

// ScanSlots filters slots down to those overlapping the candidate on the
// same day, labelling each hit with the given dimension. Slots whose stored
// times fail to parse are skipped: they predate validation and cannot be
// meaningfully compared. The scan itself never errors; the candidate is
// assumed already validated.
func ScanSlots(c Candidate, dimension, label string, slots []Slot) []Conflict {
	start, err := ParseClock(c.JamMulai)
	if err != nil {
		return nil
	}
	end, err := ParseClock(c.JamSelesai)
	if err != nil {
		return nil
	}

	var conflicts []Conflict
	for _, s := range slots {
		if s.KelasID == c.ExcludeKelasID && c.ExcludeKelasID != "" {
			continue
		}
		if s.Hari != c.Hari {
			continue
		}
		sStart, err := ParseClock(s.JamMulai)
		if err != nil {
			continue
		}
		sEnd, err := ParseClock(s.JamSelesai)
		if err != nil {
			continue
		}
		if !RangesOverlap(start, end, sStart, sEnd) {
			continue
		}

		var msg string
		switch dimension {
		case ConflictRoom:
			msg = fmt.Sprintf("Ruangan %s sudah dipakai kelas %s (%s) pada %s %s-%s",
				label, s.KodeKelas, s.MataKuliah, s.Hari, s.JamMulai, s.JamSelesai)
		case ConflictLecturer:
			msg = fmt.Sprintf("Dosen sudah mengajar kelas %s (%s) pada %s %s-%s",
				s.KodeKelas, s.MataKuliah, s.Hari, s.JamMulai, s.JamSelesai)
		}
		conflicts = append(conflicts, Conflict{Type: dimension, Message: msg})
	}
	return conflicts
}
