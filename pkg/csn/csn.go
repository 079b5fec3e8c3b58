package csn

import "strconv"

// Comparison results.
const (
	Lower   = -1
	Equal   = 0
	Greater = 1
)

// CSN is a change sequence number: an opaque, totally ordered logical
// timestamp. Real operations carry CSNs greater than Initial.
type CSN int64

const (
	// Absent is lower than every CSN and marks "not deleted" / "not assigned".
	Absent CSN = -1
	// Initial stamps the synthetic state an entry is created with.
	Initial CSN = 0
)

func (c CSN) Before(other CSN) bool { return Compare(c, other) == Lower }
func (c CSN) After(other CSN) bool  { return Compare(c, other) == Greater }
func (c CSN) IsAbsent() bool        { return c == Absent }

func (c CSN) String() string {
	if c == Absent {
		return "absent"
	}
	return strconv.FormatInt(int64(c), 10)
}

func Compare(a, b CSN) int {
	if a < b {
		return Lower
	}
	if a > b {
		return Greater
	}
	return Equal
}

// Max returns the later of two CSNs.
func Max(a, b CSN) CSN {
	if Compare(a, b) == Lower {
		return b
	}
	return a
}
