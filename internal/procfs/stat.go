// Package procfs parses the pieces of Linux procfs that the scheduler
// bindings need. It performs no file I/O itself so it can be tested on any
// platform.
package procfs

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed indicates a stat line that does not follow the proc(5) layout.
var ErrMalformed = errors.New("procfs: malformed stat line")

// Stat holds the fields of a /proc/<pid>/stat line relevant to scheduling.
// Field numbers refer to proc(5).
type Stat struct {
	// PID is field 1, the thread ID for per-task stat files
	PID int
	// Comm is field 2 without the surrounding parentheses
	Comm string
	// State is field 3, the single-character process state code
	State byte
	// Priority is field 18, the kernel's internal priority value
	Priority int
	// Nice is field 19
	Nice int
	// NumThreads is field 20
	NumThreads int
	// Processor is field 39, the CPU the task last ran on
	Processor int
	// RTPriority is field 40, the real-time priority (0 for non-RT tasks)
	RTPriority int
	// Policy is field 41, the raw scheduling policy value
	Policy int
}

// 1-based field numbers from proc(5). Fields 1-3 (pid, comm, state) are
// consumed before the numeric fields, so index into the remainder with
// fieldIndex.
const (
	fieldPriority   = 18
	fieldNice       = 19
	fieldNumThreads = 20
	fieldProcessor  = 39
	fieldRTPriority = 40
	fieldPolicy     = 41

	// minFields is the number of fields after state required to reach policy
	minFields = fieldPolicy - 3
)

// fieldIndex converts a proc(5) field number to an index into the
// space-separated fields following the state character.
func fieldIndex(n int) int {
	return n - 4
}

// ParseStat parses the contents of a /proc/<pid>/stat (or
// /proc/<pid>/task/<tid>/stat) file.
//
// comm is the only field that may contain spaces, parentheses, or other
// arbitrary bytes, so the line is split on the first '(' and the last ')'
// rather than on whitespace alone.
func ParseStat(data []byte) (Stat, error) {
	open := bytes.IndexByte(data, '(')
	closing := bytes.LastIndexByte(data, ')')
	if open < 0 || closing < open {
		return Stat{}, fmt.Errorf("%w: no comm delimiters", ErrMalformed)
	}

	pid, err := strconv.Atoi(string(bytes.TrimSpace(data[:open])))
	if err != nil {
		return Stat{}, fmt.Errorf("%w: pid: %v", ErrMalformed, err)
	}

	rest := strings.Fields(string(data[closing+1:]))
	if len(rest) < 1 {
		return Stat{}, fmt.Errorf("%w: missing state", ErrMalformed)
	}
	state := rest[0]
	if len(state) != 1 {
		return Stat{}, fmt.Errorf("%w: state %q", ErrMalformed, state)
	}

	fields := rest[1:]
	if len(fields) < minFields {
		return Stat{}, fmt.Errorf("%w: %d fields after state, need %d", ErrMalformed, len(fields), minFields)
	}

	st := Stat{
		PID:   pid,
		Comm:  string(data[open+1 : closing]),
		State: state[0],
	}

	for _, f := range []struct {
		num  int
		dst  *int
		name string
	}{
		{fieldPriority, &st.Priority, "priority"},
		{fieldNice, &st.Nice, "nice"},
		{fieldNumThreads, &st.NumThreads, "num_threads"},
		{fieldProcessor, &st.Processor, "processor"},
		{fieldRTPriority, &st.RTPriority, "rt_priority"},
		{fieldPolicy, &st.Policy, "policy"},
	} {
		v, err := strconv.Atoi(fields[fieldIndex(f.num)])
		if err != nil {
			return Stat{}, fmt.Errorf("%w: %s: %v", ErrMalformed, f.name, err)
		}
		*f.dst = v
	}

	return st, nil
}
