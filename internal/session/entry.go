package session

import "strconv"

const maxEntryLen = 10

// Entry is the numeric text buffer used to type a charge magnitude.
// Malformed text parses to 0, which the store rejects, so bad input
// collapses into the same silent no-op as an explicit zero.
type Entry struct {
	buf    []byte
	active bool
}

func (e *Entry) Active() bool { return e.active }
func (e *Entry) Text() string { return string(e.buf) }
func (e *Entry) Empty() bool  { return len(e.buf) == 0 }

func (e *Entry) Begin() {
	e.active = true
	e.buf = e.buf[:0]
}

func (e *Entry) Cancel() {
	e.active = false
	e.buf = e.buf[:0]
}

// Append accepts digits, '.' and '-' up to the length cap; anything
// else is dropped.
func (e *Entry) Append(ch byte) {
	if !e.active || len(e.buf) >= maxEntryLen {
		return
	}
	if (ch >= '0' && ch <= '9') || ch == '.' || ch == '-' {
		e.buf = append(e.buf, ch)
	}
}

func (e *Entry) Backspace() {
	if len(e.buf) > 0 {
		e.buf = e.buf[:len(e.buf)-1]
	}
}

// Value parses the buffer; unparseable text is 0.
func (e *Entry) Value() float64 {
	v, err := strconv.ParseFloat(string(e.buf), 64)
	if err != nil {
		return 0
	}
	return v
}
