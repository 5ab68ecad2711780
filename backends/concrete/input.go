package concrete

import (
	"bufio"
	"io"
	"strconv"
)

// Input hands out whitespace separated tokens from a reader on demand.
type Input struct {
	scanner *bufio.Scanner
}

func NewInput(r io.Reader) *Input {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return &Input{s}
}

func (in *Input) token() (string, bool) {
	if in == nil || !in.scanner.Scan() {
		return "", false
	}
	return in.scanner.Text(), true
}

func (in *Input) ReadInt() (int64, bool) {
	tok, ok := in.token()
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(tok, 10, 64)
	return i, err == nil
}

func (in *Input) ReadFloat() (float64, bool) {
	tok, ok := in.token()
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(tok, 64)
	return f, err == nil
}
