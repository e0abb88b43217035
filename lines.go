package expout

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// ReadLines reads captured output from r and splits it into lines. Line
// terminators "\n" and "\r\n" are removed. A final terminator does not
// start another line. A single line must not exceed MaxLineLen bytes.
func ReadLines(r io.Reader) ([]string, error) {
	return readLines(r, MaxLineLen)
}

// MaxLineLen is the longest line ReadLines accepts.
const MaxLineLen = 1024 * 1024

func readLines(r io.Reader, maxLen int) ([]string, error) {
	scn := bufio.NewScanner(r)
	scn.Buffer(nil, maxLen)
	scn.Split(scanLines)
	var res []string
	for scn.Scan() {
		res = append(res, scn.Text())
	}
	return res, scn.Err()
}

// SplitLines is ReadLines for a block of text. As s is already in memory
// there is no limit on the line length.
func SplitLines(s string) []string {
	res, _ := readLines(strings.NewReader(s), len(s)+1)
	return res
}

// scanLines is bufio.ScanLines except that a lone '\r' at EOF is also
// dropped.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, dropCR(data[:i]), nil
	}
	if atEOF {
		return len(data), dropCR(data), nil
	}
	return 0, nil, nil
}

func dropCR(data []byte) []byte {
	if len(data) > 0 && data[len(data)-1] == '\r' {
		return data[:len(data)-1]
	}
	return data
}
