package timeline

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// SynthesizePath builds "{dir}/{base}{zero_pad(frameIndex, pad)}{ext}" per
// spec §6.
func SynthesizePath(dir, base string, pad, frameIndex int, ext string) string {
	var number string
	if pad > 0 {
		number = fmt.Sprintf("%0*d", pad, frameIndex)
	} else {
		number = strconv.Itoa(frameIndex)
	}
	return filepath.Join(dir, base+number+ext)
}

// InferPadding reads an example filename's numeric component and returns
// the padding width per spec §6: if the number begins with '0', pad equals
// its length; otherwise pad is 0. prefix is everything before the run of
// digits, number is the digit run itself, and suffix (the extension) is
// everything after it.
func InferPadding(filename string) (prefix, number, suffix string, pad int) {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	end := len(stem)
	for end > 0 && isDigit(stem[end-1]) {
		end--
	}
	prefix = stem[:end]
	number = stem[end:]
	suffix = ext

	if len(number) > 0 && number[0] == '0' {
		pad = len(number)
	}
	return prefix, number, suffix, pad
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
