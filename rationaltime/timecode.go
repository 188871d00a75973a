package rationaltime

import (
	"fmt"

	"github.com/jhodges10/tlRender/perrors"
)

// Timecode is the packed BCD SMPTE timecode representation the tlRender
// original uses internally (four BCD digit-pairs packed into a uint32:
// hour, minute, second, frame), exposed here purely for the round-trip
// law in spec §8: TimecodeToString(TimeToTimecode(h,m,s,f)) == "HH:MM:SS:FF".
type Timecode uint32

// timecodeToTime unpacks the BCD digit pairs back to integers.
func timecodeToTime(in Timecode) (hour, minute, second, frame int) {
	v := uint32(in)
	hour = int((v>>28&0x0f)*10 + (v>>24 & 0x0f))
	minute = int((v>>20&0x0f)*10 + (v>>16 & 0x0f))
	second = int((v>>12&0x0f)*10 + (v>>8 & 0x0f))
	frame = int((v>>4&0x0f)*10 + (v & 0x0f))
	return
}

// timeToTimecode is the faithful port of the original bit-packing.
func timeToTimecode(hour, minute, second, frame int) Timecode {
	v := (uint32(hour/10&0x0f))<<28 | (uint32(hour%10&0x0f))<<24 |
		(uint32(minute/10&0x0f))<<20 | (uint32(minute%10&0x0f))<<16 |
		(uint32(second/10&0x0f))<<12 | (uint32(second%10&0x0f))<<8 |
		(uint32(frame/10&0x0f))<<4 | (uint32(frame%10 & 0x0f))
	return Timecode(v)
}

// TimeToTimecodeString packs hour/minute/second/frame into a Timecode and
// returns it rendered as "HH:MM:SS:FF".
func TimeToTimecodeString(hour, minute, second, frame int) string {
	return TimecodeToString(timeToTimecode(hour, minute, second, frame))
}

// TimecodeToString renders a Timecode as "HH:MM:SS:FF".
func TimecodeToString(tc Timecode) string {
	h, m, s, f := timecodeToTime(tc)
	return fmt.Sprintf("%02d:%02d:%02d:%02d", h, m, s, f)
}

// ParseTimecode is the inverse of TimecodeToString.
func ParseTimecode(s string) (Timecode, error) {
	var h, m, sec, f int
	n, err := fmt.Sscanf(s, "%02d:%02d:%02d:%02d", &h, &m, &sec, &f)
	if err != nil || n != 4 {
		return 0, perrors.NewParseError("rationaltime.ParseTimecode", fmt.Errorf("malformed timecode %q", s))
	}
	return timeToTimecode(h, m, sec, f), nil
}

// Keycode identifies an edge-code-labeled piece of film stock.
type Keycode struct {
	ID     int
	Type   int
	Prefix int
	Count  int
	Offset int
}

// KeycodeToString renders a Keycode as "id:type:prefix:count:offset".
func KeycodeToString(k Keycode) string {
	return fmt.Sprintf("%d:%d:%d:%d:%d", k.ID, k.Type, k.Prefix, k.Count, k.Offset)
}

// ParseKeycode is the inverse of KeycodeToString.
func ParseKeycode(s string) (Keycode, error) {
	var k Keycode
	n, err := fmt.Sscanf(s, "%d:%d:%d:%d:%d", &k.ID, &k.Type, &k.Prefix, &k.Count, &k.Offset)
	if err != nil || n != 5 {
		return Keycode{}, perrors.NewParseError("rationaltime.ParseKeycode", fmt.Errorf("malformed keycode %q", s))
	}
	return k, nil
}
