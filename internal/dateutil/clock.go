package dateutil

import (
	"fmt"
	"strconv"
	"strings"
)

type Minute int

const EndOfDay Minute = 23*60 + 59

func ParseClock(hhmm string) (Minute, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, hhmm)
	}
	return Minute(h*60 + m), nil
}

func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}
