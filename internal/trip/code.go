package trip

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateCode builds the human-readable trip code VC_<year>_<month>_<day>_<suffix>.
// The date part comes from date (YYYY-MM-DD); when it does not parse, fallback is used.
func GenerateCode(date string, fallback time.Time, suffix string) string {
	day, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		day = fallback
	}
	return fmt.Sprintf("%s_%04d_%02d_%02d_%s", codePrefix, day.Year(), int(day.Month()), day.Day(), suffix)
}

// randomSuffix returns a lowercase base-36 disambiguator of codeSuffixLen characters.
func randomSuffix() string {
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[8:])
	s := strconv.FormatUint(n, 36)
	if len(s) < codeSuffixLen {
		s = strings.Repeat("0", codeSuffixLen-len(s)) + s
	}
	return s[len(s)-codeSuffixLen:]
}
