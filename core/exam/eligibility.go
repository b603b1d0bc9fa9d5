package exam

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var nonRangeChars = regexp.MustCompile(`[^0-9-]`)

// parseEligibility extracts the inclusive [minClass, maxClass] range from a
// free-text eligibility string by stripping everything that is neither a
// digit nor a hyphen, e.g. "Grade 8-12 students" -> (8, 12).
func parseEligibility(s string) (minClass, maxClass int, err error) {
	parts := strings.Split(nonRangeChars.ReplaceAllString(s, ""), "-")
	if len(parts) < 2 {
		return 0, 0, errors.Errorf("malformed eligibility range %q", s)
	}
	if minClass, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, errors.Wrapf(err, "parsing min class of %q", s)
	}
	if maxClass, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, errors.Wrapf(err, "parsing max class of %q", s)
	}
	return minClass, maxClass, nil
}
