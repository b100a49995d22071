package segmentcmd

import (
	"fmt"
	"regexp"
)

var (
	bhlIDRe  = regexp.MustCompile(`^\d+$`)
	issnRe   = regexp.MustCompile(`^[0-9]{4}-[0-9]{3}[0-9xX]$`)
	yearRe   = regexp.MustCompile(`^\d{4}$`)
	prefixRe = regexp.MustCompile(`^\w+$`)
)

func validateBHLID(kind, id string) error {
	if !bhlIDRe.MatchString(id) {
		return fmt.Errorf("you must enter the %s id in nnnnnn format, got %q", kind, id)
	}
	return nil
}

func validateISSN(issn string) error {
	if !issnRe.MatchString(issn) {
		return fmt.Errorf("you must enter the ISSN in xxxx-xxxx format, got %q", issn)
	}
	return nil
}

func validateYear(flag, year string) error {
	if !yearRe.MatchString(year) {
		return fmt.Errorf("you must enter --%s in YYYY format, got %q", flag, year)
	}
	return nil
}

func validatePrefix(prefix string) error {
	if !prefixRe.MatchString(prefix) {
		return fmt.Errorf("enter a short prefix for the output file name (letters, digits, underscore), got %q", prefix)
	}
	return nil
}
