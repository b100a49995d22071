// Package index builds the per-run lookup tables used to reconcile article
// metadata with BHL items and pages. Tables are built once and are read-only
// afterwards.
package index

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/gbhl/piwg-citations/internal/bhl"
)

var (
	// volumeSpanRe finds the volume portion of an enumeration string,
	// e.g. "12-14" in "v.12-14=no.1-6".
	volumeSpanRe  = regexp.MustCompile(`v\.([\d\-\s]+)[=(]`)
	singleVolRe   = regexp.MustCompile(`^\d+$`)
	volumeRangeRe = regexp.MustCompile(`^(\d+)-(\d+)$`)
)

// Volumes maps a volume number to the BHL item holding it.
type Volumes struct {
	items map[string]bhl.ID
}

// BuildVolumes parses each item's enumeration string. Items whose string
// does not follow the "v.N" / "v.A-B" convention contribute nothing. When
// two items claim the same volume the later one wins.
func BuildVolumes(items []bhl.Item) Volumes {
	v := Volumes{items: make(map[string]bhl.ID)}
	for _, item := range items {
		vols := ParseEnumeration(item.Volume)
		if len(vols) == 0 {
			slog.Debug("No volume number in enumeration", "item_id", item.ItemID, "enumeration", item.Volume)
			continue
		}
		for _, vol := range vols {
			v.items[vol] = item.ItemID
		}
	}
	return v
}

// ParseEnumeration returns the volume numbers covered by an enumeration
// string, normalized without leading zeros. It returns nil for anything
// outside the documented grammar.
func ParseEnumeration(enum string) []string {
	m := volumeSpanRe.FindStringSubmatch(enum)
	if m == nil {
		return nil
	}
	span := strings.TrimSpace(m[1])

	if singleVolRe.MatchString(span) {
		n, err := strconv.Atoi(span)
		if err != nil {
			return nil
		}
		return []string{strconv.Itoa(n)}
	}

	r := volumeRangeRe.FindStringSubmatch(span)
	if r == nil {
		return nil
	}
	start, err := strconv.Atoi(r[1])
	if err != nil {
		return nil
	}
	end, err := strconv.Atoi(r[2])
	if err != nil {
		return nil
	}

	var vols []string
	for n := start; n <= end; n++ {
		vols = append(vols, strconv.Itoa(n))
	}
	return vols
}

// Lookup returns the item holding volume. Numeric volumes are compared
// without leading zeros.
func (v Volumes) Lookup(volume string) (bhl.ID, bool) {
	id, ok := v.items[normalizeVolume(volume)]
	return id, ok
}

// Len returns the number of indexed volumes.
func (v Volumes) Len() int {
	return len(v.items)
}

func normalizeVolume(volume string) string {
	volume = strings.TrimSpace(volume)
	if !singleVolRe.MatchString(volume) {
		return volume
	}
	n, err := strconv.Atoi(volume)
	if err != nil {
		return volume
	}
	return strconv.Itoa(n)
}
