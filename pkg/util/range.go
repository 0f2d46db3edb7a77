package util

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// VLAN IDs 1-4094 are assignable; 0 and 4095 are reserved by 802.1Q.
const (
	MinVLANID = 1
	MaxVLANID = 4094
)

// ValidateVLANID checks that id is an assignable 802.1Q VLAN ID.
func ValidateVLANID(id int) error {
	if id < MinVLANID || id > MaxVLANID {
		return fmt.Errorf("VLAN ID must be between %d and %d, got %d", MinVLANID, MaxVLANID, id)
	}
	return nil
}

// ParseVLANBounds parses a VLAN range specification into inclusive bounds.
// Accepts "600-699" or a single ID "600" (start == end). Both bounds must
// be valid VLAN IDs. Reversed bounds ("699-600") are returned as given:
// callers treat start > end as an empty range, not an error.
func ParseVLANBounds(spec string) (start, end int, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0, fmt.Errorf("empty VLAN range")
	}

	parts := strings.SplitN(spec, "-", 2)
	start, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start value in range %q: %v", spec, err)
	}
	if len(parts) == 2 {
		end, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid end value in range %q: %v", spec, err)
		}
	} else {
		end = start
	}

	if err := ValidateVLANID(start); err != nil {
		return 0, 0, err
	}
	if err := ValidateVLANID(end); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// CompactRange compacts a list of integers into range notation
// [1, 2, 3, 5, 7, 8, 9] -> "1-3,5,7-9"
func CompactRange(values []int) string {
	if len(values) == 0 {
		return ""
	}

	// Sort and deduplicate
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)
	sorted = dedupInts(sorted)

	var parts []string
	start := sorted[0]
	end := sorted[0]

	for i := 1; i < len(sorted); i++ {
		if sorted[i] == end+1 {
			end = sorted[i]
		} else {
			parts = append(parts, formatRange(start, end))
			start = sorted[i]
			end = sorted[i]
		}
	}
	parts = append(parts, formatRange(start, end))

	return strings.Join(parts, ",")
}

func formatRange(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}

func dedupInts(sorted []int) []int {
	if len(sorted) == 0 {
		return sorted
	}
	result := []int{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1] {
			result = append(result, sorted[i])
		}
	}
	return result
}
