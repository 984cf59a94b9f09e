package vault

import (
	"os"
	"path/filepath"
	"time"
)

// relatedLookbackDays is how far back the related-entry scan reaches.
const relatedLookbackDays = 7

// relatedKeys returns the date keys of the preceding seven calendar
// days that already have a note, most recent first. Subtraction is true
// calendar arithmetic, so a note created on March 1 still finds
// entries from late February.
func (a *Assembler) relatedKeys(day time.Time) []string {
	var keys []string
	for i := 1; i <= relatedLookbackDays; i++ {
		key := day.AddDate(0, 0, -i).Format(dateKeyLayout)
		if _, err := os.Stat(filepath.Join(a.diaryDir(), key+".md")); err == nil {
			keys = append(keys, key)
		}
	}
	return keys
}
