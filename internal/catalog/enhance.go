package catalog

// Enhance fills the derived fields of every entry in place and returns the slice.
// Keywords is CleanText, followed by the normalized related text when present.
func Enhance(entries []*Entry) []*Entry {
	for _, entry := range entries {
		entry.CleanText = CleanText(entry.Text)
		entry.Keywords = entry.CleanText

		if related := CleanText(entry.Related); related != "" {
			if entry.Keywords != "" {
				entry.Keywords += " "
			}
			entry.Keywords += related
		}
	}
	return entries
}
