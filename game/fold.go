package game

// Fold maps any note into the octave-aligned window that starts at root and
// is nbNotes wide rounded up to whole octaves. Notes already inside the window
// are returned unchanged. nbNotes must be at least 1.
func Fold(note, root, nbNotes int) int {
	interval := (nbNotes + 11) / 12 * 12
	rel := (note - root) % interval
	if rel < 0 {
		rel += interval
	}
	return root + rel
}
