package game

// Draw picks a note uniformly among the notes of [root, root+nbNotes) whose
// pitch class is in scale. It always consumes exactly one value from r and
// falls back to root when no note qualifies.
func Draw(r *Rando, root, nbNotes int, scale Scale) int {
	span := min(nbNotes, MaxNote+1)

	// two passes over the range keep this allocation free
	count := 0
	for i := 0; i < span; i++ {
		if candidate(root+i, scale) {
			count++
		}
	}

	v := int(r.Next())
	if count == 0 {
		return root
	}

	pick := v % count
	for i := 0; i < span; i++ {
		note := root + i
		if !candidate(note, scale) {
			continue
		}
		if pick == 0 {
			return note
		}
		pick--
	}
	return root
}

func candidate(note int, scale Scale) bool {
	return note >= 0 && note <= MaxNote && scale.Contains(note)
}
