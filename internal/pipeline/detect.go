package pipeline

// DefaultDelimiterSample bounds how much of a file DetectDelimiter inspects.
const DefaultDelimiterSample = 4096

var delimiterCandidates = []rune{',', ';', '\t'}

// DetectDelimiter guesses the field separator from the first sample bytes of
// text. Only separators outside quoted fields are counted, so commas inside a
// quoted summary do not outvote the real delimiter. Any tie for the top
// count, including one between ";" and tab, goes to comma.
func DetectDelimiter(text string, sample int) rune {
	if sample <= 0 {
		sample = DefaultDelimiterSample
	}
	if len(text) > sample {
		text = text[:sample]
	}

	counts := make(map[rune]int, len(delimiterCandidates))
	inQuotes := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch == '"' {
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				i++
				continue
			}
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		switch ch {
		case ',', ';', '\t':
			counts[rune(ch)]++
		}
	}

	best, tied := delimiterCandidates[0], false
	for _, d := range delimiterCandidates[1:] {
		switch {
		case counts[d] > counts[best]:
			best, tied = d, false
		case counts[d] == counts[best]:
			tied = true
		}
	}
	if tied {
		return ','
	}
	return best
}
