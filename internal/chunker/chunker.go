package chunker

// Split returns the windows covering text in order. The last window always
// ends at the end of text; an empty text yields no windows.
func (c *implChunker) Split(text string) []Chunk {
	runes := []rune(text)
	n := len(runes)

	var chunks []Chunk
	for offset := 0; offset < n; {
		end := min(offset+c.size, n)
		chunks = append(chunks, Chunk{
			Index: len(chunks) + 1,
			Text:  string(runes[offset:end]),
			Start: offset,
			End:   end,
		})
		if end == n {
			break
		}
		offset = max(0, end-c.overlap)
	}

	for i := range chunks {
		chunks[i].Total = len(chunks)
	}
	return chunks
}
