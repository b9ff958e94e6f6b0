package chunker

// Chunker splits a transcript body into overlapping windows.
type Chunker interface {
	Split(text string) []Chunk
}

// Chunk is one window of a text. Start and End are character (rune) offsets
// into the text; Index is 1-based.
type Chunk struct {
	Index int
	Total int
	Text  string
	Start int
	End   int
}
