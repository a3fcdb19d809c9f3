package ds

// MakeChunks groups the elements of a slice into chunks of at most n
// elements, preserving order. The last chunk may be shorter. For example,
//
//	MakeChunks([]int{1, 2, 3, 4, 5}, 2)
//
// returns [][]int{{1, 2}, {3, 4}, {5}}.
func MakeChunks[T any](ts []T, n int) [][]T {
	chunks := make([][]T, 0, len(ts)/n+1)
	for i := 0; i < len(ts); i += n {
		end := i + n
		if end > len(ts) {
			end = len(ts)
		}
		chunks = append(chunks, ts[i:end])
	}
	return chunks
}
