package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadBatchFile reads words from a file, one per line.
func ReadBatchFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	return readWords(f)
}

// readWords returns the non-empty lines of r, trimmed. Lines starting with
// '#' are comments.
func readWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return words, nil
}

// collectWords merges positional arguments and batch file words, keeping
// the first occurrence of each word.
func collectWords(args []string, batchFile string) ([]string, error) {
	words := append([]string(nil), args...)
	if batchFile != "" {
		fromFile, err := ReadBatchFile(batchFile)
		if err != nil {
			return nil, err
		}
		words = append(words, fromFile...)
	}

	seen := make(map[string]struct{}, len(words))
	unique := words[:0]
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		unique = append(unique, w)
	}
	return unique, nil
}
