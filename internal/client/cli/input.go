package cli

import (
	"bufio"
	"fmt"
	"strings"
)

// GetSimpleText prompts and reads one trimmed line from the reader.
func GetSimpleText(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Printf("%s: ", prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
