package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// readLine prints prompt and returns the next input line without its line
// ending. It returns io.EOF when input is exhausted and nothing was read.
func (s *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// printChoices lists items numbered from 1.
func (s *Shell) printChoices(items []string) {
	for i, item := range items {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, item)
	}
}

// chooseIndex asks for a number between 1 and n until one is given and
// returns it zero-based.
func (s *Shell) chooseIndex(prompt string, n int) (int, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && choice >= 1 && choice <= n {
			return choice - 1, nil
		}
	}
}

// askYesNo asks until the answer is y or n.
func (s *Shell) askYesNo(prompt string) (bool, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return false, err
		}
		switch strings.TrimSpace(line) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
	}
}
