package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
)

// This is a standalone utility to cut a full-size GloVe text file down to
// the vocabulary of a set of SNLI partition files, producing a small sample
// suitable for local runs and fixtures.

func main() {
	sourceFile := flag.String("source", "", "Path to the original GloVe text file")
	outputFile := flag.String("output", "glove_sample.txt", "Path to output the sample file")
	maxWords := flag.Int("max_words", 0, "Maximum number of vectors to keep (0 = keep all matches)")
	flag.Parse()

	if *sourceFile == "" {
		fmt.Println("Error: You must specify a source file with -source")
		flag.Usage()
		os.Exit(1)
	}
	if flag.NArg() == 0 {
		fmt.Println("Error: You must list at least one SNLI partition file")
		flag.Usage()
		os.Exit(1)
	}

	vocab := make(map[string]bool)
	for _, path := range flag.Args() {
		if err := collectWords(path, vocab); err != nil {
			fmt.Printf("Error reading %s: %v\n", path, err)
			os.Exit(1)
		}
	}
	fmt.Printf("Collected %d distinct words from %d files\n", len(vocab), flag.NArg())

	kept, err := sample(*sourceFile, *outputFile, vocab, *maxWords)
	if err != nil {
		fmt.Printf("Error sampling: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d vectors to %s\n", kept, *outputFile)
}

func collectWords(path string, vocab map[string]bool) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for idx := 0; scanner.Scan(); idx++ {
		if idx == 0 {
			continue
		}
		cols := strings.Split(scanner.Text(), "\t")
		if len(cols) < 3 || cols[0] == "-" {
			continue
		}
		for _, col := range cols[1:3] {
			for _, w := range strings.Split(col, " ") {
				if w != "(" && w != ")" {
					vocab[w] = true
				}
			}
		}
	}
	return scanner.Err()
}

func sample(source, output string, vocab map[string]bool, maxWords int) (int, error) {
	srcFile, err := os.Open(source)
	if err != nil {
		return 0, err
	}
	defer srcFile.Close()

	outFile, err := os.Create(output)
	if err != nil {
		return 0, err
	}
	defer outFile.Close()

	writer := bufio.NewWriter(outFile)
	defer writer.Flush()

	scanner := bufio.NewScanner(srcFile)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	kept := 0
	for scanner.Scan() {
		line := scanner.Text()
		sep := strings.IndexByte(line, ' ')
		if sep < 0 || !vocab[line[:sep]] {
			continue
		}

		if _, err := writer.WriteString(line + "\n"); err != nil {
			return kept, err
		}
		kept++
		if maxWords > 0 && kept >= maxWords {
			break
		}
	}
	return kept, scanner.Err()
}
