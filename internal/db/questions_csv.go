package db

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadQuestionsCSV reads questions from a CSV file with the columns
// index,content,options where options are separated by '|'.
func ReadQuestionsCSV(path string) ([]NewQuestion, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parseQuestionsCSV(file)
}

func parseQuestionsCSV(r io.Reader) ([]NewQuestion, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var questions []NewQuestion
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			continue
		}
		content := strings.TrimSpace(row[1])
		if content == "" {
			continue
		}
		index, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid index %q", i+1, row[0])
		}
		options := make([]json.RawMessage, 0)
		if len(row) >= 3 {
			for _, option := range strings.Split(row[2], "|") {
				option = strings.TrimSpace(option)
				if option == "" {
					continue
				}
				encoded, err := json.Marshal(option)
				if err != nil {
					return nil, err
				}
				options = append(options, encoded)
			}
		}
		questions = append(questions, NewQuestion{
			Content: content,
			Options: options,
			Index:   index,
		})
	}
	return questions, nil
}
