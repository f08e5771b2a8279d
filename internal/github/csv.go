package github

import (
	"strconv"
	"strings"
	"unicode"

	"ap-dojo/internal/quiz"
)

const CSVHeader = "question_id,category,field,user_answer,correct_answer,is_correct,answered_at"

// FormatCSVRow renders one answer. Only the category is quoted, and only
// when it contains a comma; no other escaping is applied.
func FormatCSVRow(record quiz.AnswerRecord) string {
	category := record.Category
	if strings.Contains(category, ",") {
		category = `"` + category + `"`
	}

	return strings.Join([]string{
		record.QuestionID,
		category,
		string(record.Field),
		record.UserAnswer,
		record.CorrectAnswer,
		strconv.FormatBool(record.IsCorrect),
		record.AnsweredAt,
	}, ",")
}

// FormatCSVRows joins the rows with newlines, without a trailing one.
func FormatCSVRows(records []quiz.AnswerRecord) string {
	rows := make([]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, FormatCSVRow(record))
	}
	return strings.Join(rows, "\n")
}

// buildContent appends rows to existing file content, or starts a new file
// with the header when there is none.
func buildContent(existing string, records []quiz.AnswerRecord) string {
	rows := FormatCSVRows(records)
	if existing != "" {
		return strings.TrimRightFunc(existing, unicode.IsSpace) + "\n" + rows + "\n"
	}
	return CSVHeader + "\n" + rows + "\n"
}
