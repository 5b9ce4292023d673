package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
)

var exportHeaders = []string{"ID", "Question", "Answer", "Category", "Difficulty"}

// ExportQuestions выгружает весь каталог вопросов в CSV или Excel
// GET /questions/export?format=csv|xlsx
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	questions, categories, err := h.questionService.AllQuestions(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err, http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("questions_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, questions, categories, filename)
	default:
		h.exportCSV(c, questions, categories, filename)
	}
}

func exportRow(q *entity.Question, categories entity.CategoryIndex) []string {
	category, ok := categories.Name(q.Category)
	if !ok {
		category = strconv.FormatUint(uint64(q.Category), 10)
	}
	return []string{
		strconv.FormatUint(uint64(q.ID), 10),
		sanitizeForExcel(q.Question),
		sanitizeForExcel(q.Answer),
		sanitizeForExcel(category),
		strconv.Itoa(q.Difficulty),
	}
}

// exportCSV выгружает вопросы в CSV с правильным экранированием спецсимволов
func (h *QuestionHandler) exportCSV(c *gin.Context, questions []entity.Question, categories entity.CategoryIndex, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	// BOM для корректного отображения UTF-8 в Excel
	if _, err := c.Writer.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		h.logger.Warn("csv export: failed to write BOM", zap.Error(err))
		return
	}

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(exportHeaders)
	for i := range questions {
		_ = writer.Write(exportRow(&questions[i], categories))
	}
	writer.Flush()

	if err := writer.Error(); err != nil {
		h.logger.Warn("csv export: write failed", zap.Error(err))
	}
}

// exportXLSX выгружает вопросы в Excel через StreamWriter
func (h *QuestionHandler) exportXLSX(c *gin.Context, questions []entity.Question, categories entity.CategoryIndex, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Questions"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		handleError(c, h.logger, fmt.Errorf("failed to rename sheet: %w", err), http.StatusInternalServerError)
		return
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		handleError(c, h.logger, fmt.Errorf("failed to create stream writer: %w", err), http.StatusInternalServerError)
		return
	}

	header := make([]interface{}, len(exportHeaders))
	for i, title := range exportHeaders {
		header[i] = title
	}
	if err := sw.SetRow("A1", header); err != nil {
		handleError(c, h.logger, fmt.Errorf("failed to write header: %w", err), http.StatusInternalServerError)
		return
	}

	for i := range questions {
		q := &questions[i]
		row := exportRow(q, categories)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		// id и сложность пишем числами, чтобы их можно было сортировать и суммировать
		values := []interface{}{q.ID, row[1], row[2], row[3], q.Difficulty}
		if err := sw.SetRow(cell, values); err != nil {
			handleError(c, h.logger, fmt.Errorf("failed to write row %d: %w", i+2, err), http.StatusInternalServerError)
			return
		}
	}

	if err := sw.Flush(); err != nil {
		handleError(c, h.logger, fmt.Errorf("failed to flush sheet: %w", err), http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.logger.Warn("xlsx export: write failed", zap.Error(err))
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
