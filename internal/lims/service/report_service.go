package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/criteria"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/entity"
	"github.com/ducsssanh/testflow-lab-nexus/internal/lims/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ReportStore is the slice of the object store the report service needs.
// *storage.Client satisfies it.
type ReportStore interface {
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// ReportService renders the final test report workbook and closes the
// assignment when it succeeds.
type ReportService struct {
	assignmentRepo *repository.AssignmentRepository
	logRepo        *repository.InspectionLogRepository
	store          ReportStore
	logger         *zap.Logger
}

func NewReportService(assignmentRepo *repository.AssignmentRepository, logRepo *repository.InspectionLogRepository, store ReportStore, logger *zap.Logger) *ReportService {
	return &ReportService{
		assignmentRepo: assignmentRepo,
		logRepo:        logRepo,
		store:          store,
		logger:         logger,
	}
}

// GenerateReportResult reports the closed assignment and where the
// workbook landed. Warning is set when the upload failed after the status
// transitions already committed.
type GenerateReportResult struct {
	Assignment *entity.Assignment `json:"assignment"`
	ObjectName string             `json:"object_name,omitempty"`
	Warning    string             `json:"warning,omitempty"`
}

// GenerateReport renders the report for an assignment's inspection log,
// marks the log Completed and the assignment Done, then uploads the
// workbook. Without a log there is nothing to report, so the call is
// rejected and nothing changes state. The status transitions commit
// before the upload: a storage outage must not reopen finished work.
func (s *ReportService) GenerateReport(ctx context.Context, assignmentID string) (*GenerateReportResult, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	log, err := s.logRepo.FindByAssignmentID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoInspectionLog
		}
		return nil, err
	}
	if log.Status == entity.LogStatusCompleted {
		return nil, ErrLogCompleted
	}

	sections, err := DecodeSections(log.Sections)
	if err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}

	f, err := renderReport(assignment, log, sections)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	objectName := fmt.Sprintf("reports/%s/%s.xlsx", time.Now().Format("2006"), assignment.SampleCode)

	now := time.Now()
	log.Status = entity.LogStatusCompleted
	log.UpdatedAt = now
	if err := s.logRepo.Update(ctx, log); err != nil {
		return nil, fmt.Errorf("complete inspection log: %w", err)
	}

	if !entity.CanTransitionAssignment(assignment.Status, entity.AssignmentStatusDone) {
		return nil, ErrInvalidTransition
	}
	assignment.Status = entity.AssignmentStatusDone
	assignment.ReportRef = objectName
	assignment.UpdatedAt = now
	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, fmt.Errorf("close assignment: %w", err)
	}

	result := &GenerateReportResult{Assignment: assignment, ObjectName: objectName}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		result.Warning = "report generated but not stored: " + err.Error()
		return result, nil
	}
	if err := s.store.Put(ctx, objectName, &buf, int64(buf.Len()), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"); err != nil {
		s.logger.Warn("report upload failed",
			zap.String("assignment_id", assignmentID),
			zap.String("object", objectName),
			zap.Error(err),
		)
		result.Warning = "report generated but not stored: " + err.Error()
	}

	return result, nil
}

// DownloadURL returns a presigned link to a finished report.
func (s *ReportService) DownloadURL(ctx context.Context, assignmentID string) (string, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		return "", err
	}
	if assignment.ReportRef == "" {
		return "", repository.ErrNotFound
	}
	return s.store.PresignedURL(ctx, assignment.ReportRef, 15*time.Minute)
}

// renderReport lays one criterion table after another onto a single sheet,
// each preceded by its section number and name, with the computed verdict
// on the header row.
func renderReport(assignment *entity.Assignment, log *entity.InspectionLog, sections []*criteria.RequirementSection) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Report"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13},
	})

	f.SetCellValue(sheet, "A1", "Test Report")
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	f.SetCellValue(sheet, "A2", "Sample symbol")
	f.SetCellValue(sheet, "B2", log.SampleSymbol)
	f.SetCellValue(sheet, "A3", "Test sample")
	f.SetCellValue(sheet, "B3", log.TestSample)
	f.SetCellValue(sheet, "A4", "Testing date")
	f.SetCellValue(sheet, "B4", log.TestingDate)
	f.SetCellValue(sheet, "A5", "Sample type")
	f.SetCellValue(sheet, "B5", assignment.SampleType)

	row := 7
	for _, section := range sections {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), section.RequirementName)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), titleStyle)
		row += 2

		for _, c := range section.Criteria {
			row = renderCriterion(f, sheet, c, row, boldStyle)
		}
	}

	return f, nil
}

func renderCriterion(f *excelize.File, sheet string, c *criteria.Criterion, row int, boldStyle int) int {
	verdict := criteria.Evaluate(c)
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s %s", c.SectionNumber, c.Name))
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), string(verdict))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), boldStyle)
	row++

	if c.Data != nil && len(c.Structure.Columns) > 0 {
		for i, col := range c.Structure.Columns {
			name, _ := excelize.ColumnNumberToName(i + 1)
			cell := name + fmt.Sprint(row)
			f.SetCellValue(sheet, cell, col.Header)
			f.SetCellStyle(sheet, cell, cell, boldStyle)
		}
		row++

		for _, dataRow := range c.Data.Rows {
			for i, col := range c.Structure.Columns {
				name, _ := excelize.ColumnNumberToName(i + 1)
				f.SetCellValue(sheet, name+fmt.Sprint(row), dataRow.Values[col.ID])
			}
			row++
		}

		for _, note := range c.Supplementary.Notes {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Note: "+note)
			row++
		}
		if c.Supplementary.Equipment != "" {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Equipment: "+c.Supplementary.Equipment)
			row++
		}
		row++
	}

	for _, child := range c.Children {
		row = renderCriterion(f, sheet, child, row, boldStyle)
	}
	return row
}
