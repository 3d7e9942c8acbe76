package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Ph2006/sistema-orbit-sub006/internal/service/feasibility"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

const (
	feasibilitySheet = "Viabilidade"
	scheduleSheet    = "Cronograma"
	dateFormat       = "dd/mm/yyyy"
)

type ScheduleStorage interface {
	GetOrderAssignments(ctx context.Context, orderID string) ([]storage.TaskAssignment, error)
	GetTasks(ctx context.Context) ([]storage.Task, error)
}

type Service struct {
	storage ScheduleStorage
}

func NewService(storage ScheduleStorage) *Service {
	return &Service{storage: storage}
}

type styles struct {
	header     int
	bottleneck int
	date       int
}

func newStyles(f *excelize.File) (styles, error) {
	var (
		s   styles
		err error
	)

	s.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return s, err
	}

	s.bottleneck, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return s, err
	}

	format := dateFormat
	s.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	return s, err
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, name := range headers {
		if err := f.SetCellValue(sheet, cellName(i+1, 1), name); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), style); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
	})
}

// FeasibilityExcel renders the stage analysis of a feasibility result with a summary under it.
// Bottleneck stages are highlighted.
func FeasibilityExcel(res feasibility.Result, requested time.Time) ([]byte, error) {
	const op = "service.report.FeasibilityExcel"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", feasibilitySheet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("%s: styles: %w", op, err)
	}

	headers := []string{"Etapa", "Duração original", "Carga", "Faixa", "Fator", "Duração ajustada", "Gargalo"}
	if err := writeHeader(f, feasibilitySheet, headers, st.header); err != nil {
		return nil, fmt.Errorf("%s: header: %w", op, err)
	}

	for i, a := range res.Analysis {
		row := i + 2
		values := []any{a.StageName, a.OriginalDuration, a.Workload, string(a.Band), a.Factor, a.AdjustedDuration, yesNo(a.Bottleneck)}
		for col, v := range values {
			f.SetCellValue(feasibilitySheet, cellName(col+1, row), v)
		}
		if a.Bottleneck {
			f.SetCellStyle(feasibilitySheet, cellName(1, row), cellName(len(headers), row), st.bottleneck)
		}
	}

	row := len(res.Analysis) + 3
	summary := []struct {
		label string
		value any
	}{
		{"Viável", yesNo(res.IsViable)},
		{"Data solicitada", requested},
		{"Data sugerida", res.SuggestedDate},
		{"Prazo ajustado (dias)", res.TotalAdjustedLeadTime},
		{"Dias disponíveis", res.AvailableDays},
		{"Confiança (%)", res.Confidence},
	}
	for i, s := range summary {
		r := row + i
		f.SetCellValue(feasibilitySheet, cellName(1, r), s.label)
		f.SetCellValue(feasibilitySheet, cellName(2, r), s.value)
		if _, ok := s.value.(time.Time); ok {
			f.SetCellStyle(feasibilitySheet, cellName(2, r), cellName(2, r), st.date)
		}
	}
	f.SetCellStyle(feasibilitySheet, cellName(1, row), cellName(1, row+len(summary)-1), st.header)

	f.SetColWidth(feasibilitySheet, "A", "A", 24)
	f.SetColWidth(feasibilitySheet, "B", "G", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write: %w", op, err)
	}

	return buf.Bytes(), nil
}

// ScheduleExcel renders the assignments of an order with their task names.
func (s *Service) ScheduleExcel(ctx context.Context, orderID string) ([]byte, error) {
	const op = "service.report.ScheduleExcel"

	var (
		list  []storage.TaskAssignment
		tasks []storage.Task
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = s.storage.GetOrderAssignments(gCtx, orderID)
		if err != nil {
			return fmt.Errorf("assignments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tasks, err = s.storage.GetTasks(gCtx)
		if err != nil {
			return fmt.Errorf("tasks: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	names := make(map[string]string, len(tasks))
	for _, t := range tasks {
		names[t.ID] = t.Name
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", scheduleSheet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("%s: styles: %w", op, err)
	}

	headers := []string{"Pedido", "Atividade", "Tarefa", "Início", "Fim", "Duração", "Progresso", "Depende de", "Responsável"}
	if err := writeHeader(f, scheduleSheet, headers, st.header); err != nil {
		return nil, fmt.Errorf("%s: header: %w", op, err)
	}

	for i, a := range list {
		row := i + 2
		task := names[a.TaskID]
		if task == "" {
			task = a.TaskID
		}
		values := []any{orderID, a.ID, task, a.StartDate, a.EndDate, a.Duration, a.Progress,
			strings.Join(a.DependsOn, ", "), a.ResponsibleEmail}
		for col, v := range values {
			f.SetCellValue(scheduleSheet, cellName(col+1, row), v)
		}
	}
	if len(list) > 0 {
		f.SetCellStyle(scheduleSheet, cellName(4, 2), cellName(5, len(list)+1), st.date)
	}

	f.SetColWidth(scheduleSheet, "A", "C", 18)
	f.SetColWidth(scheduleSheet, "D", "G", 12)
	f.SetColWidth(scheduleSheet, "H", "I", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func yesNo(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}
