package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/stepanovme/SupplyServiceApi/internal/dto"
)

// ReportServiceInterface - выгрузка реестра заявок в XLSX.
type ReportServiceInterface interface {
	ExportRequests(ctx context.Context) (*excelize.File, error)
}

type reportService struct {
	requestService RequestServiceInterface
}

func NewReportService(requestService RequestServiceInterface) ReportServiceInterface {
	return &reportService{requestService: requestService}
}

var reportHeaders = []string{
	"№", "Проект", "Название", "Статус", "Автор", "Исполнитель",
	"Создана", "Срок", "Позиций", "Комментарий",
}

const reportSheet = "Заявки"

// ExportRequests строит книгу с одной строкой на заявку. Данные идут
// через тот же агрегатор, что и списочный API, поэтому выгрузка всегда
// совпадает с тем, что видит пользователь.
func (s *reportService) ExportRequests(ctx context.Context) (*excelize.File, error) {
	views, err := s.requestService.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	book := excelize.NewFile()
	index, err := book.NewSheet(reportSheet)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания листа отчёта: %w", err)
	}
	book.SetActiveSheet(index)
	if err := book.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("ошибка удаления листа по умолчанию: %w", err)
	}

	for col, header := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := book.SetCellValue(reportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx, view := range views {
		row := []interface{}{
			view.ID,
			view.ProjectName.String,
			view.Name.String,
			statusName(view),
			userFio(view.CreatedByUser),
			userFio(view.ExecutorUser),
			view.CreatedAt.Format("02.01.2006 15:04"),
			formatNullDate(view),
			len(view.Items),
			view.Comment.String,
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := book.SetCellValue(reportSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return book, nil
}

func statusName(view dto.RequestDTO) string {
	if view.Status == nil {
		return ""
	}
	return view.Status.Name
}

func userFio(user *dto.UserDTO) string {
	if user == nil {
		return ""
	}
	return user.ShortFio
}

func formatNullDate(view dto.RequestDTO) string {
	if !view.Deadline.Valid {
		return ""
	}
	return view.Deadline.Time.Format("02.01.2006")
}
