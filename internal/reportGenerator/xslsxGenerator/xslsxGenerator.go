package xslsxGenerator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/KotFed0t/loi_bazaar_bot/internal/model"
	"github.com/KotFed0t/loi_bazaar_bot/utils"
	"github.com/xuri/excelize/v2"
)

const (
	leadsSheet   = "Leads"
	summarySheet = "Summary"
	dateFormat   = "2006-01-02 15:04"
)

var leadsHeader = []string{"#", "date", "intent", "location", "block", "type", "size", "username", "chat id", "reference"}

type XSLSXGenerator struct{}

func New() *XSLSXGenerator {
	return &XSLSXGenerator{}
}

// Generate builds a workbook with every lead on one sheet and the number of
// leads per location and intent on another.
func (g *XSLSXGenerator) Generate(ctx context.Context, leads []model.Lead) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "XSLSXGenerator.Generate"

	if len(leads) == 0 {
		return nil, "", errors.New("empty leads")
	}

	slog.Debug("Generate start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("leads", len(leads)))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"#cfe2f3"},
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create header style: %w", err)
	}

	if err = g.fillLeads(f, leads, headerStyle); err != nil {
		slog.Error("got error while filling leads sheet", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	if err = g.fillSummary(f, leads, headerStyle); err != nil {
		slog.Error("got error while filling summary sheet", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	// лист по умолчанию больше не нужен
	if err := f.DeleteSheet("Sheet1"); err != nil {
		slog.Error("got error while deleting Sheet1", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		slog.Error("got error while Saving file to bytes buffer", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	slog.Debug("Generate completed", slog.String("rqID", rqID), slog.String("op", op))

	return buf.Bytes(), ".xlsx", nil
}

func (g *XSLSXGenerator) fillLeads(f *excelize.File, leads []model.Lead, headerStyle int) error {
	if _, err := f.NewSheet(leadsSheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(leadsSheet, "A1", &leadsHeader); err != nil {
		return err
	}

	lastHeaderCell, err := excelize.CoordinatesToCellName(len(leadsHeader), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(leadsSheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, lead := range leads {
		row := []any{
			lead.LeadID,
			lead.DtCreate.Format(dateFormat),
			lead.Intent,
			lead.Location,
			lead.Block,
			lead.PropertyType,
			lead.Size,
			lead.Username,
			lead.ChatID,
			lead.Reference,
		}
		if err := f.SetSheetRow(leadsSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(leadsSheet, "B", "J", 18)
}

func (g *XSLSXGenerator) fillSummary(f *excelize.File, leads []model.Lead, headerStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	type key struct{ location, intent string }
	counts := make(map[key]int)
	for _, lead := range leads {
		counts[key{lead.Location, lead.Intent}]++
	}

	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].location != keys[j].location {
			return keys[i].location < keys[j].location
		}
		return keys[i].intent < keys[j].intent
	})

	header := []string{"location", "intent", "leads"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "C1", headerStyle); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, k := range keys {
		row := []any{k.location, k.intent, counts[k]}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	totalRow := len(keys) + 2
	_ = f.SetCellStr(summarySheet, fmt.Sprintf("A%d", totalRow), "total")
	_ = f.SetCellInt(summarySheet, fmt.Sprintf("C%d", totalRow), int64(len(leads)))

	return f.SetColWidth(summarySheet, "A", "A", 24)
}
