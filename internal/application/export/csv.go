package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vtcwoerden/materiaal-api/internal/application/dto"
	"github.com/vtcwoerden/materiaal-api/internal/domain/entity"
	"github.com/vtcwoerden/materiaal-api/internal/domain/repository"
)

var csvHeader = []string{"ID", "Name", "Quantity", "Owner", "Condition", "Location", "Comments", "Date Created"}

// ExportCSV writes the full inventory as a spreadsheet, one row per item,
// taxonomy tags joined with commas inside their cell.
func (uc *ExportUseCase) ExportCSV() (*dto.FileResponse, error) {
	items, err := uc.items.List(repository.ItemFilter{})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, item := range items {
		row := []string{
			item.ID,
			item.Name,
			strconv.Itoa(item.Quantity),
			joinTerms(item.Owner),
			joinTerms(item.Condition),
			joinTerms(item.Location),
			item.Comments,
			item.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &dto.FileResponse{
		Filename:    fmt.Sprintf("vtc_inventory_export_%s.csv", time.Now().Format("2006-01-02_15-04-05")),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

func joinTerms(terms []entity.Term) string {
	return strings.Join(entity.TermNames(terms), ", ")
}
