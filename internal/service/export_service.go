package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/galsan/jungang-heights-api/internal/domain"
	"github.com/galsan/jungang-heights-api/internal/repository"
	apperrors "github.com/galsan/jungang-heights-api/pkg/util"
)

// csvHeader is the fixed header row expected by the sales office
// spreadsheets.
const csvHeader = "번호,이름,연락처,관심평형,문의사항,상태,등록일시"

// utf8BOM lets Excel detect the encoding of the Korean content.
const utf8BOM = "\uFEFF"

// ExportService serializes the full registration set to CSV.
type ExportService struct {
	repo repository.RegistrationRepository
}

// NewExportService constructs the service.
func NewExportService(repo repository.RegistrationRepository) *ExportService {
	return &ExportService{repo: repo}
}

// ExportCSV dumps every lead, newest first, as a BOM-prefixed CSV document.
func (s *ExportService) ExportCSV(ctx context.Context) ([]byte, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return BuildCSV(rows), nil
}

// FileName returns the attachment filename for the given day.
func FileName(now time.Time) string {
	return fmt.Sprintf("registrations_%s.csv", now.Format("2006-01-02"))
}

// BuildCSV renders the rows. Text fields are always quoted with internal
// quotes doubled; id and the status label stay unquoted. encoding/csv is not
// used because it quotes conditionally and the consuming spreadsheet
// templates expect this exact shape.
func BuildCSV(rows []domain.Registration) []byte {
	var b strings.Builder
	b.WriteString(utf8BOM)
	b.WriteString(csvHeader)
	b.WriteString("\n")

	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		fields := []string{
			fmt.Sprintf("%d", r.ID),
			quoteField(r.Name),
			quoteField(r.Phone),
			quoteField(r.InterestType),
			quoteField(r.Message),
			r.Status.Label(),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		b.WriteString(strings.Join(fields, ","))
	}
	return []byte(b.String())
}

func quoteField(val string) string {
	return `"` + strings.ReplaceAll(val, `"`, `""`) + `"`
}
