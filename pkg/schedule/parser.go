package schedule

import (
	"strings"

	"flightwatch-service/internal/domain/entity"
)

// ParseReport summarizes row-level outcomes of one parse run. Dropped rows
// are counted with the first few reasons kept for the feed summary; parsing
// never aborts the run over a bad row.
type ParseReport struct {
	Parsed  int
	Dropped int
	Reasons []string
}

const maxReportedReasons = 5

func (r *ParseReport) drop(reason string) {
	r.Dropped++
	if len(r.Reasons) < maxReportedReasons {
		r.Reasons = append(r.Reasons, reason)
	}
}

// ParseRecords turns raw data rows (headers already consumed by the
// resolver) into canonical flight records using the feed's column mapping.
// Values are trimmed but otherwise untouched; date/time interpretation is
// left to the consumers that need comparable values. A row survives only if
// at least one of FlightDate or Code is non-empty - all-blank and
// header-echo rows are dropped.
func ParseRecords(rows [][]string, mapping ColumnMapping) ([]entity.FlightRecord, ParseReport) {
	var records []entity.FlightRecord
	var report ParseReport

	cell := func(row []string, f entity.CanonicalField) string {
		idx := mapping.Index(f)
		if idx == Unresolved || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	for _, row := range rows {
		rec := entity.FlightRecord{
			FlightDate: cell(row, entity.FieldFlightDate),
			VehicleReg: cell(row, entity.FieldVehicleReg),
			Code:       cell(row, entity.FieldCode),
			DepString:  cell(row, entity.FieldDepString),
			ArrString:  cell(row, entity.FieldArrString),
			STD:        cell(row, entity.FieldSTD),
			STA:        cell(row, entity.FieldSTA),
			Updated:    entity.IsUpdatedFlag(cell(row, entity.FieldUpdatedFlag)),
		}

		if rec.FlightDate == "" && rec.Code == "" {
			report.drop("blank row: no flight date and no code")
			continue
		}

		records = append(records, rec)
		report.Parsed++
	}

	return records, report
}
