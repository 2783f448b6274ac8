package effort

import (
	"acadex/academy-ops/internal/domain"
)

// Totals is the per-role and overall hour rollup for one week.
type Totals struct {
	ByRole map[domain.EffortRole]float64
	Total  float64
}

func newTotals() Totals {
	byRole := make(map[domain.EffortRole]float64, len(domain.EffortRoles))
	for _, role := range domain.EffortRoles {
		byRole[role] = 0
	}
	return Totals{ByRole: byRole}
}

// Hours returns the rollup for one role.
func (t Totals) Hours(role domain.EffortRole) float64 {
	return t.ByRole[role]
}

// Aggregate reduces a set of persisted effort records into per-role and
// total hour rollups. Records are append-only, so multiple entries for the
// same role+date all count; nothing is deduplicated. Stateless and
// repeatable: the same input always yields the same output.
func Aggregate(records []domain.EffortRecord) Totals {
	totals := newTotals()
	for _, rec := range records {
		if !rec.Role.Valid() {
			continue
		}
		totals.ByRole[rec.Role] += rec.EffortHours
		totals.Total += rec.EffortHours
	}
	return totals
}

// RecordsFromSubmission expands a weekly submission into the append-only
// effort records it persists: one record per non-holiday day and role with
// hours above zero, the way daily entries would have been logged one by one.
func RecordsFromSubmission(sub *domain.WeeklyEffortSubmission) []domain.EffortRecord {
	var records []domain.EffortRecord
	for _, dayLog := range sub.DayLogs {
		if dayLog.IsHoliday {
			continue
		}
		for _, role := range domain.EffortRoles {
			detail, ok := dayLog.Roles[role]
			if !ok || detail.Hours <= 0 {
				continue
			}
			area := detail.Notes
			if area == "" {
				area = "Daily effort logging"
			}
			records = append(records, domain.EffortRecord{
				CohortID:    sub.CohortID,
				Role:        role,
				Mode:        domain.ModeInPerson,
				AreaOfWork:  area,
				EffortHours: detail.Hours,
				EffortDate:  dayLog.Date,
				EffortMonth: MonthOf(dayLog.Date),
			})
		}
	}
	return records
}

// MonthOf derives the upper-cased month name from an ISO date, matching how
// persisted records label their effort month. Unparseable dates yield "".
func MonthOf(isoDate string) string {
	t, err := ParseISO(isoDate)
	if err != nil {
		return ""
	}
	return upperMonth(t)
}
