package pipeline

import (
	"strings"

	"github.com/amoreau/flightlog-backend-go/internal/models"
)

// canonicalize collapses known spelling variants of the equipment and site
// labels to one canonical spelling. Equipment is looked up case-insensitively,
// sites case-preserving. Unmapped labels pass through unchanged and no row is
// ever dropped, so re-applying the stage is a no-op.
func (p *Pipeline) canonicalize(rows []models.FlightRow) ([]models.FlightRow, error) {
	out := make([]models.FlightRow, len(rows))
	for i, row := range rows {
		if canonical, ok := p.equipmentAliases[strings.ToLower(row.Equipment)]; ok {
			row.Equipment = canonical
		}
		if canonical, ok := p.rules.SiteAliases[row.Site]; ok {
			row.Site = canonical
		}
		out[i] = row
	}
	return out, nil
}
