package ports

import (
	"context"

	"github.com/jhoicas/Tiendas-ops/internal/application/dto"
)

// ReportGenerator define el puerto de salida para renderizar el reporte de analítica del gerente.
// Cualquier adaptador (PDF, CSV, mock) debe implementar esta interfaz.
type ReportGenerator interface {
	// GenerateAnalyticsReport devuelve el documento renderizado como bytes.
	GenerateAnalyticsReport(ctx context.Context, report *dto.AnalyticsReportDTO) ([]byte, error)
}
