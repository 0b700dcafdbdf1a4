package report

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// InventoryPDFGenerator es el puerto de renderizado del reporte de inventario.
// Lo implementa pdf.MarotoReportGenerator.
type InventoryPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, rows []repository.ProductDetail, generatedAt time.Time) ([]byte, error)
}

// ReportUseCase genera el reporte PDF del inventario completo (solo admin en la capa HTTP).
type ReportUseCase struct {
	products repository.ProductRepository
	pdf      InventoryPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(products repository.ProductRepository, pdf InventoryPDFGenerator) *ReportUseCase {
	return &ReportUseCase{products: products, pdf: pdf}
}

// InventoryPDF consulta todos los productos con sus referencias y renderiza el PDF.
func (uc *ReportUseCase) InventoryPDF(ctx context.Context) ([]byte, error) {
	rows, err := uc.products.ListDetailed(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateInventoryPDF(ctx, rows, time.Now())
}
