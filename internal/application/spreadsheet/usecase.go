package spreadsheet

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/retail-pipeline/internal/application/dto"
	"github.com/jhoicas/retail-pipeline/internal/application/ports"
	"github.com/jhoicas/retail-pipeline/internal/domain"
	"github.com/jhoicas/retail-pipeline/internal/domain/dataset"
	"github.com/jhoicas/retail-pipeline/internal/domain/quality"
)

// Nombres de las fuentes del lado hoja de cálculo y de sus hojas en el libro.
const (
	SourceOrders  = "orders"
	SourceReturns = "returns"
	SourcePeople  = "people"

	SheetOrders  = "Orders"
	SheetReturns = "Returns"
	SheetPeople  = "People"
)

// Sources orden canónico de las fuentes del lado hoja de cálculo.
var Sources = []string{SourceOrders, SourceReturns, SourcePeople}

// Config ubicación del dataset local y del archivo a descargar.
type Config struct {
	DataDir     string // directorio donde se descomprime el dataset
	DatasetName string // identificador externo, p.ej. "owner/slug"
}

// UseCase carga, valida y transforma las hojas Orders, Returns y People.
type UseCase struct {
	reader     ports.WorkbookReader
	downloader ports.DatasetDownloader
	cfg        Config
	recorder   quality.Recorder
}

// NewUseCase construye el caso de uso. downloader y recorder pueden ser nil.
func NewUseCase(reader ports.WorkbookReader, downloader ports.DatasetDownloader, cfg Config, recorder quality.Recorder) *UseCase {
	if recorder == nil {
		recorder = quality.Nop
	}
	return &UseCase{reader: reader, downloader: downloader, cfg: cfg, recorder: recorder}
}

// DownloadDataset crea el directorio de datos y descarga/descomprime el dataset configurado.
func (uc *UseCase) DownloadDataset(ctx context.Context) error {
	if uc.downloader == nil {
		return fmt.Errorf("spreadsheet: descarga: %w: sin descargador configurado", domain.ErrInvalidInput)
	}
	if uc.cfg.DatasetName == "" {
		return fmt.Errorf("spreadsheet: descarga: %w: dataset no configurado", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(uc.cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("spreadsheet: crear %s: %w", uc.cfg.DataDir, err)
	}
	if err := uc.downloader.Download(ctx, uc.cfg.DatasetName, uc.cfg.DataDir); err != nil {
		return fmt.Errorf("spreadsheet: descarga %s: %w", uc.cfg.DatasetName, err)
	}
	return nil
}

// LoadOrders lee la hoja Orders, emite señales de calidad y aplica las transformaciones.
func (uc *UseCase) LoadOrders(ctx context.Context) (*dataset.Table, error) {
	return uc.load(ctx, SheetOrders, SourceOrders, quality.ValidateOrders, TransformOrders)
}

// LoadReturns lee la hoja Returns.
func (uc *UseCase) LoadReturns(ctx context.Context) (*dataset.Table, error) {
	return uc.load(ctx, SheetReturns, SourceReturns, quality.ValidateReturns, TransformReturns)
}

// LoadPeople lee la hoja People.
func (uc *UseCase) LoadPeople(ctx context.Context) (*dataset.Table, error) {
	return uc.load(ctx, SheetPeople, SourcePeople, quality.ValidatePeople, TransformPeople)
}

func (uc *UseCase) load(
	ctx context.Context,
	sheet, source string,
	validate func(*dataset.Table, quality.Recorder),
	transform func(*dataset.Table) error,
) (*dataset.Table, error) {
	t, err := uc.reader.ReadSheet(ctx, sheet)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: hoja %s: %w", sheet, err)
	}
	if t.Len() == 0 || t.Width() == 0 {
		return nil, fmt.Errorf("spreadsheet: hoja %s: %w", sheet, domain.ErrEmptySource)
	}
	t.Name = source
	validate(t, uc.recorder)
	if err := transform(t); err != nil {
		return nil, fmt.Errorf("spreadsheet: hoja %s: %w", sheet, err)
	}
	return t, nil
}

// GetAllData carga las tres hojas. Las claves orders, returns y people siempre están presentes;
// el valor es nil si la hoja no se pudo cargar y Failures registra la causa.
func (uc *UseCase) GetAllData(ctx context.Context) dto.SourceResult {
	out := dto.NewSourceResult()
	loaders := []struct {
		source string
		load   func(context.Context) (*dataset.Table, error)
	}{
		{SourceOrders, uc.LoadOrders},
		{SourceReturns, uc.LoadReturns},
		{SourcePeople, uc.LoadPeople},
	}
	for _, l := range loaders {
		t, err := l.load(ctx)
		out.Tables[l.source] = t
		if err != nil {
			out.Failures[l.source] = err
		}
	}
	return out
}
