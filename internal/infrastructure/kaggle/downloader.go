// Package kaggle descarga datasets desde la API pública de Kaggle y los descomprime en disco.
package kaggle

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-pipeline/internal/application/ports"
	"github.com/jhoicas/retail-pipeline/internal/domain"
)

var _ ports.DatasetDownloader = (*Downloader)(nil)

// DefaultAPIURL URL base de la API v1 de Kaggle.
const DefaultAPIURL = "https://www.kaggle.com/api/v1"

const maxRedirects = 5

// Config credenciales y destino de la API.
type Config struct {
	APIURL   string
	Username string
	Key      string
	Timeout  time.Duration
}

// Downloader implementa ports.DatasetDownloader sobre el cliente HTTP de Fiber.
type Downloader struct {
	cfg Config
}

// NewDownloader construye el descargador. Sin credenciales la API responde 401 y Download devuelve error.
func NewDownloader(cfg Config) *Downloader {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &Downloader{cfg: cfg}
}

// Download descarga el archivo zip del dataset ("owner/slug") y lo extrae en dir.
func (d *Downloader) Download(ctx context.Context, dataset, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	owner, slug, ok := strings.Cut(strings.Trim(dataset, "/"), "/")
	if !ok || owner == "" || slug == "" {
		return fmt.Errorf("%w: identificador de dataset %q (se espera owner/slug)", domain.ErrInvalidInput, dataset)
	}

	url := fmt.Sprintf("%s/datasets/download/%s/%s", d.cfg.APIURL, owner, slug)
	agent := fiber.Get(url).
		Timeout(d.cfg.Timeout).
		MaxRedirectsCount(maxRedirects)
	if d.cfg.Username != "" {
		agent = agent.BasicAuth(d.cfg.Username, d.cfg.Key)
	}
	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: GET %s: %v", domain.ErrTransport, url, errs[0])
	}
	switch {
	case status == fiber.StatusNotFound:
		return fmt.Errorf("%w: dataset %s", domain.ErrSourceNotFound, dataset)
	case status < 200 || status > 299:
		return fmt.Errorf("%w: GET %s: status %d", domain.ErrTransport, url, status)
	}

	return Unzip(body, dir)
}

// Unzip extrae el archivo en dir. Rechaza entradas que escapen del directorio destino.
func Unzip(archive []byte, dir string) error {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return fmt.Errorf("%w: zip: %v", domain.ErrMalformedSource, err)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolver %s: %w", dir, err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("crear %s: %w", root, err)
	}

	for _, zf := range zr.File {
		target := filepath.Join(root, filepath.FromSlash(zf.Name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return fmt.Errorf("%w: entrada fuera del destino %q", domain.ErrMalformedSource, zf.Name)
		}
		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("crear %s: %w", target, err)
			}
			continue
		}
		if err := extractFile(zf, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(zf *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("crear %s: %w", filepath.Dir(target), err)
	}
	src, err := zf.Open()
	if err != nil {
		return fmt.Errorf("%w: abrir %s: %v", domain.ErrMalformedSource, zf.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("crear %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("extraer %s: %w", zf.Name, err)
	}
	return dst.Close()
}
