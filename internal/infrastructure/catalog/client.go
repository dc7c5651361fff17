// Package catalog implementa el cliente de la API REST del catálogo (formato Fake Store API)
// usando el cliente HTTP de Fiber.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-pipeline/internal/application/ports"
	"github.com/jhoicas/retail-pipeline/internal/domain"
	"github.com/jhoicas/retail-pipeline/internal/domain/dataset"
)

// Verificar en tiempo de compilación que Client implementa CatalogClient.
var _ ports.CatalogClient = (*Client)(nil)

const (
	productsPath   = "/products"
	categoriesPath = "/products/categories"
)

// productColumns orden preferido de columnas; los campos desconocidos van al final en orden alfabético.
var productColumns = []string{"id", "title", "price", "description", "category", "image", "rating"}

// Client adaptador HTTP hacia el catálogo. Sin reintentos ni caché: una llamada fallida es un error.
type Client struct {
	baseURL string
	timeout time.Duration
}

// NewClient construye el cliente. timeout <= 0 usa 15 s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

// FetchProducts GET <base>/products. Cada objeto JSON es una fila; las claves ausentes quedan nil.
func (c *Client) FetchProducts(ctx context.Context) (*dataset.Table, error) {
	body, err := c.get(ctx, productsPath)
	if err != nil {
		return nil, err
	}
	var items []map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: decodificar productos: %v", domain.ErrMalformedSource, err)
	}
	return objectsToTable("products", items), nil
}

// FetchCategories GET <base>/products/categories.
func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, categoriesPath)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, fmt.Errorf("%w: decodificar categorías: %v", domain.ErrMalformedSource, err)
	}
	return names, nil
}

// get ejecuta la petición con el menor entre el timeout configurado y el deadline del contexto.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	timeout, err := requestTimeout(ctx, c.timeout, time.Now())
	if err != nil {
		return nil, err
	}

	url := c.baseURL + path
	agent := fiber.Get(url).Timeout(timeout).Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: GET %s: %v", domain.ErrTransport, url, errs[0])
	}
	if status == fiber.StatusNotFound {
		return nil, fmt.Errorf("%w: GET %s: status %d", domain.ErrSourceNotFound, url, status)
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("%w: GET %s: status %d", domain.ErrTransport, url, status)
	}
	return body, nil
}

// requestTimeout devuelve min(configured, tiempo restante del deadline). Si el deadline ya
// pasó devuelve el error del contexto en lugar de un timeout <= 0.
func requestTimeout(ctx context.Context, configured time.Duration, now time.Time) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return configured, nil
	}
	left := deadline.Sub(now)
	if left <= 0 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return 0, context.DeadlineExceeded
	}
	return min(configured, left), nil
}

// objectsToTable convierte objetos JSON en tabla con la unión de claves como columnas.
func objectsToTable(name string, items []map[string]any) *dataset.Table {
	seen := map[string]bool{}
	for _, it := range items {
		for k := range it {
			seen[k] = true
		}
	}
	var columns []string
	for _, k := range productColumns {
		if seen[k] {
			columns = append(columns, k)
			delete(seen, k)
		}
	}
	extra := make([]string, 0, len(seen))
	for k := range seen {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	columns = append(columns, extra...)

	t := dataset.New(name, columns)
	t.Rows = make([][]any, 0, len(items))
	for _, it := range items {
		row := make([]any, len(columns))
		for i, col := range columns {
			row[i] = it[col]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
