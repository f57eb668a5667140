package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"terradash/internal/application/analytics"
	"terradash/internal/application/ingest"
	"terradash/internal/domain/dataset"
	"terradash/internal/domain/report"
	"terradash/internal/infrastructure/repository"
)

const ordersCSV = "pedido_id;pedido_data;pedido_hora;pedido_status;envio_estado;produto_nome;produto_valor_unitario;produto_quantidade;produto_valor_total\n" +
	"A;01/04/2025;10:15;pago;SP;Café Especial;89,90;1;89,90\n" +
	"A;01/04/2025;10:15;pago;SP;Filtro;10,00;1;10,00\n" +
	"B;02/04/2025;14:30;pago;RJ;Curso de Barista;50,00;1;50,00\n"

const campaignsCSV = "Início dos relatórios;Término dos relatórios;Nome da campanha;Alcance;Impressões;CPM (custo por 1.000 impressões) (BRL);Cliques no link;CPC (custo por clique no link) (BRL);Visualizações da página de destino;Custo por visualização da página de destino (BRL);Adições ao carrinho;Custo por adição ao carrinho (BRL);Valor de conversão de adições ao carrinho;Valor usado (BRL)\n" +
	"01/04/2025;30/04/2025;[ECOM] Remarketing Abril;1.000;5.000;10,00;200;0,25;150;0,33;30;1,67;100,00;50,00\n"

type testEnv struct {
	repo      *repository.MemoryRepository
	analytics analytics.Service
	upload    *UploadHandler
	dataset   *DatasetHandler
	dashboard *DashboardHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	repo := repository.NewMemoryRepository()
	ingestSvc := ingest.NewService(repo, log)
	analyticsSvc := analytics.NewService(repo, time.Minute, log)

	return &testEnv{
		repo:      repo,
		analytics: analyticsSvc,
		upload:    NewUploadHandler(ingestSvc, analyticsSvc, 5<<20, t.TempDir(), log),
		dataset:   NewDatasetHandler(repo, log),
		dashboard: NewDashboardHandler(analyticsSvc, log),
	}
}

// uploadRequest builds a multipart POST with the usual form fields. Empty
// field values are omitted entirely.
func uploadRequest(t *testing.T, kind, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range map[string]string{"type": kind, "month": "04", "year": "2025"} {
		if value == "" {
			continue
		}
		if err := mw.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.Copy(part, strings.NewReader(content)); err != nil {
		t.Fatalf("write file part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestUpload(t *testing.T) {
	t.Run("orders upload replaces the collection", func(t *testing.T) {
		env := newTestEnv(t)
		rec := httptest.NewRecorder()
		env.upload.Upload(rec, uploadRequest(t, "orders", "pedidos.csv", ordersCSV))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		resp := decodeResponse(t, rec)
		if !resp.Success {
			t.Fatalf("expected success, got %+v", resp)
		}
		data, _ := resp.Data.(map[string]any)
		if data["rows"] != float64(3) {
			t.Errorf("rows = %v, want 3", data["rows"])
		}
		if data["status"] != "processed" {
			t.Errorf("status = %v, want processed", data["status"])
		}

		orders, err := env.repo.Orders()
		if err != nil {
			t.Fatalf("Orders(): %v", err)
		}
		if len(orders) != 3 {
			t.Errorf("stored %d orders, want 3", len(orders))
		}
	})

	t.Run("missing form fields are rejected", func(t *testing.T) {
		env := newTestEnv(t)
		rec := httptest.NewRecorder()
		env.upload.Upload(rec, uploadRequest(t, "", "pedidos.csv", ordersCSV))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown type value is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		rec := httptest.NewRecorder()
		env.upload.Upload(rec, uploadRequest(t, "users", "pedidos.csv", ordersCSV))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("non-csv file is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		rec := httptest.NewRecorder()
		env.upload.Upload(rec, uploadRequest(t, "orders", "pedidos.xlsx", ordersCSV))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("schema violation keeps the previous collection", func(t *testing.T) {
		env := newTestEnv(t)
		seeded := []dataset.OrderRecord{{OrderID: "OLD", LineTotal: "10,00"}}
		if err := env.repo.ReplaceOrders(seeded); err != nil {
			t.Fatalf("seed: %v", err)
		}

		bad := strings.Replace(ordersCSV, "pedido_status", "status", 1)
		rec := httptest.NewRecorder()
		env.upload.Upload(rec, uploadRequest(t, "orders", "pedidos.csv", bad))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		resp := decodeResponse(t, rec)
		if !strings.Contains(resp.Message, "pedido_status") {
			t.Errorf("message %q does not name the missing column", resp.Message)
		}

		orders, _ := env.repo.Orders()
		if len(orders) != 1 || orders[0].OrderID != "OLD" {
			t.Errorf("previous collection was not preserved: %+v", orders)
		}
	})

	t.Run("get is not allowed", func(t *testing.T) {
		env := newTestEnv(t)
		rec := httptest.NewRecorder()
		env.upload.Upload(rec, httptest.NewRequest(http.MethodGet, "/api/upload", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", rec.Code)
		}
	})
}

func TestDatasetEndpoints(t *testing.T) {
	t.Run("orders round-trip with verbatim csv field names", func(t *testing.T) {
		env := newTestEnv(t)
		rec := httptest.NewRecorder()
		env.upload.Upload(rec, uploadRequest(t, "orders", "pedidos.csv", ordersCSV))
		if rec.Code != http.StatusOK {
			t.Fatalf("upload failed: %s", rec.Body.String())
		}

		rec = httptest.NewRecorder()
		env.dataset.Orders(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}

		var rows []map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&rows); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("got %d rows, want 3", len(rows))
		}
		if rows[0]["pedido_id"] != "A" || rows[0]["produto_valor_total"] != "89,90" {
			t.Errorf("unexpected first row: %+v", rows[0])
		}
	})

	t.Run("empty store returns an empty array", func(t *testing.T) {
		env := newTestEnv(t)
		rec := httptest.NewRecorder()
		env.dataset.Campaigns(rec, httptest.NewRequest(http.MethodGet, "/api/campaigns", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
			t.Errorf("body = %q, want []", body)
		}
	})
}

func TestDashboardEndpoint(t *testing.T) {
	env := newTestEnv(t)

	// Before any upload the dashboard is served, with all KPIs at zero.
	rec := httptest.NewRecorder()
	env.dashboard.Dashboard(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var empty report.Dashboard
	if err := json.NewDecoder(rec.Body).Decode(&empty); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if empty.KPIs.TotalSales != 0 || empty.KPIs.TotalOrders != 0 {
		t.Fatalf("expected zero KPIs before upload, got %+v", empty.KPIs)
	}

	// Uploads must invalidate the memoized payload.
	rec = httptest.NewRecorder()
	env.upload.Upload(rec, uploadRequest(t, "orders", "pedidos.csv", ordersCSV))
	if rec.Code != http.StatusOK {
		t.Fatalf("orders upload failed: %s", rec.Body.String())
	}
	rec = httptest.NewRecorder()
	env.upload.Upload(rec, uploadRequest(t, "ads", "ads.csv", campaignsCSV))
	if rec.Code != http.StatusOK {
		t.Fatalf("ads upload failed: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	env.dashboard.Dashboard(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var d report.Dashboard
	if err := json.NewDecoder(rec.Body).Decode(&d); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if d.KPIs.TotalSales != 149.90 {
		t.Errorf("totalSales = %v, want 149.90", d.KPIs.TotalSales)
	}
	if d.KPIs.TotalOrders != 2 {
		t.Errorf("totalOrders = %d, want 2", d.KPIs.TotalOrders)
	}
	if d.KPIs.ROI != 2.0 {
		t.Errorf("roi = %v, want 2.0", d.KPIs.ROI)
	}
	if d.KPIs.CAC != 25.0 {
		t.Errorf("cac = %v, want 25.0", d.KPIs.CAC)
	}
	if len(d.Campaigns) != 1 || d.Campaigns[0].Name != "[ECOM] Remarketing Abril" {
		t.Errorf("unexpected campaign ranking: %+v", d.Campaigns)
	}
	if d.BestDay.Label == "" || d.BestHour.Label == "" {
		t.Errorf("best day/hour missing: %+v / %+v", d.BestDay, d.BestHour)
	}
	if len(d.SalesTrend) != 2 {
		t.Errorf("salesTrend has %d points, want 2", len(d.SalesTrend))
	}
}
