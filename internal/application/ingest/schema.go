package ingest

import "terradash/internal/domain/dataset"

// Required column sets for the two feeds. Column order in the file is
// irrelevant and extra columns are tolerated, but every listed name must
// be present, exact string including units and currency annotations.
var requiredOrderColumns = []string{
	"pedido_id", "pedido_data", "pedido_hora", "pedido_status",
	"envio_estado", "produto_nome", "produto_valor_unitario",
	"produto_quantidade", "produto_valor_total",
}

var requiredCampaignColumns = []string{
	"Início dos relatórios", "Término dos relatórios", "Nome da campanha",
	"Alcance", "Impressões", "CPM (custo por 1.000 impressões) (BRL)",
	"Cliques no link", "CPC (custo por clique no link) (BRL)",
	"Visualizações da página de destino",
	"Custo por visualização da página de destino (BRL)",
	"Adições ao carrinho", "Custo por adição ao carrinho (BRL)",
	"Valor de conversão de adições ao carrinho", "Valor usado (BRL)",
}

func requiredColumns(kind dataset.Kind) []string {
	if kind == dataset.KindOrders {
		return requiredOrderColumns
	}
	return requiredCampaignColumns
}

// missingColumns returns the required names absent from the header.
func missingColumns(header, required []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[name] = struct{}{}
	}
	var missing []string
	for _, name := range required {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// columnIndex maps each header name to its position. On duplicate names
// the first occurrence wins.
func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	return index
}

// field reads one named column from a data row, trimmed.
func field(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return trimmed(row[i])
}
