package dataset

// Kind discriminates the two CSV feeds the dashboard ingests.
type Kind string

const (
	KindOrders Kind = "orders"
	KindAds    Kind = "ads"
)

// Valid reports whether k is one of the two known feeds.
func (k Kind) Valid() bool {
	return k == KindOrders || k == KindAds
}

// OrderRecord is one line item of a customer order, exactly as uploaded.
// One order may span several line items sharing a pedido_id. Currency and
// date fields keep their Brazilian-locale string form; the read endpoints
// echo the CSV field names verbatim, so the JSON tags are the headers
// themselves.
type OrderRecord struct {
	OrderID   string `json:"pedido_id"`
	Date      string `json:"pedido_data"`
	Time      string `json:"pedido_hora"`
	Status    string `json:"pedido_status"`
	ShipState string `json:"envio_estado"`
	Product   string `json:"produto_nome"`
	UnitPrice string `json:"produto_valor_unitario"`
	Quantity  string `json:"produto_quantidade"`
	LineTotal string `json:"produto_valor_total"`
}

// CampaignRecord is one ad campaign's aggregate performance for a
// reporting period, as exported by the ads platform.
type CampaignRecord struct {
	ReportStart         string `json:"Início dos relatórios"`
	ReportEnd           string `json:"Término dos relatórios"`
	Name                string `json:"Nome da campanha"`
	Reach               string `json:"Alcance"`
	Impressions         string `json:"Impressões"`
	CPM                 string `json:"CPM (custo por 1.000 impressões) (BRL)"`
	LinkClicks          string `json:"Cliques no link"`
	CPC                 string `json:"CPC (custo por clique no link) (BRL)"`
	PageViews           string `json:"Visualizações da página de destino"`
	CostPerPageView     string `json:"Custo por visualização da página de destino (BRL)"`
	CartAdds            string `json:"Adições ao carrinho"`
	CostPerCartAdd      string `json:"Custo por adição ao carrinho (BRL)"`
	CartConversionValue string `json:"Valor de conversão de adições ao carrinho"`
	AmountSpent         string `json:"Valor usado (BRL)"`
}
