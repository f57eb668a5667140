package dataset

// Repository is the storage adapter contract shared by the memory, file
// and database backends. Each Replace swaps the whole collection; a
// failed replace must leave the previous collection untouched.
type Repository interface {
	Orders() ([]OrderRecord, error)
	Campaigns() ([]CampaignRecord, error)
	ReplaceOrders([]OrderRecord) error
	ReplaceCampaigns([]CampaignRecord) error
}
