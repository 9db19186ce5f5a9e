package domain

// HistoryRepository persists fetch records
type HistoryRepository interface {
	Create(record *FetchRecord) error
	Update(record *FetchRecord) error
	FindByID(id string) (*FetchRecord, error)
	FindAll(filters map[string]interface{}) ([]*FetchRecord, error)
	Count() (int64, error)
	CountByStatus(status FetchStatus) (int64, error)
	GetStats() (*FetchStats, error)
	Close() error
}

// FetchStats summarizes the history by status
type FetchStats struct {
	Total      int64 `json:"total"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Failed     int64 `json:"failed"`
}
