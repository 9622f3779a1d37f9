package queryparams

// Sayfalama varsayılanları ve sınırları.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
	DefaultOrderBy = "desc"
)

// ListParams liste sayfalarındaki query parametrelerini taşır.
type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"`
	Name    string `query:"name"`   // Serbest metin arama
	Status  string `query:"status"` // Durum filtresi
}

// DefaultListParams verilen sıralama sütunu ile varsayılan parametreleri üretir.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		SortBy:  sortBy,
		OrderBy: DefaultOrderBy,
	}
}

// Validate sayfa ve limit değerlerini geçerli aralığa çeker.
func (p *ListParams) Validate() {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PerPage <= 0 || p.PerPage > MaxPerPage {
		p.PerPage = DefaultPerPage
	}
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	}
}

// CalculateOffset SQL OFFSET değerini hesaplar.
func (p ListParams) CalculateOffset() int {
	return (p.Page - 1) * p.PerPage
}

// PaginationMeta sayfalama üst verisini taşır.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// HasPrev önceki sayfa olup olmadığını söyler.
func (m PaginationMeta) HasPrev() bool { return m.CurrentPage > 1 }

// HasNext sonraki sayfa olup olmadığını söyler.
func (m PaginationMeta) HasNext() bool { return m.CurrentPage < m.TotalPages }

// PrevPage önceki sayfa numarasını döndürür.
func (m PaginationMeta) PrevPage() int { return m.CurrentPage - 1 }

// NextPage sonraki sayfa numarasını döndürür.
func (m PaginationMeta) NextPage() int { return m.CurrentPage + 1 }

// PaginatedResult veri + meta ikilisidir; view'lara bu yapı geçilir.
type PaginatedResult struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// CalculateTotalPages toplam sayfa sayısını hesaplar.
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := int(totalItems / int64(perPage))
	if totalItems%int64(perPage) != 0 {
		pages++
	}
	return pages
}
