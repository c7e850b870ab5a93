package dto

import "math"

// PageInfo segue a convenção de paginação do dashboard: currentPage começa em 0,
// prevPage some na primeira página e nextPage some quando offset+count >= total.
type PageInfo struct {
	Count       int  `json:"count"`
	Total       int  `json:"total"`
	CurrentPage int  `json:"currentPage"`
	PrevPage    *int `json:"prevPage,omitempty"`
	NextPage    *int `json:"nextPage,omitempty"`
}

// NewPageInfo calcula os links de uma página com count itens de um total
func NewPageInfo(currentPage, limit, count, total int) PageInfo {
	p := PageInfo{Count: count, Total: total, CurrentPage: currentPage}
	if currentPage > 0 {
		prev := currentPage - 1
		p.PrevPage = &prev
	}
	// sem overflow: página além do que um int endereça nunca tem próxima
	if limit > 0 && currentPage <= (math.MaxInt-count)/limit && currentPage*limit+count < total {
		next := currentPage + 1
		p.NextPage = &next
	}
	return p
}
