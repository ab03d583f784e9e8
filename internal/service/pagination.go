package service

// Pagination describes offset-based paging metadata returned alongside
// listings: last_page = ceil(total/limit).
type Pagination struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	LastPage int `json:"last_page"`
}

func paginate(total, page, limit int) Pagination {
	if limit <= 0 {
		limit = 10
	}
	lastPage := (total + limit - 1) / limit
	return Pagination{Total: total, Page: page, LastPage: lastPage}
}

func normalizePage(page, limit int) (int, int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}
