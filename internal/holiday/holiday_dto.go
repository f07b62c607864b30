package holiday

type CreateHolidayRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description"`
}

type UpdateHolidayRequest struct {
	Name        string  `json:"name" binding:"omitempty,min=2,max=100"`
	Date        string  `json:"date"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// BulkImportItem is validated per row inside the service, so one bad row
// reports an error instead of rejecting the whole batch.
type BulkImportItem struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type BulkImportRequest struct {
	Holidays []BulkImportItem `json:"holidays" binding:"required,min=1"`
}

type BulkImportError struct {
	Holiday BulkImportItem `json:"holiday"`
	Error   string         `json:"error"`
}

type BulkImportResponse struct {
	Created []HolidayResponse `json:"created"`
	Errors  []BulkImportError `json:"errors"`
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}
