package dto

// SheetRequest input for QR-sheet generation. Empty ItemIDs selects the whole
// inventory, optionally narrowed to one location slug.
type SheetRequest struct {
	ItemIDs  []string `json:"item_ids"`
	Layout   string   `json:"layout" validate:"omitempty,oneof=grid large"`
	Location string   `json:"location"`
}

// FileResponse a generated document ready to stream to the client.
type FileResponse struct {
	Filename    string
	ContentType string
	Data        []byte
}
