package scryfall

import "fmt"

// Card is the Scryfall wire representation of a card object.
type Card struct {
	ID            string            `json:"id"`
	OracleID      string            `json:"oracle_id"`
	Name          string            `json:"name"`
	ReleasedAt    string            `json:"released_at"`
	Layout        string            `json:"layout"`
	ImageURIs     *ImageURIs        `json:"image_uris,omitempty"`
	ManaCost      string            `json:"mana_cost"`
	CMC           float64           `json:"cmc"`
	TypeLine      string            `json:"type_line"`
	OracleText    string            `json:"oracle_text,omitempty"`
	Power         string            `json:"power,omitempty"`
	Toughness     string            `json:"toughness,omitempty"`
	Colors        []string          `json:"colors"`
	ColorIdentity []string          `json:"color_identity"`
	Set           string            `json:"set"`
	Rarity        string            `json:"rarity"`
	Legalities    map[string]string `json:"legalities,omitempty"`
	CardFaces     []CardFace        `json:"card_faces,omitempty"`
}

// CardFace is one face of a multi-faced card.
type CardFace struct {
	Name       string     `json:"name"`
	TypeLine   string     `json:"type_line"`
	ManaCost   string     `json:"mana_cost"`
	OracleText string     `json:"oracle_text"`
	Colors     []string   `json:"colors"`
	Power      string     `json:"power,omitempty"`
	Toughness  string     `json:"toughness,omitempty"`
	ImageURIs  *ImageURIs `json:"image_uris,omitempty"`
}

// ImageURIs contains URLs for card images in various sizes.
type ImageURIs struct {
	Small      string `json:"small"`
	Normal     string `json:"normal"`
	Large      string `json:"large"`
	PNG        string `json:"png"`
	ArtCrop    string `json:"art_crop"`
	BorderCrop string `json:"border_crop"`
}

// BulkData describes one downloadable bulk file.
type BulkData struct {
	Type        string `json:"type"` // e.g. "oracle_cards", "default_cards"
	Name        string `json:"name"`
	DownloadURI string `json:"download_uri"`
	UpdatedAt   string `json:"updated_at"`
	Size        int64  `json:"size"`
}

// BulkDataList is the bulk data catalog response.
type BulkDataList struct {
	Object string     `json:"object"`
	Data   []BulkData `json:"data"`
}

// OracleCards returns the oracle_cards bulk entry, or nil when absent.
func (l *BulkDataList) OracleCards() *BulkData {
	for i := range l.Data {
		if l.Data[i].Type == "oracle_cards" {
			return &l.Data[i]
		}
	}
	return nil
}

// NotFoundError indicates a 404 from the API.
type NotFoundError struct {
	URL string
}

// Error describes the missing resource.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// APIError is a structured Scryfall error response.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

// Error returns the API-provided details.
func (e *APIError) Error() string {
	return fmt.Sprintf("scryfall API error (%d %s): %s", e.Status, e.Code, e.Details)
}
